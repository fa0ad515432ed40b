package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/Elekrisk/moba-try-5/internal/logging"
)

// servePprof runs the pprof server on its own port until ctx is cancelled.
// It never blocks main's startup: errors are logged, not fatal, since
// profiling is strictly a diagnostic aid (SPEC_FULL.md §1 Configuration).
func servePprof(ctx context.Context, port int, log logging.Logger) {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	srv := &http.Server{Addr: addr}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("pprof listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("pprof server stopped: %v", err)
	}
}
