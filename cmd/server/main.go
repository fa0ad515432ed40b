package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Elekrisk/moba-try-5/internal/engine"
	"github.com/Elekrisk/moba-try-5/internal/gameserver"
	"github.com/Elekrisk/moba-try-5/internal/logging"
	"github.com/Elekrisk/moba-try-5/internal/ws"
)

func main() {
	cfg := &Config{}
	if err := newCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run assembles the service and blocks until shutdown completes. The first
// SIGINT/SIGTERM starts a graceful shutdown (stop accepting, drain the
// event loop); a second one exits immediately (spec.md §4.1 "double-SIGINT
// semantics").
func run(ctx context.Context, cfg *Config) error {
	log := logging.NewStd("[lobby] ")

	launcher := gameserver.NewSupervisor(gameserver.Config{
		Mode: cfg.launchMode,
		Path: cfg.gameServerPath,
	}, logging.NewStd("[gameserver] "))

	e := engine.New(log, launcher, cfg.portMin, cfg.portMax)

	loopDone := make(chan struct{})
	go func() {
		e.Run()
		close(loopDone)
	}()

	wsHandler := ws.NewHandler(e, log)
	router := newRouter(wsHandler, e)

	listener, err := ws.NewListener(cfg.bindAddr, ws.TLSConfig{CertFile: cfg.tlsCert, KeyFile: cfg.tlsKey}, true, router, log)
	if err != nil {
		return fmt.Errorf("build listener: %w", err)
	}

	serveCtx, cancelServe := context.WithCancel(ctx)
	defer cancelServe()

	serveErr := make(chan error, 1)
	go func() { serveErr <- listener.Serve(serveCtx) }()

	if cfg.enablePprof {
		go servePprof(serveCtx, cfg.pprofPort, log)
	}

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	shutdown := func() {
		log.Printf("shutting down")
		cancelServe()
		e.Post(engine.Shutdown{})
	}

	go func() {
		select {
		case <-sigCh:
			shutdown()
		case <-serveCtx.Done():
		}
		select {
		case <-sigCh:
			log.Printf("second interrupt received, exiting immediately")
			os.Exit(130)
		case <-loopDone:
		}
	}()

	if cfg.enableDashboard {
		if err := runDashboard(e); err != nil {
			log.Printf("dashboard exited: %v", err)
		}
	}

	<-loopDone
	<-serveErr
	log.Printf("stopped")
	return nil
}
