package ws

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/Elekrisk/moba-try-5/internal/logging"
)

// TLSConfig names where to load the listener's certificate from. When both
// fields are empty, Listener mints an ephemeral self-signed identity instead
// (spec.md §4.1 "TLS self-signed identity") — there is no client-side
// verification step in this protocol, so an ephemeral cert is sufficient.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

func resolveTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load tls key pair: %w", err)
		}
		return &tls.Config{Certificates: []tls.Certificate{cert}}, nil
	}

	cert, err := generateSelfSignedCert()
	if err != nil {
		return nil, fmt.Errorf("generate self-signed cert: %w", err)
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}}, nil
}

func generateSelfSignedCert() (tls.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, err
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, err
	}

	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: "lobby-service"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(10 * 365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return tls.Certificate{}, err
	}

	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}, nil
}

// Listener owns the listening socket for the duration of the process
// (spec.md §4.1). Serve blocks until ctx is cancelled (the first SIGINT) or
// the socket fails.
type Listener struct {
	srv *http.Server
	tls bool
	log logging.Logger
}

// NewListener builds a Listener bound to addr, serving handler. With
// enableTLS false, tlsCfg is ignored and plain (insecure) websockets are
// served, used for local development.
func NewListener(addr string, tlsCfg TLSConfig, enableTLS bool, handler http.Handler, log logging.Logger) (*Listener, error) {
	srv := &http.Server{Addr: addr, Handler: handler}
	l := &Listener{srv: srv, log: log}
	if enableTLS {
		cfg, err := resolveTLSConfig(tlsCfg)
		if err != nil {
			return nil, err
		}
		srv.TLSConfig = cfg
		l.tls = true
	}
	return l, nil
}

// Serve runs the accept loop until ctx is done, then shuts down gracefully.
func (l *Listener) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		var err error
		if l.tls {
			err = l.srv.ListenAndServeTLS("", "")
		} else {
			err = l.srv.ListenAndServe()
		}
		if err == http.ErrServerClosed {
			err = nil
		}
		errc <- err
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.srv.Shutdown(shutdownCtx); err != nil {
			l.log.Printf("listener shutdown: %v", err)
		}
		return <-errc
	case err := <-errc:
		return err
	}
}
