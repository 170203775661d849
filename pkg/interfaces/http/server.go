package http

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/partcounter/pkg/infrastructure/logger"
)

// Server runs the API and the Prometheus endpoint until its context ends
type Server struct {
	api             *nethttp.Server
	metrics         *nethttp.Server
	shutdownTimeout time.Duration
	log             *logger.Logger
}

type ServerConfig struct {
	Addr            string
	MetricsAddr     string // empty disables the metrics listener
	ShutdownTimeout time.Duration
}

func NewServer(routes RouterConfig, cfg ServerConfig) *Server {
	log := routes.Logger
	if log == nil {
		log = logger.Nop()
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		api: &nethttp.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(routes),
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             log.With("component", "HTTPServer"),
	}

	if cfg.MetricsAddr != "" {
		mux := nethttp.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		s.metrics = &nethttp.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	return s
}

// Handler exposes the API router
func (s *Server) Handler() nethttp.Handler {
	return s.api.Handler
}

// Run serves until ctx is canceled or a listener fails, then shuts every listener down
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	servers := []*nethttp.Server{s.api}
	if s.metrics != nil {
		servers = append(servers, s.metrics)
	}

	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			s.log.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		s.log.Info("server stopped")
		return errors.Join(errs...)
	})

	return g.Wait()
}
