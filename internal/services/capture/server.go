// Package capture hosts the country-capture modal over HTTP.
package capture

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/countrycapture/internal/platform/logging"
	"github.com/louisbranch/countrycapture/internal/platform/timeouts"
	"github.com/louisbranch/countrycapture/internal/services/capture/platform/httpx"
	"github.com/louisbranch/countrycapture/internal/services/capture/platform/observability"
	"github.com/louisbranch/countrycapture/internal/services/capture/routepath"
	capturestatic "github.com/louisbranch/countrycapture/internal/services/capture/static"
	"github.com/louisbranch/countrycapture/internal/services/capture/storage"
)

// Config defines startup inputs for the capture service.
type Config struct {
	HTTPAddr string
	Store    storage.Store
	Logger   *zap.Logger
	Tracer   trace.Tracer
}

// Server hosts the capture HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler builds the root handler with every capture route.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("level store is required")
	}
	logger := logging.OrNop(cfg.Logger)
	service := NewService(cfg.Store, logger, cfg.Tracer)
	h := handlers{service: service, logger: logger}

	mux := http.NewServeMux()
	mux.Handle(routepath.Static, http.StripPrefix(routepath.Static, http.FileServer(http.FS(capturestatic.FS))))
	mux.HandleFunc(routepath.PatternIndex, h.handleIndex)
	mux.HandleFunc(routepath.PatternModal, h.handleModal)
	mux.HandleFunc(routepath.PatternClose, h.handleClose)
	mux.HandleFunc(routepath.PatternHint, h.handleHint)
	mux.HandleFunc(routepath.PatternAnswer, h.handleAnswer)
	mux.HandleFunc(routepath.PatternHealth, h.handleHealth)

	return httpx.Chain(mux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.Tracing(service.tracer, propagation.TraceContext{}),
		observability.RequestLogger(logger),
	), nil
}

// NewServer validates config and constructs a capture server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose capture handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logging.OrNop(cfg.Logger),
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe binds the configured address and serves until ctx is
// cancelled or the server is closed.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("capture server is nil")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves HTTP traffic on listener until context cancellation or server
// stop. Cancellation triggers a graceful shutdown.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s == nil {
		return errors.New("capture server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if listener == nil {
		return errors.New("listener is required")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer cancel()
		s.logger.Info("capture listening", zap.String("addr", listener.Addr().String()))
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve capture http: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer shutdownCancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown capture http server: %w", err)
		}
		return nil
	})
	return group.Wait()
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
