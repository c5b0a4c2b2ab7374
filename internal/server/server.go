// Package server exposes the board over HTTP: status, theme, config and
// asset uploads, plus Prometheus metrics.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kostyay/basementhq/internal/config"
	"github.com/kostyay/basementhq/internal/model"
	"github.com/kostyay/basementhq/internal/theme"
)

// Board is what the handlers need from the dashboard state.
type Board interface {
	Latest() []model.Report
	Theme() theme.RenderParameters
	Entries() []config.Entry
	SaveConfig(entries []config.Entry) ([]string, error)
	SaveAsset(kind theme.AssetKind, filename string, r io.Reader) (string, error)
	Assets() *theme.Assets
}

type Server struct {
	router   *chi.Mux
	board    Board
	gatherer prometheus.Gatherer
	logger   *zap.Logger

	// onFatal is called once a config write fails; the process is
	// expected to report it and exit.
	onFatal func(error)
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithFatal sets the handler for unrecoverable config write failures.
func WithFatal(fn func(error)) Option {
	return func(s *Server) { s.onFatal = fn }
}

// New builds the router. A nil gatherer serves the default registry.
func New(b Board, gatherer prometheus.Gatherer, logger *zap.Logger, opts ...Option) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router:   chi.NewRouter(),
		board:    b,
		gatherer: gatherer,
		logger:   logger.Named("http"),
		onFatal:  func(error) {},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/theme.css", s.stylesheet)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.status)
		r.Get("/theme", s.theme)

		r.Get("/config", s.listConfig)
		r.Post("/config", s.saveConfig)

		r.Get("/assets/{kind}", s.getAsset)
		r.Post("/assets/{kind}", s.uploadAsset)
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// requestLogger logs each request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debug("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("took", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
