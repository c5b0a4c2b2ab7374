package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kostyay/basementhq/internal/board"
	"github.com/kostyay/basementhq/internal/config"
	hqerrors "github.com/kostyay/basementhq/internal/errors"
	"github.com/kostyay/basementhq/internal/metrics"
	"github.com/kostyay/basementhq/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and poll every source in the background",
	Long: `Serve the status, theme, config and upload API, plus Prometheus metrics,
while polling every source on its interval.

A failed config write is fatal: the server stops and the command exits
non-zero so a supervisor can restart it.

Examples:
  basementhq serve
  basementhq serve --listen :8501
  BASEMENTHQ_LOG_FORMAT=json basementhq serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", config.DefaultSettings().Listen, "Address to serve the HTTP API on")
	_ = v.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	log, err := newStderrLogger(settings)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	st, err := board.New(settings, board.WithLogger(log), board.WithMetrics(metrics.New(reg)))
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	srv := server.New(st, reg, log.Named("http"), server.WithFatal(func(err error) {
		log.Error("config write failed, shutting down", zap.Error(err))
		cancel(err)
	}))

	polling := make(chan struct{})
	go func() {
		defer close(polling)
		_ = st.Run(ctx)
	}()

	serveErr := srv.ListenAndServe(ctx, settings.Listen)
	cancel(nil)
	<-polling

	if serveErr != nil {
		return hqerrors.WrapWithCode(serveErr, hqerrors.ErrServe,
			"HTTP server failed on "+settings.Listen,
			"Check the address is free, or pass --listen")
	}
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}
