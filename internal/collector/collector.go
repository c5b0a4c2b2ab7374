// Package collector polls the board's external data sources. Every
// collector classifies its own failures into a model.Report; none of them
// return errors or panic past Poll.
package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kostyay/basementhq/internal/model"
)

// Source is one pollable data source.
type Source interface {
	ID() model.SourceID
	// Poll fetches the current state. It must honour ctx cancellation.
	Poll(ctx context.Context) model.Report
}

// Run polls src under its per-source timeout. A panic inside the poll is
// recovered and reported as unavailable.
func Run(ctx context.Context, src Source, log *zap.Logger) (rep model.Report) {
	id := src.ID()
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(ctx, id.Timeout())
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Error("collector panicked", zap.String("source", string(id)), zap.Any("panic", r))
			rep = model.Unavailable[any](fmt.Sprintf("internal error: %v", r)).Report(id)
		}
	}()

	start := time.Now()
	rep = src.Poll(ctx)
	rep.Source = id
	if rep.At.IsZero() {
		rep.At = time.Now()
	}

	fields := []zap.Field{
		zap.String("source", string(id)),
		zap.Stringer("status", rep.Status),
		zap.Duration("took", time.Since(start)),
	}
	switch rep.Status {
	case model.StatusOK:
		log.Debug("poll", fields...)
	default:
		log.Warn("poll", append(fields, zap.String("reason", rep.Reason))...)
	}
	return rep
}
