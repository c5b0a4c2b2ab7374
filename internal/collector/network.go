package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/net"
	"go.uber.org/zap"

	"github.com/kostyay/basementhq/internal/model"
	"github.com/kostyay/basementhq/internal/rate"
)

// Network derives throughput from the combined non-loopback interface
// counters.
type Network struct {
	meter *rate.Meter
	log   *zap.Logger

	counters func(ctx context.Context) ([]net.IOCountersStat, error)
	now      func() time.Time
}

// NewNetwork returns a network collector feeding meter.
func NewNetwork(meter *rate.Meter, log *zap.Logger) *Network {
	if log == nil {
		log = zap.NewNop()
	}
	return &Network{
		meter: meter,
		log:   log,
		counters: func(ctx context.Context) ([]net.IOCountersStat, error) {
			return net.IOCountersWithContext(ctx, true)
		},
		now: time.Now,
	}
}

// ID implements Source.
func (n *Network) ID() model.SourceID { return model.SourceNetwork }

// Poll implements Source.
func (n *Network) Poll(ctx context.Context) model.Report {
	return n.Collect(ctx).Report(n.ID())
}

// Collect reads the counters and samples the meter. The first poll after
// start reports zero rates.
func (n *Network) Collect(ctx context.Context) model.Result[model.Throughput] {
	stats, err := n.counters(ctx)
	if err != nil {
		return model.Unavailable[model.Throughput](fmt.Sprintf("read counters: %v", err))
	}

	snap := sumCounters(stats)
	snap.TakenAt = n.now()

	down, up := n.meter.Sample(snap)
	if down < 0 || up < 0 {
		n.log.Warn("negative throughput, counters were reset",
			zap.Float64("down", down), zap.Float64("up", up))
	}
	return model.OK(model.Throughput{
		DownBytesPerSec: down,
		UpBytesPerSec:   up,
		BytesRecv:       snap.BytesRecv,
		BytesSent:       snap.BytesSent,
	})
}

// sumCounters adds up all interfaces except loopback.
func sumCounters(stats []net.IOCountersStat) model.CounterSnapshot {
	var snap model.CounterSnapshot
	for _, s := range stats {
		if isLoopback(s.Name) {
			continue
		}
		snap.BytesRecv += s.BytesRecv
		snap.BytesSent += s.BytesSent
	}
	return snap
}

// isLoopback matches "lo" on Linux and "lo0" on BSD-style systems.
func isLoopback(name string) bool {
	if name == "lo" {
		return true
	}
	rest, ok := strings.CutPrefix(name, "lo")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
