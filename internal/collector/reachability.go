package collector

import (
	"context"
	"net"
	"time"

	"github.com/kostyay/basementhq/internal/model"
	"github.com/kostyay/basementhq/internal/services"
)

const defaultReachPort = "80"

// Reachability checks whether a TCP connection to target can be opened.
type Reachability struct {
	label  string
	target string
	dialer *net.Dialer
}

// NewReachability returns a check for host, which may carry a port. A bare
// host is dialled on port 80.
func NewReachability(label, host string) *Reachability {
	return &Reachability{
		label:  label,
		target: normalizeTarget(host),
		dialer: &net.Dialer{Timeout: model.ReachabilitySource(label).Timeout()},
	}
}

// ID implements Source.
func (r *Reachability) ID() model.SourceID { return model.ReachabilitySource(r.label) }

// Target returns the host:port being dialled.
func (r *Reachability) Target() string { return r.target }

// Poll implements Source.
func (r *Reachability) Poll(ctx context.Context) model.Report {
	return r.Collect(ctx).Report(r.ID())
}

// Collect dials the target once. It is always OK; an unreachable target
// is reported as Up=false.
func (r *Reachability) Collect(ctx context.Context) model.Result[model.Reachability] {
	res := model.Reachability{Label: r.label, Target: r.target, Service: services.ForTarget(r.target)}
	start := time.Now()
	conn, err := r.dialer.DialContext(ctx, "tcp", r.target)
	if err != nil {
		return model.OK(res)
	}
	res.Latency = time.Since(start)
	_ = conn.Close()
	res.Up = true
	return model.OK(res)
}

func normalizeTarget(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, defaultReachPort)
}
