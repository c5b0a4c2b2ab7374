// Package metrics exposes the latest poll results as Prometheus series.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kostyay/basementhq/internal/model"
)

const namespace = "basementhq"

type Metrics struct {
	// Source status: 0=ok, 1=degraded, 2=unavailable
	SourceStatus *prometheus.GaugeVec

	PollDuration *prometheus.HistogramVec
	PollsTotal   *prometheus.CounterVec

	HostPercent    *prometheus.GaugeVec
	NetworkRate    *prometheus.GaugeVec
	ReachabilityUp *prometheus.GaugeVec
	MediaStreams   prometheus.Gauge
	BlockRate      prometheus.Gauge
	Containers     *prometheus.GaugeVec
	Temperature    prometheus.Gauge

	ConfigWrites *prometheus.CounterVec
}

// New registers the board metrics with reg. A nil reg uses a private
// registry that is never exposed.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Metrics{
		SourceStatus: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_status",
			Help:      "Status of the last poll per source (0=ok, 1=degraded, 2=unavailable).",
		}, []string{"source"}),

		PollDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Histogram of poll latencies.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"source"}),

		PollsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Total number of polls by outcome.",
		}, []string{"source", "status"}),

		HostPercent: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_used_percent",
			Help:      "Host resource utilisation.",
		}, []string{"resource"}), // cpu, ram, disk

		NetworkRate: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "network_bytes_per_second",
			Help:      "Combined non-loopback throughput.",
		}, []string{"direction"}),

		ReachabilityUp: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reachability_up",
			Help:      "Whether a TCP connection to the target succeeded.",
		}, []string{"label", "target"}),

		MediaStreams: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "media_active_streams",
			Help:      "Active playback sessions on the media server.",
		}),

		BlockRate: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "filtering_block_rate_percent",
			Help:      "Share of DNS queries blocked by filtering.",
		}),

		Containers: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "containers",
			Help:      "Visible containers by state.",
		}, []string{"state"}),

		Temperature: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "weather_temperature_celsius",
			Help:      "Current outside temperature.",
		}),

		ConfigWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_writes_total",
			Help:      "Config store writes by result.",
		}, []string{"result"}),
	}
}

// Observe records one poll.
func (m *Metrics) Observe(rep model.Report, took time.Duration) {
	src := string(rep.Source)
	m.SourceStatus.WithLabelValues(src).Set(float64(rep.Status))
	m.PollDuration.WithLabelValues(src).Observe(took.Seconds())
	m.PollsTotal.WithLabelValues(src, rep.Status.String()).Inc()

	if rep.Status != model.StatusOK {
		return
	}
	switch p := rep.Payload.(type) {
	case model.HostResources:
		m.HostPercent.WithLabelValues("cpu").Set(p.CPUPercent)
		m.HostPercent.WithLabelValues("ram").Set(p.RAMPercent)
		m.HostPercent.WithLabelValues("disk").Set(p.DiskPercent)
	case model.Throughput:
		m.NetworkRate.WithLabelValues("down").Set(p.DownBytesPerSec)
		m.NetworkRate.WithLabelValues("up").Set(p.UpBytesPerSec)
	case model.Reachability:
		up := 0.0
		if p.Up {
			up = 1
		}
		m.ReachabilityUp.WithLabelValues(p.Label, p.Target).Set(up)
	case model.MediaSessions:
		m.MediaStreams.Set(float64(p.ActiveStreams))
	case model.FilteringStats:
		m.BlockRate.Set(p.BlockRate)
	case model.ContainerInventory:
		counts := map[model.ContainerState]int{
			model.ContainerRunning: 0,
			model.ContainerExited:  0,
			model.ContainerOther:   0,
		}
		for _, c := range p.Containers {
			counts[c.State]++
		}
		for state, n := range counts {
			m.Containers.WithLabelValues(string(state)).Set(float64(n))
		}
	case model.Weather:
		m.Temperature.Set(p.TemperatureC)
	}
}

// ConfigWrite counts one store write.
func (m *Metrics) ConfigWrite(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ConfigWrites.WithLabelValues(result).Inc()
}
