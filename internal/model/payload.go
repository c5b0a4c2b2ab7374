package model

import (
	"strings"
	"time"
)

// HostResources holds instantaneous host utilisation percentages.
type HostResources struct {
	CPUPercent  float64 `json:"cpu_percent"`
	RAMPercent  float64 `json:"ram_percent"`
	DiskPercent float64 `json:"disk_percent"`
}

// CounterSnapshot is a point-in-time reading of the cumulative I/O counters.
type CounterSnapshot struct {
	BytesRecv uint64    // Total bytes received since boot
	BytesSent uint64    // Total bytes sent since boot
	TakenAt   time.Time // When the counters were read
}

// Throughput is the network rate derived from two counter snapshots.
// Rates may be negative after a counter reset.
type Throughput struct {
	DownBytesPerSec float64 `json:"down_bytes_per_sec"`
	UpBytesPerSec   float64 `json:"up_bytes_per_sec"`
	BytesRecv       uint64  `json:"bytes_recv"`
	BytesSent       uint64  `json:"bytes_sent"`
}

// Reachability is the result of a TCP connect check.
type Reachability struct {
	Label   string        `json:"label"`
	Target  string        `json:"target"`
	Service string        `json:"service,omitempty"` // Well-known name of the target port
	Up      bool          `json:"up"`
	Latency time.Duration `json:"latency_ns"`
}

// MediaStream is one active playback session on the media server.
type MediaStream struct {
	User   string `json:"user"`
	Title  string `json:"title"`
	Client string `json:"client,omitempty"`
}

// MediaSessions summarises the media server's active streams.
type MediaSessions struct {
	ActiveStreams int           `json:"active_streams"`
	Summary       string        `json:"summary"`
	Streams       []MediaStream `json:"streams,omitempty"`
}

// FilteringStats holds DNS filtering counters.
type FilteringStats struct {
	TotalQueries   int64   `json:"total_queries"`
	BlockedQueries int64   `json:"blocked_queries"`
	BlockRate      float64 `json:"block_rate_percent"`
}

// ContainerState is the normalised container status.
type ContainerState string

const (
	ContainerRunning ContainerState = "running"
	ContainerExited  ContainerState = "exited"
	ContainerOther   ContainerState = "other"
)

// ClassifyContainerState maps a runtime state label onto ContainerState.
func ClassifyContainerState(label string) ContainerState {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "running":
		return ContainerRunning
	case "exited":
		return ContainerExited
	default:
		return ContainerOther
	}
}

// Container is one entry of the container inventory.
type Container struct {
	Name   string         `json:"name"`
	Image  string         `json:"image"`
	ID     string         `json:"id"`
	State  ContainerState `json:"state"`
	Label  string         `json:"label"`  // Raw runtime state (e.g., "paused")
	Status string         `json:"status"` // Runtime status text (e.g., "Up 3 hours")
}

// ContainerInventory lists visible containers.
type ContainerInventory struct {
	Containers []Container `json:"containers"`
	Hidden     int         `json:"hidden"` // Number of containers filtered out
}

// Running returns how many containers are running.
func (c ContainerInventory) Running() int {
	n := 0
	for _, ct := range c.Containers {
		if ct.State == ContainerRunning {
			n++
		}
	}
	return n
}

// Weather is the current weather at the configured coordinates.
type Weather struct {
	TemperatureC float64 `json:"temperature_c"`
	Code         int     `json:"weather_code"`
	Description  string  `json:"description"`
}

// HiddenSet is a set of container names excluded from display.
type HiddenSet map[string]struct{}

// ParseHiddenSet splits a comma-joined list of container names.
func ParseHiddenSet(joined string) HiddenSet {
	set := make(HiddenSet)
	for _, name := range strings.Split(joined, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is hidden.
func (h HiddenSet) Contains(name string) bool {
	_, ok := h[name]
	return ok
}
