package model

import (
	"strings"
	"time"
)

// SourceID identifies a collector.
type SourceID string

const (
	SourceHost       SourceID = "host"
	SourceNetwork    SourceID = "network"
	SourceMedia      SourceID = "media"
	SourceFiltering  SourceID = "filtering"
	SourceContainers SourceID = "containers"
	SourceWeather    SourceID = "weather"

	reachabilityPrefix = "reachability:"
)

// Default poll intervals.
const (
	FastInterval      = 2 * time.Second
	ContainerInterval = 5 * time.Second
)

// ReachabilitySource returns the SourceID of the reachability check with the given label.
func ReachabilitySource(label string) SourceID {
	return SourceID(reachabilityPrefix + label)
}

// IsReachability reports whether id names a reachability check.
func (id SourceID) IsReachability() bool {
	return strings.HasPrefix(string(id), reachabilityPrefix)
}

// Label returns the target label for reachability sources, or the id itself.
func (id SourceID) Label() string {
	return strings.TrimPrefix(string(id), reachabilityPrefix)
}

// Timeout returns the per-poll deadline for the source.
func (id SourceID) Timeout() time.Duration {
	switch {
	case id.IsReachability():
		return 1 * time.Second
	case id == SourceFiltering:
		return 2 * time.Second
	case id == SourceWeather, id == SourceContainers:
		return 3 * time.Second
	case id == SourceMedia:
		return 5 * time.Second
	default:
		return 2 * time.Second
	}
}

// DefaultInterval returns how often the source is polled unless overridden.
func (id SourceID) DefaultInterval() time.Duration {
	if id == SourceContainers {
		return ContainerInterval
	}
	return FastInterval
}
