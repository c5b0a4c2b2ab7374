package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kostyay/basementhq/internal/model"
)

// truncateString truncates a string to maxLen with ellipsis if needed.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatRate formats a byte rate such as "1.0 MiB/s". Negative rates after
// a counter reset keep their sign.
func formatRate(bytesPerSec float64) string {
	sign := ""
	if bytesPerSec < 0 {
		sign = "-"
		bytesPerSec = -bytesPerSec
	}
	return sign + humanize.IBytes(uint64(math.Round(bytesPerSec))) + "/s"
}

// formatPercent formats a utilisation figure.
func formatPercent(p float64) string {
	return fmt.Sprintf("%5.1f%%", p)
}

// formatLatency formats a connect latency in milliseconds.
func formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// formatAge describes when a report was taken.
func formatAge(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	return humanize.RelTime(at, now, "ago", "from now")
}

// statusBadge returns the short label shown next to a card title.
func statusBadge(s model.Status) string {
	switch s {
	case model.StatusOK:
		return "● OK"
	case model.StatusDegraded:
		return "▲ DEGRADED"
	default:
		return "✗ OFFLINE"
	}
}

// sourceTitle returns the card title for a source.
func sourceTitle(id model.SourceID) string {
	switch id {
	case model.SourceHost:
		return "SYSTEM"
	case model.SourceNetwork:
		return "NETWORK"
	case model.SourceMedia:
		return "MEDIA"
	case model.SourceFiltering:
		return "DNS FILTER"
	case model.SourceContainers:
		return "CONTAINERS"
	case model.SourceWeather:
		return "WEATHER"
	}
	if id.IsReachability() {
		return "PING " + id.Label()
	}
	return string(id)
}
