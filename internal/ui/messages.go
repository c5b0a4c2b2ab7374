package ui

import (
	"time"

	"github.com/kostyay/basementhq/internal/board"
	"github.com/kostyay/basementhq/internal/model"
)

// TickMsg is sent on each refresh interval of one group.
type TickMsg struct {
	Group board.Group
	At    time.Time
}

// ReportMsg carries the result of one poll. Skipped is set when the
// previous poll of the source was still running.
type ReportMsg struct {
	Report  model.Report
	Skipped bool
}
