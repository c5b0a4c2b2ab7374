package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kostyay/basementhq/internal/board"
	"github.com/kostyay/basementhq/internal/collector"
	"github.com/kostyay/basementhq/internal/model"
	"github.com/kostyay/basementhq/internal/theme"
)

// Poller is the part of the board the terminal driver needs.
type Poller interface {
	SourcesIn(g board.Group) []collector.Source
	TryPoll(ctx context.Context, src collector.Source) (model.Report, bool)
	Theme() theme.RenderParameters
}

// Model is the Bubble Tea model for the status board.
type Model struct {
	// Data
	poller  Poller
	reports map[model.SourceID]model.Report
	fastIDs []model.SourceID // fast sources in display order, as of the last tick
	params  theme.RenderParameters

	// UI State
	quitting bool
	paused   bool
	helpMode bool

	// Configuration
	fastInterval      time.Duration
	containerInterval time.Duration

	// Dimensions
	width  int
	height int

	spinner  spinner.Model
	bar      progress.Model
	viewport viewport.Model
	ready    bool // true after viewport initialized on first WindowSizeMsg
}

// NewModel creates a Model polling p at the given intervals.
func NewModel(p Poller, fast, containers time.Duration) Model {
	if fast <= 0 {
		fast = model.FastInterval
	}
	if containers <= 0 {
		containers = model.ContainerInterval
	}
	params := p.Theme()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = PrimaryStyle(params)

	return Model{
		poller:            p,
		reports:           make(map[model.SourceID]model.Report),
		params:            params,
		fastInterval:      fast,
		containerInterval: containers,
		spinner:           s,
		bar:               newBar(params),
	}
}

func newBar(params theme.RenderParameters) progress.Model {
	return progress.New(
		progress.WithSolidFill(string(params.PrimaryColor)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
}

// Report returns the last report shown for a source.
func (m Model) Report(id model.SourceID) (model.Report, bool) {
	rep, ok := m.reports[id]
	return rep, ok
}

var _ tea.Model = Model{}
