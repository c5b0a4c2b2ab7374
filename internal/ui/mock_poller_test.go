package ui

import (
	"context"
	"sync"

	"github.com/kostyay/basementhq/internal/board"
	"github.com/kostyay/basementhq/internal/collector"
	"github.com/kostyay/basementhq/internal/model"
	"github.com/kostyay/basementhq/internal/theme"
)

// stubSource returns a fixed report.
type stubSource struct {
	id  model.SourceID
	rep model.Report
}

func (s stubSource) ID() model.SourceID { return s.id }

func (s stubSource) Poll(context.Context) model.Report { return s.rep }

// mockPoller is a test double for the board.
type mockPoller struct {
	mu      sync.Mutex
	fast    []collector.Source
	slow    []collector.Source
	busy    map[model.SourceID]bool
	polled  []model.SourceID
	params  theme.RenderParameters
}

func newMockPoller(fast ...collector.Source) *mockPoller {
	return &mockPoller{
		fast: fast,
		slow: []collector.Source{stubSource{id: model.SourceContainers, rep: model.OK(model.ContainerInventory{}).Report(model.SourceContainers)}},
		busy: map[model.SourceID]bool{},
		params: theme.RenderParameters{
			ThemeName:       theme.NameDefault,
			Title:           "BASEMENT HQ",
			PrimaryColor:    "#00ff41",
			BackgroundColor: "#0e1117",
			CardColor:       "#161b22",
		},
	}
}

func (p *mockPoller) SourcesIn(g board.Group) []collector.Source {
	if g == board.GroupContainers {
		return p.slow
	}
	return p.fast
}

func (p *mockPoller) TryPoll(ctx context.Context, src collector.Source) (model.Report, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy[src.ID()] {
		return model.Report{}, false
	}
	p.polled = append(p.polled, src.ID())
	return src.Poll(ctx), true
}

func (p *mockPoller) Theme() theme.RenderParameters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params
}
