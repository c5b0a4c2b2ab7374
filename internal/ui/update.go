package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kostyay/basementhq/internal/board"
	"github.com/kostyay/basementhq/internal/collector"
	"github.com/kostyay/basementhq/internal/model"
)

// Init starts both refresh loops and polls everything once.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return TickMsg{Group: board.GroupFast, At: time.Now()} },
		func() tea.Msg { return TickMsg{Group: board.GroupContainers, At: time.Now()} },
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		viewportWidth := msg.Width
		if viewportWidth < 1 {
			viewportWidth = 1
		}

		if !m.ready {
			m.viewport = viewport.New(viewportWidth, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = viewportWidth
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		if m.helpMode {
			if matchKey(key, KeyEsc, KeyHelp, KeyQuit) {
				m.helpMode = false
			}
			if matchKey(key, KeyQuitAlt) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch {
		case matchKey(key, KeyQuit, KeyQuitAlt):
			m.quitting = true
			return m, tea.Quit
		case matchKey(key, KeyHelp):
			m.helpMode = true
		case matchKey(key, KeyPause):
			m.paused = !m.paused
		case matchKey(key, KeyRefresh):
			cmd := tea.Batch(m.pollGroup(board.GroupFast), m.pollGroup(board.GroupContainers))
			return m, cmd
		case matchKey(key, KeyUp, KeyUpAlt):
			m.viewport.LineUp(1)
		case matchKey(key, KeyDown, KeyDownAlt):
			m.viewport.LineDown(1)
		}
		return m, nil

	case TickMsg:
		// The next tick is scheduled before polling, so a slow poll never
		// delays the cadence of other sources.
		next := m.tickCmd(msg.Group)
		if m.paused {
			return m, next
		}
		if msg.Group == board.GroupContainers {
			m.params = m.poller.Theme()
			m.spinner.Style = PrimaryStyle(m.params)
			m.bar = newBar(m.params)
		}
		poll := m.pollGroup(msg.Group)
		return m, tea.Batch(next, poll)

	case ReportMsg:
		if msg.Skipped {
			return m, nil
		}
		m.reports[msg.Report.Source] = msg.Report
		m.updateViewportContent()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) tickCmd(g board.Group) tea.Cmd {
	interval := m.fastInterval
	if g == board.GroupContainers {
		interval = m.containerInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Group: g, At: t}
	})
}

// pollGroup issues one command per source of the group. For the fast
// group it also refreshes the display order and drops reports of sources
// that are no longer configured.
func (m *Model) pollGroup(g board.Group) tea.Cmd {
	srcs := m.poller.SourcesIn(g)

	if g == board.GroupFast {
		ids := make([]model.SourceID, 0, len(srcs))
		keep := make(map[model.SourceID]bool, len(srcs))
		for _, src := range srcs {
			ids = append(ids, src.ID())
			keep[src.ID()] = true
		}
		m.fastIDs = ids
		for id := range m.reports {
			if board.GroupOf(id) == board.GroupFast && !keep[id] {
				delete(m.reports, id)
			}
		}
	}

	cmds := make([]tea.Cmd, 0, len(srcs))
	for _, src := range srcs {
		cmds = append(cmds, m.pollCmd(src))
	}
	return tea.Batch(cmds...)
}

func (m Model) pollCmd(src collector.Source) tea.Cmd {
	p := m.poller
	return func() tea.Msg {
		rep, ok := p.TryPoll(context.Background(), src)
		return ReportMsg{Report: rep, Skipped: !ok}
	}
}
