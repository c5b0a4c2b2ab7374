package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kostyay/basementhq/internal/board"
	"github.com/kostyay/basementhq/internal/model"
)

func hostSource(cpu float64) stubSource {
	return stubSource{
		id:  model.SourceHost,
		rep: model.OK(model.HostResources{CPUPercent: cpu}).Report(model.SourceHost),
	}
}

func createTestModel(p *mockPoller) Model {
	m := NewModel(p, time.Second, 5*time.Second)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return updated.(Model)
}

// pollOnly runs cmd and the commands it batches, collecting poll
// results. Pending ticks are abandoned after a short wait.
func pollOnly(cmd tea.Cmd) []ReportMsg {
	var out []ReportMsg
	if cmd == nil {
		return out
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		switch v := msg.(type) {
		case tea.BatchMsg:
			for _, c := range v {
				out = append(out, pollOnly(c)...)
			}
		case ReportMsg:
			out = append(out, v)
		}
	case <-time.After(50 * time.Millisecond):
		// a pending tea.Tick
	}
	return out
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := NewModel(newMockPoller(), 0, 0)

	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	newModel := updated.(Model)

	if newModel.width != 100 || newModel.height != 50 {
		t.Errorf("size = %dx%d, want 100x50", newModel.width, newModel.height)
	}
	if !newModel.ready {
		t.Error("ready should be true after WindowSizeMsg")
	}
	if newModel.viewport.Height != 50-headerHeight-footerHeight {
		t.Errorf("viewport height = %d", newModel.viewport.Height)
	}
	if cmd != nil {
		t.Errorf("cmd should be nil")
	}
}

func TestUpdate_KeyMsg_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	} {
		m := createTestModel(newMockPoller())

		updated, cmd := m.Update(key)

		if !updated.(Model).quitting {
			t.Errorf("quitting should be true after %q", key.String())
		}
		if cmd == nil {
			t.Errorf("%q should return tea.Quit", key.String())
		}
	}
}

func TestUpdate_FastTickPollsFastSources(t *testing.T) {
	p := newMockPoller(hostSource(12), stubSource{id: model.ReachabilitySource("Router"),
		rep: model.OK(model.Reachability{Label: "Router", Up: true}).Report(model.ReachabilitySource("Router"))})
	m := createTestModel(p)

	updated, cmd := m.Update(TickMsg{Group: board.GroupFast, At: time.Now()})
	m = updated.(Model)

	msgs := pollOnly(cmd)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(msgs))
	}
	for _, msg := range msgs {
		updated, _ = m.Update(msg)
		m = updated.(Model)
	}

	if len(m.fastIDs) != 2 || m.fastIDs[1] != model.ReachabilitySource("Router") {
		t.Errorf("fastIDs = %v", m.fastIDs)
	}
	rep, ok := m.Report(model.SourceHost)
	if !ok || rep.Payload.(model.HostResources).CPUPercent != 12 {
		t.Errorf("host report = %+v, %v", rep, ok)
	}
	for _, id := range p.polled {
		if id == model.SourceContainers {
			t.Error("fast tick must not poll containers")
		}
	}
}

func TestUpdate_ContainerTickRefreshesTheme(t *testing.T) {
	p := newMockPoller()
	m := createTestModel(p)
	p.params.Title = "LAB"

	updated, cmd := m.Update(TickMsg{Group: board.GroupContainers, At: time.Now()})
	m = updated.(Model)

	if m.params.Title != "LAB" {
		t.Errorf("params.Title = %q, want LAB", m.params.Title)
	}
	msgs := pollOnly(cmd)
	if len(msgs) != 1 || msgs[0].Report.Source != model.SourceContainers {
		t.Errorf("container tick reports = %+v", msgs)
	}
}

func TestUpdate_SkippedReportKeepsPrevious(t *testing.T) {
	m := createTestModel(newMockPoller())
	prev := model.OK(model.HostResources{CPUPercent: 1}).Report(model.SourceHost)
	m.reports[model.SourceHost] = prev

	updated, _ := m.Update(ReportMsg{Skipped: true})

	if got := updated.(Model).reports[model.SourceHost]; got.Payload != prev.Payload {
		t.Error("a skipped poll must not replace the previous report")
	}
}

func TestUpdate_BusySourceIsSkipped(t *testing.T) {
	p := newMockPoller(hostSource(5))
	p.busy[model.SourceHost] = true
	m := createTestModel(p)

	_, cmd := m.Update(TickMsg{Group: board.GroupFast, At: time.Now()})

	msgs := pollOnly(cmd)
	if len(msgs) != 1 || !msgs[0].Skipped {
		t.Errorf("expected one skipped report, got %+v", msgs)
	}
}

func TestUpdate_PauseStopsPolling(t *testing.T) {
	p := newMockPoller(hostSource(5))
	m := createTestModel(p)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = updated.(Model)
	if !m.paused {
		t.Fatal("paused should be true after 'p'")
	}

	_, cmd := m.Update(TickMsg{Group: board.GroupFast, At: time.Now()})
	if msgs := pollOnly(cmd); len(msgs) != 0 {
		t.Errorf("paused tick should not poll, got %d reports", len(msgs))
	}
	if cmd == nil {
		t.Error("paused tick should still schedule the next tick")
	}
}

func TestUpdate_RefreshPollsEverything(t *testing.T) {
	p := newMockPoller(hostSource(5))
	m := createTestModel(p)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	if msgs := pollOnly(cmd); len(msgs) != 2 {
		t.Errorf("refresh should poll host and containers, got %d reports", len(msgs))
	}
}

func TestUpdate_RemovedSourcesArePruned(t *testing.T) {
	router := model.ReachabilitySource("Router")
	p := newMockPoller(hostSource(5))
	m := createTestModel(p)
	m.reports[router] = model.OK(model.Reachability{Up: true}).Report(router)
	m.reports[model.SourceContainers] = model.OK(model.ContainerInventory{}).Report(model.SourceContainers)

	updated, _ := m.Update(TickMsg{Group: board.GroupFast, At: time.Now()})
	m = updated.(Model)

	if _, ok := m.reports[router]; ok {
		t.Error("report of a removed reachability check should be dropped")
	}
	if _, ok := m.reports[model.SourceContainers]; !ok {
		t.Error("container report belongs to the other group and must stay")
	}
}

func TestUpdate_HelpMode(t *testing.T) {
	m := createTestModel(newMockPoller())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = updated.(Model)
	if !m.helpMode {
		t.Fatal("helpMode should be true after '?'")
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)
	if m.helpMode || m.quitting || cmd != nil {
		t.Errorf("'q' in help should close help only (help=%v quitting=%v)", m.helpMode, m.quitting)
	}
}
