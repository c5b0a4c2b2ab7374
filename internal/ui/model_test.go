package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kostyay/basementhq/internal/model"
)

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(newMockPoller(), 0, 0)

	if m.fastInterval != model.FastInterval {
		t.Errorf("fastInterval = %v, want %v", m.fastInterval, model.FastInterval)
	}
	if m.containerInterval != model.ContainerInterval {
		t.Errorf("containerInterval = %v, want %v", m.containerInterval, model.ContainerInterval)
	}
	if m.params.Title != "BASEMENT HQ" {
		t.Errorf("params.Title = %q, want BASEMENT HQ", m.params.Title)
	}
	if len(m.reports) != 0 {
		t.Error("NewModel() should start without reports")
	}
}

func TestNewModel_CustomIntervals(t *testing.T) {
	m := NewModel(newMockPoller(), time.Second, 10*time.Second)

	if m.fastInterval != time.Second || m.containerInterval != 10*time.Second {
		t.Errorf("intervals = %v/%v, want 1s/10s", m.fastInterval, m.containerInterval)
	}
}

func TestModelImplementsTeaModel(t *testing.T) {
	var _ tea.Model = Model{}
}

func TestInit_ReturnsBatchCommand(t *testing.T) {
	m := NewModel(newMockPoller(), 0, 0)

	if m.Init() == nil {
		t.Error("Init() should return a command")
	}
}

func TestReport_Lookup(t *testing.T) {
	m := NewModel(newMockPoller(), 0, 0)
	m.reports[model.SourceHost] = model.OK(model.HostResources{}).Report(model.SourceHost)

	if _, ok := m.Report(model.SourceHost); !ok {
		t.Error("Report(host) should be found")
	}
	if _, ok := m.Report(model.SourceMedia); ok {
		t.Error("Report(media) should not be found")
	}
}
