package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/kostyay/basementhq/internal/model"
)

func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

func TestView_NotReady(t *testing.T) {
	m := NewModel(newMockPoller(), 0, 0)

	if got := m.View(); !strings.Contains(got, "Initializing") {
		t.Errorf("View() before WindowSizeMsg = %q, want Initializing", got)
	}
}

func TestView_Quitting(t *testing.T) {
	m := createTestModel(newMockPoller())
	m.quitting = true

	if got := m.View(); got != "" {
		t.Errorf("View() when quitting = %q, want empty", got)
	}
}

func TestView_HeaderShowsTitleAndTheme(t *testing.T) {
	m := createTestModel(newMockPoller())

	view := m.View()

	for _, want := range []string{"BASEMENT HQ", "Default", "0 ok"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q", want)
		}
	}
}

func TestView_PausedIndicator(t *testing.T) {
	m := createTestModel(newMockPoller())
	m.paused = true

	if view := m.View(); !strings.Contains(view, "PAUSED") {
		t.Error("View() should show PAUSED when paused")
	}
}

func TestView_WaitingForFirstPoll(t *testing.T) {
	m := createTestModel(newMockPoller())

	if view := m.View(); !strings.Contains(view, "waiting for first poll") {
		t.Error("container card should wait for its first poll")
	}
}

func TestRenderCards_Payloads(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fixedNow(t, at)

	router := model.ReachabilitySource("Router")
	m := createTestModel(newMockPoller())
	m.width = 100
	m.fastIDs = []model.SourceID{model.SourceHost, model.SourceNetwork, router, model.SourceMedia, model.SourceFiltering, model.SourceWeather}

	ok := func(id model.SourceID, v any) model.Report {
		return model.Report{Source: id, Status: model.StatusOK, At: at.Add(-3 * time.Second), Payload: v}
	}
	m.reports[model.SourceHost] = ok(model.SourceHost, model.HostResources{CPUPercent: 42.5, RAMPercent: 10, DiskPercent: 99})
	m.reports[model.SourceNetwork] = ok(model.SourceNetwork, model.Throughput{DownBytesPerSec: 1 << 20, UpBytesPerSec: 2048})
	m.reports[router] = ok(router, model.Reachability{Label: "Router", Target: "192.168.1.1:80", Up: true, Latency: 7 * time.Millisecond})
	m.reports[model.SourceMedia] = model.Report{Source: model.SourceMedia, Status: model.StatusDegraded, Reason: "no key", At: at, Payload: model.MediaSessions{}}
	m.reports[model.SourceFiltering] = ok(model.SourceFiltering, model.FilteringStats{TotalQueries: 12000, BlockedQueries: 1500, BlockRate: 12.5})
	m.reports[model.SourceWeather] = ok(model.SourceWeather, model.Weather{TemperatureC: 18.3, Description: "partly cloudy"})
	m.reports[model.SourceContainers] = ok(model.SourceContainers, model.ContainerInventory{
		Containers: []model.Container{
			{Name: "jellyfin", State: model.ContainerRunning, Status: "Up 3 hours"},
			{Name: "backup", State: model.ContainerExited, Status: "Exited (0)"},
		},
		Hidden: 1,
	})

	out := m.renderCards()

	for _, want := range []string{
		"SYSTEM", "42.5%", "99.0%",
		"NETWORK", "1.0 MiB/s", "2.0 KiB/s",
		"PING Router", "UP 7ms", "192.168.1.1:80",
		"MEDIA", "DEGRADED", "no key",
		"DNS FILTER", "12,000", "1,500", "12.5%",
		"WEATHER", "18.3°C", "partly cloudy",
		"CONTAINERS", "1 running / 2 shown (1 hidden)", "jellyfin", "Up 3 hours", "backup",
		"3 seconds ago",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("renderCards() should contain %q", want)
		}
	}
	if strings.Index(out, "SYSTEM") > strings.Index(out, "CONTAINERS") {
		t.Error("containers card should come last")
	}
}

func TestRenderCard_UnavailableShowsReasonOnly(t *testing.T) {
	m := createTestModel(newMockPoller())
	rep := model.Report{Source: model.SourceMedia, Status: model.StatusUnavailable, Reason: "timeout", At: time.Now()}

	out := m.renderCard(model.SourceMedia, rep, true, time.Now())

	if !strings.Contains(out, "OFFLINE") || !strings.Contains(out, "timeout") {
		t.Errorf("renderCard() = %q, want OFFLINE and timeout", out)
	}
}

func TestRenderCard_ReachabilityDown(t *testing.T) {
	m := createTestModel(newMockPoller())
	id := model.ReachabilitySource("NAS")
	rep := model.OK(model.Reachability{Label: "NAS", Target: "nas:80"}).Report(id)

	out := m.renderCard(id, rep, true, time.Now())

	if !strings.Contains(out, "DOWN") {
		t.Errorf("renderCard() = %q, want DOWN", out)
	}
}

func TestView_HelpMode(t *testing.T) {
	m := createTestModel(newMockPoller())
	m.helpMode = true

	view := m.View()

	if !strings.Contains(view, "KEYBOARD SHORTCUTS") {
		t.Error("help view should list shortcuts")
	}
	if !strings.Contains(view, "fast sources every 1s, containers every 5s") {
		t.Error("help view should show poll intervals")
	}
}
