package model

import (
	"testing"
	"time"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusOK, "ok"},
		{StatusDegraded, "degraded"},
		{StatusUnavailable, "unavailable"},
		{Status(42), "Status(42)"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	ok := OK(HostResources{CPUPercent: 12})
	if !ok.IsOK() || ok.Value.CPUPercent != 12 || ok.Reason != "" {
		t.Errorf("OK() = %+v", ok)
	}
	if ok.At.IsZero() {
		t.Error("OK() should stamp the result time")
	}

	d := Degraded("auth error", MediaSessions{Summary: "?"})
	if d.Status != StatusDegraded || d.Reason != "auth error" || d.Value.Summary != "?" {
		t.Errorf("Degraded() = %+v", d)
	}

	u := Unavailable[FilteringStats]("timeout")
	if u.Status != StatusUnavailable || u.Reason != "timeout" {
		t.Errorf("Unavailable() = %+v", u)
	}
	if u.Value != (FilteringStats{}) {
		t.Error("Unavailable() should carry a zero payload")
	}
}

func TestResult_Report(t *testing.T) {
	rep := OK(Weather{TemperatureC: 3.5}).Report(SourceWeather)
	if rep.Source != SourceWeather {
		t.Errorf("Source = %q, want weather", rep.Source)
	}
	w, ok := rep.Payload.(Weather)
	if !ok || w.TemperatureC != 3.5 {
		t.Errorf("Payload = %#v, want Weather{3.5}", rep.Payload)
	}

	rep = Unavailable[Weather]("dial tcp: refused").Report(SourceWeather)
	if rep.Payload != nil {
		t.Errorf("Unavailable report should have nil payload, got %#v", rep.Payload)
	}
}

func TestReport_Stale(t *testing.T) {
	now := time.Now()
	fresh := Report{At: now.Add(-time.Second)}
	old := Report{At: now.Add(-time.Minute)}

	if fresh.Stale(now, 10*time.Second) {
		t.Error("1s old report should not be stale at 10s max age")
	}
	if !old.Stale(now, 10*time.Second) {
		t.Error("1m old report should be stale at 10s max age")
	}
	if !(Report{}).Stale(now, time.Hour) {
		t.Error("zero report should always be stale")
	}
}

func TestSourceID(t *testing.T) {
	id := ReachabilitySource("router")
	if !id.IsReachability() {
		t.Error("ReachabilitySource should report IsReachability")
	}
	if id.Label() != "router" {
		t.Errorf("Label() = %q, want router", id.Label())
	}
	if id.Timeout() != time.Second {
		t.Errorf("reachability timeout = %v, want 1s", id.Timeout())
	}
	if SourceMedia.Timeout() != 5*time.Second {
		t.Errorf("media timeout = %v, want 5s", SourceMedia.Timeout())
	}
	if SourceContainers.DefaultInterval() != ContainerInterval {
		t.Errorf("containers interval = %v, want %v", SourceContainers.DefaultInterval(), ContainerInterval)
	}
	if SourceHost.DefaultInterval() != FastInterval {
		t.Errorf("host interval = %v, want %v", SourceHost.DefaultInterval(), FastInterval)
	}
	if SourceHost.IsReachability() {
		t.Error("host is not a reachability source")
	}
}

func TestStatus_TextRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusOK, StatusDegraded, StatusUnavailable} {
		text, _ := s.MarshalText()
		var got Status
		if err := got.UnmarshalText(text); err != nil || got != s {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", text, got, err, s)
		}
	}

	var s Status
	if err := s.UnmarshalText([]byte("broken")); err == nil {
		t.Error("UnmarshalText should reject unknown names")
	}
}
