package model

import "testing"

func TestClassifyContainerState(t *testing.T) {
	tests := []struct {
		label string
		want  ContainerState
	}{
		{"running", ContainerRunning},
		{"Running", ContainerRunning},
		{"exited", ContainerExited},
		{"paused", ContainerOther},
		{"restarting", ContainerOther},
		{"", ContainerOther},
	}
	for _, tt := range tests {
		if got := ClassifyContainerState(tt.label); got != tt.want {
			t.Errorf("ClassifyContainerState(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestParseHiddenSet(t *testing.T) {
	set := ParseHiddenSet(" db, cache ,,db")
	if len(set) != 2 {
		t.Fatalf("len = %d, want 2", len(set))
	}
	if !set.Contains("db") || !set.Contains("cache") {
		t.Errorf("set = %v, want db and cache", set)
	}
	if set.Contains("web") {
		t.Error("web should not be hidden")
	}

	if len(ParseHiddenSet("")) != 0 {
		t.Error("empty string should yield empty set")
	}
}

func TestContainerInventory_Running(t *testing.T) {
	inv := ContainerInventory{Containers: []Container{
		{Name: "web", State: ContainerRunning},
		{Name: "db", State: ContainerExited},
		{Name: "cache", State: ContainerRunning},
	}}
	if got := inv.Running(); got != 2 {
		t.Errorf("Running() = %d, want 2", got)
	}
}
