package services

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		port int
		want string
	}{
		{22, "ssh"},
		{53, "dns"},
		{80, "http"},
		{8096, "jellyfin"},
		{32400, "plex"},
		{12345, ""}, // Unknown port
	}

	for _, tt := range tests {
		if got := Lookup(tt.port); got != tt.want {
			t.Errorf("Lookup(%d) = %q, want %q", tt.port, got, tt.want)
		}
	}
}

func TestForTarget(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"1.1.1.1:53", "dns"},
		{"192.168.1.1:80", "http"},
		{"[fe80::1]:443", "https"},
		{"nas.local:9999", ""},
		{"router", ""},     // No port
		{"router:ssh", ""}, // Named port
	}

	for _, tt := range tests {
		if got := ForTarget(tt.target); got != tt.want {
			t.Errorf("ForTarget(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}
