package ui

// Keybinding represents a keyboard shortcut with its display name.
type Keybinding struct {
	Key  string // actual key(s) to match
	Desc string // description for help display
}

// Global keybindings (always available)
var (
	KeyQuit    = Keybinding{Key: "q", Desc: "Quit"}
	KeyQuitAlt = Keybinding{Key: "ctrl+c", Desc: "Quit"}
	KeyHelp    = Keybinding{Key: "?", Desc: "Show help"}
	KeyRefresh = Keybinding{Key: "r", Desc: "Refresh now"}
	KeyPause   = Keybinding{Key: "p", Desc: "Pause/resume polling"}
)

// Navigation keybindings
var (
	KeyUp      = Keybinding{Key: "up", Desc: "Scroll up"}
	KeyUpAlt   = Keybinding{Key: "k", Desc: "Scroll up"}
	KeyDown    = Keybinding{Key: "down", Desc: "Scroll down"}
	KeyDownAlt = Keybinding{Key: "j", Desc: "Scroll down"}
	KeyEsc     = Keybinding{Key: "esc", Desc: "Close help"}
)

// matchKey checks if the input matches the keybinding.
func matchKey(input string, keys ...Keybinding) bool {
	for _, k := range keys {
		if input == k.Key {
			return true
		}
	}
	return false
}
