// Package tui: keyboard binding configuration.
package tui

// Keymap defines the keyboard shortcuts the plan browser handles itself.
// Scrolling (arrows, pgup/pgdown) is interpreted by the viewport.
type Keymap struct {
	Quit string
}

// defaultKeymap returns the default key bindings.
func defaultKeymap() Keymap {
	return Keymap{Quit: "q"}
}
