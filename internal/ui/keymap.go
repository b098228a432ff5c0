package ui

import (
	"strings"

	"github.com/ashwch/unforget/internal/config"
	"github.com/ashwch/unforget/internal/picker"
	"github.com/charmbracelet/bubbles/key"
)

// Keymap classifies key presses into picker events. Key names follow
// bubbletea's spelling ("enter", "ctrl+n", "a", " ").
type Keymap struct {
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Confirm   key.Binding
	Backspace key.Binding
}

// NewKeymap builds bindings from the configured key names. Backspace is
// fixed.
func NewKeymap(keys config.KeysConfig) Keymap {
	return Keymap{
		Quit:      key.NewBinding(key.WithKeys(keys.Quit...), key.WithHelp(helpKeys(keys.Quit), "quit")),
		Up:        key.NewBinding(key.WithKeys(keys.Up...), key.WithHelp(helpKeys(keys.Up), "up")),
		Down:      key.NewBinding(key.WithKeys(keys.Down...), key.WithHelp(helpKeys(keys.Down), "down")),
		Confirm:   key.NewBinding(key.WithKeys(keys.Confirm...), key.WithHelp(helpKeys(keys.Confirm), "run")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete")),
	}
}

func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Quit}
}

func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Backspace}}
}

// Events maps one key press to picker events. runes carries typed text and
// is empty for special keys; a paste yields one append per rune.
func (k Keymap) Events(name string, runes []rune) []picker.Event {
	switch {
	case bound(k.Quit, name):
		return []picker.Event{picker.Quit()}
	case bound(k.Confirm, name):
		return []picker.Event{picker.Confirm()}
	case bound(k.Up, name):
		return []picker.Event{picker.MoveUp()}
	case bound(k.Down, name):
		return []picker.Event{picker.MoveDown()}
	case bound(k.Backspace, name):
		return []picker.Event{picker.Backspace()}
	}

	if len(runes) == 0 {
		return []picker.Event{{Kind: picker.EventOther}}
	}
	events := make([]picker.Event, 0, len(runes))
	for _, r := range runes {
		events = append(events, picker.Append(r))
	}
	return events
}

func bound(b key.Binding, name string) bool {
	if !b.Enabled() {
		return false
	}
	for _, k := range b.Keys() {
		if k == name {
			return true
		}
	}
	return false
}

func helpKeys(keys []string) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case "up":
			k = "↑"
		case "down":
			k = "↓"
		case " ":
			k = "space"
		}
		names = append(names, k)
	}
	return strings.Join(names, "/")
}
