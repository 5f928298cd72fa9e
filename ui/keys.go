package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"wisp/config"
)

// keymap holds the active bindings for every browser action. Each
// binding is resolved from the configuration, falling back to the
// built-in default when an action is left unmapped.
type keymap struct {
	Quit     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Forward  key.Binding
	Open     key.Binding
	Help     key.Binding
	Bookmark key.Binding
	Copy     key.Binding

	NextLine  key.Binding
	PrevLine  key.Binding
	FirstLine key.Binding
	LastLine  key.Binding
}

func newKeymap(keys map[string][]string) keymap {
	defaults := config.DefaultKeys()
	bind := func(action, desc string) key.Binding {
		names := keys[action]
		if len(names) == 0 {
			names = defaults[action]
		}
		return key.NewBinding(key.WithKeys(names...), key.WithHelp(names[0], desc))
	}
	return keymap{
		Quit:      bind("quit", "quit"),
		Enter:     bind("enter", "follow link"),
		Back:      bind("back", "back"),
		Forward:   bind("forward", "forward"),
		Open:      bind("open", "open url"),
		Help:      bind("help", "help"),
		Bookmark:  bind("bookmark", "bookmark"),
		Copy:      bind("copy", "copy link"),
		NextLine:  bind("next_line", "next link"),
		PrevLine:  bind("prev_line", "prev link"),
		FirstLine: bind("first_line", "top"),
		LastLine:  bind("last_line", "bottom"),
	}
}

// ShortHelp is the single-row hint shown under the status bar.
func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextLine, k.PrevLine, k.Enter, k.Back, k.Open, k.Help, k.Quit}
}

// FullHelp feeds the help overlay.
func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextLine, k.PrevLine, k.FirstLine, k.LastLine},
		{k.Enter, k.Back, k.Forward, k.Open},
		{k.Bookmark, k.Copy, k.Help, k.Quit},
	}
}
