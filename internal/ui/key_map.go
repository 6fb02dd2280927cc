package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
//
// The search view only reacts to keys that cannot be typed into the query.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	dismiss key.Binding
	back    key.Binding
	spotify key.Binding
	youtube key.Binding
	copy    key.Binding
	quit    key.Binding
	exit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		down:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "recommend")),
		dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "hide results")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		spotify: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "spotify")),
		youtube: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "youtube music")),
		copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		exit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.enter, k.dismiss, k.exit}
}

func (k keyMap) recommendHelp() []key.Binding {
	return []key.Binding{k.spotify, k.youtube, k.copy, k.back, k.quit}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.exit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.dismiss},
		{k.spotify, k.youtube, k.copy, k.back},
		{k.quit},
	}
}
