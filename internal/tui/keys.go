package tui

import "github.com/charmbracelet/bubbles/key"

var quitKeys = key.NewBinding(
	key.WithKeys("q", "esc", "ctrl+c"),
	key.WithHelp("q", "quit"),
)

var actionKeys = key.NewBinding(
	key.WithKeys("1", "2", "3", "4"),
	key.WithHelp("1-4", "run action"),
)

var detailsKeys = key.NewBinding(
	key.WithKeys("enter"),
	key.WithHelp("enter", "device details"),
)

var cancelKeys = key.NewBinding(
	key.WithKeys("c"),
	key.WithHelp("c", "cancel action"),
)

var helpBindings = []key.Binding{actionKeys, detailsKeys, cancelKeys, quitKeys}
