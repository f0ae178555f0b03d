package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the dashboard and the global keys.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	Open key.Binding // Show the selected ticket.
	Back key.Binding // Leave the ticket detail.

	Search  key.Binding
	Refresh key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Assign  key.Binding // Assign the ticket to yourself, or release it.

	// Comments of the open ticket.
	EditComment   key.Binding
	DeleteComment key.Binding

	// Panels.
	NewTicket  key.Binding
	Comment    key.Binding
	Label      key.Binding
	NextPanel  key.Binding
	Minimize   key.Binding
	ClosePanel key.Binding

	Logout    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Assign: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "assign me"),
	),
	EditComment: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit comment"),
	),
	DeleteComment: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete comment"),
	),
	NewTicket: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new ticket"),
	),
	Comment: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comment"),
	),
	Label: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "labels"),
	),
	NextPanel: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next panel"),
	),
	Minimize: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("C-w", "minimize"),
	),
	ClosePanel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "log out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

func helpLine(bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		h := b.Help()
		if i > 0 {
			out += "  "
		}
		out += h.Key + ": " + h.Desc
	}
	return helpStyle.Render(out)
}
