package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the list bindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
	Search    key.Binding
	Clear     key.Binding

	Add     key.Binding
	Copy    key.Binding
	Export  key.Binding
	Delete  key.Binding
	Edit    key.Binding
	Preview key.Binding
	Sort    key.Binding
	Reverse key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Top:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		SelectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),

		Add:     key.NewBinding(key.WithKeys("+", "o"), key.WithHelp("+", "add")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Edit:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit")),
		Preview: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		Reverse: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "reverse sort")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Search, k.Add, k.Copy, k.Export, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Toggle, k.SelectAll, k.Search, k.Clear},
		{k.Add, k.Copy, k.Export, k.Delete, k.Edit},
		{k.Preview, k.Sort, k.Reverse, k.Help, k.Quit},
	}
}
