package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding
	Prev key.Binding
	Next key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Editing
	New        key.Binding
	NewSublist key.Binding
	Edit       key.Binding
	EditList   key.Binding
	Delete     key.Binding

	// Sort and view
	CycleSort key.Binding
	FlipSort  key.Binding
	CycleView key.Binding

	// Financials hint
	Hint key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Prev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous item"),
		),
		Next: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next item"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new list/item"),
		),
		NewSublist: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new sublist"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit selected"),
		),
		EditList: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit this list"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle sort"),
		),
		FlipSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "flip direction"),
		),
		CycleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "cycle view"),
		),
		Hint: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "financials info"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Search, k.Command, k.Help, k.Hint},
		{k.New, k.NewSublist, k.Edit, k.EditList, k.Delete},
		{k.CycleSort, k.FlipSort, k.CycleView, k.Prev, k.Next},
	}
}
