package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sortbase/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Commands are the names the palette completes.
var Commands = []string{
	"new list",
	"new sublist",
	"new item",
	"edit",
	"delete",
	"overview",
	"sort name",
	"sort category",
	"sort purchase",
	"sort value",
	"sort created",
	"view all",
	"view sublists",
	"view items",
	"clear search",
	"save",
	"quit",
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Commands)
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		cmd := strings.ToLower(strings.TrimSpace(m.input.Value()))
		m.input.Reset()
		if cmd != "" {
			return m, func() tea.Msg {
				return CommandMsg(cmd)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()
	hint := theme.HelpStyle.Render("tab completes · " + strings.Join(Commands[:4], ", ") + ", …")

	content := lipgloss.JoinVertical(lipgloss.Left, title, input, "", hint)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	return m.input.Focus()
}
