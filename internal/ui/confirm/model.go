// Package confirm is the yes/no dialog shown before deleting a list or an
// item.
package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Target identifies what is about to be deleted. ItemID is empty when a
// whole list is deleted.
type Target struct {
	ListID string
	ItemID string
	Name   string
}

// DoneMsg reports the user's answer.
type DoneMsg struct {
	Target    Target
	Confirmed bool
}

// Model is the delete confirmation dialog.
type Model struct {
	form    *huh.Form
	answer  *bool
	target  Target
	details string
	width   int
	height  int
}

// New creates a confirmation model.
func New(width, height int) Model {
	return Model{answer: new(bool), width: width, height: height}
}

// Start asks to delete t. details describes what else goes with it.
func (m *Model) Start(t Target, details string) tea.Cmd {
	m.target = t
	m.details = details
	*m.answer = false

	kind := "item"
	if t.ItemID == "" {
		kind = "list"
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s %q?", kind, t.Name)).
				Description(details).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(m.answer),
		),
	).WithWidth(min(max(m.width-4, 40), 100))
	return m.form.Init()
}

// Update handles messages for the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	done := DoneMsg{Target: m.target}
	switch m.form.State {
	case huh.StateCompleted:
		done.Confirmed = *m.answer
		return m, func() tea.Msg { return done }
	case huh.StateAborted:
		return m, func() tea.Msg { return done }
	}
	return m, cmd
}

// View renders the dialog.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
