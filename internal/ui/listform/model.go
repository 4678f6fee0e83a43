package listform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/theme"
)

// Mode says what the form is editing.
type Mode int

const (
	ModeCreate Mode = iota
	ModeCreateSublist
	ModeEdit
)

// SubmitMsg is dispatched when the form is completed. TargetID is the
// parent for ModeCreateSublist and the edited list for ModeEdit.
type SubmitMsg struct {
	Mode     Mode
	TargetID string
	Input    model.ListInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

type formBindings struct {
	name           string
	category       string
	imageURL       string
	hideFinancials bool
}

// Model is the Bubble Tea model for the list create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	mode     Mode
	targetID string
	width    int
	height   int
}

// New creates a new list form model.
func New(width, height int) Model {
	return Model{
		fb:    &formBindings{},
		width: width, height: height,
	}
}

// StartCreate initializes the form for a new top-level list.
func (m *Model) StartCreate() tea.Cmd {
	return m.start(ModeCreate, "", model.ListInput{})
}

// StartCreateSublist initializes the form for a new list under parentID.
func (m *Model) StartCreateSublist(parentID string) tea.Cmd {
	return m.start(ModeCreateSublist, parentID, model.ListInput{})
}

// StartEdit initializes the form with an existing list.
func (m *Model) StartEdit(l *model.List) tea.Cmd {
	return m.start(ModeEdit, l.ID, l.Input())
}

func (m *Model) start(mode Mode, target string, in model.ListInput) tea.Cmd {
	m.mode = mode
	m.targetID = target
	*m.fb = formBindings{
		name:           in.Name,
		category:       in.Category,
		imageURL:       in.ImageURL,
		hideFinancials: in.HideFinancials,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the list form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, cmd
}

// View renders the list form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New List"
	switch m.mode {
	case ModeCreateSublist:
		titleText = "New Sublist"
	case ModeEdit:
		titleText = "Edit List"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("List name").
				CharLimit(model.MaxNameLength).
				Value(&m.fb.name).
				Validate(func(s string) error {
					return model.ListInput{Name: s}.Validate()
				}),
			huh.NewInput().
				Title("Category").
				Placeholder("Optional, e.g. Cameras").
				CharLimit(model.MaxCategoryLength).
				Value(&m.fb.category).
				Validate(func(s string) error {
					return model.ListInput{Name: "-", Category: s}.Validate()
				}),
			huh.NewInput().
				Title("Image URL").
				Placeholder("Optional").
				Value(&m.fb.imageURL),
			huh.NewConfirm().
				Title("Hide financials").
				Affirmative("Hide").
				Negative("Show").
				Value(&m.fb.hideFinancials),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmitMsg{
		Mode:     m.mode,
		TargetID: m.targetID,
		Input: model.ListInput{
			Name:           m.fb.name,
			Category:       m.fb.category,
			ImageURL:       m.fb.imageURL,
			HideFinancials: m.fb.hideFinancials,
		},
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
