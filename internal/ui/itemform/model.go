package itemform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/theme"
)

// SubmitMsg is dispatched when the form is completed. ItemID is empty for
// a new item.
type SubmitMsg struct {
	ListID string
	ItemID string
	Input  model.ItemInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name           string
	purchasePrice  string
	currentValue   string
	images         string
	properties     string
	hideFinancials bool
}

// Model is the Bubble Tea model for the item create/edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	listID string
	editID string
	width  int
	height int
}

// New creates a new item form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new item in listID.
func (m *Model) StartCreate(listID string) tea.Cmd {
	m.listID = listID
	m.editID = ""
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing item.
func (m *Model) StartEdit(listID string, it *model.Item) tea.Cmd {
	m.listID = listID
	m.editID = it.ID
	*m.fb = formBindings{
		name:           it.Name,
		purchasePrice:  it.PurchasePrice.String(),
		currentValue:   it.CurrentValue.String(),
		images:         strings.Join(it.ImageURLs, "\n"),
		properties:     FormatProperties(it.Properties),
		hideFinancials: it.HideFinancials,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Editing reports whether an existing item is being edited.
func (m Model) Editing() bool { return m.editID != "" }

// Update handles messages for the item form.
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

// View renders the item form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Item"
	if m.Editing() {
		titleText = "Edit Item"
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

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("What is it?").
				CharLimit(model.MaxNameLength).
				Value(&m.fb.name).
				Validate(validateName),
			huh.NewInput().
				Title("Purchase price").
				Placeholder("optional, e.g. 12.50").
				Value(&m.fb.purchasePrice).
				Validate(validateAmount),
			huh.NewInput().
				Title("Current value").
				Placeholder("optional").
				Value(&m.fb.currentValue).
				Validate(validateAmount),
			huh.NewConfirm().
				Title("Hide financials").
				Affirmative("Hide").
				Negative("Show").
				Value(&m.fb.hideFinancials),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Image URLs").
				Description(fmt.Sprintf("One per line, up to %d.", model.MaxImagesPerItem)).
				Value(&m.fb.images).
				Validate(validateImages),
			huh.NewText().
				Title("Properties").
				Description("One \"key: value\" per line. Numbers are stored as numbers.").
				Value(&m.fb.properties).
				Validate(validateProperties),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	props, _ := ParseProperties(m.fb.properties)
	in := model.ItemInput{
		Name:           m.fb.name,
		ImageURLs:      ParseImages(m.fb.images),
		PurchasePrice:  model.ParseAmount(m.fb.purchasePrice),
		CurrentValue:   model.ParseAmount(m.fb.currentValue),
		Properties:     props,
		HideFinancials: m.fb.hideFinancials,
	}
	listID, itemID := m.listID, m.editID
	return func() tea.Msg { return SubmitMsg{ListID: listID, ItemID: itemID, Input: in} }
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
