package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sortbase/internal/inventory"
	"github.com/nhle/sortbase/internal/keys"
	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/theme"
	"github.com/nhle/sortbase/internal/tree"
	"github.com/nhle/sortbase/internal/ui/format"
)

// BackMsg signals the parent to navigate back to the owning list.
type BackMsg struct{}

// Model is the item detail view component.
type Model struct {
	session  *inventory.Session
	keys     *keys.KeyMap
	format   format.Formatter
	listID   string
	item     *model.Item
	viewport viewport.Model
	width    int
	height   int
}

// New creates a new detail view model.
func New(s *inventory.Session, keys *keys.KeyMap, f format.Formatter, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		session:  s,
		keys:     keys,
		format:   f,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Show loads an item of a list. It reports false when either is gone.
func (m *Model) Show(listID, itemID string) bool {
	it, err := m.session.FindItem(listID, itemID)
	if err != nil {
		m.item = nil
		return false
	}
	m.listID = listID
	m.item = it
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
	return true
}

// Refresh re-renders the current item after an edit.
func (m *Model) Refresh() bool {
	if m.item == nil {
		return false
	}
	return m.Show(m.listID, m.item.ID)
}

// ListID returns the list owning the shown item.
func (m Model) ListID() string { return m.listID }

// Item returns the shown item.
func (m Model) Item() *model.Item { return m.item }

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.Prev):
			if m.item != nil {
				if prev, _ := m.session.Neighbours(m.listID, m.item.ID); prev != nil {
					m.Show(m.listID, prev.ID)
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if m.item != nil {
				if _, next := m.session.Neighbours(m.listID, m.item.ID); next != nil {
					m.Show(m.listID, next.ID)
				}
			}
			return m, nil
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.item == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No item selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	it := m.item
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(it.Name))
	sections = append(sections, theme.DimmedStyle.Render(m.position()))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	row := func(label, value string) string {
		return fmt.Sprintf("%s %s", metaStyle.Render(fmt.Sprintf("%-15s", label+":")), valStyle.Render(value))
	}

	if it.HideFinancials {
		sections = append(sections, metaStyle.Italic(true).Render("Financials hidden for this item"))
	} else {
		profit := tree.ComputeProfit(it)
		class := format.Classify(profit)
		sections = append(sections,
			row("Purchase price", m.format.Money(it.PurchasePrice)),
			row("Current value", m.format.Money(it.CurrentValue)),
			fmt.Sprintf("%s %s",
				metaStyle.Render(fmt.Sprintf("%-15s", format.Label(class)+":")),
				theme.ProfitStyle(class.String()).Render(m.format.Profit(profit)),
			),
		)
	}
	if !it.CreatedAt.IsZero() {
		sections = append(sections, row("Created", it.CreatedAt.Local().Format("2006-01-02 15:04")))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	sections = append(sections, "", separator, "")
	sections = append(sections, headerStyle.Render(fmt.Sprintf("Properties (%d)", len(it.Properties))))
	if len(it.Properties) == 0 {
		sections = append(sections, metaStyle.Italic(true).Render("No properties"))
	}
	for _, p := range it.Properties {
		sections = append(sections, row(p.Key, p.Value.String()))
	}

	sections = append(sections, "", separator, "")
	sections = append(sections, headerStyle.Render(fmt.Sprintf("Images (%d)", len(it.ImageURLs))))
	if len(it.ImageURLs) == 0 {
		sections = append(sections, metaStyle.Italic(true).Render("No images"))
	}
	linkStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue).Underline(true)
	for _, u := range it.ImageURLs {
		sections = append(sections, linkStyle.Render(u))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// position describes where the item sits in its list's visible order.
func (m Model) position() string {
	prev, next := m.session.Neighbours(m.listID, m.item.ID)
	var parts []string
	if prev != nil {
		parts = append(parts, "[ "+prev.Name)
	}
	if next != nil {
		parts = append(parts, next.Name+" ]")
	}
	return strings.Join(parts, "   ")
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.item != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
