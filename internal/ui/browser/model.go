// Package browser is the scrolling view over the top-level lists and over
// the contents of one list.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sortbase/internal/inventory"
	"github.com/nhle/sortbase/internal/keys"
	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/theme"
	"github.com/nhle/sortbase/internal/tree"
	"github.com/nhle/sortbase/internal/ui/format"
	"github.com/nhle/sortbase/internal/viewstate"
)

// OpenListMsg is sent when the user opens a list.
type OpenListMsg struct {
	ListID string
}

// OpenItemMsg is sent when the user opens an item.
type OpenItemMsg struct {
	ListID string
	ItemID string
}

// Model is the browser view component. With an empty list id it shows the
// overview of top-level lists.
type Model struct {
	session     *inventory.Session
	keys        *keys.KeyMap
	format      format.Formatter
	listID      string
	list        list.Model
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a browser showing the overview.
func New(s *inventory.Session, k *keys.KeyMap, f format.Formatter, width, height int) Model {
	l := list.New([]list.Item{}, RowDelegate{format: f}, width, height-2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "search..."
	si.Prompt = "/ "
	si.Width = width - 4

	m := Model{
		session:     s,
		keys:        k,
		format:      f,
		list:        l,
		searchInput: si,
		width:       width,
		height:      height,
	}
	m.Reload()
	return m
}

// ListID returns the id of the shown list, empty on the overview.
func (m Model) ListID() string { return m.listID }

// IsOverview reports whether the top-level lists are shown.
func (m Model) IsOverview() bool { return m.listID == "" }

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searchMode }

// ShowOverview switches to the top-level lists.
func (m *Model) ShowOverview() {
	m.listID = ""
	m.searchMode = false
	m.list.ResetSelected()
	m.Reload()
}

// ShowList switches to the contents of a list.
func (m *Model) ShowList(id string) {
	m.listID = id
	m.searchMode = false
	m.list.ResetSelected()
	m.Reload()
}

// Reload rebuilds the rows from the session, keeping the selection on the
// same entry when it is still visible.
func (m *Model) Reload() {
	selected := ""
	if r, ok := m.SelectedRow(); ok {
		selected = r.Entry.GetID()
	}

	var rows []list.Item
	if m.IsOverview() {
		for _, l := range m.session.OverviewLists() {
			rows = append(rows, listRow(l))
		}
	} else {
		v, err := m.session.Contents(m.listID)
		if err != nil {
			m.listID = ""
			m.Reload()
			return
		}
		for _, l := range v.Sublists {
			rows = append(rows, listRow(l))
		}
		for _, it := range v.Items {
			rows = append(rows, itemRow(it))
		}
	}
	m.list.SetItems(rows)

	for i, r := range rows {
		if r.(Row).Entry.GetID() == selected {
			m.list.Select(i)
			return
		}
	}
	if m.list.Index() >= len(rows) && len(rows) > 0 {
		m.list.Select(len(rows) - 1)
	}
}

// SelectedRow returns the focused row.
func (m Model) SelectedRow() (Row, bool) {
	r, ok := m.list.SelectedItem().(Row)
	return r, ok
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.SetQuery(strings.TrimSpace(m.searchInput.Value()))
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.SetQuery("")
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		r, ok := m.SelectedRow()
		if !ok {
			return m, nil
		}
		if r.Entry.IsList() {
			id := r.Entry.GetID()
			return m, func() tea.Msg { return OpenListMsg{ListID: id} }
		}
		listID, itemID := m.listID, r.Entry.GetID()
		return m, func() tea.Msg { return OpenItemMsg{ListID: listID, ItemID: itemID} }

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.query())
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleSort):
		m.CycleSort()
		return m, nil

	case key.Matches(msg, m.keys.FlipSort):
		m.FlipSort()
		return m, nil

	case key.Matches(msg, m.keys.CycleView):
		m.CycleView()
		return m, nil
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// update applies fn to the preferences of the shown view, saves them and
// rebuilds the rows. The overview has no view mode, and a sort field it
// does not offer falls back to name.
func (m *Model) update(fn func(e *viewstate.Entry, fields []model.SortField)) {
	ctx := context.Background()
	if m.IsOverview() {
		o := m.session.Overview()
		e := viewstate.Entry{ViewMode: model.ViewAll, SortField: o.SortField, Ascending: o.Ascending, Query: o.Query}
		fn(&e, model.ListSortFields)
		m.session.SetOverview(ctx, viewstate.OverviewState{SortField: e.SortField, Ascending: e.Ascending, Query: e.Query})
	} else {
		e := m.session.ViewState(m.listID)
		fn(&e, model.CombinedSortFields)
		if err := m.session.SetViewState(ctx, m.listID, e); err != nil {
			return
		}
	}
	m.Reload()
}

// CycleSort moves to the next sort field offered by the current view.
func (m *Model) CycleSort() {
	m.update(func(e *viewstate.Entry, fields []model.SortField) { e.SortField = e.SortField.Next(fields) })
}

// FlipSort reverses the sort direction.
func (m *Model) FlipSort() {
	m.update(func(e *viewstate.Entry, _ []model.SortField) { e.Ascending = !e.Ascending })
}

// SetSortField sorts by f.
func (m *Model) SetSortField(f model.SortField) {
	m.update(func(e *viewstate.Entry, _ []model.SortField) { e.SortField = f })
}

// SetQuery filters the shown entries by q.
func (m *Model) SetQuery(q string) {
	m.update(func(e *viewstate.Entry, _ []model.SortField) { e.Query = q })
}

// CycleView moves to the next view mode. The overview has none.
func (m *Model) CycleView() {
	if m.IsOverview() {
		return
	}
	m.update(func(e *viewstate.Entry, _ []model.SortField) { e.ViewMode = e.ViewMode.Next() })
}

// SetViewMode shows the sections selected by mode.
func (m *Model) SetViewMode(mode model.ViewMode) {
	if m.IsOverview() {
		return
	}
	m.update(func(e *viewstate.Entry, _ []model.SortField) { e.ViewMode = mode })
}

func (m Model) query() string {
	if m.IsOverview() {
		return m.session.Overview().Query
	}
	return m.session.ViewState(m.listID).Query
}

// Summary describes the active sort, view mode and query.
func (m Model) Summary() string {
	var field model.SortField
	var asc bool
	parts := []string{}
	if m.IsOverview() {
		o := m.session.Overview()
		field, asc = o.SortField, o.Ascending
	} else {
		e := m.session.ViewState(m.listID)
		field, asc = e.SortField, e.Ascending
		parts = append(parts, "view: "+e.ViewMode.Label())
	}
	dir := "↑"
	if !asc {
		dir = "↓"
	}
	parts = append([]string{fmt.Sprintf("sort: %s %s", field.Label(), dir)}, parts...)
	if q := m.query(); q != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q))
	}
	return strings.Join(parts, " · ")
}

// View renders the browser.
func (m Model) View() string {
	sections := []string{}
	if head := m.renderListHeader(); head != "" {
		sections = append(sections, head)
	}
	sections = append(sections, theme.DimmedStyle.Render(m.Summary()))

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		sections = append(sections, searchBar)
	}

	if len(m.list.Items()) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections, m.list.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderListHeader shows the totals of the current list.
func (m Model) renderListHeader() string {
	if m.IsOverview() {
		return ""
	}
	l := m.session.FindList(m.listID)
	if l == nil {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render(l.Name)
	if l.Category != "" {
		title += theme.CategoryStyle.Render(l.Category)
	}
	if l.HideFinancials {
		return title
	}
	t := tree.ComputeTotals(l)
	class := format.Classify(t.Profit)
	figures := fmt.Sprintf("paid %s · worth %s · %s ",
		m.format.Money(t.PurchasePrice), m.format.Money(t.CurrentValue), strings.ToLower(format.Label(class)))
	return title + "  " + theme.DimmedStyle.Render(figures) +
		theme.ProfitStyle(class.String()).Render(m.format.Profit(t.Profit))
}

// renderEmptyState shows guidance text when nothing is visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-4).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.query() != "" {
		return style.Render("Nothing matches the search.\nPress / then esc to clear it.")
	}
	if m.IsOverview() {
		return style.Render("No lists yet.\n\nPress n to create one.")
	}
	return style.Render("This list is empty.\n\nPress n to add an item or N for a sublist.")
}

// SetSize updates the browser dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-4)
	m.searchInput.Width = width - 4
}
