package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sortbase/internal/inventory"
	"github.com/nhle/sortbase/internal/keys"
	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/store"
	"github.com/nhle/sortbase/internal/tree"
	"github.com/nhle/sortbase/internal/ui"
	"github.com/nhle/sortbase/internal/ui/browser"
	"github.com/nhle/sortbase/internal/ui/command"
	"github.com/nhle/sortbase/internal/ui/confirm"
	"github.com/nhle/sortbase/internal/ui/detail"
	"github.com/nhle/sortbase/internal/ui/format"
	helpview "github.com/nhle/sortbase/internal/ui/help"
	"github.com/nhle/sortbase/internal/ui/itemform"
	"github.com/nhle/sortbase/internal/ui/listform"
)

// sessionOpenedMsg carries the session loaded by Init.
type sessionOpenedMsg struct {
	session *inventory.Session
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewItem
	ViewHelp
	ViewCommand
	ViewListForm
	ViewItemForm
	ViewConfirm
)

// Options configures the root model.
type Options struct {
	Store    store.Store
	Source   string
	Currency string
	Locale   string
	Logger   *slog.Logger
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and the inventory session.
type Model struct {
	opts         Options
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	session      *inventory.Session
	keys         *keys.KeyMap
	format       format.Formatter
	browser      browser.Model
	detail       detail.Model
	helpView     helpview.Model
	commandView  command.Model
	listForm     listform.Model
	itemForm     itemform.Model
	confirmView  confirm.Model
	hint         hintRegister
	notice       string
	ready        bool
	loaded       bool
}

// New creates a new root application model. The document is loaded by
// Init.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	k := keys.DefaultKeyMap()
	return Model{
		opts:        opts,
		currentView: ViewBrowser,
		keys:        k,
		format:      format.New(opts.Currency),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		listForm:    listform.New(80, 24),
		itemForm:    itemform.New(80, 24),
		confirmView: confirm.New(80, 24),
		layout:      ui.NewLayout(80, 24),
	}
}

// Init returns the command that loads the inventory.
func (m Model) Init() tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		s := inventory.Open(context.Background(), opts.Store,
			inventory.WithLogger(opts.Logger),
			inventory.WithLocale(opts.Locale),
		)
		return sessionOpenedMsg{session: s}
	}
}

// Session returns the loaded session, nil before Init has finished.
func (m Model) Session() *inventory.Session { return m.session }

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sessionOpenedMsg:
		m.adoptSession(msg.session)
		return m, nil

	case browser.OpenListMsg:
		m.browser.ShowList(msg.ListID)
		m.setView(ViewBrowser)
		return m, nil

	case browser.OpenItemMsg:
		if m.detail.Show(msg.ListID, msg.ItemID) {
			m.setView(ViewItem)
		}
		return m, nil

	case detail.BackMsg:
		m.browser.ShowList(m.detail.ListID())
		m.setView(ViewBrowser)
		return m, nil

	case listform.SubmitMsg:
		return m, m.submitList(msg)

	case listform.CancelMsg:
		m.setView(m.previousView)
		return m, nil

	case itemform.SubmitMsg:
		return m, m.submitItem(msg)

	case itemform.CancelMsg:
		m.setView(m.previousView)
		return m, nil

	case confirm.DoneMsg:
		m.finishDelete(msg)
		return m, nil

	case command.CommandMsg:
		m.setView(m.previousView)
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if !m.loaded {
			if msg.String() == "ctrl+c" || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		m.notice = ""
		if next, cmd, handled := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work across views. Views that own a
// text input get every key except ctrl+c.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}
	if m.capturesInput() {
		if key.Matches(msg, m.keys.Back) && m.currentView != ViewBrowser {
			// Cancels forms, the dialog and the palette alike.
			m.setView(m.previousView)
			return m, nil, true
		}
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView == ViewBrowser {
			return m, tea.Quit, true
		}

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.setView(m.previousView)
			return m, nil, true
		}
		m.setView(ViewHelp)
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		if m.currentView == ViewCommand {
			m.setView(m.previousView)
			return m, nil, true
		}
		m.setView(ViewCommand)
		return m, m.commandView.Focus(), true

	case key.Matches(msg, m.keys.Back):
		switch m.currentView {
		case ViewHelp:
			m.setView(m.previousView)
			return m, nil, true
		case ViewBrowser:
			m.goUp()
			return m, nil, true
		}

	case key.Matches(msg, m.keys.Hint):
		if m.currentView == ViewBrowser || m.currentView == ViewItem {
			m.toggleHint()
			return m, nil, true
		}

	case key.Matches(msg, m.keys.New):
		if m.currentView == ViewBrowser {
			return m, m.startNew(), true
		}

	case key.Matches(msg, m.keys.NewSublist):
		if m.currentView == ViewBrowser && !m.browser.IsOverview() {
			return m, m.startNewSublist(), true
		}

	case key.Matches(msg, m.keys.Edit):
		if m.currentView == ViewBrowser || m.currentView == ViewItem {
			return m, m.startEditSelected(), true
		}

	case key.Matches(msg, m.keys.EditList):
		if m.currentView == ViewBrowser && !m.browser.IsOverview() {
			return m, m.startEditCurrentList(), true
		}

	case key.Matches(msg, m.keys.Delete):
		if m.currentView == ViewBrowser || m.currentView == ViewItem {
			return m, m.startDelete(), true
		}
	}
	return m, nil, false
}

// capturesInput reports whether the active view owns the keyboard.
func (m Model) capturesInput() bool {
	switch m.currentView {
	case ViewCommand, ViewListForm, ViewItemForm, ViewConfirm:
		return true
	case ViewBrowser:
		return m.browser.Searching()
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewBrowser:
		m.browser, cmd = m.browser.Update(msg)
	case ViewItem:
		before := m.detail.Item()
		m.detail, cmd = m.detail.Update(msg)
		if m.detail.Item() != before {
			m.hint.clear()
		}
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewListForm:
		m.listForm, cmd = m.listForm.Update(msg)
	case ViewItemForm:
		m.itemForm, cmd = m.itemForm.Update(msg)
	case ViewConfirm:
		m.confirmView, cmd = m.confirmView.Update(msg)
	}
	return m, cmd
}

// setView switches the active view. The financials hint never survives a
// view change.
func (m *Model) setView(v ViewState) {
	if v != m.currentView {
		m.previousView = m.currentView
	}
	m.currentView = v
	m.hint.clear()
}

// goUp leaves the current list for its parent, or for the overview.
func (m *Model) goUp() {
	if m.browser.IsOverview() {
		return
	}
	if parent := m.session.FindParent(m.browser.ListID()); parent != nil {
		m.browser.ShowList(parent.ID)
	} else {
		m.browser.ShowOverview()
	}
	m.hint.clear()
}

func (m *Model) adoptSession(s *inventory.Session) {
	m.session = s
	m.loaded = true
	m.browser = browser.New(s, m.keys, m.format, 80, 24)
	m.detail = detail.New(s, m.keys, m.format, 80, 24)
	m.resize()
	if err := s.LoadError(); err != nil {
		m.notice = "Could not read the inventory, starting empty: " + err.Error()
	}
}

func (m *Model) resize() {
	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()
	if m.loaded {
		m.browser.SetSize(w, h)
		m.detail.SetSize(w, h)
	}
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
	m.listForm.SetSize(w, h)
	m.itemForm.SetSize(w, h)
	m.confirmView.SetSize(w, h)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready || !m.loaded {
		return "Loading..."
	}

	header := m.layout.RenderHeader(ui.Header{
		Title:   "SortBase",
		Counts:  m.counts(),
		Source:  m.opts.Source,
		Unsaved: m.session.SaveError() != nil,
	})
	content := m.renderContent()
	if h := m.renderHint(); h != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, h)
	}

	var statusBar string
	if msg := m.noticeText(); msg != "" {
		statusBar = m.layout.RenderNotice(msg)
	} else {
		statusBar = m.layout.RenderStatusBar(m.keyHints())
	}
	return m.layout.RenderWithFrame(header, m.breadcrumb(), content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBrowser:
		return m.browser.View()
	case ViewItem:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewListForm:
		return m.listForm.View()
	case ViewItemForm:
		return m.itemForm.View()
	case ViewConfirm:
		return m.confirmView.View()
	default:
		return ""
	}
}

// breadcrumb renders the path of the list in focus.
func (m Model) breadcrumb() string {
	id := m.browser.ListID()
	if m.currentView == ViewItem {
		id = m.detail.ListID()
	}
	names := []string{"Overview"}
	for _, c := range m.session.Breadcrumb(id) {
		names = append(names, c.Name)
	}
	if it := m.detail.Item(); m.currentView == ViewItem && it != nil {
		names = append(names, it.Name)
	}
	return m.layout.RenderBreadcrumb(names)
}

// counts summarises the entries under the list in focus, or the number
// of top-level lists on the overview.
func (m Model) counts() string {
	id := m.browser.ListID()
	if m.currentView == ViewItem {
		id = m.detail.ListID()
	}
	if id == "" {
		return format.Count(len(m.session.Lists())) + " lists"
	}
	l := m.session.FindList(id)
	if l == nil {
		return ""
	}
	c := tree.CountContents(l)
	return fmt.Sprintf("%s sublists · %s items", format.Count(c.Sublists), format.Count(c.Items))
}

// noticeText is the failure shown instead of the key hints, if any.
func (m Model) noticeText() string {
	if m.notice != "" {
		return m.notice
	}
	if err := m.session.SaveError(); err != nil {
		return "Save failed: " + err.Error()
	}
	return ""
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close command | tab complete | enter execute | esc back"
	case ViewItem:
		return "esc back | [ ] prev/next | e edit | d delete | i info | j/k scroll"
	case ViewListForm, ViewItemForm:
		return "enter next/submit | esc cancel"
	case ViewConfirm:
		return "←/→ choose | enter confirm | esc cancel"
	default:
		if m.browser.Searching() {
			return "enter apply | esc clear"
		}
		if m.browser.IsOverview() {
			return "q quit | ? help | n new list | / search | tab sort | s direction | i info"
		}
		return "esc up | n item | N sublist | E edit list | v view | tab sort | s direction | / search"
	}
}

// report shows a failed operation in the status line.
func (m *Model) report(err error) {
	var nf inventory.NotFoundError
	var capErr *model.CapacityError
	var valErr *model.ValidationError
	switch {
	case errors.As(err, &capErr):
		m.notice = "Limit reached: " + capErr.Error()
	case errors.As(err, &valErr):
		m.notice = "Invalid input: " + valErr.Error()
	case errors.As(err, &nf):
		m.notice = nf.Error()
		m.browser.ShowOverview()
		m.setView(ViewBrowser)
	default:
		m.notice = fmt.Sprintf("Error: %v", err)
	}
}
