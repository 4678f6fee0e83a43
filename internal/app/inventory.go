package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/tree"
	"github.com/nhle/sortbase/internal/ui/browser"
	"github.com/nhle/sortbase/internal/ui/confirm"
	"github.com/nhle/sortbase/internal/ui/itemform"
	"github.com/nhle/sortbase/internal/ui/listform"
)

// startNew opens the form for a top-level list on the overview and for an
// item inside a list.
func (m *Model) startNew() tea.Cmd {
	if m.browser.IsOverview() {
		m.setView(ViewListForm)
		return m.listForm.StartCreate()
	}
	m.setView(ViewItemForm)
	return m.itemForm.StartCreate(m.browser.ListID())
}

func (m *Model) startNewSublist() tea.Cmd {
	parent := m.session.FindList(m.browser.ListID())
	if parent == nil {
		return nil
	}
	if parent.Level+1 > model.MaxNestingLevel {
		m.notice = fmt.Sprintf("Limit reached: lists nest at most %d levels deep", model.MaxNestingLevel)
		return nil
	}
	m.setView(ViewListForm)
	return m.listForm.StartCreateSublist(parent.ID)
}

// startEditSelected edits the item in the detail view or the focused row.
func (m *Model) startEditSelected() tea.Cmd {
	if m.currentView == ViewItem {
		if it := m.detail.Item(); it != nil {
			listID := m.detail.ListID()
			m.setView(ViewItemForm)
			return m.itemForm.StartEdit(listID, it)
		}
		return nil
	}

	r, ok := m.browser.SelectedRow()
	if !ok {
		return nil
	}
	switch e := r.Entry.(type) {
	case *model.List:
		m.setView(ViewListForm)
		return m.listForm.StartEdit(e)
	case *model.Item:
		m.setView(ViewItemForm)
		return m.itemForm.StartEdit(m.browser.ListID(), e)
	}
	return nil
}

func (m *Model) startEditCurrentList() tea.Cmd {
	l := m.session.FindList(m.browser.ListID())
	if l == nil {
		return nil
	}
	m.setView(ViewListForm)
	return m.listForm.StartEdit(l)
}

// startDelete asks before removing the item in view or the focused row.
func (m *Model) startDelete() tea.Cmd {
	var t confirm.Target
	details := "This cannot be undone."

	if m.currentView == ViewItem {
		it := m.detail.Item()
		if it == nil {
			return nil
		}
		t = confirm.Target{ListID: m.detail.ListID(), ItemID: it.ID, Name: it.Name}
	} else {
		r, ok := m.browser.SelectedRow()
		if !ok {
			return nil
		}
		switch e := r.Entry.(type) {
		case *model.List:
			t = confirm.Target{ListID: e.ID, Name: e.Name}
			c := tree.CountContents(e)
			if c.Items > 0 || c.Sublists > 0 {
				details = fmt.Sprintf("Its %d sublists and %d items are deleted with it.", c.Sublists, c.Items)
			}
		case *model.Item:
			t = confirm.Target{ListID: m.browser.ListID(), ItemID: e.ID, Name: e.Name}
		}
	}

	m.setView(ViewConfirm)
	return m.confirmView.Start(t, details)
}

func (m *Model) finishDelete(msg confirm.DoneMsg) {
	back := m.previousView
	if !msg.Confirmed {
		m.setView(back)
		return
	}

	ctx := context.Background()
	t := msg.Target
	var err error
	if t.ItemID != "" {
		err = m.session.DeleteItem(ctx, t.ListID, t.ItemID)
		if back == ViewItem {
			back = ViewBrowser
			m.browser.ShowList(t.ListID)
		}
	} else {
		err = m.session.DeleteList(ctx, t.ListID)
	}
	m.setView(back)
	if err != nil {
		m.report(err)
		return
	}
	m.browser.Reload()
}

func (m *Model) submitList(msg listform.SubmitMsg) tea.Cmd {
	ctx := context.Background()
	var (
		l   *model.List
		err error
	)
	switch msg.Mode {
	case listform.ModeCreate:
		l, err = m.session.CreateList(ctx, msg.Input)
	case listform.ModeCreateSublist:
		l, err = m.session.CreateSublist(ctx, msg.TargetID, msg.Input)
	case listform.ModeEdit:
		l, err = m.session.UpdateList(ctx, msg.TargetID, msg.Input)
	}
	m.setView(m.previousView)
	if err != nil {
		m.report(err)
		return nil
	}
	m.browser.Reload()
	if msg.Mode == listform.ModeEdit {
		return nil
	}
	id := l.ID
	return func() tea.Msg { return browser.OpenListMsg{ListID: id} }
}

func (m *Model) submitItem(msg itemform.SubmitMsg) tea.Cmd {
	ctx := context.Background()
	var err error
	if msg.ItemID == "" {
		_, err = m.session.CreateItem(ctx, msg.ListID, msg.Input)
	} else {
		_, err = m.session.UpdateItem(ctx, msg.ListID, msg.ItemID, msg.Input)
	}
	m.setView(m.previousView)
	if err != nil {
		m.report(err)
		return nil
	}
	if m.currentView == ViewItem {
		m.detail.Refresh()
	}
	m.browser.Reload()
	return nil
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	ctx := context.Background()
	switch cmd {
	case "quit", "q":
		return tea.Quit
	case "new list":
		m.setView(ViewListForm)
		return m.listForm.StartCreate()
	case "new sublist":
		if m.browser.IsOverview() {
			return nil
		}
		return m.startNewSublist()
	case "new item":
		if m.browser.IsOverview() {
			m.notice = "Open a list first"
			return nil
		}
		m.setView(ViewItemForm)
		return m.itemForm.StartCreate(m.browser.ListID())
	case "edit":
		return m.startEditSelected()
	case "delete":
		return m.startDelete()
	case "overview", "home":
		m.browser.ShowOverview()
		m.setView(ViewBrowser)
		return nil
	case "save":
		if err := m.session.Save(ctx); err != nil {
			m.notice = "Save failed: " + err.Error()
		}
		return nil
	case "clear search":
		m.browser.SetQuery("")
		return nil
	}

	if field, ok := sortCommands[cmd]; ok {
		m.browser.SetSortField(field)
		return nil
	}
	if mode, ok := viewCommands[cmd]; ok && !m.browser.IsOverview() {
		m.browser.SetViewMode(mode)
		return nil
	}
	m.notice = fmt.Sprintf("Unknown command %q", cmd)
	return nil
}

var sortCommands = map[string]model.SortField{
	"sort name":     model.SortByName,
	"sort category": model.SortByCategory,
	"sort purchase": model.SortByPurchasePrice,
	"sort value":    model.SortByCurrentValue,
	"sort created":  model.SortByCreatedAt,
}

var viewCommands = map[string]model.ViewMode{
	"view all":      model.ViewAll,
	"view sublists": model.ViewSublists,
	"view items":    model.ViewItems,
}
