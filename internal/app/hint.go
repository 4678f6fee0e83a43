package app

import (
	"fmt"
	"strings"

	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/theme"
	"github.com/nhle/sortbase/internal/tree"
	"github.com/nhle/sortbase/internal/ui/format"
)

// hintRegister remembers the one entity whose financials info box is open.
// The root model owns it, so a hint opened in one view cannot leak into
// another.
type hintRegister struct {
	id     string
	isList bool
}

func (h hintRegister) open() bool { return h.id != "" }

func (h *hintRegister) clear() { *h = hintRegister{} }

// toggle opens the hint for e, or closes it when it is already open for e.
// Opening it for e closes any other.
func (h *hintRegister) toggle(e model.Entry) {
	if h.id == e.GetID() {
		h.clear()
		return
	}
	*h = hintRegister{id: e.GetID(), isList: e.IsList()}
}

// focusedEntry is the entity the hint key applies to in the active view.
func (m Model) focusedEntry() model.Entry {
	switch m.currentView {
	case ViewItem:
		if it := m.detail.Item(); it != nil {
			return it
		}
	case ViewBrowser:
		if r, ok := m.browser.SelectedRow(); ok {
			return r.Entry
		}
		if l := m.session.FindList(m.browser.ListID()); l != nil {
			return l
		}
	}
	return nil
}

func (m *Model) toggleHint() {
	if e := m.focusedEntry(); e != nil {
		m.hint.toggle(e)
	}
}

// renderHint explains the figures of the hinted entity. It renders nothing
// once the focus has moved elsewhere.
func (m Model) renderHint() string {
	if !m.hint.open() {
		return ""
	}
	e := m.focusedEntry()
	if e == nil || e.GetID() != m.hint.id {
		return ""
	}
	return theme.HintStyle.Render(strings.Join(financialsInfo(e, m.format), "\n"))
}

func financialsInfo(e model.Entry, f format.Formatter) []string {
	if e.FinancialsHidden() {
		lines := []string{fmt.Sprintf("Financials of %q are hidden.", e.GetName())}
		if e.IsList() {
			return append(lines, "Its sublists and items still show their own figures.")
		}
		return append(lines, "Its figures still count towards the totals of its lists.")
	}

	switch v := e.(type) {
	case *model.List:
		t := tree.ComputeTotals(v)
		c := tree.CountContents(v)
		return []string{
			fmt.Sprintf("Totals over %s items in %s sublists:", format.Count(c.Items), format.Count(c.Sublists)),
			fmt.Sprintf("paid %s, worth %s", f.Money(t.PurchasePrice), f.Money(t.CurrentValue)),
			fmt.Sprintf("%s: %s", format.Label(format.Classify(t.Profit)), f.Profit(t.Profit)),
			"Items without a price or value are left out of that sum.",
		}
	case *model.Item:
		p := tree.ComputeProfit(v)
		if !p.Valid() {
			return []string{"Profit needs both a purchase price and a current value."}
		}
		return []string{fmt.Sprintf("%s %s - %s = %s",
			format.Label(format.Classify(p)), f.Money(v.CurrentValue), f.Money(v.PurchasePrice), f.Profit(p))}
	}
	return nil
}
