package browser

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/theme"
	"github.com/nhle/sortbase/internal/tree"
	"github.com/nhle/sortbase/internal/ui/format"
)

// Row wraps a list or an item so it can be used in a bubbles/list.
type Row struct {
	Entry  model.Entry
	Totals tree.Totals
	Counts tree.Counts
}

func listRow(l *model.List) Row {
	return Row{Entry: l, Totals: tree.ComputeTotals(l), Counts: tree.CountContents(l)}
}

func itemRow(it *model.Item) Row {
	return Row{Entry: it}
}

// FilterValue returns the string used by the list's own filtering, which
// is disabled; searching goes through the view state instead.
func (r Row) FilterValue() string { return r.Entry.GetName() }

// Title returns the entry name.
func (r Row) Title() string { return r.Entry.GetName() }

// Description returns a short summary line.
func (r Row) Description() string {
	if l, ok := r.Entry.(*model.List); ok {
		return fmt.Sprintf("%s | %d items | %d sublists", l.Category, r.Counts.Items, r.Counts.Sublists)
	}
	return r.Entry.GetCreatedAt().Format("2006-01-02")
}

// RowDelegate renders inventory rows.
type RowDelegate struct {
	format format.Formatter
}

// Height returns the number of lines per row.
func (d RowDelegate) Height() int { return 1 }

// Spacing returns the gap between rows.
func (d RowDelegate) Spacing() int { return 0 }

// Update handles per-row messages.
func (d RowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws one row.
func (d RowDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	r, ok := li.(Row)
	if !ok {
		return
	}
	isSelected := index == m.Index()

	var line string
	switch e := r.Entry.(type) {
	case *model.List:
		line = d.renderList(e, r)
	case *model.Item:
		line = d.renderItem(e)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

func (d RowDelegate) renderList(l *model.List, r Row) string {
	marker := theme.EntryBadgeStyle(true).Render("▸")
	category := ""
	if l.Category != "" {
		category = theme.CategoryStyle.Render(l.Category)
	}
	counts := theme.DimmedStyle.Render(fmt.Sprintf(
		"%s items · %s sublists", format.Count(r.Counts.Items), format.Count(r.Counts.Sublists),
	))

	figures := ""
	if !l.HideFinancials {
		figures = "  " + d.renderProfit(r.Totals.CurrentValue, r.Totals.Profit)
	}

	return fmt.Sprintf("%s %s%s  %s%s", marker, l.Name, category, counts, figures)
}

func (d RowDelegate) renderItem(it *model.Item) string {
	marker := theme.EntryBadgeStyle(false).Render("•")

	var extras []string
	if n := len(it.ImageURLs); n > 0 {
		extras = append(extras, fmt.Sprintf("%d img", n))
	}
	if n := len(it.Properties); n > 0 {
		extras = append(extras, fmt.Sprintf("%d props", n))
	}
	extra := ""
	if len(extras) > 0 {
		extra = " " + theme.DimmedStyle.Render(strings.Join(extras, " · "))
	}

	figures := theme.DimmedStyle.Render("financials hidden")
	if !it.HideFinancials {
		figures = d.renderProfit(it.CurrentValue, tree.ComputeProfit(it))
	}

	return fmt.Sprintf("%s %s%s  %s", marker, it.Name, extra, figures)
}

func (d RowDelegate) renderProfit(value, profit model.Amount) string {
	class := format.Classify(profit)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		d.format.Money(value),
		" ",
		theme.ProfitStyle(class.String()).Render("("+d.format.Profit(profit)+")"),
	)
}
