package tree

import (
	"strings"

	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/viewstate"
)

// FilterLists keeps lists whose name or category contains query, ignoring
// case. An empty query returns lists unchanged.
func FilterLists(lists []*model.List, query string) []*model.List {
	if query == "" {
		return lists
	}
	q := strings.ToLower(query)
	out := make([]*model.List, 0, len(lists))
	for _, l := range lists {
		if strings.Contains(strings.ToLower(l.Name), q) || strings.Contains(strings.ToLower(l.Category), q) {
			out = append(out, l)
		}
	}
	return out
}

// FilterItems keeps items whose name contains query, ignoring case. An
// empty query returns items unchanged.
func FilterItems(items []*model.Item, query string) []*model.Item {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]*model.Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}

// View is the visible content of a list: its sublists and items after
// applying a view-state entry.
type View struct {
	Sublists []*model.List
	Items    []*model.Item
}

// Combined filters and sorts a list's sublists and items independently by
// the same query, field and direction. Sections hidden by the view mode
// are empty.
func (s *Sorter) Combined(l *model.List, e viewstate.Entry) View {
	var v View
	if e.ViewMode.ShowsSublists() {
		v.Sublists = s.Lists(FilterLists(l.Sublists, e.Query), e.SortField, e.Ascending)
	}
	if e.ViewMode.ShowsItems() {
		v.Items = s.VisibleItems(l, e)
	}
	return v
}

// VisibleItems is the item section of Combined regardless of view mode.
func (s *Sorter) VisibleItems(l *model.List, e viewstate.Entry) []*model.Item {
	return s.Items(FilterItems(l.Items, e.Query), e.SortField, e.Ascending)
}

// Neighbours returns the items before and after itemID in the filtered and
// sorted item order of l. Either may be nil.
func (s *Sorter) Neighbours(l *model.List, e viewstate.Entry, itemID string) (prev, next *model.Item) {
	items := s.VisibleItems(l, e)
	for i, it := range items {
		if it.ID != itemID {
			continue
		}
		if i > 0 {
			prev = items[i-1]
		}
		if i+1 < len(items) {
			next = items[i+1]
		}
		return prev, next
	}
	return nil, nil
}
