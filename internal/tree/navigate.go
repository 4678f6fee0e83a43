package tree

import (
	"github.com/nhle/sortbase/internal/model"
)

// Walk visits every list of the forest depth-first, parents before
// children. fn receives the list and its ancestors from the root down.
// Returning false stops the walk. A list reachable twice is visited once.
// The ancestors slice is reused between calls and must not be retained.
func Walk(forest []*model.List, fn func(l *model.List, ancestors []*model.List) bool) {
	visited := make(map[*model.List]struct{})
	var walk func(lists []*model.List, path []*model.List) bool
	walk = func(lists []*model.List, path []*model.List) bool {
		for _, l := range lists {
			if l == nil {
				continue
			}
			if _, seen := visited[l]; seen {
				continue
			}
			visited[l] = struct{}{}
			if !fn(l, path) {
				return false
			}
			if !walk(l.Sublists, append(path, l)) {
				return false
			}
		}
		return true
	}
	walk(forest, nil)
}

// FindByID returns the first list with the given id, searching depth-first.
func FindByID(forest []*model.List, id string) *model.List {
	var found *model.List
	Walk(forest, func(l *model.List, _ []*model.List) bool {
		if l.ID == id {
			found = l
			return false
		}
		return true
	})
	return found
}

// FindParent returns the list whose direct sublists contain id. It returns
// nil for top-level lists and unknown ids.
func FindParent(forest []*model.List, id string) *model.List {
	var parent *model.List
	Walk(forest, func(l *model.List, ancestors []*model.List) bool {
		if l.ID != id {
			return true
		}
		if n := len(ancestors); n > 0 {
			parent = ancestors[n-1]
		}
		return false
	})
	return parent
}

// Crumb is one step of a breadcrumb path.
type Crumb struct {
	ID       string
	Name     string
	Category string
}

// Breadcrumb returns the path from the root to the list with the given id,
// inclusive. It is empty when the id is unknown.
func Breadcrumb(forest []*model.List, id string) []Crumb {
	path, ok := pathTo(forest, id, make(map[*model.List]struct{}))
	if !ok {
		return []Crumb{}
	}
	return path
}

// pathTo returns the crumbs below lists leading to id. The path is built on
// the way back up, so a failed branch leaves nothing behind.
func pathTo(lists []*model.List, id string, visited map[*model.List]struct{}) ([]Crumb, bool) {
	for _, l := range lists {
		if l == nil {
			continue
		}
		if _, seen := visited[l]; seen {
			continue
		}
		visited[l] = struct{}{}
		crumb := Crumb{ID: l.ID, Name: l.Name, Category: l.Category}
		if l.ID == id {
			return []Crumb{crumb}, true
		}
		if rest, ok := pathTo(l.Sublists, id, visited); ok {
			return append([]Crumb{crumb}, rest...), true
		}
	}
	return nil, false
}

// FindItem returns the item with the given id among l's own items.
func FindItem(l *model.List, id string) *model.Item {
	for _, it := range l.Items {
		if it != nil && it.ID == id {
			return it
		}
	}
	return nil
}

// FindItemAnywhere returns the item with the given id and the list that
// owns it.
func FindItemAnywhere(forest []*model.List, id string) (*model.Item, *model.List) {
	var (
		item  *model.Item
		owner *model.List
	)
	Walk(forest, func(l *model.List, _ []*model.List) bool {
		if it := FindItem(l, id); it != nil {
			item, owner = it, l
			return false
		}
		return true
	})
	return item, owner
}

// Remove deletes the list with the given id, and with it the whole subtree,
// from whichever collection holds it. It returns the removed list.
func Remove(forest *[]*model.List, id string) *model.List {
	if i := indexOf(*forest, id); i >= 0 {
		removed := (*forest)[i]
		*forest = append((*forest)[:i:i], (*forest)[i+1:]...)
		return removed
	}
	parent := FindParent(*forest, id)
	if parent == nil {
		return nil
	}
	i := indexOf(parent.Sublists, id)
	removed := parent.Sublists[i]
	parent.Sublists = append(parent.Sublists[:i:i], parent.Sublists[i+1:]...)
	return removed
}

// RemoveItem deletes the item with the given id from l.
func RemoveItem(l *model.List, id string) *model.Item {
	for i, it := range l.Items {
		if it != nil && it.ID == id {
			l.Items = append(l.Items[:i:i], l.Items[i+1:]...)
			return it
		}
	}
	return nil
}

func indexOf(lists []*model.List, id string) int {
	for i, l := range lists {
		if l != nil && l.ID == id {
			return i
		}
	}
	return -1
}
