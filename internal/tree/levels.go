package tree

import "github.com/nhle/sortbase/internal/model"

// NormalizeLevels recomputes Level top-down: top-level lists get 0 and each
// child its parent's level plus one. Nil entries are dropped and nil
// collections become empty ones, so loaded data needs no further checks.
func NormalizeLevels(forest []*model.List) []*model.List {
	forest = compactLists(forest)
	Walk(forest, func(l *model.List, ancestors []*model.List) bool {
		l.Level = len(ancestors)
		l.Sublists = compactLists(l.Sublists)
		l.Items = compactItems(l.Items)
		return true
	})
	return forest
}

func compactLists(lists []*model.List) []*model.List {
	out := lists[:0:0]
	for _, l := range lists {
		if l != nil {
			out = append(out, l)
		}
	}
	if out == nil {
		out = []*model.List{}
	}
	return out
}

func compactItems(items []*model.Item) []*model.Item {
	out := items[:0:0]
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	if out == nil {
		out = []*model.Item{}
	}
	return out
}
