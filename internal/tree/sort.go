package tree

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nhle/sortbase/internal/model"
)

// Sorter orders lists and items. Text fields use locale-aware collation.
// A Sorter is not safe for concurrent use.
type Sorter struct {
	col *collate.Collator
}

// NewSorter returns a Sorter collating for the given BCP 47 locale. An
// unparseable locale falls back to the root collation.
func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &Sorter{col: collate.New(tag)}
}

// Lists returns a sorted copy of lists. Fields that do not apply to lists
// (purchasePrice, currentValue) order by name. The sort is stable.
func (s *Sorter) Lists(lists []*model.List, field model.SortField, ascending bool) []*model.List {
	out := slices.Clone(lists)
	slices.SortStableFunc(out, func(a, b *model.List) int {
		var c int
		switch field {
		case model.SortByCategory:
			c = s.col.CompareString(a.Category, b.Category)
		case model.SortByCreatedAt:
			c = a.CreatedAt.Compare(b.CreatedAt)
		default:
			c = s.col.CompareString(a.Name, b.Name)
		}
		return direct(c, ascending)
	})
	return out
}

// Items returns a sorted copy of items. Category does not apply to items
// and orders by name. Unset amounts sort after every set amount in both
// directions. The sort is stable.
func (s *Sorter) Items(items []*model.Item, field model.SortField, ascending bool) []*model.Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b *model.Item) int {
		switch field {
		case model.SortByPurchasePrice:
			return compareAmounts(a.PurchasePrice, b.PurchasePrice, ascending)
		case model.SortByCurrentValue:
			return compareAmounts(a.CurrentValue, b.CurrentValue, ascending)
		case model.SortByCreatedAt:
			return direct(a.CreatedAt.Compare(b.CreatedAt), ascending)
		default:
			return direct(s.col.CompareString(a.Name, b.Name), ascending)
		}
	})
	return out
}

func compareAmounts(a, b model.Amount, ascending bool) int {
	av, aok := a.Float()
	bv, bok := b.Float()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	return direct(cmp.Compare(av, bv), ascending)
}

func direct(c int, ascending bool) int {
	if ascending {
		return c
	}
	return -c
}

// SortLists sorts with the root collation. See Sorter.Lists.
func SortLists(lists []*model.List, field model.SortField, ascending bool) []*model.List {
	return NewSorter("und").Lists(lists, field, ascending)
}

// SortItems sorts with the root collation. See Sorter.Items.
func SortItems(items []*model.Item, field model.SortField, ascending bool) []*model.Item {
	return NewSorter("und").Items(items, field, ascending)
}
