// Package tree holds the pure operations over the inventory forest:
// aggregation, sorting, filtering and navigation.
package tree

import (
	"github.com/nhle/sortbase/internal/model"
)

// Totals are the aggregate figures of a list and all of its descendants.
// A field is absent when no contributing item had a value for it.
type Totals struct {
	PurchasePrice model.Amount
	CurrentValue  model.Amount
	Profit        model.Amount
}

// ComputeTotals sums purchase prices and current values over the items of
// l and every descendant sublist. Purchase and value totals are tracked
// independently; profit is present when both totals are.
func ComputeTotals(l *model.List) Totals {
	var (
		purchase, value       float64
		hasPurchase, hasValue bool
		visited               = make(map[*model.List]struct{})
		walk                  func(*model.List)
	)
	walk = func(cur *model.List) {
		if cur == nil {
			return
		}
		if _, seen := visited[cur]; seen {
			return
		}
		visited[cur] = struct{}{}
		for _, it := range cur.Items {
			if it == nil {
				continue
			}
			if p, ok := it.PurchasePrice.Float(); ok {
				purchase += p
				hasPurchase = true
			}
			if v, ok := it.CurrentValue.Float(); ok {
				value += v
				hasValue = true
			}
		}
		for _, sub := range cur.Sublists {
			walk(sub)
		}
	}
	walk(l)

	t := Totals{PurchasePrice: model.Absent(), CurrentValue: model.Absent(), Profit: model.Absent()}
	if hasPurchase {
		t.PurchasePrice = model.Amount(purchase)
	}
	if hasValue {
		t.CurrentValue = model.Amount(value)
	}
	if hasPurchase && hasValue {
		t.Profit = model.Amount(value - purchase)
	}
	return t
}

// ComputeProfit is the item's current value minus its purchase price, or
// absent unless both are set on the item.
func ComputeProfit(it *model.Item) model.Amount {
	p, okP := it.PurchasePrice.Float()
	v, okV := it.CurrentValue.Float()
	if !okP || !okV {
		return model.Absent()
	}
	return model.Amount(v - p)
}

// Counts are recursive content counts of a list.
type Counts struct {
	Items    int
	Sublists int
}

// CountContents counts every item and sublist below l.
func CountContents(l *model.List) Counts {
	var c Counts
	Walk(l.Sublists, func(sub *model.List, _ []*model.List) bool {
		c.Sublists++
		c.Items += len(sub.Items)
		return true
	})
	c.Items += len(l.Items)
	return c
}
