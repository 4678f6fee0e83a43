package tree

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/nhle/sortbase/internal/model"
)

func itemsFromNames(names []string) []*model.Item {
	items := make([]*model.Item, len(names))
	for i, n := range names {
		items[i] = &model.Item{ID: fmt.Sprint(i), Name: n, PurchasePrice: model.Absent(), CurrentValue: model.Absent()}
	}
	return items
}

func shortName() gopter.Gen {
	return gen.OneConstOf("a", "b", "c", "A", "ab", "")
}

func TestSortItemsStableProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("equal names keep input order", prop.ForAll(
		func(names []string, ascending bool) bool {
			items := itemsFromNames(names)
			sorted := SortItems(items, model.SortByName, ascending)
			if len(sorted) != len(items) {
				return false
			}
			lastIndex := map[string]int{}
			for _, it := range sorted {
				var idx int
				fmt.Sscan(it.ID, &idx)
				if prev, ok := lastIndex[it.Name]; ok && prev > idx {
					return false
				}
				lastIndex[it.Name] = idx
			}
			return true
		},
		gen.SliceOf(shortName()),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestFilterItemsIdempotentProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("filtering twice equals filtering once", prop.ForAll(
		func(names []string, query string) bool {
			items := itemsFromNames(names)
			once := FilterItems(items, query)
			twice := FilterItems(once, query)
			if len(once) != len(twice) {
				return false
			}
			for i := range once {
				if once[i] != twice[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.OneConstOf("", "a", "B", "xy"),
	))

	properties.TestingRun(t)
}

func TestComputeTotalsAdditiveProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("adding a sublist adds its purchase total", prop.ForAll(
		func(own, extra []int) bool {
			mk := func(prices []int) []*model.Item {
				items := make([]*model.Item, len(prices))
				for i, p := range prices {
					items[i] = &model.Item{PurchasePrice: model.Amount(p), CurrentValue: model.Absent()}
				}
				return items
			}
			parent := &model.List{Items: mk(own)}
			before := ComputeTotals(parent)

			child := &model.List{Items: mk(extra)}
			parent.Sublists = append(parent.Sublists, child)
			after := ComputeTotals(parent)
			childTotals := ComputeTotals(child)

			switch {
			case !childTotals.PurchasePrice.Valid():
				return after.PurchasePrice.Valid() == before.PurchasePrice.Valid()
			case !before.PurchasePrice.Valid():
				return after.PurchasePrice == childTotals.PurchasePrice
			default:
				return after.PurchasePrice == before.PurchasePrice+childTotals.PurchasePrice
			}
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t)
}
