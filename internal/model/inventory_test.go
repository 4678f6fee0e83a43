package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewSublistIncrementsLevel(t *testing.T) {
	root, err := NewList("r", ListInput{Name: "Root"}, t0)
	require.NoError(t, err)

	child, err := root.NewSublist("c", ListInput{Name: "Child"}, t0)
	require.NoError(t, err)
	assert.Equal(t, 1, child.Level)
	require.Len(t, root.Sublists, 1)
	assert.Same(t, child, root.Sublists[0])
}

func TestNewSublistRejectsPastMaxDepth(t *testing.T) {
	deep := &List{ID: "deep", Name: "Deep", Level: MaxNestingLevel}

	_, err := deep.NewSublist("x", ListInput{Name: "Too deep"}, t0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDepthLimitExceeded))

	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, MaxNestingLevel, capErr.Limit)
	assert.Empty(t, deep.Sublists, "tree must not be mutated")
}

func TestNewSublistAtLastAllowedLevel(t *testing.T) {
	parent := &List{ID: "p", Name: "P", Level: MaxNestingLevel - 1}
	child, err := parent.NewSublist("c", ListInput{Name: "C"}, t0)
	require.NoError(t, err)
	assert.Equal(t, MaxNestingLevel, child.Level)
}

func TestListInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		in    ListInput
		field string
	}{
		{"blank name", ListInput{Name: "   "}, "name"},
		{"long name", ListInput{Name: strings.Repeat("a", MaxNameLength+1)}, "name"},
		{"long category", ListInput{Name: "ok", Category: strings.Repeat("k", MaxCategoryLength+1)}, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vErr *ValidationError
			require.ErrorAs(t, tt.in.Validate(), &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	assert.NoError(t, ListInput{Name: strings.Repeat("ä", MaxNameLength)}.Validate(), "limits count characters, not bytes")
}

func TestItemInputValidate(t *testing.T) {
	tooManyImages := make([]string, MaxImagesPerItem+1)
	for i := range tooManyImages {
		tooManyImages[i] = "img.png"
	}
	err := ItemInput{Name: "x", ImageURLs: tooManyImages}.Validate()
	assert.ErrorIs(t, err, ErrTooManyImages)

	var props Properties
	for i := 0; i <= MaxPropertiesPerItem; i++ {
		props = props.Set(fmt.Sprintf("k%d", i), StringValue("v"))
	}
	err = ItemInput{Name: "x", Properties: props}.Validate()
	assert.ErrorIs(t, err, ErrTooManyProperties)

	dup := Properties{{Key: "color", Value: StringValue("red")}, {Key: " color ", Value: StringValue("blue")}}
	var vErr *ValidationError
	require.ErrorAs(t, ItemInput{Name: "x", Properties: dup}.Validate(), &vErr)
	assert.Contains(t, vErr.Reason, "duplicate")

	longValue := Properties{{Key: "note", Value: StringValue(strings.Repeat("v", MaxPropertyValueLength+1))}}
	require.ErrorAs(t, ItemInput{Name: "x", Properties: longValue}.Validate(), &vErr)

	numeric := Properties{{Key: "year", Value: NumberValue(1999)}}
	assert.NoError(t, ItemInput{Name: "x", Properties: numeric}.Validate())
}

func TestNewItemRejectsInvalidInput(t *testing.T) {
	it, err := NewItem("i", ItemInput{Name: ""}, t0)
	assert.Nil(t, it)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestItemJSONAbsentAmounts(t *testing.T) {
	it, err := NewItem("i1", ItemInput{Name: "Lamp", PurchasePrice: 12.5, CurrentValue: Absent()}, t0)
	require.NoError(t, err)

	data, err := json.Marshal(it)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"purchasePrice":12.5`)
	assert.Contains(t, string(data), `"currentValue":null`)

	var back Item
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Amount(12.5), back.PurchasePrice)
	assert.False(t, back.CurrentValue.Valid())
}

func TestItemJSONMissingAmountsAreAbsent(t *testing.T) {
	var it Item
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","name":"Old","createdAt":"2023-05-01T10:00:00.000Z"}`), &it))
	assert.False(t, it.PurchasePrice.Valid())
	assert.False(t, it.CurrentValue.Valid())
}

func TestItemJSONLegacyImageURL(t *testing.T) {
	var it Item
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","name":"Old","imageUrl":"a.png","createdAt":"2023-05-01T10:00:00.000Z"}`), &it))
	assert.Equal(t, []string{"a.png"}, it.ImageURLs)
}

func TestItemJSONRoundTripKeepsFields(t *testing.T) {
	it, err := NewItem("i1", ItemInput{
		Name:           "Radio",
		ImageURLs:      []string{"a.png", "b.png"},
		PurchasePrice:  40,
		CurrentValue:   55.5,
		Properties:     Properties{{Key: "band", Value: StringValue("FM")}, {Key: "year", Value: NumberValue(1962)}},
		HideFinancials: true,
	}, t0)
	require.NoError(t, err)

	data, err := json.Marshal(it)
	require.NoError(t, err)
	var back Item
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, "i1", back.ID)
	assert.Equal(t, "Radio", back.Name)
	assert.Equal(t, []string{"a.png", "b.png"}, back.ImageURLs)
	assert.Equal(t, Amount(40), back.PurchasePrice)
	assert.Equal(t, Amount(55.5), back.CurrentValue)
	assert.True(t, back.HideFinancials)
	assert.True(t, t0.Equal(back.CreatedAt))
	require.Len(t, back.Properties, 2)
	assert.Equal(t, "band", back.Properties[0].Key)
	assert.Equal(t, "year", back.Properties[1].Key)
}

func TestListJSONMalformedCreatedAtIsZero(t *testing.T) {
	raw := `{"id":"l","name":"Shelf","createdAt":"","level":3,
	  "items":[{"id":"i","name":"Cup","createdAt":"yesterday","currentValue":2}],
	  "sublists":[{"id":"s","name":"Box","createdAt":1700000000000,"items":[]}]}`
	var l List
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	assert.Equal(t, "Shelf", l.Name)
	assert.True(t, l.CreatedAt.IsZero())
	require.Len(t, l.Items, 1)
	assert.True(t, l.Items[0].CreatedAt.IsZero())
	assert.Equal(t, Amount(2), l.Items[0].CurrentValue)
	assert.False(t, l.Items[0].PurchasePrice.Valid())
	require.Len(t, l.Sublists, 1)
	assert.True(t, time.UnixMilli(1700000000000).Equal(l.Sublists[0].CreatedAt))
}

func TestPropertiesKeepOrder(t *testing.T) {
	raw := `{"zeta":"last?","alpha":3,"mid":"x"}`
	var p Properties
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.Len(t, p, 3)
	assert.Equal(t, "zeta", p[0].Key)
	assert.Equal(t, "alpha", p[1].Key)
	n, ok := p[1].Value.Number()
	assert.True(t, ok)
	assert.Equal(t, 3.0, n)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestParsePropertyValue(t *testing.T) {
	assert.True(t, ParsePropertyValue("42").IsNumber())
	assert.True(t, ParsePropertyValue(" 3.5 ").IsNumber())
	assert.False(t, ParsePropertyValue("blue").IsNumber())
	assert.False(t, ParsePropertyValue("NaN").IsNumber())
	assert.Equal(t, "blue", ParsePropertyValue(" blue ").String())
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, Amount(12.5), ParseAmount("12,5"))
	assert.Equal(t, Amount(0), ParseAmount("0"))
	assert.False(t, ParseAmount("").Valid())
	assert.False(t, ParseAmount("abc").Valid())
}

func TestEntryInterface(t *testing.T) {
	entries := []Entry{&List{ID: "l", Name: "L"}, &Item{ID: "i", Name: "I", HideFinancials: true}}
	assert.True(t, entries[0].IsList())
	assert.False(t, entries[1].IsList())
	assert.True(t, entries[1].FinancialsHidden())
}
