package model

import (
	"time"

	json "github.com/goccy/go-json"
)

// List is a named node in the inventory tree. It owns its items and its
// sublists; a node never has more than one parent.
type List struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Items     []*Item   `json:"items"`
	Sublists  []*List   `json:"sublists"`

	// Level is the depth from the top-level ancestor. It is recomputed
	// after every load; persisted values are ignored.
	Level int `json:"level"`

	HideFinancials bool `json:"hideFinancials,omitempty"`
}

// ListInput carries the user-editable fields of a list.
type ListInput struct {
	Name           string
	Category       string
	ImageURL       string
	HideFinancials bool
}

// NewList builds a top-level list from validated input.
func NewList(id string, in ListInput, now time.Time) (*List, error) {
	in = in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	l := &List{ID: id, CreatedAt: now, Items: []*Item{}, Sublists: []*List{}}
	l.Apply(in)
	return l, nil
}

// NewSublist builds a child of l and appends it to l.Sublists. It fails with
// a CapacityError when the child would be deeper than MaxNestingLevel.
func (l *List) NewSublist(id string, in ListInput, now time.Time) (*List, error) {
	if l.Level+1 > MaxNestingLevel {
		return nil, &CapacityError{Err: ErrDepthLimitExceeded, Limit: MaxNestingLevel, Got: l.Level + 1}
	}
	child, err := NewList(id, in, now)
	if err != nil {
		return nil, err
	}
	child.Level = l.Level + 1
	l.Sublists = append(l.Sublists, child)
	return child, nil
}

// Apply overwrites the editable fields. The input must already be valid.
func (l *List) Apply(in ListInput) {
	in = in.normalize()
	l.Name = in.Name
	l.Category = in.Category
	l.ImageURL = in.ImageURL
	l.HideFinancials = in.HideFinancials
}

// Input returns the editable fields of l.
func (l *List) Input() ListInput {
	return ListInput{
		Name:           l.Name,
		Category:       l.Category,
		ImageURL:       l.ImageURL,
		HideFinancials: l.HideFinancials,
	}
}

func (l *List) MarshalJSON() ([]byte, error) {
	type alias List
	out := *l
	if out.Items == nil {
		out.Items = []*Item{}
	}
	if out.Sublists == nil {
		out.Sublists = []*List{}
	}
	return json.Marshal((*alias)(&out))
}

// listJSON is the stored shape of a list.
type listJSON struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	ImageURL       string    `json:"imageUrl"`
	CreatedAt      looseTime `json:"createdAt"`
	Items          []*Item   `json:"items"`
	Sublists       []*List   `json:"sublists"`
	Level          int       `json:"level"`
	HideFinancials bool      `json:"hideFinancials"`
}

// UnmarshalJSON reads a stored list. A malformed createdAt is the zero
// time instead of an error.
func (l *List) UnmarshalJSON(data []byte) error {
	var w listJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = List{
		ID:             w.ID,
		Name:           w.Name,
		Category:       w.Category,
		ImageURL:       w.ImageURL,
		CreatedAt:      time.Time(w.CreatedAt),
		Items:          w.Items,
		Sublists:       w.Sublists,
		Level:          w.Level,
		HideFinancials: w.HideFinancials,
	}
	return nil
}

// Item is a leaf entry owned by exactly one list.
type Item struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ImageURLs      []string   `json:"imageUrls"`
	PurchasePrice  Amount     `json:"purchasePrice"`
	CurrentValue   Amount     `json:"currentValue"`
	CreatedAt      time.Time  `json:"createdAt"`
	Properties     Properties `json:"properties"`
	HideFinancials bool       `json:"hideFinancials,omitempty"`
}

// ItemInput carries the user-editable fields of an item.
type ItemInput struct {
	Name           string
	ImageURLs      []string
	PurchasePrice  Amount
	CurrentValue   Amount
	Properties     Properties
	HideFinancials bool
}

// NewItem builds an item from validated input.
func NewItem(id string, in ItemInput, now time.Time) (*Item, error) {
	in = in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	it := &Item{ID: id, CreatedAt: now}
	it.Apply(in)
	return it, nil
}

// Apply overwrites the editable fields. The input must already be valid.
func (it *Item) Apply(in ItemInput) {
	in = in.normalize()
	it.Name = in.Name
	it.ImageURLs = append([]string(nil), in.ImageURLs...)
	it.PurchasePrice = in.PurchasePrice
	it.CurrentValue = in.CurrentValue
	it.Properties = in.Properties.Clone()
	it.HideFinancials = in.HideFinancials
}

// Input returns the editable fields of it.
func (it *Item) Input() ItemInput {
	return ItemInput{
		Name:           it.Name,
		ImageURLs:      append([]string(nil), it.ImageURLs...),
		PurchasePrice:  it.PurchasePrice,
		CurrentValue:   it.CurrentValue,
		Properties:     it.Properties.Clone(),
		HideFinancials: it.HideFinancials,
	}
}

func (it *Item) MarshalJSON() ([]byte, error) {
	type alias Item
	out := *it
	if out.ImageURLs == nil {
		out.ImageURLs = []string{}
	}
	if out.Properties == nil {
		out.Properties = Properties{}
	}
	return json.Marshal((*alias)(&out))
}

// itemJSON is the stored shape of an item, including the single imageUrl
// field written by older files.
type itemJSON struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ImageURLs      []string   `json:"imageUrls"`
	ImageURL       string     `json:"imageUrl"`
	PurchasePrice  Amount     `json:"purchasePrice"`
	CurrentValue   Amount     `json:"currentValue"`
	CreatedAt      looseTime  `json:"createdAt"`
	Properties     Properties `json:"properties"`
	HideFinancials bool       `json:"hideFinancials"`
}

// UnmarshalJSON treats missing prices as unset and folds the legacy
// imageUrl field into ImageURLs.
func (it *Item) UnmarshalJSON(data []byte) error {
	w := itemJSON{PurchasePrice: Absent(), CurrentValue: Absent()}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*it = Item{
		ID:             w.ID,
		Name:           w.Name,
		ImageURLs:      w.ImageURLs,
		PurchasePrice:  w.PurchasePrice,
		CurrentValue:   w.CurrentValue,
		CreatedAt:      time.Time(w.CreatedAt),
		Properties:     w.Properties,
		HideFinancials: w.HideFinancials,
	}
	if len(it.ImageURLs) == 0 && w.ImageURL != "" {
		it.ImageURLs = []string{w.ImageURL}
	}
	return nil
}
