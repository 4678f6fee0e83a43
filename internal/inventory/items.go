package inventory

import (
	"context"

	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/tree"
)

// FindItem returns an item of the given list.
func (s *Session) FindItem(listID, itemID string) (*model.Item, error) {
	l := s.FindList(listID)
	if l == nil {
		return nil, NotFoundError{Kind: "list", ID: listID}
	}
	it := tree.FindItem(l, itemID)
	if it == nil {
		return nil, NotFoundError{Kind: "item", ID: itemID}
	}
	return it, nil
}

// CreateItem appends a new item to a list.
func (s *Session) CreateItem(ctx context.Context, listID string, in model.ItemInput) (*model.Item, error) {
	l := s.FindList(listID)
	if l == nil {
		return nil, NotFoundError{Kind: "list", ID: listID}
	}
	it, err := model.NewItem(s.newID(), in, s.now())
	if err != nil {
		return nil, err
	}
	l.Items = append(l.Items, it)
	s.persist(ctx)
	return it, nil
}

// UpdateItem replaces the editable fields of an item.
func (s *Session) UpdateItem(ctx context.Context, listID, itemID string, in model.ItemInput) (*model.Item, error) {
	it, err := s.FindItem(listID, itemID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	it.Apply(in)
	s.persist(ctx)
	return it, nil
}

// DeleteItem removes an item from its list.
func (s *Session) DeleteItem(ctx context.Context, listID, itemID string) error {
	l := s.FindList(listID)
	if l == nil {
		return NotFoundError{Kind: "list", ID: listID}
	}
	if tree.RemoveItem(l, itemID) == nil {
		return NotFoundError{Kind: "item", ID: itemID}
	}
	s.persist(ctx)
	return nil
}

// Neighbours returns the items before and after itemID in the list's
// visible (filtered and sorted) item order.
func (s *Session) Neighbours(listID, itemID string) (prev, next *model.Item) {
	l := s.FindList(listID)
	if l == nil {
		return nil, nil
	}
	return s.sorter.Neighbours(l, s.views.Get(listID), itemID)
}
