package inventory

import (
	"context"

	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/tree"
)

// FindList returns the list with the given id anywhere in the forest.
func (s *Session) FindList(id string) *model.List {
	return tree.FindByID(s.lists, id)
}

// FindParent returns the parent of a sublist, or nil for top-level lists
// and unknown ids.
func (s *Session) FindParent(id string) *model.List {
	return tree.FindParent(s.lists, id)
}

// Breadcrumb returns the root-to-list path, empty for unknown ids.
func (s *Session) Breadcrumb(id string) []tree.Crumb {
	return tree.Breadcrumb(s.lists, id)
}

// CreateList appends a new top-level list.
func (s *Session) CreateList(ctx context.Context, in model.ListInput) (*model.List, error) {
	l, err := model.NewList(s.newID(), in, s.now())
	if err != nil {
		return nil, err
	}
	s.lists = append(s.lists, l)
	s.persist(ctx)
	return l, nil
}

// CreateSublist appends a new list under parentID. It fails with a
// *model.CapacityError when the parent is already at the deepest level.
func (s *Session) CreateSublist(ctx context.Context, parentID string, in model.ListInput) (*model.List, error) {
	parent := s.FindList(parentID)
	if parent == nil {
		return nil, NotFoundError{Kind: "list", ID: parentID}
	}
	child, err := parent.NewSublist(s.newID(), in, s.now())
	if err != nil {
		return nil, err
	}
	s.persist(ctx)
	return child, nil
}

// UpdateList replaces the editable fields of a list.
func (s *Session) UpdateList(ctx context.Context, id string, in model.ListInput) (*model.List, error) {
	l := s.FindList(id)
	if l == nil {
		return nil, NotFoundError{Kind: "list", ID: id}
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	l.Apply(in)
	s.persist(ctx)
	return l, nil
}

// DeleteList removes a list with all of its sublists and items, wherever
// it sits in the tree.
func (s *Session) DeleteList(ctx context.Context, id string) error {
	removed := tree.Remove(&s.lists, id)
	if removed == nil {
		return NotFoundError{Kind: "list", ID: id}
	}
	tree.Walk([]*model.List{removed}, func(l *model.List, _ []*model.List) bool {
		s.views.Delete(l.ID)
		return true
	})
	s.persist(ctx)
	return nil
}

// Totals aggregates the figures of a list and its descendants.
func (s *Session) Totals(id string) (tree.Totals, error) {
	l := s.FindList(id)
	if l == nil {
		return tree.Totals{}, NotFoundError{Kind: "list", ID: id}
	}
	return tree.ComputeTotals(l), nil
}

// OverviewLists returns the top-level lists filtered and sorted by the
// overview state.
func (s *Session) OverviewLists() []*model.List {
	o := s.views.Overview()
	return s.sorter.Lists(tree.FilterLists(s.lists, o.Query), o.SortField, o.Ascending)
}

// Contents returns the visible sublists and items of a list under its
// view-state entry.
func (s *Session) Contents(id string) (tree.View, error) {
	l := s.FindList(id)
	if l == nil {
		return tree.View{}, NotFoundError{Kind: "list", ID: id}
	}
	return s.sorter.Combined(l, s.views.Get(id)), nil
}
