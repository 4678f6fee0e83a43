// Package viewstate keeps per-list display preferences: view mode, sort
// field, sort direction and search query, plus a separate entry for the
// top-level overview.
package viewstate

import (
	"errors"

	"github.com/nhle/sortbase/internal/model"
)

// OverviewKey is the reserved key for the top-level overview in persisted
// per-list maps written by older versions.
const OverviewKey = "__listOverview__"

// Entry holds the display preferences of one list.
type Entry struct {
	ViewMode  model.ViewMode  `json:"viewMode"`
	SortField model.SortField `json:"sortField"`
	Ascending bool            `json:"ascending"`
	Query     string          `json:"query"`
}

// DefaultEntry is returned for lists without stored preferences.
func DefaultEntry() Entry {
	return Entry{ViewMode: model.ViewAll, SortField: model.SortByName, Ascending: true}
}

// OverviewState holds the preferences of the top-level overview.
type OverviewState struct {
	SortField model.SortField
	Ascending bool
	Query     string
}

// DefaultOverview is the overview state of a fresh install.
func DefaultOverview() OverviewState {
	return OverviewState{SortField: model.SortByName, Ascending: true}
}

// Store maps list ids to entries. The zero value is not usable; call New.
type Store struct {
	perList  map[string]Entry
	overview OverviewState
}

// New returns an empty store.
func New() *Store {
	return &Store{perList: make(map[string]Entry), overview: DefaultOverview()}
}

// Get returns the entry stored for listID, or DefaultEntry. It never
// creates an entry.
func (s *Store) Get(listID string) Entry {
	if e, ok := s.perList[listID]; ok {
		return e
	}
	return DefaultEntry()
}

// ErrReservedKey is returned when a per-list entry is set under OverviewKey.
var ErrReservedKey = errors.New("view state: list id is reserved for the overview")

// Set replaces the entry for listID. A view mode or sort field that is not
// known is stored as its default, so Get returns exactly e only when e is
// valid. The overview key is rejected; use SetOverview.
func (s *Store) Set(listID string, e Entry) error {
	if listID == OverviewKey {
		return ErrReservedKey
	}
	s.perList[listID] = sanitize(e)
	return nil
}

// Delete forgets the entry for listID.
func (s *Store) Delete(listID string) {
	delete(s.perList, listID)
}

// Overview returns the overview state.
func (s *Store) Overview() OverviewState { return s.overview }

// SetOverview replaces the overview state.
func (s *Store) SetOverview(o OverviewState) {
	if !isListField(o.SortField) {
		o.SortField = model.SortByName
	}
	s.overview = o
}

// Prune drops entries whose list no longer exists.
func (s *Store) Prune(exists func(listID string) bool) int {
	n := 0
	for id := range s.perList {
		if !exists(id) {
			delete(s.perList, id)
			n++
		}
	}
	return n
}

// Len is the number of stored per-list entries.
func (s *Store) Len() int { return len(s.perList) }

func sanitize(e Entry) Entry {
	d := DefaultEntry()
	if !e.ViewMode.Valid() {
		e.ViewMode = d.ViewMode
	}
	if !e.SortField.Valid() {
		e.SortField = d.SortField
	}
	return e
}

func isListField(f model.SortField) bool {
	for _, known := range model.ListSortFields {
		if f == known {
			return true
		}
	}
	return false
}
