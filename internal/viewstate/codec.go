package viewstate

import (
	"log/slog"

	json "github.com/goccy/go-json"

	"github.com/nhle/sortbase/internal/model"
)

// Wire is the persisted form of a Store.
type Wire struct {
	OverviewSort  *SortWire                  `json:"overviewSort,omitempty"`
	OverviewQuery string                     `json:"overviewQuery,omitempty"`
	PerList       map[string]json.RawMessage `json:"perList,omitempty"`
}

// SortWire is a sort field with its direction.
type SortWire struct {
	Field     model.SortField `json:"field"`
	Ascending bool            `json:"ascending"`
}

// LegacyWire is the "sortOptions" object written by older versions.
type LegacyWire struct {
	ListSortMode    string                     `json:"listSortMode,omitempty"`
	ListSortAsc     *bool                      `json:"listSortAsc,omitempty"`
	DetailViewState map[string]json.RawMessage `json:"detailViewState,omitempty"`
	ListSearchQuery string                     `json:"listSearchQuery,omitempty"`
}

type shape int

const (
	shapeUnknown shape = iota
	shapeEntry
	shapeLegacyEntry
	shapeLegacyOverview
)

// probe sees every field either entry shape can carry. Pointers tell a
// missing field apart from a zero one.
type probe struct {
	ViewMode  *string `json:"viewMode"`
	SortField *string `json:"sortField"`
	Ascending *bool   `json:"ascending"`
	Query     *string `json:"query"`

	ListViewMode        *string `json:"listViewMode"`
	CombinedSortMode    *string `json:"combinedSortMode"`
	CombinedSortAsc     *bool   `json:"combinedSortAsc"`
	CombinedSearchQuery *string `json:"combinedSearchQuery"`

	ListSortMode *string `json:"listSortMode"`
	ListSortAsc  *bool   `json:"listSortAsc"`
}

func classify(raw json.RawMessage) (shape, probe) {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return shapeUnknown, p
	}
	switch {
	case p.ViewMode != nil && p.SortField != nil:
		return shapeEntry, p
	case p.ListViewMode != nil && p.CombinedSortMode != nil:
		return shapeLegacyEntry, p
	case p.ListSortMode != nil && p.ListSortAsc != nil:
		return shapeLegacyOverview, p
	}
	return shapeUnknown, p
}

func (p probe) entry(s shape) Entry {
	d := DefaultEntry()
	mode, field, asc, query := p.ViewMode, p.SortField, p.Ascending, p.Query
	if s == shapeLegacyEntry {
		mode, field, asc, query = p.ListViewMode, p.CombinedSortMode, p.CombinedSortAsc, p.CombinedSearchQuery
	}
	e := Entry{
		ViewMode:  model.ViewMode(*mode),
		SortField: model.SortField(*field),
		Ascending: d.Ascending,
		Query:     d.Query,
	}
	if asc != nil {
		e.Ascending = *asc
	}
	if query != nil {
		e.Query = *query
	}
	return sanitize(e)
}

// Decode rebuilds a Store from its persisted forms. Either argument may be
// nil. Entries of an unknown shape are dropped and read back as defaults.
// When both forms are present, w wins.
func Decode(w *Wire, legacy *LegacyWire) *Store {
	s := New()
	if legacy != nil {
		s.decodeLegacy(legacy)
	}
	if w == nil {
		return s
	}
	if w.OverviewSort != nil {
		s.SetOverview(OverviewState{SortField: w.OverviewSort.Field, Ascending: w.OverviewSort.Ascending, Query: s.overview.Query})
	}
	if w.OverviewQuery != "" {
		s.overview.Query = w.OverviewQuery
	}
	for id, raw := range w.PerList {
		s.decodeEntry(id, raw)
	}
	return s
}

func (s *Store) decodeLegacy(legacy *LegacyWire) {
	o := s.overview
	if legacy.ListSortMode != "" {
		o.SortField = model.SortField(legacy.ListSortMode)
	}
	if legacy.ListSortAsc != nil {
		o.Ascending = *legacy.ListSortAsc
	}
	o.Query = legacy.ListSearchQuery
	s.SetOverview(o)

	for id, raw := range legacy.DetailViewState {
		if id != OverviewKey {
			s.decodeEntry(id, raw)
			continue
		}
		sh, p := classify(raw)
		if sh != shapeLegacyOverview {
			slog.Debug("ignoring overview view state", "shape", sh)
			continue
		}
		s.SetOverview(OverviewState{SortField: model.SortField(*p.ListSortMode), Ascending: *p.ListSortAsc, Query: s.overview.Query})
	}
}

func (s *Store) decodeEntry(id string, raw json.RawMessage) {
	if id == OverviewKey {
		return
	}
	sh, p := classify(raw)
	switch sh {
	case shapeEntry, shapeLegacyEntry:
		s.perList[id] = p.entry(sh)
	default:
		slog.Debug("dropping malformed view state", "list", id)
	}
}

// Encode returns the persisted form of s.
func (s *Store) Encode() (*Wire, error) {
	w := &Wire{
		OverviewSort:  &SortWire{Field: s.overview.SortField, Ascending: s.overview.Ascending},
		OverviewQuery: s.overview.Query,
		PerList:       make(map[string]json.RawMessage, len(s.perList)),
	}
	for id, e := range s.perList {
		raw, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		w.PerList[id] = raw
	}
	return w, nil
}
