// Package inventory is the editing session over one inventory document. It
// owns the list forest and its view state, applies changes in memory and
// writes the whole document back after every change.
package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/store"
	"github.com/nhle/sortbase/internal/tree"
	"github.com/nhle/sortbase/internal/viewstate"
)

// Session is not safe for concurrent use; drive it from one goroutine.
type Session struct {
	store  store.Store
	lists  []*model.List
	views  *viewstate.Store
	sorter *tree.Sorter
	log    *slog.Logger
	now    func() time.Time
	newID  func() string

	loadErr error
	saveErr error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithClock sets the time source for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDs sets the id generator for new lists and items.
func WithIDs(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// WithLocale sets the collation locale for name and category sorting.
func WithLocale(locale string) Option {
	return func(s *Session) { s.sorter = tree.NewSorter(locale) }
}

// Open loads the document from st. It always returns a usable session; if
// loading failed the session starts empty and LoadError reports why.
func Open(ctx context.Context, st store.Store, opts ...Option) *Session {
	s := &Session{
		store:  st,
		sorter: tree.NewSorter("und"),
		log:    slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	doc, err := st.Load(ctx)
	if err != nil {
		s.log.Error("loading inventory", "err", err)
		s.loadErr = err
	}
	if doc == nil {
		doc = store.EmptyDocument()
	}
	s.adopt(doc)
	return s
}

func (s *Session) adopt(doc *store.Document) {
	s.lists = tree.NormalizeLevels(doc.Lists)
	s.views = doc.Views()
}

// LoadError is the advisory error from Open, if any.
func (s *Session) LoadError() error { return s.loadErr }

// SaveError is the error of the most recent save, if it failed.
func (s *Session) SaveError() error { return s.saveErr }

// Lists returns the top-level lists in stored order.
func (s *Session) Lists() []*model.List { return s.lists }

// Sorter returns the session's collating sorter.
func (s *Session) Sorter() *tree.Sorter { return s.sorter }

// Snapshot returns the current document. Stale view-state entries of
// deleted lists are dropped first.
func (s *Session) Snapshot() (*store.Document, error) {
	s.views.Prune(func(id string) bool { return tree.FindByID(s.lists, id) != nil })
	return store.NewDocument(s.lists, s.views)
}

// Save writes the whole document. A failure is logged and remembered in
// SaveError; the in-memory state is kept either way.
func (s *Session) Save(ctx context.Context) error {
	doc, err := s.Snapshot()
	if err == nil {
		err = s.store.Save(ctx, doc)
	}
	s.saveErr = err
	if err != nil {
		s.log.Error("saving inventory", "err", err)
	}
	return err
}

// persist saves after a mutation. Save failures never undo the mutation.
func (s *Session) persist(ctx context.Context) {
	_ = s.Save(ctx)
}

// Import replaces the whole inventory with doc and saves it.
func (s *Session) Import(ctx context.Context, doc *store.Document) error {
	s.adopt(doc)
	return s.Save(ctx)
}
