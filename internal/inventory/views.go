package inventory

import (
	"context"

	"github.com/nhle/sortbase/internal/viewstate"
)

// ViewState returns the stored preferences of a list, or the defaults.
func (s *Session) ViewState(listID string) viewstate.Entry {
	return s.views.Get(listID)
}

// SetViewState replaces the preferences of a list and saves. Nothing is
// saved when listID is the reserved overview key.
func (s *Session) SetViewState(ctx context.Context, listID string, e viewstate.Entry) error {
	if err := s.views.Set(listID, e); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Overview returns the top-level overview preferences.
func (s *Session) Overview() viewstate.OverviewState {
	return s.views.Overview()
}

// SetOverview replaces the overview preferences and saves.
func (s *Session) SetOverview(ctx context.Context, o viewstate.OverviewState) {
	s.views.SetOverview(o)
	s.persist(ctx)
}
