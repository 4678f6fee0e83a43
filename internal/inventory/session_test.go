package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/sortbase/internal/inventory"
	"github.com/nhle/sortbase/internal/logging"
	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/store"
	"github.com/nhle/sortbase/internal/viewstate"
	"github.com/nhle/sortbase/tests/testutil"
)

// memStore keeps the last saved document and can be told to fail.
type memStore struct {
	doc     *store.Document
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load(context.Context) (*store.Document, error) {
	if m.loadErr != nil {
		return store.EmptyDocument(), m.loadErr
	}
	if m.doc == nil {
		return store.EmptyDocument(), nil
	}
	return m.doc, nil
}

func (m *memStore) Save(_ context.Context, doc *store.Document) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.doc = doc
	return nil
}

func (m *memStore) Close() error { return nil }

func openSession(t *testing.T, st store.Store) *inventory.Session {
	t.Helper()
	n := 0
	return inventory.Open(context.Background(), st,
		inventory.WithLogger(logging.Discard()),
		inventory.WithClock(func() time.Time { return time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC) }),
		inventory.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
}

func TestOpenEmptyStore(t *testing.T) {
	s := openSession(t, &memStore{})
	assert.NoError(t, s.LoadError())
	assert.Empty(t, s.Lists())
}

func TestOpenLoadFailureStartsEmpty(t *testing.T) {
	s := openSession(t, &memStore{loadErr: errors.New("disk on fire")})
	assert.EqualError(t, s.LoadError(), "disk on fire")
	assert.Empty(t, s.Lists())
}

func TestOpenNormalizesLevels(t *testing.T) {
	child := &model.List{ID: "c", Name: "C", Level: 12}
	root := &model.List{ID: "r", Name: "R", Level: 3, Sublists: []*model.List{child}}
	s := openSession(t, &memStore{doc: &store.Document{Lists: []*model.List{root}}})
	assert.Equal(t, 0, s.FindList("r").Level)
	assert.Equal(t, 1, s.FindList("c").Level)
}

func TestCreateListAndSublistSave(t *testing.T) {
	ms := &memStore{}
	s := openSession(t, ms)
	ctx := context.Background()

	root, err := s.CreateList(ctx, model.ListInput{Name: "  Kitchen  "})
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", root.Name)
	assert.Equal(t, "id-1", root.ID)

	sub, err := s.CreateSublist(ctx, root.ID, model.ListInput{Name: "Drawer"})
	require.NoError(t, err)
	assert.Equal(t, root.Level+1, sub.Level)
	assert.Same(t, root, s.FindParent(sub.ID))
	assert.Equal(t, 2, ms.saves)
	require.Len(t, ms.doc.Lists, 1)
}

func TestCreateSublistDepthLimit(t *testing.T) {
	s := openSession(t, &memStore{})
	ctx := context.Background()

	cur, err := s.CreateList(ctx, model.ListInput{Name: "L0"})
	require.NoError(t, err)
	for i := 1; i <= model.MaxNestingLevel; i++ {
		cur, err = s.CreateSublist(ctx, cur.ID, model.ListInput{Name: fmt.Sprintf("L%d", i)})
		require.NoError(t, err)
		require.Equal(t, i, cur.Level)
	}

	_, err = s.CreateSublist(ctx, cur.ID, model.ListInput{Name: "too deep"})
	require.ErrorIs(t, err, model.ErrDepthLimitExceeded)
	assert.Empty(t, cur.Sublists)
}

func TestCreateRejectsInvalidInputWithoutSaving(t *testing.T) {
	ms := &memStore{}
	s := openSession(t, ms)
	ctx := context.Background()

	_, err := s.CreateList(ctx, model.ListInput{Name: ""})
	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, s.Lists())
	assert.Equal(t, 0, ms.saves)
}

func TestUpdateListValidatesBeforeMutating(t *testing.T) {
	s := openSession(t, &memStore{})
	ctx := context.Background()
	l, err := s.CreateList(ctx, model.ListInput{Name: "Books", Category: "Media"})
	require.NoError(t, err)

	_, err = s.UpdateList(ctx, l.ID, model.ListInput{Name: "Books", Category: string(make([]byte, 51))})
	require.Error(t, err)
	assert.Equal(t, "Media", l.Category, "failed update leaves the list untouched")

	_, err = s.UpdateList(ctx, l.ID, model.ListInput{Name: "Novels", HideFinancials: true})
	require.NoError(t, err)
	assert.Equal(t, "Novels", l.Name)
	assert.True(t, l.HideFinancials)
}

func TestDeleteListCascades(t *testing.T) {
	s := openSession(t, &memStore{})
	ctx := context.Background()

	root, _ := s.CreateList(ctx, model.ListInput{Name: "Attic"})
	box, _ := s.CreateSublist(ctx, root.ID, model.ListInput{Name: "Box"})
	inner, _ := s.CreateSublist(ctx, box.ID, model.ListInput{Name: "Inner"})
	it, err := s.CreateItem(ctx, inner.ID, model.ItemInput{Name: "Photo album"})
	require.NoError(t, err)
	require.NoError(t, s.SetViewState(ctx, inner.ID, viewstate.Entry{ViewMode: model.ViewItems, SortField: model.SortByName}))

	require.NoError(t, s.DeleteList(ctx, box.ID))
	assert.Nil(t, s.FindList(box.ID))
	assert.Nil(t, s.FindList(inner.ID))
	_, err = s.FindItem(inner.ID, it.ID)
	assert.Error(t, err)
	assert.Equal(t, viewstate.DefaultEntry(), s.ViewState(inner.ID))
	assert.NotNil(t, s.FindList(root.ID))

	var nf inventory.NotFoundError
	require.ErrorAs(t, s.DeleteList(ctx, box.ID), &nf)
	assert.Equal(t, "list", nf.Kind)
}

func TestItemCRUD(t *testing.T) {
	ms := &memStore{}
	s := openSession(t, ms)
	ctx := context.Background()
	l, _ := s.CreateList(ctx, model.ListInput{Name: "Cameras"})

	it, err := s.CreateItem(ctx, l.ID, model.ItemInput{
		Name:          "Leica M6",
		PurchasePrice: 1200,
		CurrentValue:  2500,
		Properties:    model.Properties{{Key: "year", Value: model.NumberValue(1984)}},
	})
	require.NoError(t, err)

	got, err := s.FindItem(l.ID, it.ID)
	require.NoError(t, err)
	assert.Same(t, it, got)

	in := it.Input()
	in.CurrentValue = model.Absent()
	_, err = s.UpdateItem(ctx, l.ID, it.ID, in)
	require.NoError(t, err)
	assert.False(t, it.CurrentValue.Valid())

	_, err = s.UpdateItem(ctx, l.ID, "nope", in)
	var nf inventory.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "item", nf.Kind)

	require.NoError(t, s.DeleteItem(ctx, l.ID, it.ID))
	assert.Empty(t, l.Items)
	assert.Error(t, s.DeleteItem(ctx, l.ID, it.ID))
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	ms := &memStore{saveErr: errors.New("read-only filesystem")}
	s := openSession(t, ms)

	l, err := s.CreateList(context.Background(), model.ListInput{Name: "Still here"})
	require.NoError(t, err, "persistence failures are not returned from mutations")
	assert.Same(t, l, s.FindList(l.ID))
	assert.EqualError(t, s.SaveError(), "read-only filesystem")

	ms.saveErr = nil
	require.NoError(t, s.Save(context.Background()))
	assert.NoError(t, s.SaveError())
}

func TestTotalsAndContents(t *testing.T) {
	s := openSession(t, &memStore{})
	ctx := context.Background()
	l, _ := s.CreateList(ctx, model.ListInput{Name: "Watches"})
	sub, _ := s.CreateSublist(ctx, l.ID, model.ListInput{Name: "Vintage"})
	_, _ = s.CreateItem(ctx, l.ID, model.ItemInput{Name: "Swatch", PurchasePrice: 50, CurrentValue: model.Absent()})
	_, _ = s.CreateItem(ctx, sub.ID, model.ItemInput{Name: "Omega", PurchasePrice: model.Absent(), CurrentValue: 900})

	totals, err := s.Totals(l.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Amount(50), totals.PurchasePrice)
	assert.Equal(t, model.Amount(900), totals.CurrentValue)
	assert.Equal(t, model.Amount(850), totals.Profit)

	require.NoError(t, s.SetViewState(ctx, l.ID, viewstate.Entry{ViewMode: model.ViewSublists, SortField: model.SortByName, Ascending: true}))
	view, err := s.Contents(l.ID)
	require.NoError(t, err)
	assert.Len(t, view.Sublists, 1)
	assert.Empty(t, view.Items)

	_, err = s.Totals("missing")
	assert.Error(t, err)
	_, err = s.Contents("missing")
	assert.Error(t, err)
}

func TestOverviewListsAndBreadcrumb(t *testing.T) {
	s := openSession(t, &memStore{})
	ctx := context.Background()
	b, _ := s.CreateList(ctx, model.ListInput{Name: "Books", Category: "Media"})
	_, _ = s.CreateList(ctx, model.ListInput{Name: "Art"})
	_, _ = s.CreateList(ctx, model.ListInput{Name: "Games", Category: "Media"})

	s.SetOverview(ctx, viewstate.OverviewState{SortField: model.SortByName, Ascending: false, Query: "media"})
	names := []string{}
	for _, l := range s.OverviewLists() {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Games", "Books"}, names)

	sub, _ := s.CreateSublist(ctx, b.ID, model.ListInput{Name: "Sci-fi"})
	crumbs := s.Breadcrumb(sub.ID)
	require.Len(t, crumbs, 2)
	assert.Equal(t, "Books", crumbs[0].Name)
	assert.Equal(t, "Sci-fi", crumbs[1].Name)
}

func TestNeighbours(t *testing.T) {
	s := openSession(t, &memStore{})
	ctx := context.Background()
	l, _ := s.CreateList(ctx, model.ListInput{Name: "Tools"})
	saw, _ := s.CreateItem(ctx, l.ID, model.ItemInput{Name: "Saw"})
	axe, _ := s.CreateItem(ctx, l.ID, model.ItemInput{Name: "Axe"})
	hammer, _ := s.CreateItem(ctx, l.ID, model.ItemInput{Name: "Hammer"})

	prev, next := s.Neighbours(l.ID, hammer.ID)
	assert.Same(t, axe, prev)
	assert.Same(t, saw, next)

	prev, next = s.Neighbours("gone", hammer.ID)
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestPersistsThroughFileStore(t *testing.T) {
	fs := testutil.NewTestFileStore(t)
	ctx := context.Background()

	s := openSession(t, fs)
	l, err := s.CreateList(ctx, model.ListInput{Name: "Vinyl"})
	require.NoError(t, err)
	_, err = s.CreateItem(ctx, l.ID, model.ItemInput{Name: "Abbey Road", PurchasePrice: 30, CurrentValue: model.Absent()})
	require.NoError(t, err)
	require.NoError(t, s.SetViewState(ctx, l.ID, viewstate.Entry{ViewMode: model.ViewItems, SortField: model.SortByPurchasePrice, Ascending: false}))

	reopened := openSession(t, fs)
	require.NoError(t, reopened.LoadError())
	got := reopened.FindList(l.ID)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.False(t, got.Items[0].CurrentValue.Valid())
	assert.Equal(t, model.SortByPurchasePrice, reopened.ViewState(l.ID).SortField)
}

func TestImportReplacesForest(t *testing.T) {
	ms := &memStore{}
	s := openSession(t, ms)
	ctx := context.Background()
	_, _ = s.CreateList(ctx, model.ListInput{Name: "Old"})

	doc, err := store.DecodeDocument([]byte(`{"lists":[{"id":"x","name":"Imported","createdAt":"2024-01-01T00:00:00Z","level":4}]}`))
	require.NoError(t, err)
	require.NoError(t, s.Import(ctx, doc))
	require.Len(t, s.Lists(), 1)
	assert.Equal(t, "Imported", s.Lists()[0].Name)
	assert.Equal(t, 0, s.Lists()[0].Level)
	assert.Empty(t, s.Lists()[0].Items)
}

func TestSetViewStateRejectsOverviewKey(t *testing.T) {
	st := &memStore{}
	s := openSession(t, st)

	err := s.SetViewState(context.Background(), viewstate.OverviewKey, viewstate.Entry{ViewMode: model.ViewItems, SortField: model.SortByName})
	assert.ErrorIs(t, err, viewstate.ErrReservedKey)
	assert.Equal(t, 0, st.saves)
	assert.Equal(t, viewstate.DefaultOverview(), s.Overview())
}

func TestOpenOriginalFileThroughJSONStore(t *testing.T) {
	st := testutil.NewTestFileStore(t)
	raw := `{"lists":[{"id":"1","name":"Coins","createdAt":"2023-11-14T22:13:20.000Z","level":4,
	  "items":[{"id":"2","name":"Penny","purchasePrice":null,"currentValue":1,"imageUrl":"p.png","createdAt":"bad"}],
	  "sublists":[]}],"sortOptions":{"listSortMode":"name","listSortAsc":false}}`
	require.NoError(t, os.WriteFile(st.Path(), []byte(raw), 0o644))

	s := openSession(t, st)
	require.NoError(t, s.LoadError())
	coins := s.FindList("1")
	require.NotNil(t, coins)
	assert.Equal(t, 0, coins.Level)
	penny, err := s.FindItem("1", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p.png"}, penny.ImageURLs)
	assert.False(t, s.Overview().Ascending)

	matches, err := filepath.Glob(st.Path() + ".corrupt-*")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
