package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/search"
)

func newEngine(reports *fakeReportStore, findings *fakeFindingStore, users *fakeUserStore, grants *fakeGrantStore, store *fakeVectorStore) *SimilarityEngine {
	resolver := NewAccessResolver(users, grants)
	return NewSimilarityEngine(reports, findings, resolver, store, nil)
}

func TestSimilarityEngine_AdminIsUnrestricted(t *testing.T) {
	admin := report.NewUser("Admin", "admin@example.com", report.RoleAdmin)
	store := &fakeVectorStore{}
	engine := newEngine(newFakeReportStore(), newFakeFindingStore(), newFakeUserStore(admin), &fakeGrantStore{}, store)

	_, err := engine.FindSimilar(context.Background(), SimilarityRequest{
		Kind:          search.KindReport,
		QueryVector:   []float64{1, 0},
		CallerID:      admin.ID(),
		EnforceAccess: true,
	})
	require.NoError(t, err)

	q, ok := store.lastQuery()
	require.True(t, ok, "store must be queried")
	assert.False(t, q.Restricted(), "admin queries must not carry a tenant restriction")
}

func TestSimilarityEngine_GrantsRestrictTenants(t *testing.T) {
	viewer := report.NewUser("Viewer", "viewer@example.com", report.RoleViewer)
	grants := &fakeGrantStore{grants: []report.AccessGrant{
		report.NewAccessGrant(viewer.ID(), "cust-1", report.AccessLevelRead, "admin"),
		report.NewAccessGrant(viewer.ID(), "cust-2", report.AccessLevelRead, "admin"),
	}}
	store := &fakeVectorStore{}
	engine := newEngine(newFakeReportStore(), newFakeFindingStore(), newFakeUserStore(viewer), grants, store)

	_, err := engine.FindSimilar(context.Background(), SimilarityRequest{
		Kind:          search.KindReport,
		QueryVector:   []float64{1, 0},
		CallerID:      viewer.ID(),
		EnforceAccess: true,
	})
	require.NoError(t, err)

	q, ok := store.lastQuery()
	require.True(t, ok)
	assert.True(t, q.Restricted())
	assert.ElementsMatch(t, []string{"cust-1", "cust-2"}, q.CustomerIDs())
}

func TestSimilarityEngine_NoGrantsShortCircuits(t *testing.T) {
	viewer := report.NewUser("Viewer", "viewer@example.com", report.RoleViewer)
	store := &fakeVectorStore{}
	engine := newEngine(newFakeReportStore(), newFakeFindingStore(), newFakeUserStore(viewer), &fakeGrantStore{}, store)

	results, err := engine.FindSimilar(context.Background(), SimilarityRequest{
		Kind:          search.KindReport,
		QueryVector:   []float64{1, 0},
		CallerID:      viewer.ID(),
		EnforceAccess: true,
	})
	require.NoError(t, err)

	assert.NotNil(t, results)
	assert.Empty(t, results)
	_, queried := store.lastQuery()
	assert.False(t, queried, "store must not be queried for a caller with no grants")
}

func TestSimilarityEngine_UnknownCallerFailsClosed(t *testing.T) {
	store := &fakeVectorStore{}
	engine := newEngine(newFakeReportStore(), newFakeFindingStore(), newFakeUserStore(), &fakeGrantStore{}, store)

	results, err := engine.FindSimilar(context.Background(), SimilarityRequest{
		Kind:          search.KindReport,
		QueryVector:   []float64{1, 0},
		CallerID:      "no-such-user",
		EnforceAccess: true,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
	_, queried := store.lastQuery()
	assert.False(t, queried)
}

func TestSimilarityEngine_UnenforcedSkipsAccessResolution(t *testing.T) {
	store := &fakeVectorStore{}
	engine := newEngine(newFakeReportStore(), newFakeFindingStore(), newFakeUserStore(), &fakeGrantStore{}, store)

	_, err := engine.FindSimilar(context.Background(), SimilarityRequest{
		Kind:        search.KindReport,
		QueryVector: []float64{1, 0},
	})
	require.NoError(t, err)

	q, ok := store.lastQuery()
	require.True(t, ok)
	assert.False(t, q.Restricted())
}

func TestSimilarityEngine_ReportDefaultStatuses(t *testing.T) {
	store := &fakeVectorStore{}
	engine := newEngine(newFakeReportStore(), newFakeFindingStore(), newFakeUserStore(), &fakeGrantStore{}, store)

	_, err := engine.FindSimilar(context.Background(), SimilarityRequest{
		Kind:        search.KindReport,
		QueryVector: []float64{1, 0},
	})
	require.NoError(t, err)

	q, _ := store.lastQuery()
	assert.ElementsMatch(t, []string{"published", "in_review"}, q.Filters().Statuses())
}

func TestSimilarityEngine_ReportStatusOverride(t *testing.T) {
	store := &fakeVectorStore{}
	engine := newEngine(newFakeReportStore(), newFakeFindingStore(), newFakeUserStore(), &fakeGrantStore{}, store)

	_, err := engine.FindSimilar(context.Background(), SimilarityRequest{
		Kind:        search.KindReport,
		QueryVector: []float64{1, 0},
		Filters:     search.NewFilters(search.WithStatuses("archived")),
	})
	require.NoError(t, err)

	q, _ := store.lastQuery()
	assert.Equal(t, []string{"archived"}, q.Filters().Statuses())
}

func TestSimilarityEngine_FindingsAlwaysExcludeFalsePositives(t *testing.T) {
	store := &fakeVectorStore{}
	engine := newEngine(newFakeReportStore(), newFakeFindingStore(), newFakeUserStore(), &fakeGrantStore{}, store)

	_, err := engine.FindSimilar(context.Background(), SimilarityRequest{
		Kind:        search.KindFinding,
		QueryVector: []float64{1, 0},
		Filters:     search.NewFilters(search.WithStatuses("resolved")),
	})
	require.NoError(t, err)

	q, _ := store.lastQuery()
	assert.Equal(t, []string{"resolved"}, q.Filters().Statuses())
	assert.Contains(t, q.Filters().ExcludeStatuses(), "false_positive")
}

func TestSimilarityEngine_SimilarToExcludesAnchor(t *testing.T) {
	anchor := report.NewReport("pg-prod-7", "Anchor", "", "cust-1", "user-1").
		WithEmbedding([]float64{1, 0, 0})
	store := &fakeVectorStore{}
	engine := newEngine(newFakeReportStore(anchor), newFakeFindingStore(), newFakeUserStore(), &fakeGrantStore{}, store)

	_, err := engine.SimilarTo(context.Background(), search.KindReport, anchor.ID(), 5, "", false, search.Filters{})
	require.NoError(t, err)

	q, ok := store.lastQuery()
	require.True(t, ok)
	assert.Equal(t, anchor.ID(), q.ExcludeID())
	assert.Equal(t, 5, q.Limit())
	assert.Equal(t, []float64{1, 0, 0}, q.Vector())
}

func TestSimilarityEngine_SimilarToMissingEmbedding(t *testing.T) {
	anchor := report.NewReport("pg-prod-7", "Anchor", "", "cust-1", "user-1")
	store := &fakeVectorStore{}
	engine := newEngine(newFakeReportStore(anchor), newFakeFindingStore(), newFakeUserStore(), &fakeGrantStore{}, store)

	_, err := engine.SimilarTo(context.Background(), search.KindReport, anchor.ID(), 5, "", false, search.Filters{})
	require.ErrorIs(t, err, search.ErrEmbeddingMissing)
	_, queried := store.lastQuery()
	assert.False(t, queried)
}

func TestSimilarityEngine_StoreErrorPropagates(t *testing.T) {
	store := &fakeVectorStore{err: errStoreDown}
	engine := newEngine(newFakeReportStore(), newFakeFindingStore(), newFakeUserStore(), &fakeGrantStore{}, store)

	_, err := engine.FindSimilar(context.Background(), SimilarityRequest{
		Kind:        search.KindReport,
		QueryVector: []float64{1, 0},
	})
	require.ErrorIs(t, err, errStoreDown)
}
