package listing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-marketplace/internal/database"
	"property-marketplace/internal/filter"
	"property-marketplace/internal/fixtures"
	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

type fakeSource struct {
	records []normalize.RawRecord
	err     error
	calls   int
}

func (f *fakeSource) ListRaw(_ context.Context, q database.Query) ([]normalize.RawRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSource) GetRaw(_ context.Context, id string) (normalize.RawRecord, error) {
	for _, r := range f.records {
		if r["id"] == id {
			return r, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeSource) UpdateStatus(_ context.Context, id string, status models.ListingStatus) error {
	for _, r := range f.records {
		if r["id"] == id {
			r["status"] = string(status)
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeSource) Delete(_ context.Context, id string) error {
	for i, r := range f.records {
		if r["id"] == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

// readOnly hides the Writer methods of a source
type readOnly struct{ Source }

type memCache struct {
	entries     map[string]ListResult
	invalidated int
}

func newMemCache() *memCache { return &memCache{entries: map[string]ListResult{}} }

func (m *memCache) Key(parts ...string) string { return strings.Join(parts, "|") }

func (m *memCache) Get(_ context.Context, key string, dest any) bool {
	v, ok := m.entries[key]
	if ok {
		*(dest.(*ListResult)) = v
	}
	return ok
}

func (m *memCache) Set(_ context.Context, key string, value any) {
	m.entries[key] = value.(ListResult)
}

func (m *memCache) Invalidate(context.Context) (int, error) {
	n := len(m.entries)
	m.entries = map[string]ListResult{}
	m.invalidated++
	return n, nil
}

type memIndex struct {
	docs map[string]models.Property
}

func (m *memIndex) IndexListing(p models.Property) error {
	m.docs[p.ID] = p
	return nil
}

func (m *memIndex) DeleteListing(id string) error {
	delete(m.docs, id)
	return nil
}

func (m *memIndex) ReplaceAll(listings []models.Property) error {
	m.docs = map[string]models.Property{}
	for _, p := range listings {
		m.docs[p.ID] = p
	}
	return nil
}

func roomRecords() []normalize.RawRecord {
	return []normalize.RawRecord{
		{"id": "r1", "price": "₹20,000", "city": "Mohali", "property_type": "Room", "posting_type": "Rent", "status": "Approved", "created_at": "2025-01-03T00:00:00Z", "property_title": "Room near IT park"},
		{"id": "r2", "price": "₹60,000", "city": "Kurali", "property_type": "Room", "posting_type": "rent", "status": "Published", "created_at": "2025-01-02T00:00:00Z"},
		{"id": "r3", "price": "₹9,000", "city": "Mohali", "property_type": "PG", "status": "Active", "created_at": "2025-01-01T00:00:00Z"},
		{"id": "r4", "price": "₹15,000", "city": "Mohali", "property_type": "Room", "status": "Pending", "created_at": "2025-01-04T00:00:00Z"},
	}
}

func ids(ps []models.Property) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestList_EndToEnd(t *testing.T) {
	svc := NewService(&fakeSource{records: roomRecords()})

	f := models.EmptyFilterState()
	f.PropertyType = models.CategoryRoom
	f.Location.City = "Mohali"
	f.PriceRange = models.PriceRange{Min: 0, Max: 50000}

	res, err := svc.List(context.Background(), ListParams{Filters: f})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, ids(res.Data))
	assert.Equal(t, 1, res.Pagination.TotalItems)
	assert.Contains(t, res.Filters, "propertyType=Room")
}

func TestList_HidesNonPublic(t *testing.T) {
	svc := NewService(&fakeSource{records: roomRecords()})

	res, err := svc.List(context.Background(), ListParams{Filters: models.EmptyFilterState()})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids(res.Data))
}

func TestList_KeywordSortPage(t *testing.T) {
	svc := NewService(&fakeSource{records: roomRecords()})
	ctx := context.Background()

	res, err := svc.List(ctx, ListParams{Filters: models.EmptyFilterState(), Query: "it PARK"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, ids(res.Data))

	res, err = svc.List(ctx, ListParams{Filters: models.EmptyFilterState(), Sort: filter.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"r3", "r1", "r2"}, ids(res.Data))

	res, err = svc.List(ctx, ListParams{Filters: models.EmptyFilterState(), Sort: "bogus", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"r3"}, ids(res.Data))
	assert.Equal(t, filter.Pagination{CurrentPage: 2, TotalPages: 2, TotalItems: 3, ItemsPerPage: 2}, res.Pagination)
}

func TestList_MergesSources(t *testing.T) {
	first := &fakeSource{records: roomRecords()}
	second := &fakeSource{records: []normalize.RawRecord{
		{"id": "r1", "price": "1", "status": "Approved"},
		{"id": "kv-1", "price": "30000", "city": "Kharar", "status": "Approved", "created_at": "2024-12-01T00:00:00Z"},
	}}
	svc := NewService(first, second)

	res, err := svc.List(context.Background(), ListParams{Filters: models.EmptyFilterState()})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3", "kv-1"}, ids(res.Data))
	assert.Equal(t, float64(20000), res.Data[0].Price)
}

func TestList_SourceFailures(t *testing.T) {
	ctx := context.Background()
	broken := &fakeSource{err: errors.New("connection refused")}

	svc := NewService(broken, &fakeSource{records: roomRecords()})
	res, err := svc.List(ctx, ListParams{Filters: models.EmptyFilterState()})
	require.NoError(t, err)
	assert.Len(t, res.Data, 3)

	_, err = NewService(broken).List(ctx, ListParams{Filters: models.EmptyFilterState()})
	assert.ErrorContains(t, err, "connection refused")
}

func TestList_Cache(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{records: roomRecords()}
	cache := newMemCache()
	svc := NewService(src).WithCache(cache)

	params := ListParams{Filters: models.EmptyFilterState()}
	first, err := svc.List(ctx, params)
	require.NoError(t, err)
	second, err := svc.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)

	// stale fields of another category share the cache entry
	params.Filters.BHK = models.BHK2
	_, err = svc.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	require.NoError(t, svc.UpdateStatus(ctx, "r2", models.StatusRejected))
	assert.Equal(t, 1, cache.invalidated)

	res, err := svc.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, []string{"r1", "r3"}, ids(res.Data))
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeSource{}, &fakeSource{records: roomRecords()})

	p, err := svc.Get(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, "Kurali", p.Location.City)

	_, err = svc.Get(ctx, "r4")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	svc := NewService(&fakeSource{records: roomRecords()})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, map[string]int{"Room": 2, "PG": 1}, stats.ByPropertyType)
	assert.Equal(t, map[string]int{"Rent": 2, "Sell": 1}, stats.ByPostingType)
}

func TestModeration(t *testing.T) {
	ctx := context.Background()
	static := readOnly{fixtures.NewSource(time.Now())}
	src := &fakeSource{records: roomRecords()}
	index := &memIndex{docs: map[string]models.Property{}}
	svc := NewService(static, src).WithIndex(index)

	n, err := svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(fixtures.Folders)+3, n)
	assert.Contains(t, index.docs, "r1")

	require.NoError(t, svc.UpdateStatus(ctx, "r4", models.StatusApproved))
	assert.Contains(t, index.docs, "r4")

	require.NoError(t, svc.UpdateStatus(ctx, "r1", models.StatusRejected))
	assert.NotContains(t, index.docs, "r1")

	require.NoError(t, svc.Delete(ctx, "r2"))
	assert.NotContains(t, index.docs, "r2")
	_, err = svc.Get(ctx, "r2")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "static-1"), ErrNotFound)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, "nope", models.StatusApproved), ErrNotFound)
}

func TestReindex_NoIndex(t *testing.T) {
	_, err := NewService(&fakeSource{}).Reindex(context.Background())
	assert.Error(t, err)
}
