package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-marketplace/internal/fixtures"
	"property-marketplace/internal/kvstore"
	"property-marketplace/internal/listing"
	"property-marketplace/internal/models"
	"property-marketplace/internal/ratelimit"
	"property-marketplace/internal/search"
	"property-marketplace/internal/scheduler"
)

const testToken = "secret"

type fakeSearcher struct {
	params search.FilterParams
}

func (f *fakeSearcher) FilterSearch(params search.FilterParams) (*search.SearchResult, error) {
	f.params = params
	return &search.SearchResult{
		Hits:      []models.Property{{ID: "static-1"}},
		TotalHits: 1,
		Page:      params.Page,
		Limit:     params.Limit,
	}, nil
}

func (f *fakeSearcher) GetFacets(facets []string) (map[string]interface{}, error) {
	return map[string]interface{}{"requested": facets}, nil
}

type fakeJobs struct {
	status scheduler.Status
	runs   chan struct{}
}

func (f *fakeJobs) RunNow() error {
	f.runs <- struct{}{}
	return nil
}

func (f *fakeJobs) Status() scheduler.Status { return f.status }

type testServer struct {
	router   *gin.Engine
	stores   Stores
	searcher *fakeSearcher
	jobs     *fakeJobs
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	client := kvstore.NewClientFromRedis(rdb)

	svc := listing.NewService(
		kvstore.NewListingSource(client),
		fixtures.NewSource(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
	)
	stores := NewStores(client)
	ts := &testServer{
		stores:   stores,
		searcher: &fakeSearcher{},
		jobs:     &fakeJobs{runs: make(chan struct{}, 1)},
	}

	r := gin.New()
	Routes{
		Listings:   NewListingHandler(svc),
		Search:     NewSearchHandler(ts.searcher),
		Leads:      NewLeadHandler(stores),
		Admin:      NewAdminHandler(svc, stores, ts.jobs),
		Limiter:    ratelimit.NewRateLimiter(2, 10, true),
		AdminToken: testToken,
	}.Register(r)
	ts.router = r
	return ts
}

func (ts *testServer) do(t *testing.T, method, target, body string, admin bool) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func TestListProperties(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/public/properties", "", false)
	require.Equal(t, http.StatusOK, code)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(6), pagination["totalItems"])

	code, body = ts.do(t, http.MethodGet, "/api/public/properties?city=kharar", "", false)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	loc := data[0].(map[string]any)["location"].(map[string]any)
	assert.Equal(t, "Kharar", loc["city"])
}

func TestListProperties_PageBeyondEnd(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/public/properties?page=4611686018427387904", "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["data"])
	assert.Equal(t, float64(6), body["pagination"].(map[string]any)["totalItems"])
}

func TestListProperties_MalformedFilters(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/public/properties?filters="+url.QueryEscape("{bad"), "", false)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "filters")
}

func TestGetProperty(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/public/properties/static-1", "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "static-1", body["data"].(map[string]any)["id"])

	code, body = ts.do(t, http.MethodGet, "/api/public/properties/nope", "", false)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Property not found", body["error"])
}

func TestStats(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/public/stats", "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(6), body["data"].(map[string]any)["total"])
}

func fieldNames(t *testing.T, body map[string]any) []string {
	t.Helper()
	var names []string
	for _, f := range body["fields"].([]any) {
		names = append(names, f.(map[string]any)["name"].(string))
	}
	return names
}

func TestCategoryFields(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/schema/categories/commercial/fields?commercialCategory=Office", "", false)
	require.Equal(t, http.StatusOK, code)
	names := fieldNames(t, body)
	assert.Contains(t, names, "cabinsCount")
	assert.NotContains(t, names, "ceilingHeight")

	// without a sub-category every commercial field is listed
	_, body = ts.do(t, http.MethodGet, "/api/schema/categories/commercial/fields", "", false)
	names = fieldNames(t, body)
	assert.Contains(t, names, "cabinsCount")
	assert.Contains(t, names, "ceilingHeight")

	_, body = ts.do(t, http.MethodGet, "/api/schema/categories/plot-land/fields", "", false)
	assert.Equal(t, "Plot/Land", body["category"])
	assert.Contains(t, fieldNames(t, body), "roadWidth")

	_, body = ts.do(t, http.MethodGet, "/api/schema/categories/castle/fields", "", false)
	assert.Empty(t, body["fields"])
}

func TestCategories(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/schema/categories", "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["categories"], len(models.Categories))

	var universal []string
	for _, f := range body["universal"].([]any) {
		universal = append(universal, f.(map[string]any)["name"].(string))
	}
	assert.Contains(t, universal, "priceRange")
	assert.NotContains(t, universal, "bhk")
}

func TestApplyFilter(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodPost, "/api/filters/apply",
		`{"action":{"type":"setField","field":"propertyType","value":"Plot/Land"}}`, false)
	require.Equal(t, http.StatusOK, code)
	state := body["state"].(map[string]any)
	assert.Equal(t, "Plot/Land", state["propertyType"])
	assert.NotEmpty(t, body["canonical"])

	code, body = ts.do(t, http.MethodPost, "/api/filters/apply",
		`{"state":{"propertyType":"Plot/Land"},"action":{"type":"reset"}}`, false)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "", body["state"].(map[string]any)["propertyType"])

	code, _ = ts.do(t, http.MethodPost, "/api/filters/apply", `{"action":{}}`, false)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/search?q=villa&bhk=3&sort=price_asc&page=2", "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["totalHits"])
	assert.Equal(t, "villa", ts.searcher.params.Query)
	assert.Equal(t, 2, ts.searcher.params.Page)
	assert.NotEmpty(t, ts.searcher.params.Filters.BHK)

	code, body = ts.do(t, http.MethodGet, "/api/search/facets?facets=f_bhk,f_furnishing", "", false)
	require.Equal(t, http.StatusOK, code)
	facets := body["facets"].(map[string]any)
	assert.Equal(t, []any{"f_bhk", "f_furnishing"}, facets["requested"])
}

func TestSubmitQuery(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodPost, "/api/queries",
		`{"firstName":"Asha","phone":"9876543210","propertyId":"static-1","message":"Is it available?"}`, false)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, float64(1), body["id"])
	assert.NotEmpty(t, body["reference"])

	code, body = ts.do(t, http.MethodPost, "/api/queries", `{"firstName":"Asha"}`, false)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["error"])

	code, body = ts.do(t, http.MethodGet, "/api/admin/queries?search=asha", "", true)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	entry := data[0].(map[string]any)
	assert.Equal(t, "property", entry["type"])
	assert.Equal(t, "new", entry["status"])
}

func TestSubmitBroker_RateLimited(t *testing.T) {
	ts := newTestServer(t)

	payload := `{"fullName":"Ravi Kumar","primaryMobile":"9876543210","city":"Mohali"}`
	for i := 0; i < 2; i++ {
		code, _ := ts.do(t, http.MethodPost, "/api/brokers", payload, false)
		require.Equal(t, http.StatusCreated, code)
	}

	code, body := ts.do(t, http.MethodPost, "/api/brokers", payload, false)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "Rate limit exceeded", body["error"])

	res, err := ts.stores[models.EntityBroker].GetAll(context.Background(), kvstore.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pagination.Total)
}

func TestAdmin_RequiresToken(t *testing.T) {
	ts := newTestServer(t)

	code, _ := ts.do(t, http.MethodGet, "/api/admin/stats", "", false)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := ts.do(t, http.MethodGet, "/api/admin/stats", "", true)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "properties")
	assert.Contains(t, body, "entities")
}

func TestAdmin_Moderation(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	_, err := ts.stores[models.EntityProperty].Create(ctx, map[string]any{
		"title":        "Corner plot",
		"propertyType": "Plot/Land",
		"price":        2500000,
		"city":         "Zirakpur",
		"status":       "Pending",
	})
	require.NoError(t, err)

	code, _ := ts.do(t, http.MethodGet, "/api/public/properties/kv-1", "", false)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = ts.do(t, http.MethodPatch, "/api/admin/properties/kv-1/status", `{"status":"approved"}`, true)
	require.Equal(t, http.StatusOK, code)

	code, body := ts.do(t, http.MethodGet, "/api/public/properties/kv-1", "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Corner plot", body["data"].(map[string]any)["title"])

	code, _ = ts.do(t, http.MethodPatch, "/api/admin/properties/kv-1/status", `{"status":"bogus"}`, true)
	assert.Equal(t, http.StatusBadRequest, code)

	// static listings are read-only
	code, _ = ts.do(t, http.MethodPatch, "/api/admin/properties/static-1/status", `{"status":"Rejected"}`, true)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = ts.do(t, http.MethodDelete, "/api/admin/properties/kv-1", "", true)
	require.Equal(t, http.StatusOK, code)
	code, _ = ts.do(t, http.MethodGet, "/api/public/properties/kv-1", "", false)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdmin_Entities(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodPost, "/api/admin/entities/pre_launch", `{"name":"Skyline Towers","city":"Mohali"}`, true)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Published", body["data"].(map[string]any)["status"])

	code, _ = ts.do(t, http.MethodPost, "/api/admin/entities/pre_launch", `{"name":"Draft","status":"Pending"}`, true)
	require.Equal(t, http.StatusCreated, code)

	code, body = ts.do(t, http.MethodGet, "/api/pre-launch", "", false)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Skyline Towers", data[0].(map[string]any)["name"])

	code, _ = ts.do(t, http.MethodPatch, "/api/admin/entities/pre_launch/2", `{"status":"Published"}`, true)
	require.Equal(t, http.StatusOK, code)
	_, body = ts.do(t, http.MethodGet, "/api/pre-launch", "", false)
	assert.Len(t, body["data"], 2)

	code, _ = ts.do(t, http.MethodGet, "/api/admin/entities/pre_launch?filter[city]=Mohali", "", true)
	assert.Equal(t, http.StatusOK, code)

	code, _ = ts.do(t, http.MethodDelete, "/api/admin/entities/pre_launch/9", "", true)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = ts.do(t, http.MethodDelete, "/api/admin/entities/pre_launch/x", "", true)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = ts.do(t, http.MethodGet, "/api/admin/entities/unknown", "", true)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdmin_Reindex(t *testing.T) {
	ts := newTestServer(t)

	code, _ := ts.do(t, http.MethodPost, "/api/search/reindex", "", true)
	require.Equal(t, http.StatusAccepted, code)
	select {
	case <-ts.jobs.runs:
	case <-time.After(time.Second):
		t.Fatal("reindex was not started")
	}

	ts.jobs.status.Running = true
	code, _ = ts.do(t, http.MethodPost, "/api/search/reindex", "", true)
	assert.Equal(t, http.StatusConflict, code)

	code, body := ts.do(t, http.MethodGet, "/api/search/reindex/status", "", true)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["running"])
}

func TestAdmin_PriceDistribution(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/admin/price-distribution", "", true)
	require.Equal(t, http.StatusOK, code)

	var total float64
	for _, r := range body["price_distribution"].([]any) {
		total += r.(map[string]any)["count"].(float64)
	}
	assert.Equal(t, float64(6), total)
}
