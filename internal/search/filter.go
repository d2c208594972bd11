package search

import (
	"math"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	"property-marketplace/internal/filter"
	"property-marketplace/internal/models"
)

type FilterParams struct {
	Query   string
	Filters models.FilterState
	Sort    filter.SortOrder
	Page    int
	Limit   int
}

// SearchResult is one page of search hits
type SearchResult struct {
	Hits           []models.Property `json:"data"`
	TotalHits      int64             `json:"totalHits"`
	Page           int               `json:"page"`
	Limit          int               `json:"limit"`
	ProcessingTime int64             `json:"processingTimeMs"`
}

// buildRequest translates params into a search request. ok is false when
// the filter cannot match anything.
func buildRequest(params FilterParams) (req *meilisearch.SearchRequest, page, limit int, ok bool) {
	page, limit = params.Page, params.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = filter.DefaultPageSize
	}
	if limit > filter.MaxPageSize {
		limit = filter.MaxPageSize
	}

	// offsets past the engine's reach cannot hold hits
	if page-1 > math.MaxInt32/limit {
		return nil, page, limit, false
	}

	clauses, ok := filter.MeiliFilter(params.Filters)
	if !ok {
		return nil, page, limit, false
	}

	req = &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Offset: int64((page - 1) * limit),
		Sort:   filter.MeiliSort(params.Sort),
	}
	if len(clauses) > 0 {
		req.Filter = strings.Join(clauses, " AND ")
	}
	return req, page, limit, true
}

// FilterSearch runs a keyword search narrowed by a filter state. Fields
// the engine cannot express (substring location matches) are checked on
// the returned hits, so a page may hold fewer hits than the limit.
func (s *SearchClient) FilterSearch(params FilterParams) (*SearchResult, error) {
	searchReq, page, limit, ok := buildRequest(params)
	if !ok {
		return &SearchResult{Hits: []models.Property{}, Page: page, Limit: limit}, nil
	}

	searchRes, err := s.client.Index(s.index).Search(params.Query, searchReq)
	if err != nil {
		return nil, err
	}

	pred := filter.Compile(params.Filters)
	properties := make([]models.Property, 0, len(searchRes.Hits))
	for _, hit := range searchRes.Hits {
		property, ok := fromHit(hit)
		if !ok || !pred(&property) {
			continue
		}
		properties = append(properties, property)
	}

	return &SearchResult{
		Hits:           properties,
		TotalHits:      searchRes.EstimatedTotalHits,
		Page:           page,
		Limit:          limit,
		ProcessingTime: searchRes.ProcessingTimeMs,
	}, nil
}
