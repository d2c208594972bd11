// Package listing serves the public listing catalogue. It reads raw records
// from every configured source, normalizes them and applies the filter,
// keyword, sort and pagination of a request.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"property-marketplace/internal/database"
	"property-marketplace/internal/filter"
	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

// ErrNotFound is returned for listings that do not exist or are not public
var ErrNotFound = database.ErrNotFound

// Source yields raw listing records
type Source interface {
	ListRaw(ctx context.Context, q database.Query) ([]normalize.RawRecord, error)
	GetRaw(ctx context.Context, id string) (normalize.RawRecord, error)
}

// Writer is a source that supports moderation
type Writer interface {
	UpdateStatus(ctx context.Context, id string, status models.ListingStatus) error
	Delete(ctx context.Context, id string) error
}

// Cache stores list responses
type Cache interface {
	Key(parts ...string) string
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
	Invalidate(ctx context.Context) (int, error)
}

// Index mirrors public listings into a search engine
type Index interface {
	IndexListing(p models.Property) error
	DeleteListing(id string) error
	ReplaceAll(listings []models.Property) error
}

type Service struct {
	sources []Source
	cache   Cache
	index   Index
}

func NewService(sources ...Source) *Service {
	return &Service{sources: sources}
}

// WithCache enables the result cache
func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

// WithIndex keeps a search index in step with moderation changes
func (s *Service) WithIndex(i Index) *Service {
	s.index = i
	return s
}

type ListParams struct {
	Filters models.FilterState
	Query   string
	Sort    filter.SortOrder
	Page    int
	Limit   int
}

type ListResult struct {
	Data       []models.Property `json:"data"`
	Pagination filter.Pagination `json:"pagination"`
	// Filters is the canonical query of the filters that took effect
	Filters string `json:"filters"`
}

type Stats struct {
	Total          int            `json:"total"`
	ByPropertyType map[string]int `json:"byPropertyType"`
	ByPostingType  map[string]int `json:"byPostingType"`
}

func (p ListParams) cacheKey(c Cache) string {
	return c.Key(
		filter.Canonical(p.Filters),
		strings.ToLower(strings.TrimSpace(p.Query)),
		string(p.Sort),
		strconv.Itoa(p.Page),
		strconv.Itoa(p.Limit),
	)
}

// List returns one page of public listings matching params
func (s *Service) List(ctx context.Context, params ListParams) (ListResult, error) {
	params.Sort = filter.ParseSortOrder(string(params.Sort))

	var key string
	if s.cache != nil {
		key = params.cacheKey(s.cache)
		var cached ListResult
		if s.cache.Get(ctx, key, &cached) {
			return cached, nil
		}
	}

	start := time.Now()
	listings, err := s.load(ctx, database.PublicQuery(params.Filters))
	if err != nil {
		return ListResult{}, err
	}

	pred := filter.Compile(params.Filters)
	matched := make([]models.Property, 0, len(listings))
	for i := range listings {
		if pred(&listings[i]) && filter.MatchKeyword(&listings[i], params.Query) {
			matched = append(matched, listings[i])
		}
	}

	page, pagination := filter.Paginate(filter.Sort(matched, params.Sort), params.Page, params.Limit)
	result := ListResult{
		Data:       page,
		Pagination: pagination,
		Filters:    filter.Canonical(params.Filters),
	}

	log.Printf("[Listing API] duration_ms=%d scanned=%d total=%d page=%d sort=%s",
		time.Since(start).Milliseconds(), len(listings), pagination.TotalItems, pagination.CurrentPage, params.Sort)

	if s.cache != nil {
		s.cache.Set(ctx, key, result)
	}
	return result, nil
}

// Get returns one public listing
func (s *Service) Get(ctx context.Context, id string) (models.Property, error) {
	for _, src := range s.sources {
		raw, err := src.GetRaw(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return models.Property{}, fmt.Errorf("failed to get listing %s: %w", id, err)
		}
		p := normalize.Normalize(raw)
		if !p.IsPublic() {
			return models.Property{}, ErrNotFound
		}
		return p, nil
	}
	return models.Property{}, ErrNotFound
}

// All returns every public listing, newest first
func (s *Service) All(ctx context.Context) ([]models.Property, error) {
	listings, err := s.load(ctx, database.PublicQuery(models.EmptyFilterState()))
	if err != nil {
		return nil, err
	}
	return filter.Sort(listings, filter.SortNewest), nil
}

// Stats counts public listings by property type and posting type
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	listings, err := s.load(ctx, database.PublicQuery(models.EmptyFilterState()))
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Total:          len(listings),
		ByPropertyType: map[string]int{},
		ByPostingType:  map[string]int{},
	}
	for _, p := range listings {
		stats.ByPropertyType[string(p.Category)]++
		stats.ByPostingType[string(models.ParsePostingType(string(p.PostingType)))]++
	}
	return stats, nil
}

// UpdateStatus moderates a listing in whichever writable source holds it
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.ListingStatus) error {
	if err := s.write(ctx, id, func(w Writer) error { return w.UpdateStatus(ctx, id, status) }); err != nil {
		return err
	}
	s.invalidate(ctx)

	if s.index == nil {
		return nil
	}
	if status.IsPublic() {
		p, err := s.Get(ctx, id)
		if err == nil {
			err = s.index.IndexListing(p)
		}
		if err != nil {
			log.Printf("[Listing API] failed to index %s: %v", id, err)
		}
		return nil
	}
	if err := s.index.DeleteListing(id); err != nil {
		log.Printf("[Listing API] failed to unindex %s: %v", id, err)
	}
	return nil
}

// Delete removes a listing from whichever writable source holds it
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.write(ctx, id, func(w Writer) error { return w.Delete(ctx, id) }); err != nil {
		return err
	}
	s.invalidate(ctx)

	if s.index != nil {
		if err := s.index.DeleteListing(id); err != nil {
			log.Printf("[Listing API] failed to unindex %s: %v", id, err)
		}
	}
	return nil
}

// Reindex replaces the search index with the current public listings
func (s *Service) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, errors.New("search index not configured")
	}
	listings, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.index.ReplaceAll(listings); err != nil {
		return 0, err
	}
	log.Printf("[Reindex] indexed %d listings", len(listings))
	return len(listings), nil
}

func (s *Service) write(ctx context.Context, id string, op func(Writer) error) error {
	for _, src := range s.sources {
		w, ok := src.(Writer)
		if !ok {
			continue
		}
		err := op(w)
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to update listing %s: %w", id, err)
		}
		return nil
	}
	return ErrNotFound
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("[Listing API] failed to invalidate cache: %v", err)
	}
}

// load reads every source and normalizes the result. A failing source is
// logged and skipped unless every source fails. Listings found in more
// than one source keep the first copy.
func (s *Service) load(ctx context.Context, q database.Query) ([]models.Property, error) {
	var (
		out     []models.Property
		seen    = map[string]bool{}
		lastErr error
		failed  int
	)
	for _, src := range s.sources {
		raws, err := src.ListRaw(ctx, q)
		if err != nil {
			log.Printf("[Listing API] source %T failed: %v", src, err)
			lastErr = err
			failed++
			continue
		}
		for _, p := range normalize.NormalizeAll(raws) {
			if seen[p.ID] || !p.IsPublic() {
				continue
			}
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	if failed > 0 && failed == len(s.sources) {
		return nil, fmt.Errorf("failed to load listings: %w", lastErr)
	}
	return out, nil
}
