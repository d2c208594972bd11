package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Entity is one stored document. Every entity carries id, createdAt and
// updatedAt next to the caller's fields.
type Entity map[string]any

// ID returns the numeric id of the entity, 0 when missing
func (e Entity) ID() int64 {
	switch v := e["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// searchFields are matched by ListParams.Search
var searchFields = []string{
	"name", "firstName", "lastName", "phone", "email",
	"message", "propertyTitle", "location",
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListParams narrows EntityStore.GetAll
type ListParams struct {
	Search string
	Filter map[string]any
	Status string
	Page   int
	Limit  int
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type ListResult struct {
	Success    bool       `json:"success"`
	Data       []Entity   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// EntityStore is CRUD for one entity type. Keys are "<entity>:<id>" with
// the id sequence kept in "counter:<entity>".
type EntityStore struct {
	client *Client
	entity string
	now    func() time.Time
}

func NewEntityStore(client *Client, entity string) *EntityStore {
	return &EntityStore{client: client, entity: entity, now: time.Now}
}

func (s *EntityStore) Name() string {
	return s.entity
}

func (s *EntityStore) key(id int64) string {
	return fmt.Sprintf("%s:%d", s.entity, id)
}

func (s *EntityStore) counterKey() string {
	return "counter:" + s.entity
}

func (s *EntityStore) timestamp() string {
	return s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Create stores data under the next id and returns the stored entity
func (s *EntityStore) Create(ctx context.Context, data map[string]any) (Entity, error) {
	id, err := s.client.Incr(ctx, s.counterKey())
	if err != nil {
		return nil, err
	}

	ts := s.timestamp()
	entity := Entity{}
	for k, v := range data {
		entity[k] = v
	}
	entity["id"] = id
	entity["createdAt"] = ts
	entity["updatedAt"] = ts

	if err := s.client.Set(ctx, s.key(id), entity); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.entity, err)
	}
	log.Printf("[KV] created %s:%d", s.entity, id)
	return s.GetByID(ctx, id)
}

// GetByID returns ErrNotFound when the entity does not exist
func (s *EntityStore) GetByID(ctx context.Context, id int64) (Entity, error) {
	var e Entity
	if err := s.client.GetJSON(ctx, s.key(id), &e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update merges data into the stored entity. The id and createdAt are kept.
func (s *EntityStore) Update(ctx context.Context, id int64, data map[string]any) (Entity, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for k, v := range data {
		if k == "id" || k == "createdAt" {
			continue
		}
		existing[k] = v
	}
	existing["id"] = id
	existing["updatedAt"] = s.timestamp()

	if err := s.client.Set(ctx, s.key(id), existing); err != nil {
		return nil, fmt.Errorf("failed to update %s:%d: %w", s.entity, id, err)
	}
	return existing, nil
}

func (s *EntityStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.client.Get(ctx, s.key(id)); err != nil {
		return err
	}
	return s.client.Delete(ctx, s.key(id))
}

// All returns every stored entity, newest id first. Values that are not
// JSON objects are skipped.
func (s *EntityStore) All(ctx context.Context) ([]Entity, error) {
	kvs, err := s.client.GetByPrefix(ctx, s.entity+":")
	if err != nil {
		return nil, err
	}

	out := make([]Entity, 0, len(kvs))
	for _, kv := range kvs {
		var e Entity
		if err := json.Unmarshal([]byte(kv.Value), &e); err != nil || e == nil {
			log.Printf("[KV] skipping malformed value at %s", kv.Key)
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID() > out[j].ID()
	})
	return out, nil
}

// GetAll lists entities with status, keyword and field filters applied
func (s *EntityStore) GetAll(ctx context.Context, p ListParams) (ListResult, error) {
	all, err := s.All(ctx)
	if err != nil {
		return ListResult{}, err
	}

	matched := make([]Entity, 0, len(all))
	for _, e := range all {
		if p.Status != "" && !statusMatches(e, p.Status) {
			continue
		}
		if p.Search != "" && !searchMatches(e, p.Search) {
			continue
		}
		if !fieldsMatch(e, p.Filter) {
			continue
		}
		matched = append(matched, e)
	}

	page := p.Page
	if page < 1 {
		page = defaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	total := len(matched)
	start := total
	if total > 0 && page-1 <= (total-1)/limit {
		start = (page - 1) * limit
	}
	end := total
	if limit < total-start {
		end = start + limit
	}

	return ListResult{
		Success: true,
		Data:    matched[start:end],
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// statusMatches treats "published" as any approved, published or
// unmoderated entity, and "approved" as approved or published.
func statusMatches(e Entity, want string) bool {
	status := strings.ToLower(fmt.Sprint(valueOrEmpty(e["status"])))
	switch strings.ToLower(want) {
	case "published":
		return status == "" || status == "approved" || status == "published"
	case "approved":
		return status == "approved" || status == "published"
	}
	return status == strings.ToLower(want)
}

func searchMatches(e Entity, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, field := range searchFields {
		v, ok := e[field]
		if !ok || v == nil {
			continue
		}
		s := fmt.Sprint(v)
		if s != "" && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// fieldsMatch compares each non-empty filter value with the entity field.
// Values are compared in their printed form so query string filters match
// numeric and boolean fields.
func fieldsMatch(e Entity, filter map[string]any) bool {
	for k, want := range filter {
		if want == nil || want == "" {
			continue
		}
		got, ok := e[k]
		if !ok || got == nil {
			return false
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func valueOrEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}
