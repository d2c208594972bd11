package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"property-marketplace/internal/database"
	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

// ListingIDPrefix marks ids of listings held in the KV store so they never
// collide with ids from the SQL and document stores
const ListingIDPrefix = "kv-"

// ListingSource serves the KV "property" entities as raw listing records
type ListingSource struct {
	store *EntityStore
}

func NewListingSource(client *Client) *ListingSource {
	return &ListingSource{store: NewEntityStore(client, models.EntityProperty)}
}

// Store exposes the underlying entity store for writes
func (l *ListingSource) Store() *EntityStore {
	return l.store
}

func (l *ListingSource) ListRaw(ctx context.Context, q database.Query) ([]normalize.RawRecord, error) {
	all, err := l.store.All(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]bool, len(q.Statuses))
	for _, s := range q.Statuses {
		statuses[strings.ToLower(string(s))] = true
	}
	city := strings.ToLower(q.City)

	var out []normalize.RawRecord
	for _, e := range all {
		if len(statuses) > 0 && !statuses[entityStatus(e)] {
			continue
		}
		if city != "" && !strings.Contains(strings.ToLower(entityCity(e)), city) {
			continue
		}
		out = append(out, toRecord(e))
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

func (l *ListingSource) GetRaw(ctx context.Context, id string) (normalize.RawRecord, error) {
	n, ok := parseListingID(id)
	if !ok {
		return nil, database.ErrNotFound
	}
	e, err := l.store.GetByID(ctx, n)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toRecord(e), nil
}

func (l *ListingSource) UpdateStatus(ctx context.Context, id string, status models.ListingStatus) error {
	n, ok := parseListingID(id)
	if !ok {
		return database.ErrNotFound
	}
	_, err := l.store.Update(ctx, n, map[string]any{"status": string(status)})
	return mapNotFound(err)
}

func (l *ListingSource) Delete(ctx context.Context, id string) error {
	n, ok := parseListingID(id)
	if !ok {
		return database.ErrNotFound
	}
	return mapNotFound(l.store.Delete(ctx, n))
}

func parseListingID(id string) (int64, bool) {
	id = strings.TrimPrefix(id, ListingIDPrefix)
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func mapNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return database.ErrNotFound
	}
	return err
}

// entityStatus follows the KV convention that an entity without a status is
// published
func entityStatus(e Entity) string {
	s := strings.ToLower(strings.TrimSpace(fmt.Sprint(valueOrEmpty(e["status"]))))
	if s == "" {
		return strings.ToLower(string(models.StatusPublished))
	}
	return s
}

func entityCity(e Entity) string {
	if c, ok := e["city"].(string); ok && c != "" {
		return c
	}
	if loc, ok := e["location"].(map[string]any); ok {
		if c, ok := loc["city"].(string); ok {
			return c
		}
	}
	return ""
}

func toRecord(e Entity) normalize.RawRecord {
	rec := make(normalize.RawRecord, len(e))
	for k, v := range e {
		rec[k] = v
	}
	rec["id"] = fmt.Sprintf("%s%d", ListingIDPrefix, e.ID())
	if _, ok := rec["status"]; !ok {
		rec["status"] = string(models.StatusPublished)
	}
	return rec
}
