package fixtures

import (
	"context"
	"fmt"
	"strings"
	"time"

	"property-marketplace/internal/database"
	"property-marketplace/internal/normalize"
)

// Source serves the static listings as a read-only listing source
type Source struct {
	records []normalize.RawRecord
}

// NewSource builds the static listings once, dated back from now
func NewSource(now time.Time) *Source {
	return &Source{records: StaticListings(now)}
}

func (s *Source) ListRaw(_ context.Context, q database.Query) ([]normalize.RawRecord, error) {
	statuses := make(map[string]bool, len(q.Statuses))
	for _, st := range q.Statuses {
		statuses[strings.ToLower(string(st))] = true
	}
	city := strings.ToLower(q.City)

	var out []normalize.RawRecord
	for _, rec := range s.records {
		if len(statuses) > 0 && !statuses[strings.ToLower(fmt.Sprint(rec["status"]))] {
			continue
		}
		if city != "" && !strings.Contains(strings.ToLower(fmt.Sprint(rec["city"])), city) {
			continue
		}
		out = append(out, copyRecord(rec))
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

func (s *Source) GetRaw(_ context.Context, id string) (normalize.RawRecord, error) {
	for _, rec := range s.records {
		if rec["id"] == id {
			return copyRecord(rec), nil
		}
	}
	return nil, database.ErrNotFound
}

func copyRecord(rec normalize.RawRecord) normalize.RawRecord {
	out := make(normalize.RawRecord, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
