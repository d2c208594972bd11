package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

// ErrNotFound is returned when no listing has the requested id
var ErrNotFound = errors.New("listing not found")

// Query narrows a listing scan using indexed columns only. It is coarse:
// callers still run the compiled filter over the normalized result.
type Query struct {
	Statuses []models.ListingStatus
	// City is matched case-insensitively as a substring
	City  string
	Limit int
}

// PublicQuery selects listings visible on the public site
func PublicQuery(f models.FilterState) Query {
	return Query{
		Statuses: models.PublicStatuses,
		City:     strings.TrimSpace(f.Location.City),
	}
}

func lowerStatuses(statuses []models.ListingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = strings.ToLower(string(s))
	}
	return out
}

// scanRecords reads every row into a raw record keyed by column name.
// Text columns arrive as []byte from both drivers and are kept as strings;
// the attributes column is decoded into a nested object.
func scanRecords(rows *sql.Rows) ([]normalize.RawRecord, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records []normalize.RawRecord
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}

		rec := make(normalize.RawRecord, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			if col == "attributes" {
				v = decodeObject(v)
			}
			if v != nil {
				rec[col] = v
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listing rows: %w", err)
	}
	return records, nil
}

func decodeObject(v any) any {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil
	}
	return obj
}
