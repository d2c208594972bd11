package filter

import (
	"sort"
	"strings"

	"property-marketplace/internal/models"
)

// SortOrder names a listing order
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortAreaDesc  SortOrder = "area_desc"
)

// ParseSortOrder falls back to newest first for unknown values
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortOldest:
		return SortOldest
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortAreaDesc:
		return SortAreaDesc
	default:
		return SortNewest
	}
}

// Sort returns a sorted copy of records. Listings without a price go last
// in both price orders.
func Sort(records []models.Property, order SortOrder) []models.Property {
	out := append([]models.Property(nil), records...)
	var less func(a, b *models.Property) bool
	switch order {
	case SortOldest:
		less = func(a, b *models.Property) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortPriceAsc:
		less = func(a, b *models.Property) bool {
			if (a.Price > 0) != (b.Price > 0) {
				return a.Price > 0
			}
			return a.Price < b.Price
		}
	case SortPriceDesc:
		less = func(a, b *models.Property) bool {
			if (a.Price > 0) != (b.Price > 0) {
				return a.Price > 0
			}
			return a.Price > b.Price
		}
	case SortAreaDesc:
		less = func(a, b *models.Property) bool { return a.BuiltUpArea > b.BuiltUpArea }
	default:
		less = func(a, b *models.Property) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

// MeiliSort returns the search-engine sort clause for an order
func MeiliSort(order SortOrder) []string {
	switch order {
	case SortOldest:
		return []string{"createdAtUnix:asc"}
	case SortPriceAsc:
		return []string{"price:asc"}
	case SortPriceDesc:
		return []string{"price:desc"}
	case SortAreaDesc:
		return []string{"builtUpArea:desc"}
	default:
		return []string{"createdAtUnix:desc"}
	}
}
