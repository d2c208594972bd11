package filter

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Pagination describes one page of a result set
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// Paginate cuts page (1-based) out of items. Out-of-range pages return an
// empty slice with the pagination still describing the full set.
func Paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(items)
	p := Pagination{
		CurrentPage:  page,
		TotalPages:   (total + limit - 1) / limit,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
	if page > p.TotalPages {
		return []T{}, p
	}
	start := (page - 1) * limit
	end := min(start+limit, total)
	return items[start:end], p
}
