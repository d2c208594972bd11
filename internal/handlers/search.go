package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"property-marketplace/internal/filter"
	"property-marketplace/internal/search"
)

// Searcher is the full-text search engine
type Searcher interface {
	FilterSearch(params search.FilterParams) (*search.SearchResult, error)
	GetFacets(facets []string) (map[string]interface{}, error)
}

// SearchHandler serves the search engine routes
type SearchHandler struct {
	searcher Searcher
}

func NewSearchHandler(searcher Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// Search runs a keyword search with the same filter parameters as the
// listing route
func (h *SearchHandler) Search(c *gin.Context) {
	start := time.Now()

	state, err := filter.DecodeQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.searcher.FilterSearch(search.FilterParams{
		Query:   c.Query("q"),
		Filters: state,
		Sort:    filter.ParseSortOrder(c.Query("sort")),
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", filter.DefaultPageSize),
	})
	if err != nil {
		log.Printf("[Search API] search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("[Search API] q=%q hits=%d total=%d duration_ms=%d",
		c.Query("q"), len(result.Hits), result.TotalHits, time.Since(start).Milliseconds())
	c.JSON(http.StatusOK, result)
}

// Facets returns value counts for the requested facet attributes
func (h *SearchHandler) Facets(c *gin.Context) {
	var facets []string
	if s := c.Query("facets"); s != "" {
		facets = strings.Split(s, ",")
	}

	facetDist, err := h.searcher.GetFacets(facets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"facets": facetDist,
	})
}
