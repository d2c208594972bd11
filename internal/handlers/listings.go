package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"property-marketplace/internal/filter"
	"property-marketplace/internal/listing"
	"property-marketplace/internal/models"
)

// Listings is the listing catalogue used by the public and admin routes
type Listings interface {
	List(ctx context.Context, params listing.ListParams) (listing.ListResult, error)
	Get(ctx context.Context, id string) (models.Property, error)
	Stats(ctx context.Context) (listing.Stats, error)
	UpdateStatus(ctx context.Context, id string, status models.ListingStatus) error
	Delete(ctx context.Context, id string) error
}

// ListingHandler serves the public listing routes
type ListingHandler struct {
	listings Listings
}

func NewListingHandler(listings Listings) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// List returns one page of public listings. Filters come from the
// "filters" JSON parameter or the flat query parameters.
func (h *ListingHandler) List(c *gin.Context) {
	state, err := filter.DecodeQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.listings.List(c.Request.Context(), listing.ListParams{
		Filters: state,
		Query:   c.Query("q"),
		Sort:    filter.ParseSortOrder(c.Query("sort")),
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", filter.DefaultPageSize),
	})
	if err != nil {
		log.Printf("[Listing API] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       result.Data,
		"pagination": result.Pagination,
		"filters":    result.Filters,
	})
}

// Get returns one public listing
func (h *ListingHandler) Get(c *gin.Context) {
	p, err := h.listings.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, listing.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		log.Printf("[Listing API] get %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// Stats returns listing counts by property type and posting type
func (h *ListingHandler) Stats(c *gin.Context) {
	stats, err := h.listings.Stats(c.Request.Context())
	if err != nil {
		log.Printf("[Listing API] stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// queryInt reads a positive integer parameter, falling back to def
func queryInt(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
