package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"property-marketplace/internal/kvstore"
	"property-marketplace/internal/listing"
	"property-marketplace/internal/models"
	"property-marketplace/internal/scheduler"
)

// Jobs runs the background reindex
type Jobs interface {
	RunNow() error
	Status() scheduler.Status
}

// Catalogue is the listing view the admin routes need
type Catalogue interface {
	Listings
	All(ctx context.Context) ([]models.Property, error)
}

// AdminHandler handles admin-related requests
type AdminHandler struct {
	listings Catalogue
	stores   Stores
	jobs     Jobs
}

// NewAdminHandler creates a new admin handler. jobs may be nil when search
// is disabled.
func NewAdminHandler(listings Catalogue, stores Stores, jobs Jobs) *AdminHandler {
	return &AdminHandler{
		listings: listings,
		stores:   stores,
		jobs:     jobs,
	}
}

// GetStats returns listing and lead counts
func (h *AdminHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	stats := make(map[string]interface{})

	listingStats, err := h.listings.Stats(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	stats["properties"] = listingStats

	leads := make(map[string]int)
	for name, store := range h.stores {
		res, err := store.GetAll(ctx, kvstore.ListParams{Limit: 1})
		if err != nil {
			log.Printf("Admin: Failed to count %s: %v", name, err)
			continue
		}
		leads[name] = res.Pagination.Total
	}
	stats["entities"] = leads

	if h.jobs != nil {
		stats["reindex"] = h.jobs.Status()
	}

	c.JSON(http.StatusOK, stats)
}

// UpdateListingStatus moderates one listing
func (h *AdminHandler) UpdateListingStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, ok := models.ParseListingStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + req.Status})
		return
	}

	id := c.Param("id")
	err := h.listings.UpdateStatus(c.Request.Context(), id, status)
	if errors.Is(err, listing.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		log.Printf("Admin: Status update for %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Admin: Listing %s set to %s", id, status)
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id, "status": status})
}

// DeleteListing removes one listing
func (h *AdminHandler) DeleteListing(c *gin.Context) {
	id := c.Param("id")
	err := h.listings.Delete(c.Request.Context(), id)
	if errors.Is(err, listing.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		log.Printf("Admin: Delete of %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Admin: Listing %s deleted", id)
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// ListEntities pages through one KV entity collection, named by the
// :entity path parameter or the entity query parameter (property queries
// by default). filter[key]=value parameters match entity fields exactly.
func (h *AdminHandler) ListEntities(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	var fields map[string]any
	if qm := c.QueryMap("filter"); len(qm) > 0 {
		fields = make(map[string]any, len(qm))
		for k, v := range qm {
			fields[k] = v
		}
	}

	result, err := store.GetAll(c.Request.Context(), kvstore.ListParams{
		Search: c.Query("search"),
		Filter: fields,
		Status: c.Query("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateEntity stores an arbitrary entity, e.g. a pre-launch project.
// Entities without a status are published.
func (h *AdminHandler) CreateEntity(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}

	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := data["status"]; !ok {
		data["status"] = string(models.StatusPublished)
	}

	created, err := store.Create(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Admin: Created %s %d", c.Param("entity"), created.ID())
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// UpdateEntity merges fields into one entity
func (h *AdminHandler) UpdateEntity(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	id, ok := entityID(c)
	if !ok {
		return
	}

	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := store.Update(c.Request.Context(), id, data)
	if errors.Is(err, kvstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// DeleteEntity removes one entity
func (h *AdminHandler) DeleteEntity(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	id, ok := entityID(c)
	if !ok {
		return
	}

	err := store.Delete(c.Request.Context(), id)
	if errors.Is(err, kvstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TriggerReindex manually rebuilds the search index
func (h *AdminHandler) TriggerReindex(c *gin.Context) {
	if h.jobs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Scheduler not available (search disabled)",
		})
		return
	}
	if h.jobs.Status().Running {
		c.JSON(http.StatusConflict, gin.H{"error": "Reindex already in progress"})
		return
	}

	log.Println("Admin: Manual reindex requested")

	// Run in goroutine to avoid blocking
	go func() {
		if err := h.jobs.RunNow(); err != nil {
			log.Printf("Admin: Manual reindex failed: %v", err)
		} else {
			log.Println("Admin: Manual reindex completed successfully")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Reindex job started",
		"status":  "running",
	})
}

// GetReindexStatus returns the last reindex run
func (h *AdminHandler) GetReindexStatus(c *gin.Context) {
	if h.jobs == nil {
		c.JSON(http.StatusOK, gin.H{"status": "disabled"})
		return
	}
	c.JSON(http.StatusOK, h.jobs.Status())
}

// GetPriceDistribution returns listing counts per price band
func (h *AdminHandler) GetPriceDistribution(c *gin.Context) {
	type PriceRange struct {
		RangeLabel string  `json:"range_label"`
		MinPrice   float64 `json:"min_price"`
		MaxPrice   float64 `json:"max_price"`
		Count      int64   `json:"count"`
	}

	// Define price ranges (in rupees)
	ranges := []PriceRange{
		{RangeLabel: "Under 25K", MinPrice: 0, MaxPrice: 25000},
		{RangeLabel: "25K-1L", MinPrice: 25000, MaxPrice: 100000},
		{RangeLabel: "1L-25L", MinPrice: 100000, MaxPrice: 2500000},
		{RangeLabel: "25L-50L", MinPrice: 2500000, MaxPrice: 5000000},
		{RangeLabel: "50L-1Cr", MinPrice: 5000000, MaxPrice: 10000000},
		{RangeLabel: "1Cr+", MinPrice: 10000000, MaxPrice: 1e15},
	}

	all, err := h.listings.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, p := range all {
		for i := range ranges {
			if p.Price >= ranges[i].MinPrice && p.Price < ranges[i].MaxPrice {
				ranges[i].Count++
				break
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"price_distribution": ranges,
	})
}

func (h *AdminHandler) store(c *gin.Context) (EntityStore, bool) {
	name := c.Param("entity")
	if name == "" {
		name = c.DefaultQuery("entity", models.EntityPropertyQuery)
	}
	store, ok := h.stores[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown entity: " + name})
		return nil, false
	}
	return store, true
}

func entityID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
