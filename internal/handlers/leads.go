package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"property-marketplace/internal/kvstore"
	"property-marketplace/internal/models"
)

// EntityStore is one entity collection in the key-value store
type EntityStore interface {
	Create(ctx context.Context, data map[string]any) (kvstore.Entity, error)
	Update(ctx context.Context, id int64, data map[string]any) (kvstore.Entity, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context, p kvstore.ListParams) (kvstore.ListResult, error)
}

// Stores maps entity names to their collections
type Stores map[string]EntityStore

// NewStores opens a collection for every lead and listing entity
func NewStores(client *kvstore.Client) Stores {
	stores := Stores{}
	for _, e := range []string{
		models.EntityPropertyQuery,
		models.EntityGeneralQuery,
		models.EntityBroker,
		models.EntityProperty,
		models.EntityPreLaunch,
	} {
		stores[e] = kvstore.NewEntityStore(client, e)
	}
	return stores
}

// LeadHandler handles enquiry and broker submissions
type LeadHandler struct {
	stores Stores
}

func NewLeadHandler(stores Stores) *LeadHandler {
	return &LeadHandler{stores: stores}
}

// SubmitQuery stores a property or general enquiry
func (h *LeadHandler) SubmitQuery(c *gin.Context) {
	var q models.PropertyQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.Type == "" {
		q.Type = models.QueryGeneral
		if q.PropertyID != "" {
			q.Type = models.QueryProperty
		}
	}

	h.create(c, q.Entity(), q, "Your query has been submitted")
}

// SubmitBroker stores a become-a-broker application
func (h *LeadHandler) SubmitBroker(c *gin.Context) {
	var b models.BrokerApplication
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.create(c, models.EntityBroker, b, "Your application has been submitted")
}

// PreLaunch lists the published pre-launch projects
func (h *LeadHandler) PreLaunch(c *gin.Context) {
	store, ok := h.stores[models.EntityPreLaunch]
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store not configured"})
		return
	}

	result, err := store.GetAll(c.Request.Context(), kvstore.ListParams{
		Status: string(models.StatusPublished),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	})
	if err != nil {
		log.Printf("[Lead API] pre-launch list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LeadHandler) create(c *gin.Context, entity string, payload any, message string) {
	store, ok := h.stores[entity]
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store not configured"})
		return
	}

	data, err := toMap(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	data["reference"] = uuid.NewString()
	data["status"] = "new"

	created, err := store.Create(c.Request.Context(), data)
	if err != nil {
		log.Printf("[Lead API] create %s failed: %v", entity, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit"})
		return
	}

	log.Printf("[Lead API] stored %s id=%d ref=%s", entity, created.ID(), data["reference"])
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   message,
		"id":        created.ID(),
		"reference": data["reference"],
	})
}

// toMap converts a tagged struct to its JSON object form
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
