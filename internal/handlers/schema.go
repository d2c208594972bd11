package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-marketplace/internal/filter"
	"property-marketplace/internal/models"
	"property-marketplace/internal/schema"
)

// fieldDescriptor is the JSON form of a schema field
type fieldDescriptor struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Kind       string   `json:"kind"`
	Options    []string `json:"options,omitempty"`
	Default    any      `json:"default,omitempty"`
	Commercial []string `json:"commercialCategories,omitempty"`
}

func describe(fields []schema.Field) []fieldDescriptor {
	out := make([]fieldDescriptor, 0, len(fields))
	for _, fd := range fields {
		d := fieldDescriptor{
			Name:    fd.Name,
			Label:   fd.Label,
			Kind:    string(fd.Kind),
			Options: fd.Options,
			Default: fd.Default,
		}
		for _, cc := range fd.Commercial {
			d.Commercial = append(d.Commercial, string(cc))
		}
		out = append(out, d)
	}
	return out
}

// conditionalFields returns the category-conditional fields of a category
// in display order. Commercial gets the union over its sub-categories.
func conditionalFields(cat models.PropertyCategory) []schema.Field {
	set := schema.ApplicableFields(cat)
	var out []schema.Field
	for _, fd := range schema.Fields {
		if set.Has(fd.Name) {
			out = append(out, fd)
		}
	}
	return out
}

// Categories lists every category with its applicable fields, plus the
// fields shared by all categories
func Categories(c *gin.Context) {
	type category struct {
		Value  string   `json:"value"`
		Fields []string `json:"fields"`
	}

	categories := make([]category, 0, len(models.Categories))
	for _, cat := range models.Categories {
		names := []string{}
		for _, fd := range conditionalFields(cat) {
			names = append(names, fd.Name)
		}
		categories = append(categories, category{Value: string(cat), Fields: names})
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"universal":  describe(schema.UniversalFields()),
	})
}

// CategoryFields returns the field descriptors for one category. The
// commercialCategory parameter narrows Commercial fields; an unknown
// category has no fields.
func CategoryFields(c *gin.Context) {
	cat, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"category": c.Param("category"), "fields": []fieldDescriptor{}})
		return
	}

	fields := conditionalFields(cat)
	if cc, ok := models.ParseCommercialCategory(c.Query("commercialCategory")); ok && cat == models.CategoryCommercial {
		fields = schema.FieldsFor(cat, cc)
	}

	c.JSON(http.StatusOK, gin.H{"category": cat, "fields": describe(fields)})
}

type applyRequest struct {
	State  *models.FilterState `json:"state"`
	Action filter.Action       `json:"action"`
}

// ApplyFilter runs the filter reducer on a posted state and returns the
// new state with its canonical query
func ApplyFilter(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Action.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action type is required"})
		return
	}

	state := models.EmptyFilterState()
	if req.State != nil {
		state = *req.State
		if state.Amenities == nil {
			state.Amenities = []models.CommonAmenity{}
		}
	}

	next := filter.Apply(state, req.Action)
	c.JSON(http.StatusOK, gin.H{
		"state":     next,
		"canonical": filter.Canonical(next),
		"query":     filter.EncodeQuery(next).Encode(),
	})
}
