package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"property-marketplace/internal/models"
)

func TestApplicableFields(t *testing.T) {
	tests := []struct {
		category models.PropertyCategory
		has      []string
		hasNot   []string
	}{
		{models.CategoryFlatApartment, []string{"bhk", "floor", "facing", "parking"}, []string{"plotType", "wifi", "lift"}},
		{models.CategoryIndependentHouse, []string{"bhk", "facing", "parking", "plotSize", "waterSupply", "floors"}, []string{"floor"}},
		{models.CategoryBuilderFloor, []string{"bhk", "floor", "lift", "modularKitchen"}, []string{"parking"}},
		{models.CategoryPlotLand, []string{"plotType", "plotSize", "roadWidth", "boundaryWall", "facing"}, []string{"bhk"}},
		{models.CategoryCommercial, []string{"commercialCategory", "carpetArea", "cabinsCount", "ceilingHeight", "frontage"}, []string{"bhk"}},
		{models.CategoryRoom, []string{"roomType", "attachedBathroom", "wifi", "airCoolerAC"}, []string{"foodIncluded"}},
		{models.CategoryPG, []string{"pgOccupancy", "foodIncluded", "housekeeping", "laundry", "wifi"}, []string{"roomType"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			set := ApplicableFields(tt.category)
			for _, name := range tt.has {
				assert.True(t, set.Has(name), name)
			}
			for _, name := range tt.hasNot {
				assert.False(t, set.Has(name), name)
			}
			assert.False(t, set.Has("propertyType"), "universal fields are not conditional")
		})
	}

	assert.Empty(t, ApplicableFields(models.CategoryFarmhouse))
	assert.Empty(t, ApplicableFields("Spaceship"))
}

func TestFieldsFor_CommercialSubcategory(t *testing.T) {
	names := func(fs []Field) []string {
		out := make([]string, len(fs))
		for i, f := range fs {
			out[i] = f.Name
		}
		return out
	}
	office := names(FieldsFor(models.CategoryCommercial, models.CommercialOffice))
	assert.Contains(t, office, "cabinsCount")
	assert.NotContains(t, office, "loadingDock")

	warehouse := names(FieldsFor(models.CategoryCommercial, models.CommercialWarehouse))
	assert.Contains(t, warehouse, "loadingDock")
	assert.NotContains(t, warehouse, "frontage")

	// unconstrained commercial fields are always there
	assert.Contains(t, names(FieldsFor(models.CategoryCommercial, "")), "commercialCategory")
}

func TestFieldsTableIsConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range Fields {
		assert.False(t, seen[f.Name], "duplicate field %s", f.Name)
		seen[f.Name] = true
		assert.NotNil(t, f.FilterValue, f.Name)
		assert.NotEmpty(t, f.Label, f.Name)
		if len(f.Commercial) > 0 {
			assert.Equal(t, []models.PropertyCategory{models.CategoryCommercial}, f.Categories, f.Name)
		}
	}

	nl, ok := Lookup("location.nearbyLandmarks")
	assert.True(t, ok)
	assert.Nil(t, nl.RecordValue)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestUniversalFields(t *testing.T) {
	var names []string
	for _, f := range UniversalFields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, "propertyType", names[0])
	assert.Contains(t, names, "amenities")
	assert.Contains(t, names, "reraApproved")
	assert.NotContains(t, names, "bhk")
}

func TestAttribute(t *testing.T) {
	assert.Equal(t, "f_location_city", Attribute("location.city"))
	assert.Equal(t, "f_bhk", Attribute("bhk"))
}
