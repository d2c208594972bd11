package search

import (
	"encoding/json"
	"strings"

	"property-marketplace/internal/models"
	"property-marketplace/internal/schema"
)

// Document attributes added next to the listing's own JSON fields
const (
	attrCreatedAtUnix = "createdAtUnix"
	suffixCars        = "_cars"
	suffixBikes       = "_bikes"
)

var searchableAttributes = []string{
	"title",
	"description",
	"location.city",
	"location.locality",
	"location.societyName",
	"location.landmark",
	"category",
}

var sortableAttributes = []string{
	"price",
	"builtUpArea",
	attrCreatedAtUnix,
}

// DefaultFacets are returned by the facets endpoint when none are requested
var DefaultFacets = []string{
	schema.Attribute("propertyType"),
	schema.Attribute("postingType"),
	schema.Attribute("furnishing"),
	schema.Attribute("bhk"),
	schema.Attribute("location.city"),
	schema.Attribute("amenities"),
}

// filterableAttributes lists the f_* attribute of every schema field that
// reads a listing value
func filterableAttributes() []string {
	attrs := []string{"id", "status"}
	for _, fd := range schema.Fields {
		if fd.RecordValue == nil {
			continue
		}
		attr := schema.Attribute(fd.Name)
		if fd.Kind == schema.KindParking {
			attrs = append(attrs, attr+suffixCars, attr+suffixBikes)
			continue
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// Document flattens a listing into an index document: the listing JSON
// plus one f_* attribute per schema field, holding the value the
// predicate compiler would read.
func Document(p models.Property) map[string]any {
	doc := map[string]any{}
	if data, err := json.Marshal(p); err == nil {
		_ = json.Unmarshal(data, &doc)
	}
	doc["id"] = p.ID
	doc[attrCreatedAtUnix] = p.CreatedAt.Unix()

	for _, fd := range schema.Fields {
		if fd.RecordValue == nil {
			continue
		}
		attr := schema.Attribute(fd.Name)
		switch v := fd.RecordValue(&p).(type) {
		case models.ParkingFilter:
			doc[attr+suffixCars] = v.Cars
			doc[attr+suffixBikes] = v.Bikes
		case []string:
			lower := make([]string, 0, len(v))
			for _, s := range v {
				if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
					lower = append(lower, s)
				}
			}
			doc[attr] = lower
		default:
			doc[attr] = v
		}
	}
	return doc
}

// fromHit decodes a search hit back into a listing. Unknown attributes are
// ignored.
func fromHit(hit any) (models.Property, bool) {
	data, err := json.Marshal(hit)
	if err != nil {
		return models.Property{}, false
	}
	var p models.Property
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Property{}, false
	}
	return p, true
}
