// Package schema holds the table of filter fields: which fields exist,
// what values they take and which property categories they apply to.
// The predicate compiler and any rendering layer read the same table.
package schema

import (
	"strings"

	"property-marketplace/internal/models"
)

// Kind decides how a field is matched against a listing
type Kind string

const (
	KindEnum    Kind = "enum"    // case-insensitive equality
	KindText    Kind = "text"    // case-insensitive substring
	KindMin     Kind = "min"     // listing value must be at least the filter value
	KindBool    Kind = "bool"    // listing flag must be true when the filter flag is
	KindRange   Kind = "range"   // inclusive range, converted to square feet
	KindParking Kind = "parking" // car count lower bound plus bike flag
	KindSet     Kind = "set"     // listing must carry every selected value
)

// Field describes one filter control
type Field struct {
	Name    string
	Label   string
	Kind    Kind
	Options []string
	Default any

	// Categories the field belongs to. Empty means universal.
	Categories []models.PropertyCategory
	// Commercial sub-categories the field belongs to, for Commercial fields only.
	Commercial []models.CommercialCategory

	// FilterValue reads the field from a filter state
	FilterValue func(f *models.FilterState) any
	// RecordValue reads the matching value from a listing
	RecordValue func(p *models.Property) any
}

// Universal reports whether the field applies regardless of category
func (fd Field) Universal() bool {
	return len(fd.Categories) == 0
}

// AppliesTo reports whether the field takes effect for the given category
// and commercial sub-category.
func (fd Field) AppliesTo(category models.PropertyCategory, commercial models.CommercialCategory) bool {
	if fd.Universal() {
		return true
	}
	owned := false
	for _, c := range fd.Categories {
		if c == category {
			owned = true
			break
		}
	}
	if !owned {
		return false
	}
	if len(fd.Commercial) == 0 {
		return true
	}
	for _, cc := range fd.Commercial {
		if cc == commercial {
			return true
		}
	}
	return false
}

// FieldSet is a set of field names
type FieldSet map[string]struct{}

// Has reports membership
func (s FieldSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// ApplicableFields returns the category-conditional fields declared for a
// category. Commercial returns the union over every commercial
// sub-category. An unknown category has no applicable fields.
func ApplicableFields(category models.PropertyCategory) FieldSet {
	set := FieldSet{}
	for _, fd := range Fields {
		if fd.Universal() {
			continue
		}
		for _, c := range fd.Categories {
			if c == category {
				set[fd.Name] = struct{}{}
			}
		}
	}
	return set
}

// FieldsFor returns, in display order, the conditional fields that take
// effect for a category and commercial sub-category.
func FieldsFor(category models.PropertyCategory, commercial models.CommercialCategory) []Field {
	var out []Field
	for _, fd := range Fields {
		if !fd.Universal() && fd.AppliesTo(category, commercial) {
			out = append(out, fd)
		}
	}
	return out
}

// UniversalFields returns the fields that apply to every category
func UniversalFields() []Field {
	var out []Field
	for _, fd := range Fields {
		if fd.Universal() {
			out = append(out, fd)
		}
	}
	return out
}

// Lookup finds a field by name
func Lookup(name string) (Field, bool) {
	for _, fd := range Fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

// Attribute is the flat document attribute a field's listing value is
// indexed under, e.g. "location.city" becomes "f_location_city".
func Attribute(name string) string {
	return "f_" + strings.ReplaceAll(name, ".", "_")
}
