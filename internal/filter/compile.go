// Package filter turns a FilterState into something that can select
// listings: an in-memory predicate, a canonical query string and a
// search-engine filter expression. It also holds the reducer that edits a
// FilterState.
package filter

import (
	"math"
	"strings"

	"property-marketplace/internal/models"
	"property-marketplace/internal/schema"
)

// Predicate reports whether a listing satisfies a filter
type Predicate func(p *models.Property) bool

// activeField is a schema field that takes effect for a given filter,
// together with the filter's value for it.
type activeField struct {
	field schema.Field
	value any
}

// active returns the fields of f that constrain listings, in evaluation
// order. Fields owned by a category other than f.PropertyType are skipped.
func active(f *models.FilterState) []activeField {
	category := canonicalCategory(f.PropertyType)
	commercial := canonicalCommercial(f.CommercialCategory)

	var out []activeField
	for _, fd := range schema.Fields {
		if fd.RecordValue == nil || !fd.AppliesTo(category, commercial) {
			continue
		}
		v := fd.FilterValue(f)
		if !isSet(fd.Kind, v) {
			continue
		}
		out = append(out, activeField{field: fd, value: v})
	}
	return out
}

// Compile builds the conjunction of every set field of f. It never fails:
// values of the wrong shape are ignored, and an inverted range yields a
// predicate that matches nothing.
func Compile(f models.FilterState) Predicate {
	var tests []Predicate
	for _, af := range active(&f) {
		if r, ok := af.value.(schema.Range); ok && emptyRange(r) {
			return matchNone
		}
		tests = append(tests, fieldTest(af.field, af.value))
	}
	return func(p *models.Property) bool {
		if p == nil {
			return false
		}
		for _, t := range tests {
			if !t(p) {
				return false
			}
		}
		return true
	}
}

// Select returns the listings that satisfy pred, preserving order
func Select(records []models.Property, pred Predicate) []models.Property {
	out := make([]models.Property, 0, len(records))
	for i := range records {
		if pred(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// MatchKeyword reports whether q occurs in the title, description,
// locality or city of p. An empty keyword matches everything.
func MatchKeyword(p *models.Property, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, s := range []string{p.Title, p.Description, p.Location.Locality, p.Location.City} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func matchNone(*models.Property) bool { return false }

func isSet(kind schema.Kind, v any) bool {
	switch kind {
	case schema.KindEnum, schema.KindText:
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) != ""
	case schema.KindMin:
		n, ok := v.(float64)
		return ok && n > 0 && !math.IsInf(n, 1)
	case schema.KindBool:
		b, ok := v.(bool)
		return ok && b
	case schema.KindRange:
		r, ok := v.(schema.Range)
		return ok && (r.Min > 0 || r.Max > 0)
	case schema.KindParking:
		pk, ok := v.(models.ParkingFilter)
		return ok && (pk.Cars > 0 || pk.Bikes)
	case schema.KindSet:
		s, ok := v.([]string)
		return ok && len(s) > 0
	}
	return false
}

// emptyRange reports whether both bounds are set and inverted
func emptyRange(r schema.Range) bool {
	return r.Min > 0 && r.Max > 0 && r.Min > r.Max
}

func fieldTest(fd schema.Field, want any) Predicate {
	switch fd.Kind {
	case schema.KindEnum:
		w := strings.TrimSpace(want.(string))
		return func(p *models.Property) bool {
			got, _ := fd.RecordValue(p).(string)
			return strings.EqualFold(strings.TrimSpace(got), w)
		}
	case schema.KindText:
		w := strings.ToLower(strings.TrimSpace(want.(string)))
		return func(p *models.Property) bool {
			got, _ := fd.RecordValue(p).(string)
			return strings.Contains(strings.ToLower(got), w)
		}
	case schema.KindMin:
		w := want.(float64)
		return func(p *models.Property) bool {
			got, _ := fd.RecordValue(p).(float64)
			return got >= w
		}
	case schema.KindBool:
		return func(p *models.Property) bool {
			got, _ := fd.RecordValue(p).(bool)
			return got
		}
	case schema.KindRange:
		r := want.(schema.Range)
		lo, hi := r.Unit.SquareFeet(r.Min), r.Unit.SquareFeet(r.Max)
		return func(p *models.Property) bool {
			got, _ := fd.RecordValue(p).(float64)
			if r.Min > 0 && got < lo {
				return false
			}
			if r.Max > 0 && got > hi {
				return false
			}
			return true
		}
	case schema.KindParking:
		w := want.(models.ParkingFilter)
		return func(p *models.Property) bool {
			got, _ := fd.RecordValue(p).(models.ParkingFilter)
			if w.Cars > 0 && got.Cars < w.Cars {
				return false
			}
			return !w.Bikes || got.Bikes
		}
	case schema.KindSet:
		w := want.([]string)
		return func(p *models.Property) bool {
			got, _ := fd.RecordValue(p).([]string)
			return containsAll(got, w)
		}
	}
	return func(*models.Property) bool { return true }
}

// containsAll reports whether have holds every entry of want, ignoring case
// and surrounding space.
func containsAll(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[strings.ToLower(strings.TrimSpace(w))]; !ok {
			return false
		}
	}
	return true
}

func canonicalCategory(c models.PropertyCategory) models.PropertyCategory {
	if parsed, ok := models.ParseCategory(string(c)); ok {
		return parsed
	}
	return c
}

func canonicalCommercial(c models.CommercialCategory) models.CommercialCategory {
	if parsed, ok := models.ParseCommercialCategory(string(c)); ok {
		return parsed
	}
	return c
}
