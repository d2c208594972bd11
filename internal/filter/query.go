package filter

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"property-marketplace/internal/models"
	"property-marketplace/internal/schema"
)

// QueryParam carries the JSON-encoded FilterState in URLs
const QueryParam = "filters"

// Canonical renders the fields of f that take effect as a deterministic
// query string. Two states that select the same listings through the
// same set fields render identically, whatever their amenity order or
// leftover fields from another category.
func Canonical(f models.FilterState) string {
	v := url.Values{}
	for _, af := range active(&f) {
		name := af.field.Name
		switch x := af.value.(type) {
		case string:
			v.Set(name, strings.TrimSpace(x))
		case float64:
			v.Set(name, formatNumber(x))
		case bool:
			v.Set(name, "true")
		case schema.Range:
			if x.Min > 0 {
				v.Set(name+".min", formatNumber(x.Min))
			}
			if x.Max > 0 {
				v.Set(name+".max", formatNumber(x.Max))
			}
			if x.Unit != "" {
				v.Set(name+".unit", string(x.Unit))
			}
		case models.ParkingFilter:
			if x.Cars > 0 {
				v.Set(name+".cars", strconv.Itoa(x.Cars))
			}
			if x.Bikes {
				v.Set(name+".bikes", "true")
			}
		case []string:
			sorted := append([]string{}, x...)
			sort.Strings(sorted)
			v[name] = sorted
		}
	}
	return v.Encode()
}

// EncodeQuery stores the whole state, including fields that currently have
// no effect, in a URL query.
func EncodeQuery(f models.FilterState) url.Values {
	data, err := json.Marshal(f)
	if err != nil {
		return url.Values{}
	}
	return url.Values{QueryParam: {string(data)}}
}

// DecodeQuery reads a state written by EncodeQuery. The flat parameters of
// the public listing API (property_type, city, min_price, ...) are applied
// on top. Only a malformed filters document is an error.
func DecodeQuery(q url.Values) (models.FilterState, error) {
	state := models.EmptyFilterState()
	if raw := q.Get(QueryParam); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return models.EmptyFilterState(), fmt.Errorf("failed to parse %s parameter: %w", QueryParam, err)
		}
		if state.Amenities == nil {
			state.Amenities = []models.CommonAmenity{}
		}
	}

	flat := []struct {
		params []string
		field  string
	}{
		{[]string{"property_type", "propertyType"}, "propertyType"},
		{[]string{"posting_type", "postingType"}, "postingType"},
		{[]string{"city"}, "location.city"},
		{[]string{"locality"}, "location.locality"},
		{[]string{"pincode"}, "location.pincode"},
		{[]string{"min_price", "minPrice"}, "priceRange.min"},
		{[]string{"max_price", "maxPrice"}, "priceRange.max"},
		{[]string{"furnishing", "furnishing_type"}, "furnishing"},
		{[]string{"construction_status", "property_status"}, "constructionStatus"},
		{[]string{"posted_by", "postedBy"}, "postedBy"},
		{[]string{"bhk", "bhk_type"}, "bhk"},
	}
	for _, fp := range flat {
		for _, p := range fp.params {
			if val := strings.TrimSpace(q.Get(p)); val != "" {
				state = Assign(state, fp.field, val)
				break
			}
		}
	}
	if state.PostingType != "" {
		state.PostingType = models.ParsePostingType(string(state.PostingType))
	}
	for _, a := range splitList(q["amenities"]) {
		if !state.HasAmenity(models.CommonAmenity(a)) {
			state = Apply(state, ToggleAmenity(models.CommonAmenity(a)))
		}
	}
	return state, nil
}

// MeiliFilter translates the set fields of f into Meilisearch filter
// clauses over the per-field attributes named by schema.Attribute.
// Substring fields cannot be expressed and are left to the predicate.
// ok is false when f can match nothing.
func MeiliFilter(f models.FilterState) (clauses []string, ok bool) {
	for _, af := range active(&f) {
		attr := schema.Attribute(af.field.Name)
		switch af.field.Kind {
		case schema.KindEnum:
			clauses = append(clauses, fmt.Sprintf("%s = %s", attr, quote(af.value.(string))))
		case schema.KindMin:
			clauses = append(clauses, fmt.Sprintf("%s >= %s", attr, formatNumber(af.value.(float64))))
		case schema.KindBool:
			clauses = append(clauses, fmt.Sprintf("%s = true", attr))
		case schema.KindRange:
			r := af.value.(schema.Range)
			if emptyRange(r) {
				return nil, false
			}
			if r.Min > 0 {
				clauses = append(clauses, fmt.Sprintf("%s >= %s", attr, formatNumber(r.Unit.SquareFeet(r.Min))))
			}
			if r.Max > 0 {
				clauses = append(clauses, fmt.Sprintf("%s <= %s", attr, formatNumber(r.Unit.SquareFeet(r.Max))))
			}
		case schema.KindParking:
			pk := af.value.(models.ParkingFilter)
			if pk.Cars > 0 {
				clauses = append(clauses, fmt.Sprintf("%s_cars >= %d", attr, pk.Cars))
			}
			if pk.Bikes {
				clauses = append(clauses, fmt.Sprintf("%s_bikes = true", attr))
			}
		case schema.KindSet:
			for _, s := range af.value.([]string) {
				clauses = append(clauses, fmt.Sprintf("%s = %s", attr, quote(strings.ToLower(strings.TrimSpace(s)))))
			}
		}
	}
	return clauses, true
}

func quote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
