package filter

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"property-marketplace/internal/models"
)

// accessor reads, writes and clears one settable FilterState field
type accessor struct {
	get   func(f *models.FilterState) any
	set   func(f *models.FilterState, v any) bool
	clear func(f *models.FilterState)
}

var accessors = map[string]accessor{
	"propertyType": {
		get: func(f *models.FilterState) any { return f.PropertyType },
		set: func(f *models.FilterState, v any) bool {
			s, ok := asString(v)
			if !ok {
				return false
			}
			f.PropertyType = canonicalCategory(models.PropertyCategory(strings.TrimSpace(s)))
			return true
		},
		clear: func(f *models.FilterState) { f.PropertyType = "" },
	},
	"postingType":              text(func(f *models.FilterState) *models.PostingType { return &f.PostingType }),
	"location.city":            text(func(f *models.FilterState) *string { return &f.Location.City }),
	"location.locality":        text(func(f *models.FilterState) *string { return &f.Location.Locality }),
	"location.nearbyLandmarks": text(func(f *models.FilterState) *string { return &f.Location.NearbyLandmarks }),
	"location.pincode":         text(func(f *models.FilterState) *string { return &f.Location.Pincode }),
	"priceRange.min":           number(func(f *models.FilterState) *float64 { return &f.PriceRange.Min }),
	"priceRange.max":           number(func(f *models.FilterState) *float64 { return &f.PriceRange.Max }),
	"furnishing":               text(func(f *models.FilterState) *models.FurnishingType { return &f.Furnishing }),
	"constructionStatus":       text(func(f *models.FilterState) *models.ConstructionStatus { return &f.ConstructionStatus }),
	"postedBy":                 text(func(f *models.FilterState) *models.PostedBy { return &f.PostedBy }),

	"bhk":            text(func(f *models.FilterState) *models.BHKType { return &f.BHK }),
	"floor":          text(func(f *models.FilterState) *models.FloorType { return &f.Floor }),
	"facing":         text(func(f *models.FilterState) *models.FacingDirection { return &f.Facing }),
	"parking.cars":   integer(func(f *models.FilterState) *int { return &f.Parking.Cars }),
	"parking.bikes":  flag(func(f *models.FilterState) *bool { return &f.Parking.Bikes }),
	"lift":           flag(func(f *models.FilterState) *bool { return &f.Lift }),
	"modularKitchen": flag(func(f *models.FilterState) *bool { return &f.ModularKitchen }),

	"plotType":      text(func(f *models.FilterState) *models.PlotType { return &f.PlotType }),
	"plotSize.min":  number(func(f *models.FilterState) *float64 { return &f.PlotSize.Min }),
	"plotSize.max":  number(func(f *models.FilterState) *float64 { return &f.PlotSize.Max }),
	"plotSize.unit": text(func(f *models.FilterState) *models.PlotSizeUnit { return &f.PlotSize.Unit }),
	"waterSupply":   text(func(f *models.FilterState) *models.WaterSupply { return &f.WaterSupply }),
	"floors":        text(func(f *models.FilterState) *models.FloorsType { return &f.Floors }),
	"roadWidth":     text(func(f *models.FilterState) *models.RoadWidth { return &f.RoadWidth }),
	"boundaryWall":  flag(func(f *models.FilterState) *bool { return &f.BoundaryWall }),

	"commercialCategory": text(func(f *models.FilterState) *models.CommercialCategory { return &f.CommercialCategory }),
	"carpetArea":         number(func(f *models.FilterState) *float64 { return &f.CarpetArea }),
	"cabinsCount":        integer(func(f *models.FilterState) *int { return &f.CabinsCount }),
	"workstations":       integer(func(f *models.FilterState) *int { return &f.Workstations }),
	"washrooms":          integer(func(f *models.FilterState) *int { return &f.Washrooms }),
	"pantry":             flag(func(f *models.FilterState) *bool { return &f.Pantry }),
	"ceilingHeight":      number(func(f *models.FilterState) *float64 { return &f.CeilingHeight }),
	"loadingDock":        flag(func(f *models.FilterState) *bool { return &f.LoadingDock }),
	"powerLoad":          text(func(f *models.FilterState) *string { return &f.PowerLoad }),
	"truckParking":       flag(func(f *models.FilterState) *bool { return &f.TruckParking }),
	"frontage":           number(func(f *models.FilterState) *float64 { return &f.Frontage }),

	"roomType":            text(func(f *models.FilterState) *models.RoomType { return &f.RoomType }),
	"attachedBathroom":    flag(func(f *models.FilterState) *bool { return &f.AttachedBathroom }),
	"kitchenAccess":       flag(func(f *models.FilterState) *bool { return &f.KitchenAccess }),
	"wifi":                flag(func(f *models.FilterState) *bool { return &f.Wifi }),
	"electricityIncluded": flag(func(f *models.FilterState) *bool { return &f.ElectricityIncluded }),
	"airCoolerAC":         flag(func(f *models.FilterState) *bool { return &f.AirCoolerAC }),

	"pgOccupancy":  text(func(f *models.FilterState) *models.PGOccupancyType { return &f.PGOccupancy }),
	"foodIncluded": flag(func(f *models.FilterState) *bool { return &f.FoodIncluded }),
	"housekeeping": flag(func(f *models.FilterState) *bool { return &f.Housekeeping }),
	"laundry":      flag(func(f *models.FilterState) *bool { return &f.Laundry }),

	"newlyListed":      flag(func(f *models.FilterState) *bool { return &f.NewlyListed }),
	"verifiedListings": flag(func(f *models.FilterState) *bool { return &f.VerifiedListings }),
	"negotiablePrice":  flag(func(f *models.FilterState) *bool { return &f.NegotiablePrice }),
	"reraApproved":     flag(func(f *models.FilterState) *bool { return &f.ReraApproved }),
	"petFriendly":      flag(func(f *models.FilterState) *bool { return &f.PetFriendly }),
	"immediateMoveIn":  flag(func(f *models.FilterState) *bool { return &f.ImmediateMoveIn }),
}

// Settable reports whether field can be targeted by setField
func Settable(field string) bool {
	_, ok := accessors[field]
	return ok
}

func text[T ~string](ptr func(*models.FilterState) *T) accessor {
	return accessor{
		get: func(f *models.FilterState) any { return *ptr(f) },
		set: func(f *models.FilterState, v any) bool {
			s, ok := asString(v)
			if ok {
				*ptr(f) = T(s)
			}
			return ok
		},
		clear: func(f *models.FilterState) { *ptr(f) = "" },
	}
}

func number(ptr func(*models.FilterState) *float64) accessor {
	return accessor{
		get: func(f *models.FilterState) any { return *ptr(f) },
		set: func(f *models.FilterState, v any) bool {
			n, ok := asFloat(v)
			if ok {
				*ptr(f) = n
			}
			return ok
		},
		clear: func(f *models.FilterState) { *ptr(f) = 0 },
	}
}

func integer(ptr func(*models.FilterState) *int) accessor {
	return accessor{
		get: func(f *models.FilterState) any { return *ptr(f) },
		set: func(f *models.FilterState, v any) bool {
			n, ok := asInt(v)
			if ok {
				*ptr(f) = n
			}
			return ok
		},
		clear: func(f *models.FilterState) { *ptr(f) = 0 },
	}
}

func flag(ptr func(*models.FilterState) *bool) accessor {
	return accessor{
		get: func(f *models.FilterState) any { return *ptr(f) },
		set: func(f *models.FilterState, v any) bool {
			b, ok := asBool(v)
			if ok {
				*ptr(f) = b
			}
			return ok
		},
		clear: func(f *models.FilterState) { *ptr(f) = false },
	}
}

// asString accepts string and any named string type
func asString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

// asFloat accepts every numeric kind, json.Number and numeric strings.
// NaN and infinities are rejected.
func asFloat(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			n = rv.Float()
		default:
			return 0, false
		}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// asInt truncates like asFloat and rejects values outside the int range
func asInt(v any) (int, bool) {
	n, ok := asFloat(v)
	if !ok || n < math.MinInt || n >= -math.MinInt {
		return 0, false
	}
	return int(n), true
}

func asBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return b, err == nil
	}
	return false, false
}
