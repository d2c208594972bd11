package models

import (
	"reflect"
	"sort"
)

// SearchLocation holds the free-text location inputs of the filter panel.
// NearbyLandmarks is carried for round-tripping but never filters.
type SearchLocation struct {
	City            string `json:"city"`
	Locality        string `json:"locality"`
	NearbyLandmarks string `json:"nearbyLandmarks"`
	Pincode         string `json:"pincode"`
}

// PriceRange bounds are inclusive; 0 means unset
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type ParkingFilter struct {
	Cars  int  `json:"cars"`
	Bikes bool `json:"bikes"`
}

type PlotSizeRange struct {
	Min  float64      `json:"min"`
	Max  float64      `json:"max"`
	Unit PlotSizeUnit `json:"unit"`
}

// FilterState is the user's current search selection. The zero value is
// the empty filter.
type FilterState struct {
	// Universal
	PropertyType       PropertyCategory   `json:"propertyType"`
	PostingType        PostingType        `json:"postingType,omitempty"`
	Location           SearchLocation     `json:"location"`
	PriceRange         PriceRange         `json:"priceRange"`
	Furnishing         FurnishingType     `json:"furnishing"`
	ConstructionStatus ConstructionStatus `json:"constructionStatus"`
	PostedBy           PostedBy           `json:"postedBy"`
	Amenities          []CommonAmenity    `json:"amenities"`

	// Apartment / house / builder floor
	BHK            BHKType         `json:"bhk,omitempty"`
	Floor          FloorType       `json:"floor,omitempty"`
	Facing         FacingDirection `json:"facing,omitempty"`
	Parking        ParkingFilter   `json:"parking"`
	Lift           bool            `json:"lift,omitempty"`
	ModularKitchen bool            `json:"modularKitchen,omitempty"`

	// Plot / house
	PlotType     PlotType      `json:"plotType,omitempty"`
	PlotSize     PlotSizeRange `json:"plotSize"`
	WaterSupply  WaterSupply   `json:"waterSupply,omitempty"`
	Floors       FloorsType    `json:"floors,omitempty"`
	RoadWidth    RoadWidth     `json:"roadWidth,omitempty"`
	BoundaryWall bool          `json:"boundaryWall,omitempty"`

	// Commercial
	CommercialCategory CommercialCategory `json:"commercialCategory,omitempty"`
	CarpetArea         float64            `json:"carpetArea,omitempty"`
	CabinsCount        int                `json:"cabinsCount,omitempty"`
	Workstations       int                `json:"workstations,omitempty"`
	Washrooms          int                `json:"washrooms,omitempty"`
	Pantry             bool               `json:"pantry,omitempty"`
	CeilingHeight      float64            `json:"ceilingHeight,omitempty"`
	LoadingDock        bool               `json:"loadingDock,omitempty"`
	PowerLoad          string             `json:"powerLoad,omitempty"`
	TruckParking       bool               `json:"truckParking,omitempty"`
	Frontage           float64            `json:"frontage,omitempty"`

	// Room
	RoomType            RoomType `json:"roomType,omitempty"`
	AttachedBathroom    bool     `json:"attachedBathroom,omitempty"`
	KitchenAccess       bool     `json:"kitchenAccess,omitempty"`
	Wifi                bool     `json:"wifi,omitempty"`
	ElectricityIncluded bool     `json:"electricityIncluded,omitempty"`
	AirCoolerAC         bool     `json:"airCoolerAC,omitempty"`

	// PG
	PGOccupancy  PGOccupancyType `json:"pgOccupancy,omitempty"`
	FoodIncluded bool            `json:"foodIncluded,omitempty"`
	Housekeeping bool            `json:"housekeeping,omitempty"`
	Laundry      bool            `json:"laundry,omitempty"`

	// Advanced
	NewlyListed      bool `json:"newlyListed,omitempty"`
	VerifiedListings bool `json:"verifiedListings,omitempty"`
	NegotiablePrice  bool `json:"negotiablePrice,omitempty"`
	ReraApproved     bool `json:"reraApproved,omitempty"`
	PetFriendly      bool `json:"petFriendly,omitempty"`
	ImmediateMoveIn  bool `json:"immediateMoveIn,omitempty"`
}

// EmptyFilterState returns the reset value
func EmptyFilterState() FilterState {
	return FilterState{Amenities: []CommonAmenity{}}
}

// Clone returns a copy that shares no memory with f
func (f FilterState) Clone() FilterState {
	out := f
	if f.Amenities != nil {
		out.Amenities = append(make([]CommonAmenity, 0, len(f.Amenities)), f.Amenities...)
	}
	return out
}

// HasAmenity reports whether a is selected
func (f FilterState) HasAmenity(a CommonAmenity) bool {
	for _, x := range f.Amenities {
		if x == a {
			return true
		}
	}
	return false
}

// SortedAmenities returns the amenity set in a stable order
func (f FilterState) SortedAmenities() []CommonAmenity {
	out := append([]CommonAmenity{}, f.Amenities...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal compares two states treating amenities as a set
func (f FilterState) Equal(o FilterState) bool {
	a, b := f.Clone(), o.Clone()
	a.Amenities, b.Amenities = a.SortedAmenities(), b.SortedAmenities()
	return reflect.DeepEqual(a, b)
}

// IsEmpty reports whether no field is set
func (f FilterState) IsEmpty() bool {
	return f.Equal(EmptyFilterState())
}
