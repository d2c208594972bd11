package models

import "time"

// Property is the canonical listing produced by the normalizer. Consumers
// treat it as read-only.
type Property struct {
	// Basic info
	ID          string           `json:"id"`
	Category    PropertyCategory `json:"category"`
	PostingType PostingType      `json:"postingType"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      ListingStatus    `json:"status"`
	PostedBy    PostedBy         `json:"postedBy"`

	// Price and area
	Price              float64 `json:"price"`
	MaintenanceCharges float64 `json:"maintenanceCharges"`
	BuiltUpArea        float64 `json:"builtUpArea"`
	CarpetArea         float64 `json:"carpetArea"`

	// Building
	PropertyAge        int                `json:"propertyAge"`
	ConstructionStatus ConstructionStatus `json:"constructionStatus"`
	TotalFloors        int                `json:"totalFloors"`
	YourFloor          int                `json:"yourFloor"`
	Floor              FloorType          `json:"floor,omitempty"`
	Facing             FacingDirection    `json:"facing,omitempty"`
	BHK                BHKType            `json:"bhk,omitempty"`

	Location PropertyLocation `json:"location"`

	Furnishing      FurnishingType `json:"furnishing"`
	FurnishingItems []string       `json:"furnishings"`
	Amenities       []string       `json:"amenities"`
	AdditionalRooms []string       `json:"additionalRooms"`
	CarParking      *CarParking    `json:"carParking,omitempty"`
	BikeParking     bool           `json:"bikeParking"`

	Legal LegalInfo `json:"legal"`

	Images    []string `json:"images"`
	FloorPlan string   `json:"floorPlan,omitempty"`

	Contact ContactInfo `json:"contact"`

	Attributes CategoryAttributes `json:"attributes"`

	// Advanced flags
	NewlyListed     bool `json:"newlyListed"`
	Verified        bool `json:"verified"`
	Negotiable      bool `json:"negotiable"`
	PetFriendly     bool `json:"petFriendly"`
	ImmediateMoveIn bool `json:"immediateMoveIn"`

	CreatedAt time.Time `json:"createdAt"`
}

type PropertyLocation struct {
	City        string `json:"city"`
	Locality    string `json:"locality"`
	SocietyName string `json:"societyName,omitempty"`
	Landmark    string `json:"landmark,omitempty"`
	Pincode     string `json:"pincode"`
	MapLink     string `json:"mapLink,omitempty"`
}

type CarParking struct {
	Type  ParkingType `json:"type"`
	Count int         `json:"count"`
}

type LegalInfo struct {
	ReraApproved      bool   `json:"reraApproved"`
	ReraNumber        string `json:"reraNumber,omitempty"`
	RegistryAvailable bool   `json:"registryAvailable"`
	LoanAvailable     bool   `json:"loanAvailable"`
	TaxPaid           bool   `json:"taxPaid"`
}

type ContactInfo struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Whatsapp string `json:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty"`
	IsOwner  bool   `json:"isOwner"`
}

// CategoryAttributes carries the category-specific fields. Only those that
// belong to the listing's category are meaningful.
type CategoryAttributes struct {
	// Plot / house
	PlotType     PlotType     `json:"plotType,omitempty"`
	PlotArea     float64      `json:"plotArea,omitempty"`
	PlotAreaUnit PlotSizeUnit `json:"plotAreaUnit,omitempty"`
	WaterSupply  WaterSupply  `json:"waterSupply,omitempty"`
	Floors       FloorsType   `json:"floors,omitempty"`
	RoadWidth    RoadWidth    `json:"roadWidth,omitempty"`
	BoundaryWall bool         `json:"boundaryWall,omitempty"`

	// Builder floor
	Lift           bool `json:"lift,omitempty"`
	ModularKitchen bool `json:"modularKitchen,omitempty"`

	// Commercial
	CommercialCategory CommercialCategory `json:"commercialCategory,omitempty"`
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
}

// PlotAreaSqft returns the plot area in square feet
func (a CategoryAttributes) PlotAreaSqft() float64 {
	return a.PlotAreaUnit.SquareFeet(a.PlotArea)
}

// IsPublic reports whether the listing is visible on the public site
func (p *Property) IsPublic() bool {
	return p.Status.IsPublic()
}

// ParkingCount returns the number of car parking spots, 0 when none
func (p *Property) ParkingCount() int {
	if p.CarParking == nil {
		return 0
	}
	return p.CarParking.Count
}

// PrimaryImage returns the first image
func (p *Property) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
