package models

import (
	"strings"
)

// PropertyCategory is the top-level listing type
type PropertyCategory string

const (
	CategoryFlatApartment    PropertyCategory = "Flat/Apartment"
	CategoryIndependentHouse PropertyCategory = "Independent House/Villa"
	CategoryBuilderFloor     PropertyCategory = "Builder Floor"
	CategoryPlotLand         PropertyCategory = "Plot/Land"
	CategoryCommercial       PropertyCategory = "Commercial"
	CategoryFarmhouse        PropertyCategory = "Farmhouse"
	CategoryRoom             PropertyCategory = "Room"
	CategoryPG               PropertyCategory = "PG"
)

// Categories lists every category in display order
var Categories = []PropertyCategory{
	CategoryFlatApartment,
	CategoryIndependentHouse,
	CategoryBuilderFloor,
	CategoryPlotLand,
	CategoryCommercial,
	CategoryFarmhouse,
	CategoryRoom,
	CategoryPG,
}

// ParseCategory maps any known spelling to the canonical category.
// The filter panel writes "Flat / Apartment" while stored rows use
// "Flat/Apartment"; both resolve to the same value.
func ParseCategory(s string) (PropertyCategory, bool) {
	key := compactKey(s)
	if key == "" {
		return "", false
	}
	for _, c := range Categories {
		if compactKey(string(c)) == key {
			return c, true
		}
	}
	switch key {
	case "flat", "apartment":
		return CategoryFlatApartment, true
	case "independenthouse", "villa", "house", "kothi":
		return CategoryIndependentHouse, true
	case "plot", "land":
		return CategoryPlotLand, true
	}
	return "", false
}

// PostingType distinguishes sale from rental listings
type PostingType string

const (
	PostingSell PostingType = "Sell"
	PostingRent PostingType = "Rent"
)

// ParsePostingType treats any spelling of "rent" as Rent and everything else as Sell
func ParsePostingType(s string) PostingType {
	if strings.EqualFold(strings.TrimSpace(s), string(PostingRent)) {
		return PostingRent
	}
	return PostingSell
}

type FurnishingType string

const (
	FurnishingFully       FurnishingType = "Fully Furnished"
	FurnishingSemi        FurnishingType = "Semi Furnished"
	FurnishingUnfurnished FurnishingType = "Unfurnished"
)

var FurnishingTypes = []FurnishingType{FurnishingFully, FurnishingSemi, FurnishingUnfurnished}

func ParseFurnishing(s string) (FurnishingType, bool) {
	switch compactKey(s) {
	case "fullyfurnished", "fully", "furnished":
		return FurnishingFully, true
	case "semifurnished", "semi":
		return FurnishingSemi, true
	case "unfurnished", "none":
		return FurnishingUnfurnished, true
	}
	return "", false
}

type ConstructionStatus string

const (
	ReadyToMove       ConstructionStatus = "Ready to Move"
	UnderConstruction ConstructionStatus = "Under Construction"
)

var ConstructionStatuses = []ConstructionStatus{ReadyToMove, UnderConstruction}

func ParseConstructionStatus(s string) (ConstructionStatus, bool) {
	switch compactKey(s) {
	case "readytomove", "ready", "readytomovein":
		return ReadyToMove, true
	case "underconstruction":
		return UnderConstruction, true
	}
	return "", false
}

type PostedBy string

const (
	PostedByOwner  PostedBy = "Owner"
	PostedByBroker PostedBy = "Broker"
)

var PostedByValues = []PostedBy{PostedByOwner, PostedByBroker}

func ParsePostedBy(s string) (PostedBy, bool) {
	switch compactKey(s) {
	case "owner", "individual":
		return PostedByOwner, true
	case "broker", "agent", "dealer":
		return PostedByBroker, true
	}
	return "", false
}

type FacingDirection string

const (
	FacingNorth     FacingDirection = "North"
	FacingEast      FacingDirection = "East"
	FacingWest      FacingDirection = "West"
	FacingSouth     FacingDirection = "South"
	FacingNorthEast FacingDirection = "North-East"
	FacingNorthWest FacingDirection = "North-West"
	FacingSouthEast FacingDirection = "South-East"
	FacingSouthWest FacingDirection = "South-West"
)

var FacingDirections = []FacingDirection{
	FacingNorth, FacingEast, FacingWest, FacingSouth,
	FacingNorthEast, FacingNorthWest, FacingSouthEast, FacingSouthWest,
}

func ParseFacing(s string) (FacingDirection, bool) {
	key := compactKey(s)
	for _, f := range FacingDirections {
		if compactKey(string(f)) == key {
			return f, true
		}
	}
	switch key {
	case "n":
		return FacingNorth, true
	case "e":
		return FacingEast, true
	case "w":
		return FacingWest, true
	case "s":
		return FacingSouth, true
	case "ne":
		return FacingNorthEast, true
	case "nw":
		return FacingNorthWest, true
	case "se":
		return FacingSouthEast, true
	case "sw":
		return FacingSouthWest, true
	}
	return "", false
}

// CommonAmenity is the closed set offered by the universal amenity filter
type CommonAmenity string

const (
	AmenityPowerBackup    CommonAmenity = "Power Backup"
	AmenityLift           CommonAmenity = "Lift"
	AmenitySecurity       CommonAmenity = "Security"
	AmenityCCTV           CommonAmenity = "CCTV"
	AmenityGym            CommonAmenity = "Gym"
	AmenitySwimmingPool   CommonAmenity = "Swimming Pool"
	AmenityPark           CommonAmenity = "Park"
	AmenityKidsPlayArea   CommonAmenity = "Kids Play Area"
	AmenityVisitorParking CommonAmenity = "Visitor Parking"
	AmenityFireSafety     CommonAmenity = "Fire Safety"
)

var CommonAmenities = []CommonAmenity{
	AmenityPowerBackup, AmenityLift, AmenitySecurity, AmenityCCTV, AmenityGym,
	AmenitySwimmingPool, AmenityPark, AmenityKidsPlayArea, AmenityVisitorParking, AmenityFireSafety,
}

type BHKType string

const (
	BHKStudio BHKType = "Studio"
	BHK1      BHKType = "1 BHK"
	BHK2      BHKType = "2 BHK"
	BHK3      BHKType = "3 BHK"
	BHK3Plus1 BHKType = "3+1 BHK"
	BHK4      BHKType = "4 BHK"
	BHK4Plus1 BHKType = "4+1 BHK"
	BHK5      BHKType = "5 BHK"
	BHK6      BHKType = "6 BHK"
	BHK7      BHKType = "7 BHK"
	BHK8      BHKType = "8 BHK"
	BHK9      BHKType = "9 BHK"
)

var BHKTypes = []BHKType{BHKStudio, BHK1, BHK2, BHK3, BHK3Plus1, BHK4, BHK4Plus1, BHK5, BHK6, BHK7, BHK8, BHK9}

// ParseBHK accepts "2 BHK", "2bhk", "2" and "studio" style spellings
func ParseBHK(s string) (BHKType, bool) {
	key := compactKey(s)
	if key == "" {
		return "", false
	}
	if key == "studio" || key == "1rk" {
		return BHKStudio, true
	}
	key = strings.TrimSuffix(key, "bhk")
	for _, b := range BHKTypes {
		if strings.TrimSuffix(compactKey(string(b)), "bhk") == key {
			return b, true
		}
	}
	return "", false
}

type FloorType string

const (
	FloorGround FloorType = "Ground Floor"
	Floor1st    FloorType = "1st Floor"
	Floor2nd    FloorType = "2nd Floor"
	Floor3rd    FloorType = "3rd Floor"
	Floor4Plus  FloorType = "4+ Floors"
)

var FloorTypes = []FloorType{FloorGround, Floor1st, Floor2nd, Floor3rd, Floor4Plus}

func ParseFloorType(s string) (FloorType, bool) {
	key := compactKey(s)
	for _, f := range FloorTypes {
		if compactKey(string(f)) == key {
			return f, true
		}
	}
	switch key {
	case "ground", "g", "gfloor", "0":
		return FloorGround, true
	case "1", "1st", "first", "firstfloor":
		return Floor1st, true
	case "2", "2nd", "second", "secondfloor":
		return Floor2nd, true
	case "3", "3rd", "third", "thirdfloor":
		return Floor3rd, true
	case "4+", "4+floor", "4floors":
		return Floor4Plus, true
	}
	return "", false
}

// FloorTypeForLevel buckets a numeric floor into the filter's floor ladder
func FloorTypeForLevel(level int) FloorType {
	switch {
	case level <= 0:
		return FloorGround
	case level == 1:
		return Floor1st
	case level == 2:
		return Floor2nd
	case level == 3:
		return Floor3rd
	default:
		return Floor4Plus
	}
}

type PlotType string

const (
	PlotResidential  PlotType = "Residential Plot"
	PlotCommercial   PlotType = "Commercial Plot"
	PlotAgricultural PlotType = "Agricultural Land"
)

var PlotTypes = []PlotType{PlotResidential, PlotCommercial, PlotAgricultural}

type RoomType string

const (
	RoomSingle RoomType = "Single"
	RoomDouble RoomType = "Double"
	RoomTriple RoomType = "Triple"
)

var RoomTypes = []RoomType{RoomSingle, RoomDouble, RoomTriple}

type PGOccupancyType string

const (
	PGSingle      PGOccupancyType = "Single"
	PGDouble      PGOccupancyType = "Double"
	PGTriple      PGOccupancyType = "Triple"
	PGFourSharing PGOccupancyType = "Four Sharing"
)

var PGOccupancyTypes = []PGOccupancyType{PGSingle, PGDouble, PGTriple, PGFourSharing}

type CommercialCategory string

const (
	CommercialOffice    CommercialCategory = "Office Space"
	CommercialWarehouse CommercialCategory = "Warehouse / Godown"
	CommercialShop      CommercialCategory = "Shop / Showroom"
	CommercialPlot      CommercialCategory = "Commercial Plot"
)

var CommercialCategories = []CommercialCategory{CommercialOffice, CommercialWarehouse, CommercialShop, CommercialPlot}

func ParseCommercialCategory(s string) (CommercialCategory, bool) {
	key := compactKey(s)
	if key == "" {
		return "", false
	}
	for _, c := range CommercialCategories {
		if compactKey(string(c)) == key {
			return c, true
		}
	}
	switch key {
	case "office", "officespace":
		return CommercialOffice, true
	case "warehouse", "godown":
		return CommercialWarehouse, true
	case "shop", "showroom":
		return CommercialShop, true
	}
	return "", false
}

type PlotSizeUnit string

const (
	UnitSqft   PlotSizeUnit = "sqft"
	UnitSqyard PlotSizeUnit = "sqyard"
	UnitAcre   PlotSizeUnit = "acre"
)

var PlotSizeUnits = []PlotSizeUnit{UnitSqft, UnitSqyard, UnitAcre}

// SquareFeet converts an area in this unit to square feet. Unknown units
// are taken as square feet.
func (u PlotSizeUnit) SquareFeet(v float64) float64 {
	switch compactKey(string(u)) {
	case "sqyard", "sqyd", "sqyards", "gaj":
		return v * 9
	case "acre", "acres":
		return v * 43560
	default:
		return v
	}
}

type WaterSupply string

const (
	WaterBorewell  WaterSupply = "Borewell"
	WaterMunicipal WaterSupply = "Municipal"
	WaterBoth      WaterSupply = "Both"
)

var WaterSupplies = []WaterSupply{WaterBorewell, WaterMunicipal, WaterBoth}

type FloorsType string

const (
	FloorsSingle  FloorsType = "Single Floor"
	FloorsDuplex  FloorsType = "Duplex"
	FloorsTriplex FloorsType = "Triplex"
)

var FloorsTypes = []FloorsType{FloorsSingle, FloorsDuplex, FloorsTriplex}

type RoadWidth string

const (
	Road10ft     RoadWidth = "10 ft"
	Road20ft     RoadWidth = "20 ft"
	Road30ft     RoadWidth = "30 ft"
	Road40ftPlus RoadWidth = "40 ft+"
)

var RoadWidths = []RoadWidth{Road10ft, Road20ft, Road30ft, Road40ftPlus}

type ParkingType string

const (
	ParkingCovered ParkingType = "Covered"
	ParkingOpen    ParkingType = "Open"
)

// ListingStatus is the moderation state of a listing
type ListingStatus string

const (
	StatusPending   ListingStatus = "Pending"
	StatusApproved  ListingStatus = "Approved"
	StatusPublished ListingStatus = "Published"
	StatusActive    ListingStatus = "Active"
	StatusRejected  ListingStatus = "Rejected"
)

// PublicStatuses are the states visible on the public site
var PublicStatuses = []ListingStatus{StatusApproved, StatusPublished, StatusActive}

// IsPublic reports whether listings in this state are shown publicly
func (s ListingStatus) IsPublic() bool {
	for _, p := range PublicStatuses {
		if strings.EqualFold(string(s), string(p)) {
			return true
		}
	}
	return false
}

func ParseListingStatus(s string) (ListingStatus, bool) {
	for _, st := range []ListingStatus{StatusPending, StatusApproved, StatusPublished, StatusActive, StatusRejected} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// compactKey lowercases s and drops spaces, slashes, dashes and underscores
// so that "Flat / Apartment" and "flat/apartment" compare equal.
func compactKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case ' ', '/', '-', '_', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
