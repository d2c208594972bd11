package schema

import (
	"property-marketplace/internal/models"
)

// Range is the value shape of range fields. An empty unit means the bounds
// are already in the listing's own unit.
type Range struct {
	Min  float64
	Max  float64
	Unit models.PlotSizeUnit
}

var (
	aptHouse   = []models.PropertyCategory{models.CategoryFlatApartment, models.CategoryIndependentHouse}
	bhkOwners  = []models.PropertyCategory{models.CategoryFlatApartment, models.CategoryIndependentHouse, models.CategoryBuilderFloor}
	floorOwner = []models.PropertyCategory{models.CategoryFlatApartment, models.CategoryBuilderFloor}
	facing     = []models.PropertyCategory{models.CategoryFlatApartment, models.CategoryIndependentHouse, models.CategoryPlotLand}
	plotHouse  = []models.PropertyCategory{models.CategoryPlotLand, models.CategoryIndependentHouse}
	house      = []models.PropertyCategory{models.CategoryIndependentHouse}
	plot       = []models.PropertyCategory{models.CategoryPlotLand}
	builder    = []models.PropertyCategory{models.CategoryBuilderFloor}
	commercial = []models.PropertyCategory{models.CategoryCommercial}
	room       = []models.PropertyCategory{models.CategoryRoom}
	pg         = []models.PropertyCategory{models.CategoryPG}
	roomPG     = []models.PropertyCategory{models.CategoryRoom, models.CategoryPG}

	office       = []models.CommercialCategory{models.CommercialOffice}
	warehouse    = []models.CommercialCategory{models.CommercialWarehouse}
	officeWhShop = []models.CommercialCategory{models.CommercialOffice, models.CommercialWarehouse, models.CommercialShop}
	officeShop   = []models.CommercialCategory{models.CommercialOffice, models.CommercialShop}
	shop         = []models.CommercialCategory{models.CommercialShop}
)

// Fields is the complete filter table in evaluation order: universal
// fields first, then the category-conditional ones, then advanced flags.
var Fields = []Field{
	{
		Name: "propertyType", Label: "Property Type", Kind: KindEnum, Options: options(models.Categories),
		FilterValue: func(f *models.FilterState) any { return string(canonicalCategory(f.PropertyType)) },
		RecordValue: func(p *models.Property) any { return string(canonicalCategory(p.Category)) },
	},
	{
		Name: "postingType", Label: "Posting Type", Kind: KindEnum,
		Options:     []string{string(models.PostingSell), string(models.PostingRent)},
		FilterValue: func(f *models.FilterState) any { return string(f.PostingType) },
		RecordValue: func(p *models.Property) any { return string(p.PostingType) },
	},
	{
		Name: "location.city", Label: "City", Kind: KindText,
		FilterValue: func(f *models.FilterState) any { return f.Location.City },
		RecordValue: func(p *models.Property) any { return p.Location.City },
	},
	{
		Name: "location.locality", Label: "Locality", Kind: KindText,
		FilterValue: func(f *models.FilterState) any { return f.Location.Locality },
		RecordValue: func(p *models.Property) any { return p.Location.Locality },
	},
	{
		// No listing field corresponds to it, so it never filters.
		Name: "location.nearbyLandmarks", Label: "Nearby Landmarks", Kind: KindText,
		FilterValue: func(f *models.FilterState) any { return f.Location.NearbyLandmarks },
	},
	{
		Name: "location.pincode", Label: "Pincode", Kind: KindText,
		FilterValue: func(f *models.FilterState) any { return f.Location.Pincode },
		RecordValue: func(p *models.Property) any { return p.Location.Pincode },
	},
	{
		Name: "priceRange", Label: "Price Range", Kind: KindRange, Default: Range{},
		FilterValue: func(f *models.FilterState) any { return Range{Min: f.PriceRange.Min, Max: f.PriceRange.Max} },
		RecordValue: func(p *models.Property) any { return p.Price },
	},
	{
		Name: "furnishing", Label: "Furnishing", Kind: KindEnum, Options: options(models.FurnishingTypes),
		FilterValue: func(f *models.FilterState) any { return string(f.Furnishing) },
		RecordValue: func(p *models.Property) any { return string(p.Furnishing) },
	},
	{
		Name: "constructionStatus", Label: "Construction Status", Kind: KindEnum, Options: options(models.ConstructionStatuses),
		FilterValue: func(f *models.FilterState) any { return string(f.ConstructionStatus) },
		RecordValue: func(p *models.Property) any { return string(p.ConstructionStatus) },
	},
	{
		Name: "postedBy", Label: "Posted By", Kind: KindEnum, Options: options(models.PostedByValues),
		FilterValue: func(f *models.FilterState) any { return string(f.PostedBy) },
		RecordValue: func(p *models.Property) any { return string(p.PostedBy) },
	},
	{
		Name: "amenities", Label: "Amenities", Kind: KindSet, Options: options(models.CommonAmenities), Default: []string{},
		FilterValue: func(f *models.FilterState) any { return options(f.Amenities) },
		RecordValue: func(p *models.Property) any { return p.Amenities },
	},

	// Apartment, house and builder floor
	{
		Name: "bhk", Label: "BHK Type", Kind: KindEnum, Options: options(models.BHKTypes), Categories: bhkOwners,
		FilterValue: func(f *models.FilterState) any { return string(f.BHK) },
		RecordValue: func(p *models.Property) any { return string(p.BHK) },
	},
	{
		Name: "floor", Label: "Floor", Kind: KindEnum, Options: options(models.FloorTypes), Categories: floorOwner,
		FilterValue: func(f *models.FilterState) any { return string(f.Floor) },
		RecordValue: func(p *models.Property) any { return string(p.Floor) },
	},
	{
		Name: "facing", Label: "Facing", Kind: KindEnum, Options: options(models.FacingDirections), Categories: facing,
		FilterValue: func(f *models.FilterState) any { return string(f.Facing) },
		RecordValue: func(p *models.Property) any { return string(p.Facing) },
	},
	{
		Name: "parking", Label: "Parking", Kind: KindParking, Categories: aptHouse, Default: models.ParkingFilter{},
		FilterValue: func(f *models.FilterState) any { return f.Parking },
		RecordValue: func(p *models.Property) any {
			return models.ParkingFilter{Cars: p.ParkingCount(), Bikes: p.BikeParking}
		},
	},
	{
		Name: "lift", Label: "Lift", Kind: KindBool, Categories: builder,
		FilterValue: func(f *models.FilterState) any { return f.Lift },
		RecordValue: func(p *models.Property) any { return p.Attributes.Lift },
	},
	{
		Name: "modularKitchen", Label: "Modular Kitchen", Kind: KindBool, Categories: builder,
		FilterValue: func(f *models.FilterState) any { return f.ModularKitchen },
		RecordValue: func(p *models.Property) any { return p.Attributes.ModularKitchen },
	},

	// Plot and house
	{
		Name: "plotType", Label: "Plot Type", Kind: KindEnum, Options: options(models.PlotTypes), Categories: plot,
		FilterValue: func(f *models.FilterState) any { return string(f.PlotType) },
		RecordValue: func(p *models.Property) any { return string(p.Attributes.PlotType) },
	},
	{
		Name: "plotSize", Label: "Plot Size", Kind: KindRange, Options: options(models.PlotSizeUnits), Categories: plotHouse,
		Default:     Range{Unit: models.UnitSqft},
		FilterValue: func(f *models.FilterState) any { return Range{Min: f.PlotSize.Min, Max: f.PlotSize.Max, Unit: f.PlotSize.Unit} },
		RecordValue: func(p *models.Property) any { return p.Attributes.PlotAreaSqft() },
	},
	{
		Name: "waterSupply", Label: "Water Supply", Kind: KindEnum, Options: options(models.WaterSupplies), Categories: house,
		FilterValue: func(f *models.FilterState) any { return string(f.WaterSupply) },
		RecordValue: func(p *models.Property) any { return string(p.Attributes.WaterSupply) },
	},
	{
		Name: "floors", Label: "Floors", Kind: KindEnum, Options: options(models.FloorsTypes), Categories: house,
		FilterValue: func(f *models.FilterState) any { return string(f.Floors) },
		RecordValue: func(p *models.Property) any { return string(p.Attributes.Floors) },
	},
	{
		Name: "roadWidth", Label: "Road Width", Kind: KindEnum, Options: options(models.RoadWidths), Categories: plot,
		FilterValue: func(f *models.FilterState) any { return string(f.RoadWidth) },
		RecordValue: func(p *models.Property) any { return string(p.Attributes.RoadWidth) },
	},
	{
		Name: "boundaryWall", Label: "Boundary Wall", Kind: KindBool, Categories: plot,
		FilterValue: func(f *models.FilterState) any { return f.BoundaryWall },
		RecordValue: func(p *models.Property) any { return p.Attributes.BoundaryWall },
	},

	// Commercial
	{
		Name: "commercialCategory", Label: "Commercial Category", Kind: KindEnum, Options: options(models.CommercialCategories),
		Categories:  commercial,
		FilterValue: func(f *models.FilterState) any { return string(f.CommercialCategory) },
		RecordValue: func(p *models.Property) any { return string(p.Attributes.CommercialCategory) },
	},
	{
		Name: "carpetArea", Label: "Carpet Area (sq ft)", Kind: KindMin, Categories: commercial, Commercial: officeWhShop,
		FilterValue: func(f *models.FilterState) any { return f.CarpetArea },
		RecordValue: func(p *models.Property) any { return p.CarpetArea },
	},
	{
		Name: "cabinsCount", Label: "Cabins", Kind: KindMin, Categories: commercial, Commercial: office,
		FilterValue: func(f *models.FilterState) any { return float64(f.CabinsCount) },
		RecordValue: func(p *models.Property) any { return float64(p.Attributes.CabinsCount) },
	},
	{
		Name: "workstations", Label: "Workstations", Kind: KindMin, Categories: commercial, Commercial: office,
		FilterValue: func(f *models.FilterState) any { return float64(f.Workstations) },
		RecordValue: func(p *models.Property) any { return float64(p.Attributes.Workstations) },
	},
	{
		Name: "washrooms", Label: "Washrooms", Kind: KindMin, Categories: commercial, Commercial: officeShop,
		FilterValue: func(f *models.FilterState) any { return float64(f.Washrooms) },
		RecordValue: func(p *models.Property) any { return float64(p.Attributes.Washrooms) },
	},
	{
		Name: "pantry", Label: "Pantry", Kind: KindBool, Categories: commercial, Commercial: office,
		FilterValue: func(f *models.FilterState) any { return f.Pantry },
		RecordValue: func(p *models.Property) any { return p.Attributes.Pantry },
	},
	{
		Name: "ceilingHeight", Label: "Ceiling Height (ft)", Kind: KindMin, Categories: commercial, Commercial: warehouse,
		FilterValue: func(f *models.FilterState) any { return f.CeilingHeight },
		RecordValue: func(p *models.Property) any { return p.Attributes.CeilingHeight },
	},
	{
		Name: "loadingDock", Label: "Loading Dock", Kind: KindBool, Categories: commercial, Commercial: warehouse,
		FilterValue: func(f *models.FilterState) any { return f.LoadingDock },
		RecordValue: func(p *models.Property) any { return p.Attributes.LoadingDock },
	},
	{
		Name: "powerLoad", Label: "Power Load", Kind: KindText, Categories: commercial, Commercial: warehouse,
		FilterValue: func(f *models.FilterState) any { return f.PowerLoad },
		RecordValue: func(p *models.Property) any { return p.Attributes.PowerLoad },
	},
	{
		Name: "truckParking", Label: "Truck Parking", Kind: KindBool, Categories: commercial, Commercial: warehouse,
		FilterValue: func(f *models.FilterState) any { return f.TruckParking },
		RecordValue: func(p *models.Property) any { return p.Attributes.TruckParking },
	},
	{
		Name: "frontage", Label: "Frontage (ft)", Kind: KindMin, Categories: commercial, Commercial: shop,
		FilterValue: func(f *models.FilterState) any { return f.Frontage },
		RecordValue: func(p *models.Property) any { return p.Attributes.Frontage },
	},

	// Room
	{
		Name: "roomType", Label: "Room Type", Kind: KindEnum, Options: options(models.RoomTypes), Categories: room,
		FilterValue: func(f *models.FilterState) any { return string(f.RoomType) },
		RecordValue: func(p *models.Property) any { return string(p.Attributes.RoomType) },
	},
	{
		Name: "attachedBathroom", Label: "Attached Bathroom", Kind: KindBool, Categories: room,
		FilterValue: func(f *models.FilterState) any { return f.AttachedBathroom },
		RecordValue: func(p *models.Property) any { return p.Attributes.AttachedBathroom },
	},
	{
		Name: "kitchenAccess", Label: "Kitchen Access", Kind: KindBool, Categories: room,
		FilterValue: func(f *models.FilterState) any { return f.KitchenAccess },
		RecordValue: func(p *models.Property) any { return p.Attributes.KitchenAccess },
	},
	{
		Name: "wifi", Label: "WiFi", Kind: KindBool, Categories: roomPG,
		FilterValue: func(f *models.FilterState) any { return f.Wifi },
		RecordValue: func(p *models.Property) any { return p.Attributes.Wifi },
	},
	{
		Name: "electricityIncluded", Label: "Electricity Included", Kind: KindBool, Categories: roomPG,
		FilterValue: func(f *models.FilterState) any { return f.ElectricityIncluded },
		RecordValue: func(p *models.Property) any { return p.Attributes.ElectricityIncluded },
	},
	{
		Name: "airCoolerAC", Label: "Air Cooler / AC", Kind: KindBool, Categories: room,
		FilterValue: func(f *models.FilterState) any { return f.AirCoolerAC },
		RecordValue: func(p *models.Property) any { return p.Attributes.AirCoolerAC },
	},

	// PG
	{
		Name: "pgOccupancy", Label: "Occupancy", Kind: KindEnum, Options: options(models.PGOccupancyTypes), Categories: pg,
		FilterValue: func(f *models.FilterState) any { return string(f.PGOccupancy) },
		RecordValue: func(p *models.Property) any { return string(p.Attributes.PGOccupancy) },
	},
	{
		Name: "foodIncluded", Label: "Food Included", Kind: KindBool, Categories: pg,
		FilterValue: func(f *models.FilterState) any { return f.FoodIncluded },
		RecordValue: func(p *models.Property) any { return p.Attributes.FoodIncluded },
	},
	{
		Name: "housekeeping", Label: "Housekeeping", Kind: KindBool, Categories: pg,
		FilterValue: func(f *models.FilterState) any { return f.Housekeeping },
		RecordValue: func(p *models.Property) any { return p.Attributes.Housekeeping },
	},
	{
		Name: "laundry", Label: "Laundry", Kind: KindBool, Categories: pg,
		FilterValue: func(f *models.FilterState) any { return f.Laundry },
		RecordValue: func(p *models.Property) any { return p.Attributes.Laundry },
	},

	// Advanced
	{
		Name: "newlyListed", Label: "Newly Listed", Kind: KindBool,
		FilterValue: func(f *models.FilterState) any { return f.NewlyListed },
		RecordValue: func(p *models.Property) any { return p.NewlyListed },
	},
	{
		Name: "verifiedListings", Label: "Verified Listings", Kind: KindBool,
		FilterValue: func(f *models.FilterState) any { return f.VerifiedListings },
		RecordValue: func(p *models.Property) any { return p.Verified },
	},
	{
		Name: "negotiablePrice", Label: "Negotiable Price", Kind: KindBool,
		FilterValue: func(f *models.FilterState) any { return f.NegotiablePrice },
		RecordValue: func(p *models.Property) any { return p.Negotiable },
	},
	{
		Name: "reraApproved", Label: "RERA Approved", Kind: KindBool,
		FilterValue: func(f *models.FilterState) any { return f.ReraApproved },
		RecordValue: func(p *models.Property) any { return p.Legal.ReraApproved },
	},
	{
		Name: "petFriendly", Label: "Pet Friendly", Kind: KindBool,
		FilterValue: func(f *models.FilterState) any { return f.PetFriendly },
		RecordValue: func(p *models.Property) any { return p.PetFriendly },
	},
	{
		Name: "immediateMoveIn", Label: "Immediate Move-in", Kind: KindBool,
		FilterValue: func(f *models.FilterState) any { return f.ImmediateMoveIn },
		RecordValue: func(p *models.Property) any { return p.ImmediateMoveIn },
	},
}

func options[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// canonicalCategory resolves spelling variants; unknown values pass through
func canonicalCategory(c models.PropertyCategory) models.PropertyCategory {
	if parsed, ok := models.ParseCategory(string(c)); ok {
		return parsed
	}
	return c
}
