package normalize

import (
	"property-marketplace/internal/models"
)

// attributes reads the category-specific fields. Each is accepted in
// snake_case and camelCase, and from a nested "attributes" object.
func attributes(raw RawRecord) models.CategoryAttributes {
	var a models.CategoryAttributes

	a.PlotType = models.PlotType(text(raw, "plot_type", "plotType"))
	a.PlotArea, _ = First(raw, keys(asNumber, "plot_area", "plot_size", "plotArea", "plotSize"))
	if a.PlotArea > 0 {
		a.PlotAreaUnit = plotUnit(text(raw, "plot_area_unit", "plot_size_unit", "plotAreaUnit", "plotSizeUnit"))
	}
	a.WaterSupply = models.WaterSupply(text(raw, "water_supply", "waterSupply"))
	a.Floors = models.FloorsType(text(raw, "floors_type", "floorsType", "floors"))
	a.RoadWidth = models.RoadWidth(text(raw, "road_width", "roadWidth"))
	a.BoundaryWall = flag(raw, "boundary_wall", "boundaryWall")

	a.Lift = flag(raw, "lift", "has_lift", "hasLift")
	a.ModularKitchen = flag(raw, "modular_kitchen", "modularKitchen")

	if s := text(raw, "commercial_category", "commercialCategory", "commercial_type"); s != "" {
		if c, ok := models.ParseCommercialCategory(s); ok {
			a.CommercialCategory = c
		} else {
			a.CommercialCategory = models.CommercialCategory(s)
		}
	}
	a.CabinsCount, _ = First(raw, keys(asInt, "cabins_count", "cabinsCount", "cabins"))
	a.Workstations, _ = First(raw, keys(asInt, "workstations", "work_stations"))
	a.Washrooms, _ = First(raw, keys(asInt, "washrooms", "washroom_count"))
	a.Pantry = flag(raw, "pantry")
	a.CeilingHeight, _ = First(raw, keys(asNumber, "ceiling_height", "ceilingHeight"))
	a.LoadingDock = flag(raw, "loading_dock", "loadingDock")
	a.PowerLoad = text(raw, "power_load", "powerLoad")
	a.TruckParking = flag(raw, "truck_parking", "truckParking")
	a.Frontage, _ = First(raw, keys(asNumber, "frontage", "frontage_ft"))

	a.RoomType = models.RoomType(text(raw, "room_type", "roomType"))
	a.AttachedBathroom = flag(raw, "attached_bathroom", "attachedBathroom")
	a.KitchenAccess = flag(raw, "kitchen_access", "kitchenAccess")
	a.Wifi = flag(raw, "wifi", "wifi_included")
	a.ElectricityIncluded = flag(raw, "electricity_included", "electricityIncluded")
	a.AirCoolerAC = flag(raw, "air_cooler_ac", "airCoolerAC", "ac")

	a.PGOccupancy = models.PGOccupancyType(text(raw, "pg_occupancy", "pgOccupancy", "occupancy_type"))
	a.FoodIncluded = flag(raw, "food_included", "foodIncluded")
	a.Housekeeping = flag(raw, "housekeeping")
	a.Laundry = flag(raw, "laundry")

	return a
}

func text(raw RawRecord, names ...string) string {
	s, _ := First(raw, keys(asText, names...))
	return s
}

func flag(raw RawRecord, names ...string) bool {
	b, _ := First(raw, keys(asBool, names...))
	return b
}

// plotUnit maps a raw unit label onto a known unit, defaulting to sqft
func plotUnit(s string) models.PlotSizeUnit {
	for _, u := range models.PlotSizeUnits {
		if u.SquareFeet(1) != 1 && models.PlotSizeUnit(s).SquareFeet(1) == u.SquareFeet(1) {
			return u
		}
	}
	return models.UnitSqft
}
