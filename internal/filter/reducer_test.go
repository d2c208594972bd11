package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-marketplace/internal/models"
)

func sampleState() models.FilterState {
	s := models.EmptyFilterState()
	s.PropertyType = models.CategoryFlatApartment
	s.Location.City = "Mohali"
	s.PriceRange = models.PriceRange{Min: 1000, Max: 90000}
	s.Furnishing = models.FurnishingSemi
	s.Amenities = []models.CommonAmenity{models.AmenityLift, models.AmenityGym}
	s.BHK = models.BHK2
	s.Parking = models.ParkingFilter{Cars: 1, Bikes: true}
	return s
}

func TestApply_ResetIsIdempotent(t *testing.T) {
	for _, s := range []models.FilterState{models.EmptyFilterState(), sampleState(), {}} {
		once := Apply(s, Reset())
		twice := Apply(once, Reset())
		assert.True(t, once.Equal(twice))
		assert.True(t, once.IsEmpty())
		assert.Equal(t, []models.CommonAmenity{}, once.Amenities)
		assert.Equal(t, models.PriceRange{}, once.PriceRange)
	}
}

func TestApply_ToggleAmenitySymmetry(t *testing.T) {
	states := []models.FilterState{models.EmptyFilterState(), sampleState()}
	for _, s := range states {
		for _, a := range models.CommonAmenities {
			back := Apply(Apply(s, ToggleAmenity(a)), ToggleAmenity(a))
			assert.True(t, s.Equal(back), "toggle %q twice", a)
		}
	}
}

func TestApply_ToggleAmenityAddsAndRemoves(t *testing.T) {
	s := Apply(models.EmptyFilterState(), ToggleAmenity(models.AmenityCCTV))
	assert.Equal(t, []models.CommonAmenity{models.AmenityCCTV}, s.Amenities)

	s = Apply(s, ToggleAmenity(models.AmenityCCTV))
	assert.Empty(t, s.Amenities)

	// no duplicates after repeated adds through toggle
	s = Apply(Apply(Apply(s, ToggleAmenity(models.AmenityGym)), ToggleAmenity(models.AmenityPark)), ToggleAmenity(models.AmenityGym))
	assert.Equal(t, []models.CommonAmenity{models.AmenityPark}, s.Amenities)
}

func TestApply_SetToSameClears(t *testing.T) {
	s := Apply(models.EmptyFilterState(), SetField("furnishing", "Fully Furnished"))
	assert.Equal(t, models.FurnishingFully, s.Furnishing)

	s = Apply(s, SetField("furnishing", "Fully Furnished"))
	assert.Equal(t, models.FurnishingType(""), s.Furnishing)
}

func TestApply_SetFieldDottedKeys(t *testing.T) {
	s := Apply(models.EmptyFilterState(), SetField("location.city", "Kharar"))
	assert.Equal(t, "Kharar", s.Location.City)

	s = Apply(s, SetField("parking.cars", 2))
	assert.Equal(t, 2, s.Parking.Cars)

	s = Apply(s, SetField("lift", true))
	assert.True(t, s.Lift)
	s = Apply(s, SetField("lift", true))
	assert.False(t, s.Lift)
}

func TestApply_SetFieldCanonicalizesPropertyType(t *testing.T) {
	s := Apply(models.EmptyFilterState(), SetField("propertyType", "Flat / Apartment"))
	assert.Equal(t, models.CategoryFlatApartment, s.PropertyType)

	// re-selecting the same category in another spelling deselects it
	s = Apply(s, SetField("propertyType", "flat/apartment"))
	assert.Empty(t, s.PropertyType)
}

func TestApply_SetFieldClearsUncanonicalStoredValue(t *testing.T) {
	s := models.EmptyFilterState()
	s.PropertyType = "Flat / Apartment"

	next := Apply(s, SetField("propertyType", "Flat / Apartment"))
	assert.Empty(t, next.PropertyType)

	next = Apply(s, SetField("propertyType", "Builder Floor"))
	assert.Equal(t, models.CategoryBuilderFloor, next.PropertyType)
}

func TestApply_SetFieldRejectsOutOfRangeIntegers(t *testing.T) {
	s := Apply(models.EmptyFilterState(), SetField("parking.cars", 2))

	for _, v := range []any{1e300, -1e300, "9.3e18", float64(1 << 63)} {
		next := Apply(s, SetField("parking.cars", v))
		assert.Equal(t, 2, next.Parking.Cars, "value %v", v)
	}

	next := Apply(s, SetField("cabinsCount", 3.9))
	assert.Equal(t, 3, next.CabinsCount)
}

func TestApply_SetRangeBoundKeepsOtherBound(t *testing.T) {
	s := Apply(models.EmptyFilterState(), SetRangeBound("priceRange", "min", 5000))
	s = Apply(s, SetRangeBound("priceRange", "max", "20000"))
	assert.Equal(t, models.PriceRange{Min: 5000, Max: 20000}, s.PriceRange)

	s = Apply(s, SetRangeBound("priceRange", "min", 7000))
	assert.Equal(t, models.PriceRange{Min: 7000, Max: 20000}, s.PriceRange)

	s = Apply(s, SetRangeBound("plotSize", "unit", "sqyard"))
	assert.Equal(t, models.UnitSqyard, s.PlotSize.Unit)
}

func TestApply_InvalidActionsLeaveStateUnchanged(t *testing.T) {
	s := sampleState()
	tests := []Action{
		{Type: "bogus"},
		SetField("noSuchField", "x"),
		SetField("parking.cars", "many"),
		SetField("lift", 3.5),
		SetRangeBound("bhk", "min", 1),
		SetRangeBound("priceRange", "middle", 1),
		ToggleAmenity(""),
	}
	for _, a := range tests {
		assert.True(t, s.Equal(Apply(s, a)), "action %+v", a)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s := sampleState()
	before := s.Clone()
	_ = Apply(s, ToggleAmenity(models.AmenityPark))
	_ = Apply(s, ToggleAmenity(models.AmenityLift))
	_ = Apply(s, SetField("location.city", "Zirakpur"))
	require.True(t, before.Equal(s))
	assert.Equal(t, before.Amenities, s.Amenities)
}

func TestAssign_DoesNotToggle(t *testing.T) {
	s := Assign(models.EmptyFilterState(), "bhk", "3 BHK")
	s = Assign(s, "bhk", "3 BHK")
	assert.Equal(t, models.BHK3, s.BHK)
}
