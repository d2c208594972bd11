package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-marketplace/internal/models"
)

func TestCanonical_IgnoresAmenityOrderAndStaleFields(t *testing.T) {
	a := models.EmptyFilterState()
	a.PropertyType = models.CategoryRoom
	a.Amenities = []models.CommonAmenity{models.AmenityGym, models.AmenityLift}
	a.BHK = models.BHK3 // not a Room field

	b := models.EmptyFilterState()
	b.PropertyType = models.CategoryRoom
	b.Amenities = []models.CommonAmenity{models.AmenityLift, models.AmenityGym}

	assert.Equal(t, Canonical(a), Canonical(b))
	assert.NotContains(t, Canonical(a), "bhk")
}

func TestCanonical_Content(t *testing.T) {
	f := models.EmptyFilterState()
	f.PropertyType = models.CategoryFlatApartment
	f.Location.City = "Mohali"
	f.PriceRange = models.PriceRange{Max: 50000}
	f.Parking = models.ParkingFilter{Cars: 1}

	v, err := url.ParseQuery(Canonical(f))
	require.NoError(t, err)
	assert.Equal(t, "Flat/Apartment", v.Get("propertyType"))
	assert.Equal(t, "Mohali", v.Get("location.city"))
	assert.Equal(t, "50000", v.Get("priceRange.max"))
	assert.Empty(t, v.Get("priceRange.min"))
	assert.Equal(t, "1", v.Get("parking.cars"))

	assert.Empty(t, Canonical(models.EmptyFilterState()))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	f := sampleState()
	f.Location.NearbyLandmarks = "Mind Tree School"
	f.PlotSize = models.PlotSizeRange{Min: 100, Unit: models.UnitSqyard}
	f.Wifi = true

	got, err := DecodeQuery(EncodeQuery(f))
	require.NoError(t, err)
	assert.True(t, f.Equal(got))
}

func TestDecodeQuery_FlatParams(t *testing.T) {
	q := url.Values{
		"property_type": {"flat"},
		"posting_type":  {"rent"},
		"city":          {"Mohali"},
		"min_price":     {"10000"},
		"max_price":     {"25000"},
		"amenities":     {"Lift,Gym", "Lift"},
	}
	f, err := DecodeQuery(q)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryFlatApartment, f.PropertyType)
	assert.Equal(t, models.PostingRent, f.PostingType)
	assert.Equal(t, "Mohali", f.Location.City)
	assert.Equal(t, models.PriceRange{Min: 10000, Max: 25000}, f.PriceRange)
	assert.ElementsMatch(t, []models.CommonAmenity{models.AmenityLift, models.AmenityGym}, f.Amenities)
}

func TestDecodeQuery_Malformed(t *testing.T) {
	_, err := DecodeQuery(url.Values{QueryParam: {"{not json"}})
	assert.Error(t, err)

	f, err := DecodeQuery(url.Values{})
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())
}

func TestMeiliFilter(t *testing.T) {
	f := models.EmptyFilterState()
	f.PropertyType = models.CategoryPlotLand
	f.Location.City = "Mohali" // substring, left to the predicate
	f.PlotSize = models.PlotSizeRange{Min: 100, Unit: models.UnitSqyard}
	f.BoundaryWall = true
	f.Amenities = []models.CommonAmenity{models.AmenityPark}

	clauses, ok := MeiliFilter(f)
	require.True(t, ok)
	assert.Equal(t, []string{
		"f_propertyType = 'Plot/Land'",
		"f_amenities = 'park'",
		"f_plotSize >= 900",
		"f_boundaryWall = true",
	}, clauses)

	f.PriceRange = models.PriceRange{Min: 10, Max: 5}
	_, ok = MeiliFilter(f)
	assert.False(t, ok)
}

func TestMeiliFilter_QuotesValues(t *testing.T) {
	f := models.EmptyFilterState()
	f.PropertyType = "O'Brien"
	clauses, ok := MeiliFilter(f)
	require.True(t, ok)
	assert.Equal(t, []string{`f_propertyType = 'O\'Brien'`}, clauses)
}
