package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-marketplace/internal/models"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{"₹1,50,000", 150000},
		{"₹15,000", 15000},
		{"45.5 lakh", 45.5},
		{float64(1200), 1200},
		{42, 42},
		{[]byte("3,000"), 3000},
		{"", 0},
		{"on request", 0},
		{"1.2.3", 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{nil, 0},
		{map[string]any{}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNumber(tt.in), "ParseNumber(%#v)", tt.in)
	}
}

func TestIsValidImageURL(t *testing.T) {
	valid := []string{"/a.jpg", "http://x/a.jpg", "https://cdn.example.com/a.png"}
	for _, s := range valid {
		assert.True(t, IsValidImageURL(s), s)
	}
	invalid := []string{"", "  ", "[]", "null", "NULL", "undefined", "Undefined", "[object Object]", "a.jpg", "ftp://x/a.jpg", "data:image/png;base64,AAAA"}
	for _, s := range invalid {
		assert.False(t, IsValidImageURL(s), s)
	}
}

func TestNormalize_ImageFallback(t *testing.T) {
	p := Normalize(RawRecord{"other_images": "[]"})
	assert.Equal(t, []string{PlaceholderImage}, p.Images)

	p = Normalize(RawRecord{})
	assert.Equal(t, []string{PlaceholderImage}, p.Images)

	p = Normalize(RawRecord{"main_image": "null", "primary_image": "undefined", "images": "[object Object]"})
	assert.Equal(t, []string{PlaceholderImage}, p.Images)
}

func TestNormalize_ImageDedupAndOrder(t *testing.T) {
	p := Normalize(RawRecord{
		"main_image":    "/a.jpg",
		"primary_image": "/a.jpg",
		"other_images":  "/b.jpg,/a.jpg",
	})
	assert.Equal(t, []string{"/a.jpg", "/b.jpg"}, p.Images)
}

func TestNormalize_ImageSources(t *testing.T) {
	tests := []struct {
		name string
		raw  RawRecord
		want []string
	}{
		{
			name: "json array string",
			raw:  RawRecord{"other_images": `["/x.jpg","https://h/y.jpg","null"]`},
			want: []string{"/x.jpg", "https://h/y.jpg"},
		},
		{
			name: "native sequence",
			raw:  RawRecord{"images": []any{"/x.jpg", 7, "/y.jpg"}},
			want: []string{"/x.jpg", "/y.jpg"},
		},
		{
			name: "camel keys",
			raw:  RawRecord{"mainImage": "/m.jpg", "primaryImage": "/p.jpg", "otherImages": []string{"/o.jpg"}},
			want: []string{"/m.jpg", "/p.jpg", "/o.jpg"},
		},
		{
			name: "comma split with spaces",
			raw:  RawRecord{"other_images": " /a.jpg , /b.jpg ,, relative.jpg"},
			want: []string{"/a.jpg", "/b.jpg"},
		},
		{
			name: "bytes from sql driver",
			raw:  RawRecord{"main_image": []byte("/m.jpg")},
			want: []string{"/m.jpg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw).Images)
		})
	}
}

func TestNormalize_PriceCoercion(t *testing.T) {
	assert.Equal(t, float64(150000), Normalize(RawRecord{"price": "₹1,50,000"}).Price)
	assert.Equal(t, float64(9000), Normalize(RawRecord{"expectedPrice": 9000.0}).Price)
	assert.Zero(t, Normalize(RawRecord{"price": "call"}).Price)
}

func TestNormalize_FallbackChains(t *testing.T) {
	snake := Normalize(RawRecord{
		"id":              float64(17),
		"property_title":  "Snake",
		"property_type":   "Flat / Apartment",
		"posting_type":    "RENT",
		"city":            "Mohali",
		"locality":        "Sector 70",
		"furnishing_type": "semi furnished",
		"property_status": "Ready to move",
		"bhk_type":        "2bhk",
		"built_up_area":   "1,200 sqft",
		"owner_name":      "Asha",
		"status":          "approved",
	})
	assert.Equal(t, "17", snake.ID)
	assert.Equal(t, "Snake", snake.Title)
	assert.Equal(t, models.CategoryFlatApartment, snake.Category)
	assert.Equal(t, models.PostingRent, snake.PostingType)
	assert.Equal(t, "Mohali", snake.Location.City)
	assert.Equal(t, "Sector 70", snake.Location.Locality)
	assert.Equal(t, models.FurnishingSemi, snake.Furnishing)
	assert.Equal(t, models.ReadyToMove, snake.ConstructionStatus)
	assert.Equal(t, models.BHK2, snake.BHK)
	assert.Equal(t, float64(1200), snake.BuiltUpArea)
	assert.Equal(t, "Asha", snake.Contact.Name)
	assert.Equal(t, models.StatusApproved, snake.Status)

	camel := Normalize(RawRecord{
		"propertyId":    "abc",
		"propertyTitle": "Camel",
		"propertyType":  "Room",
		"postingType":   "Sell",
		"location":      map[string]any{"city": "Kharar", "pincode": float64(140301)},
	})
	assert.Equal(t, "abc", camel.ID)
	assert.Equal(t, "Camel", camel.Title)
	assert.Equal(t, models.CategoryRoom, camel.Category)
	assert.Equal(t, models.PostingSell, camel.PostingType)
	assert.Equal(t, "Kharar", camel.Location.City)
	assert.Equal(t, "140301", camel.Location.Pincode)

	// snake_case wins over camelCase when both are present
	both := Normalize(RawRecord{"property_title": "first", "propertyTitle": "second", "title": "third"})
	assert.Equal(t, "first", both.Title)
}

func TestNormalize_Defaults(t *testing.T) {
	p := Normalize(nil)
	assert.Equal(t, models.CategoryFlatApartment, p.Category)
	assert.Equal(t, models.PostingSell, p.PostingType)
	assert.Equal(t, models.FurnishingUnfurnished, p.Furnishing)
	assert.Equal(t, models.PostedByOwner, p.PostedBy)
	assert.Equal(t, models.StatusPending, p.Status)
	assert.NotNil(t, p.Amenities)
	assert.NotNil(t, p.FurnishingItems)
	assert.NotNil(t, p.AdditionalRooms)
	assert.Empty(t, p.ConstructionStatus)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.Contact.IsOwner)
}

func TestNormalize_StableHashID(t *testing.T) {
	raw := RawRecord{"title": "no id", "price": "100"}
	assert.Equal(t, Normalize(raw).ID, Normalize(RawRecord{"price": "100", "title": "no id"}).ID)
	assert.NotEqual(t, Normalize(raw).ID, Normalize(RawRecord{"title": "other"}).ID)
}

func TestNormalize_UnknownCategoryKept(t *testing.T) {
	p := Normalize(RawRecord{"property_type": "Houseboat"})
	assert.Equal(t, models.PropertyCategory("Houseboat"), p.Category)
}

func TestNormalize_JSONOrNativeLists(t *testing.T) {
	p := Normalize(RawRecord{
		"amenities":        `["Lift","Gym"]`,
		"furnishings":      []any{"Sofa", "Bed"},
		"additional_rooms": "not json",
	})
	assert.Equal(t, []string{"Lift", "Gym"}, p.Amenities)
	assert.Equal(t, []string{"Sofa", "Bed"}, p.FurnishingItems)
	assert.Equal(t, []string{}, p.AdditionalRooms)
}

func TestNormalize_Parking(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawRecord
		wantCount int
		wantType  models.ParkingType
	}{
		{"numeric field", RawRecord{"parking_spaces": "2"}, 2, models.ParkingOpen},
		{"digit in text", RawRecord{"car_parking": "3 Covered"}, 3, models.ParkingCovered},
		{"covered without digit", RawRecord{"car_parking": "Covered"}, 1, models.ParkingCovered},
		{"yes", RawRecord{"car_parking": "Yes"}, 1, models.ParkingOpen},
		{"nested object", RawRecord{"carParking": map[string]any{"type": "Covered", "count": float64(2)}}, 2, models.ParkingCovered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(tt.raw)
			require.NotNil(t, p.CarParking)
			assert.Equal(t, tt.wantCount, p.CarParking.Count)
			assert.Equal(t, tt.wantType, p.CarParking.Type)
		})
	}

	assert.Nil(t, Normalize(RawRecord{"car_parking": "No"}).CarParking)
	assert.Nil(t, Normalize(RawRecord{}).CarParking)

	assert.True(t, Normalize(RawRecord{"bike_parking": "yes"}).BikeParking)
	assert.True(t, Normalize(RawRecord{"bikeParking": true}).BikeParking)
	assert.False(t, Normalize(RawRecord{"bike_parking": "no"}).BikeParking)
}

func TestNormalize_FloorLabel(t *testing.T) {
	assert.Equal(t, models.Floor2nd, Normalize(RawRecord{"your_floor": "2"}).Floor)
	assert.Equal(t, models.Floor4Plus, Normalize(RawRecord{"floor_number": float64(9)}).Floor)
	assert.Equal(t, models.FloorGround, Normalize(RawRecord{"floor": "Ground"}).Floor)
	assert.Empty(t, Normalize(RawRecord{}).Floor)
}

func TestNormalize_Attributes(t *testing.T) {
	p := Normalize(RawRecord{
		"property_type":      "Commercial",
		"commercialCategory": "office",
		"cabins_count":       "4",
		"pantry":             "Yes",
		"attributes":         map[string]any{"workstations": float64(20)},
	})
	assert.Equal(t, models.CommercialOffice, p.Attributes.CommercialCategory)
	assert.Equal(t, 4, p.Attributes.CabinsCount)
	assert.Equal(t, 20, p.Attributes.Workstations)
	assert.True(t, p.Attributes.Pantry)

	plot := Normalize(RawRecord{"plot_area": "100", "plot_area_unit": "sq yd"})
	assert.Equal(t, models.UnitSqyard, plot.Attributes.PlotAreaUnit)
	assert.Equal(t, float64(900), plot.Attributes.PlotAreaSqft())
}

func TestNormalize_CreatedAt(t *testing.T) {
	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	assert.True(t, want.Equal(Normalize(RawRecord{"created_at": "2024-03-01T10:30:00Z"}).CreatedAt))
	assert.True(t, want.Equal(Normalize(RawRecord{"created_at": "2024-03-01 10:30:00"}).CreatedAt))
	assert.True(t, want.Equal(Normalize(RawRecord{"createdAt": float64(want.UnixMilli())}).CreatedAt))
	assert.True(t, want.Equal(Normalize(RawRecord{"createdAt": want}).CreatedAt))
	assert.True(t, Normalize(RawRecord{"created_at": "yesterday"}).CreatedAt.IsZero())
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	raw := RawRecord{"other_images": []any{"/a.jpg"}, "price": "₹10"}
	_ = Normalize(raw)
	assert.Equal(t, RawRecord{"other_images": []any{"/a.jpg"}, "price": "₹10"}, raw)
}
