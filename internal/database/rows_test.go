package database

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

// rowAsRecord mimics what scanRecords produces for a stored row
func rowAsRecord(t *testing.T, row models.ListingRow) normalize.RawRecord {
	t.Helper()
	data, err := json.Marshal(row)
	require.NoError(t, err)
	var rec normalize.RawRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	return rec
}

func TestRowFromProperty_RoundTrip(t *testing.T) {
	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	p := models.Property{
		ID:                 "p-1",
		Category:           models.CategoryBuilderFloor,
		PostingType:        models.PostingRent,
		Title:              "Builder floor near park",
		Description:        "Sunny",
		Status:             models.StatusApproved,
		PostedBy:           models.PostedByBroker,
		Price:              25000,
		MaintenanceCharges: 1500,
		BuiltUpArea:        1350,
		PropertyAge:        3,
		ConstructionStatus: models.ReadyToMove,
		TotalFloors:        4,
		YourFloor:          2,
		Floor:              models.Floor2nd,
		Facing:             models.FacingNorthEast,
		BHK:                models.BHK3,
		Location:           models.PropertyLocation{City: "Mohali", Locality: "Sector 70", Pincode: "160071"},
		Furnishing:         models.FurnishingSemi,
		FurnishingItems:    []string{"Sofa"},
		Amenities:          []string{"Lift", "Park"},
		AdditionalRooms:    []string{},
		CarParking:         &models.CarParking{Type: models.ParkingCovered, Count: 2},
		BikeParking:        true,
		Legal:              models.LegalInfo{ReraApproved: true, ReraNumber: "PBRERA-1"},
		Images:             []string{"/a.jpg", "/b.jpg"},
		Contact:            models.ContactInfo{Name: "Ravi", Mobile: "+911234567890"},
		Attributes:         models.CategoryAttributes{Lift: true, ModularKitchen: true},
		Negotiable:         true,
		CreatedAt:          created,
	}

	got := normalize.Normalize(rowAsRecord(t, RowFromProperty(p)))

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Category, got.Category)
	assert.Equal(t, p.PostingType, got.PostingType)
	assert.Equal(t, p.Status, got.Status)
	assert.Equal(t, p.PostedBy, got.PostedBy)
	assert.Equal(t, p.Price, got.Price)
	assert.Equal(t, p.MaintenanceCharges, got.MaintenanceCharges)
	assert.Equal(t, p.BuiltUpArea, got.BuiltUpArea)
	assert.Equal(t, p.PropertyAge, got.PropertyAge)
	assert.Equal(t, p.Floor, got.Floor)
	assert.Equal(t, p.Facing, got.Facing)
	assert.Equal(t, p.BHK, got.BHK)
	assert.Equal(t, p.Location.Pincode, got.Location.Pincode)
	assert.Equal(t, p.Furnishing, got.Furnishing)
	assert.Equal(t, p.Amenities, got.Amenities)
	assert.Equal(t, p.FurnishingItems, got.FurnishingItems)
	assert.Equal(t, p.CarParking, got.CarParking)
	assert.True(t, got.BikeParking)
	assert.Equal(t, p.Legal, got.Legal)
	assert.Equal(t, p.Images, got.Images)
	assert.Equal(t, p.Contact.Name, got.Contact.Name)
	assert.True(t, got.Attributes.Lift)
	assert.True(t, got.Attributes.ModularKitchen)
	assert.True(t, got.Negotiable)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestPublicQuery(t *testing.T) {
	f := models.EmptyFilterState()
	f.Location.City = "  Kharar "
	q := PublicQuery(f)
	assert.Equal(t, "Kharar", q.City)
	assert.Equal(t, []string{"approved", "published", "active"}, lowerStatuses(q.Statuses))
}

func TestStatusPattern(t *testing.T) {
	assert.Equal(t, "^(approved|published|active)$", statusPattern(models.PublicStatuses))
}
