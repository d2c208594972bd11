package models

import (
	"time"

	"gorm.io/datatypes"
)

// ListingRow is the stored shape of a listing. Column names follow the
// hosted database the listings were originally captured in; the row is
// read back as a raw record and passed through the normalizer.
type ListingRow struct {
	ID            string `gorm:"type:varchar(64);primaryKey" json:"id"`
	PropertyType  string `gorm:"type:varchar(40);index" json:"property_type"`
	PostingType   string `gorm:"type:varchar(10);index" json:"posting_type"`
	PropertyTitle string `gorm:"type:text" json:"property_title"`
	Description   string `gorm:"type:text" json:"description"`

	// Price and area
	Price              string  `gorm:"type:varchar(40)" json:"price"`
	MaintenanceCharges string  `gorm:"type:varchar(40)" json:"maintenance_charges"`
	BuiltUpArea        float64 `gorm:"type:decimal(12,2)" json:"built_up_area"`
	CarpetArea         float64 `gorm:"type:decimal(12,2)" json:"carpet_area"`

	// Building
	BHKType         string `gorm:"type:varchar(20)" json:"bhk_type"`
	PropertyStatus  string `gorm:"type:varchar(30)" json:"property_status"`
	PropertyAge     string `gorm:"type:varchar(20)" json:"property_age"`
	TotalFloors     int    `json:"total_floors"`
	YourFloor       int    `json:"your_floor"`
	FacingDirection string `gorm:"type:varchar(20)" json:"facing_direction"`
	FurnishingType  string `gorm:"type:varchar(30)" json:"furnishing_type"`

	// Location
	City        string `gorm:"type:varchar(100);index" json:"city"`
	Locality    string `gorm:"type:varchar(200)" json:"locality"`
	SocietyName string `gorm:"type:varchar(200)" json:"society_name"`
	Landmark    string `gorm:"type:varchar(200)" json:"landmark"`
	Pincode     string `gorm:"type:varchar(10)" json:"pincode"`
	MapLink     string `gorm:"type:text" json:"map_link"`

	// JSON columns, stored as the client sent them
	Amenities       datatypes.JSON `json:"amenities"`
	Furnishings     datatypes.JSON `json:"furnishings"`
	AdditionalRooms datatypes.JSON `json:"additional_rooms"`

	CarParking  string `gorm:"type:varchar(50)" json:"car_parking"`
	BikeParking string `gorm:"type:varchar(10)" json:"bike_parking"`

	// Legal
	ReraApproved      bool   `json:"rera_approved"`
	ReraNumber        string `gorm:"type:varchar(50)" json:"rera_number"`
	RegistryAvailable bool   `json:"registry_available"`
	LoanAvailable     bool   `json:"loan_available"`
	TaxPaid           bool   `json:"tax_paid"`

	// Media
	MainImage    string `gorm:"type:text" json:"main_image"`
	PrimaryImage string `gorm:"type:text" json:"primary_image"`
	OtherImages  string `gorm:"type:text" json:"other_images"`
	FloorPlan    string `gorm:"type:text" json:"floor_plan"`

	// Contact
	OwnerName     string `gorm:"type:varchar(100)" json:"owner_name"`
	OwnerMobile   string `gorm:"type:varchar(20)" json:"owner_mobile"`
	OwnerWhatsapp string `gorm:"type:varchar(20)" json:"owner_whatsapp"`
	OwnerEmail    string `gorm:"type:varchar(100)" json:"owner_email"`
	PostedBy      string `gorm:"type:varchar(10)" json:"posted_by"`

	// Category attributes and flags not covered by a dedicated column
	Attributes datatypes.JSON `json:"attributes"`

	Status    string    `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_listings_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName keeps the table name stable across drivers
func (ListingRow) TableName() string {
	return "properties"
}
