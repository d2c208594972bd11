package database

import (
	"encoding/json"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"property-marketplace/internal/models"
)

// RowFromProperty flattens a normalized listing into its stored columns.
// Reading the row back through the normalizer yields the same listing.
func RowFromProperty(p models.Property) models.ListingRow {
	row := models.ListingRow{
		ID:                 p.ID,
		PropertyType:       string(p.Category),
		PostingType:        string(p.PostingType),
		PropertyTitle:      p.Title,
		Description:        p.Description,
		Price:              formatAmount(p.Price),
		MaintenanceCharges: formatAmount(p.MaintenanceCharges),
		BuiltUpArea:        p.BuiltUpArea,
		CarpetArea:         p.CarpetArea,
		BHKType:            string(p.BHK),
		PropertyStatus:     string(p.ConstructionStatus),
		TotalFloors:        p.TotalFloors,
		YourFloor:          p.YourFloor,
		FacingDirection:    string(p.Facing),
		FurnishingType:     string(p.Furnishing),
		City:               p.Location.City,
		Locality:           p.Location.Locality,
		SocietyName:        p.Location.SocietyName,
		Landmark:           p.Location.Landmark,
		Pincode:            p.Location.Pincode,
		MapLink:            p.Location.MapLink,
		Amenities:          jsonList(p.Amenities),
		Furnishings:        jsonList(p.FurnishingItems),
		AdditionalRooms:    jsonList(p.AdditionalRooms),
		ReraApproved:       p.Legal.ReraApproved,
		ReraNumber:         p.Legal.ReraNumber,
		RegistryAvailable:  p.Legal.RegistryAvailable,
		LoanAvailable:      p.Legal.LoanAvailable,
		TaxPaid:            p.Legal.TaxPaid,
		FloorPlan:          p.FloorPlan,
		OwnerName:          p.Contact.Name,
		OwnerMobile:        p.Contact.Mobile,
		OwnerWhatsapp:      p.Contact.Whatsapp,
		OwnerEmail:         p.Contact.Email,
		PostedBy:           string(p.PostedBy),
		Attributes:         attributesJSON(p),
		Status:             string(p.Status),
		CreatedAt:          p.CreatedAt,
	}
	if p.PropertyAge > 0 {
		row.PropertyAge = strconv.Itoa(p.PropertyAge)
	}
	if p.CarParking != nil {
		row.CarParking = strconv.Itoa(p.CarParking.Count) + " " + string(p.CarParking.Type)
	}
	if p.BikeParking {
		row.BikeParking = "Yes"
	}
	if len(p.Images) > 0 {
		row.MainImage = p.Images[0]
		row.PrimaryImage = p.Images[0]
		row.OtherImages = strings.Join(p.Images[1:], ",")
	}
	return row
}

func formatAmount(n float64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func jsonList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// attributesJSON stores the category attributes and the advanced flags
// that have no column of their own
func attributesJSON(p models.Property) datatypes.JSON {
	attrs := map[string]any{}
	data, err := json.Marshal(p.Attributes)
	if err == nil {
		_ = json.Unmarshal(data, &attrs)
	}
	for k, v := range map[string]bool{
		"newlyListed":     p.NewlyListed,
		"isVerified":      p.Verified,
		"negotiable":      p.Negotiable,
		"petFriendly":     p.PetFriendly,
		"immediateMoveIn": p.ImmediateMoveIn,
	} {
		if v {
			attrs[k] = true
		}
	}
	if p.Floor != "" {
		attrs["floorType"] = string(p.Floor)
	}
	out, err := json.Marshal(attrs)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(out)
}
