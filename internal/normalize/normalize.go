// Package normalize maps heterogeneous raw listing records onto
// models.Property. Every logical field is read through an ordered chain of
// candidate keys; the first present value wins.
package normalize

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"property-marketplace/internal/models"
)

var (
	idChain          = keys(asID, "id", "property_id", "_id", "propertyId")
	titleChain       = keys(asText, "property_title", "propertyTitle", "title")
	descriptionChain = keys(asText, "description", "property_description", "propertyDescription")
	categoryChain    = keys(asText, "property_type", "propertyType", "property_category", "category")
	postingChain     = keys(asText, "posting_type", "postingType", "listing_type", "listingType")
	statusChain      = keys(asText, "status", "verification_status", "verificationStatus")
	postedByChain    = keys(asText, "posted_by", "postedBy", "listed_by", "listedBy")

	priceChain       = keys(asNumber, "price", "expected_price", "expectedPrice", "monthly_rent", "monthlyRent")
	maintenanceChain = keys(asNumber, "maintenance_charges", "maintenanceCharges", "maintenance_fee", "maintenance")
	builtUpChain     = keys(asNumber, "built_up_area", "builtUpArea", "area_sqft", "area")
	carpetChain      = append(keys(asNumber, "carpet_area", "carpetArea"),
		Candidate[float64]{Key: "area_sqm", Coerce: func(v any) (float64, bool) {
			n, ok := asNumber(v)
			return n * 10.764, ok
		}})

	cityChain     = keys(asText, "city", "location.city")
	localityChain = keys(asText, "locality", "location.locality", "area_name")
	societyChain  = keys(asText, "society_name", "societyName", "project_name", "location.societyName")
	landmarkChain = keys(asText, "landmark", "location.landmark")
	pincodeChain  = keys(asText, "pincode", "zipcode", "pin_code", "location.pincode")
	mapLinkChain  = keys(asText, "map_link", "mapLink", "location.mapLink")

	furnishingChain   = keys(asText, "furnishing_type", "furnished_status", "furnishingType", "furnishing")
	constructionChain = keys(asText, "property_status", "possession_status", "propertyStatus", "constructionStatus", "construction_status")
	ageChain          = keys(asLeadingInt, "property_age", "age_of_property", "propertyAge")
	totalFloorsChain  = keys(asInt, "total_floors", "totalFloors")
	yourFloorChain    = keys(asInt, "your_floor", "floor_number", "yourFloor")
	floorLabelChain   = keys(asText, "floor", "floor_type", "floorType")
	facingChain       = keys(asText, "facing", "facing_direction", "facingDirection")
	bhkChain          = keys(asText, "bhk_type", "bhkType", "bhk")

	amenitiesChain  = keys(asList, "amenities", "society_amenities", "societyAmenities")
	furnishingsList = keys(asList, "furnishings", "furnishing_items", "furnishingItems")
	roomsChain      = keys(asList, "additional_rooms", "additionalRooms")

	reraChain     = keys(asBool, "rera_approved", "reraApproved", "legal.reraApproved")
	reraNumChain  = keys(asText, "rera_number", "reraNumber", "legal.reraNumber")
	registryChain = keys(asBool, "registry_available", "registryAvailable", "legal.registryAvailable")
	loanChain     = keys(asBool, "loan_available", "loanAvailable", "legal.loanAvailable")
	taxChain      = keys(asBool, "tax_paid", "taxPaid", "legal.taxPaid")

	ownerNameChain   = keys(asText, "owner_name", "ownerName", "contact.name", "contact_name")
	ownerMobileChain = keys(asText, "owner_mobile", "ownerMobile", "contact.mobile", "contact_number", "phone")
	ownerWAChain     = keys(asText, "owner_whatsapp", "ownerWhatsapp", "contact.whatsapp")
	ownerEmailChain  = keys(asText, "owner_email", "ownerEmail", "contact.email", "email")

	floorPlanChain = keys(asText, "floor_plan", "floorPlan")
	createdChain   = keys(asTime, "created_at", "createdAt", "posted_at", "postedAt")

	newlyListedChain = keys(asBool, "newly_listed", "newlyListed", "is_new")
	verifiedChain    = keys(asBool, "is_verified", "isVerified", "verified")
	negotiableChain  = keys(asBool, "negotiable", "price_negotiable", "is_negotiable", "isNegotiable", "priceNegotiable")
	petChain         = keys(asBool, "pet_friendly", "petFriendly")
	moveInChain      = keys(asBool, "immediate_move_in", "immediateMoveIn")
)

// Normalize converts raw into the canonical listing. It never fails:
// missing or malformed values fall back to defaults.
func Normalize(raw RawRecord) models.Property {
	if raw == nil {
		raw = RawRecord{}
	}
	p := models.Property{
		ID:              recordID(raw),
		Category:        category(raw),
		PostingType:     models.PostingSell,
		Status:          models.StatusPending,
		PostedBy:        models.PostedByOwner,
		Furnishing:      models.FurnishingUnfurnished,
		FurnishingItems: []string{},
		Amenities:       []string{},
		AdditionalRooms: []string{},
		Images:          images(raw),
	}

	p.Title, _ = First(raw, titleChain)
	p.Description, _ = First(raw, descriptionChain)
	if s, ok := First(raw, postingChain); ok {
		p.PostingType = models.ParsePostingType(s)
	}
	if s, ok := First(raw, statusChain); ok {
		if st, ok := models.ParseListingStatus(s); ok {
			p.Status = st
		} else {
			p.Status = models.ListingStatus(s)
		}
	}
	if s, ok := First(raw, postedByChain); ok {
		if pb, ok := models.ParsePostedBy(s); ok {
			p.PostedBy = pb
		}
	}

	p.Price, _ = First(raw, priceChain)
	p.MaintenanceCharges, _ = First(raw, maintenanceChain)
	p.BuiltUpArea, _ = First(raw, builtUpChain)
	p.CarpetArea, _ = First(raw, carpetChain)

	p.Location.City, _ = First(raw, cityChain)
	p.Location.Locality, _ = First(raw, localityChain)
	p.Location.SocietyName, _ = First(raw, societyChain)
	p.Location.Landmark, _ = First(raw, landmarkChain)
	p.Location.Pincode, _ = First(raw, pincodeChain)
	p.Location.MapLink, _ = First(raw, mapLinkChain)

	if s, ok := First(raw, furnishingChain); ok {
		if ft, ok := models.ParseFurnishing(s); ok {
			p.Furnishing = ft
		} else {
			p.Furnishing = models.FurnishingType(s)
		}
	}
	if s, ok := First(raw, constructionChain); ok {
		p.ConstructionStatus, _ = models.ParseConstructionStatus(s)
	}
	p.PropertyAge, _ = First(raw, ageChain)
	p.TotalFloors, _ = First(raw, totalFloorsChain)
	p.YourFloor, _ = First(raw, yourFloorChain)
	p.Floor = floorLabel(raw, p.YourFloor)
	if s, ok := First(raw, facingChain); ok {
		p.Facing, _ = models.ParseFacing(s)
	}
	if s, ok := First(raw, bhkChain); ok {
		if b, ok := models.ParseBHK(s); ok {
			p.BHK = b
		}
	}

	if l, ok := First(raw, amenitiesChain); ok {
		p.Amenities = l
	}
	if l, ok := First(raw, furnishingsList); ok {
		p.FurnishingItems = l
	}
	if l, ok := First(raw, roomsChain); ok {
		p.AdditionalRooms = l
	}
	p.CarParking = carParking(raw)
	p.BikeParking, _ = First(raw, keys(asBool, "bike_parking", "bikeParking"))

	p.Legal.ReraApproved, _ = First(raw, reraChain)
	p.Legal.ReraNumber, _ = First(raw, reraNumChain)
	p.Legal.RegistryAvailable, _ = First(raw, registryChain)
	p.Legal.LoanAvailable, _ = First(raw, loanChain)
	p.Legal.TaxPaid, _ = First(raw, taxChain)

	p.Contact.Name, _ = First(raw, ownerNameChain)
	p.Contact.Mobile, _ = First(raw, ownerMobileChain)
	p.Contact.Whatsapp, _ = First(raw, ownerWAChain)
	p.Contact.Email, _ = First(raw, ownerEmailChain)
	p.Contact.IsOwner = p.PostedBy == models.PostedByOwner

	if s, ok := First(raw, floorPlanChain); ok && IsValidImageURL(s) {
		p.FloorPlan = s
	}
	p.CreatedAt, _ = First(raw, createdChain)

	p.Attributes = attributes(raw)

	p.NewlyListed, _ = First(raw, newlyListedChain)
	p.Verified, _ = First(raw, verifiedChain)
	p.Negotiable, _ = First(raw, negotiableChain)
	p.PetFriendly, _ = First(raw, petChain)
	p.ImmediateMoveIn, _ = First(raw, moveInChain)

	return p
}

// NormalizeAll normalizes a batch, preserving order
func NormalizeAll(raws []RawRecord) []models.Property {
	out := make([]models.Property, len(raws))
	for i, r := range raws {
		out[i] = Normalize(r)
	}
	return out
}

// asID accepts strings and numbers; numbers print without a fraction
func asID(v any) (string, bool) {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f), true
	}
	return asText(v)
}

// recordID falls back to a content hash so that a record without an id
// keeps the same identity across loads
func recordID(raw RawRecord) string {
	if id, ok := First(raw, idChain); ok {
		return id
	}
	data, err := json.Marshal(raw)
	if err != nil {
		data = []byte(fmt.Sprint(raw))
	}
	return fmt.Sprintf("%x", md5.Sum(data))
}

func category(raw RawRecord) models.PropertyCategory {
	s, ok := First(raw, categoryChain)
	if !ok {
		return models.CategoryFlatApartment
	}
	if c, ok := models.ParseCategory(s); ok {
		return c
	}
	return models.PropertyCategory(s)
}

func floorLabel(raw RawRecord, yourFloor int) models.FloorType {
	if s, ok := First(raw, floorLabelChain); ok {
		if ft, ok := models.ParseFloorType(s); ok {
			return ft
		}
	}
	if _, ok := First(raw, yourFloorChain); ok {
		return models.FloorTypeForLevel(yourFloor)
	}
	return ""
}

var digitRun = regexp.MustCompile(`\d+`)

// carParking derives the car parking spot count from a numeric field or a
// free-text description. nil means no parking.
func carParking(raw RawRecord) *models.CarParking {
	count, _ := First(raw, keys(asLeadingInt, "parking_spaces", "parkingSpaces", "parking", "carParking.count"))
	text, _ := First(raw, keys(asText, "car_parking", "carParking", "carParking.type", "parking_type"))
	lower := strings.ToLower(text)

	if count == 0 && text != "" {
		if m := digitRun.FindString(text); m != "" {
			count, _ = asInt(m)
		} else if strings.Contains(lower, "yes") || strings.Contains(lower, "covered") {
			count = 1
		}
	}
	if count <= 0 {
		return nil
	}
	kind := models.ParkingOpen
	if strings.Contains(lower, "covered") {
		kind = models.ParkingCovered
	}
	return &models.CarParking{Type: kind, Count: count}
}
