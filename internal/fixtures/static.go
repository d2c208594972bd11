// Package fixtures provides the showcase listings that ship with the site.
// Each one is described only by the name of its photo folder, from which
// size, price and location are parsed.
package fixtures

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

// ImageRoot is the public path the photo folders are served under
const ImageRoot = "/Static data property"

// ImagesPerFolder is the number of screenshots in every folder
const ImagesPerFolder = 20

// Folders are the photo folders, in listing order
var Folders = []string{
	"109 sqyd 4 BHK KOTHI 95 lakh Sector 127 Shivalik home 2",
	"114 sqyd 2bhk On kurali highway Near mind tree school 51.90 lakh top 52.90 lakh 1st 53.90 lakh g floor",
	"2 BHK 100 SQYD ONLY GROUND FLOOR 38.90 LAKH SECTOR 127 NEAR DEV HOME",
	"2 BHK 1ST FLOOR 42.90 LAKH SECTOR 127 SHIVALIK GREEN",
	"2 BHK 44.90 LAKH 105 SQYD 46.90 LAKH 113 SQYD SECTOR 115 KHARAR LANDRAN HIGHWAY",
	"92 SQD 3 BHK House 72.90 Lakh Oppposite rangai fram Eden city road",
}

// Folder is what a folder name says about its listing
type Folder struct {
	Name         string
	BHK          string
	AreaValue    float64
	AreaUnit     string
	PriceInLakh  float64
	Sector       string
	Floor        string
	City         string
	Locality     string
	PropertyType models.PropertyCategory
	Images       []string
}

var (
	bhkPattern    = regexp.MustCompile(`(\d+)\s*bhk`)
	areaPattern   = regexp.MustCompile(`(\d+)\s*(sqyd|sq\s*yd|sqft|sq\s*ft)`)
	pricePattern  = regexp.MustCompile(`(\d+\.?\d*)\s*lakh`)
	sectorPattern = regexp.MustCompile(`sector\s*(\d+)`)
)

// ParseFolder extracts listing details from a folder name. Only the first
// price and area are used when a folder lists several units.
func ParseFolder(name string) Folder {
	lower := strings.ToLower(name)
	f := Folder{
		Name:         name,
		City:         "Mohali",
		PropertyType: models.CategoryIndependentHouse,
		Images:       folderImages(name),
	}

	if m := bhkPattern.FindStringSubmatch(lower); m != nil {
		f.BHK = m[1] + " BHK"
	}
	if m := areaPattern.FindStringSubmatch(lower); m != nil {
		f.AreaValue, _ = strconv.ParseFloat(m[1], 64)
		f.AreaUnit = strings.ToUpper(m[2])
	}
	if m := pricePattern.FindStringSubmatch(lower); m != nil {
		f.PriceInLakh, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := sectorPattern.FindStringSubmatch(lower); m != nil {
		f.Sector = "Sector " + m[1]
	}

	switch {
	case strings.Contains(lower, "ground floor"), strings.Contains(lower, "g floor"):
		f.Floor = "Ground Floor"
	case strings.Contains(lower, "1st floor"), strings.Contains(lower, "first floor"):
		f.Floor = "1st Floor"
	case strings.Contains(lower, "top"):
		f.Floor = "Top Floor"
	}

	f.Locality = f.Sector
	switch {
	case strings.Contains(lower, "kurali"):
		f.City = "Kurali"
	case strings.Contains(lower, "kharar"):
		f.City = "Kharar"
	case strings.Contains(lower, "sector 127"):
		f.Locality, f.City = "Sector 127", "Mohali"
	case strings.Contains(lower, "sector 115"):
		f.Locality, f.City = "Sector 115", "Kharar"
	}
	return f
}

// Price returns the asking price in rupees, 0 when the folder has none
func (f Folder) Price() float64 {
	return math.Round(f.PriceInLakh * 100000)
}

// AreaSqft converts the parsed area to square feet
func (f Folder) AreaSqft() float64 {
	if strings.Contains(f.AreaUnit, "YD") {
		return models.UnitSqyard.SquareFeet(f.AreaValue)
	}
	return f.AreaValue
}

func (f Folder) description() string {
	place := f.Locality
	if place == "" {
		place = f.City
	}
	parts := []string{strings.TrimSpace(fmt.Sprintf("%s %s in %s.", f.BHK, f.PropertyType, place))}
	if f.AreaValue > 0 {
		parts = append(parts, fmt.Sprintf("Area: %s %s.", formatNumber(f.AreaValue), f.AreaUnit))
	}
	if f.Floor != "" {
		parts = append(parts, fmt.Sprintf("Floor: %s.", f.Floor))
	}
	if f.PriceInLakh > 0 {
		parts = append(parts, fmt.Sprintf("Price: ₹%s Lakh", formatNumber(f.PriceInLakh)))
	}
	return strings.Join(parts, " ")
}

// Record renders the folder as a raw listing row with the given id
func (f Folder) Record(id string, createdAt time.Time) normalize.RawRecord {
	locality := f.Locality
	if locality == "" {
		locality = f.City
	}
	main := normalize.PlaceholderImage
	if len(f.Images) > 0 {
		main = f.Images[0]
	}
	var others []string
	if len(f.Images) > 1 {
		others = f.Images[1:]
	}

	raw := normalize.RawRecord{
		"id":              id,
		"property_type":   string(f.PropertyType),
		"posting_type":    string(models.PostingSell),
		"property_title":  f.Name,
		"title":           f.Name,
		"description":     f.description(),
		"bhk_type":        f.BHK,
		"price":           formatNumber(f.Price()),
		"city":            f.City,
		"locality":        locality,
		"main_image":      main,
		"primary_image":   main,
		"other_images":    strings.Join(others, ","),
		"status":          string(models.StatusApproved),
		"created_at":      createdAt.UTC().Format(time.RFC3339),
		"property_status": string(models.ReadyToMove),
		"furnishing_type": string(models.FurnishingUnfurnished),
		"amenities":       []any{},
		"furnishings":     []any{},
		"owner_name":      "Property Owner",
		"owner_mobile":    "+919999999999",
	}
	if f.Floor != "" {
		raw["floor"] = f.Floor
	}
	if area := f.AreaSqft(); area > 0 {
		raw["built_up_area"] = area
		raw["plot_area"] = area
		raw["plot_area_unit"] = string(models.UnitSqft)
	}
	return raw
}

// StaticListings returns one raw record per folder. Ids are "static-1"
// onwards and creation times step back an hour per listing from now.
func StaticListings(now time.Time) []normalize.RawRecord {
	out := make([]normalize.RawRecord, len(Folders))
	for i, name := range Folders {
		out[i] = ParseFolder(name).Record(fmt.Sprintf("static-%d", i+1), now.Add(-time.Duration(i)*time.Hour))
	}
	return out
}

// folderImages lists the screenshots of a folder with spaces escaped
func folderImages(name string) []string {
	encoded := strings.Join(strings.Fields(name), "%20")
	images := make([]string, ImagesPerFolder)
	for i := range images {
		images[i] = fmt.Sprintf("%s/%s/Screenshot_%d.png", ImageRoot, encoded, i+1)
	}
	return images
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
