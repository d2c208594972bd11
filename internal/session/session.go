// Package session holds the browsing-session state shared by the search
// pages: destination, dates, guests and the current filter selection.
package session

import (
	"time"

	"property-marketplace/internal/filter"
	"property-marketplace/internal/models"
)

const (
	MaxAdults     = 16
	MaxChildren   = 5
	MaxInfants    = 5
	DefaultAdults = 0
)

type Guests struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// State is the session value. The zero value is a fresh session.
type State struct {
	Location     string                  `json:"location"`
	CheckIn      *time.Time              `json:"checkIn,omitempty"`
	CheckOut     *time.Time              `json:"checkOut,omitempty"`
	Guests       Guests                  `json:"guests"`
	PropertyType models.PropertyCategory `json:"propertyType,omitempty"`
	Furnishing   models.FurnishingType   `json:"furnishing,omitempty"`
	Filters      models.FilterState      `json:"filters"`
}

// New returns a fresh session
func New() State {
	return State{Filters: models.EmptyFilterState()}
}

type ActionType string

const (
	SetLocation           ActionType = "SET_LOCATION"
	SetCheckIn            ActionType = "SET_CHECK_IN"
	SetCheckOut           ActionType = "SET_CHECK_OUT"
	SetGuests             ActionType = "SET_GUESTS"
	ResetDates            ActionType = "RESET_DATES"
	ResetGuests           ActionType = "RESET_GUESTS"
	IncreaseAdults        ActionType = "INCREASE_ADULTS"
	IncreaseChildren      ActionType = "INCREASE_CHILDREN"
	IncreaseInfants       ActionType = "INCREASE_INFANTS"
	DecreaseAdults        ActionType = "DECREASE_ADULTS"
	DecreaseChildren      ActionType = "DECREASE_CHILDREN"
	DecreaseInfants       ActionType = "DECREASE_INFANTS"
	SetPropertyType       ActionType = "SET_PROPERTY_TYPE"
	SetFurnishing         ActionType = "SET_FURNISHING"
	SetFilterState        ActionType = "SET_FILTER_STATE"
	ResetFilters          ActionType = "RESET_FILTERS"
	SetPriceRange         ActionType = "SET_PRICE_RANGE"
	SetConstructionStatus ActionType = "SET_CONSTRUCTION_STATUS"
	SetPostedBy           ActionType = "SET_POSTED_BY"
	ToggleAmenity         ActionType = "TOGGLE_AMENITY"
	SetBHK                ActionType = "SET_BHK"
	SetFloor              ActionType = "SET_FLOOR"
	SetFacing             ActionType = "SET_FACING"
	SetParking            ActionType = "SET_PARKING"
	Filter                ActionType = "FILTER"
)

// Action is a session transition. Payload must have the type the action
// expects (string, time.Time, Guests, models.FilterState,
// models.PriceRange, models.ParkingFilter, models.CommonAmenity or
// filter.Action); anything else leaves the state unchanged.
type Action struct {
	Type    ActionType `json:"type"`
	Payload any        `json:"payload,omitempty"`
}

// Reduce returns the state after action. It is pure: the same state and
// action always give the same result and the input is never modified.
func Reduce(s State, a Action) State {
	next := s
	next.Filters = s.Filters.Clone()

	switch a.Type {
	case SetLocation:
		if v, ok := a.Payload.(string); ok {
			next.Location = v
		}
	case SetCheckIn:
		next.CheckIn = timePayload(a.Payload, s.CheckIn)
	case SetCheckOut:
		next.CheckOut = timePayload(a.Payload, s.CheckOut)
	case SetGuests:
		if g, ok := a.Payload.(Guests); ok {
			next.Guests = clampGuests(g)
		}
	case ResetDates:
		next.CheckIn, next.CheckOut = nil, nil
	case ResetGuests:
		next.Guests = Guests{Adults: DefaultAdults}

	case IncreaseAdults:
		next.Guests.Adults = min(s.Guests.Adults+1, MaxAdults)
	case IncreaseChildren:
		next.Guests.Children = min(s.Guests.Children+1, MaxChildren)
		next.Guests = promoteAdult(next.Guests)
	case IncreaseInfants:
		next.Guests.Infants = min(s.Guests.Infants+1, MaxInfants)
		next.Guests = promoteAdult(next.Guests)
	case DecreaseAdults:
		if s.Guests.Adults <= 1 && (s.Guests.Children > 0 || s.Guests.Infants > 0) {
			return next
		}
		next.Guests.Adults = max(s.Guests.Adults-1, 0)
	case DecreaseChildren:
		next.Guests.Children = max(s.Guests.Children-1, 0)
	case DecreaseInfants:
		next.Guests.Infants = max(s.Guests.Infants-1, 0)

	case SetPropertyType:
		if v, ok := stringPayload(a.Payload); ok {
			next.PropertyType = models.PropertyCategory(v)
			next.Filters = filter.Assign(next.Filters, "propertyType", v)
		}
	case SetFurnishing:
		if v, ok := stringPayload(a.Payload); ok {
			next.Furnishing = models.FurnishingType(v)
			next.Filters = filter.Assign(next.Filters, "furnishing", v)
		}
	case SetFilterState:
		if f, ok := a.Payload.(models.FilterState); ok {
			next.Filters = f.Clone()
		}
	case ResetFilters:
		next.Filters = filter.Apply(next.Filters, filter.Reset())
		next.PropertyType, next.Furnishing = "", ""
	case SetPriceRange:
		if r, ok := a.Payload.(models.PriceRange); ok {
			next.Filters.PriceRange = r
		}
	case SetConstructionStatus:
		next.Filters = assignString(next.Filters, "constructionStatus", a.Payload)
	case SetPostedBy:
		next.Filters = assignString(next.Filters, "postedBy", a.Payload)
	case ToggleAmenity:
		if v, ok := stringPayload(a.Payload); ok {
			next.Filters = filter.Apply(next.Filters, filter.ToggleAmenity(models.CommonAmenity(v)))
		}
	case SetBHK:
		next.Filters = assignString(next.Filters, "bhk", a.Payload)
	case SetFloor:
		next.Filters = assignString(next.Filters, "floor", a.Payload)
	case SetFacing:
		next.Filters = assignString(next.Filters, "facing", a.Payload)
	case SetParking:
		if p, ok := a.Payload.(models.ParkingFilter); ok {
			next.Filters.Parking = p
		}
	case Filter:
		if fa, ok := a.Payload.(filter.Action); ok {
			next.Filters = filter.Apply(next.Filters, fa)
		}
	}
	return next
}

// Replay folds actions over initial
func Replay(initial State, actions ...Action) State {
	s := initial
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

// clampGuests bounds every counter and gives dependents an adult
func clampGuests(g Guests) Guests {
	g.Adults = clamp(g.Adults, 0, MaxAdults)
	g.Children = clamp(g.Children, 0, MaxChildren)
	g.Infants = clamp(g.Infants, 0, MaxInfants)
	return promoteAdult(g)
}

func promoteAdult(g Guests) Guests {
	if g.Adults == 0 && (g.Children > 0 || g.Infants > 0) {
		g.Adults = 1
	}
	return g
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func timePayload(p any, current *time.Time) *time.Time {
	switch t := p.(type) {
	case time.Time:
		return &t
	case *time.Time:
		if t == nil {
			return nil
		}
		v := *t
		return &v
	case nil:
		return nil
	}
	return current
}

// stringPayload accepts plain strings and the typed enum strings
func stringPayload(p any) (string, bool) {
	switch v := p.(type) {
	case string:
		return v, true
	case models.PropertyCategory:
		return string(v), true
	case models.FurnishingType:
		return string(v), true
	case models.ConstructionStatus:
		return string(v), true
	case models.PostedBy:
		return string(v), true
	case models.CommonAmenity:
		return string(v), true
	case models.BHKType:
		return string(v), true
	case models.FloorType:
		return string(v), true
	case models.FacingDirection:
		return string(v), true
	}
	return "", false
}

func assignString(f models.FilterState, field string, payload any) models.FilterState {
	v, ok := stringPayload(payload)
	if !ok {
		return f
	}
	return filter.Assign(f, field, v)
}
