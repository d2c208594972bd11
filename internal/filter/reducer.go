package filter

import (
	"property-marketplace/internal/models"
)

// ActionType names a reducer action
type ActionType string

const (
	ActionSetField      ActionType = "setField"
	ActionToggleAmenity ActionType = "toggleAmenity"
	ActionSetRangeBound ActionType = "setRangeBound"
	ActionReset         ActionType = "reset"
)

// Action is one change to a FilterState. Field and Bound use the JSON
// names of FilterState, with dotted keys for nested values such as
// "location.city" or "parking.cars".
type Action struct {
	Type    ActionType           `json:"type"`
	Field   string               `json:"field,omitempty"`
	Bound   string               `json:"bound,omitempty"`
	Value   any                  `json:"value,omitempty"`
	Amenity models.CommonAmenity `json:"amenity,omitempty"`
}

func SetField(field string, value any) Action {
	return Action{Type: ActionSetField, Field: field, Value: value}
}

func ToggleAmenity(a models.CommonAmenity) Action {
	return Action{Type: ActionToggleAmenity, Amenity: a}
}

func SetRangeBound(field, bound string, value any) Action {
	return Action{Type: ActionSetRangeBound, Field: field, Bound: bound, Value: value}
}

func Reset() Action {
	return Action{Type: ActionReset}
}

// Apply applies action to state and returns the new state. The input is
// never modified. Unknown actions, unknown fields and values of the wrong
// type leave the state unchanged.
func Apply(state models.FilterState, action Action) models.FilterState {
	switch action.Type {
	case ActionSetField:
		return setField(state, action.Field, action.Value)
	case ActionToggleAmenity:
		return toggleAmenity(state, action.Amenity)
	case ActionSetRangeBound:
		return setRangeBound(state, action.Field, action.Bound, action.Value)
	case ActionReset:
		return models.EmptyFilterState()
	default:
		return state.Clone()
	}
}

// Assign sets a field without the toggle-off behaviour of setField
func Assign(state models.FilterState, field string, value any) models.FilterState {
	acc, ok := accessors[field]
	if !ok {
		return state.Clone()
	}
	next := state.Clone()
	if !acc.set(&next, value) {
		return state.Clone()
	}
	return next
}

// setField sets a field, or clears it when value equals the current value
func setField(state models.FilterState, field string, value any) models.FilterState {
	acc, ok := accessors[field]
	if !ok {
		return state.Clone()
	}
	next := state.Clone()
	if !acc.set(&next, value) {
		return state.Clone()
	}
	// the stored value may predate canonicalization
	current := state.Clone()
	acc.set(&current, acc.get(&state))
	if acc.get(&next) == acc.get(&current) {
		acc.clear(&next)
	}
	return next
}

func toggleAmenity(state models.FilterState, a models.CommonAmenity) models.FilterState {
	next := state.Clone()
	if a == "" {
		return next
	}
	if !state.HasAmenity(a) {
		next.Amenities = append(next.Amenities, a)
		return next
	}
	kept := make([]models.CommonAmenity, 0, len(next.Amenities))
	for _, x := range next.Amenities {
		if x != a {
			kept = append(kept, x)
		}
	}
	next.Amenities = kept
	return next
}

func setRangeBound(state models.FilterState, field, bound string, value any) models.FilterState {
	switch field {
	case "priceRange", "plotSize":
	default:
		return state.Clone()
	}
	return Assign(state, field+"."+bound, value)
}
