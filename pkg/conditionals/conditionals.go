package conditionals

import "github.com/jwebster45206/animus-mundi/pkg/state"

// Meets reports whether every requirement holds against gs.
// A nil or empty list is always met. Unknown condition types fail closed.
// Meets never modifies gs, so it is safe to call for rendering as well as gating.
func Meets(gs *state.GameState, requires []Condition) bool {
	for _, c := range requires {
		if !Evaluate(gs, c) {
			return false
		}
	}
	return true
}

// Evaluate checks a single condition
func Evaluate(gs *state.GameState, c Condition) bool {
	if gs == nil {
		return false
	}

	switch c.Type {
	case HasItem:
		return gs.ItemQty(c.ItemID) >= c.Qty
	case FlagTrue:
		return gs.Flags[c.Key]
	case FlagFalse:
		// A missing flag counts as false
		return !gs.Flags[c.Key]
	case HasCurrency:
		return gs.Obols >= c.Qty
	default:
		return false
	}
}
