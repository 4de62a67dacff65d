package conditionals

import (
	"testing"

	"github.com/jwebster45206/animus-mundi/pkg/state"
)

func testState() *state.GameState {
	gs := state.NewGameState()
	gs.Inventory["fox_charm"] = 2
	gs.Flags["met_herald"] = true
	gs.Flags["lost_map"] = false
	gs.Obols = 15
	return gs
}

func TestMeets(t *testing.T) {
	tests := []struct {
		name     string
		requires []Condition
		expected bool
	}{
		{
			name:     "nil requirements",
			requires: nil,
			expected: true,
		},
		{
			name:     "empty requirements",
			requires: []Condition{},
			expected: true,
		},
		{
			name:     "has enough items",
			requires: []Condition{RequireItem("fox_charm", 2)},
			expected: true,
		},
		{
			name:     "not enough items",
			requires: []Condition{RequireItem("fox_charm", 3)},
			expected: false,
		},
		{
			name:     "missing item",
			requires: []Condition{RequireItem("crude_seal", 1)},
			expected: false,
		},
		{
			name:     "flag true",
			requires: []Condition{RequireFlag("met_herald")},
			expected: true,
		},
		{
			name:     "flag true on explicit false",
			requires: []Condition{RequireFlag("lost_map")},
			expected: false,
		},
		{
			name:     "flag true on missing flag",
			requires: []Condition{RequireFlag("never_set")},
			expected: false,
		},
		{
			name:     "flag false on missing flag",
			requires: []Condition{RequireNotFlag("never_set")},
			expected: true,
		},
		{
			name:     "flag false on set flag",
			requires: []Condition{RequireNotFlag("met_herald")},
			expected: false,
		},
		{
			name:     "has exactly enough obols",
			requires: []Condition{RequireObols(15)},
			expected: true,
		},
		{
			name:     "not enough obols",
			requires: []Condition{RequireObols(16)},
			expected: false,
		},
		{
			name: "all conditions met",
			requires: []Condition{
				RequireItem("fox_charm", 1),
				RequireFlag("met_herald"),
				RequireObols(10),
			},
			expected: true,
		},
		{
			name: "one condition fails",
			requires: []Condition{
				RequireItem("fox_charm", 1),
				RequireFlag("never_set"),
			},
			expected: false,
		},
		{
			name:     "unknown condition type fails closed",
			requires: []Condition{{Type: "moon_phase", Key: "full"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := testState()
			if got := Meets(gs, tt.requires); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMeets_NoSideEffects(t *testing.T) {
	gs := testState()
	requires := []Condition{RequireItem("crude_seal", 1), RequireNotFlag("fresh_flag")}

	for i := 0; i < 3; i++ {
		Meets(gs, requires)
	}

	if _, ok := gs.Inventory["crude_seal"]; ok {
		t.Error("Meets must not create inventory entries")
	}
	if _, ok := gs.Flags["fresh_flag"]; ok {
		t.Error("Meets must not create flags")
	}
}

func TestEvaluate_NilState(t *testing.T) {
	if Evaluate(nil, RequireNotFlag("x")) {
		t.Error("Expected nil state to fail every condition")
	}
}

func TestCondition_Known(t *testing.T) {
	if !RequireObols(1).Known() {
		t.Error("has_currency should be known")
	}
	if (Condition{Type: "bogus"}).Known() {
		t.Error("bogus should not be known")
	}
}
