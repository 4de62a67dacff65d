package runner

import (
	"time"

	"github.com/jwebster45206/animus-mundi/pkg/state"
)

// Special actions besides choosing
const (
	ResetAction = "RESET"
)

// TestSuite defines a scripted playthrough over a content directory.
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name          string           `json:"name"`
	Seed          float64          `json:"seed,omitempty"`            // Fixed sample for chance effects
	SeedGameState *state.GameState `json:"seed_game_state,omitempty"` // Used for regular tests
	Steps         []TestStep       `json:"steps,omitempty"`           // Used for regular tests
	Cases         []string         `json:"cases,omitempty"`           // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep is one player action and its expected outcomes. Exactly one of
// Choose, Craft or Action is set.
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	Choose       *int         `json:"choose,omitempty"` // zero-based choice index
	Craft        string       `json:"craft,omitempty"`  // recipe id
	Action       string       `json:"action,omitempty"` // ResetAction
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	// GameState properties - aligned with pkg/state/gamestate.go
	Node       *string           `json:"node,omitempty"`
	Humanity   *int              `json:"humanity,omitempty"`
	Obols      *int              `json:"obols,omitempty"`
	Inventory  map[string]int    `json:"inventory,omitempty"` // Full inventory contents
	Flags      map[string]bool   `json:"flags,omitempty"`
	IntelTags  map[string]int    `json:"intel_tags,omitempty"`
	Discovered []string          `json:"discovered,omitempty"`
	Bound      map[string]int    `json:"bound,omitempty"` // species id -> instance count
	Leads      map[string]string `json:"leads,omitempty"` // lead key -> status

	// Result lines
	Lines        []string `json:"lines,omitempty"` // exact, in order
	LinesContain []string `json:"lines_contain,omitempty"`
	Error        string   `json:"error,omitempty"`
	Identified   []string `json:"identified,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName string
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
	Lines    []string
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
}
