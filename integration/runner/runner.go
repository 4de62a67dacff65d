package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/jwebster45206/animus-mundi/pkg/content"
	"github.com/jwebster45206/animus-mundi/pkg/engine"
	"github.com/jwebster45206/animus-mundi/pkg/results"
	"github.com/jwebster45206/animus-mundi/pkg/save"
	"github.com/jwebster45206/animus-mundi/pkg/state"
	"github.com/jwebster45206/animus-mundi/pkg/storage"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// fixedRand returns the same sample for every chance roll
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// Runner plays scripted test suites against loaded content, one fresh
// engine and in-memory save slot per suite
type Runner struct {
	Content           *content.Content
	Logger            func(format string, args ...any)
	ErrorHandlingMode ErrorHandlingMode
	EngineLogger      *slog.Logger
}

// NewRunner creates a new test runner
func NewRunner(c *content.Content) *Runner {
	return &Runner{
		Content:           c,
		Logger:            func(string, ...any) {},
		ErrorHandlingMode: ErrorHandlingContinue,
		EngineLogger:      slog.New(slog.DiscardHandler),
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(data, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	// If this is not a sequence, return it as-is
	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	// This is a sequence - load all referenced cases
	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	store := storage.NewMockStorage()
	if suite.SeedGameState != nil {
		data, err := suite.SeedGameState.Encode()
		if err != nil {
			result.Error = fmt.Errorf("failed to seed gamestate: %w", err)
			return result, result.Error
		}
		store.Put(save.DefaultKey, string(data))
	}

	idSeq := 0
	e := engine.New(r.Content, save.NewAdapter(store, r.EngineLogger),
		engine.WithLogger(r.EngineLogger),
		engine.WithRand(fixedRand(suite.Seed)),
		engine.WithIDGenerator(func() string {
			idSeq++
			return fmt.Sprintf("%s-%d", suite.Name, idSeq)
		}),
	)
	e.Start(ctx)

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.executeStep(ctx, e, step)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			// Break only if error handling mode is "exit"
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	// The slot must hold exactly the live state after the last step
	if result.Error == nil {
		if persisted := save.NewAdapter(store, r.EngineLogger).Load(ctx); !sameState(persisted, e.State()) {
			result.Error = fmt.Errorf("persisted state diverged from live state")
		}
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// executeStep performs one player action and checks its expectations
func (r *Runner) executeStep(ctx context.Context, e *engine.Engine, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{
		StepName: step.Name,
	}

	var (
		lines []results.Line
		err   error
	)
	switch {
	case step.Action == ResetAction:
		e.Reset(ctx)
	case step.Choose != nil:
		lines, err = e.Choose(ctx, *step.Choose)
	case step.Craft != "":
		lines, err = e.Craft(ctx, step.Craft)
	default:
		result.Error = fmt.Errorf("step has no action")
		return result
	}

	for _, l := range lines {
		result.Lines = append(result.Lines, l.Text)
	}

	if err := checkError(step.Expectations.Error, err); err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	if err := r.checkExpectations(step.Expectations, e, result.Lines); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

func checkError(expected string, actual error) error {
	switch {
	case expected == "" && actual != nil:
		return fmt.Errorf("unexpected error: %w", actual)
	case expected != "" && actual == nil:
		return fmt.Errorf("expected error '%s', got none", expected)
	case expected != "" && !strings.Contains(actual.Error(), expected):
		return fmt.Errorf("expected error '%s', got '%v'", expected, actual)
	}
	return nil
}

// checkExpectations validates the test expectations against the engine after a step
func (r *Runner) checkExpectations(exp Expectations, e *engine.Engine, lines []string) error {
	gs := e.State()

	if exp.Node != nil && gs.CurrentNodeID != *exp.Node {
		return fmt.Errorf("expected node %s, got %s", *exp.Node, gs.CurrentNodeID)
	}
	if exp.Humanity != nil && gs.Humanity != *exp.Humanity {
		return fmt.Errorf("expected humanity %d, got %d", *exp.Humanity, gs.Humanity)
	}
	if exp.Obols != nil && gs.Obols != *exp.Obols {
		return fmt.Errorf("expected obols %d, got %d", *exp.Obols, gs.Obols)
	}

	// Full inventory check
	if exp.Inventory != nil && !maps.Equal(exp.Inventory, gs.Inventory) {
		return fmt.Errorf("expected inventory %v, got %v", exp.Inventory, gs.Inventory)
	}

	for key, want := range exp.Flags {
		if gs.Flag(key) != want {
			return fmt.Errorf("expected flag %s to be %t", key, want)
		}
	}
	for tag, want := range exp.IntelTags {
		if got := gs.IntelCount(tag); got != want {
			return fmt.Errorf("expected intel tag %s at %d, got %d", tag, want, got)
		}
	}
	for _, species := range exp.Discovered {
		if !gs.DiscoveredSpecies[species] {
			return fmt.Errorf("expected species %s to be discovered", species)
		}
	}
	for species, want := range exp.Bound {
		if got := len(gs.BoundOfSpecies(species)); got != want {
			return fmt.Errorf("expected %d bound %s, got %d", want, species, got)
		}
	}
	for key, want := range exp.Leads {
		lead, ok := gs.Leads[key]
		if !ok {
			return fmt.Errorf("expected lead %s to exist", key)
		}
		if string(lead.Status) != want {
			return fmt.Errorf("expected lead %s to be %s, got %s", key, want, lead.Status)
		}
	}

	if exp.Lines != nil && !slices.Equal(exp.Lines, lines) {
		return fmt.Errorf("expected lines %q, got %q", exp.Lines, lines)
	}
	for _, want := range exp.LinesContain {
		if !slices.Contains(lines, want) {
			return fmt.Errorf("expected a line '%s', got %q", want, lines)
		}
	}

	if len(exp.Identified) > 0 {
		identified := make(map[string]bool)
		for _, g := range e.Grimoire() {
			identified[g.Entry.ID] = g.Identified
		}
		for _, id := range exp.Identified {
			if !identified[id] {
				return fmt.Errorf("expected grimoire entry %s to be identified", id)
			}
		}
	}

	return nil
}

func sameState(a, b *state.GameState) bool {
	ea, errA := a.Encode()
	eb, errB := b.Encode()
	return errA == nil && errB == nil && string(ea) == string(eb)
}
