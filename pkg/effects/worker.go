package effects

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/animus-mundi/pkg/state"
)

// RandomSource yields uniform samples in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Worker applies effect batches to game state. It never mutates the state it
// is given: Apply returns a new value and the caller discards the old one.
type Worker struct {
	recipes RecipeBook
	rand    RandomSource
	now     func() time.Time
	newID   func() string
	logger  *slog.Logger
}

// NewWorker creates a worker that resolves craft effects against recipes.
// recipes may be nil, in which case every craft is a no-op.
func NewWorker(recipes RecipeBook, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{
		recipes: recipes,
		rand:    globalRand{},
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  logger,
	}
}

// WithRand sets the random source used by chance effects
// Returns the Worker for method chaining
func (w *Worker) WithRand(r RandomSource) *Worker {
	w.rand = r
	return w
}

// WithClock sets the clock used to timestamp intel entries and leads
// Returns the Worker for method chaining
func (w *Worker) WithClock(now func() time.Time) *Worker {
	w.now = now
	return w
}

// WithIDGenerator sets the generator for bound instance and intel entry IDs
// Returns the Worker for method chaining
func (w *Worker) WithIDGenerator(newID func() string) *Worker {
	w.newID = newID
	return w
}

// Apply applies effects in order and returns the resulting state. Later effects
// see the changes made by earlier ones. Unknown effect types are skipped.
func (w *Worker) Apply(gs *state.GameState, effects []Effect) *state.GameState {
	var next *state.GameState
	if gs == nil {
		next = state.NewGameState()
	} else {
		next = gs.Clone()
	}

	for _, e := range effects {
		w.apply(next, e)
	}
	return next
}

// apply mutates next, which must be a value owned by the current Apply call
func (w *Worker) apply(next *state.GameState, e Effect) {
	switch e.Type {
	case HumanityDelta:
		next.Humanity = clamp(addSat(next.Humanity, e.Delta), state.HumanityMin, state.HumanityMax)

	case ItemAdd:
		addItem(next, e.ItemID, e.Qty)

	case ItemRemove:
		addItem(next, e.ItemID, negSat(e.Qty))

	case FlagSet:
		next.Flags[e.Key] = e.Value

	case DiscoverSpecies:
		next.DiscoveredSpecies[e.SpeciesID] = true

	case BindSpecies:
		w.handleBind(next, e)

	case Craft:
		w.handleCraft(next, e)

	case IntelAdd:
		qty := e.Qty
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			// Intel counters only ever go up
			w.logger.Warn("Ignoring negative intel_add", "tag", e.Tag, "qty", e.Qty)
			return
		}
		next.IntelTags[e.Tag] += qty

	case IntelNote:
		w.handleIntelNote(next, e)

	case LeadAdd:
		if lead, exists := next.Leads[e.Key]; exists && lead.Status == state.LeadResolved {
			// Resolved is terminal; only the text is rewritten
			lead.Title = e.Title
			lead.Body = e.Body
			lead.Location = e.Location
			next.Leads[e.Key] = lead
			return
		}
		next.Leads[e.Key] = state.Lead{
			Key:       e.Key,
			CreatedAt: w.now(),
			Title:     e.Title,
			Body:      e.Body,
			Location:  e.Location,
			Status:    state.LeadActive,
		}

	case LeadResolve:
		lead, exists := next.Leads[e.Key]
		if !exists || lead.Status == state.LeadResolved {
			return
		}
		at := w.now()
		lead.Status = state.LeadResolved
		lead.ResolvedAt = &at
		next.Leads[e.Key] = lead

	case CurrencyAdd:
		next.Obols = max(0, addSat(next.Obols, e.Qty))

	case CurrencySpend:
		next.Obols = max(0, addSat(next.Obols, negSat(e.Qty)))

	case CurrencyAddChance:
		roll := w.rand.Float64()
		if roll < e.Chance {
			next.Obols = max(0, addSat(next.Obols, e.Qty))
		}
		w.logger.Debug("Rolled for obols", "roll", roll, "chance", e.Chance, "hit", roll < e.Chance)

	default:
		w.logger.Debug("Skipping unknown effect", "type", e.Type)
	}
}

func (w *Worker) handleBind(next *state.GameState, e Effect) {
	// Binding always implies discovery
	next.DiscoveredSpecies[e.SpeciesID] = true
	next.BoundInstances = append(next.BoundInstances, state.BoundInstance{
		InstanceID: w.newID(),
		SpeciesID:  e.SpeciesID,
		Loyalty:    state.StartingLoyalty,
	})
}

// handleCraft re-checks requirements against the current state even though
// callers are expected to gate on them, so inventory can never go negative
func (w *Worker) handleCraft(next *state.GameState, e Effect) {
	if w.recipes == nil {
		w.logger.Warn("No recipe book configured, skipping craft", "recipe_id", e.RecipeID)
		return
	}
	recipe, found := w.recipes.Recipe(e.RecipeID)
	if !found {
		w.logger.Warn("Could not find recipe", "recipe_id", e.RecipeID)
		return
	}

	for _, req := range recipe.Requires {
		if next.ItemQty(req.ItemID) < req.Qty {
			w.logger.Debug("Recipe requirements not met",
				"recipe_id", e.RecipeID,
				"item_id", req.ItemID,
				"have", next.ItemQty(req.ItemID),
				"need", req.Qty)
			return
		}
	}

	for _, req := range recipe.Requires {
		addItem(next, req.ItemID, negSat(req.Qty))
	}
	for _, p := range recipe.Produces {
		addItem(next, p.ItemID, p.Qty)
	}
}

func (w *Worker) handleIntelNote(next *state.GameState, e Effect) {
	reliability := e.Reliability
	if reliability == "" {
		reliability = state.ReliabilityMedium
	}

	tags := dedupe(e.Tags)
	next.IntelLog = append(next.IntelLog, state.IntelEntry{
		ID:          w.newID(),
		CreatedAt:   w.now(),
		Title:       e.Title,
		Body:        e.Body,
		Source:      e.Source,
		Reliability: reliability,
		Tags:        tags,
	})

	// Note tags raise the same counters as intel_add
	for _, tag := range tags {
		next.IntelTags[tag]++
	}
}

// addItem adjusts an inventory count by delta, clamping at zero and removing
// entries that reach zero
func addItem(next *state.GameState, itemID string, delta int) {
	qty := addSat(next.Inventory[itemID], delta)
	if qty <= 0 {
		delete(next.Inventory, itemID)
		return
	}
	next.Inventory[itemID] = qty
}

// addSat adds without wrapping, saturating at the int limits
func addSat(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// negSat negates without wrapping math.MinInt
func negSat(v int) int {
	if v == math.MinInt {
		return math.MaxInt
	}
	return -v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func dedupe(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
