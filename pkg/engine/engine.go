// Package engine is the in-process facade the presentation layer drives. It
// owns the single live game state, applies choices and crafts through the
// effect worker, and persists after every transition.
//
// An Engine is not safe for concurrent use.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jwebster45206/animus-mundi/pkg/conditionals"
	"github.com/jwebster45206/animus-mundi/pkg/content"
	"github.com/jwebster45206/animus-mundi/pkg/effects"
	"github.com/jwebster45206/animus-mundi/pkg/results"
	"github.com/jwebster45206/animus-mundi/pkg/save"
	"github.com/jwebster45206/animus-mundi/pkg/state"
)

// KnowsRecipePrefix gates a recipe in the craft view: flag knows_<recipe_id>
const KnowsRecipePrefix = "knows_"

var (
	ErrNoSuchChoice      = errors.New("no such choice")
	ErrChoiceUnavailable = errors.New("choice requirements not met")
	ErrNoSuchRecipe      = errors.New("no such recipe")
	ErrRecipeNotKnown    = errors.New("recipe not known")
	ErrNotCraftable      = errors.New("recipe requirements not met")
)

type Engine struct {
	content  *content.Content
	saves    *save.Adapter
	reporter *results.Reporter
	logger   *slog.Logger

	gs *state.GameState
}

// Option configures an Engine at construction
type Option func(*options)

type options struct {
	logger *slog.Logger
	rand   effects.RandomSource
	now    func() time.Time
	newID  func() string
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRand sets the random source for chance effects
func WithRand(r effects.RandomSource) Option {
	return func(o *options) { o.rand = r }
}

// WithClock sets the clock used to stamp intel and leads
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// New creates an engine over static content and a save slot. The state is the
// initial state until Start loads the slot. saves may be nil for a session
// that is never persisted.
func New(c *content.Content, saves *save.Adapter, opts ...Option) *Engine {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if c == nil {
		c = content.New()
	}

	w := effects.NewWorker(c, o.logger)
	if o.rand != nil {
		w.WithRand(o.rand)
	}
	if o.now != nil {
		w.WithClock(o.now)
	}
	if o.newID != nil {
		w.WithIDGenerator(o.newID)
	}

	return &Engine{
		content:  c,
		saves:    saves,
		reporter: results.NewReporter(w, c),
		logger:   o.logger,
		gs:       state.NewGameState(),
	}
}

// Start loads the saved state, falling back to the initial state
func (e *Engine) Start(ctx context.Context) {
	if e.saves == nil {
		return
	}
	e.gs = e.saves.Load(ctx)
	e.logger.Info("Game loaded", "node", e.gs.CurrentNodeID, "humanity", e.gs.Humanity)
}

// State returns a copy of the live state
func (e *Engine) State() *state.GameState {
	return e.gs.Clone()
}

func (e *Engine) Content() *content.Content {
	return e.content
}

// Node returns the current node. ok is false when the state points at a node
// the content does not define.
func (e *Engine) Node() (content.Node, bool) {
	return e.content.Node(e.gs.CurrentNodeID)
}

// Meets evaluates requirements against the live state
func (e *Engine) Meets(requires []conditionals.Condition) bool {
	return conditionals.Meets(e.gs, requires)
}

// ApplyWithResults previews an effect batch against the live state without
// committing it
func (e *Engine) ApplyWithResults(effs []effects.Effect) (*state.GameState, []results.Line) {
	return e.reporter.ApplyWithResults(e.gs, effs)
}

// Choose takes the choice at index in the current node. Gated choices leave
// the state untouched.
func (e *Engine) Choose(ctx context.Context, index int) ([]results.Line, error) {
	node, ok := e.Node()
	if !ok || index < 0 || index >= len(node.Choices) {
		return nil, ErrNoSuchChoice
	}
	choice := node.Choices[index]
	if !e.Meets(choice.Requires) {
		return nil, ErrChoiceUnavailable
	}

	next, lines := e.reporter.ApplyWithResults(e.gs, choice.Effects)
	next.CurrentNodeID = choice.Next
	e.commit(ctx, next)

	e.logger.Debug("Choice taken",
		"from", node.ID,
		"to", choice.Next,
		"label", choice.Label,
		"lines", len(lines))
	return lines, nil
}

// Craft runs a known, craftable recipe
func (e *Engine) Craft(ctx context.Context, recipeID string) ([]results.Line, error) {
	recipe, found := e.content.Recipe(recipeID)
	if !found {
		return nil, ErrNoSuchRecipe
	}
	if !e.gs.Flag(KnowsRecipePrefix + recipeID) {
		return nil, ErrRecipeNotKnown
	}
	if !craftable(e.gs, recipe) {
		return nil, ErrNotCraftable
	}

	next, lines := e.reporter.ApplyWithResults(e.gs, []effects.Effect{effects.CraftRecipe(recipeID)})
	e.commit(ctx, next)
	return lines, nil
}

// Reset clears the save slot and returns to the initial state
func (e *Engine) Reset(ctx context.Context) {
	if e.saves != nil {
		e.saves.Reset(ctx)
	}
	e.gs = state.NewGameState()
	e.logger.Info("Game reset")
}

func (e *Engine) commit(ctx context.Context, next *state.GameState) {
	e.gs = next
	if e.saves != nil {
		e.saves.Save(ctx, next)
	}
}

func craftable(gs *state.GameState, r content.Recipe) bool {
	for _, req := range r.Requires {
		if gs.ItemQty(req.ItemID) < req.Qty {
			return false
		}
	}
	return true
}
