// Package save persists the single game state slot. Every failure degrades to
// a logged warning: a broken save must never block play.
package save

import (
	"context"
	"log/slog"
	"time"

	"github.com/jwebster45206/animus-mundi/pkg/state"
	"github.com/jwebster45206/animus-mundi/pkg/storage"
)

const (
	DefaultKey     = "animus_mundi_save_v1"
	DefaultTimeout = 2 * time.Second
)

type Adapter struct {
	store   storage.Storage
	key     string
	timeout time.Duration
	logger  *slog.Logger
}

// NewAdapter creates an adapter over store using DefaultKey and DefaultTimeout
func NewAdapter(store storage.Storage, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		store:   store,
		key:     DefaultKey,
		timeout: DefaultTimeout,
		logger:  logger,
	}
}

// WithKey sets the slot key
// Returns the Adapter for method chaining
func (a *Adapter) WithKey(key string) *Adapter {
	if key != "" {
		a.key = key
	}
	return a
}

// WithTimeout bounds each storage call
// Returns the Adapter for method chaining
func (a *Adapter) WithTimeout(d time.Duration) *Adapter {
	if d > 0 {
		a.timeout = d
	}
	return a
}

func (a *Adapter) Key() string { return a.key }

// Load returns the saved state, or a fresh initial state when the slot is
// empty, unreadable or corrupt. Fields missing from an older record take
// their initial values.
func (a *Adapter) Load(ctx context.Context) *state.GameState {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.store.Get(ctx, a.key)
	if err != nil {
		a.logger.Warn("Failed to read save, starting fresh", "key", a.key, "error", err)
		return state.NewGameState()
	}
	if raw == "" {
		a.logger.Debug("No save found, starting fresh", "key", a.key)
		return state.NewGameState()
	}

	gs, err := state.Decode([]byte(raw))
	if err != nil {
		a.logger.Warn("Discarding corrupt save", "key", a.key, "error", err)
		return state.NewGameState()
	}
	return gs
}

// Save writes gs to the slot. Failures are logged and swallowed.
func (a *Adapter) Save(ctx context.Context, gs *state.GameState) {
	if gs == nil {
		return
	}
	data, err := gs.Encode()
	if err != nil {
		a.logger.Error("Failed to encode game state", "key", a.key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	if err := a.store.Set(ctx, a.key, string(data)); err != nil {
		a.logger.Warn("Failed to write save", "key", a.key, "error", err)
	}
}

// Reset clears the slot. The caller reseeds its in-memory state.
func (a *Adapter) Reset(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	if err := a.store.Del(ctx, a.key); err != nil {
		a.logger.Warn("Failed to clear save", "key", a.key, "error", err)
	}
}
