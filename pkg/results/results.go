package results

import (
	"github.com/jwebster45206/animus-mundi/pkg/content"
	"github.com/jwebster45206/animus-mundi/pkg/effects"
	"github.com/jwebster45206/animus-mundi/pkg/state"
)

type Kind string

const (
	KindIntel    Kind = "intel"
	KindItem     Kind = "item"
	KindCurrency Kind = "currency"
	KindHumanity Kind = "humanity"
	KindSystem   Kind = "system"
)

// Line is one human-readable outcome of an effect, tagged for styling
type Line struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// MissedCurrencyText is reported when a currency_add_chance roll misses
const MissedCurrencyText = "No currency found."

// ItemNamer resolves display names for inventory lines
type ItemNamer interface {
	ItemName(id string) string
}

// Reporter applies effects one at a time so that each effect can be narrated
// from its own before/after snapshots.
type Reporter struct {
	worker *effects.Worker
	items  ItemNamer
}

// NewReporter wraps worker. items may be nil, in which case item ids are humanized.
func NewReporter(worker *effects.Worker, items ItemNamer) *Reporter {
	return &Reporter{worker: worker, items: items}
}

// ApplyWithResults applies effects in order and returns the new state with
// the result lines, in batch order. gs is not modified.
func (r *Reporter) ApplyWithResults(gs *state.GameState, effs []effects.Effect) (*state.GameState, []Line) {
	lines := make([]Line, 0)
	cur := r.worker.Apply(gs, nil)

	for _, e := range effs {
		next := r.worker.Apply(cur, []effects.Effect{e})
		lines = append(lines, r.Diff(cur, next)...)

		// A miss leaves no trace in the state, so it has to be reported here
		if e.Type == effects.CurrencyAddChance && next.Obols == cur.Obols {
			lines = append(lines, Line{Kind: KindCurrency, Text: MissedCurrencyText})
		}
		cur = next
	}

	return cur, lines
}

func (r *Reporter) itemName(id string) string {
	if r.items == nil {
		return content.Humanize(id)
	}
	return r.items.ItemName(id)
}
