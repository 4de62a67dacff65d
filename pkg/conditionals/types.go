package conditionals

type ConditionType string

const (
	HasItem     ConditionType = "has_item"
	FlagTrue    ConditionType = "flag_true"
	FlagFalse   ConditionType = "flag_false"
	HasCurrency ConditionType = "has_currency"
)

// Condition is a single requirement on a choice or recipe. Which fields are
// read depends on Type.
type Condition struct {
	Type   ConditionType `json:"type" yaml:"type"`
	ItemID string        `json:"item_id,omitempty" yaml:"item_id,omitempty"` // has_item
	Qty    int           `json:"qty,omitempty" yaml:"qty,omitempty"`         // has_item, has_currency
	Key    string        `json:"key,omitempty" yaml:"key,omitempty"`         // flag_true, flag_false
}

func RequireItem(itemID string, qty int) Condition {
	return Condition{Type: HasItem, ItemID: itemID, Qty: qty}
}

func RequireFlag(key string) Condition {
	return Condition{Type: FlagTrue, Key: key}
}

func RequireNotFlag(key string) Condition {
	return Condition{Type: FlagFalse, Key: key}
}

func RequireObols(qty int) Condition {
	return Condition{Type: HasCurrency, Qty: qty}
}

// Known reports whether the condition type is one the evaluator understands.
func (c Condition) Known() bool {
	switch c.Type {
	case HasItem, FlagTrue, FlagFalse, HasCurrency:
		return true
	default:
		return false
	}
}
