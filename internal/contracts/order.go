package contracts

// OrderIntent represents one intended trade passed from the planner to
// the broker. Each intent maps to exactly one order submission attempt.
type OrderIntent struct {
	Symbol string    `json:"symbol"`
	Side   OrderSide `json:"side"`
	Qty    int64     `json:"qty"`
}

// OrderSide represents buy or sell
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// Tradable reports whether the intent clears the minimum-tradable-unit
// rule. Intents below one whole share are dropped at the execution
// boundary, not at planning time.
func (i OrderIntent) Tradable() bool {
	return i.Qty >= 1
}
