package contracts

// RankedSymbol represents one universe symbol with its dividend yield
// rank, passed from selection to planning.
type RankedSymbol struct {
	Symbol string  `json:"symbol"`
	Rank   int     `json:"rank"`  // 1-based
	Yield  float64 `json:"yield"` // 0.0 when the lookup failed
	// Degraded marks a yield that defaulted to zero because the lookup
	// failed, as opposed to a true zero yield.
	Degraded bool `json:"degraded,omitempty"`
}

// IsDog checks if the symbol is within the top N ranks
func (r *RankedSymbol) IsDog(n int) bool {
	return r.Rank > 0 && r.Rank <= n
}

// DogSymbols returns the symbols of the first n entries of a ranking.
// When the ranking is shorter than n the whole ranking is returned.
func DogSymbols(ranked []RankedSymbol, n int) []string {
	if n > len(ranked) {
		n = len(ranked)
	}
	dogs := make([]string, 0, n)
	for _, r := range ranked[:n] {
		dogs = append(dogs, r.Symbol)
	}
	return dogs
}
