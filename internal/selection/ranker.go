package selection

import (
	"context"
	"sort"

	"github.com/kennelbot/kennel/internal/contracts"
	"github.com/kennelbot/kennel/pkg/logger"
)

// Ranker ranks the universe by trailing dividend yield.
type Ranker struct {
	market contracts.MarketData
	logger *logger.Logger
}

// NewRanker creates a new ranker
func NewRanker(market contracts.MarketData, logger *logger.Logger) *Ranker {
	return &Ranker{
		market: market,
		logger: logger,
	}
}

// Rank fetches a yield for every universe symbol and returns the full
// universe ordered by yield descending. A failed or missing lookup
// counts as yield 0.0 and stays in the ranking; it is never an error.
// The sort is stable, so equal yields keep the universe order.
func (r *Ranker) Rank(ctx context.Context, universe []string) []contracts.RankedSymbol {
	ranked := make([]contracts.RankedSymbol, 0, len(universe))

	for _, symbol := range universe {
		y, err := r.market.GetDividendYield(ctx, symbol)
		if err != nil {
			r.logger.WithError(err).WithField("symbol", symbol).
				Warn("Yield lookup failed, ranking as zero")
			ranked = append(ranked, contracts.RankedSymbol{
				Symbol:   symbol,
				Degraded: true,
			})
			continue
		}
		if y < 0 {
			y = 0
		}
		ranked = append(ranked, contracts.RankedSymbol{
			Symbol: symbol,
			Yield:  y,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Yield > ranked[j].Yield
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

// Dogs returns the top n of a Rank result plus the number of degraded
// quotes in the whole universe, logging the full ranked table with the
// selected symbols marked.
func (r *Ranker) Dogs(ctx context.Context, universe []string, n int) ([]contracts.RankedSymbol, int) {
	ranked := r.Rank(ctx, universe)

	if n > len(ranked) {
		// Degenerate but allowed: the whole universe is the Dogs list.
		n = len(ranked)
	}

	degraded := 0
	for _, rs := range ranked {
		if rs.Degraded {
			degraded++
		}
		marker := ""
		if rs.IsDog(n) {
			marker = " <- Dog"
		}
		r.logger.Infof("%3d  %-6s %6.2f%%%s", rs.Rank, rs.Symbol, rs.Yield*100, marker)
	}

	dogs := ranked[:n]

	r.logger.WithFields(map[string]interface{}{
		"universe": len(universe),
		"degraded": degraded,
		"dogs":     contracts.DogSymbols(dogs, n),
	}).Info("Dogs selected")

	return dogs, degraded
}
