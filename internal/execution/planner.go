package execution

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kennelbot/kennel/internal/contracts"
	"github.com/kennelbot/kennel/pkg/logger"
)

// Planner turns a Dogs list, total capital, and current positions into
// ordered buy/sell intents. Sells always come first so divested cash
// funds the acquisitions.
type Planner struct {
	market contracts.MarketData
	config PlanConfig
	logger *logger.Logger
}

// PlanConfig defines allocation parameters
type PlanConfig struct {
	TopN    int
	Capital decimal.Decimal // total USD deployed across the Dogs
}

// NewPlanner creates a new allocation planner
func NewPlanner(market contracts.MarketData, config PlanConfig, logger *logger.Logger) *Planner {
	return &Planner{
		market: market,
		config: config,
		logger: logger,
	}
}

// PerDogTarget returns the equal-weight dollar allocation per Dog.
// Every Dog gets the same share regardless of its yield rank.
func (p *Planner) PerDogTarget() decimal.Decimal {
	return p.config.Capital.Div(decimal.NewFromInt(int64(p.config.TopN)))
}

// PlanDivestments emits a full sell for every held symbol that is not
// in the current Dogs list. Emission order is sorted by symbol; the
// sells are independent and commute, the ordering just keeps logs and
// runs reproducible.
func (p *Planner) PlanDivestments(positions map[string]int64, dogs []string) []contracts.OrderIntent {
	dogSet := make(map[string]bool, len(dogs))
	for _, d := range dogs {
		dogSet[d] = true
	}

	held := make([]string, 0, len(positions))
	for sym := range positions {
		held = append(held, sym)
	}
	sort.Strings(held)

	intents := make([]contracts.OrderIntent, 0)
	for _, sym := range held {
		qty := positions[sym]
		if dogSet[sym] || qty <= 0 {
			continue
		}
		p.logger.WithFields(map[string]interface{}{
			"symbol": sym,
			"qty":    qty,
		}).Info("No longer a Dog, selling full position")
		intents = append(intents, contracts.OrderIntent{
			Symbol: sym,
			Side:   contracts.OrderSideSell,
			Qty:    qty,
		})
	}

	return intents
}

// PlanTargets diffs each Dog against its equal-weight share target and
// emits one intent per symbol whose diff is non-zero. Positions must be
// the post-divestment read. A symbol whose price is unavailable is
// skipped entirely; that is deliberate no-action, not a failure.
func (p *Planner) PlanTargets(ctx context.Context, dogs []string, positions map[string]int64) ([]contracts.OrderIntent, []contracts.TargetLine) {
	perDog := p.PerDogTarget()

	intents := make([]contracts.OrderIntent, 0, len(dogs))
	lines := make([]contracts.TargetLine, 0, len(dogs))

	for _, sym := range dogs {
		current := positions[sym]

		price, err := p.market.GetLatestPrice(ctx, sym)
		if err != nil || !price.IsPositive() {
			if err != nil {
				p.logger.WithError(err).WithField("symbol", sym).
					Warn("No price, skipping symbol")
			} else {
				p.logger.WithField("symbol", sym).Warn("Non-positive price, skipping symbol")
			}
			lines = append(lines, contracts.TargetLine{
				Symbol:     sym,
				CurrentQty: current,
				Skipped:    true,
			})
			continue
		}

		// Whole shares only; the fractional remainder stays in cash.
		target := perDog.Div(price).IntPart()
		diff := target - current

		line := contracts.TargetLine{
			Symbol:       sym,
			Price:        price.StringFixed(2),
			TargetShares: target,
			CurrentQty:   current,
			Diff:         diff,
		}

		p.logger.Infof("%-6s price=$%8s target=%d current=%d diff=%+d",
			sym, price.StringFixed(2), target, current, diff)

		switch {
		case diff > 0:
			intents = append(intents, contracts.OrderIntent{
				Symbol: sym,
				Side:   contracts.OrderSideBuy,
				Qty:    diff,
			})
		case diff < 0:
			intents = append(intents, contracts.OrderIntent{
				Symbol: sym,
				Side:   contracts.OrderSideSell,
				Qty:    -diff,
			})
		default:
			line.AtTarget = true
			p.logger.WithField("symbol", sym).Info("Already at target, no action needed")
		}

		lines = append(lines, line)
	}

	return intents, lines
}
