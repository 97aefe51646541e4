package selection

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennelbot/kennel/internal/contracts"
	"github.com/kennelbot/kennel/pkg/config"
	"github.com/kennelbot/kennel/pkg/logger"
)

// fakeMarket serves canned yields; symbols in failing error out.
type fakeMarket struct {
	yields  map[string]float64
	failing map[string]bool
}

func (m *fakeMarket) GetDividendYield(ctx context.Context, symbol string) (float64, error) {
	if m.failing[symbol] {
		return 0, fmt.Errorf("quote lookup failed for %s", symbol)
	}
	return m.yields[symbol], nil
}

func (m *fakeMarket) GetLatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return decimal.Zero, fmt.Errorf("not used in selection tests")
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestRank_DescendingStableTies(t *testing.T) {
	market := &fakeMarket{yields: map[string]float64{
		"X": 0.05,
		"Y": 0.03,
		"Z": 0.03,
	}}
	ranker := NewRanker(market, testLogger())

	ranked := ranker.Rank(context.Background(), []string{"X", "Y", "Z"})

	require.Len(t, ranked, 3)
	assert.Equal(t, "X", ranked[0].Symbol)
	// Y wins the tie over Z by original universe order
	assert.Equal(t, "Y", ranked[1].Symbol)
	assert.Equal(t, "Z", ranked[2].Symbol)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestRank_FailedLookupRanksAsZero(t *testing.T) {
	market := &fakeMarket{
		yields:  map[string]float64{"KO": 0.031, "VZ": 0.062},
		failing: map[string]bool{"BA": true},
	}
	ranker := NewRanker(market, testLogger())

	ranked := ranker.Rank(context.Background(), []string{"BA", "KO", "VZ"})

	require.Len(t, ranked, 3, "failed lookups stay in the ranking")
	assert.Equal(t, "VZ", ranked[0].Symbol)
	assert.Equal(t, "KO", ranked[1].Symbol)
	assert.Equal(t, "BA", ranked[2].Symbol)
	assert.True(t, ranked[2].Degraded)
	assert.Zero(t, ranked[2].Yield)
}

func TestDogs_TopN(t *testing.T) {
	market := &fakeMarket{yields: map[string]float64{
		"X": 0.05, "Y": 0.03, "Z": 0.03,
	}}
	ranker := NewRanker(market, testLogger())

	dogs, degraded := ranker.Dogs(context.Background(), []string{"X", "Y", "Z"}, 2)

	assert.Equal(t, []string{"X", "Y"}, contracts.DogSymbols(dogs, 2))
	assert.Zero(t, degraded)
}

func TestDogs_UniverseSmallerThanN(t *testing.T) {
	market := &fakeMarket{yields: map[string]float64{"A": 0.01, "B": 0.02}}
	ranker := NewRanker(market, testLogger())

	dogs, _ := ranker.Dogs(context.Background(), []string{"A", "B"}, 10)

	assert.Len(t, dogs, 2, "dogs list degenerates to the whole universe")
}

func TestDogs_CountsDegradedQuotes(t *testing.T) {
	market := &fakeMarket{
		yields:  map[string]float64{"KO": 0.031},
		failing: map[string]bool{"BA": true, "DIS": true},
	}
	ranker := NewRanker(market, testLogger())

	_, degraded := ranker.Dogs(context.Background(), []string{"KO", "BA", "DIS"}, 2)

	assert.Equal(t, 2, degraded)
}

func TestRank_NegativeYieldClamped(t *testing.T) {
	market := &fakeMarket{yields: map[string]float64{"A": -0.5, "B": 0.01}}
	ranker := NewRanker(market, testLogger())

	ranked := ranker.Rank(context.Background(), []string{"A", "B"})

	assert.Equal(t, "B", ranked[0].Symbol)
	assert.Zero(t, ranked[1].Yield)
}
