package contracts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderIntentTradable(t *testing.T) {
	tests := []struct {
		name     string
		qty      int64
		tradable bool
	}{
		{"one share", 1, true},
		{"many shares", 250, true},
		{"zero shares", 0, false},
		{"negative qty", -3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := OrderIntent{Symbol: "VZ", Side: OrderSideBuy, Qty: tt.qty}
			assert.Equal(t, tt.tradable, intent.Tradable())
		})
	}
}

func TestIsDog(t *testing.T) {
	dog := RankedSymbol{Symbol: "VZ", Rank: 10}
	notDog := RankedSymbol{Symbol: "MSFT", Rank: 11}
	unranked := RankedSymbol{Symbol: "AAPL"}

	assert.True(t, dog.IsDog(10))
	assert.False(t, notDog.IsDog(10))
	assert.False(t, unranked.IsDog(10))
}

func TestDogSymbols(t *testing.T) {
	ranked := []RankedSymbol{
		{Symbol: "VZ", Rank: 1},
		{Symbol: "IBM", Rank: 2},
		{Symbol: "CVX", Rank: 3},
	}

	assert.Equal(t, []string{"VZ", "IBM"}, DogSymbols(ranked, 2))
	assert.Equal(t, []string{"VZ", "IBM", "CVX"}, DogSymbols(ranked, 10))
	assert.Empty(t, DogSymbols(nil, 10))
}

func TestReportDuration(t *testing.T) {
	start := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	report := RebalanceReport{
		StartedAt:  start,
		FinishedAt: start.Add(42 * time.Second),
	}

	assert.Equal(t, 42*time.Second, report.Duration())
}
