package execution

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kennelbot/kennel/internal/contracts"
)

// Broker defines the brokerage operations the bot depends on.
type Broker interface {
	// GetAccount retrieves the account summary. Used for the startup
	// connectivity check and informational reporting.
	GetAccount(ctx context.Context) (*Account, error)

	// ListPositions returns current holdings as symbol -> quantity.
	ListPositions(ctx context.Context) (map[string]int64, error)

	// SubmitOrder submits a market, good-till-canceled order.
	SubmitOrder(ctx context.Context, intent contracts.OrderIntent) error
}

// Account represents a brokerage account summary.
type Account struct {
	Status      string
	BuyingPower decimal.Decimal
	Cash        decimal.Decimal
}

// MockBroker implements Broker for tests. Orders against symbols in
// FailSymbols are rejected; everything else mutates Positions as if it
// filled instantly.
type MockBroker struct {
	mu          sync.Mutex
	Positions   map[string]int64
	Acct    Account
	FailSymbols map[string]bool
	Submitted   []contracts.OrderIntent
	ListErr     error
	AccountErr  error
}

// NewMockBroker creates a mock broker with no positions
func NewMockBroker() *MockBroker {
	return &MockBroker{
		Positions: make(map[string]int64),
		Acct: Account{
			Status:      "ACTIVE",
			BuyingPower: decimal.NewFromInt(10_000),
			Cash:        decimal.NewFromInt(10_000),
		},
	}
}

// GetAccount returns the configured account summary
func (b *MockBroker) GetAccount(ctx context.Context) (*Account, error) {
	if b.AccountErr != nil {
		return nil, b.AccountErr
	}
	acct := b.Acct
	return &acct, nil
}

// ListPositions returns a copy of current positions
func (b *MockBroker) ListPositions(ctx context.Context) (map[string]int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ListErr != nil {
		return nil, b.ListErr
	}

	out := make(map[string]int64, len(b.Positions))
	for sym, qty := range b.Positions {
		out[sym] = qty
	}
	return out, nil
}

// SubmitOrder records the order and applies it to positions
func (b *MockBroker) SubmitOrder(ctx context.Context, intent contracts.OrderIntent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailSymbols[intent.Symbol] {
		return fmt.Errorf("order rejected for %s", intent.Symbol)
	}

	b.Submitted = append(b.Submitted, intent)

	switch intent.Side {
	case contracts.OrderSideBuy:
		b.Positions[intent.Symbol] += intent.Qty
	case contracts.OrderSideSell:
		b.Positions[intent.Symbol] -= intent.Qty
		if b.Positions[intent.Symbol] <= 0 {
			delete(b.Positions, intent.Symbol)
		}
	}
	return nil
}

// SubmittedSymbols returns the distinct symbols of submitted orders,
// sorted for stable assertions.
func (b *MockBroker) SubmittedSymbols() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[string]bool)
	for _, intent := range b.Submitted {
		seen[intent.Symbol] = true
	}
	syms := make([]string, 0, len(seen))
	for sym := range seen {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}
