package account

import (
	"github.com/fintrack/settlement-engine/internal/models/transaction"
	"github.com/shopspring/decimal"
)

// Account is the internal representation of a client's funds. Settled and
// Disputed partition the amount-bearing transactions seen so far: a
// transaction id lives in at most one of the two logs at any time.
type Account struct {
	ClientID  transaction.ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
	Settled   map[transaction.ID]transaction.Transaction
	Disputed  map[transaction.ID]transaction.Transaction
}

// New returns an empty unlocked account for the given client.
func New(id transaction.ClientID) *Account {
	return &Account{
		ClientID: id,
		Settled:  make(map[transaction.ID]transaction.Transaction),
		Disputed: make(map[transaction.ID]transaction.Transaction),
	}
}

// View is the reporting projection of an account. Total is derived at
// render time and never stored.
type View struct {
	ClientID  transaction.ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
	Total     decimal.Decimal
}

// View builds the reporting projection with Total = Available + Held.
func (a *Account) View() View {
	return View{
		ClientID:  a.ClientID,
		Available: a.Available,
		Held:      a.Held,
		Locked:    a.Locked,
		Total:     a.Available.Add(a.Held),
	}
}
