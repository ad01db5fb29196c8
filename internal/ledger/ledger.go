package ledger

import (
	"github.com/fintrack/settlement-engine/internal/models/account"
	"github.com/fintrack/settlement-engine/internal/models/transaction"
)

// Ledger maps client ids to their accounts for the duration of one batch.
// It is owned exclusively by the run: single writer, no locking.
type Ledger struct {
	accounts map[transaction.ClientID]*account.Account
}

func New() *Ledger {
	return &Ledger{accounts: make(map[transaction.ClientID]*account.Account)}
}

// GetOrCreate returns the account for the given client, initializing an
// empty one on first reference.
func (l *Ledger) GetOrCreate(id transaction.ClientID) *account.Account {
	if acc, ok := l.accounts[id]; ok {
		return acc
	}
	acc := account.New(id)
	l.accounts[id] = acc
	return acc
}

// Upsert replaces the stored account for its client id.
func (l *Ledger) Upsert(acc *account.Account) {
	l.accounts[acc.ClientID] = acc
}

// Len returns the number of accounts seen so far.
func (l *Ledger) Len() int {
	return len(l.accounts)
}

// Accounts returns a snapshot of all accounts in unspecified order.
func (l *Ledger) Accounts() []*account.Account {
	accounts := make([]*account.Account, 0, len(l.accounts))
	for _, acc := range l.accounts {
		accounts = append(accounts, acc)
	}
	return accounts
}
