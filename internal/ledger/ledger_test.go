package ledger

import (
	"testing"

	"github.com/fintrack/settlement-engine/internal/models/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_GetOrCreate(t *testing.T) {
	l := New()
	assert.Equal(t, 0, l.Len())

	acc := l.GetOrCreate(42)
	require.NotNil(t, acc)
	assert.Equal(t, 1, l.Len())

	// Fresh account: zero balances, unlocked, empty logs.
	assert.True(t, acc.Available.IsZero())
	assert.True(t, acc.Held.IsZero())
	assert.False(t, acc.Locked)
	assert.Empty(t, acc.Settled)
	assert.Empty(t, acc.Disputed)

	// Second lookup returns the same account, not a copy.
	again := l.GetOrCreate(42)
	assert.Same(t, acc, again)
	assert.Equal(t, 1, l.Len())
}

func TestLedger_Upsert(t *testing.T) {
	l := New()
	l.GetOrCreate(7)

	replacement := account.New(7)
	replacement.Locked = true
	l.Upsert(replacement)

	assert.Equal(t, 1, l.Len())
	assert.Same(t, replacement, l.GetOrCreate(7))
}

func TestLedger_Accounts(t *testing.T) {
	l := New()
	l.GetOrCreate(1)
	l.GetOrCreate(2)
	l.GetOrCreate(3)

	accounts := l.Accounts()
	assert.Len(t, accounts, 3)

	seen := make(map[uint16]bool)
	for _, acc := range accounts {
		seen[uint16(acc.ClientID)] = true
	}
	assert.Equal(t, map[uint16]bool{1: true, 2: true, 3: true}, seen)
}
