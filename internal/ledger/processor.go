package ledger

import (
	"errors"
	"fmt"

	"github.com/fintrack/settlement-engine/internal/models/account"
	"github.com/fintrack/settlement-engine/internal/models/errs"
	"github.com/fintrack/settlement-engine/internal/models/transaction"
	"github.com/fintrack/settlement-engine/pkg/logger"
)

// Processor applies transaction records to a ledger. Records must be
// applied in input order: dispute, resolve and chargeback reference
// transactions that have to be logged already.
type Processor struct {
	logger logger.Logger
}

func NewProcessor(logger logger.Logger) (*Processor, error) {
	if logger == nil {
		return nil, errors.New("nil dependency: logger")
	}
	return &Processor{logger: logger}, nil
}

// Apply mutates exactly the account referenced by tx.ClientID.
// A returned error means the record was rejected and the account left
// untouched; unknown references and corrupted log entries are non-fatal
// and reported as diagnostics only.
//
// TODO: validate against repeated transaction ids (a duplicate deposit
// currently overwrites the settled entry).
// TODO: block transactions against locked accounts once something locks them.
func (p *Processor) Apply(l *Ledger, tx *transaction.Transaction) error {
	acc := l.GetOrCreate(tx.ClientID)

	switch tx.Type {
	case transaction.Deposit:
		return p.deposit(acc, tx)
	case transaction.Withdrawal:
		return p.withdraw(acc, tx)
	case transaction.Dispute:
		p.dispute(acc, tx)
	case transaction.Resolve:
		p.resolve(acc, tx)
	case transaction.Chargeback:
		p.chargeback(acc, tx)
	default:
		return &errs.InvalidDataError{
			Message: fmt.Sprintf("tx %d: unknown transaction type %q", tx.ID, tx.Type),
		}
	}

	return nil
}

func (p *Processor) deposit(acc *account.Account, tx *transaction.Transaction) error {
	if !tx.Amount.Valid {
		return &errs.InvalidDataError{
			Message: fmt.Sprintf("tx %d: deposit", tx.ID),
			Err:     errs.ErrMissingAmount,
		}
	}

	acc.Available = acc.Available.Add(tx.Amount.Decimal)
	// A repeated transaction id silently replaces the earlier entry.
	acc.Settled[tx.ID] = *tx

	return nil
}

func (p *Processor) withdraw(acc *account.Account, tx *transaction.Transaction) error {
	if !tx.Amount.Valid {
		return &errs.InvalidDataError{
			Message: fmt.Sprintf("tx %d: withdrawal", tx.ID),
			Err:     errs.ErrMissingAmount,
		}
	}

	// The debit applies only when available funds strictly exceed the
	// amount; a withdrawal of the exact balance is refused.
	if acc.Available.GreaterThan(tx.Amount.Decimal) {
		acc.Available = acc.Available.Sub(tx.Amount.Decimal)
	} else {
		p.logger.Debugf("tx %d: insufficient funds for client %d, withdrawal not applied",
			tx.ID, acc.ClientID)
	}

	// The record is logged whether or not the debit applied.
	acc.Settled[tx.ID] = *tx

	return nil
}

// dispute moves a settled transaction's amount from available to held and
// the record from the settled log to the disputed log.
func (p *Processor) dispute(acc *account.Account, tx *transaction.Transaction) {
	disputed, ok := acc.Settled[tx.ID]
	if !ok {
		p.logger.Warnf("tx %d: dispute references no settled transaction for client %d",
			tx.ID, acc.ClientID)
		return
	}
	if !disputed.Amount.Valid {
		p.logger.Errorf("tx %d: data corruption, settled entry is missing its amount", tx.ID)
		return
	}

	delete(acc.Settled, tx.ID)
	acc.Disputed[tx.ID] = disputed
	acc.Available = acc.Available.Sub(disputed.Amount.Decimal)
	acc.Held = acc.Held.Add(disputed.Amount.Decimal)
}

// resolve reverses a dispute exactly: the amount returns from held to
// available and the record back to the settled log.
func (p *Processor) resolve(acc *account.Account, tx *transaction.Transaction) {
	resolved, ok := acc.Disputed[tx.ID]
	if !ok {
		p.logger.Warnf("tx %d: resolve references no disputed transaction for client %d",
			tx.ID, acc.ClientID)
		return
	}
	if !resolved.Amount.Valid {
		p.logger.Errorf("tx %d: data corruption, disputed entry is missing its amount", tx.ID)
		return
	}

	delete(acc.Disputed, tx.ID)
	acc.Settled[tx.ID] = resolved
	acc.Held = acc.Held.Sub(resolved.Amount.Decimal)
	acc.Available = acc.Available.Add(resolved.Amount.Decimal)
}

// chargeback drops a disputed transaction: the held amount is debited with
// no compensating credit, so total funds shrink by the disputed amount.
// The account is not locked.
//
// TODO: product to clarify whether a chargeback should lock the account,
// and where the charged-back funds should be accounted.
func (p *Processor) chargeback(acc *account.Account, tx *transaction.Transaction) {
	dropped, ok := acc.Disputed[tx.ID]
	if !ok {
		p.logger.Warnf("tx %d: chargeback references no disputed transaction for client %d",
			tx.ID, acc.ClientID)
		return
	}
	if !dropped.Amount.Valid {
		p.logger.Errorf("tx %d: data corruption, disputed entry is missing its amount", tx.ID)
		return
	}

	delete(acc.Disputed, tx.ID)
	acc.Held = acc.Held.Sub(dropped.Amount.Decimal)
}
