package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fintrack/settlement-engine/internal/config"
	"github.com/fintrack/settlement-engine/internal/csvio"
	"github.com/fintrack/settlement-engine/internal/ledger"
	"github.com/fintrack/settlement-engine/internal/models/account"
	"github.com/fintrack/settlement-engine/internal/models/errs"
	"github.com/fintrack/settlement-engine/internal/models/transaction"
	"github.com/fintrack/settlement-engine/pkg/logger"
	"github.com/google/uuid"
)

// Outcome records the rejection of a single transaction. Rejections never
// abort the batch; they are collected here so callers can observe them.
type Outcome struct {
	Seq      int
	TxID     transaction.ID
	ClientID transaction.ClientID
	Err      error
}

// Summary aggregates the per-record results of one batch run.
type Summary struct {
	RunID    uuid.UUID
	Read     int
	Applied  int
	Skipped  int
	Failures []Outcome
}

// Runner drives one transaction batch end to end: file pre-validation,
// sequential processing, report export.
type Runner struct {
	proc   *ledger.Processor
	cfg    *config.Config
	logger logger.Logger
}

func NewRunner(proc *ledger.Processor, cfg *config.Config, logger logger.Logger) (*Runner, error) {
	if proc == nil {
		return nil, errors.New("nil dependency: processor")
	}
	if cfg == nil {
		return nil, errors.New("nil dependency: config")
	}
	if logger == nil {
		return nil, errors.New("nil dependency: logger")
	}
	return &Runner{proc: proc, cfg: cfg, logger: logger}, nil
}

// Run processes the batch at path and writes the account report to out.
// The whole batch either completes with a report, or the run aborts before
// processing begins. Per-record failures only mark the summary.
func (r *Runner) Run(ctx context.Context, path string, out io.Writer) (*Summary, error) {
	summary := &Summary{RunID: uuid.New()}
	log := r.logger.With(ctx, "run_id", summary.RunID.String())

	f, err := r.openValidated(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("closing data file: %s", err)
		}
	}()

	led := ledger.New()
	reader := csvio.NewReader(bufio.NewReader(f), log)

	// Strictly sequential: dispute, resolve and chargeback outcomes depend
	// on every earlier record already being applied.
	for {
		tx, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		summary.Read++

		if err := r.proc.Apply(led, tx); err != nil {
			log.Errorf("record %d rejected: %s", summary.Read, err)
			summary.Failures = append(summary.Failures, Outcome{
				Seq:      summary.Read,
				TxID:     tx.ID,
				ClientID: tx.ClientID,
				Err:      err,
			})
			continue
		}
		summary.Applied++
	}
	summary.Skipped = reader.Skipped()

	views := make([]account.View, 0, led.Len())
	for _, acc := range led.Accounts() {
		views = append(views, acc.View())
	}
	if err := csvio.WriteReport(out, views); err != nil {
		return nil, err
	}

	log.Infof("batch complete: read=%d applied=%d skipped=%d failed=%d accounts=%d",
		summary.Read, summary.Applied, summary.Skipped, len(summary.Failures), led.Len())

	return summary, nil
}

// openValidated opens the data file and rejects it before any record is
// read when it exceeds the configured size limit.
func (r *Runner) openValidated(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errs.FileAccessError{Path: path, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &errs.FileAccessError{Path: path, Err: err}
	}

	if limit := r.cfg.InputLimitMB * 1024 * 1024; info.Size() > limit {
		_ = f.Close()
		return nil, &errs.InvalidDataError{
			Message: fmt.Sprintf("data file [%s] size of [%d] bytes exceeds input limit of %d megabytes",
				path, info.Size(), r.cfg.InputLimitMB),
		}
	}

	return f, nil
}
