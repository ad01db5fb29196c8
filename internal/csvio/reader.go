package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fintrack/settlement-engine/internal/models/errs"
	"github.com/fintrack/settlement-engine/internal/models/transaction"
	"github.com/fintrack/settlement-engine/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var header = []string{"type", "client", "tx", "amount"}

// row is the raw shape of one input line, validated before numeric parsing.
type row struct {
	Type   string `validate:"required,oneof=deposit withdrawal dispute resolve chargeback"`
	Client string `validate:"required"`
	Tx     string `validate:"required"`
	Amount string
}

// Reader produces transactions from a delimited-text stream, lazily and in
// input order. Malformed rows are skipped with a diagnostic, not fatal.
// The stream is not restartable.
type Reader struct {
	csv        *csv.Reader
	validate   *validator.Validate
	logger     logger.Logger
	headerRead bool
	skipped    int
}

func NewReader(r io.Reader, logger logger.Logger) *Reader {
	cr := csv.NewReader(r)
	// Arity is checked per row so a bad row is skipped, not fatal.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	return &Reader{
		csv:      cr,
		validate: validator.New(),
		logger:   logger,
	}
}

// Next returns the next well-formed transaction, or io.EOF once the
// stream is exhausted. The first row must be the expected header.
func (r *Reader) Next() (*transaction.Transaction, error) {
	for {
		record, err := r.csv.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			r.skipped++
			r.logger.Errorf("skipping unreadable record: %s", err)
			continue
		}

		if !r.headerRead {
			r.headerRead = true
			if err := checkHeader(record); err != nil {
				return nil, err
			}
			continue
		}

		tx, err := r.parseRow(record)
		if err != nil {
			r.skipped++
			r.logger.Errorf("skipping malformed record: %s", err)
			continue
		}

		return tx, nil
	}
}

// Skipped returns the number of malformed rows dropped so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

func (r *Reader) parseRow(record []string) (*transaction.Transaction, error) {
	if len(record) != len(header) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(header), len(record))
	}

	// Fields may be surrounded by arbitrary whitespace.
	raw := row{
		Type:   strings.TrimSpace(record[0]),
		Client: strings.TrimSpace(record[1]),
		Tx:     strings.TrimSpace(record[2]),
		Amount: strings.TrimSpace(record[3]),
	}
	if err := r.validate.Struct(raw); err != nil {
		return nil, err
	}

	txType, err := transaction.ParseType(raw.Type)
	if err != nil {
		return nil, err
	}

	clientID, err := strconv.ParseUint(raw.Client, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("client id %q: %w", raw.Client, err)
	}

	txID, err := strconv.ParseUint(raw.Tx, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("transaction id %q: %w", raw.Tx, err)
	}

	var amount decimal.NullDecimal
	if raw.Amount != "" {
		d, err := decimal.NewFromString(raw.Amount)
		if err != nil {
			return nil, fmt.Errorf("amount %q: %w", raw.Amount, err)
		}
		amount = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	return &transaction.Transaction{
		Type:     txType,
		ClientID: transaction.ClientID(clientID),
		ID:       transaction.ID(txID),
		Amount:   amount,
	}, nil
}

func checkHeader(record []string) error {
	if len(record) != len(header) {
		return &errs.InvalidDataError{
			Message: fmt.Sprintf("expected header %q, got %d fields",
				strings.Join(header, ","), len(record)),
		}
	}
	for i, want := range header {
		if strings.TrimSpace(record[i]) != want {
			return &errs.InvalidDataError{
				Message: fmt.Sprintf("expected header %q, got %q",
					strings.Join(header, ","), strings.Join(record, ",")),
			}
		}
	}
	return nil
}
