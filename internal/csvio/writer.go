package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/fintrack/settlement-engine/internal/models/account"
	"github.com/fintrack/settlement-engine/internal/models/errs"
)

var reportHeader = []string{"client", "available", "held", "locked", "total"}

// WriteReport renders account views as delimited text, one row per account.
// Amounts carry exactly four digits after the decimal point. Row order
// follows the given slice.
func WriteReport(w io.Writer, views []account.View) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reportHeader); err != nil {
		return &errs.SerializationError{Err: err}
	}

	for _, v := range views {
		record := []string{
			strconv.FormatUint(uint64(v.ClientID), 10),
			v.Available.StringFixed(4),
			v.Held.StringFixed(4),
			strconv.FormatBool(v.Locked),
			v.Total.StringFixed(4),
		}
		if err := cw.Write(record); err != nil {
			return &errs.SerializationError{Err: err}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return &errs.SerializationError{Err: err}
	}

	return nil
}
