// Command txgen emits synthetic transaction records in the engine's input
// format to stdout. It is a test-data aid.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/fintrack/settlement-engine/internal/models/transaction"
	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) != 2 {
		return fmt.Errorf("usage: txgen <count>")
	}
	count, err := strconv.Atoi(os.Args[1])
	if err != nil || count < 1 {
		return fmt.Errorf("count must be a positive integer, got %q", os.Args[1])
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"type", "client", "tx", "amount"}); err != nil {
		return err
	}

	// Resolve and chargeback depend on a prior dispute, so only
	// independent kinds are drawn at random.
	kinds := []transaction.Type{
		transaction.Deposit,
		transaction.Withdrawal,
		transaction.Dispute,
	}

	for i := 0; i < count; i++ {
		kind := kinds[rand.IntN(len(kinds))]

		amount := ""
		if kind.HasAmount() {
			amount = decimal.NewFromFloat(10 + rand.Float64()*999990).StringFixed(4)
		}

		record := []string{
			string(kind),
			strconv.Itoa(rand.IntN(29) + 1),
			strconv.FormatUint(uint64(rand.Uint32()), 10),
			amount,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
