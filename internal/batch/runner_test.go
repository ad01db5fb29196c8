package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fintrack/settlement-engine/internal/config"
	"github.com/fintrack/settlement-engine/internal/ledger"
	"github.com/fintrack/settlement-engine/internal/models/errs"
	"github.com/fintrack/settlement-engine/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	proc, err := ledger.NewProcessor(logger.NewNop())
	require.NoError(t, err)

	cfg := &config.Config{InputLimitMB: 2}
	r, err := NewRunner(proc, cfg, logger.NewNop())
	require.NoError(t, err)
	return r
}

func writeBatch(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	content := "type,client,tx,amount\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunner_SingleAccountLifecycle(t *testing.T) {
	path := writeBatch(t,
		"deposit,1,1,100.0",
		"deposit,1,2,41.7",
		"withdrawal,1,3,10.0",
		"dispute,1,2,",
		"chargeback,1,2,",
	)

	r := newTestRunner(t)
	var out strings.Builder
	summary, err := r.Run(context.Background(), path, &out)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Read)
	assert.Equal(t, 5, summary.Applied)
	assert.Equal(t, 0, summary.Skipped)
	assert.Empty(t, summary.Failures)
	assert.NotEqual(t, uuid.Nil, summary.RunID)

	// 100 + 41.7 - 10, then 41.7 held and charged back: total shrinks.
	want := "client,available,held,locked,total\n" +
		"1,90.0000,0.0000,false,90.0000\n"
	assert.Equal(t, want, out.String())
}

func TestRunner_DisputeResolve(t *testing.T) {
	path := writeBatch(t,
		"deposit,1,1,100.0",
		"deposit,1,2,31.5",
		"dispute,1,2,",
		"resolve,1,2,",
	)

	r := newTestRunner(t)
	var out strings.Builder
	_, err := r.Run(context.Background(), path, &out)
	require.NoError(t, err)

	want := "client,available,held,locked,total\n" +
		"1,131.5000,0.0000,false,131.5000\n"
	assert.Equal(t, want, out.String())
}

func TestRunner_ContinuesPastPerRecordFailures(t *testing.T) {
	path := writeBatch(t,
		"deposit,1,1,100.0",
		"deposit,1,2,",        // missing amount: rejected, not fatal
		"bogus,1,3,5.0",       // malformed: skipped by the reader
		"withdrawal,1,4,40.0", // still applies
	)

	r := newTestRunner(t)
	var out strings.Builder
	summary, err := r.Run(context.Background(), path, &out)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Read)
	assert.Equal(t, 2, summary.Applied)
	assert.Equal(t, 1, summary.Skipped)

	require.Len(t, summary.Failures, 1)
	failure := summary.Failures[0]
	assert.Equal(t, 2, failure.Seq)
	assert.True(t, errors.Is(failure.Err, errs.ErrMissingAmount))

	want := "client,available,held,locked,total\n" +
		"1,60.0000,0.0000,false,60.0000\n"
	assert.Equal(t, want, out.String())
}

func TestRunner_FileMissing(t *testing.T) {
	r := newTestRunner(t)
	var out strings.Builder
	_, err := r.Run(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), &out)

	var access *errs.FileAccessError
	require.Error(t, err)
	assert.True(t, errors.As(err, &access))
	assert.Empty(t, out.String())
}

func TestRunner_FileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.csv")

	// One byte over the 1 MiB limit; no record should ever be read.
	content := make([]byte, 1024*1024+1)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	proc, err := ledger.NewProcessor(logger.NewNop())
	require.NoError(t, err)
	r, err := NewRunner(proc, &config.Config{InputLimitMB: 1}, logger.NewNop())
	require.NoError(t, err)

	var out strings.Builder
	_, err = r.Run(context.Background(), path, &out)

	var invalid *errs.InvalidDataError
	require.Error(t, err)
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "1048577")
	assert.Contains(t, err.Error(), "1 megabytes")
	assert.Empty(t, out.String())
}

func TestRunner_MultipleClients(t *testing.T) {
	path := writeBatch(t,
		"deposit,1,1,10.0",
		"deposit,2,2,20.0",
		"deposit,3,3,30.0",
		"withdrawal,2,4,5.0",
	)

	r := newTestRunner(t)
	var out strings.Builder
	summary, err := r.Run(context.Background(), path, &out)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Applied)

	// Account order is unspecified; compare rows as a set.
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "client,available,held,locked,total", lines[0])
	assert.ElementsMatch(t, []string{
		"1,10.0000,0.0000,false,10.0000",
		"2,15.0000,0.0000,false,15.0000",
		"3,30.0000,0.0000,false,30.0000",
	}, lines[1:])
}

func TestNewRunner_NilDependencies(t *testing.T) {
	proc, err := ledger.NewProcessor(logger.NewNop())
	require.NoError(t, err)
	cfg := &config.Config{InputLimitMB: 2}

	_, err = NewRunner(nil, cfg, logger.NewNop())
	assert.Error(t, err)
	_, err = NewRunner(proc, nil, logger.NewNop())
	assert.Error(t, err)
	_, err = NewRunner(proc, cfg, nil)
	assert.Error(t, err)
}
