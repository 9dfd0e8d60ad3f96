package series

import (
	"encoding/csv"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthbank/lcrgen/customers"
	"github.com/synthbank/lcrgen/reference"
	"github.com/synthbank/lcrgen/sampler"
	"github.com/synthbank/lcrgen/sink"
)

func newRunner(t *testing.T, dir string, seed int64) *Runner {
	t.Helper()

	p := reference.ProfileForTarget(95)
	s, err := sink.NewCSV(dir)
	require.NoError(t, err)

	return &Runner{
		Tables:           &p.Tables,
		Sink:             s,
		Rand:             rand.New(rand.NewSource(seed)),
		Log:              zerolog.Nop(),
		DefaultCustomers: 10,
	}
}

func start() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func countDataRows(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return len(rows) - 1 // minus header
}

func TestRunner_SingleDayScenario(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newRunner(t, dir, 42)

	res, err := r.Run(start(), 1, nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Holdings, 150)
	assert.LessOrEqual(t, res.Holdings, 299)
	assert.GreaterOrEqual(t, res.Deposits, 10)
	assert.LessOrEqual(t, res.Deposits, 30)
	assert.Equal(t, 10, res.Customers)
	assert.Equal(t, 2, res.Files)
	assert.True(t, res.Start.Equal(res.End))

	holdPath := filepath.Join(dir, "hqla_holdings_20240101.csv")
	depPath := filepath.Join(dir, "deposit_balances_20240101.csv")
	assert.Equal(t, res.Holdings, countDataRows(t, holdPath))
	assert.Equal(t, res.Deposits, countDataRows(t, depPath))

	// Every row carries the generated day's date.
	data, err := os.ReadFile(holdPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	for _, line := range lines[1:] {
		assert.Contains(t, line, "2024-01-01")
	}
}

func TestRunner_MultiDayTotalsAndFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newRunner(t, dir, 42)

	res, err := r.Run(start(), 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Files)
	assert.Equal(t, start().AddDate(0, 0, 4), res.End)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 10)

	var fromFiles int
	for day := 0; day < 5; day++ {
		d := start().AddDate(0, 0, day).Format("20060102")
		fromFiles += countDataRows(t, filepath.Join(dir, "hqla_holdings_"+d+".csv"))
	}
	assert.Equal(t, res.Holdings, fromFiles)
}

func TestRunner_DeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	dirA := t.TempDir()
	dirB := t.TempDir()

	resA, err := newRunner(t, dirA, 42).Run(start(), 3, nil)
	require.NoError(t, err)
	resB, err := newRunner(t, dirB, 42).Run(start(), 3, nil)
	require.NoError(t, err)
	assert.Equal(t, resA, resB)

	entries, err := os.ReadDir(dirA)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	for _, e := range entries {
		a, err := os.ReadFile(filepath.Join(dirA, e.Name()))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, e.Name()))
		require.NoError(t, err)
		assert.Equal(t, a, b, "file %s differs between identical runs", e.Name())
	}

	// A different seed must not reproduce the same files.
	dirC := t.TempDir()
	_, err = newRunner(t, dirC, 43).Run(start(), 3, nil)
	require.NoError(t, err)
	a, _ := os.ReadFile(filepath.Join(dirA, "hqla_holdings_20240101.csv"))
	c, _ := os.ReadFile(filepath.Join(dirC, "hqla_holdings_20240101.csv"))
	assert.NotEqual(t, a, c)
}

func TestRunner_ExplicitCustomerList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newRunner(t, dir, 42)
	ids := []string{"ACME-1", "ACME-2", "ACME-3", "ACME-4", "ACME-5"}

	res, err := r.Run(start(), 1, ids)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Customers)

	data, err := os.ReadFile(filepath.Join(dir, "deposit_balances_20240101.csv"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "CUST-", "synthetic ids must not appear")

	f, err := os.Open(filepath.Join(dir, "deposit_balances_20240101.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	for _, row := range rows[1:] {
		assert.Contains(t, ids, row[2], "customer_id outside the supplied list")
	}
}

func TestRunner_EmptyCustomerFileYieldsNoDeposits(t *testing.T) {
	t.Parallel()

	// A header-only extract is an explicit empty population; the run must
	// not fall back to DefaultCustomers synthesis.
	path := filepath.Join(t.TempDir(), "customers.csv")
	require.NoError(t, os.WriteFile(path, []byte("customer_id,country\n"), 0o644))
	ids, err := customers.LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, ids)

	dir := t.TempDir()
	r := newRunner(t, dir, 42)

	res, err := r.Run(start(), 1, ids)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Customers)
	assert.Equal(t, 0, res.Deposits)

	depPath := filepath.Join(dir, "deposit_balances_20240101.csv")
	assert.Equal(t, 0, countDataRows(t, depPath))
	data, err := os.ReadFile(depPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "CUST-", "synthetic ids must not appear")
}

func TestRunner_Validation(t *testing.T) {
	t.Parallel()

	p := reference.ProfileForTarget(95)
	s, err := sink.NewCSV(t.TempDir())
	require.NoError(t, err)

	t.Run("missing tables", func(t *testing.T) {
		t.Parallel()
		r := &Runner{Sink: s, Rand: rand.New(rand.NewSource(1))}
		_, err := r.Run(start(), 1, nil)
		require.Error(t, err)
	})

	t.Run("missing sink", func(t *testing.T) {
		t.Parallel()
		r := &Runner{Tables: &p.Tables, Rand: rand.New(rand.NewSource(1))}
		_, err := r.Run(start(), 1, nil)
		require.Error(t, err)
	})

	t.Run("missing rand", func(t *testing.T) {
		t.Parallel()
		r := &Runner{Tables: &p.Tables, Sink: s}
		_, err := r.Run(start(), 1, nil)
		require.Error(t, err)
	})

	t.Run("non-positive days", func(t *testing.T) {
		t.Parallel()
		r := &Runner{Tables: &p.Tables, Sink: s, Rand: rand.New(rand.NewSource(1))}
		_, err := r.Run(start(), 0, nil)
		require.Error(t, err)
	})
}

// failingSink fails deposit writes to exercise error propagation.
type failingSink struct {
	real sink.Sink
}

func (f *failingSink) WriteHoldings(asOf time.Time, hs []sampler.Holding) error {
	return f.real.WriteHoldings(asOf, hs)
}

func (f *failingSink) WriteDeposits(asOf time.Time, ds []sampler.Deposit) error {
	return errors.New("disk full")
}

func TestRunner_SinkErrorSurfaces(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newRunner(t, dir, 42)
	r.Sink = &failingSink{real: r.Sink}

	_, err := r.Run(start(), 2, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deposits")
	assert.Contains(t, err.Error(), "2024-01-01")

	// The holdings file written before the failure stays on disk as-is.
	_, statErr := os.Stat(filepath.Join(dir, "hqla_holdings_20240101.csv"))
	assert.NoError(t, statErr)
}
