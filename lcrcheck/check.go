// Package lcrcheck approximates the downstream LCR aggregation over one day
// of emitted files, so a calibration profile can be checked against the band
// it documents.
//
// The emitted rows are loaded into a scratch in-memory SQLite database and
// aggregated in SQL, mirroring how the external warehouse consumes them. The
// result is deliberately approximate: no Level-2 concentration cap and no
// inflow netting. It validates the calibration heuristic, it is not the
// official computation.
package lcrcheck

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/synthbank/lcrgen/reference"
)

// Report is the approximate ratio computed from one day's emitted files.
type Report struct {
	AsOf        time.Time
	HoldingRows int
	DepositRows int

	// EligibleHQLA is the pre-haircut market value of eligible positions.
	EligibleHQLA decimal.Decimal
	// WeightedHQLA applies each asset class's haircut factor.
	WeightedHQLA decimal.Decimal
	// TotalDeposits is the gross deposit base.
	TotalDeposits decimal.Decimal
	// StressedOutflows weights each deposit class by its run-off rate.
	StressedOutflows decimal.Decimal
	// LCRPercent = WeightedHQLA / StressedOutflows x 100.
	LCRPercent decimal.Decimal
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "As of:             %s\n", r.AsOf.Format("2006-01-02"))
	fmt.Fprintf(&b, "Holding rows:      %d\n", r.HoldingRows)
	fmt.Fprintf(&b, "Deposit rows:      %d\n", r.DepositRows)
	fmt.Fprintf(&b, "Eligible HQLA:     %s\n", r.EligibleHQLA.StringFixed(2))
	fmt.Fprintf(&b, "Weighted HQLA:     %s\n", r.WeightedHQLA.StringFixed(2))
	fmt.Fprintf(&b, "Total deposits:    %s\n", r.TotalDeposits.StringFixed(2))
	fmt.Fprintf(&b, "Stressed outflows: %s\n", r.StressedOutflows.StringFixed(2))
	fmt.Fprintf(&b, "Approximate LCR:   %s%%", r.LCRPercent.StringFixed(1))
	return b.String()
}

const schema = `
CREATE TABLE holdings (
	asset_type        TEXT NOT NULL,
	market_value_base REAL NOT NULL,
	eligible          INTEGER NOT NULL
);
CREATE TABLE deposits (
	deposit_type TEXT NOT NULL,
	balance_base REAL NOT NULL
);`

// Run loads one day's holdings and deposits files from dataDir and computes
// the approximate ratio using the haircuts and run-off rates in tables.
func Run(dataDir string, asOf time.Time, tables *reference.Tables) (Report, error) {
	stamp := asOf.Format("20060102")
	holdingsPath := filepath.Join(dataDir, fmt.Sprintf("hqla_holdings_%s.csv", stamp))
	depositsPath := filepath.Join(dataDir, fmt.Sprintf("deposit_balances_%s.csv", stamp))

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return Report{}, fmt.Errorf("open scratch db: %w", err)
	}
	defer db.Close()
	// Every pooled connection would get its own empty :memory: database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return Report{}, fmt.Errorf("create scratch schema: %w", err)
	}

	rep := Report{AsOf: asOf}

	rep.HoldingRows, err = loadHoldings(db, holdingsPath)
	if err != nil {
		return Report{}, err
	}
	rep.DepositRows, err = loadDeposits(db, depositsPath)
	if err != nil {
		return Report{}, err
	}

	if err := aggregate(db, tables, &rep); err != nil {
		return Report{}, err
	}

	if rep.StressedOutflows.IsZero() {
		return Report{}, fmt.Errorf("lcrcheck: zero stressed outflows, ratio undefined (empty deposit file?)")
	}
	rep.LCRPercent = rep.WeightedHQLA.Div(rep.StressedOutflows).Mul(decimal.NewFromInt(100))
	return rep, nil
}

func aggregate(db *sql.DB, tables *reference.Tables, rep *Report) error {
	rows, err := db.Query(`
		SELECT asset_type, SUM(market_value_base)
		FROM holdings WHERE eligible = 1 GROUP BY asset_type`)
	if err != nil {
		return fmt.Errorf("aggregate holdings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var sum float64
		if err := rows.Scan(&code, &sum); err != nil {
			return fmt.Errorf("aggregate holdings: %w", err)
		}
		cls, ok := tables.AssetClass(code)
		if !ok {
			return fmt.Errorf("lcrcheck: asset type %q not in reference tables", code)
		}
		d := decimal.NewFromFloat(sum)
		rep.EligibleHQLA = rep.EligibleHQLA.Add(d)
		rep.WeightedHQLA = rep.WeightedHQLA.Add(d.Mul(decimal.NewFromFloat(cls.Haircut)))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("aggregate holdings: %w", err)
	}

	drows, err := db.Query(`
		SELECT deposit_type, SUM(balance_base)
		FROM deposits GROUP BY deposit_type`)
	if err != nil {
		return fmt.Errorf("aggregate deposits: %w", err)
	}
	defer drows.Close()

	for drows.Next() {
		var code string
		var sum float64
		if err := drows.Scan(&code, &sum); err != nil {
			return fmt.Errorf("aggregate deposits: %w", err)
		}
		cls, ok := tables.DepositClass(code)
		if !ok {
			return fmt.Errorf("lcrcheck: deposit type %q not in reference tables", code)
		}
		d := decimal.NewFromFloat(sum)
		rep.TotalDeposits = rep.TotalDeposits.Add(d)
		rep.StressedOutflows = rep.StressedOutflows.Add(d.Mul(decimal.NewFromFloat(cls.RunOffRate)))
	}
	return drows.Err()
}

func loadHoldings(db *sql.DB, path string) (int, error) {
	return loadCSV(db, path,
		[]string{"asset_type", "market_value_in_base", "is_eligible"},
		`INSERT INTO holdings (asset_type, market_value_base, eligible) VALUES (?, ?, ?)`,
		func(fields []string) ([]any, error) {
			mv, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("bad market_value_in_base %q: %w", fields[1], err)
			}
			eligible := 0
			if fields[2] == "true" {
				eligible = 1
			}
			return []any{fields[0], mv, eligible}, nil
		})
}

func loadDeposits(db *sql.DB, path string) (int, error) {
	return loadCSV(db, path,
		[]string{"deposit_type", "balance_in_base"},
		`INSERT INTO deposits (deposit_type, balance_base) VALUES (?, ?)`,
		func(fields []string) ([]any, error) {
			bal, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("bad balance_in_base %q: %w", fields[1], err)
			}
			return []any{fields[0], bal}, nil
		})
}

// loadCSV streams the named columns of a generated file into the scratch
// table via one prepared insert per row inside a single transaction.
func loadCSV(db *sql.DB, path string, columns []string, insert string, convert func([]string) ([]any, error)) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header %s: %w", path, err)
	}

	idx := make([]int, len(columns))
	for i, want := range columns {
		idx[i] = -1
		for j, name := range header {
			if name == want {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return 0, fmt.Errorf("%s: missing column %q", path, want)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin load %s: %w", path, err)
	}
	stmt, err := tx.Prepare(insert)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("prepare load %s: %w", path, err)
	}
	defer stmt.Close()

	n := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("read %s: %w", path, err)
		}

		fields := make([]string, len(idx))
		for i, j := range idx {
			fields[i] = row[j]
		}
		args, err := convert(fields)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("insert %s: %w", path, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit load %s: %w", path, err)
	}
	return n, nil
}
