// Package sink serializes a day's generated record sets to delimited files.
// One file per record type per day, named by record type and ISO-basic date.
// There is no transactional guarantee between the two files of a day: a
// failed write surfaces to the caller rather than being rolled back.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/synthbank/lcrgen/sampler"
)

// Sink receives one day's rows at a time from the time-series driver.
type Sink interface {
	WriteHoldings(asOf time.Time, hs []sampler.Holding) error
	WriteDeposits(asOf time.Time, ds []sampler.Deposit) error
}

// HoldingHeader is the holdings file header row.
var HoldingHeader = []string{
	"holding_id", "as_of_date", "asset_type", "security_identifier",
	"security_name", "currency", "quantity", "market_value_in_currency",
	"market_value_in_base", "fx_rate", "maturity_date", "credit_rating",
	"is_index_constituent", "is_eligible", "portfolio_code", "custodian",
}

// DepositHeader is the deposits file header row.
var DepositHeader = []string{
	"account_id", "as_of_date", "customer_id", "deposit_type", "currency",
	"balance_in_currency", "balance_in_base", "fx_rate", "is_insured",
	"product_count", "tenure_days", "has_standing_instruction",
	"is_operational", "counterparty_type", "customer_segment", "account_status",
}

// CSVSink writes both record types as CSV files into a single directory.
type CSVSink struct {
	dir string
}

// NewCSV creates the output directory if needed and returns a sink over it.
func NewCSV(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &CSVSink{dir: dir}, nil
}

// HoldingsPath returns the holdings file path for a date.
func (s *CSVSink) HoldingsPath(asOf time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("hqla_holdings_%s.csv", asOf.Format("20060102")))
}

// DepositsPath returns the deposits file path for a date.
func (s *CSVSink) DepositsPath(asOf time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("deposit_balances_%s.csv", asOf.Format("20060102")))
}

func (s *CSVSink) WriteHoldings(asOf time.Time, hs []sampler.Holding) error {
	rows := make([][]string, 0, len(hs))
	for _, h := range hs {
		rows = append(rows, holdingRow(h))
	}
	return writeFile(s.HoldingsPath(asOf), HoldingHeader, rows)
}

func (s *CSVSink) WriteDeposits(asOf time.Time, ds []sampler.Deposit) error {
	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, depositRow(d))
	}
	return writeFile(s.DepositsPath(asOf), DepositHeader, rows)
}

func holdingRow(h sampler.Holding) []string {
	quantity := ""
	if h.Quantity > 0 {
		quantity = strconv.FormatInt(h.Quantity, 10)
	}
	maturity := ""
	if !h.MaturityDate.IsZero() {
		maturity = h.MaturityDate.Format("2006-01-02")
	}
	return []string{
		h.HoldingID,
		h.AsOfDate.Format("2006-01-02"),
		h.AssetType,
		h.ISIN,
		h.SecurityName,
		h.Currency,
		quantity,
		money(h.MarketValueCCY),
		money(h.MarketValueBase),
		rate(h.FXRate),
		maturity,
		h.CreditRating,
		strconv.FormatBool(h.IndexConstituent),
		strconv.FormatBool(h.Eligible),
		h.Portfolio,
		h.Custodian,
	}
}

func depositRow(d sampler.Deposit) []string {
	return []string{
		d.AccountID,
		d.AsOfDate.Format("2006-01-02"),
		d.CustomerID,
		d.DepositType,
		d.Currency,
		money(d.BalanceCCY),
		money(d.BalanceBase),
		rate(d.FXRate),
		strconv.FormatBool(d.Insured),
		strconv.Itoa(d.ProductCount),
		strconv.Itoa(d.TenureDays),
		strconv.FormatBool(d.StandingInstruction),
		strconv.FormatBool(d.Operational),
		string(d.Counterparty),
		string(d.Segment),
		string(d.Status),
	}
}

func writeFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write row %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// money formats monetary amounts with exactly 2 decimal places.
func money(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// rate formats FX rates with 4 decimal places.
func rate(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}
