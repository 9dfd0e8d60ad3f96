// Package reference holds the static taxonomies the samplers draw from:
// HQLA asset classes, deposit product classes, currency distributions and
// the small cosmetic enumerations (ratings, custodians, portfolios).
//
// Tables are immutable after construction. Every weighted list must sum to
// 1.0 within WeightTolerance; Validate enforces that before any sampling
// happens so a miscalibrated table fails the run up front.
package reference

import (
	"fmt"
	"math"
)

// WeightTolerance is the allowed deviation of a weight list's sum from 1.0.
const WeightTolerance = 1e-9

// InsuranceCeiling is the deposit-insurance limit in base currency.
// Retail balances at or below this are insured.
const InsuranceCeiling = 100_000.0

// RegulatoryLevel is the Basel HQLA quality tier of an asset class.
type RegulatoryLevel string

const (
	Level1  RegulatoryLevel = "L1"
	Level2A RegulatoryLevel = "L2A"
	Level2B RegulatoryLevel = "L2B"
)

// AssetCategory drives the per-position field rules in the holding sampler.
type AssetCategory string

const (
	CategoryCash   AssetCategory = "CASH"
	CategoryBond   AssetCategory = "BOND"
	CategoryEquity AssetCategory = "EQUITY"
)

// CounterpartyType classifies a deposit product's customer.
type CounterpartyType string

const (
	Retail               CounterpartyType = "RETAIL"
	Corporate            CounterpartyType = "CORPORATE"
	FinancialInstitution CounterpartyType = "FINANCIAL_INSTITUTION"
)

// CustomerSegment is derived from counterparty type and balance, never drawn.
type CustomerSegment string

const (
	SegmentMass      CustomerSegment = "MASS"
	SegmentAffluent  CustomerSegment = "AFFLUENT"
	SegmentPrivate   CustomerSegment = "PRIVATE"
	SegmentCorporate CustomerSegment = "CORPORATE"
)

// AccountStatus of a deposit account.
type AccountStatus string

const (
	StatusActive  AccountStatus = "ACTIVE"
	StatusDormant AccountStatus = "DORMANT"
)

// HQLAAssetClass describes one asset taxonomy entry.
type HQLAAssetClass struct {
	Code     string          `yaml:"code"`
	Weight   float64         `yaml:"weight"`
	Level    RegulatoryLevel `yaml:"level"`
	Haircut  float64         `yaml:"haircut"`
	Category AssetCategory   `yaml:"category"`
}

// DepositProductClass describes one deposit taxonomy entry.
type DepositProductClass struct {
	Code                       string           `yaml:"code"`
	Weight                     float64          `yaml:"weight"`
	Counterparty               CounterpartyType `yaml:"counterparty"`
	RunOffRate                 float64          `yaml:"run_off_rate"`
	AllowsRelationshipDiscount bool             `yaml:"allows_relationship_discount"`
	Operational                bool             `yaml:"operational"`
}

// Currency is one entry of a weighted currency distribution. FXRateToBase is
// units of base currency per one unit of this currency (1.0 for base).
type Currency struct {
	Code         string  `yaml:"code"`
	Weight       float64 `yaml:"weight"`
	FXRateToBase float64 `yaml:"fx_rate_to_base"`
}

// Tables bundles every reference table a generation run needs.
type Tables struct {
	BaseCurrency string `yaml:"base_currency"`

	Assets            []HQLAAssetClass      `yaml:"assets"`
	Deposits          []DepositProductClass `yaml:"deposits"`
	HoldingCurrencies []Currency            `yaml:"holding_currencies"`
	DepositCurrencies []Currency            `yaml:"deposit_currencies"`

	CreditRatings     []string `yaml:"credit_ratings"`
	IndexConstituents []string `yaml:"index_constituents"`
	Portfolios        []string `yaml:"portfolios"`
	Custodians        []string `yaml:"custodians"`
}

// Validate checks every weighted list and the static sets. It is the single
// fail-fast gate: a Tables value that passes Validate never fails during
// sampling.
func (t *Tables) Validate() error {
	if t.BaseCurrency == "" {
		return fmt.Errorf("reference: base_currency is required")
	}

	if err := checkWeights("assets", len(t.Assets), func(i int) float64 { return t.Assets[i].Weight }); err != nil {
		return err
	}
	if err := checkWeights("deposits", len(t.Deposits), func(i int) float64 { return t.Deposits[i].Weight }); err != nil {
		return err
	}
	if err := t.validateCurrencies("holding_currencies", t.HoldingCurrencies); err != nil {
		return err
	}
	if err := t.validateCurrencies("deposit_currencies", t.DepositCurrencies); err != nil {
		return err
	}

	for _, a := range t.Assets {
		if a.Haircut < 0 || a.Haircut > 1 {
			return fmt.Errorf("reference: assets: %s haircut %.4f outside [0,1]", a.Code, a.Haircut)
		}
		switch a.Level {
		case Level1, Level2A, Level2B:
		default:
			return fmt.Errorf("reference: assets: %s has unknown level %q", a.Code, a.Level)
		}
		switch a.Category {
		case CategoryCash, CategoryBond, CategoryEquity:
		default:
			return fmt.Errorf("reference: assets: %s has unknown category %q", a.Code, a.Category)
		}
	}
	for _, d := range t.Deposits {
		if d.RunOffRate < 0 || d.RunOffRate > 1 {
			return fmt.Errorf("reference: deposits: %s run_off_rate %.4f outside [0,1]", d.Code, d.RunOffRate)
		}
		switch d.Counterparty {
		case Retail, Corporate, FinancialInstitution:
		default:
			return fmt.Errorf("reference: deposits: %s has unknown counterparty %q", d.Code, d.Counterparty)
		}
	}

	if len(t.CreditRatings) == 0 {
		return fmt.Errorf("reference: credit_ratings is empty")
	}
	if len(t.IndexConstituents) == 0 {
		return fmt.Errorf("reference: index_constituents is empty")
	}
	if len(t.Portfolios) == 0 {
		return fmt.Errorf("reference: portfolios is empty")
	}
	if len(t.Custodians) == 0 {
		return fmt.Errorf("reference: custodians is empty")
	}
	return nil
}

func (t *Tables) validateCurrencies(name string, cs []Currency) error {
	if err := checkWeights(name, len(cs), func(i int) float64 { return cs[i].Weight }); err != nil {
		return err
	}
	for _, c := range cs {
		if c.FXRateToBase <= 0 {
			return fmt.Errorf("reference: %s: %s fx_rate_to_base must be positive", name, c.Code)
		}
		if c.Code == t.BaseCurrency && c.FXRateToBase != 1.0 {
			return fmt.Errorf("reference: %s: base currency %s must have fx_rate_to_base 1.0", name, c.Code)
		}
	}
	return nil
}

func checkWeights(name string, n int, weight func(int) float64) error {
	if n == 0 {
		return fmt.Errorf("reference: %s is empty", name)
	}
	var sum float64
	for i := 0; i < n; i++ {
		w := weight(i)
		if w < 0 {
			return fmt.Errorf("reference: %s: negative weight at index %d", name, i)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("reference: %s weights sum to %.12f, want 1.0", name, sum)
	}
	return nil
}

// FXRate returns the base-conversion rate for a currency code, searching both
// distributions. Unknown codes fall back to 1.0; Validate guarantees sampled
// codes always resolve.
func (t *Tables) FXRate(code string) float64 {
	for _, c := range t.HoldingCurrencies {
		if c.Code == code {
			return c.FXRateToBase
		}
	}
	for _, c := range t.DepositCurrencies {
		if c.Code == code {
			return c.FXRateToBase
		}
	}
	return 1.0
}

// DepositClass looks up a deposit product class by code.
func (t *Tables) DepositClass(code string) (DepositProductClass, bool) {
	for _, d := range t.Deposits {
		if d.Code == code {
			return d, true
		}
	}
	return DepositProductClass{}, false
}

// AssetClass looks up an HQLA asset class by code.
func (t *Tables) AssetClass(code string) (HQLAAssetClass, bool) {
	for _, a := range t.Assets {
		if a.Code == code {
			return a, true
		}
	}
	return HQLAAssetClass{}, false
}

// SegmentFor derives the customer segment from counterparty type and base
// balance. Pure function; the thresholds are the only inputs besides the
// arguments.
func SegmentFor(cp CounterpartyType, balanceBase float64) CustomerSegment {
	if cp != Retail {
		return SegmentCorporate
	}
	switch {
	case balanceBase < 50_000:
		return SegmentMass
	case balanceBase < 250_000:
		return SegmentAffluent
	default:
		return SegmentPrivate
	}
}
