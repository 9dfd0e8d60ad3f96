package sampler

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/synthbank/lcrgen/reference"
)

// Holding count bounds and policy constants. The count bounds are tunable
// policy, not hard limits; together with the value ranges they size the
// HQLA buffer the calibration profiles assume.
const (
	minHoldings = 150
	maxHoldings = 300 // exclusive

	eligibleProbability = 0.95

	minMaturityDays = 365
	maxMaturityDays = 3650 // exclusive
)

// SampleHoldings generates the HQLA position set for one reporting date.
//
// dayFrac is the day's position in the run (dayIndex/totalDays, 0.0 on the
// first day). It scales the daily noise so values drift slowly over the run:
// variance factor = 1 + dayFrac * U(-0.05, 0.05).
func SampleHoldings(asOf time.Time, dayFrac float64, tables *reference.Tables, rng *rand.Rand) []Holding {
	n := uniformInt(rng, minHoldings, maxHoldings)

	// Asset types and currencies are drawn up front and aligned by position,
	// so the count draw and the categorical draws stay in a fixed order in
	// the RNG stream.
	assetWeights := make([]float64, len(tables.Assets))
	for i, a := range tables.Assets {
		assetWeights[i] = a.Weight
	}
	ccyWeights := make([]float64, len(tables.HoldingCurrencies))
	for i, c := range tables.HoldingCurrencies {
		ccyWeights[i] = c.Weight
	}

	assetIdx := make([]int, n)
	for i := range assetIdx {
		assetIdx[i] = weightedIndex(rng, assetWeights)
	}
	ccyIdx := make([]int, n)
	for i := range ccyIdx {
		ccyIdx[i] = weightedIndex(rng, ccyWeights)
	}

	holdings := make([]Holding, 0, n)
	for i := 0; i < n; i++ {
		cls := tables.Assets[assetIdx[i]]
		ccy := tables.HoldingCurrencies[ccyIdx[i]]

		h := Holding{
			HoldingID: fmt.Sprintf("HOLD-%s-%05d", asOf.Format("20060102"), i+1),
			AsOfDate:  asOf,
			AssetType: cls.Code,
			Currency:  ccy.Code,
			FXRate:    ccy.FXRateToBase,
		}

		switch cls.Category {
		case reference.CategoryEquity:
			h.ISIN = tables.IndexConstituents[rng.Intn(len(tables.IndexConstituents))]
			h.IndexConstituent = true
			h.Quantity = int64(uniformInt(rng, 100, 10_000))
			h.SecurityName = fmt.Sprintf("SMI Stock %s", h.ISIN[len(h.ISIN)-4:])

		case reference.CategoryBond:
			h.ISIN = fmt.Sprintf("%s%08d", ccy.Code, uniformInt(rng, 10_000_000, 100_000_000))
			h.CreditRating = tables.CreditRatings[rng.Intn(len(tables.CreditRatings))]
			h.MaturityDate = asOf.AddDate(0, 0, uniformInt(rng, minMaturityDays, maxMaturityDays))
			h.SecurityName = fmt.Sprintf("%s %s", cls.Code, h.ISIN[len(h.ISIN)-6:])

		case reference.CategoryCash:
			h.SecurityName = cls.Code
		}

		base := marketValueBase(rng, cls.Category)
		varianceFactor := 1.0 + dayFrac*uniform(rng, -0.05, 0.05)
		valueBase := base * varianceFactor

		valueCCY := valueBase
		if ccy.Code != tables.BaseCurrency {
			valueCCY = valueBase / ccy.FXRateToBase
		}
		h.MarketValueBase = round2(valueBase)
		h.MarketValueCCY = round2(valueCCY)

		h.Eligible = rng.Float64() < eligibleProbability
		h.Portfolio = tables.Portfolios[rng.Intn(len(tables.Portfolios))]
		h.Custodian = tables.Custodians[rng.Intn(len(tables.Custodians))]

		holdings = append(holdings, h)
	}
	return holdings
}

// marketValueBase draws the pre-variance position value in base currency.
// Ranges differ by category so the HQLA mix lands near the calibrated total.
func marketValueBase(rng *rand.Rand, cat reference.AssetCategory) float64 {
	switch cat {
	case reference.CategoryCash:
		return uniform(rng, 10_000_000, 200_000_000)
	case reference.CategoryEquity:
		return uniform(rng, 5_000_000, 100_000_000)
	default: // bonds
		return uniform(rng, 20_000_000, 500_000_000)
	}
}
