package sampler

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/synthbank/lcrgen/reference"
)

// Deposit policy constants. Deposits carry no day-over-day variance:
// the synthetic model treats them as stickier than the trading book.
const (
	minAccountsPerCustomer = 1
	maxAccountsPerCustomer = 4 // exclusive

	minTenureDays = 30
	maxTenureDays = 3650 // exclusive

	standingInstructionRetail = 0.7
	standingInstructionOther  = 0.3

	activeProbability = 0.98
)

// SampleDeposits generates the deposit account set for one reporting date.
// Every supplied customer receives 1-3 accounts; an empty customer list is a
// valid degenerate case and yields an empty, non-nil slice.
//
// Account ids are numbered per customer in sampling order, so for each
// customer the ordinals of a single day's batch are exactly 1..k.
func SampleDeposits(asOf time.Time, customerIDs []string, tables *reference.Tables, rng *rand.Rand) []Deposit {
	// Expand the customer list first, preserving per-customer order so the
	// ordinal numbering below is well defined.
	expanded := make([]string, 0, len(customerIDs)*2)
	for _, id := range customerIDs {
		n := uniformInt(rng, minAccountsPerCustomer, maxAccountsPerCustomer)
		for j := 0; j < n; j++ {
			expanded = append(expanded, id)
		}
	}

	depWeights := make([]float64, len(tables.Deposits))
	for i, d := range tables.Deposits {
		depWeights[i] = d.Weight
	}
	ccyWeights := make([]float64, len(tables.DepositCurrencies))
	for i, c := range tables.DepositCurrencies {
		ccyWeights[i] = c.Weight
	}

	depIdx := make([]int, len(expanded))
	for i := range depIdx {
		depIdx[i] = weightedIndex(rng, depWeights)
	}
	ccyIdx := make([]int, len(expanded))
	for i := range ccyIdx {
		ccyIdx[i] = weightedIndex(rng, ccyWeights)
	}

	deposits := make([]Deposit, 0, len(expanded))
	ordinals := make(map[string]int, len(customerIDs))

	for i, customerID := range expanded {
		cls := tables.Deposits[depIdx[i]]
		ccy := tables.DepositCurrencies[ccyIdx[i]]

		ordinals[customerID]++

		balanceBase := balanceFor(rng, cls.Counterparty)
		balanceCCY := balanceBase
		if ccy.Code != tables.BaseCurrency {
			balanceCCY = balanceBase / ccy.FXRateToBase
		}

		productCount := 1
		if cls.AllowsRelationshipDiscount {
			productCount = uniformInt(rng, 1, 6)
		}

		tenure := uniformInt(rng, minTenureDays, maxTenureDays)

		p := standingInstructionOther
		if cls.Counterparty == reference.Retail {
			p = standingInstructionRetail
		}
		standing := rng.Float64() < p

		status := reference.StatusDormant
		if rng.Float64() < activeProbability {
			status = reference.StatusActive
		}

		deposits = append(deposits, Deposit{
			AccountID:           fmt.Sprintf("%s_DEP_%02d", customerID, ordinals[customerID]),
			AsOfDate:            asOf,
			CustomerID:          customerID,
			DepositType:         cls.Code,
			Currency:            ccy.Code,
			BalanceCCY:          round2(balanceCCY),
			BalanceBase:         round2(balanceBase),
			FXRate:              ccy.FXRateToBase,
			Insured:             cls.Counterparty == reference.Retail && balanceBase <= reference.InsuranceCeiling,
			ProductCount:        productCount,
			TenureDays:          tenure,
			StandingInstruction: standing,
			Operational:         cls.Operational,
			Counterparty:        cls.Counterparty,
			Segment:             reference.SegmentFor(cls.Counterparty, balanceBase),
			Status:              status,
		})
	}
	return deposits
}

// balanceFor draws the account balance in base currency by counterparty type.
func balanceFor(rng *rand.Rand, cp reference.CounterpartyType) float64 {
	switch cp {
	case reference.Retail:
		return uniform(rng, 5_000, 80_000)
	case reference.Corporate:
		return uniform(rng, 30_000, 800_000)
	default: // financial institutions
		return uniform(rng, 100_000, 3_000_000)
	}
}
