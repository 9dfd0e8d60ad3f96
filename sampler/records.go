// Package sampler draws the per-day synthetic record sets. Both samplers are
// pure functions of (date, reference tables, rng): all randomness flows
// through the *rand.Rand handle the caller passes in, so a run seeded once
// reproduces byte-identical output.
package sampler

import (
	"time"

	"github.com/synthbank/lcrgen/reference"
)

// Holding is one synthetic HQLA position for a single reporting date.
// Positions are regenerated fresh every day; there is no cross-day identity.
//
// Nullable fields use zero values: empty ISIN/CreditRating, zero Quantity and
// zero MaturityDate mean "not applicable" for the asset category.
type Holding struct {
	HoldingID        string
	AsOfDate         time.Time
	AssetType        string
	ISIN             string
	SecurityName     string
	Currency         string
	Quantity         int64
	MarketValueCCY   float64
	MarketValueBase  float64
	FXRate           float64
	MaturityDate     time.Time
	CreditRating     string
	IndexConstituent bool
	Eligible         bool
	Portfolio        string
	Custodian        string
}

// Deposit is one synthetic deposit account balance for a single reporting
// date. AccountID is deterministic per (customer, day): the Nth account
// sampled for a customer gets ordinal N, reset each day. The same id may
// carry different balances on different days; the generator does not model
// account identity across days.
type Deposit struct {
	AccountID           string
	AsOfDate            time.Time
	CustomerID          string
	DepositType         string
	Currency            string
	BalanceCCY          float64
	BalanceBase         float64
	FXRate              float64
	Insured             bool
	ProductCount        int
	TenureDays          int
	StandingInstruction bool
	Operational         bool
	Counterparty        reference.CounterpartyType
	Segment             reference.CustomerSegment
	Status              reference.AccountStatus
}
