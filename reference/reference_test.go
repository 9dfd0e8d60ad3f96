package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinProfilesValidate(t *testing.T) {
	t.Parallel()

	for _, p := range Profiles() {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			t.Parallel()
			require.NoError(t, p.Tables.Validate())
		})
	}
}

func TestValidate_WeightSum(t *testing.T) {
	t.Parallel()

	t.Run("asset weights off by too much", func(t *testing.T) {
		t.Parallel()

		tb := nearThresholdProfile().Tables
		tb.Assets[0].Weight += 0.01
		err := tb.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "assets")
	})

	t.Run("deposit weights off", func(t *testing.T) {
		t.Parallel()

		tb := nearThresholdProfile().Tables
		tb.Deposits[0].Weight = 0
		err := tb.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deposits")
	})

	t.Run("deviation within tolerance passes", func(t *testing.T) {
		t.Parallel()

		tb := nearThresholdProfile().Tables
		tb.Assets[0].Weight += 1e-12
		require.NoError(t, tb.Validate())
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		tb := nearThresholdProfile().Tables
		tb.HoldingCurrencies = nil
		err := tb.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "holding_currencies")
	})
}

func TestValidate_FXRates(t *testing.T) {
	t.Parallel()

	t.Run("base currency rate must be 1", func(t *testing.T) {
		t.Parallel()

		tb := nearThresholdProfile().Tables
		tb.HoldingCurrencies[0].FXRateToBase = 0.99 // CHF
		err := tb.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base currency")
	})

	t.Run("non-positive rate rejected", func(t *testing.T) {
		t.Parallel()

		tb := nearThresholdProfile().Tables
		tb.DepositCurrencies[1].FXRateToBase = 0
		require.Error(t, tb.Validate())
	})
}

func TestProfileForTarget(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "stressed", ProfileForTarget(80).Name)
	assert.Equal(t, "near-threshold", ProfileForTarget(95).Name)
	assert.Equal(t, "near-threshold", ProfileForTarget(100).Name)
	assert.Equal(t, "buffer", ProfileForTarget(110).Name)
}

func TestSegmentFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cp      CounterpartyType
		balance float64
		want    CustomerSegment
	}{
		{Retail, 49_999.99, SegmentMass},
		{Retail, 50_000, SegmentAffluent},
		{Retail, 249_999.99, SegmentAffluent},
		{Retail, 250_000, SegmentPrivate},
		{Corporate, 1_000, SegmentCorporate},
		{FinancialInstitution, 5_000_000, SegmentCorporate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SegmentFor(tt.cp, tt.balance), "%s %.2f", tt.cp, tt.balance)
	}
}

func TestFXRate(t *testing.T) {
	t.Parallel()

	tb := nearThresholdProfile().Tables
	assert.Equal(t, 1.0, tb.FXRate("CHF"))
	assert.Equal(t, 0.95, tb.FXRate("EUR"))
	assert.Equal(t, 1.12, tb.FXRate("GBP"))
	assert.Equal(t, 1.0, tb.FXRate("JPY")) // unknown falls back to 1
}

func TestLoadProfile(t *testing.T) {
	t.Parallel()

	t.Run("round trip through yaml", func(t *testing.T) {
		t.Parallel()

		src := `
name: custom
description: test profile
band_low: 90
band_high: 110
tables:
  base_currency: CHF
  assets:
    - {code: CASH_SNB, weight: 0.5, level: L1, haircut: 1.0, category: CASH}
    - {code: GOVT_BOND_CHF, weight: 0.5, level: L1, haircut: 1.0, category: BOND}
  deposits:
    - {code: RETAIL_STABLE, weight: 1.0, counterparty: RETAIL, run_off_rate: 0.05}
  holding_currencies:
    - {code: CHF, weight: 1.0, fx_rate_to_base: 1.0}
  deposit_currencies:
    - {code: CHF, weight: 1.0, fx_rate_to_base: 1.0}
  credit_ratings: [AAA]
  index_constituents: [CH0012032048]
  portfolios: [TREASURY_LIQ]
  custodians: [SIX SIS]
`
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		p, err := LoadProfile(path)
		require.NoError(t, err)
		assert.Equal(t, "custom", p.Name)
		assert.Len(t, p.Tables.Assets, 2)
	})

	t.Run("invalid weights rejected", func(t *testing.T) {
		t.Parallel()

		src := `
name: broken
tables:
  base_currency: CHF
  assets:
    - {code: CASH_SNB, weight: 0.7, level: L1, haircut: 1.0, category: CASH}
  deposits:
    - {code: RETAIL_STABLE, weight: 1.0, counterparty: RETAIL, run_off_rate: 0.05}
  holding_currencies:
    - {code: CHF, weight: 1.0, fx_rate_to_base: 1.0}
  deposit_currencies:
    - {code: CHF, weight: 1.0, fx_rate_to_base: 1.0}
  credit_ratings: [AAA]
  index_constituents: [CH0012032048]
  portfolios: [TREASURY_LIQ]
  custodians: [SIX SIS]
`
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		_, err := LoadProfile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "assets")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
