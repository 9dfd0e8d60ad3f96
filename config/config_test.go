package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	assert.Equal(t, 90, c.Days)
	assert.Equal(t, 1000, c.Customers)
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, 95.0, c.TargetLCR)

	// Defaults alone lack an output dir.
	require.Error(t, c.Validate())
	c.OutputDir = "out"
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		c := Default()
		c.OutputDir = "out"
		return c
	}

	t.Run("bad days", func(t *testing.T) {
		t.Parallel()
		c := base()
		c.Days = 0
		require.Error(t, c.Validate())
	})

	t.Run("bad start date", func(t *testing.T) {
		t.Parallel()
		c := base()
		c.StartDate = "01.01.2024"
		require.Error(t, c.Validate())
	})

	t.Run("zero customers ok with customer file", func(t *testing.T) {
		t.Parallel()
		c := base()
		c.Customers = 0
		require.Error(t, c.Validate())
		c.CustomerFile = "customers.csv"
		require.NoError(t, c.Validate())
	})

	t.Run("bad target lcr", func(t *testing.T) {
		t.Parallel()
		c := base()
		c.TargetLCR = 0
		require.Error(t, c.Validate())
	})
}

func TestStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)

	t.Run("explicit", func(t *testing.T) {
		t.Parallel()
		c := Default()
		c.StartDate = "2024-01-01"
		got, err := c.Start(now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("default ends today", func(t *testing.T) {
		t.Parallel()
		c := Default()
		c.Days = 7
		got, err := c.Start(now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC), got)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults", func(t *testing.T) {
		t.Parallel()

		src := "output_dir: data/lcr\ndays: 30\nseed: 7\n"
		path := filepath.Join(t.TempDir(), "run.yaml")
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		c, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "data/lcr", c.OutputDir)
		assert.Equal(t, 30, c.Days)
		assert.Equal(t, int64(7), c.Seed)
		assert.Equal(t, 1000, c.Customers, "absent fields keep defaults")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
