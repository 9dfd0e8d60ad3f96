package runid

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_New(t *testing.T) {
	t.Parallel()

	src := NewSource()
	a := src.New()
	b := src.New()

	_, err := ulid.Parse(a)
	require.NoError(t, err)
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "ids issued in order should sort in order")
}

func TestSource_IndependentSources(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, NewSource().New(), NewSource().New())
}
