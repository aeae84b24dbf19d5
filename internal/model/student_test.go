package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradesRoundTrip(t *testing.T) {
	t.Parallel()

	// Ordering and duplicates must survive the column round-trip.
	in := []string{"B", "A", "A", "C+"}
	raw, err := EncodeGrades(in)
	require.NoError(t, err)
	assert.Equal(t, in, DecodeGrades(raw))
}

func TestGradesEmptyAndNil(t *testing.T) {
	t.Parallel()

	raw, err := EncodeGrades(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	assert.Equal(t, []string{}, DecodeGrades(""))
	assert.Equal(t, []string{}, DecodeGrades("not json"))
	assert.Equal(t, []string{}, DecodeGrades("null"))
}
