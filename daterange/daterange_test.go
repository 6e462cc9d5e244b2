package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	for _, s := range []string{"2023-01-01", "2023-12-31", "2024-02-29", "1999-06-15"} {
		parsed, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, parsed.Format(ISO))
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, s := range []string{
		"2023-13-01",          // month 13
		"2023-01-32",          // day 32
		"2023-02-30",          // impossible
		"2023-01-01T00:00:00", // timestamp, not a date
		"01-01-2023",          // wrong field order
		"2023/01/01",
		"",
		"yesterday",
	} {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestNew_OrderValidated(t *testing.T) {
	_, err := New("2023-06-01", "2023-01-01")
	require.Error(t, err)

	r, err := New("2023-01-01", "2023-01-01")
	require.NoError(t, err)
	assert.Equal(t, r.Start, r.End)
}

func TestContains_InclusiveBounds(t *testing.T) {
	r, err := New("2023-01-10", "2023-01-20")
	require.NoError(t, err)

	day := func(s string) time.Time {
		d, err := Parse(s)
		require.NoError(t, err)
		return d
	}

	assert.True(t, r.Contains(day("2023-01-10")), "start bound")
	assert.True(t, r.Contains(day("2023-01-20")), "end bound")
	assert.True(t, r.Contains(day("2023-01-15")))
	assert.False(t, r.Contains(day("2023-01-09")), "one day before start")
	assert.False(t, r.Contains(day("2023-01-21")), "one day after end")
}

func TestContainsISO_UnparseableNeverInRange(t *testing.T) {
	r, err := New("2023-01-01", "2023-12-31")
	require.NoError(t, err)

	assert.True(t, r.ContainsISO("2023-07-04"))
	assert.False(t, r.ContainsISO("not-a-date"))
	assert.False(t, r.ContainsISO("2023-02-30"))
}

func TestDays(t *testing.T) {
	single, err := New("2023-03-05", "2023-03-05")
	require.NoError(t, err)
	assert.Equal(t, 1, single.Days())

	jan, err := New("2023-01-01", "2023-01-31")
	require.NoError(t, err)
	assert.Equal(t, 31, jan.Days())
}
