package demo

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewscout/daterange"
	"reviewscout/models"
)

func TestGenerate_AllRecordsValidAndInWindow(t *testing.T) {
	r, err := daterange.New("2023-01-01", "2023-01-31")
	require.NoError(t, err)

	g := NewGenerator(42)
	reviews := g.Generate("Acme", r, models.SourceG2, 200)
	require.Len(t, reviews, 200)

	for _, rev := range reviews {
		assert.True(t, rev.RatingValid(), "rating %d", rev.Rating)
		assert.True(t, r.ContainsISO(rev.Date), "date %s", rev.Date)
		assert.Equal(t, models.SourceG2, rev.Source)
		assert.Contains(t, rev.Title, "Acme")
		assert.Contains(t, rev.Description, "Acme")
		assert.NotEmpty(t, rev.ReviewerName)

		votes, err := strconv.Atoi(rev.HelpfulVotes)
		require.NoError(t, err, rev.HelpfulVotes)
		assert.GreaterOrEqual(t, votes, 0)
		assert.LessOrEqual(t, votes, maxVotes)
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	r, err := daterange.New("2023-06-01", "2023-06-30")
	require.NoError(t, err)

	a := NewGenerator(7).Generate("Globex", r, models.SourceCapterra, 25)
	b := NewGenerator(7).Generate("Globex", r, models.SourceCapterra, 25)
	assert.Equal(t, a, b)

	c := NewGenerator(8).Generate("Globex", r, models.SourceCapterra, 25)
	assert.NotEqual(t, a, c)
}

func TestGenerate_SingleDayWindow(t *testing.T) {
	r, err := daterange.New("2023-03-05", "2023-03-05")
	require.NoError(t, err)

	reviews := NewGenerator(1).Generate("Initech", r, models.SourceSoftwareAdvice, 10)
	for _, rev := range reviews {
		assert.Equal(t, "2023-03-05", rev.Date)
	}
}

func TestGenerate_DistinctContent(t *testing.T) {
	r, err := daterange.New("2023-01-01", "2023-12-31")
	require.NoError(t, err)

	reviews := NewGenerator(3).Generate("Hooli", r, models.SourceG2, 50)
	titles := map[string]bool{}
	for _, rev := range reviews {
		titles[rev.Title] = true
	}
	// With 6 templates and 50 draws, more than one title must appear.
	assert.Greater(t, len(titles), 1)

	for title := range titles {
		assert.False(t, strings.Contains(title, "%s"), "unexpanded template: %s", title)
	}
}
