package sites

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewscout/models"
)

const g2Fixture = `
<html><body>
<div class="review">
  <h3 class="review__title">Excellent Acme Platform</h3>
  <div class="review__content">Acme transformed our workflow.</div>
  <time datetime="2023-05-10T08:30:00Z">May 10, 2023</time>
  <div class="reviewer__name">Jane Doe</div>
  <div class="review__rating">
    <svg class="star filled"></svg><svg class="star filled"></svg>
    <svg class="star filled"></svg><svg class="star filled"></svg>
    <svg class="star"></svg>
  </div>
  <span class="review__helpful-count">24</span>
</div>
<div class="review">
  <div class="review__content">No title, no reviewer, no votes.</div>
  <time datetime="2023-05-12">May 12, 2023</time>
  <div class="review__rating"><svg class="star filled"></svg></div>
</div>
<div class="review">
  <h3 class="review__title">Rating is missing here</h3>
  <div class="review__content">This fragment must be dropped.</div>
  <time datetime="2023-05-13">May 13, 2023</time>
</div>
</body></html>`

func TestExtract_G2(t *testing.T) {
	ext := NewExtractor(models.SourceG2, nil)
	reviews := ext.Extract(g2Fixture)

	// Three fragments, one with no rating: exactly one fewer record.
	require.Len(t, reviews, 2)

	first := reviews[0]
	assert.Equal(t, "Excellent Acme Platform", first.Title)
	assert.Equal(t, "Acme transformed our workflow.", first.Description)
	assert.Equal(t, "2023-05-10", first.Date)
	assert.Equal(t, "Jane Doe", first.ReviewerName)
	assert.Equal(t, 4, first.Rating)
	assert.Equal(t, "24", first.HelpfulVotes)
	assert.Equal(t, models.SourceG2, first.Source)

	second := reviews[1]
	assert.Equal(t, DefaultTitle, second.Title)
	assert.Equal(t, DefaultReviewer, second.ReviewerName)
	assert.Equal(t, DefaultVotes, second.HelpfulVotes)
	assert.Equal(t, 1, second.Rating)
}

const capterraFixture = `
<div class="ReviewCard">
  <h3 class="ReviewCard__Title">Solid tool</h3>
  <div class="ReviewCard__Description">Good value for money.</div>
  <span class="ReviewCard__Date">Mar 5, 2023</span>
  <span class="ReviewCard__ReviewerName">Sam Lee</span>
  <div class="ReviewCard__Rating">4/5</div>
  <span class="ReviewCard__HelpfulCount">7</span>
</div>
<div class="ReviewCard">
  <h3 class="ReviewCard__Title">Fractional rating gets dropped</h3>
  <div class="ReviewCard__Description">Body text.</div>
  <span class="ReviewCard__Date">Mar 6, 2023</span>
  <div class="ReviewCard__Rating">4.5/5</div>
</div>
<div class="ReviewCard">
  <h3 class="ReviewCard__Title">Out of band rating gets dropped</h3>
  <span class="ReviewCard__Date">Mar 7, 2023</span>
  <div class="ReviewCard__Rating">9/5</div>
</div>`

func TestExtract_Capterra_RatingText(t *testing.T) {
	ext := NewExtractor(models.SourceCapterra, nil)
	reviews := ext.Extract(capterraFixture)

	require.Len(t, reviews, 1)
	assert.Equal(t, "Solid tool", reviews[0].Title)
	assert.Equal(t, "2023-03-05", reviews[0].Date)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, models.SourceCapterra, reviews[0].Source)
}

const softwareAdviceFixture = `
<div class="user-review">
  <div class="review-title">Works for us</div>
  <div class="review-body">Handles our volume fine.</div>
  <span class="review-date">2 months ago</span>
  <div class="user-name">Pat K</div>
  <div class="star-rating"><svg class="star-filled"></svg><svg class="star-filled"></svg><svg class="star-filled"></svg></div>
  <div class="helpful-votes">3</div>
</div>`

func TestExtract_SoftwareAdvice_RelativeDate(t *testing.T) {
	ext := NewExtractor(models.SourceSoftwareAdvice, nil)
	ext.now = func() time.Time {
		return time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	}

	reviews := ext.Extract(softwareAdviceFixture)
	require.Len(t, reviews, 1)
	assert.Equal(t, "2023-04-15", reviews[0].Date)
	assert.Equal(t, "Pat K", reviews[0].ReviewerName)
	assert.Equal(t, 3, reviews[0].Rating)
	assert.Equal(t, "3", reviews[0].HelpfulVotes)
	assert.Equal(t, models.SourceSoftwareAdvice, reviews[0].Source)
}

func TestExtract_UnusableDateDropsRecord(t *testing.T) {
	markup := `
	<div class="review">
	  <h3 class="review__title">Dated whenever</h3>
	  <div class="review__date">whenever we felt like it</div>
	  <div class="review__rating"><svg class="star filled"></svg></div>
	</div>`

	ext := NewExtractor(models.SourceG2, nil)
	assert.Empty(t, ext.Extract(markup))
}

func TestExtract_EmptyAndGarbageMarkup(t *testing.T) {
	ext := NewExtractor(models.SourceG2, nil)
	assert.Empty(t, ext.Extract(""))
	assert.Empty(t, ext.Extract("<html><body><p>no reviews here</p></body></html>"))
	assert.Empty(t, ext.Extract("<<<<not really markup"))
}

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := map[string]string{
		"Mar 5, 2023":  "2023-03-05",
		"2023-01-31":   "2023-01-31",
		"3 days ago":   "2023-06-12",
		"2 weeks ago":  "2023-06-01",
		"2 months ago": "2023-04-15",
		"1 year ago":   "2022-06-15",
	}
	for in, want := range cases {
		got, err := normalizeDate(in, now)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := normalizeDate("soonish", now)
	assert.Error(t, err)
}
