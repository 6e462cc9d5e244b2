package sites

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/araddon/dateparse"

	"reviewscout/daterange"
	"reviewscout/models"
)

// Field defaults when a source omits optional data.
const (
	DefaultTitle    = "No Title"
	DefaultReviewer = "Anonymous"
	DefaultVotes    = "0"
)

// Extractor maps one platform's markup to normalized review records.
type Extractor struct {
	source  models.Source
	profile *Profile

	// now is the reference time for relative dates ("2 months ago");
	// overridable in tests.
	now func() time.Time
}

// NewExtractor builds an extractor for a platform. A nil profile selects
// the built-in cues for that platform.
func NewExtractor(source models.Source, profile *Profile) *Extractor {
	if profile == nil {
		profile = DefaultProfile(source)
	}
	return &Extractor{source: source, profile: profile, now: time.Now}
}

// Source returns the platform this extractor serves.
func (e *Extractor) Source() models.Source { return e.source }

// Extract locates every review fragment in the markup and returns the
// fragments that normalize cleanly. A malformed fragment is skipped and
// logged at debug level; it never aborts extraction of the rest.
func (e *Extractor) Extract(markup string) []models.Review {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		slog.Debug("unparseable markup", "source", e.source, "err", err)
		return nil
	}

	var out []models.Review
	doc.FindMatcher(e.profile.container).Each(func(i int, s *goquery.Selection) {
		rev, err := e.parseFragment(s)
		if err != nil {
			slog.Debug("skipping malformed review fragment",
				"source", e.source, "fragment", i, "err", err)
			return
		}
		out = append(out, rev)
	})
	return out
}

func (e *Extractor) parseFragment(s *goquery.Selection) (models.Review, error) {
	date, err := e.fragmentDate(s)
	if err != nil {
		return models.Review{}, err
	}
	rating, err := e.fragmentRating(s)
	if err != nil {
		return models.Review{}, err
	}

	title := textOf(s, e.profile.title)
	if title == "" {
		title = DefaultTitle
	}
	reviewer := textOf(s, e.profile.reviewer)
	if reviewer == "" {
		reviewer = DefaultReviewer
	}
	votes := textOf(s, e.profile.helpfulVotes)
	if votes == "" {
		votes = DefaultVotes
	}

	return models.Review{
		Title:        title,
		Description:  textOf(s, e.profile.body),
		Date:         date,
		ReviewerName: reviewer,
		Rating:       rating,
		HelpfulVotes: votes,
		Source:       e.source,
	}, nil
}

// fragmentDate prefers a machine-readable datetime attribute and falls back
// to normalizing human-readable date text. A fragment whose date cannot be
// resolved to a valid ISO date is dropped.
func (e *Extractor) fragmentDate(s *goquery.Selection) (string, error) {
	if e.profile.dateAttr != nil {
		if dt, ok := s.FindMatcher(e.profile.dateAttr).First().Attr("datetime"); ok && len(dt) >= len(daterange.ISO) {
			iso := dt[:len(daterange.ISO)]
			if _, err := daterange.Parse(iso); err == nil {
				return iso, nil
			}
		}
	}
	if e.profile.dateText != nil {
		if txt := textOf(s, e.profile.dateText); txt != "" {
			return normalizeDate(txt, e.now())
		}
	}
	return "", models.NewScrapeError(models.ErrCodeMalformedRecord, "fragment has no usable date", nil)
}

// fragmentRating counts filled stars first, then falls back to "N/5" text.
// The rating must come out as an integer in 1..5 or the fragment is dropped.
func (e *Extractor) fragmentRating(s *goquery.Selection) (int, error) {
	if e.profile.ratingStars != nil {
		if n := s.FindMatcher(e.profile.ratingStars).Length(); n > 0 {
			return checkRating(n)
		}
	}
	if e.profile.ratingText != nil {
		txt := textOf(s, e.profile.ratingText)
		if i := strings.IndexByte(txt, '/'); i > 0 {
			n, err := strconv.Atoi(strings.TrimSpace(txt[:i]))
			if err != nil {
				return 0, models.NewScrapeError(models.ErrCodeMalformedRecord,
					"rating text is not an integer: "+txt, err)
			}
			return checkRating(n)
		}
	}
	return 0, models.NewScrapeError(models.ErrCodeMalformedRecord, "fragment has no rating", nil)
}

func checkRating(n int) (int, error) {
	if n < 1 || n > 5 {
		return 0, models.NewScrapeError(models.ErrCodeMalformedRecord,
			"rating "+strconv.Itoa(n)+" outside 1..5", nil)
	}
	return n, nil
}

// textOf returns the trimmed text of the first match, or "" when the cue is
// unset or nothing matches.
func textOf(s *goquery.Selection, sel cascadia.Selector) string {
	if sel == nil {
		return ""
	}
	return strings.TrimSpace(s.FindMatcher(sel).First().Text())
}

var relativeDateRe = regexp.MustCompile(`(?i)(\d+)\s+(day|week|month|year)s?\s+ago`)

// normalizeDate turns the date text a site renders into ISO form. It
// understands relative phrasing ("3 weeks ago") against the reference time
// and otherwise defers to lenient parsing for formats like "Mar 5, 2023".
func normalizeDate(text string, now time.Time) (string, error) {
	if m := relativeDateRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		var t time.Time
		switch strings.ToLower(m[2]) {
		case "day":
			t = now.AddDate(0, 0, -n)
		case "week":
			t = now.AddDate(0, 0, -7*n)
		case "month":
			t = now.AddDate(0, -n, 0)
		case "year":
			t = now.AddDate(-n, 0, 0)
		}
		return t.Format(daterange.ISO), nil
	}

	t, err := dateparse.ParseAny(text)
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeMalformedRecord,
			"unparseable date text: "+text, err)
	}
	return t.Format(daterange.ISO), nil
}
