// Package sites turns fetched review-platform markup into normalized
// review records. Each platform gets a Profile of CSS cues describing where
// review fragments and their fields live; the cues are configuration, not
// code, so tests can point an extractor at fixture markup.
package sites

import (
	"fmt"

	"github.com/andybalholm/cascadia"

	"reviewscout/models"
)

// Cues is the raw CSS-selector configuration for one platform. Every field
// except Container may be empty, in which case that lookup is skipped and
// the field falls back to its documented default.
type Cues struct {
	// Container matches one review fragment.
	Container string

	// Title, Body, Reviewer and HelpfulVotes match elements whose text
	// carries the respective field.
	Title        string
	Body         string
	Reviewer     string
	HelpfulVotes string

	// DateAttr matches an element carrying a machine-readable "datetime"
	// attribute; DateText is the human-readable fallback.
	DateAttr string
	DateText string

	// RatingStars matches the filled star icons within a fragment;
	// RatingText matches an element with text like "4/5".
	RatingStars string
	RatingText  string

	// ProductLink matches product links on the platform's search page.
	ProductLink string

	// NextPage matches an enabled next-page control on a listing page.
	NextPage string
}

// Profile is a compiled Cues set. Compilation happens once so a bad
// selector surfaces at startup rather than mid-extraction.
type Profile struct {
	container    cascadia.Selector
	title        cascadia.Selector
	body         cascadia.Selector
	reviewer     cascadia.Selector
	helpfulVotes cascadia.Selector
	dateAttr     cascadia.Selector
	dateText     cascadia.Selector
	ratingStars  cascadia.Selector
	ratingText   cascadia.Selector
	productLink  cascadia.Selector
	nextPage     cascadia.Selector
}

// NewProfile compiles the cue set. The container cue is required; any other
// cue that is present must parse as a valid CSS selector.
func NewProfile(c Cues) (*Profile, error) {
	if c.Container == "" {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput, "container cue is required", nil)
	}

	p := &Profile{}
	for _, f := range []struct {
		cue string
		dst *cascadia.Selector
	}{
		{c.Container, &p.container},
		{c.Title, &p.title},
		{c.Body, &p.body},
		{c.Reviewer, &p.reviewer},
		{c.HelpfulVotes, &p.helpfulVotes},
		{c.DateAttr, &p.dateAttr},
		{c.DateText, &p.dateText},
		{c.RatingStars, &p.ratingStars},
		{c.RatingText, &p.ratingText},
		{c.ProductLink, &p.productLink},
		{c.NextPage, &p.nextPage},
	} {
		if f.cue == "" {
			continue
		}
		sel, err := cascadia.Compile(f.cue)
		if err != nil {
			return nil, fmt.Errorf("sites: compile cue %q: %w", f.cue, err)
		}
		*f.dst = sel
	}
	return p, nil
}

// DefaultCues returns the built-in cue set for a platform. The selectors
// mirror each site's live review markup and are the fragile external
// contract of this package; override them via NewProfile when a site
// changes.
func DefaultCues(source models.Source) Cues {
	switch source {
	case models.SourceG2:
		return Cues{
			Container:    "div.review",
			Title:        "h3.review__title",
			Body:         "div.review__content",
			Reviewer:     "div.reviewer__name",
			HelpfulVotes: "span.review__helpful-count",
			DateAttr:     "time[datetime]",
			DateText:     "div.review__date",
			RatingStars:  "div.review__rating svg.star.filled",
			RatingText:   "div.review__rating",
			ProductLink:  "a.link--header-color, div.product-card a.product-card__name",
			NextPage:     "a.pagination__next:not(.disabled)",
		}
	case models.SourceCapterra:
		return Cues{
			Container:    "div.ReviewCard, div.review-card, article.review",
			Title:        "h3.ReviewCard__Title, h4.review-title",
			Body:         "div.ReviewCard__Description, div.review-content, p.review-text",
			Reviewer:     "span.ReviewCard__ReviewerName, div.reviewer-name, span.reviewer__name",
			HelpfulVotes: "span.ReviewCard__HelpfulCount, span.helpful-count",
			DateAttr:     "time[datetime]",
			DateText:     "span.ReviewCard__Date, div.review-date",
			RatingStars:  "div.ReviewCard__Rating svg.star-filled, div.rating svg.star-filled",
			RatingText:   "div.ReviewCard__Rating, div.rating",
			ProductLink:  "a.ProductTile__ProductName, div.ProductTile a",
			NextPage:     "a.pagination__next:not(.disabled), button.pagination-next:not([disabled])",
		}
	case models.SourceSoftwareAdvice:
		return Cues{
			Container:    "div.ReviewCard, div.review-card, article.review, div.user-review",
			Title:        "h3.ReviewCard__Title, h4.review-title, div.review-title",
			Body:         "div.ReviewCard__Description, div.review-content, p.review-text, div.review-body",
			Reviewer:     "span.ReviewCard__ReviewerName, div.reviewer-name, span.reviewer-name, div.user-name",
			HelpfulVotes: "span.ReviewCard__HelpfulCount, span.helpful-count, div.helpful-votes",
			DateAttr:     "time[datetime]",
			DateText:     "span.ReviewCard__Date, div.review-date, span.review-date",
			RatingStars:  "div.ReviewCard__Rating svg.star-filled, div.rating svg.star-filled, div.star-rating svg.star-filled",
			RatingText:   "div.ReviewCard__Rating, div.rating, div.star-rating",
			ProductLink:  "a.ProductCard__ProductName, div.ProductCard a",
			NextPage:     "a.pagination__next:not(.disabled), button.pagination-next:not([disabled])",
		}
	default:
		return Cues{}
	}
}

// DefaultProfile compiles the built-in cues for a platform. The defaults
// are static and covered by tests, so compilation failure is a programmer
// error.
func DefaultProfile(source models.Source) *Profile {
	p, err := NewProfile(DefaultCues(source))
	if err != nil {
		panic(fmt.Sprintf("sites: default cues for %s: %v", source, err))
	}
	return p
}
