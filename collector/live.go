package collector

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"reviewscout/config"
	"reviewscout/daterange"
	"reviewscout/models"
	"reviewscout/sites"
)

// Fetcher is the transport capability a live producer needs. *scraper.Client
// satisfies it; tests substitute a canned-response fake.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// LiveProducer scrapes one platform end to end: search page, product page
// resolution, then the paginated review listing.
type LiveProducer struct {
	fetcher    Fetcher
	ext        *sites.Extractor
	site       config.SiteConfig
	maxPages   int
	maxReviews int
}

// NewLiveProducer wires a live producer for the extractor's platform.
func NewLiveProducer(f Fetcher, ext *sites.Extractor, site config.SiteConfig, cfg config.ScraperConfig) *LiveProducer {
	return &LiveProducer{
		fetcher:    f,
		ext:        ext,
		site:       site,
		maxPages:   cfg.MaxPages,
		maxReviews: cfg.MaxReviewsPerSource,
	}
}

func (p *LiveProducer) Source() models.Source { return p.ext.Source() }

// Produce walks the platform's review listing for the company. Listings
// are newest-first, so a page containing reviews older than the window
// start ends the walk early. Failures after the first listing page keep
// what was already collected.
func (p *LiveProducer) Produce(ctx context.Context, company string, r daterange.Range) ([]models.Review, error) {
	searchURL := fmt.Sprintf(p.site.SearchURL, url.QueryEscape(company))
	slog.Debug("searching for company", "source", p.Source(), "url", searchURL)

	markup, err := p.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	productURL, ok := p.ext.ProductURL(markup, company, p.site.BaseURL)
	if !ok {
		return nil, models.NewScrapeError(models.ErrCodeProductNotFound,
			fmt.Sprintf("company %q not found in %s search results", company, p.Source()), nil)
	}
	slog.Info("found product page", "source", p.Source(), "url", productURL)

	reviewsURL := strings.TrimRight(productURL, "/") + "/reviews"
	var out []models.Review

	for page := 1; page <= p.maxPages; page++ {
		pageURL := fmt.Sprintf("%s?page=%d", reviewsURL, page)
		markup, err := p.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			slog.Warn("listing page failed, keeping earlier pages",
				"source", p.Source(), "page", page, "err", err)
			break
		}

		batch := p.ext.Extract(markup)
		if len(batch) == 0 {
			slog.Debug("no reviews on page", "source", p.Source(), "page", page)
			break
		}

		pastStart := false
		for _, rev := range batch {
			t, err := daterange.Parse(rev.Date)
			if err != nil {
				continue
			}
			if t.Before(r.Start) {
				pastStart = true
				continue
			}
			if r.Contains(t) {
				out = append(out, rev)
				if len(out) >= p.maxReviews {
					slog.Warn("per-source review cap reached",
						"source", p.Source(), "cap", p.maxReviews)
					return out, nil
				}
			}
		}
		if pastStart {
			slog.Debug("reached reviews older than window start",
				"source", p.Source(), "page", page)
			break
		}
		if !p.ext.HasNextPage(markup) {
			break
		}
	}
	return out, nil
}
