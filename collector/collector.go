// Package collector orchestrates one collection run: it drives a producer
// per selected source, contains per-source failures, merges results in
// source order, applies the final date filter, and serializes the output.
package collector

import (
	"context"
	"log/slog"

	"reviewscout/daterange"
	"reviewscout/models"
)

// Producer yields the reviews of one platform for a company and window.
// Live scraping and demo generation both satisfy it; the mode is decided
// once, when the producer set is assembled.
type Producer interface {
	Source() models.Source
	Produce(ctx context.Context, company string, r daterange.Range) ([]models.Review, error)
}

// Collector runs producers sequentially in the order given.
type Collector struct {
	producers []Producer
}

// New creates a Collector over the given producers. Order is preserved
// through to the output file.
func New(producers ...Producer) *Collector {
	return &Collector{producers: producers}
}

// Run collects from every producer. A producer error skips that source and
// the run continues; partial results are a valid outcome. Every surviving
// record has a parseable date inside the window.
func (c *Collector) Run(ctx context.Context, company string, r daterange.Range) []models.Review {
	var all []models.Review
	for _, p := range c.producers {
		reviews, err := p.Produce(ctx, company, r)
		if err != nil {
			slog.Error("source failed, continuing with remaining sources",
				"source", p.Source(), "err", err)
			continue
		}
		slog.Info("source collected", "source", p.Source(), "count", len(reviews))
		all = append(all, reviews...)
	}

	kept := make([]models.Review, 0, len(all))
	for _, rev := range all {
		if !r.ContainsISO(rev.Date) {
			slog.Debug("dropping out-of-range review",
				"source", rev.Source, "date", rev.Date)
			continue
		}
		kept = append(kept, rev)
	}

	if len(kept) == 0 {
		slog.Warn("no reviews matched the requested window",
			"company", company,
			"start", r.Start.Format(daterange.ISO),
			"end", r.End.Format(daterange.ISO))
	}
	return kept
}

// CountBySource tallies records per platform for the run summary.
func CountBySource(reviews []models.Review) map[models.Source]int {
	counts := make(map[models.Source]int)
	for _, rev := range reviews {
		counts[rev.Source]++
	}
	return counts
}
