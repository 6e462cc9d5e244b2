// Package demo produces synthetic review records for runs where live
// fetching is disabled. Output is deterministic for a given seed.
package demo

import (
	"fmt"
	"math/rand"
	"strconv"

	"reviewscout/daterange"
	"reviewscout/models"
)

var titleTemplates = []string{
	"Excellent %s Platform",
	"Powerful but Complex %s",
	"Best Investment for Our Team - %s",
	"Good Tool with Room for Improvement - %s",
	"Outstanding Customer Service from %s",
	"Solid %s Experience Overall",
}

var descriptionTemplates = []string{
	"%s has transformed our business operations completely. The features are outstanding and the integration capabilities are seamless.",
	"Great features from %s but requires significant training. The learning curve is steep but worth it once you get the hang of it.",
	"%s's platform has streamlined our workflow significantly. The pricing is reasonable and the ROI has been excellent.",
	"Solid platform from %s with good core functionality. Some advanced features feel clunky and the reporting could be more robust.",
	"What sets %s apart is their exceptional customer service. Their support team has been quick to respond and resolve problems.",
	"We evaluated several tools before settling on %s. Onboarding was smooth and adoption across the team has been high.",
}

var reviewerNames = []string{
	"John Smith",
	"Sarah Johnson",
	"Mike Chen",
	"Lisa Rodriguez",
	"David Wilson",
	"Emma Davis",
	"Carlos Mendez",
	"Priya Patel",
}

// maxVotes bounds the synthetic helpful-vote count (inclusive).
const maxVotes = 50

// Generator emits synthetic reviews from fixed pools. Not safe for
// concurrent use; the pipeline is sequential.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded deterministically: two generators
// with the same seed produce identical sequences.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces count reviews for the company, tagged with source.
// Every record is valid by construction: rating uniform in 1..5 and date
// uniform over the inclusive window, so no post-filtering is ever needed.
func (g *Generator) Generate(company string, r daterange.Range, source models.Source, count int) []models.Review {
	reviews := make([]models.Review, 0, count)
	days := r.Days()

	for i := 0; i < count; i++ {
		date := r.Start.AddDate(0, 0, g.rng.Intn(days))
		reviews = append(reviews, models.Review{
			Title:        fmt.Sprintf(titleTemplates[g.rng.Intn(len(titleTemplates))], company),
			Description:  fmt.Sprintf(descriptionTemplates[g.rng.Intn(len(descriptionTemplates))], company),
			Date:         date.Format(daterange.ISO),
			ReviewerName: reviewerNames[g.rng.Intn(len(reviewerNames))],
			Rating:       1 + g.rng.Intn(5),
			HelpfulVotes: strconv.Itoa(g.rng.Intn(maxVotes + 1)),
			Source:       source,
		})
	}
	return reviews
}
