package collector

import (
	"context"

	"reviewscout/daterange"
	"reviewscout/demo"
	"reviewscout/models"
)

// DemoProducer satisfies Producer with synthetic data; it never touches the
// network and never fails.
type DemoProducer struct {
	gen    *demo.Generator
	source models.Source
	count  int
}

// NewDemoProducer wires the generator as the producer for one platform.
func NewDemoProducer(gen *demo.Generator, source models.Source, count int) *DemoProducer {
	return &DemoProducer{gen: gen, source: source, count: count}
}

func (p *DemoProducer) Source() models.Source { return p.source }

func (p *DemoProducer) Produce(_ context.Context, company string, r daterange.Range) ([]models.Review, error) {
	return p.gen.Generate(company, r, p.source, p.count), nil
}
