package usecase

import (
	"context"

	"github.com/souqlens/backend/internal/classifier"
	"github.com/souqlens/backend/internal/domain"
	"github.com/souqlens/backend/internal/extractor"
)

// RecordProcessor turns one raw listing into a structured product. It
// never fails: every stage of the pipeline degrades to a deterministic
// default instead of erroring.
type RecordProcessor interface {
	Process(ctx context.Context, raw domain.RawProduct) domain.Product
}

// Pipeline runs extraction then classification for a single record.
type Pipeline struct {
	extractor  *extractor.HybridExtractor
	classifier *classifier.Hybrid
}

// NewPipeline wires the two stages together.
func NewPipeline(extractor *extractor.HybridExtractor, classifier *classifier.Hybrid) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		classifier: classifier,
	}
}

// Process extracts the structured fields from the raw listing, then
// classifies the cleaned product name and fills in category, confidence,
// and method. The returned record is always complete.
func (p *Pipeline) Process(ctx context.Context, raw domain.RawProduct) domain.Product {
	product := p.extractor.Extract(ctx, raw)

	result := p.classifier.Classify(ctx, product.ProductName)
	product.Category = result.Category
	product.Confidence = result.Confidence
	product.ClassificationMethod = result.Method
	return product
}
