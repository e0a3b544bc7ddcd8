package extractor

import (
	"context"

	"go.uber.org/zap"

	"github.com/souqlens/backend/internal/domain"
)

// HybridExtractor chooses the extraction path per record: the generative
// adapter for complex names when the capability is present, the
// deterministic engine otherwise. A generative failure always falls back
// to the engine, so extraction as a whole cannot fail.
type HybridExtractor struct {
	engine     *Engine
	generative *GenerativeExtractor
	complexity *ComplexityClassifier
	logger     *zap.Logger
}

// NewHybridExtractor creates the extraction orchestrator. generative may
// be nil when no completion capability is configured; every record then
// takes the deterministic path.
func NewHybridExtractor(engine *Engine, generative *GenerativeExtractor, complexity *ComplexityClassifier, logger *zap.Logger) *HybridExtractor {
	return &HybridExtractor{
		engine:     engine,
		generative: generative,
		complexity: complexity,
		logger:     logger,
	}
}

// Extract produces a structured record for one raw listing. Category,
// confidence, and classification method are left unset for the
// classifier stage.
func (h *HybridExtractor) Extract(ctx context.Context, raw domain.RawProduct) domain.Product {
	if h.generative != nil && h.complexity.IsComplex(raw.Name) {
		product, err := h.generative.Extract(ctx, raw)
		if err == nil {
			h.logger.Debug("extracted with completion service",
				zap.String("name", raw.Name))
			return product
		}
		h.logger.Warn("generative extraction failed, falling back to patterns",
			zap.String("name", raw.Name),
			zap.Error(err))
	}
	return h.engine.Extract(raw)
}
