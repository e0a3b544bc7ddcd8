package classifier

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/souqlens/backend/internal/domain"
)

// classificationTemperature leaves a little room for judgement calls on
// names the rules could not place.
const classificationTemperature = 0.1

// ruleConfidenceCutoff is the rule score above which the completion
// service is never consulted. Strictly greater: a 0.85 rule result still
// goes to the completion path when one is configured.
const ruleConfidenceCutoff = 0.85

// Completion results carry fixed confidences: the service either named a
// known category or it did not.
const (
	completionConfidence        = 0.90
	unknownCompletionConfidence = 0.50
)

const classificationSystemPrompt = `You are a product classification expert. Classify products into these categories:

Categories:
- Fruits: Apples, bananas, oranges, berries, etc.
- Vegetables: Tomatoes, carrots, onions, leafy greens, etc.
- Herbs: Basil, parsley, mint, oregano, etc.
- Grains: Rice, wheat, oats, quinoa, etc.
- Legumes: Beans, lentils, chickpeas, peas, etc.
- Nuts: Almonds, walnuts, cashews, seeds, etc.
- Spices: Pepper, cinnamon, turmeric, etc.
- Dairy: Milk, cheese, yogurt, butter, etc.
- Meat: Beef, chicken, pork, lamb, etc.
- Seafood: Fish, shrimp, crab, etc.
- Beverages: Juice, soda, water, tea, coffee, etc.
- Snacks: Chips, crackers, nuts, candy, etc.
- Bakery: Bread, cakes, pastries, etc.
- Frozen: Frozen vegetables, fruits, meals, etc.
- Canned: Canned goods, preserves, etc.
- Other: Anything that doesn't fit above categories

Rules:
1. Focus on the main product type, ignore packaging details
2. Consider Arabic and English product names
3. Be consistent with similar products
4. If unsure, choose the most likely category

Respond with only the category name (e.g., "Fruits").`

// Hybrid classifies with rules first and falls back to the completion
// service only when the rule confidence is low. Completion failures
// never surface to the caller; the rule result stands in.
type Hybrid struct {
	rules     *RuleBased
	completer domain.TextCompleter
	logger    *zap.Logger
}

// NewHybrid creates the classification orchestrator. completer may be
// nil when no completion capability is configured; classification is
// then purely rule-based.
func NewHybrid(rules *RuleBased, completer domain.TextCompleter, logger *zap.Logger) *Hybrid {
	return &Hybrid{
		rules:     rules,
		completer: completer,
		logger:    logger,
	}
}

// Classify returns the category, confidence, and method for one product
// name.
func (h *Hybrid) Classify(ctx context.Context, productName string) domain.Classification {
	ruleResult := h.rules.Classify(productName)
	if ruleResult.Confidence > ruleConfidenceCutoff {
		return ruleResult
	}
	if h.completer == nil {
		return ruleResult
	}

	result, err := h.classifyWithCompletion(ctx, productName)
	if err != nil {
		h.logger.Warn("completion classification failed, using rule result",
			zap.String("product_name", productName),
			zap.Error(err))
		return ruleResult
	}
	return result
}

// classifyWithCompletion asks the completion service for a category
// label. Labels outside the taxonomy become CategoryOther at reduced
// confidence rather than an error: the call itself worked.
func (h *Hybrid) classifyWithCompletion(ctx context.Context, productName string) (domain.Classification, error) {
	completion, err := h.completer.Complete(ctx, classificationSystemPrompt,
		"Classify this product: "+productName, classificationTemperature)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("requesting classification completion: %w", err)
	}

	category, ok := domain.CategoryFromLabel(strings.TrimSpace(completion))
	if !ok {
		return domain.Classification{
			Category:   domain.CategoryOther,
			Confidence: unknownCompletionConfidence,
			Method:     domain.MethodLLM,
		}, nil
	}
	return domain.Classification{
		Category:   category,
		Confidence: completionConfidence,
		Method:     domain.MethodLLM,
	}, nil
}
