package classifier

import (
	"strings"

	"github.com/souqlens/backend/internal/domain"
)

// Keyword match weights. A keyword contributes its length doubled, with
// a bonus when it appears as a whole word and another when the name
// starts with it.
const (
	lengthWeight     = 2
	wholeWordBonus   = 2
	leadingWordBonus = 1.5
)

// Confidence tiers derived from the winning category score.
const (
	strongMatchScore = 30
	goodMatchScore   = 20
	decentMatchScore = 10
	weakMatchScore   = 5
)

// RuleBased classifies products by keyword scoring alone. It is fully
// deterministic: for a given name the same category, confidence, and
// method always come back.
type RuleBased struct {
	keywords map[domain.Category][]string
}

// NewRuleBased creates a keyword classifier over the built-in category
// taxonomy.
func NewRuleBased() *RuleBased {
	return &RuleBased{keywords: categoryKeywords}
}

// Classify scores every category against the product name and returns
// the winner. Ties resolve to the category declared first in the
// taxonomy. A name matching no keywords at all is CategoryOther with
// zero confidence.
func (c *RuleBased) Classify(productName string) domain.Classification {
	name := strings.ToLower(strings.TrimSpace(productName))

	var best domain.Category
	var bestScore float64
	for _, category := range domain.Categories() {
		score := c.categoryScore(name, category)
		if score > bestScore {
			best = category
			bestScore = score
		}
	}

	if bestScore == 0 {
		return domain.Classification{
			Category:   domain.CategoryOther,
			Confidence: 0.0,
			Method:     domain.MethodRuleBased,
		}
	}

	return domain.Classification{
		Category:   best,
		Confidence: confidenceForScore(bestScore),
		Method:     domain.MethodRuleBased,
	}
}

// categoryScore sums the weights of every keyword of one category found
// in the lowered name.
func (c *RuleBased) categoryScore(name string, category domain.Category) float64 {
	padded := " " + name + " "

	var score float64
	for _, keyword := range c.keywords[category] {
		if !strings.Contains(name, keyword) {
			continue
		}
		weight := float64(len(keyword)) * lengthWeight
		if strings.Contains(padded, " "+keyword+" ") {
			weight *= wholeWordBonus
		}
		if strings.HasPrefix(name, keyword+" ") {
			weight *= leadingWordBonus
		}
		score += weight
	}
	return score
}

// confidenceForScore maps a raw keyword score onto the confidence scale.
func confidenceForScore(score float64) float64 {
	switch {
	case score >= strongMatchScore:
		return 0.95
	case score >= goodMatchScore:
		return 0.85
	case score >= decentMatchScore:
		return 0.70
	case score >= weakMatchScore:
		return 0.50
	default:
		return 0.30
	}
}
