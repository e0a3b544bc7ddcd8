package extractor

import (
	"strings"
	"unicode/utf8"
)

// Complexity thresholds
const (
	maxSimpleWords = 5
	maxSimpleRunes = 50
)

// complexityPunctuation marks names that carry structure a plain token
// scan cannot untangle.
const complexityPunctuation = "-/&()"

// ComplexityClassifier decides whether a raw name is too messy for
// deterministic extraction and should be routed to the generative path.
type ComplexityClassifier struct {
	patterns *Patterns
}

// NewComplexityClassifier creates a complexity classifier
func NewComplexityClassifier(patterns *Patterns) *ComplexityClassifier {
	return &ComplexityClassifier{patterns: patterns}
}

// IsComplex reports whether any complexity signal fires for name: more
// than five words, a known complexity keyword, structural punctuation,
// or a very long name. Signals are independent; any one suffices.
func (c *ComplexityClassifier) IsComplex(name string) bool {
	if len(strings.Fields(name)) > maxSimpleWords {
		return true
	}

	lower := strings.ToLower(name)
	for keyword := range c.patterns.Complexity {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	if strings.ContainsAny(name, complexityPunctuation) {
		return true
	}

	return utf8.RuneCountInString(name) > maxSimpleRunes
}
