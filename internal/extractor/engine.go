package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/souqlens/backend/internal/domain"
)

// priceCharPattern strips everything that is not a digit, dot, or comma
var priceCharPattern = regexp.MustCompile(`[^\d.,]`)

// Engine performs deterministic pattern-based extraction. It composes
// the origin, unit, and name cleaning components with a tolerant price
// parser and never fails: bad input degrades field by field.
type Engine struct {
	origins  *OriginExtractor
	units    *UnitExtractor
	cleaner  *NameCleaner
	currency string
	logger   *zap.Logger
}

// NewEngine creates the deterministic extraction engine
func NewEngine(patterns *Patterns, homeCountry, currency string, logger *zap.Logger) *Engine {
	return &Engine{
		origins:  NewOriginExtractor(patterns, homeCountry),
		units:    NewUnitExtractor(patterns),
		cleaner:  NewNameCleaner(patterns),
		currency: currency,
		logger:   logger,
	}
}

// Extract builds a structured record from one raw listing. Category,
// confidence, and classification method are left unset for the
// classifier stage. Brand is never populated by this path.
func (e *Engine) Extract(raw domain.RawProduct) domain.Product {
	origin, found := e.origins.Extract(raw.Name)
	unit := e.units.Extract(raw.Name)
	productName := e.cleaner.Clean(raw.Name, origin, unit)

	product := domain.Product{
		OriginalName: raw.Name,
		ProductName:  productName,
		Unit:         unit,
		Price:        e.parsePrice(string(raw.Price)),
		Currency:     e.currency,
		Source:       raw.Source,
	}
	if found {
		product.Origin = &origin
	}
	return product
}

// parsePrice pulls a float out of a loosely formatted price string.
// Everything except digits, dots, and commas is dropped and a decimal
// comma becomes a dot. Parse failures degrade to 0.0 with a warning; a
// bad price must never fail the record.
func (e *Engine) parsePrice(price string) float64 {
	cleaned := priceCharPattern.ReplaceAllString(price, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		e.logger.Warn("could not parse price, defaulting to zero",
			zap.String("price", price))
		return 0.0
	}
	return value
}
