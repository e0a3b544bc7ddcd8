package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/souqlens/backend/internal/domain"
)

// extractionTemperature keeps structured completions deterministic
const extractionTemperature = 0.0

const extractionSystemPrompt = `You are a data extraction assistant. Extract product data into JSON format.

Rules:
- original_name: Keep as provided
- product_name: Extract ONLY the core product name (e.g., "Tomato" from "Farm Fresh Bunch Tomato 500g")
  Remove all descriptive words like: Farm, Fresh, Organic, Premium, Natural, Bunch, Bundle, Pack, Box, Bag, etc.
  Remove origin countries, units, weights, and packaging information
  Keep only the essential product name that identifies what the item actually is
- unit: Packaging/weight/size (e.g., "1 kg", "500 g", "1 bunch")
- origin: Country/label (e.g., "Local", "Philippines") or null
- brand: Brand name if one is present, otherwise null
- price: Numeric value only (float)
- currency: Always %q
- source: Keep as provided

Examples:
- "Farm Fresh Bunch Tomato 500g" -> product_name: "Tomato"
- "Organic Premium Apple Royal Gala China 1 kg" -> product_name: "Apple"
- "Fresh Local Carrot Bunch" -> product_name: "Carrot"
- "Premium Quality Banana Philippines 1 kg" -> product_name: "Banana"

Return only valid JSON.

The output must be a single JSON object with exactly these keys:
{
  "original_name": string,
  "product_name": string,
  "unit": string,
  "origin": string or null,
  "brand": string or null,
  "price": number,
  "currency": string,
  "source": string
}`

// completionRecord mirrors the JSON document requested from the
// completion service.
type completionRecord struct {
	OriginalName string  `json:"original_name"`
	ProductName  string  `json:"product_name"`
	Unit         string  `json:"unit"`
	Origin       *string `json:"origin"`
	Brand        *string `json:"brand"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Source       string  `json:"source"`
}

// GenerativeExtractor requests structured records from the text
// completion capability. It owns the instruction template. Any call or
// parse failure is returned to the caller so the orchestrator can fall
// back to the deterministic engine; this adapter never substitutes a
// default itself.
type GenerativeExtractor struct {
	completer domain.TextCompleter
	currency  string
	system    string
}

// NewGenerativeExtractor creates the adapter. completer must be non-nil;
// callers without the capability should not construct one.
func NewGenerativeExtractor(completer domain.TextCompleter, currency string) *GenerativeExtractor {
	return &GenerativeExtractor{
		completer: completer,
		currency:  currency,
		system:    fmt.Sprintf(extractionSystemPrompt, currency),
	}
}

// Extract asks the completion service for a structured record built from
// the raw listing.
func (g *GenerativeExtractor) Extract(ctx context.Context, raw domain.RawProduct) (domain.Product, error) {
	user := fmt.Sprintf("Extract: Product='%s', Price='%s', Source='%s'", raw.Name, raw.Price, raw.Source)

	completion, err := g.completer.Complete(ctx, g.system, user, extractionTemperature)
	if err != nil {
		return domain.Product{}, fmt.Errorf("requesting extraction completion: %w", err)
	}

	var record completionRecord
	if err := json.Unmarshal([]byte(stripCodeFence(completion)), &record); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrMalformedCompletion, err)
	}
	if record.ProductName == "" || record.Unit == "" {
		return domain.Product{}, fmt.Errorf("%w: missing product name or unit", domain.ErrMalformedCompletion)
	}
	if record.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: negative price", domain.ErrMalformedCompletion)
	}

	return domain.Product{
		OriginalName: raw.Name,
		ProductName:  record.ProductName,
		Unit:         record.Unit,
		Origin:       normalizeOptional(record.Origin),
		Brand:        normalizeOptional(record.Brand),
		Price:        record.Price,
		Currency:     g.currency,
		Source:       raw.Source,
	}, nil
}

// normalizeOptional maps empty strings to absent
func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// stripCodeFence unwraps completions the model wrapped in a markdown
// code block.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
