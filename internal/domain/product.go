package domain

import "encoding/json"

// Classification method tags recorded on every processed product.
const (
	MethodRuleBased = "rule_based"
	MethodLLM       = "llm"
)

// PriceText holds a loosely formatted price exactly as it appeared at
// the source. Batch files carry prices as either JSON strings or bare
// numbers, so both forms unmarshal into it.
type PriceText string

func (p *PriceText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = PriceText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PriceText(n.String())
	return nil
}

// RawProduct represents one unprocessed listing row from a batch source
type RawProduct struct {
	Name   string    `json:"name"`
	Price  PriceText `json:"price"`
	Source string    `json:"source"`
}

// Product is the structured record produced by the extraction pipeline.
// Every emitted Product has ProductName, Unit, Price, Category,
// Confidence and ClassificationMethod set; Origin and Brand stay nil
// when extraction found nothing for them.
type Product struct {
	OriginalName         string   `json:"original_name"`
	ProductName          string   `json:"product_name"`
	Unit                 string   `json:"unit"`
	Origin               *string  `json:"origin,omitempty"`
	Brand                *string  `json:"brand,omitempty"`
	Price                float64  `json:"price"`
	Currency             string   `json:"currency"`
	Source               string   `json:"source"`
	Category             Category `json:"category"`
	Confidence           float64  `json:"confidence"`
	ClassificationMethod string   `json:"classification_method"`
}

// Classification represents the result of assigning a category to a product name
type Classification struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Method     string   `json:"method"`
}

// StoredProduct is a persisted product record together with the day it
// was processed (formatted 2006-01-02).
type StoredProduct struct {
	Product
	Date string `json:"date"`
}

// ProductError describes a single record that failed during a batch run.
// Indexes are 1-based to match the row numbering of the source file.
type ProductError struct {
	ProductIndex int    `json:"product_index"`
	ProductName  string `json:"product_name"`
	Error        string `json:"error"`
}

// ProcessSummary reports the outcome of one batch-processing run
type ProcessSummary struct {
	Status        string         `json:"status"`
	TotalProducts int            `json:"total_products"`
	Processed     int            `json:"processed"`
	Failed        int            `json:"failed"`
	Results       []Product      `json:"results"`
	Errors        []ProductError `json:"errors,omitempty"`
	OutputFile    string         `json:"output_file,omitempty"`
}
