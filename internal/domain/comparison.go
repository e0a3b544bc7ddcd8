package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage format for listing dates.
const DateLayout = "2006-01-02"

// Period bounds a comparison query in time.
type Period string

const (
	PeriodToday   Period = "today"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodAll     Period = "all"
)

// periodDays maps each bounded period to its lookback window in days.
var periodDays = map[Period]int{
	PeriodToday:   0,
	PeriodWeek:    7,
	PeriodMonth:   30,
	PeriodQuarter: 90,
	PeriodYear:    365,
}

// ParsePeriod validates a period string taken from an API query.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear, PeriodAll:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// Bounds returns the inclusive date range the period covers as of now.
// bounded is false for PeriodAll, which matches every stored date.
func (p Period) Bounds(now time.Time) (from, to string, bounded bool) {
	days, ok := periodDays[p]
	if !ok {
		return "", "", false
	}
	return now.AddDate(0, 0, -days).Format(DateLayout), now.Format(DateLayout), true
}

// SupplierPrice is one supplier's latest observed price for a product.
type SupplierPrice struct {
	Supplier string  `json:"supplier"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Date     string  `json:"date"`
}

// PriceStatistics summarizes the spread of supplier prices for one
// product.
type PriceStatistics struct {
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	AvgPrice      float64 `json:"avg_price"`
	MedianPrice   float64 `json:"median_price"`
	VariancePct   float64 `json:"variance_pct"`
	StdDeviation  float64 `json:"std_deviation"`
	SupplierCount int     `json:"supplier_count"`
}

// ProductComparison is the cross-supplier price view of one product.
type ProductComparison struct {
	ProductName            string          `json:"product_name"`
	NormalizedName         string          `json:"normalized_name"`
	Unit                   string          `json:"unit"`
	Category               Category        `json:"category,omitempty"`
	SupplierPrices         []SupplierPrice `json:"supplier_prices"`
	Statistics             PriceStatistics `json:"statistics"`
	BestPriceSupplier      string          `json:"best_price_supplier"`
	WorstPriceSupplier     string          `json:"worst_price_supplier"`
	PotentialSavingsPct    float64         `json:"potential_savings_pct"`
	PotentialSavingsAmount float64         `json:"potential_savings_amount"`
}

// PricePoint is one dated price observation.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Trend directions reported by price history analysis.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// PriceTrend describes how one supplier's price for a product moved over
// an analysis window.
type PriceTrend struct {
	ProductName     string       `json:"product_name"`
	Supplier        string       `json:"supplier"`
	Prices          []PricePoint `json:"prices"`
	TrendDirection  string       `json:"trend_direction"`
	ChangePct       float64      `json:"change_pct"`
	VolatilityScore float64      `json:"volatility_score"`
}
