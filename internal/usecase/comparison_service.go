package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/souqlens/backend/internal/domain"
)

// Package-level compiled regex patterns for cache key normalization
var (
	cacheKeyStripRegex  = regexp.MustCompile(`[^a-z0-9\s]`)
	cacheKeySpacesRegex = regexp.MustCompile(`\s+`)
)

const (
	defaultComparisonTTL = 5 * time.Minute
	defaultTrendDays     = 30
)

// Price movement below this magnitude (in percent) counts as stable.
const trendChangeThresholdPct = 5

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	CacheTTL time.Duration
}

// ComparisonService answers cross-supplier price questions from the
// stored listings, with cached comparison results.
type ComparisonService struct {
	store    domain.ProductRepository
	cache    domain.CacheRepository
	logger   *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewComparisonService creates a comparison service with dependencies.
func NewComparisonService(
	store domain.ProductRepository,
	cache domain.CacheRepository,
	config ComparisonServiceConfig,
	logger *zap.Logger,
) *ComparisonService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = defaultComparisonTTL
	}

	return &ComparisonService{
		store:    store,
		cache:    cache,
		logger:   logger,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// CompareProduct returns the latest price per supplier for every listing
// matching the product name within the period, along with spread
// statistics and the best/worst suppliers.
func (s *ComparisonService) CompareProduct(ctx context.Context, productName string, period domain.Period) (domain.ProductComparison, error) {
	if strings.TrimSpace(productName) == "" {
		return domain.ProductComparison{}, domain.ErrInvalidRequest
	}

	cacheKey := fmt.Sprintf("comparison:%s:%s", normalizeCacheKey(productName), period)
	if cached, ok := s.comparisonFromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	from, to, _ := period.Bounds(s.now())
	records, err := s.store.FindByName(ctx, productName, from, to)
	if err != nil {
		return domain.ProductComparison{}, fmt.Errorf("querying listings: %w", err)
	}
	if len(records) == 0 {
		return domain.ProductComparison{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productName)
	}

	comparison := buildComparison(productName, records)
	s.comparisonToCache(ctx, cacheKey, comparison)
	return comparison, nil
}

// PriceTrends analyzes per-supplier price movement for one product and
// unit over a trailing window of days. Suppliers with fewer than two
// observations in the window are omitted.
func (s *ComparisonService) PriceTrends(ctx context.Context, productName, unit, supplier string, days int) ([]domain.PriceTrend, error) {
	if strings.TrimSpace(productName) == "" || strings.TrimSpace(unit) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if days <= 0 {
		days = defaultTrendDays
	}

	now := s.now()
	from := now.AddDate(0, 0, -days).Format(domain.DateLayout)
	to := now.Format(domain.DateLayout)

	records, err := s.store.FindPriceHistory(ctx, productName, unit, supplier, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying price history: %w", err)
	}
	return buildTrends(productName, records), nil
}

// buildComparison reduces raw listings to the latest price per supplier
// and derives the comparison view. Suppliers keep their order of first
// appearance; on equal dates the earlier listing wins.
func buildComparison(productName string, records []domain.StoredProduct) domain.ProductComparison {
	latest := make(map[string]domain.StoredProduct)
	var suppliers []string
	for _, r := range records {
		current, seen := latest[r.Source]
		if !seen {
			suppliers = append(suppliers, r.Source)
			latest[r.Source] = r
			continue
		}
		if r.Date > current.Date {
			latest[r.Source] = r
		}
	}

	supplierPrices := make([]domain.SupplierPrice, 0, len(suppliers))
	prices := make([]float64, 0, len(suppliers))
	for _, supplier := range suppliers {
		r := latest[supplier]
		supplierPrices = append(supplierPrices, domain.SupplierPrice{
			Supplier: supplier,
			Price:    r.Price,
			Currency: r.Currency,
			Date:     r.Date,
		})
		prices = append(prices, r.Price)
	}

	stats := calculateStatistics(prices)

	best, worst := supplierPrices[0], supplierPrices[0]
	for _, sp := range supplierPrices[1:] {
		if sp.Price < best.Price {
			best = sp
		}
		if sp.Price > worst.Price {
			worst = sp
		}
	}

	var savingsPct, savingsAmount float64
	if stats.MaxPrice > 0 {
		savingsAmount = stats.MaxPrice - stats.MinPrice
		savingsPct = savingsAmount / stats.MaxPrice * 100
	}

	return domain.ProductComparison{
		ProductName:            productName,
		NormalizedName:         strings.ToLower(strings.TrimSpace(productName)),
		Unit:                   records[0].Unit,
		Category:               records[0].Category,
		SupplierPrices:         supplierPrices,
		Statistics:             stats,
		BestPriceSupplier:      best.Supplier,
		WorstPriceSupplier:     worst.Supplier,
		PotentialSavingsPct:    savingsPct,
		PotentialSavingsAmount: savingsAmount,
	}
}

// buildTrends groups date-ordered listings by supplier and derives
// direction, change, and volatility per supplier.
func buildTrends(productName string, records []domain.StoredProduct) []domain.PriceTrend {
	bySupplier := make(map[string][]domain.PricePoint)
	var suppliers []string
	for _, r := range records {
		if _, seen := bySupplier[r.Source]; !seen {
			suppliers = append(suppliers, r.Source)
		}
		bySupplier[r.Source] = append(bySupplier[r.Source], domain.PricePoint{
			Date:  r.Date,
			Price: r.Price,
		})
	}

	trends := make([]domain.PriceTrend, 0, len(suppliers))
	for _, supplier := range suppliers {
		points := bySupplier[supplier]
		if len(points) < 2 {
			continue
		}

		first, last := points[0].Price, points[len(points)-1].Price
		var changePct float64
		if first > 0 {
			changePct = (last - first) / first * 100
		}

		direction := domain.TrendStable
		switch {
		case changePct > trendChangeThresholdPct:
			direction = domain.TrendIncreasing
		case changePct < -trendChangeThresholdPct:
			direction = domain.TrendDecreasing
		}

		prices := make([]float64, len(points))
		for i, p := range points {
			prices[i] = p.Price
		}
		volatility := sampleStdDev(prices)
		avg := mean(prices)
		var volatilityScore float64
		if avg > 0 {
			volatilityScore = volatility / avg * 100
		}

		trends = append(trends, domain.PriceTrend{
			ProductName:     productName,
			Supplier:        supplier,
			Prices:          points,
			TrendDirection:  direction,
			ChangePct:       changePct,
			VolatilityScore: volatilityScore,
		})
	}
	return trends
}

// calculateStatistics summarizes a list of prices. Standard deviation is
// the sample deviation and zero for fewer than two prices.
func calculateStatistics(prices []float64) domain.PriceStatistics {
	if len(prices) == 0 {
		return domain.PriceStatistics{}
	}

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)
	minPrice := sorted[0]
	maxPrice := sorted[len(sorted)-1]

	var variancePct float64
	if maxPrice > 0 {
		variancePct = (maxPrice - minPrice) / maxPrice * 100
	}

	return domain.PriceStatistics{
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
		AvgPrice:      mean(prices),
		MedianPrice:   median(sorted),
		VariancePct:   variancePct,
		StdDeviation:  sampleStdDev(prices),
		SupplierCount: len(prices),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median expects values already sorted ascending.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	var sumSquares float64
	for _, v := range values {
		d := v - m
		sumSquares += d * d
	}
	return math.Sqrt(sumSquares / float64(n-1))
}

// normalizeCacheKey lowercases, strips punctuation, and collapses
// whitespace, so "Tomato (500g)" and "tomato 500g" share an entry.
func normalizeCacheKey(s string) string {
	result := strings.ToLower(s)
	result = cacheKeyStripRegex.ReplaceAllString(result, "")
	result = cacheKeySpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// comparisonFromCache loads a cached comparison. Any cache trouble is
// logged and treated as a miss.
func (s *ComparisonService) comparisonFromCache(ctx context.Context, key string) (domain.ProductComparison, bool) {
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache read failed",
				zap.String("key", key),
				zap.Error(err))
		}
		return domain.ProductComparison{}, false
	}

	var comparison domain.ProductComparison
	if err := json.Unmarshal(payload, &comparison); err != nil {
		s.logger.Warn("dropping unreadable cache entry",
			zap.String("key", key),
			zap.Error(err))
		return domain.ProductComparison{}, false
	}
	return comparison, true
}

// comparisonToCache stores a comparison; failures are logged, never
// surfaced.
func (s *ComparisonService) comparisonToCache(ctx context.Context, key string, comparison domain.ProductComparison) {
	payload, err := json.Marshal(comparison)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed",
			zap.String("key", key),
			zap.Error(err))
	}
}
