package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/souqlens/backend/config"
	"github.com/souqlens/backend/internal/domain"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

type stubProducts struct {
	summary domain.ProcessSummary
	err     error
	calls   int
}

func (s *stubProducts) ProcessDaily(ctx context.Context, now time.Time) (domain.ProcessSummary, error) {
	s.calls++
	return s.summary, s.err
}

type stubComparisons struct {
	comparison domain.ProductComparison
	compareErr error
	trends     []domain.PriceTrend
	trendsErr  error

	compareCalls int
	trendCalls   int
	lastName     string
	lastPeriod   domain.Period
	lastUnit     string
	lastSupplier string
	lastDays     int
}

func (s *stubComparisons) CompareProduct(ctx context.Context, productName string, period domain.Period) (domain.ProductComparison, error) {
	s.compareCalls++
	s.lastName = productName
	s.lastPeriod = period
	return s.comparison, s.compareErr
}

func (s *stubComparisons) PriceTrends(ctx context.Context, productName, unit, supplier string, days int) ([]domain.PriceTrend, error) {
	s.trendCalls++
	s.lastName = productName
	s.lastUnit = unit
	s.lastSupplier = supplier
	s.lastDays = days
	return s.trends, s.trendsErr
}

// setupTestRouter creates a test router with default configuration
func setupTestRouter(products ProductProcessor, comparisons PriceComparer) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"*"},
		},
	}

	handler := NewHandler(products, comparisons, zap.NewNop())
	return SetupRouter(cfg, handler, zap.NewNop())
}

func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter(&stubProducts{}, &stubComparisons{})

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "souqlens-backend" {
			t.Errorf("service = %v, want souqlens-backend", response["service"])
		}
		version, ok := response["version"].(string)
		if !ok || strings.TrimSpace(version) == "" {
			t.Errorf("version = %v, want non-empty string", response["version"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter(&stubProducts{}, &stubComparisons{})

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			req, _ := http.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

func TestProcessEndpoint(t *testing.T) {
	t.Run("returns processing summary", func(t *testing.T) {
		products := &stubProducts{
			summary: domain.ProcessSummary{
				Status:        "completed",
				TotalProducts: 2,
				Processed:     2,
				Failed:        0,
				Results: []domain.Product{
					{ProductName: "Tomato", Unit: "500g", Price: 3.5, Currency: "SAR", Source: "SupplierA"},
					{ProductName: "Banana", Unit: "1 kg", Price: 12.0, Currency: "SAR", Source: "SupplierB"},
				},
				OutputFile: "data/test_data_15-03-2025.json",
			},
		}
		router := setupTestRouter(products, &stubComparisons{})

		req, _ := http.NewRequest("POST", "/api/process", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
		if products.calls != 1 {
			t.Errorf("ProcessDaily calls = %d, want 1", products.calls)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "completed" {
			t.Errorf("status = %v, want completed", response["status"])
		}
		if response["total_products"] != float64(2) {
			t.Errorf("total_products = %v, want 2", response["total_products"])
		}
		if response["output_file"] != "data/test_data_15-03-2025.json" {
			t.Errorf("output_file = %v", response["output_file"])
		}
		results, ok := response["results"].([]interface{})
		if !ok || len(results) != 2 {
			t.Errorf("results = %v, want 2 entries", response["results"])
		}
	})

	t.Run("missing data file returns 404", func(t *testing.T) {
		products := &stubProducts{
			err: fmt.Errorf("data file not found: data/data-15-03-2025.json: %w", fs.ErrNotExist),
		}
		router := setupTestRouter(products, &stubComparisons{})

		req, _ := http.NewRequest("POST", "/api/process", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
		if !strings.Contains(w.Body.String(), "data file not found") {
			t.Errorf("body = %s, want file-not-found message", w.Body.String())
		}
	})

	t.Run("malformed data file returns 400", func(t *testing.T) {
		products := &stubProducts{
			err: fmt.Errorf("%w: missing \"data\" key", domain.ErrInvalidInputFile),
		}
		router := setupTestRouter(products, &stubComparisons{})

		req, _ := http.NewRequest("POST", "/api/process", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("unexpected failure returns 500 without detail", func(t *testing.T) {
		products := &stubProducts{err: errors.New("mongo exploded")}
		router := setupTestRouter(products, &stubComparisons{})

		req, _ := http.NewRequest("POST", "/api/process", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
		}
		if strings.Contains(w.Body.String(), "mongo") {
			t.Errorf("body leaked internal error: %s", w.Body.String())
		}
	})

	t.Run("GET is not routed", func(t *testing.T) {
		router := setupTestRouter(&stubProducts{}, &stubComparisons{})

		req, _ := http.NewRequest("GET", "/api/process", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestCompareEndpoint(t *testing.T) {
	t.Run("returns comparison", func(t *testing.T) {
		comparisons := &stubComparisons{
			comparison: domain.ProductComparison{
				ProductName:    "Tomato",
				NormalizedName: "tomato",
				Unit:           "500g",
				SupplierPrices: []domain.SupplierPrice{
					{Supplier: "SupplierA", Price: 3.5, Currency: "SAR", Date: "2025-03-15"},
				},
				Statistics:         domain.PriceStatistics{MinPrice: 3.5, MaxPrice: 3.5, AvgPrice: 3.5, MedianPrice: 3.5, SupplierCount: 1},
				BestPriceSupplier:  "SupplierA",
				WorstPriceSupplier: "SupplierA",
			},
		}
		router := setupTestRouter(&stubProducts{}, comparisons)

		req, _ := http.NewRequest("GET", "/api/comparison/product?product_name=Tomato&period=week", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
		if comparisons.lastName != "Tomato" {
			t.Errorf("product name = %q, want Tomato", comparisons.lastName)
		}
		if comparisons.lastPeriod != domain.PeriodWeek {
			t.Errorf("period = %q, want week", comparisons.lastPeriod)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["product_name"] != "Tomato" {
			t.Errorf("product_name = %v, want Tomato", response["product_name"])
		}
		if response["best_price_supplier"] != "SupplierA" {
			t.Errorf("best_price_supplier = %v, want SupplierA", response["best_price_supplier"])
		}
		if _, ok := response["statistics"].(map[string]interface{}); !ok {
			t.Errorf("statistics missing from response: %v", response)
		}
	})

	t.Run("period defaults to today", func(t *testing.T) {
		comparisons := &stubComparisons{}
		router := setupTestRouter(&stubProducts{}, comparisons)

		req, _ := http.NewRequest("GET", "/api/comparison/product?product_name=Tomato", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		if comparisons.lastPeriod != domain.PeriodToday {
			t.Errorf("period = %q, want today", comparisons.lastPeriod)
		}
	})

	t.Run("invalid period returns 400 without calling service", func(t *testing.T) {
		comparisons := &stubComparisons{}
		router := setupTestRouter(&stubProducts{}, comparisons)

		req, _ := http.NewRequest("GET", "/api/comparison/product?product_name=Tomato&period=fortnight", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if comparisons.compareCalls != 0 {
			t.Errorf("CompareProduct calls = %d, want 0", comparisons.compareCalls)
		}
	})

	t.Run("unknown product returns 404", func(t *testing.T) {
		comparisons := &stubComparisons{
			compareErr: fmt.Errorf("%w: %q", domain.ErrProductNotFound, "Durian"),
		}
		router := setupTestRouter(&stubProducts{}, comparisons)

		req, _ := http.NewRequest("GET", "/api/comparison/product?product_name=Durian", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("blank product name returns 400", func(t *testing.T) {
		comparisons := &stubComparisons{
			compareErr: fmt.Errorf("%w: product name is required", domain.ErrInvalidRequest),
		}
		router := setupTestRouter(&stubProducts{}, comparisons)

		req, _ := http.NewRequest("GET", "/api/comparison/product", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("storage failure returns 500", func(t *testing.T) {
		comparisons := &stubComparisons{compareErr: errors.New("cursor timeout")}
		router := setupTestRouter(&stubProducts{}, comparisons)

		req, _ := http.NewRequest("GET", "/api/comparison/product?product_name=Tomato", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})
}

func TestTrendsEndpoint(t *testing.T) {
	t.Run("returns trends with count", func(t *testing.T) {
		comparisons := &stubComparisons{
			trends: []domain.PriceTrend{
				{
					ProductName:    "Tomato",
					Supplier:       "SupplierA",
					Prices:         []domain.PricePoint{{Date: "2025-03-10", Price: 10}, {Date: "2025-03-14", Price: 15}},
					TrendDirection: domain.TrendIncreasing,
					ChangePct:      50,
				},
			},
		}
		router := setupTestRouter(&stubProducts{}, comparisons)

		query := url.Values{}
		query.Set("product_name", "Tomato")
		query.Set("unit", "1 kg")
		query.Set("supplier", "SupplierA")
		query.Set("days", "14")

		req, _ := http.NewRequest("GET", "/api/comparison/trends?"+query.Encode(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
		if comparisons.lastName != "Tomato" || comparisons.lastUnit != "1 kg" || comparisons.lastSupplier != "SupplierA" {
			t.Errorf("service args = (%q, %q, %q)", comparisons.lastName, comparisons.lastUnit, comparisons.lastSupplier)
		}
		if comparisons.lastDays != 14 {
			t.Errorf("days = %d, want 14", comparisons.lastDays)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["count"] != float64(1) {
			t.Errorf("count = %v, want 1", response["count"])
		}
		trends, ok := response["trends"].([]interface{})
		if !ok || len(trends) != 1 {
			t.Fatalf("trends = %v, want 1 entry", response["trends"])
		}
	})

	t.Run("days defaults to service default when omitted", func(t *testing.T) {
		comparisons := &stubComparisons{}
		router := setupTestRouter(&stubProducts{}, comparisons)

		req, _ := http.NewRequest("GET", "/api/comparison/trends?product_name=Tomato&unit=500g", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		if comparisons.lastDays != 0 {
			t.Errorf("days = %d, want 0 (service applies its default)", comparisons.lastDays)
		}
	})

	t.Run("non-numeric days returns 400", func(t *testing.T) {
		comparisons := &stubComparisons{}
		router := setupTestRouter(&stubProducts{}, comparisons)

		req, _ := http.NewRequest("GET", "/api/comparison/trends?product_name=Tomato&unit=500g&days=abc", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if comparisons.trendCalls != 0 {
			t.Errorf("PriceTrends calls = %d, want 0", comparisons.trendCalls)
		}
	})

	t.Run("missing unit returns 400", func(t *testing.T) {
		comparisons := &stubComparisons{
			trendsErr: fmt.Errorf("%w: product name and unit are required", domain.ErrInvalidRequest),
		}
		router := setupTestRouter(&stubProducts{}, comparisons)

		req, _ := http.NewRequest("GET", "/api/comparison/trends?product_name=Tomato", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("no history yields empty trends", func(t *testing.T) {
		comparisons := &stubComparisons{trends: []domain.PriceTrend{}}
		router := setupTestRouter(&stubProducts{}, comparisons)

		req, _ := http.NewRequest("GET", "/api/comparison/trends?product_name=Tomato&unit=500g", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["count"] != float64(0) {
			t.Errorf("count = %v, want 0", response["count"])
		}
	})
}
