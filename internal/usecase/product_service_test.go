package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/souqlens/backend/internal/classifier"
	"github.com/souqlens/backend/internal/domain"
	"github.com/souqlens/backend/internal/extractor"
)

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	inserted       map[string][]domain.Product
	insertErr      error
	findResults    []domain.StoredProduct
	findErr        error
	historyResults []domain.StoredProduct
	historyErr     error

	findCalls    int
	lastName     string
	lastUnit     string
	lastSupplier string
	lastFrom     string
	lastTo       string
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{inserted: make(map[string][]domain.Product)}
}

func (m *MockProductRepository) InsertBatch(_ context.Context, date string, products []domain.Product) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted[date] = append(m.inserted[date], products...)
	return nil
}

func (m *MockProductRepository) FindByName(_ context.Context, name, from, to string) ([]domain.StoredProduct, error) {
	m.findCalls++
	m.lastName, m.lastFrom, m.lastTo = name, from, to
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.findResults, nil
}

func (m *MockProductRepository) FindPriceHistory(_ context.Context, name, unit, supplier, from, to string) ([]domain.StoredProduct, error) {
	m.lastName, m.lastUnit, m.lastSupplier, m.lastFrom, m.lastTo = name, unit, supplier, from, to
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.historyResults, nil
}

func (m *MockProductRepository) EnsureIndexes(_ context.Context) error { return nil }

func (m *MockProductRepository) Close(_ context.Context) error { return nil }

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string][]byte
	getErr    error
	setErr    error
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.setCalled = true
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Close() error { return nil }

// newDeterministicPipeline builds the full pipeline with no completion
// capability, so every path is rule-based and repeatable.
func newDeterministicPipeline() *Pipeline {
	logger := zap.NewNop()
	patterns := extractor.NewPatterns()
	engine := extractor.NewEngine(patterns, "Saudi", "SAR", logger)
	complexity := extractor.NewComplexityClassifier(patterns)
	hybridExtractor := extractor.NewHybridExtractor(engine, nil, complexity, logger)
	hybridClassifier := classifier.NewHybrid(classifier.NewRuleBased(), nil, logger)
	return NewPipeline(hybridExtractor, hybridClassifier)
}

// panickyProcessor wraps a pipeline and panics on one specific name, to
// exercise per-record failure isolation.
type panickyProcessor struct {
	pipeline RecordProcessor
	panicOn  string
}

func (p *panickyProcessor) Process(ctx context.Context, raw domain.RawProduct) domain.Product {
	if raw.Name == p.panicOn {
		panic("synthetic failure: " + raw.Name)
	}
	return p.pipeline.Process(ctx, raw)
}

func TestProcessAll(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves input order with concurrent workers", func(t *testing.T) {
		svc := NewProductService(newDeterministicPipeline(), NewMockProductRepository(),
			ProductServiceConfig{Workers: 3}, zap.NewNop())

		raws := []domain.RawProduct{
			{Name: "Farm Fresh Bunch Tomato 500g", Price: "3.50", Source: "SupplierA"},
			{Name: "Premium Quality Banana Philippines 1 kg", Price: "12,00", Source: "SupplierB"},
			{Name: "Fuji Apple", Price: "8", Source: "SupplierC"},
		}

		results, recordErrs := svc.ProcessAll(ctx, raws)

		if len(results) != 3 {
			t.Fatalf("got %d results, want 3", len(results))
		}
		if len(recordErrs) != 0 {
			t.Fatalf("got %d errors, want 0: %+v", len(recordErrs), recordErrs)
		}
		for i, raw := range raws {
			if results[i].OriginalName != raw.Name {
				t.Errorf("results[%d].OriginalName = %q, want %q", i, results[i].OriginalName, raw.Name)
			}
		}
		if results[0].ProductName != "Tomato" || results[0].Category != domain.CategoryVegetables {
			t.Errorf("first record = %q/%q, want Tomato/Vegetables", results[0].ProductName, results[0].Category)
		}
	})

	t.Run("one failing record does not abort the batch", func(t *testing.T) {
		processor := &panickyProcessor{
			pipeline: newDeterministicPipeline(),
			panicOn:  "Cursed Item",
		}
		svc := NewProductService(processor, NewMockProductRepository(),
			ProductServiceConfig{Workers: 2}, zap.NewNop())

		raws := []domain.RawProduct{
			{Name: "Tomato", Price: "2", Source: "A"},
			{Name: "Cursed Item", Price: "1", Source: "B"},
			{Name: "Banana", Price: "3", Source: "C"},
		}

		results, recordErrs := svc.ProcessAll(ctx, raws)

		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
		if results[0].OriginalName != "Tomato" || results[1].OriginalName != "Banana" {
			t.Errorf("surviving records = %q, %q", results[0].OriginalName, results[1].OriginalName)
		}
		if len(recordErrs) != 1 {
			t.Fatalf("got %d errors, want 1", len(recordErrs))
		}
		if recordErrs[0].ProductIndex != 2 {
			t.Errorf("ProductIndex = %d, want 2 (1-based)", recordErrs[0].ProductIndex)
		}
		if recordErrs[0].ProductName != "Cursed Item" {
			t.Errorf("ProductName = %q, want %q", recordErrs[0].ProductName, "Cursed Item")
		}
		if recordErrs[0].Error == "" {
			t.Error("error description should not be empty")
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		svc := NewProductService(newDeterministicPipeline(), NewMockProductRepository(),
			ProductServiceConfig{}, zap.NewNop())

		results, recordErrs := svc.ProcessAll(ctx, nil)
		if len(results) != 0 || len(recordErrs) != 0 {
			t.Errorf("got %d results and %d errors, want none", len(results), len(recordErrs))
		}
	})
}

func TestProcessDaily(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)

	writeDaily := func(t *testing.T, dir, content string) {
		t.Helper()
		path := filepath.Join(dir, "data-15-03-2025.json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("full run", func(t *testing.T) {
		dir := t.TempDir()
		writeDaily(t, dir, `{
			"data": [
				{"name": "Farm Fresh Bunch Tomato 500g", "price": "3.50", "source": "SupplierA"},
				{"name": "Fuji Apple", "price": 8.25, "source": "SupplierB"}
			]
		}`)

		store := NewMockProductRepository()
		svc := NewProductService(newDeterministicPipeline(), store,
			ProductServiceConfig{DataDirectory: dir}, zap.NewNop())

		summary, err := svc.ProcessDaily(ctx, now)
		if err != nil {
			t.Fatalf("ProcessDaily() returned error: %v", err)
		}

		if summary.Status != StatusCompleted {
			t.Errorf("Status = %q, want %q", summary.Status, StatusCompleted)
		}
		if summary.TotalProducts != 2 || summary.Processed != 2 || summary.Failed != 0 {
			t.Errorf("counts = %d/%d/%d, want 2/2/0",
				summary.TotalProducts, summary.Processed, summary.Failed)
		}

		wantOutput := filepath.Join(dir, "test_data_15-03-2025.json")
		if summary.OutputFile != wantOutput {
			t.Errorf("OutputFile = %q, want %q", summary.OutputFile, wantOutput)
		}
		payload, err := os.ReadFile(wantOutput)
		if err != nil {
			t.Fatalf("results file not written: %v", err)
		}
		var written []domain.Product
		if err := json.Unmarshal(payload, &written); err != nil {
			t.Fatalf("results file is not valid JSON: %v", err)
		}
		if len(written) != 2 {
			t.Errorf("results file has %d records, want 2", len(written))
		}

		stored := store.inserted["2025-03-15"]
		if len(stored) != 2 {
			t.Fatalf("store received %d products for 2025-03-15, want 2", len(stored))
		}
		if stored[0].ProductName != "Tomato" {
			t.Errorf("stored[0].ProductName = %q, want %q", stored[0].ProductName, "Tomato")
		}
		if stored[1].Price != 8.25 {
			t.Errorf("stored[1].Price = %v, want 8.25 (numeric JSON price)", stored[1].Price)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		svc := NewProductService(newDeterministicPipeline(), NewMockProductRepository(),
			ProductServiceConfig{DataDirectory: t.TempDir()}, zap.NewNop())

		_, err := svc.ProcessDaily(ctx, now)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want wrapping fs.ErrNotExist", err)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		dir := t.TempDir()
		writeDaily(t, dir, `{"data": [`)

		svc := NewProductService(newDeterministicPipeline(), NewMockProductRepository(),
			ProductServiceConfig{DataDirectory: dir}, zap.NewNop())

		_, err := svc.ProcessDaily(ctx, now)
		if !errors.Is(err, domain.ErrInvalidInputFile) {
			t.Errorf("error = %v, want ErrInvalidInputFile", err)
		}
	})

	t.Run("missing data key", func(t *testing.T) {
		dir := t.TempDir()
		writeDaily(t, dir, `{"products": []}`)

		svc := NewProductService(newDeterministicPipeline(), NewMockProductRepository(),
			ProductServiceConfig{DataDirectory: dir}, zap.NewNop())

		_, err := svc.ProcessDaily(ctx, now)
		if !errors.Is(err, domain.ErrInvalidInputFile) {
			t.Errorf("error = %v, want ErrInvalidInputFile", err)
		}
	})

	t.Run("empty data array completes with zero counts", func(t *testing.T) {
		dir := t.TempDir()
		writeDaily(t, dir, `{"data": []}`)

		svc := NewProductService(newDeterministicPipeline(), NewMockProductRepository(),
			ProductServiceConfig{DataDirectory: dir}, zap.NewNop())

		summary, err := svc.ProcessDaily(ctx, now)
		if err != nil {
			t.Fatalf("ProcessDaily() returned error: %v", err)
		}
		if summary.Status != StatusCompleted || summary.TotalProducts != 0 {
			t.Errorf("summary = %+v, want completed with zero totals", summary)
		}
	})

	t.Run("store failure fails the run", func(t *testing.T) {
		dir := t.TempDir()
		writeDaily(t, dir, `{"data": [{"name": "Tomato", "price": "2", "source": "A"}]}`)

		store := NewMockProductRepository()
		store.insertErr = errors.New("connection reset")
		svc := NewProductService(newDeterministicPipeline(), store,
			ProductServiceConfig{DataDirectory: dir}, zap.NewNop())

		_, err := svc.ProcessDaily(ctx, now)
		if err == nil {
			t.Fatal("ProcessDaily() should fail when the store insert fails")
		}
	})
}
