package extractor

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/souqlens/backend/internal/domain"
)

func newTestHybrid(stub *stubCompleter) *HybridExtractor {
	patterns := NewPatterns()
	engine := NewEngine(patterns, "Saudi", "SAR", zap.NewNop())

	var generative *GenerativeExtractor
	if stub != nil {
		generative = NewGenerativeExtractor(stub, "SAR")
	}
	return NewHybridExtractor(engine, generative, NewComplexityClassifier(patterns), zap.NewNop())
}

func TestHybridExtract_SimpleNameSkipsCompletion(t *testing.T) {
	stub := &stubCompleter{response: `{"product_name": "Wrong", "unit": "1 kg", "price": 1}`}
	h := newTestHybrid(stub)

	got := h.Extract(context.Background(), domain.RawProduct{
		Name:   "Tomato 500g",
		Price:  "3.50",
		Source: "SupplierA",
	})

	if stub.calls != 0 {
		t.Errorf("completer called %d times for a simple name, want 0", stub.calls)
	}
	if got.ProductName != "Tomato" {
		t.Errorf("ProductName = %q, want %q from the deterministic path", got.ProductName, "Tomato")
	}
}

func TestHybridExtract_ComplexNameUsesCompletion(t *testing.T) {
	stub := &stubCompleter{
		response: `{"product_name": "Apple", "unit": "1 kg", "origin": "China", "price": 8.75}`,
	}
	h := newTestHybrid(stub)

	got := h.Extract(context.Background(), complexRaw)

	if stub.calls != 1 {
		t.Fatalf("completer called %d times for a complex name, want 1", stub.calls)
	}
	if got.ProductName != "Apple" {
		t.Errorf("ProductName = %q, want %q from the completion", got.ProductName, "Apple")
	}
	if got.Origin == nil || *got.Origin != "China" {
		t.Errorf("Origin = %v, want China", got.Origin)
	}
}

func TestHybridExtract_CompletionFailureFallsBack(t *testing.T) {
	stub := &stubCompleter{err: errors.New("service unavailable")}
	h := newTestHybrid(stub)
	engineOnly := newTestHybrid(nil)

	got := h.Extract(context.Background(), complexRaw)

	if stub.calls != 1 {
		t.Fatalf("completer called %d times, want 1", stub.calls)
	}
	want := engineOnly.Extract(context.Background(), complexRaw)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback result = %+v, want the deterministic result %+v", got, want)
	}
}

func TestHybridExtract_NoCompleterConfigured(t *testing.T) {
	h := newTestHybrid(nil)

	got := h.Extract(context.Background(), complexRaw)

	if got.ProductName != "Apple" {
		t.Errorf("ProductName = %q, want %q", got.ProductName, "Apple")
	}
	if got.Origin == nil || *got.Origin != "China" {
		t.Errorf("Origin = %v, want China", got.Origin)
	}
	if got.Unit != "1 kg" {
		t.Errorf("Unit = %q, want %q", got.Unit, "1 kg")
	}
}
