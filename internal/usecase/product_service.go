package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/souqlens/backend/internal/domain"
)

// inputDateLayout is the day-month-year form used in daily file names.
const inputDateLayout = "02-01-2006"

// StatusCompleted is the status a finished batch run reports. Runs with
// per-record failures still complete; the failures ride along in the
// summary.
const StatusCompleted = "completed"

const defaultWorkers = 4

// ProductServiceConfig holds configuration for batch processing
type ProductServiceConfig struct {
	DataDirectory string
	Workers       int
}

// ProductService loads daily listing files, runs every record through
// the pipeline, writes the processed records back to disk, and persists
// them to the store.
type ProductService struct {
	pipeline RecordProcessor
	store    domain.ProductRepository
	logger   *zap.Logger
	dataDir  string
	workers  int
}

// NewProductService creates the batch service with its dependencies.
func NewProductService(
	pipeline RecordProcessor,
	store domain.ProductRepository,
	config ProductServiceConfig,
	logger *zap.Logger,
) *ProductService {
	workers := config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	return &ProductService{
		pipeline: pipeline,
		store:    store,
		logger:   logger,
		dataDir:  dataDir,
		workers:  workers,
	}
}

// ProcessDaily runs the whole batch for the given day: load the day's
// input file, process every record, write the results file, persist the
// batch. Record-level failures are collected in the summary; a store
// failure fails the run.
func (s *ProductService) ProcessDaily(ctx context.Context, now time.Time) (domain.ProcessSummary, error) {
	path := filepath.Join(s.dataDir, fmt.Sprintf("data-%s.json", now.Format(inputDateLayout)))

	raws, err := s.loadDataFile(path)
	if err != nil {
		return domain.ProcessSummary{}, err
	}
	s.logger.Info("processing daily file",
		zap.String("path", path),
		zap.Int("products", len(raws)))

	results, recordErrs := s.ProcessAll(ctx, raws)

	outputPath := filepath.Join(s.dataDir, fmt.Sprintf("test_data_%s.json", now.Format(inputDateLayout)))
	if err := s.writeResults(outputPath, results); err != nil {
		return domain.ProcessSummary{}, fmt.Errorf("writing results file: %w", err)
	}

	if err := s.store.InsertBatch(ctx, now.Format(domain.DateLayout), results); err != nil {
		return domain.ProcessSummary{}, fmt.Errorf("storing processed products: %w", err)
	}

	s.logger.Info("processing completed",
		zap.Int("total", len(raws)),
		zap.Int("processed", len(results)),
		zap.Int("failed", len(recordErrs)))

	return domain.ProcessSummary{
		Status:        StatusCompleted,
		TotalProducts: len(raws),
		Processed:     len(results),
		Failed:        len(recordErrs),
		Results:       results,
		Errors:        recordErrs,
		OutputFile:    outputPath,
	}, nil
}

// ProcessAll runs every record through the pipeline with a bounded
// worker pool, preserving input order in the results. A failing record
// produces an error entry instead of aborting the batch.
func (s *ProductService) ProcessAll(ctx context.Context, raws []domain.RawProduct) ([]domain.Product, []domain.ProductError) {
	slots := make([]*domain.Product, len(raws))
	failures := make([]*domain.ProductError, len(raws))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, raw := range raws {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("product processing failed",
						zap.Int("index", i+1),
						zap.String("name", raw.Name),
						zap.Any("cause", r))
					failures[i] = &domain.ProductError{
						ProductIndex: i + 1,
						ProductName:  nameOrUnknown(raw.Name),
						Error:        fmt.Sprintf("%v", r),
					}
				}
			}()

			s.logger.Info("processing product",
				zap.Int("index", i+1),
				zap.Int("total", len(raws)),
				zap.String("name", raw.Name))

			product := s.pipeline.Process(ctx, raw)
			slots[i] = &product
			return nil
		})
	}
	// Workers record their own failures rather than returning errors, so
	// Wait has nothing to report.
	_ = g.Wait()

	results := make([]domain.Product, 0, len(raws))
	for _, p := range slots {
		if p != nil {
			results = append(results, *p)
		}
	}
	recordErrs := make([]domain.ProductError, 0)
	for _, e := range failures {
		if e != nil {
			recordErrs = append(recordErrs, *e)
		}
	}
	return results, recordErrs
}

// loadDataFile reads and validates one daily input file. The "data" key
// is required even when empty.
func (s *ProductService) loadDataFile(path string) ([]domain.RawProduct, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("data file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInputFile, err)
	}
	raw, ok := doc["data"]
	if !ok {
		return nil, fmt.Errorf("%w: missing \"data\" key", domain.ErrInvalidInputFile)
	}

	var records []domain.RawProduct
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInputFile, err)
	}
	return records, nil
}

// writeResults saves the processed records next to the input file.
func (s *ProductService) writeResults(path string, products []domain.Product) error {
	payload, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func nameOrUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}
