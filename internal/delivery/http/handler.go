package http

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/souqlens/backend/internal/domain"
)

// ProductProcessor runs the daily batch pipeline.
type ProductProcessor interface {
	ProcessDaily(ctx context.Context, now time.Time) (domain.ProcessSummary, error)
}

// PriceComparer serves price comparison and trend queries.
type PriceComparer interface {
	CompareProduct(ctx context.Context, productName string, period domain.Period) (domain.ProductComparison, error)
	PriceTrends(ctx context.Context, productName, unit, supplier string, days int) ([]domain.PriceTrend, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products    ProductProcessor
	comparisons PriceComparer
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(products ProductProcessor, comparisons PriceComparer, logger *zap.Logger) *Handler {
	return &Handler{
		products:    products,
		comparisons: comparisons,
		logger:      logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "souqlens-backend",
		"version": "1.0.0",
	})
}

// ProcessProducts runs today's batch file through the extraction pipeline
// and returns the processing summary.
func (h *Handler) ProcessProducts(c *gin.Context) {
	summary, err := h.products.ProcessDaily(c.Request.Context(), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidInputFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("batch processing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CompareProduct returns a cross-supplier price comparison for one product.
func (h *Handler) CompareProduct(c *gin.Context) {
	productName := c.Query("product_name")

	period, err := domain.ParsePeriod(c.DefaultQuery("period", "today"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comparison, err := h.comparisons.CompareProduct(c.Request.Context(), productName, period)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("product comparison failed",
				zap.String("product", productName),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, comparison)
}

// PriceTrends returns per-supplier price trends for one product and unit.
func (h *Handler) PriceTrends(c *gin.Context) {
	productName := c.Query("product_name")
	unit := c.Query("unit")
	supplier := c.Query("supplier")

	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days value: " + raw})
			return
		}
		days = parsed
	}

	trends, err := h.comparisons.PriceTrends(c.Request.Context(), productName, unit, supplier, days)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("price trend query failed",
				zap.String("product", productName),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trends": trends,
		"count":  len(trends),
	})
}
