package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/souqtech-inc/souqtech-engine/pkg/models"
	"github.com/souqtech-inc/souqtech-engine/pkg/repositories"
)

// Affiliate programs around 4% commission on electronics; used when the
// caller does not supply a rate.
const defaultConversionRate = 0.04

// AnalyticsHandler serves the click/comparison/revenue aggregates.
type AnalyticsHandler struct {
	analytics repositories.AnalyticsRepository
	logger    *zap.Logger
}

func NewAnalyticsHandler(analytics repositories.AnalyticsRepository, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, logger: logger}
}

// RegisterRoutes registers the analytics handler's routes on the given mux.
func (h *AnalyticsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/analytics/top-products", h.TopProducts)
	mux.HandleFunc("GET /api/analytics/click-stats", h.ClickStats)
	mux.HandleFunc("GET /api/analytics/comparison-trends", h.ComparisonTrends)
	mux.HandleFunc("GET /api/analytics/conversion-funnel", h.ConversionFunnel)
	mux.HandleFunc("GET /api/analytics/revenue-estimate", h.RevenueEstimate)
	mux.HandleFunc("GET /api/analytics/language-stats", h.LanguageStats)
	mux.HandleFunc("GET /api/analytics/hourly-clicks", h.HourlyClicks)
	mux.HandleFunc("GET /api/analytics/report", h.Report)
	mux.HandleFunc("POST /api/analytics/cleanup", h.Cleanup)
}

func (h *AnalyticsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	days := queryInt(r, "days", 30)

	products, err := h.analytics.TopProducts(r.Context(), limit, days)
	if err != nil {
		h.fail(w, "Failed to fetch top products", err)
		return
	}
	h.write(w, products)
}

func (h *AnalyticsHandler) ClickStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.ClickStats(r.Context(), queryInt(r, "days", 30))
	if err != nil {
		h.fail(w, "Failed to fetch click stats", err)
		return
	}
	h.write(w, stats)
}

func (h *AnalyticsHandler) ComparisonTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.analytics.ComparisonTrends(r.Context(), queryInt(r, "limit", 10))
	if err != nil {
		h.fail(w, "Failed to fetch comparison trends", err)
		return
	}
	h.write(w, trends)
}

func (h *AnalyticsHandler) ConversionFunnel(w http.ResponseWriter, r *http.Request) {
	funnel, err := h.analytics.ConversionFunnel(r.Context(), queryInt(r, "days", 30))
	if err != nil {
		h.fail(w, "Failed to fetch conversion funnel", err)
		return
	}
	h.write(w, funnel)
}

func (h *AnalyticsHandler) RevenueEstimate(w http.ResponseWriter, r *http.Request) {
	estimate, err := h.analytics.RevenueEstimate(r.Context(), queryInt(r, "days", 30), defaultConversionRate)
	if err != nil {
		h.fail(w, "Failed to estimate revenue", err)
		return
	}
	h.write(w, estimate)
}

func (h *AnalyticsHandler) LanguageStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.LanguageStats(r.Context(), queryInt(r, "days", 30))
	if err != nil {
		h.fail(w, "Failed to fetch language stats", err)
		return
	}
	h.write(w, stats)
}

func (h *AnalyticsHandler) HourlyClicks(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.analytics.HourlyClicks(r.Context(), queryInt(r, "days", 7))
	if err != nil {
		h.fail(w, "Failed to fetch hourly clicks", err)
		return
	}
	h.write(w, buckets)
}

// Report handles GET /api/analytics/report requests, bundling every
// aggregate for a dashboard in one round trip.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)

	report := models.AnalyticsReport{
		Period:      r.URL.Query().Get("days"),
		GeneratedAt: time.Now().UTC(),
	}
	if report.Period == "" {
		report.Period = "30"
	}
	report.Period += " days"

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		report.ClickStats, err = h.analytics.ClickStats(ctx, days)
		return err
	})
	g.Go(func() (err error) {
		report.RevenueEstimate, err = h.analytics.RevenueEstimate(ctx, days, defaultConversionRate)
		return err
	})
	g.Go(func() (err error) {
		report.ConversionFunnel, err = h.analytics.ConversionFunnel(ctx, days)
		return err
	})
	g.Go(func() (err error) {
		report.TopProducts, err = h.analytics.TopProducts(ctx, 10, days)
		return err
	})
	g.Go(func() (err error) {
		report.ComparisonTrends, err = h.analytics.ComparisonTrends(ctx, 10)
		return err
	})
	g.Go(func() (err error) {
		report.LanguageStats, err = h.analytics.LanguageStats(ctx, days)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, "Failed to build analytics report", err)
		return
	}
	h.write(w, report)
}

// Cleanup handles POST /api/analytics/cleanup requests, trimming click rows
// older than the retention window (default 90 days).
func (h *AnalyticsHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	retainDays := queryInt(r, "days", 90)

	deleted, err := h.analytics.CleanupOldClicks(r.Context(), retainDays)
	if err != nil {
		h.fail(w, "Failed to clean up old clicks", err)
		return
	}
	h.write(w, map[string]any{"success": true, "deleted": deleted})
}

func (h *AnalyticsHandler) fail(w http.ResponseWriter, message string, err error) {
	h.logger.Error(message, zap.Error(err))
	_ = ErrorResponse(w, http.StatusInternalServerError, message, "")
}

func (h *AnalyticsHandler) write(w http.ResponseWriter, data any) {
	if err := WriteJSON(w, http.StatusOK, data); err != nil {
		h.logger.Error("Failed to encode analytics response", zap.Error(err))
	}
}
