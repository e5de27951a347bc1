package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/souqtech-inc/souqtech-engine/pkg/database"
	"github.com/souqtech-inc/souqtech-engine/pkg/models"
)

// AnalyticsRepository reads the aggregates computed by SQL functions shipped
// with the migrations. Every method degrades to empty defaults when no
// database is configured.
type AnalyticsRepository interface {
	TopProducts(ctx context.Context, limit, days int) ([]models.ProductPerformance, error)
	ClickStats(ctx context.Context, days int) (*models.ClickStats, error)
	ComparisonTrends(ctx context.Context, limit int) ([]models.ComparisonTrend, error)
	ConversionFunnel(ctx context.Context, days int) ([]models.FunnelStage, error)
	RevenueEstimate(ctx context.Context, days int, conversionRate float64) (*models.RevenueEstimate, error)
	LanguageStats(ctx context.Context, days int) ([]models.LanguageStat, error)
	HourlyClicks(ctx context.Context, days int) ([]models.HourlyClicks, error)
	CleanupOldClicks(ctx context.Context, retainDays int) (int, error)
}

type analyticsRepository struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

var _ AnalyticsRepository = (*analyticsRepository)(nil)

func (r *analyticsRepository) TopProducts(ctx context.Context, limit, days int) ([]models.ProductPerformance, error) {
	if r.db == nil {
		return []models.ProductPerformance{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT * FROM get_top_products($1, $2)`, limit, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top products: %w", err)
	}
	defer rows.Close()

	products := []models.ProductPerformance{}
	for rows.Next() {
		var p models.ProductPerformance
		if err := rows.Scan(&p.ASIN, &p.ProductName, &p.ClickCount, &p.SearchCount, &p.ConversionRate, &p.LastClicked); err != nil {
			return nil, fmt.Errorf("failed to scan product performance: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *analyticsRepository) ClickStats(ctx context.Context, days int) (*models.ClickStats, error) {
	if r.db == nil {
		return &models.ClickStats{}, nil
	}

	var s models.ClickStats
	err := r.db.QueryRow(ctx, `SELECT * FROM get_click_stats($1)`, days).Scan(
		&s.TotalClicks, &s.UniqueSessions, &s.UniqueProducts,
		&s.AvgClicksPerSession, &s.MostClickedProduct, &s.MostClickedCount,
	)
	if err == pgx.ErrNoRows {
		return &models.ClickStats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch click stats: %w", err)
	}
	return &s, nil
}

func (r *analyticsRepository) ComparisonTrends(ctx context.Context, limit int) ([]models.ComparisonTrend, error) {
	if r.db == nil {
		return []models.ComparisonTrend{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT * FROM get_comparison_trends($1)`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comparison trends: %w", err)
	}
	defer rows.Close()

	trends := []models.ComparisonTrend{}
	for rows.Next() {
		var t models.ComparisonTrend
		if err := rows.Scan(&t.Product1Name, &t.Product2Name, &t.ComparisonCount, &t.LastCompared, &t.TrendScore); err != nil {
			return nil, fmt.Errorf("failed to scan comparison trend: %w", err)
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

func (r *analyticsRepository) ConversionFunnel(ctx context.Context, days int) ([]models.FunnelStage, error) {
	if r.db == nil {
		return []models.FunnelStage{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT * FROM get_conversion_funnel($1)`, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversion funnel: %w", err)
	}
	defer rows.Close()

	stages := []models.FunnelStage{}
	for rows.Next() {
		var s models.FunnelStage
		if err := rows.Scan(&s.Stage, &s.Count, &s.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan funnel stage: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

func (r *analyticsRepository) RevenueEstimate(ctx context.Context, days int, conversionRate float64) (*models.RevenueEstimate, error) {
	if r.db == nil {
		return &models.RevenueEstimate{EstimatedConversionRate: conversionRate}, nil
	}

	var e models.RevenueEstimate
	err := r.db.QueryRow(ctx, `SELECT * FROM estimate_revenue($1, $2)`, days, conversionRate).Scan(
		&e.TotalClicks, &e.EstimatedConversionRate, &e.EstimatedConversions,
		&e.AvgProductPrice, &e.EstimatedRevenue,
	)
	if err == pgx.ErrNoRows {
		return &models.RevenueEstimate{EstimatedConversionRate: conversionRate}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch revenue estimate: %w", err)
	}
	return &e, nil
}

func (r *analyticsRepository) LanguageStats(ctx context.Context, days int) ([]models.LanguageStat, error) {
	if r.db == nil {
		return []models.LanguageStat{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT * FROM get_language_stats($1)`, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch language stats: %w", err)
	}
	defer rows.Close()

	stats := []models.LanguageStat{}
	for rows.Next() {
		var s models.LanguageStat
		if err := rows.Scan(&s.Language, &s.ConversationCount, &s.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan language stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *analyticsRepository) HourlyClicks(ctx context.Context, days int) ([]models.HourlyClicks, error) {
	if r.db == nil {
		return []models.HourlyClicks{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT * FROM get_hourly_clicks($1)`, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hourly clicks: %w", err)
	}
	defer rows.Close()

	buckets := []models.HourlyClicks{}
	for rows.Next() {
		var h models.HourlyClicks
		if err := rows.Scan(&h.Hour, &h.ClickCount); err != nil {
			return nil, fmt.Errorf("failed to scan hourly clicks: %w", err)
		}
		buckets = append(buckets, h)
	}
	return buckets, rows.Err()
}

// CleanupOldClicks trims click rows older than the retention window and
// reports how many were removed.
func (r *analyticsRepository) CleanupOldClicks(ctx context.Context, retainDays int) (int, error) {
	if r.db == nil {
		return 0, nil
	}

	var deleted int
	if err := r.db.QueryRow(ctx, `SELECT cleanup_old_clicks($1)`, retainDays).Scan(&deleted); err != nil {
		return 0, fmt.Errorf("failed to clean up old clicks: %w", err)
	}
	return deleted, nil
}
