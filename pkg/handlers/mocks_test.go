package handlers

import (
	"context"

	"github.com/souqtech-inc/souqtech-engine/pkg/models"
)

type mockConversationRepo struct {
	saveFunc       func(ctx context.Context, conv *models.Conversation) (*models.Conversation, error)
	getRecentFunc  func(ctx context.Context, limit int) ([]models.Conversation, error)
	getStatsFunc   func(ctx context.Context) (models.ConversationStats, error)
	saved          chan *models.Conversation
	trackedPairs   [][2]string
	comparisonFunc func(ctx context.Context, p1, p2 string) error
}

func newMockConversationRepo() *mockConversationRepo {
	return &mockConversationRepo{saved: make(chan *models.Conversation, 8)}
}

func (m *mockConversationRepo) Save(ctx context.Context, conv *models.Conversation) (*models.Conversation, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, conv)
	}
	m.saved <- conv
	return conv, nil
}

func (m *mockConversationRepo) GetRecent(ctx context.Context, limit int) ([]models.Conversation, error) {
	if m.getRecentFunc != nil {
		return m.getRecentFunc(ctx, limit)
	}
	return []models.Conversation{}, nil
}

func (m *mockConversationRepo) GetStats(ctx context.Context) (models.ConversationStats, error) {
	if m.getStatsFunc != nil {
		return m.getStatsFunc(ctx)
	}
	return models.ConversationStats{}, nil
}

func (m *mockConversationRepo) TrackComparison(ctx context.Context, p1, p2 string) error {
	if m.comparisonFunc != nil {
		return m.comparisonFunc(ctx, p1, p2)
	}
	m.trackedPairs = append(m.trackedPairs, [2]string{p1, p2})
	return nil
}

type mockClickRepo struct {
	trackFunc func(ctx context.Context, event *models.ClickEvent) error
	events    []*models.ClickEvent
}

func (m *mockClickRepo) Track(ctx context.Context, event *models.ClickEvent) error {
	if m.trackFunc != nil {
		return m.trackFunc(ctx, event)
	}
	m.events = append(m.events, event)
	return nil
}

type mockAnalyticsRepo struct {
	topProductsFunc func(ctx context.Context, limit, days int) ([]models.ProductPerformance, error)
	clickStatsFunc  func(ctx context.Context, days int) (*models.ClickStats, error)
}

func (m *mockAnalyticsRepo) TopProducts(ctx context.Context, limit, days int) ([]models.ProductPerformance, error) {
	if m.topProductsFunc != nil {
		return m.topProductsFunc(ctx, limit, days)
	}
	return []models.ProductPerformance{}, nil
}

func (m *mockAnalyticsRepo) ClickStats(ctx context.Context, days int) (*models.ClickStats, error) {
	if m.clickStatsFunc != nil {
		return m.clickStatsFunc(ctx, days)
	}
	return &models.ClickStats{}, nil
}

func (m *mockAnalyticsRepo) ComparisonTrends(context.Context, int) ([]models.ComparisonTrend, error) {
	return []models.ComparisonTrend{}, nil
}

func (m *mockAnalyticsRepo) ConversionFunnel(context.Context, int) ([]models.FunnelStage, error) {
	return []models.FunnelStage{}, nil
}

func (m *mockAnalyticsRepo) RevenueEstimate(_ context.Context, _ int, rate float64) (*models.RevenueEstimate, error) {
	return &models.RevenueEstimate{EstimatedConversionRate: rate}, nil
}

func (m *mockAnalyticsRepo) LanguageStats(context.Context, int) ([]models.LanguageStat, error) {
	return []models.LanguageStat{}, nil
}

func (m *mockAnalyticsRepo) HourlyClicks(context.Context, int) ([]models.HourlyClicks, error) {
	return []models.HourlyClicks{}, nil
}

func (m *mockAnalyticsRepo) CleanupOldClicks(context.Context, int) (int, error) {
	return 0, nil
}
