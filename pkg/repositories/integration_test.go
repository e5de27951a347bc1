package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqtech-inc/souqtech-engine/pkg/models"
	"github.com/souqtech-inc/souqtech-engine/pkg/repositories"
	"github.com/souqtech-inc/souqtech-engine/pkg/testhelpers"
)

func TestConversationRepository_Integration(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := repositories.NewConversationRepository(db.DB)
	ctx := context.Background()

	saved, err := repo.Save(ctx, &models.Conversation{
		Query:    "iphone 16 vs galaxy s25",
		Response: "Both are flagship phones.",
		Language: "en",
		Prices: []models.PriceEntry{
			{Store: "Amazon.sa", Price: "SAR 3,499", Link: "https://www.amazon.sa/dp/B0TEST?tag=mobily00-21"},
		},
		UserSessionID:   "sess_550e8400-e29b-41d4-a716-446655440000",
		ComparisonQuery: true,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	_, err = repo.Save(ctx, &models.Conversation{Query: "ايفون 16", Response: "جواب", Language: "ar"})
	require.NoError(t, err)

	recent, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(recent), 2)
	// Newest first.
	assert.Equal(t, "ايفون 16", recent[0].Query)

	var comparison *models.Conversation
	for i := range recent {
		if recent[i].ComparisonQuery {
			comparison = &recent[i]
			break
		}
	}
	require.NotNil(t, comparison)
	require.Len(t, comparison.Prices, 1)
	assert.Equal(t, "Amazon.sa", comparison.Prices[0].Store)

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Total, 2)
	assert.GreaterOrEqual(t, stats.Arabic, 1)
	assert.GreaterOrEqual(t, stats.English, 1)
}

func TestConversationRepository_TrackComparison_Integration(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := repositories.NewConversationRepository(db.DB)
	ctx := context.Background()

	require.NoError(t, repo.TrackComparison(ctx, "iphone 16", "pixel 9"))
	// Reversed order must hit the same row.
	require.NoError(t, repo.TrackComparison(ctx, "pixel 9", "iphone 16"))

	var count int
	err := db.DB.QueryRow(ctx, `
		SELECT comparison_count FROM product_comparisons
		WHERE (product1_name = 'iphone 16' AND product2_name = 'pixel 9')
		   OR (product1_name = 'pixel 9' AND product2_name = 'iphone 16')`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAffiliateAndClickRepositories_Integration(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	affiliates := repositories.NewAffiliateRepository(db.DB)
	clicks := repositories.NewClickRepository(db.DB)
	ctx := context.Background()

	product := &models.AffiliateProduct{
		ASIN:          "B0INTEG1",
		ProductName:   "Apple iPhone 16 Pro Max 256GB",
		Price:         "SAR 5,199",
		DetailPageURL: "https://www.amazon.sa/dp/B0INTEG1?tag=mobily00-21",
		Rating:        4.6,
		ReviewCount:   128,
		IsPrime:       true,
	}
	require.NoError(t, affiliates.Upsert(ctx, product))
	// Second upsert bumps the search counter instead of duplicating.
	require.NoError(t, affiliates.Upsert(ctx, product))

	got, err := affiliates.GetByASIN(ctx, "B0INTEG1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.SearchCount)
	assert.Equal(t, "SAR 5,199", got.Price)
	assert.True(t, got.IsPrime)

	byName, err := affiliates.FindByName(ctx, "iphone 16 pro max")
	require.NoError(t, err)
	assert.Equal(t, "B0INTEG1", byName.ASIN)

	require.NoError(t, clicks.Track(ctx, &models.ClickEvent{
		ASIN:         "B0INTEG1",
		ProductName:  "Apple iPhone 16 Pro Max 256GB",
		AffiliateURL: "https://www.amazon.sa/dp/B0INTEG1?tag=mobily00-21",
		Language:     "en",
	}))

	got, err = affiliates.GetByASIN(ctx, "B0INTEG1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ClickCount, "tracked click should bump the product counter")
}

func TestAnalyticsRepository_Integration(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	analytics := repositories.NewAnalyticsRepository(db.DB)
	ctx := context.Background()

	// These ride on whatever the other integration tests inserted; the
	// point is that every SQL function exists and scans cleanly.
	_, err := analytics.TopProducts(ctx, 10, 30)
	require.NoError(t, err)

	stats, err := analytics.ClickStats(ctx, 30)
	require.NoError(t, err)
	require.NotNil(t, stats)

	_, err = analytics.ComparisonTrends(ctx, 10)
	require.NoError(t, err)

	funnel, err := analytics.ConversionFunnel(ctx, 30)
	require.NoError(t, err)
	assert.Len(t, funnel, 3)

	estimate, err := analytics.RevenueEstimate(ctx, 30, 0.04)
	require.NoError(t, err)
	assert.Equal(t, 0.04, estimate.EstimatedConversionRate)

	_, err = analytics.LanguageStats(ctx, 30)
	require.NoError(t, err)

	_, err = analytics.HourlyClicks(ctx, 7)
	require.NoError(t, err)

	deleted, err := analytics.CleanupOldClicks(ctx, 365)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, 0)
}
