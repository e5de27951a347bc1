package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/souqtech-inc/souqtech-engine/pkg/adapters/amazon"
	"github.com/souqtech-inc/souqtech-engine/pkg/adapters/shopping"
	"github.com/souqtech-inc/souqtech-engine/pkg/apperrors"
	"github.com/souqtech-inc/souqtech-engine/pkg/cache"
	"github.com/souqtech-inc/souqtech-engine/pkg/llm"
	"github.com/souqtech-inc/souqtech-engine/pkg/models"
	"github.com/souqtech-inc/souqtech-engine/pkg/repositories"
)

type mockImages struct {
	imageURL string
	err      error
	calls    []string
}

func (m *mockImages) GetProductImage(_ context.Context, productName string) (string, error) {
	m.calls = append(m.calls, productName)
	if m.err != nil {
		return "", m.err
	}
	return m.imageURL, nil
}

type mockProductAPI struct {
	configured bool
	items      []amazon.Product
	err        error
	keywords   []string
}

func (m *mockProductAPI) IsConfigured() bool { return m.configured }
func (m *mockProductAPI) PartnerTag() string { return "mobily00-21" }

func (m *mockProductAPI) SearchItems(_ context.Context, keywords string) ([]amazon.Product, error) {
	m.keywords = append(m.keywords, keywords)
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

type mockPriceSearcher struct {
	entries []models.PriceEntry
	err     error
	calls   []string
}

func (m *mockPriceSearcher) ComparePrices(_ context.Context, productName string) ([]models.PriceEntry, error) {
	m.calls = append(m.calls, productName)
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func newTestOrchestrator(deps Deps) *Orchestrator {
	if deps.Images == nil {
		deps.Images = &mockImages{err: apperrors.ErrNotConfigured}
	}
	if deps.ProductAPI == nil {
		deps.ProductAPI = &mockProductAPI{}
	}
	if deps.Shopping == nil {
		deps.Shopping = shopping.NewGenerator("mobily00-21")
	}
	if deps.Conversations == nil {
		deps.Conversations = repositories.NewConversationRepository(nil)
	}
	return NewOrchestrator(deps, zap.NewNop())
}

func TestProcessQuery_PlainAnswer(t *testing.T) {
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, prompt string) (string, error) {
			return "The iPhone 16 is a solid choice.", nil
		},
	}
	o := newTestOrchestrator(Deps{LLMClient: mock})

	result, err := o.ProcessQuery(context.Background(), "should I buy the iphone 16?", "")
	require.NoError(t, err)

	assert.Equal(t, "en", result.Language)
	assert.False(t, result.Comparison)
	assert.Equal(t, "The iPhone 16 is a solid choice.", result.Response.Response)
	assert.NotNil(t, result.Response.Prices, "prices must serialize as an array")
	assert.NotEmpty(t, result.Response.Prices, "detected product should yield store links")
	assert.Equal(t, 1, mock.CreateCompletionCalls)
}

func TestProcessQuery_DetectsArabic(t *testing.T) {
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, prompt string) (string, error) {
			return "جواب", nil
		},
	}
	o := newTestOrchestrator(Deps{LLMClient: mock})

	result, err := o.ProcessQuery(context.Background(), "وش رايك في ايفون 16؟", "")
	require.NoError(t, err)
	assert.Equal(t, "ar", result.Language)
}

func TestProcessQuery_PromptCarriesShoppingLinks(t *testing.T) {
	var prompt string
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, p string) (string, error) {
			prompt = p
			return "ok", nil
		},
	}
	o := newTestOrchestrator(Deps{LLMClient: mock})

	_, err := o.ProcessQuery(context.Background(), "iphone 16 price", "en")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Amazon.sa")
	assert.Contains(t, prompt, "Customer question: iphone 16 price")
}

func TestProcessQuery_Comparison(t *testing.T) {
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, prompt string) (string, error) {
			return "Both are great phones.", nil
		},
	}
	images := &mockImages{imageURL: "https://img.example/phone.jpg"}
	o := newTestOrchestrator(Deps{LLMClient: mock, Images: images})

	result, err := o.ProcessQuery(context.Background(), "iphone 16 vs galaxy s25", "en")
	require.NoError(t, err)

	assert.True(t, result.Comparison)
	assert.Len(t, images.calls, 2, "comparison fetches one image per product")
	assert.Len(t, result.Response.Images, 2)
	require.NotNil(t, result.Response.Image)
	assert.Equal(t, "https://img.example/phone.jpg", *result.Response.Image)

	// Comparison rows are labeled so the client can group by product.
	for _, p := range result.Response.Prices {
		assert.NotEmpty(t, p.ProductName)
	}
}

func TestProcessQuery_LiveMarketplaceLinkReplacesStatic(t *testing.T) {
	api := &mockProductAPI{
		configured: true,
		items: []amazon.Product{{
			ASIN:  "B0LIVE1",
			Title: "Apple iPhone 16 128GB",
			Price: "SAR 3,499",
			URL:   "https://www.amazon.sa/dp/B0LIVE1",
		}},
	}
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, prompt string) (string, error) {
			return "ok", nil
		},
	}
	o := newTestOrchestrator(Deps{LLMClient: mock, ProductAPI: api})

	result, err := o.ProcessQuery(context.Background(), "iphone 16", "en")
	require.NoError(t, err)

	var amazonRow *models.PriceEntry
	for i := range result.Response.Prices {
		if strings.Contains(result.Response.Prices[i].Link, "amazon.") {
			amazonRow = &result.Response.Prices[i]
			break
		}
	}
	require.NotNil(t, amazonRow)
	assert.Equal(t, "SAR 3,499", amazonRow.Price)
	assert.Contains(t, amazonRow.Link, "tag=mobily00-21")
	assert.Equal(t, []string{"iphone 16"}, api.keywords)
}

func TestProcessQuery_CachedLinkWhenAPIFails(t *testing.T) {
	api := &mockProductAPI{configured: true, err: apperrors.ErrNoResults}
	repo := &stubAffiliateRepo{product: &models.AffiliateProduct{
		ASIN:          "B0CACHED",
		ProductName:   "Apple iPhone 16",
		Price:         "SAR 3,599",
		DetailPageURL: "https://www.amazon.sa/dp/B0CACHED",
		LastUpdated:   time.Now(),
	}}
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, prompt string) (string, error) {
			return "ok", nil
		},
	}
	o := newTestOrchestrator(Deps{
		LLMClient:  mock,
		ProductAPI: api,
		Cache:      cache.NewAffiliateCache(repo, 24*time.Hour, zap.NewNop()),
	})

	result, err := o.ProcessQuery(context.Background(), "iphone 16", "en")
	require.NoError(t, err)

	var cachedRow *models.PriceEntry
	for i := range result.Response.Prices {
		if strings.Contains(result.Response.Prices[i].Link, "B0CACHED") {
			cachedRow = &result.Response.Prices[i]
		}
	}
	require.NotNil(t, cachedRow, "cached snapshot should back the marketplace row")
	assert.Equal(t, "SAR 3,599", cachedRow.Price)
}

func TestProcessQuery_WebPricesWhenAPIAndCacheEmpty(t *testing.T) {
	prices := &mockPriceSearcher{entries: []models.PriceEntry{
		{Store: "Best Buy", Price: "$799", Link: "https://www.bestbuy.com/iphone-16"},
		{Store: "Amazon.sa", Price: "$810", Link: "https://www.amazon.sa/dup"},
		{Store: "Walmart", Price: "$789", Link: "https://www.walmart.com/iphone-16"},
	}}
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, prompt string) (string, error) {
			return "ok", nil
		},
	}
	o := newTestOrchestrator(Deps{
		LLMClient:  mock,
		Prices:     prices,
		ProductAPI: &mockProductAPI{}, // unconfigured, no cache either
	})

	result, err := o.ProcessQuery(context.Background(), "iphone 16", "en")
	require.NoError(t, err)
	require.Equal(t, []string{"iphone 16"}, prices.calls)

	byStore := map[string]models.PriceEntry{}
	for _, p := range result.Response.Prices {
		byStore[p.Store] = p
	}
	assert.Equal(t, "$799", byStore["Best Buy"].Price)
	assert.Equal(t, "$789", byStore["Walmart"].Price)
	assert.NotEqual(t, "$810", byStore["Amazon.sa"].Price,
		"static marketplace row must not be overwritten by a web scrape for the same store")
}

func TestProcessQuery_WebPriceLookupFailureDegradesQuietly(t *testing.T) {
	prices := &mockPriceSearcher{err: apperrors.ErrNotConfigured}
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, prompt string) (string, error) {
			return "ok", nil
		},
	}
	o := newTestOrchestrator(Deps{LLMClient: mock, Prices: prices})

	result, err := o.ProcessQuery(context.Background(), "iphone 16", "en")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Response.Prices, "static links still back the response")
}

func TestProcessQuery_NoLLMConfigured(t *testing.T) {
	o := newTestOrchestrator(Deps{LLMClient: nil})

	result, err := o.ProcessQuery(context.Background(), "iphone 16", "en")
	require.NoError(t, err)
	assert.Contains(t, result.Response.Response, "ANTHROPIC_API_KEY")

	arabic, err := o.ProcessQuery(context.Background(), "ايفون 16", "")
	require.NoError(t, err)
	assert.NotEqual(t, result.Response.Response, arabic.Response.Response)
}

func TestProcessQuery_AuthErrorGetsDistinctMessage(t *testing.T) {
	authErr := &llm.Error{Type: llm.ErrorTypeAuth, Message: "invalid x-api-key"}
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", authErr
		},
	}
	o := newTestOrchestrator(Deps{LLMClient: mock})

	result, err := o.ProcessQuery(context.Background(), "iphone 16", "en")
	require.NoError(t, err)
	assert.Contains(t, result.Response.Response, "API key")
	assert.NotContains(t, result.Response.Response, "invalid x-api-key")
}

func TestProcessQuery_EmptyCompletionGetsRetryMessage(t *testing.T) {
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, prompt string) (string, error) {
			return "   ", nil
		},
	}
	o := newTestOrchestrator(Deps{LLMClient: mock})

	result, err := o.ProcessQuery(context.Background(), "iphone 16", "en")
	require.NoError(t, err)
	assert.Contains(t, result.Response.Response, "rephrasing")
}

func TestProcessQuery_NoProductsDetected(t *testing.T) {
	mock := &llm.MockLLMClient{
		CreateCompletionFunc: func(ctx context.Context, prompt string) (string, error) {
			return "Tell me more about what you need.", nil
		},
	}
	images := &mockImages{}
	o := newTestOrchestrator(Deps{LLMClient: mock, Images: images})

	result, err := o.ProcessQuery(context.Background(), "what laptop accessories do you recommend", "en")
	require.NoError(t, err)

	assert.Empty(t, images.calls)
	assert.NotNil(t, result.Response.Prices)
	assert.Empty(t, result.Response.Prices)
	assert.Nil(t, result.Response.Image)
}

// stubAffiliateRepo serves a single fixed product for cache tests.
type stubAffiliateRepo struct {
	product *models.AffiliateProduct
}

func (s *stubAffiliateRepo) Upsert(context.Context, *models.AffiliateProduct) error { return nil }

func (s *stubAffiliateRepo) GetByASIN(context.Context, string) (*models.AffiliateProduct, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubAffiliateRepo) FindByName(context.Context, string) (*models.AffiliateProduct, error) {
	if s.product == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.product, nil
}

func (s *stubAffiliateRepo) IncrementSearchCount(context.Context, string) error { return nil }
