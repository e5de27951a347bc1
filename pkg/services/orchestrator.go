// Package services contains the query orchestrator: product detection,
// enrichment fan-out, prompt composition, the model call, and response
// assembly in one place.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/souqtech-inc/souqtech-engine/pkg/adapters/amazon"
	"github.com/souqtech-inc/souqtech-engine/pkg/adapters/shopping"
	"github.com/souqtech-inc/souqtech-engine/pkg/apperrors"
	"github.com/souqtech-inc/souqtech-engine/pkg/cache"
	"github.com/souqtech-inc/souqtech-engine/pkg/llm"
	"github.com/souqtech-inc/souqtech-engine/pkg/logging"
	"github.com/souqtech-inc/souqtech-engine/pkg/models"
	"github.com/souqtech-inc/souqtech-engine/pkg/products"
	"github.com/souqtech-inc/souqtech-engine/pkg/prompts"
	"github.com/souqtech-inc/souqtech-engine/pkg/repositories"
)

// How long the enrichment fan-out (images + shopping links) may take before
// the query proceeds with whatever was gathered.
const enrichmentTimeout = 10 * time.Second

var arabicScript = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

// ImageSearcher is the slice of the image-search client the orchestrator
// needs.
type ImageSearcher interface {
	GetProductImage(ctx context.Context, productName string) (string, error)
}

// PriceSearcher finds per-store prices on the open web. It is the last
// resort when both the marketplace API and the cache come up empty.
type PriceSearcher interface {
	ComparePrices(ctx context.Context, productName string) ([]models.PriceEntry, error)
}

// ProductAPI is the slice of the marketplace product client the orchestrator
// needs.
type ProductAPI interface {
	IsConfigured() bool
	PartnerTag() string
	SearchItems(ctx context.Context, keywords string) ([]amazon.Product, error)
}

// Orchestrator answers shopping queries end to end.
type Orchestrator struct {
	llmClient     llm.LLMClient // nil when no API key is configured
	images        ImageSearcher
	prices        PriceSearcher
	productAPI    ProductAPI
	shopping      *shopping.Generator
	cache         *cache.AffiliateCache
	conversations repositories.ConversationRepository
	logger        *zap.Logger
}

// Deps carries the orchestrator's collaborators. LLMClient may be nil;
// the orchestrator then answers every query with a setup diagnostic.
type Deps struct {
	LLMClient     llm.LLMClient
	Images        ImageSearcher
	Prices        PriceSearcher
	ProductAPI    ProductAPI
	Shopping      *shopping.Generator
	Cache         *cache.AffiliateCache
	Conversations repositories.ConversationRepository
}

func NewOrchestrator(deps Deps, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		llmClient:     deps.LLMClient,
		images:        deps.Images,
		prices:        deps.Prices,
		productAPI:    deps.ProductAPI,
		shopping:      deps.Shopping,
		cache:         deps.Cache,
		conversations: deps.Conversations,
		logger:        logger.Named("orchestrator"),
	}
}

// Result is the assembled answer plus the metadata the caller persists.
type Result struct {
	Response   models.SearchResponse
	Language   string
	Comparison bool
}

// ProcessQuery runs the full pipeline for one user query. It only errors on
// internal failures; upstream outages and missing credentials degrade into a
// usable (if apologetic) response body.
func (o *Orchestrator) ProcessQuery(ctx context.Context, query, language string) (*Result, error) {
	if language == "" {
		language = detectLanguage(query)
	}

	detected := products.Detect(query)
	comparison := products.IsComparison(query) && len(detected) >= 2

	names := make([]string, len(detected))
	for i, d := range detected {
		names[i] = d.NormalizedName
	}

	o.logger.Info("processing query",
		zap.String("language", language),
		zap.Strings("products", names),
		zap.Bool("comparison", comparison))

	enriched := o.enrich(ctx, names, comparison, language)

	if comparison && o.conversations != nil {
		// Head-to-head interest feeds the trends analytics; losing a
		// record is acceptable, blocking the answer is not.
		go func(p1, p2 string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := o.conversations.TrackComparison(ctx, p1, p2); err != nil {
				o.logger.Warn("failed to track comparison", zap.Error(err))
			}
		}(names[0], names[1])
	}

	answer := o.answer(ctx, prompts.Compose(prompts.Input{
		Query:      query,
		Language:   language,
		Comparison: comparison,
		Products:   names,
		Links:      enriched.prices,
	}), language)

	var image *string
	if len(enriched.images) > 0 {
		image = &enriched.images[0]
	}
	return &Result{
		Response: models.SearchResponse{
			Response: answer,
			Image:    image,
			Images:   enriched.images,
			Prices:   enriched.prices,
		},
		Language:   language,
		Comparison: comparison,
	}, nil
}

type enrichment struct {
	images []string
	prices []models.PriceEntry
}

// enrich gathers product images and shopping links concurrently. Failures
// are logged and yield gaps, never errors.
func (o *Orchestrator) enrich(ctx context.Context, names []string, comparison bool, language string) enrichment {
	ctx, cancel := context.WithTimeout(ctx, enrichmentTimeout)
	defer cancel()

	// One image per product for comparisons, one for the lead product
	// otherwise.
	imageTargets := names
	if !comparison && len(names) > 1 {
		imageTargets = names[:1]
	}

	images := make([]string, len(imageTargets))
	linksPer := make([][]models.ShoppingLink, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range imageTargets {
		g.Go(func() error {
			url, err := o.images.GetProductImage(gctx, name)
			if err != nil {
				if !benign(err) {
					o.logger.Warn("image lookup failed", zap.String("product", name), zap.String("error", logging.SanitizeError(err)))
				}
				return nil
			}
			images[i] = url
			return nil
		})
	}
	for i, name := range names {
		g.Go(func() error {
			linksPer[i] = o.linksFor(gctx, name, language)
			return nil
		})
	}
	// Workers never return errors; Wait only orders the writes above.
	_ = g.Wait()

	var found []string
	for _, url := range images {
		if url != "" {
			found = append(found, url)
		}
	}

	prices := []models.PriceEntry{}
	for i, links := range linksPer {
		for _, link := range links {
			entry := models.PriceEntry{
				Store: link.Store,
				Price: link.Price,
				Link:  link.URL,
			}
			if entry.Price == "" {
				entry.Price = checkPriceLabel(language)
			}
			if comparison {
				entry.ProductName = names[i]
			}
			prices = append(prices, entry)
		}
	}
	return enrichment{images: found, prices: prices}
}

// linksFor builds the store links for one product. The marketplace entry is
// upgraded from the static search URL to a live API result when available,
// or to a cached snapshot when the API fails. When neither produces a
// price, a web price scan supplements the static links.
func (o *Orchestrator) linksFor(ctx context.Context, name, language string) []models.ShoppingLink {
	links := o.shopping.Links(name, language)
	if len(links) == 0 {
		links = []models.ShoppingLink{o.shopping.MarketplaceSearchLink(name, language)}
	}

	live, ok := o.marketplaceLink(ctx, name, language)
	if !ok {
		return o.appendWebPrices(ctx, name, links)
	}
	for i := range links {
		if strings.Contains(links[i].URL, "amazon.") {
			links[i] = live
			return links
		}
	}
	return append([]models.ShoppingLink{live}, links...)
}

func (o *Orchestrator) marketplaceLink(ctx context.Context, name, language string) (models.ShoppingLink, bool) {
	storeName := "Amazon.sa"
	if language == "ar" {
		storeName = "أمازون السعودية"
	}

	if o.productAPI != nil && o.productAPI.IsConfigured() {
		items, err := o.productAPI.SearchItems(ctx, name)
		if err == nil && len(items) > 0 {
			if o.cache != nil {
				o.cache.Store(ctx, toAffiliateProducts(items))
			}
			first := items[0]
			return models.ShoppingLink{
				Store:       storeName,
				URL:         amazon.EnsureTag(first.URL, o.productAPI.PartnerTag()),
				Price:       first.Price,
				Available:   true,
				ProductName: first.Title,
				ASIN:        first.ASIN,
				Provenance:  models.ProvenanceAmazon,
			}, true
		}
		if err != nil && !benign(err) {
			o.logger.Warn("product api lookup failed",
				zap.String("product", name), zap.String("error", logging.SanitizeError(err)))
		}
	}

	if o.cache == nil {
		return models.ShoppingLink{}, false
	}
	cached, err := o.cache.Lookup(ctx, name)
	if err != nil {
		if !benign(err) {
			o.logger.Warn("cache lookup failed", zap.String("product", name), zap.Error(err))
		}
		return models.ShoppingLink{}, false
	}
	return models.ShoppingLink{
		Store:       storeName,
		URL:         amazon.EnsureTag(cached.DetailPageURL, o.partnerTag()),
		Price:       cached.Price,
		Available:   true,
		ProductName: cached.ProductName,
		ASIN:        cached.ASIN,
		Provenance:  models.ProvenanceCache,
	}, true
}

// appendWebPrices adds up to three priced entries scraped from web search
// results, skipping stores already covered by the static links.
func (o *Orchestrator) appendWebPrices(ctx context.Context, name string, links []models.ShoppingLink) []models.ShoppingLink {
	if o.prices == nil {
		return links
	}
	entries, err := o.prices.ComparePrices(ctx, name)
	if err != nil {
		if !benign(err) {
			o.logger.Warn("web price lookup failed",
				zap.String("product", name), zap.String("error", logging.SanitizeError(err)))
		}
		return links
	}

	have := make(map[string]bool, len(links))
	for _, l := range links {
		have[l.Store] = true
	}
	added := 0
	for _, e := range entries {
		if have[e.Store] {
			continue
		}
		links = append(links, models.ShoppingLink{
			Store:       e.Store,
			URL:         e.Link,
			Price:       e.Price,
			Available:   true,
			ProductName: name,
			Provenance:  models.ProvenanceWeb,
		})
		have[e.Store] = true
		if added++; added == 3 {
			break
		}
	}
	return links
}

func (o *Orchestrator) partnerTag() string {
	if o.productAPI != nil {
		return o.productAPI.PartnerTag()
	}
	return ""
}

// answer turns the composed prompt into the response text. Every failure
// mode maps to a language-appropriate message; the HTTP status stays 200 so
// the client renders the text like any other answer.
func (o *Orchestrator) answer(ctx context.Context, prompt, language string) string {
	if o.llmClient == nil {
		o.logger.Warn("llm client not configured; returning setup diagnostic")
		return notConfiguredMessage(language)
	}

	text, err := o.llmClient.CreateCompletion(ctx, prompt)
	if err != nil {
		classified := llm.ClassifyError(err)
		o.logger.Error("llm completion failed", zap.String("error", logging.SanitizeError(classified)))
		if llm.IsAuth(classified) {
			return authFailureMessage(language)
		}
		return apologyMessage(language)
	}
	if strings.TrimSpace(text) == "" {
		o.logger.Warn("llm returned empty completion")
		return retryMessage(language)
	}
	return text
}

// benign reports whether an upstream error is an expected degradation
// (missing credentials, empty results, cache miss) rather than a failure
// worth a warning.
func benign(err error) bool {
	return errors.Is(err, apperrors.ErrNotConfigured) ||
		errors.Is(err, apperrors.ErrNoResults) ||
		errors.Is(err, apperrors.ErrNotFound)
}

func detectLanguage(query string) string {
	if arabicScript.MatchString(query) {
		return "ar"
	}
	return "en"
}

func toAffiliateProducts(items []amazon.Product) []models.AffiliateProduct {
	out := make([]models.AffiliateProduct, 0, len(items))
	for _, item := range items {
		out = append(out, models.AffiliateProduct{
			ASIN:                item.ASIN,
			ProductName:         item.Title,
			Price:               item.Price,
			ImageURL:            item.Image,
			DetailPageURL:       item.URL,
			Rating:              item.Rating,
			ReviewCount:         item.ReviewCount,
			IsPrime:             item.IsPrime,
			IsFulfilledByAmazon: item.IsFulfilledByAmazon,
		})
	}
	return out
}

func checkPriceLabel(language string) string {
	if language == "ar" {
		return "تحقق من السعر"
	}
	return "Check price"
}

func notConfiguredMessage(language string) string {
	if language == "ar" {
		return "عذراً، المساعد غير مهيأ بالكامل بعد: مفتاح خدمة الذكاء الاصطناعي غير موجود. الرجاء إضافة مفتاح ANTHROPIC_API_KEY ثم المحاولة مرة أخرى."
	}
	return "Sorry, the assistant is not fully set up yet: the AI service key is missing. Please add an ANTHROPIC_API_KEY and try again."
}

func authFailureMessage(language string) string {
	if language == "ar" {
		return "عذراً، تعذر الاتصال بخدمة الذكاء الاصطناعي بسبب مشكلة في بيانات الاعتماد. الرجاء التحقق من مفتاح الخدمة."
	}
	return "Sorry, the AI service rejected our credentials. Please check the configured API key."
}

func apologyMessage(language string) string {
	if language == "ar" {
		return "عذراً، حدث خطأ أثناء معالجة سؤالك. حاول مرة أخرى بعد قليل."
	}
	return "Sorry, something went wrong while answering your question. Please try again in a moment."
}

func retryMessage(language string) string {
	if language == "ar" {
		return "عذراً، لم أتمكن من صياغة إجابة هذه المرة. حاول إعادة صياغة سؤالك."
	}
	return "Sorry, I could not come up with an answer this time. Try rephrasing your question."
}
