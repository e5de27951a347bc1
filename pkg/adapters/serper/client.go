// Package serper is a thin client for the Serper search API: image lookup
// for product shots, organic web search, and a best-effort price scan.
// Every failure mode here is survivable; callers treat ErrNotConfigured and
// ErrNoResults as degraded enrichment, never as request failures.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/souqtech-inc/souqtech-engine/pkg/apperrors"
	"github.com/souqtech-inc/souqtech-engine/pkg/models"
)

// Client calls the Serper endpoints with a shared HTTP client.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *zap.Logger
}

// Config holds Serper client configuration.
type Config struct {
	APIKey  string
	BaseURL string // defaults to https://google.serper.dev
}

// NewClient creates a Serper client. An empty API key produces a client
// that is soft-disabled: every call returns apperrors.ErrNotConfigured.
func NewClient(cfg *Config, logger *zap.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://google.serper.dev"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		logger:     logger.Named("serper"),
	}
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type searchResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic"`
	Images []struct {
		ImageURL string `json:"imageUrl"`
	} `json:"images"`
}

// GetProductImage returns the first image URL for a product, scoping the
// query to manufacturer domains so marketplace thumbnails don't win.
func (c *Client) GetProductImage(ctx context.Context, productName string) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.ErrNotConfigured
	}

	query := fmt.Sprintf(
		"%s official product image site:apple.com OR site:samsung.com OR site:google.com OR site:oneplus.com",
		productName)

	var resp searchResponse
	if err := c.post(ctx, "/images", searchRequest{Q: query, Num: 5}, &resp); err != nil {
		return "", err
	}

	if len(resp.Images) == 0 {
		c.logger.Debug("no product image found", zap.String("product", productName))
		return "", apperrors.ErrNoResults
	}

	return resp.Images[0].ImageURL, nil
}

// SearchWeb returns organic search results for a query. The request
// pipeline only consumes images and prices; this is exposed for tooling
// that wants the raw results.
func (c *Client) SearchWeb(ctx context.Context, query string) ([]models.SearchResult, error) {
	if c.apiKey == "" {
		return nil, apperrors.ErrNotConfigured
	}

	var resp searchResponse
	if err := c.post(ctx, "/search", searchRequest{Q: query, Num: 5}, &resp); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(resp.Organic))
	for _, r := range resp.Organic {
		results = append(results, models.SearchResult{
			Title:   r.Title,
			Snippet: r.Snippet,
			Link:    r.Link,
		})
	}
	return results, nil
}

var pricePattern = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)

// knownStores maps result-link hosts to display names; anything else keeps
// its hostname.
var knownStores = []struct {
	hostPart string
	name     string
}{
	{"amazon.com", "Amazon"},
	{"bestbuy.com", "Best Buy"},
	{"walmart.com", "Walmart"},
	{"target.com", "Target"},
	{"apple.com", "Apple Store"},
	{"samsung.com", "Samsung Store"},
}

// ComparePrices scans organic results for dollar amounts and returns up to
// six per-store price entries, de-duplicated by store.
func (c *Client) ComparePrices(ctx context.Context, productName string) ([]models.PriceEntry, error) {
	if c.apiKey == "" {
		return nil, apperrors.ErrNotConfigured
	}

	var resp searchResponse
	if err := c.post(ctx, "/search", searchRequest{Q: productName + " price buy online", Num: 12}, &resp); err != nil {
		return nil, err
	}

	var prices []models.PriceEntry
	seen := map[string]bool{}

	for _, r := range resp.Organic {
		match := pricePattern.FindString(r.Title + " " + r.Snippet)
		if match == "" {
			continue
		}

		store := storeName(r.Link, r.Title)
		if store == "" || seen[store] {
			continue
		}
		seen[store] = true

		prices = append(prices, models.PriceEntry{
			Store: store,
			Price: match,
			Link:  r.Link,
		})
		if len(prices) == 6 {
			break
		}
	}

	if len(prices) == 0 {
		return nil, apperrors.ErrNoResults
	}
	return prices, nil
}

func storeName(link, title string) string {
	for _, s := range knownStores {
		if strings.Contains(link, s.hostPart) {
			return s.name
		}
	}
	if u, err := url.Parse(link); err == nil && u.Hostname() != "" {
		return strings.TrimPrefix(u.Hostname(), "www.")
	}
	return strings.TrimSpace(strings.SplitN(title, "-", 2)[0])
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal serper request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build serper request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("serper request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("serper returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode serper response: %w", err)
	}
	return nil
}
