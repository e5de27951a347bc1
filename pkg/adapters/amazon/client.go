// Package amazon is a thin client for the Product Advertising API v5
// (SearchItems and batch GetItems), signed with AWS Signature V4. Every
// DetailPageURL leaving this package carries the partner tag.
package amazon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/souqtech-inc/souqtech-engine/pkg/apperrors"
	"github.com/souqtech-inc/souqtech-engine/pkg/logging"
)

// Product is one item returned by the live API.
type Product struct {
	ASIN                string
	Title               string
	Price               string
	Image               string
	URL                 string
	Rating              float64
	ReviewCount         int
	IsPrime             bool
	IsFulfilledByAmazon bool
}

// Config holds PA-API credentials and endpoint identity.
type Config struct {
	AccessKey   string
	SecretKey   string
	PartnerTag  string
	Host        string // e.g. "webservices.amazon.sa"
	Region      string // e.g. "eu-west-1"
	Marketplace string // e.g. "www.amazon.sa"
}

// Client issues signed PA-API requests. Missing credentials soft-disable
// the client: calls return apperrors.ErrNotConfigured.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *zap.Logger
	// now is injectable for deterministic signing tests.
	now func() time.Time
}

// NewClient creates a PA-API client.
func NewClient(cfg *Config, logger *zap.Logger) *Client {
	c := *cfg
	if c.Host == "" {
		c.Host = "webservices.amazon.sa"
	}
	if c.Region == "" {
		c.Region = "eu-west-1"
	}
	if c.Marketplace == "" {
		c.Marketplace = "www.amazon.sa"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cfg:        c,
		logger:     logger.Named("amazon"),
		now:        time.Now,
	}
}

// IsConfigured reports whether live calls are possible.
func (c *Client) IsConfigured() bool {
	return c.cfg.AccessKey != "" && c.cfg.SecretKey != ""
}

// PartnerTag returns the configured affiliate tag.
func (c *Client) PartnerTag() string {
	return c.cfg.PartnerTag
}

var itemResources = []string{
	"Images.Primary.Large",
	"ItemInfo.Title",
	"Offers.Listings.Price",
	"Offers.Listings.DeliveryInfo.IsPrimeEligible",
	"Offers.Listings.DeliveryInfo.IsAmazonFulfilled",
	"CustomerReviews.Count",
	"CustomerReviews.StarRating",
}

type searchItemsRequest struct {
	Keywords    string   `json:"Keywords"`
	SearchIndex string   `json:"SearchIndex"`
	ItemCount   int      `json:"ItemCount"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

type getItemsRequest struct {
	ItemIds     []string `json:"ItemIds"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

type apiItem struct {
	ASIN          string `json:"ASIN"`
	DetailPageURL string `json:"DetailPageURL"`
	ItemInfo      struct {
		Title struct {
			DisplayValue string `json:"DisplayValue"`
		} `json:"Title"`
	} `json:"ItemInfo"`
	Images struct {
		Primary struct {
			Large struct {
				URL string `json:"URL"`
			} `json:"Large"`
		} `json:"Primary"`
	} `json:"Images"`
	Offers struct {
		Listings []struct {
			Price struct {
				DisplayAmount string `json:"DisplayAmount"`
			} `json:"Price"`
			DeliveryInfo struct {
				IsPrimeEligible   bool `json:"IsPrimeEligible"`
				IsAmazonFulfilled bool `json:"IsAmazonFulfilled"`
			} `json:"DeliveryInfo"`
		} `json:"Listings"`
	} `json:"Offers"`
	CustomerReviews struct {
		Count      int `json:"Count"`
		StarRating struct {
			Value float64 `json:"Value"`
		} `json:"StarRating"`
	} `json:"CustomerReviews"`
}

type apiResponse struct {
	SearchResult struct {
		Items []apiItem `json:"Items"`
	} `json:"SearchResult"`
	ItemsResult struct {
		Items []apiItem `json:"Items"`
	} `json:"ItemsResult"`
	Errors []struct {
		Code    string `json:"Code"`
		Message string `json:"Message"`
	} `json:"Errors"`
}

// SearchItems looks up products by keyword in the Electronics index.
func (c *Client) SearchItems(ctx context.Context, keywords string) ([]Product, error) {
	if !c.IsConfigured() {
		return nil, apperrors.ErrNotConfigured
	}

	body := searchItemsRequest{
		Keywords:    keywords,
		SearchIndex: "Electronics",
		ItemCount:   5,
		PartnerTag:  c.cfg.PartnerTag,
		PartnerType: "Associates",
		Marketplace: c.cfg.Marketplace,
		Resources:   itemResources,
	}

	resp, err := c.call(ctx, "SearchItems", "/paapi5/searchitems", body)
	if err != nil {
		return nil, err
	}

	if len(resp.SearchResult.Items) == 0 {
		return nil, apperrors.ErrNoResults
	}
	return c.toProducts(resp.SearchResult.Items), nil
}

// GetItems fetches full details for a list of known ASINs in one call.
// The request pipeline searches by keyword; this is exposed for callers
// that already hold ASINs, such as refresh jobs over cached products.
func (c *Client) GetItems(ctx context.Context, asins []string) ([]Product, error) {
	if !c.IsConfigured() {
		return nil, apperrors.ErrNotConfigured
	}
	if len(asins) == 0 {
		return nil, apperrors.ErrNoResults
	}

	body := getItemsRequest{
		ItemIds:     asins,
		PartnerTag:  c.cfg.PartnerTag,
		PartnerType: "Associates",
		Marketplace: c.cfg.Marketplace,
		Resources:   itemResources,
	}

	resp, err := c.call(ctx, "GetItems", "/paapi5/getitems", body)
	if err != nil {
		return nil, err
	}

	if len(resp.ItemsResult.Items) == 0 {
		return nil, apperrors.ErrNoResults
	}
	return c.toProducts(resp.ItemsResult.Items), nil
}

func (c *Client) toProducts(items []apiItem) []Product {
	products := make([]Product, 0, len(items))
	for _, item := range items {
		p := Product{
			ASIN:        item.ASIN,
			Title:       item.ItemInfo.Title.DisplayValue,
			Image:       item.Images.Primary.Large.URL,
			URL:         EnsureTag(item.DetailPageURL, c.cfg.PartnerTag),
			Rating:      item.CustomerReviews.StarRating.Value,
			ReviewCount: item.CustomerReviews.Count,
		}
		if p.Title == "" {
			p.Title = "Unknown Product"
		}
		if len(item.Offers.Listings) > 0 {
			listing := item.Offers.Listings[0]
			p.Price = listing.Price.DisplayAmount
			p.IsPrime = listing.DeliveryInfo.IsPrimeEligible
			p.IsFulfilledByAmazon = listing.DeliveryInfo.IsAmazonFulfilled
		}
		products = append(products, p)
	}
	return products
}

// EnsureTag injects the partner tag into a marketplace URL that lacks one.
// Every outbound shopping URL must carry the tag.
func EnsureTag(rawURL, partnerTag string) string {
	if rawURL == "" || partnerTag == "" {
		return rawURL
	}
	if strings.Contains(rawURL, "tag=") {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "tag=" + partnerTag
}

func (c *Client) call(ctx context.Context, operation, path string, body any) (*apiResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", operation, err)
	}

	endpoint := "https://" + c.cfg.Host + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}

	target := "com.amazon.paapi5.v1.ProductAdvertisingAPIv1." + operation
	signRequest(req, payload, signingInput{
		accessKey: c.cfg.AccessKey,
		secretKey: c.cfg.SecretKey,
		region:    c.cfg.Region,
		host:      c.cfg.Host,
		path:      path,
		target:    target,
		now:       c.now().UTC(),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", operation, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("PA-API call failed",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%s returned status %d", operation, resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", operation, err)
	}

	if len(parsed.Errors) > 0 {
		c.logger.Warn("PA-API returned errors",
			zap.String("operation", operation),
			zap.String("code", parsed.Errors[0].Code),
			zap.String("error", logging.SanitizeError(fmt.Errorf("%s", parsed.Errors[0].Message))))
		if parsed.Errors[0].Code == "NoResults" {
			return nil, apperrors.ErrNoResults
		}
		return nil, fmt.Errorf("%s error %s: %s", operation, parsed.Errors[0].Code, parsed.Errors[0].Message)
	}

	return &parsed, nil
}
