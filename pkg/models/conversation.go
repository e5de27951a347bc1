package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is one persisted query/answer exchange. Records are append
// only; history and analytics endpoints read them back.
type Conversation struct {
	ID              uuid.UUID    `json:"id"`
	Query           string       `json:"query"`
	Response        string       `json:"response"`
	Language        string       `json:"language"`
	ImageURL        string       `json:"image_url,omitempty"`
	Prices          []PriceEntry `json:"prices,omitempty"`
	UserIP          string       `json:"user_ip,omitempty"`
	UserAgent       string       `json:"user_agent,omitempty"`
	UserSessionID   string       `json:"user_session_id,omitempty"`
	ComparisonQuery bool         `json:"comparison_query"`
	CreatedAt       time.Time    `json:"created_at"`
}

// ConversationStats summarizes stored conversations by language.
type ConversationStats struct {
	Total   int `json:"total"`
	Arabic  int `json:"arabic"`
	English int `json:"english"`
}

// ClickEvent records one affiliate-link click reported by the client.
type ClickEvent struct {
	ASIN          string    `json:"asin,omitempty"`
	ProductName   string    `json:"product_name,omitempty"`
	AffiliateURL  string    `json:"affiliate_url"`
	UserSessionID string    `json:"user_session_id,omitempty"`
	IPAddress     string    `json:"ip_address,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
	Referrer      string    `json:"referrer,omitempty"`
	Language      string    `json:"language,omitempty"`
	ClickedAt     time.Time `json:"clicked_at"`
}

// AffiliateProduct is a denormalized snapshot of a previously fetched
// Amazon product, keyed by ASIN. It serves as the cache-aside fallback when
// the live product API fails.
type AffiliateProduct struct {
	ASIN                string    `json:"asin"`
	ProductName         string    `json:"product_name"`
	Price               string    `json:"price,omitempty"`
	ImageURL            string    `json:"image_url,omitempty"`
	DetailPageURL       string    `json:"detail_page_url"`
	Rating              float64   `json:"rating,omitempty"`
	ReviewCount         int       `json:"review_count,omitempty"`
	IsPrime             bool      `json:"is_prime"`
	IsFulfilledByAmazon bool      `json:"is_fulfilled_by_amazon"`
	ClickCount          int       `json:"click_count"`
	SearchCount         int       `json:"search_count"`
	LastUpdated         time.Time `json:"last_updated"`
}
