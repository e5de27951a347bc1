package models

import "time"

// ProductPerformance ranks a product by clicks over a window.
type ProductPerformance struct {
	ASIN           string    `json:"asin"`
	ProductName    string    `json:"product_name"`
	ClickCount     int       `json:"click_count"`
	SearchCount    int       `json:"search_count"`
	ConversionRate float64   `json:"conversion_rate"`
	LastClicked    time.Time `json:"last_clicked"`
}

// ClickStats aggregates click-tracking activity.
type ClickStats struct {
	TotalClicks         int     `json:"total_clicks"`
	UniqueSessions      int     `json:"unique_sessions"`
	UniqueProducts      int     `json:"unique_products"`
	AvgClicksPerSession float64 `json:"avg_clicks_per_session"`
	MostClickedProduct  string  `json:"most_clicked_product"`
	MostClickedCount    int     `json:"most_clicked_count"`
}

// ComparisonTrend is one frequently requested head-to-head pairing.
type ComparisonTrend struct {
	Product1Name    string    `json:"product1_name"`
	Product2Name    string    `json:"product2_name"`
	ComparisonCount int       `json:"comparison_count"`
	LastCompared    time.Time `json:"last_compared"`
	TrendScore      float64   `json:"trend_score"`
}

// FunnelStage is one row of the search→click conversion funnel.
type FunnelStage struct {
	Stage      string  `json:"stage"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RevenueEstimate projects affiliate revenue from click volume.
type RevenueEstimate struct {
	TotalClicks             int     `json:"total_clicks"`
	EstimatedConversionRate float64 `json:"estimated_conversion_rate"`
	EstimatedConversions    float64 `json:"estimated_conversions"`
	AvgProductPrice         float64 `json:"avg_product_price"`
	EstimatedRevenue        float64 `json:"estimated_revenue"`
}

// LanguageStat counts conversations per language.
type LanguageStat struct {
	Language          string  `json:"language"`
	ConversationCount int     `json:"conversation_count"`
	Percentage        float64 `json:"percentage"`
}

// HourlyClicks is click volume bucketed by hour of day.
type HourlyClicks struct {
	Hour       int `json:"hour"`
	ClickCount int `json:"click_count"`
}

// AnalyticsReport bundles every aggregate for the report endpoint.
type AnalyticsReport struct {
	Period           string               `json:"period"`
	GeneratedAt      time.Time            `json:"generatedAt"`
	ClickStats       *ClickStats          `json:"clickStats"`
	RevenueEstimate  *RevenueEstimate     `json:"revenueEstimate"`
	ConversionFunnel []FunnelStage        `json:"conversionFunnel"`
	TopProducts      []ProductPerformance `json:"topProducts"`
	ComparisonTrends []ComparisonTrend    `json:"comparisonTrends"`
	LanguageStats    []LanguageStat       `json:"languageStats"`
}
