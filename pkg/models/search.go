package models

// LinkProvenance identifies which source produced a shopping link.
type LinkProvenance string

const (
	ProvenanceStatic LinkProvenance = "static-template"
	ProvenanceAmazon LinkProvenance = "amazon-api"
	ProvenanceCache  LinkProvenance = "cache"
	ProvenanceWeb    LinkProvenance = "web-search"
)

// ShoppingLink is a retailer URL surfaced to the user as a place to buy a
// detected product. Store and URL are always non-empty.
type ShoppingLink struct {
	Store       string         `json:"store"`
	URL         string         `json:"url"`
	Price       string         `json:"price,omitempty"`
	Available   bool           `json:"available"`
	ProductName string         `json:"productName,omitempty"`
	ASIN        string         `json:"asin,omitempty"`
	Provenance  LinkProvenance `json:"-"`
}

// PriceEntry matches the frontend price-comparison row shape.
type PriceEntry struct {
	Store       string `json:"store"`
	Price       string `json:"price"`
	Link        string `json:"link"`
	ProductName string `json:"productName,omitempty"`
}

// SearchRequest is the POST /search body.
type SearchRequest struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

// SearchResponse is the wire entity returned to the client for a query.
// Prices is always a non-nil array; Image is a string or JSON null.
type SearchResponse struct {
	Response string       `json:"response"`
	Image    *string      `json:"image"`
	Images   []string     `json:"images,omitempty"`
	Prices   []PriceEntry `json:"prices"`
}

// DetectedProduct is a substring of the query matched by the brand/model
// regex set, with its cross-language normalized form.
type DetectedProduct struct {
	RawMatch       string
	NormalizedName string
}

// SearchResult is one organic web-search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}
