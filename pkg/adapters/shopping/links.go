// Package shopping deterministically builds retailer search URLs for a
// normalized product name. One declarative brand→store table drives the
// whole generator; adding a retailer is a data change.
package shopping

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/souqtech-inc/souqtech-engine/pkg/models"
)

// storeTemplate describes one retailer. An empty brands list means the
// store applies to every product; otherwise at least one brand keyword must
// appear in the cleaned product name.
type storeTemplate struct {
	nameEN    string
	nameAR    string
	buildURL  func(cleanName, partnerTag string) string
	brands    []string
	affiliate bool // URL carries the partner tag
}

var storeTable = []storeTemplate{
	{
		nameEN: "Amazon.sa",
		nameAR: "أمازون السعودية",
		buildURL: func(clean, tag string) string {
			return "https://www.amazon.sa/s?k=" + url.QueryEscape(clean) +
				"&linkCode=ll2&tag=" + tag + "&language=en_AE&ref_=as_li_ss_tl"
		},
		affiliate: true,
	},
	{
		nameEN: "Noon.com",
		nameAR: "نون",
		buildURL: func(clean, _ string) string {
			return "https://www.noon.com/saudi-en/search/?q=" + url.QueryEscape(clean)
		},
	},
	{
		nameEN: "Jarir Bookstore",
		nameAR: "مكتبة جرير",
		buildURL: func(clean, _ string) string {
			return "https://www.jarir.com/sa-en/catalogsearch/result/?q=" + url.QueryEscape(clean)
		},
	},
	{
		nameEN: "Extra Stores",
		nameAR: "اكسترا",
		buildURL: func(clean, _ string) string {
			return "https://www.extra.com/en-sa/search/?q=" + url.QueryEscape(clean)
		},
	},
	{
		nameEN: "Apple Store",
		nameAR: "آبل ستور",
		buildURL: func(_, _ string) string {
			return "https://www.apple.com/sa/shop"
		},
		brands: []string{"iphone", "ipad", "macbook", "apple", "airpods", "watch"},
	},
	{
		nameEN: "Samsung Store",
		nameAR: "سامسونج",
		buildURL: func(clean, _ string) string {
			return "https://www.samsung.com/sa/search/?searchvalue=" + url.QueryEscape(clean)
		},
		brands: []string{"samsung", "galaxy"},
	},
}

// Generator builds static retailer links.
type Generator struct {
	partnerTag string
}

// NewGenerator creates a link generator embedding the given affiliate tag
// in marketplace URLs.
func NewGenerator(partnerTag string) *Generator {
	return &Generator{partnerTag: partnerTag}
}

var nonWord = regexp.MustCompile(`[^\w\s]`)
var spaces = regexp.MustCompile(`\s+`)

func cleanName(productName string) string {
	s := strings.ToLower(productName)
	s = nonWord.ReplaceAllString(s, " ")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Links returns every applicable store link for a product. The generic
// marketplaces always appear; brand stores appear when the product name
// carries their keywords. Store display names follow the request language.
func (g *Generator) Links(productName, language string) []models.ShoppingLink {
	clean := cleanName(productName)

	var links []models.ShoppingLink
	for _, tpl := range storeTable {
		if !tpl.matches(clean) {
			continue
		}

		store := tpl.nameEN
		if language == "ar" {
			store = tpl.nameAR
		}

		links = append(links, models.ShoppingLink{
			Store:       store,
			URL:         tpl.buildURL(clean, g.partnerTag),
			Available:   true,
			ProductName: productName,
			Provenance:  models.ProvenanceStatic,
		})
	}
	return links
}

// MarketplaceSearchLink is the last-resort fallback: a single
// affiliate-tagged marketplace search URL for the product.
func (g *Generator) MarketplaceSearchLink(productName, language string) models.ShoppingLink {
	store := "Amazon.sa"
	if language == "ar" {
		store = "أمازون السعودية"
	}
	return models.ShoppingLink{
		Store:       store,
		URL:         "https://www.amazon.sa/s?k=" + url.QueryEscape(cleanName(productName)) + "&tag=" + g.partnerTag + "&linkCode=ll2",
		Price:       "Check on Amazon",
		Available:   true,
		ProductName: productName,
		Provenance:  models.ProvenanceStatic,
	}
}

func (t *storeTemplate) matches(cleanName string) bool {
	if len(t.brands) == 0 {
		return true
	}
	for _, brand := range t.brands {
		if strings.Contains(cleanName, brand) {
			return true
		}
	}
	return false
}
