// Package products extracts candidate product names from free-form query
// text. The pattern set covers English and Arabic spellings of the iPhone,
// Samsung/Galaxy, Pixel and OnePlus model families; Arabic matches are
// normalized onto the English vocabulary so one lookup path serves both
// languages.
package products

import (
	"regexp"
	"strings"

	"github.com/souqtech-inc/souqtech-engine/pkg/models"
)

// productPatterns is ordered: the first pattern to match determines the
// primary product, which drives image and link lookups downstream.
var productPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)iphone\s*\d+\s*(?:pro\s*max|pro|plus)?`),
	regexp.MustCompile(`آيفون\s*\d+\s*(?:برو\s*ماكس|برو|بلس)?`),
	regexp.MustCompile(`ايفون\s*\d+\s*(?:برو\s*ماكس|برو|بلس)?`),
	regexp.MustCompile(`(?i)galaxy\s*s\d+\s*(?:ultra|plus)?`),
	regexp.MustCompile(`جالكسي\s*[sس]\d+\s*(?:الترا|بلس)?`),
	regexp.MustCompile(`سامسونج\s*[sس]\d+\s*(?:الترا|بلس)?`),
	regexp.MustCompile(`(?i)samsung\s*s\d+\s*(?:ultra|plus)?`),
	regexp.MustCompile(`(?i)pixel\s*\d+\s*(?:pro\s*xl|pro|a)?`),
	regexp.MustCompile(`بكسل\s*\d+\s*(?:برو)?`),
	regexp.MustCompile(`(?i)oneplus\s*\d+\s*(?:pro|t)?`),
}

// arabicReplacements maps Arabic brand/qualifier tokens to the English
// vocabulary. Order matters: "برو ماكس" must rewrite before "برو".
var arabicReplacements = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`آيفون|ايفون`), "iphone"},
	{regexp.MustCompile(`سامسونج|جالكسي`), "galaxy"},
	{regexp.MustCompile(`بكسل`), "pixel"},
	{regexp.MustCompile(`برو\s*ماكس`), "pro max"},
	{regexp.MustCompile(`برو`), "pro"},
	{regexp.MustCompile(`الترا`), "ultra"},
	{regexp.MustCompile(`بلس`), "plus"},
	{regexp.MustCompile(`(?i)[sس](\d+)`), "s$1"},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Detect returns every pattern match in the query, first-match-first per
// pattern. Duplicates are preserved positionally. An empty slice means no
// product-dependent enrichment should run.
func Detect(query string) []models.DetectedProduct {
	var detected []models.DetectedProduct
	for _, pattern := range productPatterns {
		for _, match := range pattern.FindAllString(query, -1) {
			detected = append(detected, models.DetectedProduct{
				RawMatch:       match,
				NormalizedName: Normalize(match),
			})
		}
	}
	return detected
}

// Normalize maps a raw match (either language) to a lower-case English
// product name with collapsed whitespace, suitable for search and link URLs.
func Normalize(raw string) string {
	name := raw
	for _, r := range arabicReplacements {
		name = r.pattern.ReplaceAllString(name, r.repl)
	}
	name = strings.ToLower(name)
	name = whitespaceRun.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// comparison keywords, English then Arabic.
var comparisonKeywords = []string{" vs ", " versus ", "compare", " ضد ", " مقابل ", "قارن"}

// IsComparison classifies a query as a head-to-head comparison request.
func IsComparison(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range comparisonKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
