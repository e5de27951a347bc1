package products

import (
	"testing"
)

func TestDetect_EnglishSingle(t *testing.T) {
	got := Detect("tell me about the iPhone 16 Pro Max please")
	if len(got) != 1 {
		t.Fatalf("expected 1 product, got %d: %v", len(got), got)
	}
	if got[0].NormalizedName != "iphone 16 pro max" {
		t.Errorf("unexpected normalized name %q", got[0].NormalizedName)
	}
}

func TestDetect_Comparison(t *testing.T) {
	got := Detect("iPhone 16 Pro Max vs Galaxy S24 Ultra")
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d: %v", len(got), got)
	}
	if got[0].NormalizedName != "iphone 16 pro max" {
		t.Errorf("first product = %q", got[0].NormalizedName)
	}
	if got[1].NormalizedName != "galaxy s24 ultra" {
		t.Errorf("second product = %q", got[1].NormalizedName)
	}
}

func TestDetect_Arabic(t *testing.T) {
	got := Detect("ايش رايك في ايفون 16 برو ماكس")
	if len(got) != 1 {
		t.Fatalf("expected 1 product, got %d: %v", len(got), got)
	}
	if got[0].NormalizedName != "iphone 16 pro max" {
		t.Errorf("unexpected normalized name %q", got[0].NormalizedName)
	}
}

func TestDetect_ArabicSamsung(t *testing.T) {
	got := Detect("قارن سامسونج س24 الترا مع بكسل 9 برو")
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d: %v", len(got), got)
	}

	names := map[string]bool{}
	for _, p := range got {
		names[p.NormalizedName] = true
	}
	if !names["galaxy s24 ultra"] {
		t.Errorf("missing galaxy s24 ultra in %v", names)
	}
	if !names["pixel 9 pro"] {
		t.Errorf("missing pixel 9 pro in %v", names)
	}
}

func TestDetect_NoMatch(t *testing.T) {
	got := Detect("what's the best phone for photography")
	if len(got) != 0 {
		t.Errorf("expected no products, got %v", got)
	}
}

func TestDetect_DuplicatesPreserved(t *testing.T) {
	got := Detect("iphone 15 or iphone 15, that is the question")
	if len(got) != 2 {
		t.Errorf("expected duplicates preserved, got %d", len(got))
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"iPhone 16 Pro", "iphone 16 pro"},
		{"آيفون 15 برو", "iphone 15 pro"},
		{"جالكسي س23 الترا", "galaxy s23 ultra"},
		{"Galaxy  S24   Plus", "galaxy s24 plus"},
		{"بكسل 8 برو", "pixel 8 pro"},
		{"oneplus 12 pro", "oneplus 12 pro"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsComparison(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"iPhone 16 vs Galaxy S24", true},
		{"iphone 16 versus pixel 9", true},
		{"compare the iphone 16 and pixel 9", true},
		{"ايفون 16 مقابل جالكسي س24", true},
		{"قارن بين الجوالين", true},
		{"ايفون 15 ضد بكسل 8", true},
		{"tell me about the iphone 16", false},
		{"best budget phone", false},
	}
	for _, tt := range tests {
		if got := IsComparison(tt.query); got != tt.want {
			t.Errorf("IsComparison(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
