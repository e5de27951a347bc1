package prompts

import (
	"strings"
	"testing"

	"github.com/souqtech-inc/souqtech-engine/pkg/models"
)

func TestCompose_EnglishSingle(t *testing.T) {
	got := Compose(Input{Query: "tell me about the iphone 16", Language: "en"})

	if !strings.Contains(got, "TECHNICAL SPECIFICATIONS") {
		t.Error("expected single-product template sections")
	}
	if strings.Contains(got, "EXPERT VERDICT") {
		t.Error("comparison sections must not appear for single-product queries")
	}
	if !strings.HasSuffix(got, "Customer question: tell me about the iphone 16") {
		t.Errorf("prompt must end with the literal customer question, got tail %q", got[len(got)-60:])
	}
}

func TestCompose_EnglishComparison(t *testing.T) {
	got := Compose(Input{
		Query:      "iphone 16 vs galaxy s24",
		Language:   "en",
		Comparison: true,
		Products:   []string{"iphone 16", "galaxy s24"},
	})

	for _, section := range []string{"DISPLAY SHOWDOWN", "BATTERY", "CAMERA", "PERFORMANCE", "VALUE", "EXPERT VERDICT"} {
		if !strings.Contains(got, section) {
			t.Errorf("comparison prompt missing section %q", section)
		}
	}
	if !strings.Contains(got, "icebreaker") {
		t.Error("expected a joke icebreaker for a two-product comparison")
	}
	if !strings.Contains(got, "Close your answer with this sign-off: ") {
		t.Error("expected a sign-off line for a two-product comparison")
	}
}

func TestCompose_ArabicComparisonSignOff(t *testing.T) {
	got := Compose(Input{
		Query:      "ايفون 16 مقابل جالكسي س24",
		Language:   "ar",
		Comparison: true,
		Products:   []string{"ايفون 16", "جالكسي س24"},
	})
	if !strings.Contains(got, "واختم ردك بهالجملة: ") {
		t.Error("expected an Arabic sign-off line for a two-product comparison")
	}
}

func TestCompose_Arabic(t *testing.T) {
	got := Compose(Input{Query: "ايش افضل جوال", Language: "ar"})

	if !strings.Contains(got, "المواصفات التقنية") {
		t.Error("expected Arabic single-product template")
	}
	if !strings.Contains(got, "سؤال الزبون: ايش افضل جوال") {
		t.Error("expected Arabic customer-question suffix")
	}
	if strings.Contains(got, "Customer question") {
		t.Error("English framing must not leak into Arabic prompts")
	}
}

func TestCompose_ArabicComparisonStructure(t *testing.T) {
	en := Compose(Input{Query: "iphone 16 vs galaxy s24", Language: "en", Comparison: true})
	ar := Compose(Input{Query: "ايفون 16 مقابل جالكسي س24", Language: "ar", Comparison: true})

	if !strings.Contains(ar, "التوصية النهائية") {
		t.Error("Arabic comparison prompt missing verdict section")
	}
	// Both branches produce meaningful, non-trivial prompts.
	if len(en) < 500 || len(ar) < 500 {
		t.Errorf("suspiciously short prompts: en=%d ar=%d", len(en), len(ar))
	}
}

func TestCompose_WhereToBuySection(t *testing.T) {
	links := []models.PriceEntry{
		{Store: "Amazon.sa", Price: "SAR 4,399", Link: "https://www.amazon.sa/s?k=iphone+16", ProductName: "iphone 16"},
		{Store: "Noon.com", Price: "Check Website", Link: "https://www.noon.com/saudi-en/search/?q=iphone%2016"},
	}
	got := Compose(Input{Query: "iphone 16", Language: "en", Links: links})

	if !strings.Contains(got, "Where to buy") {
		t.Error("expected where-to-buy section when links exist")
	}
	if !strings.Contains(got, "Amazon.sa (iphone 16): SAR 4,399") {
		t.Error("expected rendered link line with product name")
	}
	if !strings.Contains(got, "Noon.com: Check Website") {
		t.Error("expected rendered link line without product name")
	}
}

func TestCompose_NoLinksNoSection(t *testing.T) {
	got := Compose(Input{Query: "iphone 16", Language: "en"})
	if strings.Contains(got, "Where to buy") {
		t.Error("where-to-buy section must not appear without links")
	}
}

func TestTechJoke_Deterministic(t *testing.T) {
	a := TechJoke("iphone 16", "galaxy s24", "en")
	b := TechJoke("iphone 16", "galaxy s24", "en")
	if a != b {
		t.Error("joke selection must be stable for the same matchup")
	}

	ar := TechJoke("iphone 16", "galaxy s24", "ar")
	if ar == a {
		t.Error("Arabic jokes must come from the Arabic set")
	}
}

func TestTechJoke_NeverLeaksFormatVerbs(t *testing.T) {
	// Cycle enough matchups to land on every joke in both pools,
	// including the ones that don't mention the products.
	names := []string{
		"iphone 16", "galaxy s24", "pixel 9", "oneplus 12", "xiaomi 14",
		"huawei p60", "nothing phone 2", "sony xperia 1", "oppo find x7",
	}
	for _, lang := range []string{"en", "ar"} {
		for _, p1 := range names {
			for _, p2 := range names {
				if p1 == p2 {
					continue
				}
				joke := TechJoke(p1, p2, lang)
				if strings.Contains(joke, "%!") {
					t.Fatalf("TechJoke(%q, %q, %q) produced malformed output: %s", p1, p2, lang, joke)
				}
				if strings.Contains(joke, "%[") {
					t.Fatalf("TechJoke(%q, %q, %q) left a placeholder unexpanded: %s", p1, p2, lang, joke)
				}
			}
		}
	}
}

func TestFunEnding(t *testing.T) {
	if FunEnding("iphone 16", "en") == "" {
		t.Error("expected a non-empty ending")
	}
	if FunEnding("iphone 16", "ar") == "" {
		t.Error("expected a non-empty Arabic ending")
	}
}
