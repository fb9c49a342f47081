package synthesizer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/timmy/promptforge/internal/domain"
	"github.com/timmy/promptforge/internal/variant"
)

func TestGenerateDeterministicWithSeed(t *testing.T) {
	sel := domain.Selection{Categories: map[string][]string{"pose": {"sitting"}}}
	opts := Options{Count: 3, IncludeQuality: true, UseVariants: true}

	first := NewSeeded(42).Generate(sel, opts)
	second := NewSeeded(42).Generate(sel, opts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("seeded runs differ:\n%v\n%v", first, second)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 variations, got %d", len(first))
	}
}

func TestGenerateCategoryOrder(t *testing.T) {
	sel := domain.Selection{Categories: map[string][]string{
		"lighting": {"sunset"},
		"subject":  {"1girl"},
		"pose":     {"sitting"},
	}}

	got := NewSeeded(1).Generate(sel, Options{Count: 1})[0]
	if got != "1girl, sitting, sunset" {
		t.Errorf("got %q, want subject before pose before lighting", got)
	}
}

func TestGenerateCustomTermsFirst(t *testing.T) {
	sel := domain.Selection{
		Categories:  map[string][]string{"subject": {"1girl"}},
		CustomTerms: "neon city; rainy night\nwet streets",
	}

	got := NewSeeded(1).Generate(sel, Options{Count: 1})[0]
	if got != "neon city, rainy night, wet streets, 1girl" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateFixedQualityTags(t *testing.T) {
	sel := domain.Selection{Categories: map[string][]string{"subject": {"1girl"}}}
	opts := Options{Count: 1, IncludeQuality: true, QualityTags: []string{"masterpiece", "8k"}}

	got := NewSeeded(1).Generate(sel, opts)[0]
	if got != "masterpiece, 8k, 1girl" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateSampledQualityTags(t *testing.T) {
	got := NewSeeded(9).Generate(domain.Selection{}, Options{Count: 1, IncludeQuality: true})[0]

	tags := strings.Split(got, ", ")
	if len(tags) != 3 {
		t.Fatalf("expected 3 sampled quality tags, got %d: %q", len(tags), got)
	}
	seen := map[string]bool{}
	for _, tag := range tags {
		if seen[tag] {
			t.Errorf("quality tag %q drawn twice", tag)
		}
		seen[tag] = true
		if !contains(DefaultQualityTags, tag) {
			t.Errorf("tag %q not in default pool", tag)
		}
	}
}

func TestGenerateVariantSubstitution(t *testing.T) {
	sel := domain.Selection{Categories: map[string][]string{"pose": {"sitting"}}}
	class := variant.Class("sitting")

	got := NewSeeded(3).Generate(sel, Options{Count: 10, UseVariants: true})
	for _, prompt := range got {
		if !contains(class, prompt) {
			t.Errorf("variation %q is not a member of the sitting class", prompt)
		}
	}
}

func TestGenerateNegativeShape(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		got := NewSeeded(seed).GenerateNegative()
		if !strings.HasPrefix(got, BaselineNegative) {
			t.Fatalf("negative prompt missing baseline: %q", got)
		}
		extras := strings.Split(strings.TrimPrefix(got, BaselineNegative+", "), ", ")
		if len(extras) < 2 || len(extras) > 4 {
			t.Errorf("seed %d: expected 2-4 extra terms, got %d (%q)", seed, len(extras), got)
		}
	}
}

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a, b", []string{"a", "b"}},
		{"a; b\nc", []string{"a", "b", "c"}},
		{" ,, ;\n ", []string{}},
		{"  spaced out  ", []string{"spaced out"}},
	}
	for _, tt := range tests {
		got := SplitTerms(tt.input)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitTerms(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
