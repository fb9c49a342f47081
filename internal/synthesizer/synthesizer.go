// Package synthesizer assembles prompt strings from category selections,
// the variant normalizer, and curated tag pools.
package synthesizer

import (
	"math/rand"
	"strings"
	"time"

	"github.com/timmy/promptforge/internal/domain"
	"github.com/timmy/promptforge/internal/taxonomy"
	"github.com/timmy/promptforge/internal/variant"
)

// DefaultQualityTags is the pool sampled when the caller supplies no
// quality tags of their own.
var DefaultQualityTags = []string{
	"masterpiece", "best quality", "highres", "absurdres", "ultra realistic",
	"sharp focus", "fine details", "highly detailed", "8k", "4k", "HDR",
	"realism", "realistic", "cinematic", "professional", "amazing quality",
	"incredible quality", "stunning", "beautiful", "gorgeous", "perfect",
}

// BaselineNegative is the fixed negative-prompt template every generated
// negative prompt starts from.
const BaselineNegative = "score_6, score_5, score_4, worst quality, low quality, " +
	"bad anatomy, bad hands, deformed, ugly, disfigured, poorly drawn face, " +
	"mutation, extra fingers, fewer fingers"

// commonNegatives is the pool of extra exclusion terms appended to the
// baseline in random subsets.
var commonNegatives = []string{
	"blurry", "blurred", "pixelated", "low resolution", "compression artifacts",
	"bad anatomy", "wrong anatomy", "disfigured", "mutated",
	"extra limbs", "missing limbs", "fused fingers", "too many fingers",
	"ugly", "duplicate", "morbid", "mutilated", "poorly drawn",
}

// Options controls one synthesis call.
type Options struct {
	Count          int      // number of variations; values < 1 mean 1
	IncludeQuality bool     // prepend a quality-tag section
	QualityTags    []string // fixed user tags; empty means sample the default pool
	UseVariants    bool     // rewrite terms through the variant normalizer
}

// Synthesizer generates prompt variations. All randomness flows through
// the injected source, so seeded instances produce reproducible output.
type Synthesizer struct {
	rng      *rand.Rand
	resolver *variant.Resolver
}

// New creates a synthesizer around the given random source. A nil source
// gets a time-seeded one, which is the interactive default.
func New(rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{
		rng:      rng,
		resolver: variant.NewResolver(rng),
	}
}

// NewSeeded creates a synthesizer with a deterministic source.
func NewSeeded(seed int64) *Synthesizer {
	return New(rand.New(rand.NewSource(seed)))
}

// Generate produces opts.Count independent positive-prompt variations from
// the selection. Terms appear in the taxonomy's fixed category order,
// custom free-text terms first, joined with ", ".
func (s *Synthesizer) Generate(sel domain.Selection, opts Options) []string {
	count := opts.Count
	if count < 1 {
		count = 1
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var parts []string

		if opts.IncludeQuality {
			if len(opts.QualityTags) > 0 {
				parts = append(parts, opts.QualityTags...)
			} else {
				parts = append(parts, s.sample(DefaultQualityTags, 3)...)
			}
		}

		for _, term := range SplitTerms(sel.CustomTerms) {
			parts = append(parts, s.term(term, opts))
		}

		for _, category := range taxonomy.PositiveOrder {
			for _, term := range sel.Categories[category] {
				if strings.TrimSpace(term) == "" {
					continue
				}
				parts = append(parts, s.term(term, opts))
			}
		}

		out = append(out, strings.Join(parts, ", "))
	}
	return out
}

// GenerateNegative concatenates the baseline negative template with a
// random 2-4 term subset of the common-negative pool.
func (s *Synthesizer) GenerateNegative() string {
	parts := []string{BaselineNegative}
	n := 2 + s.rng.Intn(3)
	parts = append(parts, s.sample(commonNegatives, n)...)
	return strings.Join(parts, ", ")
}

func (s *Synthesizer) term(term string, opts Options) string {
	if opts.UseVariants {
		return s.resolver.Resolve(term)
	}
	return term
}

// sample draws k elements without replacement, preserving draw order.
func (s *Synthesizer) sample(pool []string, k int) []string {
	if k > len(pool) {
		k = len(pool)
	}
	out := make([]string, 0, k)
	for _, idx := range s.rng.Perm(len(pool))[:k] {
		out = append(out, pool[idx])
	}
	return out
}

// SplitTerms splits a free-text custom-term block on commas, semicolons,
// and newlines, trimming whitespace and discarding empties.
func SplitTerms(block string) []string {
	if block == "" {
		return nil
	}
	fields := strings.FieldsFunc(block, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
