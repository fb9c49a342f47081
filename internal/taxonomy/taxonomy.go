package taxonomy

import (
	"regexp"
	"sort"
	"strings"

	"github.com/timmy/promptforge/internal/domain"
)

// Taxonomy is an ordered set of categories, each with a list of matching
// rules. The category order is significant: it defines the left-to-right
// structure of synthesized prompts.
type Taxonomy struct {
	order   []string
	rules   map[string][]*regexp.Regexp
	sources map[string][]string
}

// New builds a taxonomy from an ordered category list and a category ->
// pattern-source table. Patterns compile case-insensitively; a bad pattern
// panics, since the tables are static package data.
func New(order []string, patterns map[string][]string) *Taxonomy {
	t := &Taxonomy{
		order:   order,
		rules:   make(map[string][]*regexp.Regexp, len(order)),
		sources: make(map[string][]string, len(order)),
	}
	for _, name := range order {
		for _, src := range patterns[name] {
			t.rules[name] = append(t.rules[name], regexp.MustCompile("(?i)"+src))
			t.sources[name] = append(t.sources[name], src)
		}
	}
	return t
}

// Categories returns the category names in their fixed order.
func (t *Taxonomy) Categories() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Contains reports whether name is a category of this taxonomy.
func (t *Taxonomy) Contains(name string) bool {
	_, ok := t.rules[name]
	return ok
}

// Patterns returns the raw pattern sources per category, used to echo the
// taxonomy into the knowledge-base artifact.
func (t *Taxonomy) Patterns() map[string][]string {
	out := make(map[string][]string, len(t.sources))
	for k, v := range t.sources {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Categorize maps a free-form prompt string into the taxonomy, returning
// the distinct matched terms per category. Matching is case-insensitive
// against the case-folded text. Categories with no matches are omitted;
// empty input yields an empty result. Pure function, no side effects.
//
// When a pattern carries capture groups, every non-empty group capture of
// a match counts as an independent term; a pattern without groups
// contributes the whole match. The same surface word may land in several
// categories when their rule sets overlap; that redundancy is intentional.
func Categorize(text string, t *Taxonomy) domain.CategoryMatchSet {
	result := domain.CategoryMatchSet{}
	if strings.TrimSpace(text) == "" {
		return result
	}
	lower := strings.ToLower(text)

	for _, name := range t.order {
		seen := make(map[string]struct{})
		var terms []string
		for _, re := range t.rules[name] {
			for _, match := range re.FindAllStringSubmatch(lower, -1) {
				for _, term := range fanOut(match) {
					term = strings.TrimSpace(term)
					if term == "" {
						continue
					}
					if _, dup := seen[term]; dup {
						continue
					}
					seen[term] = struct{}{}
					terms = append(terms, term)
				}
			}
		}
		if len(terms) > 0 {
			sort.Strings(terms)
			result[name] = terms
		}
	}
	return result
}

// fanOut decomposes one regexp match into its matched terms: all non-empty
// capture groups when the pattern has groups, otherwise the full match.
func fanOut(match []string) []string {
	if len(match) == 1 {
		return match
	}
	out := make([]string, 0, len(match)-1)
	for _, group := range match[1:] {
		if group != "" {
			out = append(out, group)
		}
	}
	if len(out) == 0 {
		return match[:1]
	}
	return out
}
