// Package analyzer derives the prompt knowledge base from a static corpus
// of generation-metadata records in one batch pass.
package analyzer

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/timmy/promptforge/internal/domain"
	"github.com/timmy/promptforge/internal/taxonomy"
	"github.com/timmy/promptforge/internal/variant"
)

const (
	maxLoRACounts   = 50
	maxCombinations = 20
	maxSamplers     = 20
)

// Result is the full output of one corpus analysis run.
type Result struct {
	Annotations        []domain.RecordAnnotation
	Inventory          map[string][]string
	ExclusionInventory map[string][]string
	Variations         map[string][]string
	Stats              domain.AggregateStats
	TotalRecords       int
	WithPrompts        int
}

// Analyze runs the categorizer over every record and computes the
// corpus-wide aggregates. It is deterministic: running it twice on the
// same corpus yields identical annotations and inventories. Missing or
// malformed fields degrade to absent values; Analyze never fails.
func Analyze(records []domain.PromptRecord) *Result {
	res := &Result{
		Annotations:        make([]domain.RecordAnnotation, 0, len(records)),
		Inventory:          make(map[string][]string),
		ExclusionInventory: make(map[string][]string),
		TotalRecords:       len(records),
	}

	invSets := make(map[string]map[string]struct{})
	exclSets := make(map[string]map[string]struct{})
	var prompts []string

	for _, rec := range records {
		categories := taxonomy.Categorize(rec.Prompt, taxonomy.Positive)
		exclusions := taxonomy.Categorize(rec.Negative, taxonomy.Negative)

		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}

		res.Annotations = append(res.Annotations, domain.RecordAnnotation{
			ID:         id,
			Username:   rec.Username,
			BaseModel:  rec.BaseModel,
			Prompt:     rec.Prompt,
			Negative:   rec.Negative,
			Categories: categories,
			Exclusions: exclusions,
			LoRAs:      domain.LoRAList(rec.LoRAs),
			Checkpoint: rec.Checkpoint,
			Settings:   rec.Settings,
		})

		collect(invSets, categories)
		collect(exclSets, exclusions)

		if strings.TrimSpace(rec.Prompt) != "" {
			res.WithPrompts++
			prompts = append(prompts, rec.Prompt)
		}
	}

	res.Inventory = sortedInventory(invSets)
	res.ExclusionInventory = sortedInventory(exclSets)
	res.Variations = observedVariations(prompts)
	res.Stats = domain.AggregateStats{
		LoRAs:     analyzeLoRAs(records),
		Technical: analyzeTechnical(records),
	}
	return res
}

func collect(sets map[string]map[string]struct{}, matches domain.CategoryMatchSet) {
	for category, terms := range matches {
		set, ok := sets[category]
		if !ok {
			set = make(map[string]struct{})
			sets[category] = set
		}
		for _, term := range terms {
			set[term] = struct{}{}
		}
	}
}

func sortedInventory(sets map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(sets))
	for category, set := range sets {
		terms := make([]string, 0, len(set))
		for term := range set {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		out[category] = terms
	}
	return out
}

// observedVariations reports which variant classes actually appear in the
// corpus: a class is observed when any of its surface forms occurs as a
// substring of a positive prompt.
func observedVariations(prompts []string) map[string][]string {
	observed := make(map[string][]string)
	for _, prompt := range prompts {
		lower := strings.ToLower(prompt)
		for _, canonical := range variant.Canonicals() {
			if _, seen := observed[canonical]; seen {
				continue
			}
			for _, form := range variant.Class(canonical) {
				if strings.Contains(lower, form) {
					observed[canonical] = append([]string(nil), variant.Class(canonical)...)
					break
				}
			}
		}
	}
	return observed
}
