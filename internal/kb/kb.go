// Package kb reads and writes the knowledge-base artifact: the single
// JSON document produced by the analyzer and consumed by the API server.
package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/promptforge/internal/analyzer"
	"github.com/timmy/promptforge/internal/domain"
	"github.com/timmy/promptforge/internal/taxonomy"
)

// Metadata describes one analysis run.
type Metadata struct {
	TotalRecords int       `json:"total_records"`
	WithPrompts  int       `json:"with_prompts"`
	GeneratedAt  time.Time `json:"generated_at"`
	RunID        string    `json:"run_id"`
}

// Document is the persisted knowledge base. The taxonomies are echoed into
// the artifact so consumers can see exactly which rules produced it.
type Document struct {
	Metadata           Metadata                  `json:"metadata"`
	CategorizedImages  []domain.RecordAnnotation `json:"categorized_images"`
	Variations         map[string][]string       `json:"variations"`
	LoRAAnalysis       domain.LoRAStats          `json:"lora_analysis"`
	TechnicalSettings  domain.TechnicalStats     `json:"technical_settings"`
	CategoryPatterns   map[string][]string       `json:"category_patterns"`
	NegativeCategories map[string][]string       `json:"negative_categories"`
}

// FromResult builds a document from an analysis run, stamping it with a
// fresh run ID and the current time.
func FromResult(res *analyzer.Result) *Document {
	return &Document{
		Metadata: Metadata{
			TotalRecords: res.TotalRecords,
			WithPrompts:  res.WithPrompts,
			GeneratedAt:  time.Now().UTC(),
			RunID:        uuid.NewString(),
		},
		CategorizedImages:  res.Annotations,
		Variations:         res.Variations,
		LoRAAnalysis:       res.Stats.LoRAs,
		TechnicalSettings:  res.Stats.Technical,
		CategoryPatterns:   taxonomy.Positive.Patterns(),
		NegativeCategories: taxonomy.Negative.Patterns(),
	}
}

// Save writes the document as indented JSON, creating parent directories
// as needed.
func Save(path string, doc *Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create knowledge-base directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode knowledge base: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write knowledge base: %w", err)
	}
	return nil
}

// Load reads a document from disk. A missing file yields an empty
// document, not an error; the API still serves taxonomy data without a
// prior analysis run.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{
				CategoryPatterns:   taxonomy.Positive.Patterns(),
				NegativeCategories: taxonomy.Negative.Patterns(),
			}, nil
		}
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}
	return &doc, nil
}

// TermInventory returns the sorted distinct terms observed for one
// category across all annotated records.
func (d *Document) TermInventory(category string) []string {
	set := make(map[string]struct{})
	for _, img := range d.CategorizedImages {
		for _, term := range img.Categories[category] {
			set[term] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for term := range set {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// BaseModelCounts returns how many records each base model contributed.
func (d *Document) BaseModelCounts() map[string]int {
	out := make(map[string]int)
	for _, img := range d.CategorizedImages {
		base := img.BaseModel
		if base == "" {
			base = "Unknown"
		}
		out[base]++
	}
	return out
}
