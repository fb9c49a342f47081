package kb

import (
	"path/filepath"
	"testing"

	"github.com/timmy/promptforge/internal/analyzer"
	"github.com/timmy/promptforge/internal/domain"
)

func sampleResult() *analyzer.Result {
	return analyzer.Analyze([]domain.PromptRecord{
		{
			ID:        "r1",
			BaseModel: "Pony",
			Prompt:    "1girl, sitting on a beach, sunset, masterpiece",
			Negative:  "worst quality, bad anatomy",
			LoRAs:     []domain.LoRARef{{Name: "DetailTweaker", Weight: 0.8}},
			Settings:  domain.GenerationSettings{Sampler: "Euler a", Steps: 30, CfgScale: 7},
		},
		{
			ID:        "r2",
			BaseModel: "Pony",
			Prompt:    "1boy, standing, city street",
		},
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kb.json")

	doc := FromResult(sampleResult())
	if doc.Metadata.RunID == "" {
		t.Fatal("expected a generated run ID")
	}
	if err := Save(path, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Metadata.RunID != doc.Metadata.RunID {
		t.Errorf("run ID changed across round trip: %q != %q", loaded.Metadata.RunID, doc.Metadata.RunID)
	}
	if len(loaded.CategorizedImages) != 2 {
		t.Errorf("expected 2 categorized records, got %d", len(loaded.CategorizedImages))
	}
	if loaded.LoRAAnalysis.Counts["DetailTweaker"] != 1 {
		t.Errorf("unexpected lora counts: %v", loaded.LoRAAnalysis.Counts)
	}
	if len(loaded.CategoryPatterns) == 0 || len(loaded.NegativeCategories) == 0 {
		t.Error("taxonomy echoes missing from document")
	}
}

func TestLoadMissingFileYieldsEmptyDocument(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if doc.Metadata.TotalRecords != 0 || len(doc.CategorizedImages) != 0 {
		t.Errorf("expected empty document, got %+v", doc.Metadata)
	}
	if len(doc.CategoryPatterns) == 0 {
		t.Error("empty document should still carry the taxonomy")
	}
}

func TestTermInventory(t *testing.T) {
	doc := FromResult(sampleResult())

	envTerms := doc.TermInventory("environment")
	found := map[string]bool{}
	for _, term := range envTerms {
		found[term] = true
	}
	if !found["beach"] || !found["city"] {
		t.Errorf("environment inventory missing expected terms: %v", envTerms)
	}
	for i := 1; i < len(envTerms); i++ {
		if envTerms[i-1] >= envTerms[i] {
			t.Fatalf("inventory not sorted: %v", envTerms)
		}
	}

	if terms := doc.TermInventory("no_such_category"); len(terms) != 0 {
		t.Errorf("unknown category should have empty inventory, got %v", terms)
	}
}

func TestBaseModelCounts(t *testing.T) {
	doc := FromResult(sampleResult())
	counts := doc.BaseModelCounts()
	if counts["Pony"] != 2 {
		t.Errorf("unexpected base model counts: %v", counts)
	}
}
