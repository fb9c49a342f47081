package analyzer

import (
	"reflect"
	"testing"

	"github.com/timmy/promptforge/internal/domain"
)

func record(id, prompt, negative string, loras ...domain.LoRARef) domain.PromptRecord {
	return domain.PromptRecord{
		ID:        id,
		BaseModel: "SDXL",
		Prompt:    prompt,
		Negative:  negative,
		LoRAs:     loras,
	}
}

func TestAnalyzeAnnotatesRecords(t *testing.T) {
	res := Analyze([]domain.PromptRecord{
		record("r1", "1girl, sitting on a beach at sunset, masterpiece, 8k", "worst quality, bad anatomy"),
	})

	if len(res.Annotations) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(res.Annotations))
	}
	ann := res.Annotations[0]
	if !reflect.DeepEqual(ann.Categories["subject"], []string{"1girl"}) {
		t.Errorf("subject: got %v", ann.Categories["subject"])
	}
	if !reflect.DeepEqual(ann.Exclusions["anatomy"], []string{"bad anatomy"}) {
		t.Errorf("anatomy: got %v", ann.Exclusions["anatomy"])
	}
	if res.WithPrompts != 1 {
		t.Errorf("WithPrompts = %d, want 1", res.WithPrompts)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	records := []domain.PromptRecord{
		record("r1", "1girl, sitting, beach", "blurry"),
		record("r2", "forest, night, 1boy standing", "bad hands"),
	}

	first := Analyze(records)
	second := Analyze(records)

	if !reflect.DeepEqual(first.Annotations, second.Annotations) {
		t.Error("annotations differ between identical runs")
	}
	if !reflect.DeepEqual(first.Inventory, second.Inventory) {
		t.Error("inventories differ between identical runs")
	}
}

func TestAnalyzeTermInventory(t *testing.T) {
	res := Analyze([]domain.PromptRecord{
		record("r1", "beach, sunset", ""),
		record("r2", "forest, beach", ""),
	})

	want := []string{"beach", "forest", "sunset"}
	if !reflect.DeepEqual(res.Inventory["environment"], want) {
		t.Errorf("environment inventory: got %v, want %v", res.Inventory["environment"], want)
	}
}

func TestLoRACombinationRanking(t *testing.T) {
	a := domain.LoRARef{Name: "A", Weight: 0.8}
	b := domain.LoRARef{Name: "B", Weight: 1.0}
	c := domain.LoRARef{Name: "C", Weight: 0.5}

	res := Analyze([]domain.PromptRecord{
		record("r1", "x", "", a, b),
		record("r2", "x", "", a, b),
		record("r3", "x", "", a, c),
	})

	combos := res.Stats.LoRAs.TopCombinations
	if len(combos) != 2 {
		t.Fatalf("expected 2 combinations, got %d", len(combos))
	}
	if !reflect.DeepEqual(combos[0].Names, []string{"A", "B"}) || combos[0].Count != 2 {
		t.Errorf("top combination: got %v (%d), want [A B] (2)", combos[0].Names, combos[0].Count)
	}
	if !reflect.DeepEqual(combos[1].Names, []string{"A", "C"}) || combos[1].Count != 1 {
		t.Errorf("second combination: got %v (%d), want [A C] (1)", combos[1].Names, combos[1].Count)
	}
}

func TestLoRAWeightAveraging(t *testing.T) {
	res := Analyze([]domain.PromptRecord{
		record("r1", "x", "", domain.LoRARef{Name: "A", Weight: 0.5}),
		record("r2", "x", "", domain.LoRARef{Name: "A", Weight: 1.5}),
		record("r3", "x", "", domain.LoRARef{Name: "B"}), // weight defaults to 1.0
	})

	if got := res.Stats.LoRAs.AvgWeights["A"]; got != 1.0 {
		t.Errorf("avg weight A = %v, want 1.0", got)
	}
	if got := res.Stats.LoRAs.AvgWeights["B"]; got != 1.0 {
		t.Errorf("avg weight B = %v, want 1.0 (defaulted)", got)
	}
	if got := res.Stats.LoRAs.Counts["A"]; got != 2 {
		t.Errorf("count A = %d, want 2", got)
	}
}

func TestTechnicalStatsEmptyCorpus(t *testing.T) {
	res := Analyze(nil)

	tech := res.Stats.Technical
	if tech.StepsAvg != 0 {
		t.Errorf("steps_avg = %v, want 0", tech.StepsAvg)
	}
	if tech.StepsRange != [2]int{0, 0} {
		t.Errorf("steps_range = %v, want (0,0)", tech.StepsRange)
	}
	if tech.CfgAvg != 0 {
		t.Errorf("cfg_avg = %v, want 0", tech.CfgAvg)
	}
}

func TestTechnicalStatsAggregation(t *testing.T) {
	records := []domain.PromptRecord{
		{ID: "r1", Settings: domain.GenerationSettings{Sampler: "Euler a", Steps: 20, CfgScale: 7}},
		{ID: "r2", Settings: domain.GenerationSettings{Sampler: "Euler a", Steps: 30, CfgScale: 5}},
		{ID: "r3", Settings: domain.GenerationSettings{Sampler: "DPM++ 2M", Steps: 40}},
		{ID: "r4"}, // absent settings are ignored, never an error
	}

	tech := Analyze(records).Stats.Technical
	if tech.Samplers["Euler a"] != 2 || tech.Samplers["DPM++ 2M"] != 1 {
		t.Errorf("samplers = %v", tech.Samplers)
	}
	if tech.StepsAvg != 30 {
		t.Errorf("steps_avg = %v, want 30", tech.StepsAvg)
	}
	if tech.StepsRange != [2]int{20, 40} {
		t.Errorf("steps_range = %v, want [20 40]", tech.StepsRange)
	}
	if tech.CfgAvg != 6 {
		t.Errorf("cfg_avg = %v, want 6", tech.CfgAvg)
	}
	if tech.CfgRange != [2]float64{5, 7} {
		t.Errorf("cfg_range = %v, want [5 7]", tech.CfgRange)
	}
}

func TestObservedVariations(t *testing.T) {
	res := Analyze([]domain.PromptRecord{
		record("r1", "1girl seated on the shore", ""),
	})

	// "seated" belongs to the sitting class, "shore" to the beach class.
	if _, ok := res.Variations["sitting"]; !ok {
		t.Errorf("expected sitting class to be observed, got %v", res.Variations)
	}
	if _, ok := res.Variations["beach"]; !ok {
		t.Errorf("expected beach class to be observed, got %v", res.Variations)
	}
	if _, ok := res.Variations["forest"]; ok {
		t.Error("forest class should not be observed")
	}
}

func TestAnalyzeGeneratesMissingIDs(t *testing.T) {
	res := Analyze([]domain.PromptRecord{record("", "beach", "")})
	if res.Annotations[0].ID == "" {
		t.Error("expected a generated ID for a record without one")
	}
}
