package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadParsesRecords(t *testing.T) {
	path := writeCorpus(t, `[
		{
			"id": "r1",
			"username": "alice",
			"baseModel": "Pony",
			"positivePrompt": "1girl, beach",
			"negativePrompt": "worst quality",
			"loras": [{"name": "DetailTweaker", "weight": 0.8}],
			"checkpoint": "ponyDiffusionV6",
			"settings": {"sampler": "Euler a", "steps": 30, "cfgScale": 7}
		}
	]`)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.ID != "r1" || rec.BaseModel != "Pony" || rec.Prompt != "1girl, beach" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Settings.Sampler != "Euler a" || rec.Settings.CfgScale != 7 {
		t.Errorf("unexpected settings: %+v", rec.Settings)
	}
	if rec.LoRAs[0].Weight != 0.8 {
		t.Errorf("unexpected lora weight: %v", rec.LoRAs[0].Weight)
	}
}

func TestLoadDefaultsLoRAWeight(t *testing.T) {
	path := writeCorpus(t, `[{"id": "r1", "loras": [{"name": "NoWeight"}]}]`)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if records[0].LoRAs[0].Weight != 1.0 {
		t.Errorf("expected default weight 1.0, got %v", records[0].LoRAs[0].Weight)
	}
}

func TestLoadMissingFileIsEmptyCorpus(t *testing.T) {
	records, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if records != nil {
		t.Errorf("expected nil records, got %v", records)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := writeCorpus(t, `{"not": "an array"`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for malformed corpus")
	}
}
