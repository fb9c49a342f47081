// Package corpus loads the raw prompt-metadata corpus from disk.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/timmy/promptforge/internal/domain"
)

// Load reads a JSON array of prompt records from path. A missing file is
// an empty corpus, not an error; downstream analysis degrades to empty
// results. LoRA weights the corpus omits default to 1.0.
func Load(path string) ([]domain.PromptRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var records []domain.PromptRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}

	for i := range records {
		for j := range records[i].LoRAs {
			if records[i].LoRAs[j].Weight == 0 {
				records[i].LoRAs[j].Weight = 1.0
			}
		}
	}
	return records, nil
}
