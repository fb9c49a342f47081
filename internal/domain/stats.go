package domain

import (
	"encoding/json"
	"fmt"
)

// LoRACombination is an unordered set of LoRA names that co-occurred in at
// least one record, with its occurrence count. It serializes as a
// [names, count] pair to match the knowledge-base wire format.
type LoRACombination struct {
	Names []string
	Count int
}

// MarshalJSON encodes the combination as [["a","b"], 2].
func (c LoRACombination) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{c.Names, c.Count})
}

// UnmarshalJSON decodes a [names, count] pair.
func (c *LoRACombination) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("lora combination: expected [names, count] pair, got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &c.Names); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &c.Count)
}

// LoRAStats holds corpus-wide LoRA usage statistics.
type LoRAStats struct {
	Counts          map[string]int            `json:"counts"`
	ByBase          map[string]map[string]int `json:"by_base"`
	AvgWeights      map[string]float64        `json:"avg_weights"`
	TopCombinations []LoRACombination         `json:"top_combinations"`
}

// TechnicalStats holds sampler/steps/guidance aggregates. Ranges serialize
// as two-element [min, max] arrays; an empty corpus yields zeros.
type TechnicalStats struct {
	Samplers   map[string]int `json:"samplers"`
	StepsAvg   float64        `json:"steps_avg"`
	StepsRange [2]int         `json:"steps_range"`
	CfgAvg     float64        `json:"cfg_avg"`
	CfgRange   [2]float64     `json:"cfg_range"`
}

// AggregateStats is the full corpus-wide derived data set.
type AggregateStats struct {
	LoRAs     LoRAStats      `json:"lora_analysis"`
	Technical TechnicalStats `json:"technical_settings"`
}

// Selection is a user-supplied choice of terms per category for one
// synthesis call, plus an optional free-text custom-term block.
type Selection struct {
	Categories  map[string][]string `json:"selections"`
	CustomTerms string              `json:"custom_terms"`
}

// PromptVariation is one positive/negative prompt pair, either synthesized
// locally or refined by the external expansion model.
type PromptVariation struct {
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}
