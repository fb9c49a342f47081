package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// LoRARef is a reference to a LoRA adapter attached to a generation record.
// The name is an opaque identifier; the weight defaults to 1.0 when the
// corpus omits it.
type LoRARef struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// LoRAList stores a list of LoRA references as JSON in the database.
type LoRAList []LoRARef

// Value implements the driver.Valuer interface for database serialization.
func (l LoRAList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (l *LoRAList) Scan(value interface{}) error {
	if value == nil {
		*l = LoRAList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan LoRAList")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, l)
}

// GenerationSettings holds the technical sampler settings of one record.
type GenerationSettings struct {
	Sampler  string  `json:"sampler"`
	Steps    int     `json:"steps"`
	CfgScale float64 `json:"cfgScale"`
	Seed     int64   `json:"seed"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// PromptRecord is one ingested metadata sample from the corpus file.
// Records are immutable once loaded; the analyzer only derives from them.
type PromptRecord struct {
	ID         string             `json:"id"`
	Username   string             `json:"username"`
	BaseModel  string             `json:"baseModel"`
	Prompt     string             `json:"positivePrompt"`
	Negative   string             `json:"negativePrompt"`
	LoRAs      []LoRARef          `json:"loras"`
	Checkpoint string             `json:"checkpoint"`
	Settings   GenerationSettings `json:"settings"`
}
