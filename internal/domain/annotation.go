package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// CategoryMatchSet maps a taxonomy category name to the distinct matched
// terms found in one prompt. Categories with no matches are never present.
// Stored as a JSON column in the database.
type CategoryMatchSet map[string][]string

// Value implements the driver.Valuer interface for database serialization.
func (m CategoryMatchSet) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (m *CategoryMatchSet) Scan(value interface{}) error {
	if value == nil {
		*m = CategoryMatchSet{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan CategoryMatchSet")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, m)
}

// RecordAnnotation is a corpus record enriched with the categorizer output.
// It carries the record's pass-through fields so the API layer can serve
// it without re-reading the raw corpus.
type RecordAnnotation struct {
	ID         string             `gorm:"type:text;primaryKey" json:"id"`
	Username   string             `gorm:"type:text" json:"username"`
	BaseModel  string             `gorm:"type:text;index:idx_annotations_base" json:"baseModel"`
	Prompt     string             `gorm:"type:text" json:"prompt"`
	Negative   string             `gorm:"type:text" json:"negative"`
	Categories CategoryMatchSet   `gorm:"type:text" json:"categories"`
	Exclusions CategoryMatchSet   `gorm:"type:text" json:"exclusions"`
	LoRAs      LoRAList           `gorm:"type:text" json:"loras"`
	Checkpoint string             `gorm:"type:text" json:"checkpoint"`
	Settings   GenerationSettings `gorm:"embedded;embeddedPrefix:setting_" json:"settings"`
	CreatedAt  time.Time          `json:"-"`
	UpdatedAt  time.Time          `json:"-"`
}

// TableName returns the database table name for RecordAnnotation.
func (RecordAnnotation) TableName() string {
	return "prompt_annotations"
}
