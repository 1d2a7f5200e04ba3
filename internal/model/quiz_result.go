package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ResponseMap stores the raw answers of an attempt, keyed by question id.
type ResponseMap map[string]int

func (m ResponseMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *ResponseMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for ResponseMap", value)
	}
}

// QuizResult is one completed assessment attempt. Results are append-only:
// once created they are never updated, only read back for history.
type QuizResult struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	UserID    *uint       `json:"userId,omitempty" gorm:"index"` // nil for anonymous submissions
	User      User        `json:"-" gorm:"foreignKey:UserID"`
	Score     int         `json:"score" gorm:"not null"`
	Category  string      `json:"category" gorm:"not null"` // "fake", "healthy", "moderate", "serious"
	TimeTaken int         `json:"timeTaken" gorm:"not null"` // whole attempt, in seconds
	Responses ResponseMap `json:"responses" gorm:"type:jsonb;not null"`
	CreatedAt time.Time   `json:"createdAt"`
}
