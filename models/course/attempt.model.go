package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EvaluationAttempt represents one scored submission of evaluation answers.
// Attempts are append-only: every submission inserts a new row and earlier
// attempts are retained.
type EvaluationAttempt struct {
	gorm.Model
	ParentID     uint           `json:"parent_id" gorm:"index;not null"`
	EvaluationID uint           `json:"evaluation_id" gorm:"index;not null"`
	Score        int            `json:"score"` // 0-100
	Passed       bool           `json:"passed" gorm:"default:false"`
	Answers      datatypes.JSON `json:"answers"` // JSON array of selected option indices
	AttemptedAt  time.Time      `json:"attempted_at"`
}
