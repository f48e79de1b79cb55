package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Evaluation represents the final evaluation of a course (0 or 1 per course)
type Evaluation struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"uniqueIndex;not null"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PassingScore int    `json:"passing_score" gorm:"default:70"` // 0-100
	IsDeleted    bool   `gorm:"default:false"`
}

// EvaluationQuestion represents a multiple choice question of an evaluation.
// CorrectAnswer is an index into Options and is never serialized to clients.
type EvaluationQuestion struct {
	gorm.Model
	EvaluationID  uint           `json:"evaluation_id" gorm:"index;not null"`
	Question      string         `json:"question"`
	Options       datatypes.JSON `json:"options"` // JSON array of option strings
	CorrectAnswer int            `json:"-"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}
