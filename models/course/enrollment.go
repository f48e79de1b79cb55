package course

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentStatus enumerates the closed set of enrollment states
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentPaused    EnrollmentStatus = "PAUSED"
)

// Enrollment tracks a parent's enrollment in a course. There is at most one
// row per (parent, course). ProgressPercent is denormalized for list views;
// detail reads always recompute from ChapterProgress facts.
type Enrollment struct {
	gorm.Model
	ParentID        uint             `json:"parent_id" gorm:"uniqueIndex:idx_parent_course;not null"`
	CourseID        uint             `json:"course_id" gorm:"uniqueIndex:idx_parent_course;not null"`
	Status          EnrollmentStatus `json:"status" gorm:"default:'ACTIVE'"`
	ProgressPercent int              `json:"progress_percent" gorm:"default:0"` // 0-100
	CompletedAt     *time.Time       `json:"completed_at"`
}
