package course

import (
	"time"

	"gorm.io/gorm"
)

// ChapterProgress tracks a parent's progress on a single chapter. There is
// at most one row per (parent, chapter); writes are keyed upserts. Once
// IsCompleted is true it is never reset to false by a progress write.
type ChapterProgress struct {
	gorm.Model
	ParentID         uint       `json:"parent_id" gorm:"uniqueIndex:idx_parent_chapter;not null"`
	ChapterID        uint       `json:"chapter_id" gorm:"uniqueIndex:idx_parent_chapter;not null"`
	CourseID         uint       `json:"course_id" gorm:"index;not null"`
	IsCompleted      bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt      *time.Time `json:"completed_at"`
	WatchTimeSeconds int        `json:"watch_time_seconds" gorm:"default:0"`
}
