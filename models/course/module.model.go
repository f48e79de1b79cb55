package course

import "gorm.io/gorm"

// Module represents an ordered group of chapters within a course; it is
// the unit of sequential unlocking.
type Module struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // Module order in course
	IsDeleted  bool   `gorm:"default:false"`
}
