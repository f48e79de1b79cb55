package course

import "gorm.io/gorm"

// MaterialType enumerates the closed set of material kinds
type MaterialType string

const (
	MaterialVideo MaterialType = "VIDEO"
	MaterialImage MaterialType = "IMAGE"
	MaterialPDF   MaterialType = "PDF"
	MaterialLink  MaterialType = "LINK"
)

// Material represents a downloadable/linked resource attached to a chapter
type Material struct {
	gorm.Model
	ChapterID   uint         `json:"chapter_id" gorm:"index;not null"`
	Title       string       `json:"title"`
	Type        MaterialType `json:"type" gorm:"default:'LINK'"`
	URL         string       `json:"url"`
	Description string       `json:"description"`
	OrderIndex  int          `json:"order_index" gorm:"default:0"`
	IsDeleted   bool         `gorm:"default:false"`
}
