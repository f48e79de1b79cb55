package course

import "gorm.io/gorm"

// CourseCategory enumerates the closed set of course categories
type CourseCategory string

const (
	CategoryMaternidad   CourseCategory = "MATERNIDAD"
	CategoryComunicacion CourseCategory = "COMUNICACION"
	CategoryLimites      CourseCategory = "LIMITES"
	CategoryEmociones    CourseCategory = "EMOCIONES"
	CategoryAdolescencia CourseCategory = "ADOLESCENCIA"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	Title         string         `json:"title"`
	Slug          string         `json:"slug" gorm:"uniqueIndex"`
	Description   string         `json:"description"`
	ThumbnailURL  string         `json:"thumbnail_url"`
	Category      CourseCategory `json:"category"`
	IsPublished   bool           `json:"is_published" gorm:"default:false"`
	HasEvaluation bool           `json:"has_evaluation" gorm:"default:false"`
	IsDeleted     bool           `gorm:"default:false"`
}
