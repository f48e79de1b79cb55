package community

import "gorm.io/gorm"

// PostType enumerates the closed set of community post kinds
type PostType string

const (
	PostExperience PostType = "EXPERIENCE"
	PostQuestion   PostType = "QUESTION"
	PostAdvice     PostType = "ADVICE"
)

// Post represents a community feed post
type Post struct {
	gorm.Model
	ParentID      uint     `json:"parent_id" gorm:"index;not null"`
	Content       string   `json:"content" gorm:"type:text"`
	ImageURL      string   `json:"image_url"`
	PostType      PostType `json:"post_type" gorm:"default:'EXPERIENCE'"`
	ReactionCount int      `json:"reaction_count" gorm:"default:0"`
	CommentCount  int      `json:"comment_count" gorm:"default:0"`
	IsHidden      bool     `json:"is_hidden" gorm:"default:false"`
	IsDeleted     bool     `gorm:"default:false"`
}

// Comment represents a comment on a community post
type Comment struct {
	gorm.Model
	PostID    uint   `json:"post_id" gorm:"index;not null"`
	ParentID  uint   `json:"parent_id" gorm:"index;not null"`
	Content   string `json:"content" gorm:"type:text"`
	IsHidden  bool   `json:"is_hidden" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}

// Reaction represents a parent's reaction to a post (at most one per parent)
type Reaction struct {
	gorm.Model
	PostID   uint `json:"post_id" gorm:"uniqueIndex:idx_post_parent;not null"`
	ParentID uint `json:"parent_id" gorm:"uniqueIndex:idx_post_parent;not null"`
}
