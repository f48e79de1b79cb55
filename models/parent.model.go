package models

import (
	"time"

	"gorm.io/gorm"
)

// Parent represents a parent account synced from Hub Central
type Parent struct {
	gorm.Model
	ExternalID       string     `json:"external_id" gorm:"uniqueIndex;not null"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Code             string     `json:"code" gorm:"index"` // STAR-PAD-XXXXXX access code
	FamilyID         string     `json:"family_id"`
	AvatarURL        string     `json:"avatar_url"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	IsDeleted        bool       `gorm:"default:false"`
}
