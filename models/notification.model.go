package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationType enumerates the closed set of notification kinds
type NotificationType string

const (
	NotificationComment  NotificationType = "COMMENT"
	NotificationReaction NotificationType = "REACTION"
	NotificationResource NotificationType = "RESOURCE"
	NotificationReminder NotificationType = "REMINDER"
	NotificationSystem   NotificationType = "SYSTEM"
)

// Notification represents an in-app notification for a parent
type Notification struct {
	gorm.Model
	ParentID  uint             `json:"parent_id" gorm:"index;not null"`
	Type      NotificationType `json:"type" gorm:"default:'SYSTEM'"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read" gorm:"default:false"`
	Data      datatypes.JSON   `json:"data"` // Optional payload (post id, course id, ...)
	IsDeleted bool             `gorm:"default:false"`
}
