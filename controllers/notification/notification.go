package controllers

import (
	"seb/database"
	"seb/middleware"
	"seb/models"

	"github.com/gofiber/fiber/v2"
)

func GetNotifications(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var notifications []models.Notification
	if err := database.Database.Db.Where("parent_id = ? AND is_deleted = ?", parentID, false).
		Order("created_at desc").Limit(50).Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	var unreadCount int64
	database.Database.Db.Model(&models.Notification{}).
		Where("parent_id = ? AND is_read = ? AND is_deleted = ?", parentID, false, false).Count(&unreadCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": notifications,
		"unread_count":  unreadCount,
	})
}

// MarkNotificationsRead marks the given notifications as read, or all of
// the parent's notifications when no ids are sent
func MarkNotificationsRead(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		NotificationIDs []uint `json:"notification_ids"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.Model(&models.Notification{}).
		Where("parent_id = ? AND is_deleted = ?", parentID, false)
	if len(reqData.NotificationIDs) > 0 {
		db = db.Where("id IN ?", reqData.NotificationIDs)
	}

	if err := db.Update("is_read", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notifications as read!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications marked as read!", nil)
}
