package controllers

import (
	"encoding/json"

	"seb/database"
	"seb/middleware"
	"seb/models"
	communityModels "seb/models/community"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func GetComments(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var viewer models.Parent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", parentID, false).First(&viewer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Parent not found!", nil)
	}

	postID := c.Locals("postID").(int)

	var post communityModels.Post
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	var comments []communityModels.Comment
	if err := database.Database.Db.Where("post_id = ? AND is_hidden = ? AND is_deleted = ?", postID, false, false).
		Order("created_at asc").Find(&comments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	result := make([]fiber.Map, len(comments))
	for i, comment := range comments {
		result[i] = fiber.Map{
			"id":         comment.ID,
			"post_id":    comment.PostID,
			"content":    comment.Content,
			"created_at": comment.CreatedAt,
		}
		var author models.Parent
		if err := database.Database.Db.Where("id = ?", comment.ParentID).First(&author).Error; err == nil {
			result[i]["author"] = fiber.Map{
				"id":         author.ID,
				"first_name": author.FirstName,
				"last_name":  author.LastName,
				"avatar_url": author.AvatarURL,
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched successfully!", result)
}

func CreateComment(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var parent models.Parent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", parentID, false).First(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Parent not found!", nil)
	}

	postID := c.Locals("postID").(int)

	reqData, ok := c.Locals("validatedComment").(*struct {
		Content string `json:"content" validate:"required,min=1,max=1000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var post communityModels.Post
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	comment := communityModels.Comment{
		PostID:   uint(postID),
		ParentID: parentID,
		Content:  reqData.Content,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&comment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create comment!", nil)
	}
	if err := tx.Model(&post).Update("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create comment!", nil)
	}
	tx.Commit()

	// Notify the post author (skip self-comments)
	if post.ParentID != parentID {
		notifyPostAuthor(post, parent, models.NotificationComment,
			"Nuevo comentario", parent.FirstName+" comentó tu publicación")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment created successfully!", comment)
}

func ToggleReaction(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var parent models.Parent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", parentID, false).First(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Parent not found!", nil)
	}

	postID := c.Locals("postID").(int)

	var post communityModels.Post
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	var existing communityModels.Reaction
	err := database.Database.Db.Where("post_id = ? AND parent_id = ?", postID, parentID).First(&existing).Error

	tx := database.Database.Db.Begin()
	if err == nil {
		// Toggle off
		if err := tx.Unscoped().Delete(&existing).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove reaction!", nil)
		}
		if err := tx.Model(&post).Update("reaction_count", gorm.Expr("reaction_count - 1")).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove reaction!", nil)
		}
		tx.Commit()
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Reaction removed!", fiber.Map{"has_reacted": false})
	}

	reaction := communityModels.Reaction{PostID: uint(postID), ParentID: parentID}
	if err := tx.Create(&reaction).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add reaction!", nil)
	}
	if err := tx.Model(&post).Update("reaction_count", gorm.Expr("reaction_count + 1")).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add reaction!", nil)
	}
	tx.Commit()

	if post.ParentID != parentID {
		notifyPostAuthor(post, parent, models.NotificationReaction,
			"Nueva reacción", parent.FirstName+" reaccionó a tu publicación")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reaction added!", fiber.Map{"has_reacted": true})
}

// notifyPostAuthor creates an in-app notification for the post author
func notifyPostAuthor(post communityModels.Post, actor models.Parent, kind models.NotificationType, title, message string) {
	payload, _ := json.Marshal(fiber.Map{"post_id": post.ID, "actor_id": actor.ID})
	notification := models.Notification{
		ParentID: post.ParentID,
		Type:     kind,
		Title:    title,
		Message:  message,
		Data:     datatypes.JSON(payload),
	}
	database.Database.Db.Create(&notification)
}
