package controllers

import (
	"seb/database"
	"seb/middleware"
	"seb/models"
	communityModels "seb/models/community"

	"github.com/gofiber/fiber/v2"
)

// PostWithAuthor enriches a post with its author and the viewer's reaction
type PostWithAuthor struct {
	communityModels.Post
	Author     fiber.Map `json:"author"`
	HasReacted bool      `json:"has_reacted"`
}

func GetPosts(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var parent models.Parent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", parentID, false).First(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Parent not found!", nil)
	}

	// Retrieve validated pagination request
	reqData, _ := c.Locals("validatedPostList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&communityModels.Post{}).
		Where("is_hidden = ? AND is_deleted = ?", false, false)

	var total int64
	db.Count(&total)

	var posts []communityModels.Post
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch posts!", nil)
	}

	result := make([]PostWithAuthor, len(posts))
	for i, post := range posts {
		result[i] = PostWithAuthor{Post: post}

		var author models.Parent
		if err := database.Database.Db.Where("id = ?", post.ParentID).First(&author).Error; err == nil {
			result[i].Author = fiber.Map{
				"id":         author.ID,
				"first_name": author.FirstName,
				"last_name":  author.LastName,
				"avatar_url": author.AvatarURL,
			}
		}

		var reaction communityModels.Reaction
		if err := database.Database.Db.Where("post_id = ? AND parent_id = ?", post.ID, parentID).
			First(&reaction).Error; err == nil {
			result[i].HasReacted = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Posts fetched successfully!", fiber.Map{
		"posts": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func CreatePost(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var parent models.Parent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", parentID, false).First(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Parent not found!", nil)
	}

	reqData, ok := c.Locals("validatedPost").(*struct {
		Content  string `json:"content" validate:"required,min=3,max=2000"`
		ImageURL string `json:"image_url" validate:"omitempty,url"`
		PostType string `json:"post_type" validate:"omitempty,oneof=EXPERIENCE QUESTION ADVICE"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	post := communityModels.Post{
		ParentID: parentID,
		Content:  reqData.Content,
		ImageURL: reqData.ImageURL,
		PostType: communityModels.PostExperience,
	}
	if reqData.PostType != "" {
		post.PostType = communityModels.PostType(reqData.PostType)
	}

	if err := database.Database.Db.Create(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post created successfully!", post)
}

func DeletePost(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	postID := c.Locals("postID").(int)

	var post communityModels.Post
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	// Only the author can delete their post
	if post.ParentID != parentID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not your post!", nil)
	}

	post.IsDeleted = true
	if err := database.Database.Db.Save(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post deleted successfully!", nil)
}
