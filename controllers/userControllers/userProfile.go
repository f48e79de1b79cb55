package controllers

import (
	"seb/config"
	"seb/database"
	"seb/middleware"
	"seb/models"
	courseModels "seb/models/course"
	"seb/utils"

	"github.com/gofiber/fiber/v2"
)

func GetProfile(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var parent models.Parent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", parentID, false).First(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Parent not found!", nil)
	}

	// Learning stats shown on the profile page
	var activeCourses, completedCourses, chaptersViewed int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("parent_id = ? AND status = ?", parentID, courseModels.EnrollmentActive).Count(&activeCourses)
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("parent_id = ? AND status = ?", parentID, courseModels.EnrollmentCompleted).Count(&completedCourses)
	database.Database.Db.Model(&courseModels.ChapterProgress{}).
		Where("parent_id = ? AND is_completed = ?", parentID, true).Count(&chaptersViewed)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"parent": parent,
		"stats": fiber.Map{
			"active_courses":    activeCourses,
			"completed_courses": completedCourses,
			"chapters_viewed":   chaptersViewed,
		},
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var parent models.Parent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", parentID, false).First(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Parent not found!", nil)
	}

	reqData := new(struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.FirstName != "" {
		parent.FirstName = reqData.FirstName
	}
	if reqData.LastName != "" {
		parent.LastName = reqData.LastName
	}
	if reqData.Email != "" {
		parent.Email = reqData.Email
	}

	if err := database.Database.Db.Save(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", parent)
}

// UploadAvatar stores the uploaded image and sets it as the parent's avatar
func UploadAvatar(c *fiber.Ctx) error {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var parent models.Parent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", parentID, false).First(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Parent not found!", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	parent.AvatarURL = utils.GetFileURL(filePath)
	if err := database.Database.Db.Save(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update avatar!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Avatar uploaded successfully!", fiber.Map{
		"avatar_url": parent.AvatarURL,
	})
}

// UploadImage stores an image for use in community posts
func UploadImage(c *fiber.Ctx) error {
	_, ok := c.Locals("parentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Image uploaded successfully!", fiber.Map{
		"url": utils.GetFileURL(filePath),
	})
}
