package controllers

import (
	"seb/database"
	"seb/middleware"
	courseModels "seb/models/course"
	"seb/progression"

	"github.com/gofiber/fiber/v2"
)

func GetChapterDetails(c *fiber.Ctx) error {
	parent, errResp := currentParent(c)
	if parent == nil {
		return errResp
	}

	chapterID := c.Locals("chapterID").(int)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", chapterID, false).
		First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", chapter.CourseID, false).
		First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// The navigation block is derived from the same flattened order as the
	// course detail view, so prev/next links agree between entry points.
	tree, err := progression.LoadCourseTree(database.Database.Db, crs.ID)
	if err != nil {
		return handleProgressionError(c, err)
	}
	completions, err := progression.LoadCourseCompletions(database.Database.Db, parent.ID, crs.ID)
	if err != nil {
		return handleProgressionError(c, err)
	}
	seq, err := progression.ComputeSequencing(tree, completions)
	if err != nil {
		return handleProgressionError(c, err)
	}

	flatIndex := -1
	for i, id := range seq.FlatOrder {
		if id == chapter.ID {
			flatIndex = i
			break
		}
	}
	if flatIndex == -1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	var prevChapterID, nextChapterID interface{}
	if flatIndex > 0 {
		prevChapterID = seq.FlatOrder[flatIndex-1]
	}
	if flatIndex < len(seq.FlatOrder)-1 {
		nextChapterID = seq.FlatOrder[flatIndex+1]
	}

	isCompleted := false
	watchTimeSeconds := 0
	if p, ok := completions[chapter.ID]; ok {
		isCompleted = p.IsCompleted
		watchTimeSeconds = p.WatchTimeSeconds
	}

	materials := loadMaterials([]uint{chapter.ID})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter fetched successfully!", fiber.Map{
		"chapter": fiber.Map{
			"id":                 chapter.ID,
			"course_id":          chapter.CourseID,
			"module_id":          chapter.ModuleID,
			"title":              chapter.Title,
			"description":        chapter.Description,
			"video_url":          chapter.VideoURL,
			"duration_minutes":   chapter.DurationMinutes,
			"order_index":        chapter.OrderIndex,
			"is_completed":       isCompleted,
			"watch_time_seconds": watchTimeSeconds,
			"materials":          materials[chapter.ID],
		},
		"course": fiber.Map{
			"id":    crs.ID,
			"title": crs.Title,
			"slug":  crs.Slug,
		},
		"navigation": fiber.Map{
			"current_index":   flatIndex + 1,
			"total_chapters":  len(seq.FlatOrder),
			"prev_chapter_id": prevChapterID,
			"next_chapter_id": nextChapterID,
		},
	})
}

func UpdateChapterProgress(c *fiber.Ctx) error {
	parent, errResp := currentParent(c)
	if parent == nil {
		return errResp
	}

	chapterID := c.Locals("chapterID").(int)

	reqData, ok := c.Locals("validatedChapterProgress").(*struct {
		WatchTimeSeconds *int `json:"watch_time_seconds"`
		MarkCompleted    bool `json:"mark_completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", chapterID, false).
		First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	recorder := progression.NewRecorder(database.Database.Db)
	if err := recorder.RecordChapterProgress(parent.ID, chapter.ID, progression.ProgressUpdate{
		WatchTimeSeconds: reqData.WatchTimeSeconds,
		MarkCompleted:    reqData.MarkCompleted,
	}); err != nil {
		return handleProgressionError(c, err)
	}

	// Explicit policy call: refresh the denormalized percent and complete
	// the enrollment when it reaches 100.
	percent, err := recorder.SyncEnrollment(parent.ID, chapter.CourseID)
	if err != nil {
		return handleProgressionError(c, err)
	}

	message := "Progress saved!"
	if reqData.MarkCompleted {
		message = "Chapter completed!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"progress_percent": percent,
	})
}
