package controllers

import (
	"errors"
	"log"

	"seb/database"
	"seb/middleware"
	"seb/models"
	courseModels "seb/models/course"
	"seb/progression"

	"github.com/gofiber/fiber/v2"
)

// handleProgressionError maps the progression error taxonomy onto HTTP
// responses. Data-integrity failures are fatal for the request and logged
// for operator attention; no partial derived view is returned.
func handleProgressionError(c *fiber.Ctx, err error) error {
	var notFound *progression.NotFoundError
	var invalid *progression.InvalidSubmissionError
	var integrity *progression.DataIntegrityError

	switch {
	case errors.As(err, &notFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found: "+notFound.Error(), nil)
	case errors.As(err, &invalid):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid submission: "+invalid.Reason, nil)
	case errors.As(err, &integrity):
		log.Printf("Data integrity error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Course content is misconfigured!", nil)
	default:
		log.Printf("Unexpected error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error!", nil)
	}
}

// currentParent resolves the authenticated parent or writes the 401 response
func currentParent(c *fiber.Ctx) (*models.Parent, error) {
	parentID, ok := c.Locals("parentId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	var parent models.Parent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", parentID, false).First(&parent).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Parent not found!", nil)
	}
	return &parent, nil
}

func GetAllCourses(c *fiber.Ctx) error {
	parent, errResp := currentParent(c)
	if parent == nil {
		return errResp
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	// Enrollments of this parent, keyed by course
	var enrollments []courseModels.Enrollment
	database.Database.Db.Where("parent_id = ?", parent.ID).Find(&enrollments)
	enrollmentMap := make(map[uint]courseModels.Enrollment, len(enrollments))
	for _, e := range enrollments {
		enrollmentMap[e.CourseID] = e
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, crs := range courses {
		var totalChapters int64
		var totalDuration int64
		database.Database.Db.Model(&courseModels.Chapter{}).
			Where("course_id = ? AND is_deleted = ?", crs.ID, false).Count(&totalChapters)
		database.Database.Db.Model(&courseModels.Chapter{}).
			Where("course_id = ? AND is_deleted = ?", crs.ID, false).
			Select("COALESCE(SUM(duration_minutes), 0)").Scan(&totalDuration)

		enrollment, enrolled := enrollmentMap[crs.ID]
		entry := fiber.Map{
			"id":               crs.ID,
			"title":            crs.Title,
			"slug":             crs.Slug,
			"description":      crs.Description,
			"thumbnail_url":    crs.ThumbnailURL,
			"category":         crs.Category,
			"has_evaluation":   crs.HasEvaluation,
			"total_chapters":   totalChapters,
			"total_duration":   totalDuration,
			"is_enrolled":      enrolled,
			"is_completed":     enrolled && enrollment.Status == courseModels.EnrollmentCompleted,
			"progress_percent": 0,
		}
		if enrolled {
			entry["progress_percent"] = enrollment.ProgressPercent
		}
		result = append(result, entry)
	}

	// Learning stats for the header card
	activeCourses := 0
	completedCourses := 0
	for _, e := range enrollments {
		switch e.Status {
		case courseModels.EnrollmentActive:
			activeCourses++
		case courseModels.EnrollmentCompleted:
			completedCourses++
		}
	}
	var chaptersViewed int64
	database.Database.Db.Model(&courseModels.ChapterProgress{}).
		Where("parent_id = ? AND is_completed = ?", parent.ID, true).Count(&chaptersViewed)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"stats": fiber.Map{
			"active_courses":    activeCourses,
			"completed_courses": completedCourses,
			"chapters_viewed":   chaptersViewed,
		},
	})
}

func GetCourseDetails(c *fiber.Ctx) error {
	parent, errResp := currentParent(c)
	if parent == nil {
		return errResp
	}

	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

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

	// Percentage is recomputed from the completion facts, never read from
	// the stored enrollment column.
	percent := progression.ComputeProgress(tree, completions)

	var enrollment courseModels.Enrollment
	enrolled := database.Database.Db.Where("parent_id = ? AND course_id = ?", parent.ID, crs.ID).
		First(&enrollment).Error == nil

	materials := loadMaterials(seq.FlatOrder)

	totalChapters := len(seq.FlatOrder)
	totalDuration := 0
	moduleViews := make([]fiber.Map, 0, len(seq.Modules))
	for _, m := range seq.Modules {
		chapterViews := make([]fiber.Map, 0, len(m.Chapters))
		for _, ch := range m.Chapters {
			totalDuration += ch.Chapter.DurationMinutes
			chapterViews = append(chapterViews, fiber.Map{
				"id":                 ch.Chapter.ID,
				"module_id":          ch.Chapter.ModuleID,
				"title":              ch.Chapter.Title,
				"description":        ch.Chapter.Description,
				"video_url":          ch.Chapter.VideoURL,
				"duration_minutes":   ch.Chapter.DurationMinutes,
				"order_index":        ch.Chapter.OrderIndex,
				"is_completed":       ch.IsCompleted,
				"completed_at":       ch.CompletedAt,
				"watch_time_seconds": ch.WatchTimeSeconds,
				"materials":          materials[ch.Chapter.ID],
			})
		}
		moduleViews = append(moduleViews, fiber.Map{
			"id":                 m.Module.ID,
			"title":              m.Module.Title,
			"order_index":        m.Module.OrderIndex,
			"is_unlocked":        m.IsUnlocked,
			"is_completed":       m.IsCompleted,
			"completed_chapters": m.CompletedChapters,
			"total_chapters":     m.TotalChapters,
			"chapters":           chapterViews,
		})
	}

	response := fiber.Map{
		"course": fiber.Map{
			"id":               crs.ID,
			"title":            crs.Title,
			"slug":             crs.Slug,
			"description":      crs.Description,
			"thumbnail_url":    crs.ThumbnailURL,
			"category":         crs.Category,
			"has_evaluation":   crs.HasEvaluation,
			"total_chapters":   totalChapters,
			"total_duration":   totalDuration,
			"is_enrolled":      enrolled,
			"is_completed":     enrolled && enrollment.Status == courseModels.EnrollmentCompleted,
			"progress_percent": percent,
		},
		"modules":               moduleViews,
		"current_module_index":  nil,
		"current_chapter_index": nil,
	}
	// A course with zero chapters has no current position; the client must
	// handle the nulls instead of receiving a synthesized chapter.
	if seq.Current != nil {
		response["current_module_index"] = seq.Current.ModuleIndex
		response["current_chapter_index"] = seq.Current.ChapterIndex
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", response)
}

// loadMaterials fetches the materials of the given chapters, grouped by
// chapter id and sorted by order index
func loadMaterials(chapterIDs []uint) map[uint][]fiber.Map {
	grouped := make(map[uint][]fiber.Map, len(chapterIDs))
	if len(chapterIDs) == 0 {
		return grouped
	}

	var rows []courseModels.Material
	database.Database.Db.Where("chapter_id IN ? AND is_deleted = ?", chapterIDs, false).
		Order("chapter_id asc, order_index asc").Find(&rows)

	for _, m := range rows {
		grouped[m.ChapterID] = append(grouped[m.ChapterID], fiber.Map{
			"id":          m.ID,
			"title":       m.Title,
			"type":        m.Type,
			"url":         m.URL,
			"description": m.Description,
			"order_index": m.OrderIndex,
		})
	}
	return grouped
}

func EnrollInCourse(c *fiber.Ctx) error {
	parent, errResp := currentParent(c)
	if parent == nil {
		return errResp
	}

	courseID := c.Locals("courseID").(int)

	// Check if course exists and is published
	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Check if parent is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.Where("parent_id = ? AND course_id = ?", parent.ID, courseID).
		First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled in this course!", existingEnrollment)
	}

	enrollment := courseModels.Enrollment{
		ParentID: parent.ID,
		CourseID: uint(courseID),
		Status:   courseModels.EnrollmentActive,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the parent's enrollments with their courses
func GetEnrollments(c *fiber.Ctx) error {
	parent, errResp := currentParent(c)
	if parent == nil {
		return errResp
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("parent_id = ?", parent.ID).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
