package controllers

import (
	"seb/database"
	"seb/middleware"
	courseModels "seb/models/course"
	"seb/progression"

	"github.com/gofiber/fiber/v2"
)

// GetEvaluation serves the evaluation questions in canonical order, without
// correct answers, plus the parent's previous attempts
func GetEvaluation(c *fiber.Ctx) error {
	parent, errResp := currentParent(c)
	if parent == nil {
		return errResp
	}

	courseID := c.Locals("courseID").(int)

	var eval courseModels.Evaluation
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		First(&eval).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Evaluation not found!", nil)
	}

	var questions []courseModels.EvaluationQuestion
	if err := database.Database.Db.Where("evaluation_id = ? AND is_deleted = ?", eval.ID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	// Canonical order with duplicate-order-key detection; the positional
	// answer mapping of the submit endpoint depends on it.
	sorted, err := progression.SortQuestions(questions)
	if err != nil {
		return handleProgressionError(c, err)
	}

	questionViews := make([]fiber.Map, 0, len(sorted))
	for _, q := range sorted {
		questionViews = append(questionViews, fiber.Map{
			"id":          q.ID,
			"question":    q.Question,
			"options":     q.Options,
			"order_index": q.OrderIndex,
		})
	}

	var attempts []courseModels.EvaluationAttempt
	database.Database.Db.Where("parent_id = ? AND evaluation_id = ?", parent.ID, eval.ID).
		Order("attempted_at desc").Find(&attempts)

	attemptViews := make([]fiber.Map, 0, len(attempts))
	for _, a := range attempts {
		attemptViews = append(attemptViews, fiber.Map{
			"id":           a.ID,
			"score":        a.Score,
			"passed":       a.Passed,
			"attempted_at": a.AttemptedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Evaluation fetched successfully!", fiber.Map{
		"evaluation": fiber.Map{
			"id":            eval.ID,
			"course_id":     eval.CourseID,
			"title":         eval.Title,
			"description":   eval.Description,
			"passing_score": eval.PassingScore,
		},
		"questions": questionViews,
		"attempts":  attemptViews,
	})
}

// SubmitEvaluation scores a submission and appends a new attempt
func SubmitEvaluation(c *fiber.Ctx) error {
	parent, errResp := currentParent(c)
	if parent == nil {
		return errResp
	}

	courseID := c.Locals("courseID").(int)

	answers, ok := c.Locals("validatedEvaluationAnswers").([]*int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	recorder := progression.NewRecorder(database.Database.Db)
	result, err := recorder.RecordEvaluationAttempt(parent.ID, uint(courseID), answers)
	if err != nil {
		return handleProgressionError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Evaluation submitted!", fiber.Map{
		"score":           result.Score,
		"passed":          result.Passed,
		"correct_count":   result.CorrectCount,
		"total_questions": result.TotalQuestions,
		"passing_score":   result.PassingScore,
	})
}
