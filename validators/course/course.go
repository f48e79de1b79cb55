package courseValidator

import (
	"strconv"

	"seb/middleware"

	"github.com/gofiber/fiber/v2"
)

// courseIDParam validates the :id route parameter and stores it in Locals
func courseIDParam(paramName, localName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(paramName))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
		}
		c.Locals(localName, id)
		return c.Next()
	}
}

func GetCourseDetail() fiber.Handler {
	return courseIDParam("id", "courseID")
}

func EnrollCourse() fiber.Handler {
	return courseIDParam("id", "courseID")
}

func GetEvaluation() fiber.Handler {
	return courseIDParam("id", "courseID")
}

func GetChapterDetail() fiber.Handler {
	return courseIDParam("id", "chapterID")
}

// ChapterProgress validates the progress write payload
func ChapterProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
		}

		reqData := new(struct {
			WatchTimeSeconds *int `json:"watch_time_seconds"`
			MarkCompleted    bool `json:"mark_completed"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate WatchTimeSeconds
		if reqData.WatchTimeSeconds != nil && *reqData.WatchTimeSeconds < 0 {
			errors["watch_time_seconds"] = "Watch time must not be negative!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("chapterID", id)
		c.Locals("validatedChapterProgress", reqData)
		return c.Next()
	}
}

// SubmitEvaluation validates the answers array shape. Entries stay as
// pointers so missing (null) answers reach the scorer intact and are
// rejected there, not silently zeroed by JSON decoding.
func SubmitEvaluation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
		}

		reqData := new(struct {
			Answers []*int `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Answers
		if reqData.Answers == nil {
			errors["answers"] = "Answers are required!"
		}
		for _, a := range reqData.Answers {
			if a != nil && *a < 0 {
				errors["answers"] = "Answers must be option indices!"
				break
			}
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", id)
		c.Locals("validatedEvaluationAnswers", reqData.Answers)
		return c.Next()
	}
}
