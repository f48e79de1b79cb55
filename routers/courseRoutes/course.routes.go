package courseRoutes

import (
	controllers "seb/controllers/course"
	"seb/middleware"
	validators "seb/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details (published courses)
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Final evaluation
	courseGroup.Get("/:id/evaluation", middleware.JWTMiddleware, validators.GetEvaluation(), controllers.GetEvaluation)
	courseGroup.Post("/:id/evaluation/submit", middleware.JWTMiddleware, validators.SubmitEvaluation(), controllers.SubmitEvaluation)

	// Chapter viewing and progress
	chapterGroup := app.Group("/chapter")
	chapterGroup.Get("/:id", middleware.JWTMiddleware, validators.GetChapterDetail(), controllers.GetChapterDetails)
	chapterGroup.Post("/:id/progress", middleware.JWTMiddleware, validators.ChapterProgress(), controllers.UpdateChapterProgress)

	// Enrollment overview
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
}
