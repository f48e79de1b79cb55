package communityRoutes

import (
	controllers "seb/controllers/community"
	"seb/middleware"
	validators "seb/validators/community"

	"github.com/gofiber/fiber/v2"
)

// SetupCommunityRoutes sets up the community feed routes
func SetupCommunityRoutes(app *fiber.App) {
	postGroup := app.Group("/posts")

	postGroup.Get("/", middleware.JWTMiddleware, validators.PostList(), controllers.GetPosts)
	postGroup.Post("/", middleware.JWTMiddleware, validators.CreatePost(), controllers.CreatePost)
	postGroup.Delete("/:id", middleware.JWTMiddleware, validators.PostID(), controllers.DeletePost)

	postGroup.Get("/:id/comments", middleware.JWTMiddleware, validators.PostID(), controllers.GetComments)
	postGroup.Post("/:id/comments", middleware.JWTMiddleware, validators.CreateComment(), controllers.CreateComment)
	postGroup.Post("/:id/reactions", middleware.JWTMiddleware, validators.PostID(), controllers.ToggleReaction)
}
