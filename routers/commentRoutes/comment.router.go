package commentRoutes

import (
	commentControllers "movieapi/controllers/comment"
	"movieapi/validators"
	commentValidators "movieapi/validators/comment"

	"github.com/gofiber/fiber/v2"
)

func SetupCommentRoutes(app *fiber.App, auth fiber.Handler) {
	commentGroup := app.Group("/comments")

	commentGroup.Post("/", auth, commentValidators.CreateComment(), commentControllers.Create)
	commentGroup.Post("/by-title", auth, commentValidators.CreateCommentByTitle(), commentControllers.CreateByTitle)
	commentGroup.Get("/movie/:movie_id", validators.PathID("movie_id"), commentControllers.ListByMovie)
	commentGroup.Get("/by-title/:movie_title", commentControllers.ListByTitle)
	commentGroup.Get("/user/:user_id", validators.PathID("user_id"), commentControllers.ListByUser)
	commentGroup.Delete("/:comment_id", auth, validators.PathID("comment_id"), commentControllers.Delete)
}
