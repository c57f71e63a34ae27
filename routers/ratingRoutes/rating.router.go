package ratingRoutes

import (
	"movieapi/cache"
	ratingControllers "movieapi/controllers/rating"
	"movieapi/validators"
	ratingValidators "movieapi/validators/rating"

	"github.com/gofiber/fiber/v2"
)

func SetupRatingRoutes(app *fiber.App, auth fiber.Handler, ratings *cache.Cache) {
	ratingGroup := app.Group("/ratings")

	ratingGroup.Post("/", auth, ratingValidators.CreateRating(), ratingControllers.Create(ratings))
	ratingGroup.Post("/title/:title", auth, ratingValidators.CreateRatingByTitle(), ratingControllers.CreateByTitle(ratings))
	ratingGroup.Get("/movie_ratings/:movie_id", validators.PathID("movie_id"), ratingControllers.ListByMovie)
	ratingGroup.Get("/user/:user_id", validators.PathID("user_id"), ratingControllers.ListByUser)
	ratingGroup.Get("/by_title/:title", ratingControllers.AverageByTitle(ratings))
	ratingGroup.Get("/score/:score", ratingValidators.Score(), ratingControllers.ListByScore)
	ratingGroup.Delete("/:rating_id", auth, validators.PathID("rating_id"), ratingControllers.Delete(ratings))
}
