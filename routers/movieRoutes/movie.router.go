package movieRoutes

import (
	"movieapi/cache"
	movieControllers "movieapi/controllers/movie"
	"movieapi/validators"
	movieValidators "movieapi/validators/movie"

	"github.com/gofiber/fiber/v2"
)

func SetupMovieRoutes(app *fiber.App, auth fiber.Handler, ratings *cache.Cache) {
	movieGroup := app.Group("/movies")

	movieGroup.Post("/", auth, movieValidators.Movie(), movieControllers.Create)
	movieGroup.Get("/", movieValidators.Pagination(), movieControllers.List)
	movieGroup.Get("/search/:release_year", movieValidators.ReleaseYear(), movieControllers.SearchByReleaseYear)
	movieGroup.Get("/:title", movieControllers.GetByTitle)
	movieGroup.Put("/:movie_id", auth, validators.PathID("movie_id"), movieValidators.Movie(), movieControllers.Update(ratings))
	movieGroup.Delete("/:movie_id", auth, validators.PathID("movie_id"), movieControllers.Delete(ratings))
}
