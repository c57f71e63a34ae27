package movieController

import (
	"movieapi/cache"
	"movieapi/database"
	"movieapi/middleware"
	"movieapi/models"
	movieService "movieapi/services/movie"
	movieValidator "movieapi/validators/movie"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func input(req *movieValidator.MovieRequest) movieService.MovieInput {
	return movieService.MovieInput{
		Title:       req.Title,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
		Synopsis:    req.Synopsis,
	}
}

func Create(c *fiber.Ctx) error {
	reqData := c.Locals("validatedMovie").(*movieValidator.MovieRequest)
	user := middleware.CurrentUser(c)

	var movie *models.Movie
	err := database.FromCtx(c).Transaction(func(tx *gorm.DB) error {
		var err error
		movie, err = movieService.Create(tx, user.ID, input(reqData))
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, movie)
}

func List(c *fiber.Ctx) error {
	page := c.Locals("pagination").(*movieValidator.PaginationRequest)

	movies, err := movieService.List(database.FromCtx(c), page.Skip, page.Limit)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, movies)
}

// GetByTitle matches the :title parameter case-insensitively.
func GetByTitle(c *fiber.Ctx) error {
	movie, err := movieService.FindByTitle(database.FromCtx(c), c.Params("title"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, movie)
}

func SearchByReleaseYear(c *fiber.Ctx) error {
	movie, err := movieService.FindByReleaseYear(database.FromCtx(c), c.Locals("releaseYear").(int))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, movie)
}

// Update replaces a movie's fields. Only the owner may update it.
func Update(ratings *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := c.Locals("validatedMovie").(*movieValidator.MovieRequest)
		user := middleware.CurrentUser(c)

		var before string
		var movie *models.Movie
		err := database.FromCtx(c).Transaction(func(tx *gorm.DB) error {
			current, err := movieService.Get(tx, c.Locals("movie_id").(uint))
			if err != nil {
				return err
			}
			if err := middleware.CanModifyMovie(user, current); err != nil {
				return err
			}
			before = current.Title
			movie, err = movieService.Update(tx, current, input(reqData))
			return err
		})
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		ratings.Invalidate(c.UserContext(), before, movie.Title)
		return middleware.JsonResponse(c, fiber.StatusOK, movie)
	}
}

// Delete removes a movie with its ratings and comments. Only the owner may delete it.
func Delete(ratings *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)

		var movie *models.Movie
		err := database.FromCtx(c).Transaction(func(tx *gorm.DB) error {
			current, err := movieService.Get(tx, c.Locals("movie_id").(uint))
			if err != nil {
				return err
			}
			if err := middleware.CanModifyMovie(user, current); err != nil {
				return err
			}
			movie, err = movieService.Delete(tx, current)
			return err
		})
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		ratings.Invalidate(c.UserContext(), movie.Title)
		return middleware.JsonResponse(c, fiber.StatusOK, movie)
	}
}
