package ratingController

import (
	"errors"
	"movieapi/cache"
	"movieapi/database"
	"movieapi/errs"
	"movieapi/middleware"
	"movieapi/models"
	movieService "movieapi/services/movie"
	ratingService "movieapi/services/rating"
	ratingValidator "movieapi/validators/rating"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Create(ratings *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := c.Locals("validatedRating").(*ratingValidator.CreateRatingRequest)
		user := middleware.CurrentUser(c)

		var rating *models.Rating
		err := database.FromCtx(c).Transaction(func(tx *gorm.DB) error {
			var err error
			rating, err = ratingService.Create(tx, user.ID, ratingService.CreateInput{
				MovieID: reqData.MovieID,
				Score:   reqData.Rating,
				Review:  reqData.Review,
			})
			return err
		})
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		ratings.Invalidate(c.UserContext(), rating.Movie.Title)
		return middleware.JsonResponse(c, fiber.StatusCreated, rating)
	}
}

// CreateByTitle rates the movie named by :title.
func CreateByTitle(ratings *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := c.Locals("validatedRating").(*ratingValidator.RatingRequest)
		user := middleware.CurrentUser(c)

		var rating *models.Rating
		err := database.FromCtx(c).Transaction(func(tx *gorm.DB) error {
			var err error
			rating, err = movieService.Rate(tx, user.ID, c.Params("title"), reqData.Rating, reqData.Review)
			return err
		})
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		ratings.Invalidate(c.UserContext(), rating.Movie.Title)
		return middleware.JsonResponse(c, fiber.StatusCreated, rating)
	}
}

func ListByMovie(c *fiber.Ctx) error {
	list, err := ratingService.ListByMovie(database.FromCtx(c), c.Locals("movie_id").(uint))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, list)
}

func ListByUser(c *fiber.Ctx) error {
	list, err := ratingService.ListByUser(database.FromCtx(c), c.Locals("user_id").(uint))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, list)
}

func ListByScore(c *fiber.Ctx) error {
	list, err := ratingService.ListByScore(database.FromCtx(c), c.Locals("score").(int))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, list)
}

// AverageByTitle answers the movie's mean rating as a bare number, 0 when unrated.
// Hits are served from the cache; misses are read from the movie row and cached.
func AverageByTitle(ratings *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := c.Params("title")
		if avg, ok := ratings.GetAverage(c.UserContext(), title); ok {
			return middleware.JsonResponse(c, fiber.StatusOK, avg)
		}

		ticket := ratings.Ticket(c.UserContext(), title)
		_, avg, err := movieService.AverageByTitle(database.FromCtx(c), title)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		ratings.SetAverage(c.UserContext(), ticket, avg)
		return middleware.JsonResponse(c, fiber.StatusOK, avg)
	}
}

// Delete removes the caller's own rating. A missing rating is answered with 403 like a foreign one.
func Delete(ratings *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)

		var deleted *models.Rating
		err := database.FromCtx(c).Transaction(func(tx *gorm.DB) error {
			rating, err := ratingService.Get(tx, c.Locals("rating_id").(uint))
			if err != nil && !errors.Is(err, errs.ErrNotFound) {
				return err
			}
			if err := middleware.CanDeleteRating(user, rating); err != nil {
				return err
			}
			deleted, err = ratingService.Delete(tx, rating)
			return err
		})
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		ratings.Invalidate(c.UserContext(), deleted.Movie.Title)
		return middleware.JsonResponse(c, fiber.StatusOK, deleted)
	}
}
