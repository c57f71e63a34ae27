package ratingValidator

import (
	"movieapi/middleware"
	"movieapi/validators"

	"github.com/gofiber/fiber/v2"
)

// The score bounds match models.MinScore and models.MaxScore.
type RatingRequest struct {
	Rating int     `json:"rating" validate:"gte=1,lte=10"`
	Review *string `json:"review"`
}

type CreateRatingRequest struct {
	RatingRequest
	MovieID uint `json:"movie_id" validate:"required,gt=0"`
}

func CreateRating() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRatingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"body": "Invalid request body!"})
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRating", reqData)
		return c.Next()
	}
}

// CreateRatingByTitle validates a rating whose movie is named by the :title path parameter.
func CreateRatingByTitle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RatingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"body": "Invalid request body!"})
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRating", reqData)
		return c.Next()
	}
}

// Score checks the :score path parameter.
func Score() fiber.Handler {
	return func(c *fiber.Ctx) error {
		score, ok := validators.ParamInt(c, "score")
		if !ok {
			return middleware.ValidationErrorResponse(c, map[string]string{"score": "score must be an integer"})
		}
		c.Locals("score", score)
		return c.Next()
	}
}
