package movieValidator

import (
	"movieapi/middleware"
	"movieapi/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type MovieRequest struct {
	Title       string  `json:"title" validate:"notblank,max=255"`
	ReleaseYear *int    `json:"release_year" validate:"omitempty,gte=1800,lte=3000"`
	Genre       *string `json:"genre" validate:"omitempty,max=100"`
	Synopsis    *string `json:"synopsis"`
}

type PaginationRequest struct {
	Skip  int `query:"skip" json:"skip" validate:"gte=0"`
	Limit int `query:"limit" json:"limit" validate:"gte=0,lte=1000"`
}

// Movie validates the body of movie create and update.
func Movie() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MovieRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"body": "Invalid request body!"})
		}
		reqData.Title = strings.TrimSpace(reqData.Title)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMovie", reqData)
		return c.Next()
	}
}

// ReleaseYear checks the :release_year path parameter.
func ReleaseYear() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, ok := validators.ParamInt(c, "release_year")
		if !ok {
			return middleware.ValidationErrorResponse(c, map[string]string{"release_year": "release_year must be an integer"})
		}
		c.Locals("releaseYear", year)
		return c.Next()
	}
}

// Pagination parses skip and limit, defaulting to 0 and 10.
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &PaginationRequest{Skip: 0, Limit: 10}
		if err := c.QueryParser(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"query": "skip and limit must be integers"})
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("pagination", reqData)
		return c.Next()
	}
}
