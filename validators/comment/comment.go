package commentValidator

import (
	"movieapi/middleware"
	"movieapi/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CommentRequest struct {
	Comment         string `json:"comment" validate:"notblank,max=5000"`
	ParentCommentID *uint  `json:"parent_comment_id" validate:"omitempty,gt=0"`
}

type CreateCommentRequest struct {
	CommentRequest
	MovieID uint `json:"movie_id" validate:"required,gt=0"`
}

// CreateCommentByTitleRequest names the movie through the movie_title query parameter.
type CreateCommentByTitleRequest struct {
	CommentRequest
	MovieTitle string `json:"movie_title" validate:"notblank"`
}

func CreateComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCommentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"body": "Invalid request body!"})
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedComment", reqData)
		return c.Next()
	}
}

func CreateCommentByTitle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCommentByTitleRequest)
		if err := c.BodyParser(&reqData.CommentRequest); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"body": "Invalid request body!"})
		}
		reqData.MovieTitle = strings.TrimSpace(c.Query("movie_title"))

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedComment", reqData)
		return c.Next()
	}
}
