package commentController

import (
	"movieapi/database"
	"movieapi/middleware"
	"movieapi/models"
	commentService "movieapi/services/comment"
	movieService "movieapi/services/movie"
	commentValidator "movieapi/validators/comment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Create(c *fiber.Ctx) error {
	reqData := c.Locals("validatedComment").(*commentValidator.CreateCommentRequest)
	user := middleware.CurrentUser(c)

	var comment *models.Comment
	err := database.FromCtx(c).Transaction(func(tx *gorm.DB) error {
		var err error
		comment, err = commentService.Create(tx, user.ID, commentService.CreateInput{
			MovieID:         reqData.MovieID,
			Comment:         reqData.Comment,
			ParentCommentID: reqData.ParentCommentID,
		})
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, comment)
}

// CreateByTitle comments on the movie named by the movie_title query parameter.
func CreateByTitle(c *fiber.Ctx) error {
	reqData := c.Locals("validatedComment").(*commentValidator.CreateCommentByTitleRequest)
	user := middleware.CurrentUser(c)

	var comment *models.Comment
	err := database.FromCtx(c).Transaction(func(tx *gorm.DB) error {
		movie, err := movieService.FindByTitle(tx, reqData.MovieTitle)
		if err != nil {
			return err
		}
		comment, err = commentService.Create(tx, user.ID, commentService.CreateInput{
			MovieID:         movie.ID,
			Comment:         reqData.Comment,
			ParentCommentID: reqData.ParentCommentID,
		})
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, comment)
}

func ListByMovie(c *fiber.Ctx) error {
	list, err := commentService.ListByMovie(database.FromCtx(c), c.Locals("movie_id").(uint))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, list)
}

// ListByTitle answers 404 when no movie has the title.
func ListByTitle(c *fiber.Ctx) error {
	db := database.FromCtx(c)
	movie, err := movieService.FindByTitle(db, c.Params("movie_title"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	list, err := commentService.ListByMovie(db, movie.ID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, list)
}

func ListByUser(c *fiber.Ctx) error {
	list, err := commentService.ListByUser(database.FromCtx(c), c.Locals("user_id").(uint))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, list)
}

// Delete removes the caller's comment and every reply beneath it.
func Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var deleted []uint
	err := database.FromCtx(c).Transaction(func(tx *gorm.DB) error {
		comment, err := commentService.Get(tx, c.Locals("comment_id").(uint))
		if err != nil {
			return err
		}
		if err := middleware.CanDeleteComment(user, comment); err != nil {
			return err
		}
		deleted, err = commentService.Delete(tx, comment)
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{"deleted_ids": deleted})
}
