package middleware

import (
	"movieapi/errs"
	"movieapi/models"
)

// Ownership rules. Each returns nil when user may perform the change.

func CanModifyMovie(user *models.User, movie *models.Movie) error {
	if user == nil || movie.OwnerID != user.ID {
		return errs.Forbidden("Not authorized to modify this movie")
	}
	return nil
}

// CanDeleteRating also rejects a missing rating with 403, so the answer does not reveal which ids exist.
func CanDeleteRating(user *models.User, rating *models.Rating) error {
	if user == nil || rating == nil || rating.UserID != user.ID {
		return errs.Forbidden("Not authorized to delete this rating")
	}
	return nil
}

func CanDeleteComment(user *models.User, comment *models.Comment) error {
	if user == nil || comment.UserID != user.ID {
		return errs.Forbidden("Not authorized to delete this comment")
	}
	return nil
}
