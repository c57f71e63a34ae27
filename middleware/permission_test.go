package middleware

import (
	"movieapi/errs"
	"movieapi/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnershipRules(t *testing.T) {
	alice := &models.User{ID: 1}
	bob := &models.User{ID: 2}
	movie := &models.Movie{ID: 10, OwnerID: alice.ID}
	rating := &models.Rating{ID: 20, UserID: alice.ID}
	comment := &models.Comment{ID: 30, UserID: alice.ID}

	assert.NoError(t, CanModifyMovie(alice, movie))
	assert.ErrorIs(t, CanModifyMovie(bob, movie), errs.ErrForbidden)
	assert.ErrorIs(t, CanModifyMovie(nil, movie), errs.ErrForbidden)

	assert.NoError(t, CanDeleteRating(alice, rating))
	assert.ErrorIs(t, CanDeleteRating(bob, rating), errs.ErrForbidden)
	assert.ErrorIs(t, CanDeleteRating(alice, nil), errs.ErrForbidden)

	assert.NoError(t, CanDeleteComment(alice, comment))
	assert.ErrorIs(t, CanDeleteComment(bob, comment), errs.ErrForbidden)
}
