// Package commentService maintains each movie's forest of threaded comments.
//
// Comments are stored flat with an explicit parent_comment_id. Deletion collects the
// whole subtree from an in-memory index of the movie's comments and removes it
// deepest level first, so no reply is ever left pointing at a deleted parent.
package commentService

import (
	"errors"
	"fmt"
	"movieapi/errs"
	"movieapi/metrics"
	"movieapi/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateInput struct {
	MovieID         uint
	Comment         string
	ParentCommentID *uint
}

// Create adds a comment to an existing movie. A reply's parent must exist and belong to the same movie.
func Create(tx *gorm.DB, userID uint, in CreateInput) (*models.Comment, error) {
	var movie models.Movie
	if err := tx.Select("id").First(&movie, in.MovieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Movie not found")
		}
		return nil, err
	}

	if in.ParentCommentID != nil {
		var parent models.Comment
		if err := tx.Select("id", "movie_id").First(&parent, *in.ParentCommentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFound("Parent comment not found")
			}
			return nil, err
		}
		if parent.MovieID != movie.ID {
			return nil, errs.Invalid("Parent comment belongs to a different movie")
		}
	}

	comment := &models.Comment{
		UserID:          userID,
		MovieID:         movie.ID,
		Comment:         in.Comment,
		ParentCommentID: in.ParentCommentID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return Get(tx, comment.ID)
}

// Get loads a comment with its author, movie and movie owner.
func Get(tx *gorm.DB, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := withRelations(tx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// ListByMovie returns the movie's comments flat, in creation order.
func ListByMovie(tx *gorm.DB, movieID uint) ([]models.Comment, error) {
	return list(tx, "movie_id = ?", movieID)
}

func ListByUser(tx *gorm.DB, userID uint) ([]models.Comment, error) {
	return list(tx, "user_id = ?", userID)
}

func list(tx *gorm.DB, query string, arg interface{}) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := withRelations(tx).Where(query, arg).Order("created_at").Order("id").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Delete removes the comment and every transitive reply. It returns the removed ids, root first.
func Delete(tx *gorm.DB, comment *models.Comment) ([]uint, error) {
	f, err := loadForest(tx, comment.MovieID)
	if err != nil {
		return nil, err
	}

	levels := f.subtree(comment.ID)
	if err := deleteLevels(tx, levels); err != nil {
		return nil, err
	}

	ids := flatten(levels)
	metrics.CommentsDeleted.Add(float64(len(ids)))
	return ids, nil
}

// DeleteForMovie removes a movie's whole comment forest.
func DeleteForMovie(tx *gorm.DB, movieID uint) ([]uint, error) {
	f, err := loadForest(tx, movieID)
	if err != nil {
		return nil, err
	}

	levels := f.all()
	if err := deleteLevels(tx, levels); err != nil {
		return nil, err
	}
	// anything unreachable from a root would be a corrupt chain; sweep it too
	if err := tx.Where("movie_id = ?", movieID).Delete(&models.Comment{}).Error; err != nil {
		return nil, fmt.Errorf("delete comments of movie %d: %w", movieID, err)
	}

	ids := flatten(levels)
	metrics.CommentsDeleted.Add(float64(len(ids)))
	return ids, nil
}

func loadForest(tx *gorm.DB, movieID uint) (*forest, error) {
	var nodes []node
	err := tx.Model(&models.Comment{}).
		Select("id", "parent_comment_id").
		Where("movie_id = ?", movieID).
		Order("id").
		Find(&nodes).Error
	if err != nil {
		return nil, fmt.Errorf("load comments of movie %d: %w", movieID, err)
	}
	return newForest(nodes), nil
}

// deleteBatchSize keeps each IN list well under the drivers' bind parameter limits.
const deleteBatchSize = 1000

func deleteLevels(tx *gorm.DB, levels [][]uint) error {
	for i := len(levels) - 1; i >= 0; i-- {
		for _, batch := range chunk(levels[i], deleteBatchSize) {
			if err := tx.Where("id IN ?", batch).Delete(&models.Comment{}).Error; err != nil {
				return fmt.Errorf("delete comments: %w", err)
			}
		}
	}
	return nil
}

func chunk(ids []uint, size int) [][]uint {
	batches := make([][]uint, 0, (len(ids)+size-1)/size)
	for len(ids) > size {
		batches = append(batches, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		batches = append(batches, ids)
	}
	return batches
}

func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("User").Preload("Movie").Preload("Movie.Owner")
}
