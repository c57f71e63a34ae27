// Package ratingService owns ratings and keeps each movie's aggregate rating in step with them.
//
// Every function takes the caller's transaction. Create and Delete recompute the parent
// movie's aggregate inside that same transaction, so a committed rating change is never
// observable next to a stale movie.rating.
package ratingService

import (
	"database/sql"
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
	MovieID uint
	Score   int
	Review  *string
}

// Recompute writes the mean of the movie's ratings onto movies.rating and returns it.
// The result is nil, not zero, when the movie has no ratings left.
func Recompute(tx *gorm.DB, movieID uint) (*float64, error) {
	start := time.Now()
	defer func() { metrics.RecomputeDuration.Observe(time.Since(start).Seconds()) }()

	var avg sql.NullFloat64
	row := tx.Model(&models.Rating{}).Select("AVG(rating)").Where("movie_id = ?", movieID).Row()
	if err := row.Scan(&avg); err != nil {
		return nil, fmt.Errorf("average ratings of movie %d: %w", movieID, err)
	}

	var value *float64
	if avg.Valid {
		v := avg.Float64
		value = &v
	}

	if err := tx.Model(&models.Movie{}).Where("id = ?", movieID).Update("rating", value).Error; err != nil {
		return nil, fmt.Errorf("store rating of movie %d: %w", movieID, err)
	}
	return value, nil
}

// ReconcileAll recomputes every movie's aggregate in one statement and returns the number of movies touched.
func ReconcileAll(tx *gorm.DB) (int64, error) {
	avg := tx.Model(&models.Rating{}).Select("AVG(rating)").Where("ratings.movie_id = movies.id")
	res := tx.Model(&models.Movie{}).Where("1 = 1").Update("rating", avg)
	if res.Error != nil {
		return 0, fmt.Errorf("reconcile ratings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Create inserts a rating for an existing movie and recomputes the movie's aggregate.
func Create(tx *gorm.DB, userID uint, in CreateInput) (*models.Rating, error) {
	var movie models.Movie
	if err := tx.Select("id").First(&movie, in.MovieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Movie not found")
		}
		return nil, err
	}

	rating := &models.Rating{
		UserID:  userID,
		MovieID: movie.ID,
		Rating:  in.Score,
		Review:  in.Review,
	}
	if err := tx.Omit(clause.Associations).Create(rating).Error; err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}

	if _, err := Recompute(tx, movie.ID); err != nil {
		return nil, err
	}

	metrics.RatingsCreated.Inc()
	return Get(tx, rating.ID)
}

// Delete removes the rating and recomputes its movie over the remaining ratings.
// The returned rating carries the movie as it stands after recomputation.
func Delete(tx *gorm.DB, rating *models.Rating) (*models.Rating, error) {
	if err := tx.Delete(&models.Rating{}, rating.ID).Error; err != nil {
		return nil, fmt.Errorf("delete rating: %w", err)
	}

	avg, err := Recompute(tx, rating.MovieID)
	if err != nil {
		return nil, err
	}
	rating.Movie.Rating = avg

	metrics.RatingsDeleted.Inc()
	return rating, nil
}

// Get loads a rating with its author, movie and movie owner.
func Get(tx *gorm.DB, id uint) (*models.Rating, error) {
	var rating models.Rating
	err := withRelations(tx).First(&rating, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Rating not found")
		}
		return nil, err
	}
	return &rating, nil
}

func ListByMovie(tx *gorm.DB, movieID uint) ([]models.Rating, error) {
	return list(tx, "movie_id = ?", movieID)
}

func ListByUser(tx *gorm.DB, userID uint) ([]models.Rating, error) {
	return list(tx, "user_id = ?", userID)
}

// ListByScore returns ratings with exactly this score.
func ListByScore(tx *gorm.DB, score int) ([]models.Rating, error) {
	return list(tx, "rating = ?", score)
}

func list(tx *gorm.DB, query string, arg interface{}) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := withRelations(tx).Where(query, arg).Order("id").Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("User").Preload("Movie").Preload("Movie.Owner")
}
