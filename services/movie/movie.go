// Package movieService stores movies and resolves them by id, title or release year.
package movieService

import (
	"errors"
	"fmt"
	"movieapi/errs"
	"movieapi/models"
	commentService "movieapi/services/comment"
	ratingService "movieapi/services/rating"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieInput struct {
	Title       string
	ReleaseYear *int
	Genre       *string
	Synopsis    *string
}

func Create(tx *gorm.DB, ownerID uint, in MovieInput) (*models.Movie, error) {
	movie := &models.Movie{
		Title:       in.Title,
		ReleaseYear: in.ReleaseYear,
		Genre:       in.Genre,
		Synopsis:    in.Synopsis,
		OwnerID:     ownerID,
	}
	if err := tx.Omit(clause.Associations).Create(movie).Error; err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}
	return Get(tx, movie.ID)
}

// List pages through movies in id order.
func List(tx *gorm.DB, skip, limit int) ([]models.Movie, error) {
	movies := []models.Movie{}
	err := tx.Preload("Owner").Order("id").Offset(skip).Limit(limit).Find(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func Get(tx *gorm.DB, id uint) (*models.Movie, error) {
	var movie models.Movie
	return first(tx.Where("id = ?", id), &movie)
}

// FindByTitle matches the whole title case-insensitively. With duplicates the oldest movie wins.
func FindByTitle(tx *gorm.DB, title string) (*models.Movie, error) {
	var movie models.Movie
	return first(tx.Where("LOWER(title) = LOWER(?)", title), &movie)
}

func FindByReleaseYear(tx *gorm.DB, year int) (*models.Movie, error) {
	var movie models.Movie
	return first(tx.Where("release_year = ?", year), &movie)
}

func first(q *gorm.DB, movie *models.Movie) (*models.Movie, error) {
	if err := q.Preload("Owner").Order("id").First(movie).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Movie not found")
		}
		return nil, err
	}
	return movie, nil
}

// Update overwrites the editable fields. Omitted optional fields are cleared, matching a full PUT.
// The aggregate rating and the owner never change here.
func Update(tx *gorm.DB, movie *models.Movie, in MovieInput) (*models.Movie, error) {
	err := tx.Model(&models.Movie{ID: movie.ID}).
		Select("title", "release_year", "genre", "synopsis").
		Updates(models.Movie{
			Title:       in.Title,
			ReleaseYear: in.ReleaseYear,
			Genre:       in.Genre,
			Synopsis:    in.Synopsis,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("update movie %d: %w", movie.ID, err)
	}
	return Get(tx, movie.ID)
}

// Delete removes the movie together with its ratings and its whole comment forest.
func Delete(tx *gorm.DB, movie *models.Movie) (*models.Movie, error) {
	if err := tx.Where("movie_id = ?", movie.ID).Delete(&models.Rating{}).Error; err != nil {
		return nil, fmt.Errorf("delete ratings of movie %d: %w", movie.ID, err)
	}
	if _, err := commentService.DeleteForMovie(tx, movie.ID); err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.Movie{}, movie.ID).Error; err != nil {
		return nil, fmt.Errorf("delete movie %d: %w", movie.ID, err)
	}
	return movie, nil
}

// AverageByTitle returns the stored aggregate of the titled movie, 0 when it has no ratings.
func AverageByTitle(tx *gorm.DB, title string) (*models.Movie, float64, error) {
	movie, err := FindByTitle(tx, title)
	if err != nil {
		return nil, 0, err
	}
	if movie.Rating == nil {
		return movie, 0, nil
	}
	return movie, *movie.Rating, nil
}

// Rate is a convenience for rating a movie addressed by title.
func Rate(tx *gorm.DB, userID uint, title string, score int, review *string) (*models.Rating, error) {
	movie, err := FindByTitle(tx, title)
	if err != nil {
		return nil, err
	}
	return ratingService.Create(tx, userID, ratingService.CreateInput{MovieID: movie.ID, Score: score, Review: review})
}
