package models

import "time"

type Movie struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"not null;index;size:255" json:"title"`
	ReleaseYear *int    `gorm:"index" json:"release_year"`
	Genre       *string `gorm:"size:100" json:"genre"`
	Synopsis    *string `gorm:"type:text" json:"synopsis"`
	// Rating is the mean of the movie's ratings, nil when it has none. Only the aggregation engine writes it.
	Rating    *float64  `json:"rating"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Owner     User      `gorm:"foreignKey:OwnerID" json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
