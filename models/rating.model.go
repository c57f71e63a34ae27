package models

import "time"

// Score bounds enforced on incoming rating requests
const (
	MinScore = 1
	MaxScore = 10
)

type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	MovieID   uint      `gorm:"not null;index" json:"movie_id"`
	Rating    int       `gorm:"not null;index" json:"rating"`
	Review    *string   `gorm:"type:text" json:"review"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"user"`
	Movie Movie `gorm:"foreignKey:MovieID" json:"movie"`
}
