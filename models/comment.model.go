package models

import "time"

// Comment is a node in a per-movie forest. A nil ParentCommentID marks a root comment.
// Replies are not pre-nested; clients rebuild threads from parent_comment_id.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	MovieID         uint      `gorm:"not null;index" json:"movie_id"`
	Comment         string    `gorm:"type:text;not null" json:"comment"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`

	User          User     `gorm:"foreignKey:UserID" json:"user"`
	Movie         Movie    `gorm:"foreignKey:MovieID" json:"movie"`
	ParentComment *Comment `gorm:"foreignKey:ParentCommentID" json:"-"`
}
