package model

import (
	"time"
)

/*

Comment is a data model for a comment on a post

Id: primary key, use to identify a comment
CreatedAt: time when entity is created
UpdatedAt: time when comment body is last updated
PostID: commented post id
UserID: id of the comment author, never changes after creation
User: comment author, "belongs-to" relation

Body: text body of the comment, the only mutable field

*/

type Comment struct {
	Id        string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"<-:create"`
	UpdatedAt time.Time
	PostID    string `gorm:"index"`
	UserID    string `gorm:"index"`
	User      User
	Body      string
}
