package model

import (
	"time"
)

/*

Post is a data model for a published post

Id: primary key, use to identify a post
CreatedAt: time when entity is created
UpdatedAt: time when post content is last updated
UserID: id of the user who published this post, never changes after creation
User: publishing user, "belongs-to" relation

Content: optional text content of the post
ImagePath: media store key of the attached image, set at creation and
never changes afterwards

Likes: all likes on this post, removed together with the post
Comments: all comments on this post, removed together with the post

*/

type Post struct {
	Id        string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"<-:create"`
	UpdatedAt time.Time
	UserID    string `gorm:"index"`
	User      User
	Content   string
	ImagePath string     `gorm:"<-:create"`
	Likes     []*Like    `json:"likes" gorm:"foreignKey:PostID"`
	Comments  []*Comment `json:"comments" gorm:"foreignKey:PostID"`
}
