package model

import (
	"time"
)

/*

User is a data model for a registered user

Id: primary key, use to identify a user
CreatedAt: time when entity is created
UpdatedAt: time when profile is last updated

Name: display name of a user, can be changed, don't need to be unique
Email: login email, unique across all users
PasswordHash: bcrypt hash of the user's password, never serialized
ProfilePhoto: media store key of the user's profile photo, empty if not set
Posts: posts that this user published, "has-many" relation

*/

type User struct {
	Id           string    `gorm:"primaryKey"`
	CreatedAt    time.Time `gorm:"<-:create"`
	UpdatedAt    time.Time
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	ProfilePhoto string
	Posts        []*Post `json:"posts" gorm:"foreignKey:UserID"`
}
