package model

import (
	"time"
)

/*

Like is a data model for a user liking a post

Id: primary key, use to identify a like
CreatedAt: time when relation is created
PostID: liked post id
UserID: liking user id

A user can hold at most one like on a post. The unique index on
(post_id, user_id) is the enforcement point for that invariant, the
toggle path relies on the duplicated key error it produces under
concurrent inserts.

*/

type Like struct {
	Id        string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"<-:create"`
	PostID    string    `gorm:"uniqueIndex:idx_like_post_user"`
	UserID    string    `gorm:"uniqueIndex:idx_like_post_user"`
	User      User
}
