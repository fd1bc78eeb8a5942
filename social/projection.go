package social

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pixelgram-app/pixelgram-backend/model"
)

/*

Read-side projections returned by the engine. Counts and the
viewer-relative flags (is_liked, is_owner) are computed per request
from the rows, never stored, so they can't drift from the actual
like/comment state.

*/

type AuthorView struct {
	Id              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	ProfilePhotoUrl *string `json:"profile_photo_url"`
}

type PostView struct {
	Id            string     `json:"id"`
	Content       string     `json:"content"`
	ImageUrl      *string    `json:"image_url"`
	User          AuthorView `json:"user"`
	LikesCount    int64      `json:"likes_count"`
	CommentsCount int64      `json:"comments_count"`
	IsLiked       bool       `json:"is_liked"`
	IsOwner       bool       `json:"is_owner"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CommentView struct {
	Id        string     `json:"id"`
	PostID    string     `json:"post_id"`
	Body      string     `json:"comment"`
	User      AuthorView `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type LikeView struct {
	Id        string     `json:"id"`
	User      AuthorView `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
}

type LikeToggle struct {
	PostID     string `json:"post_id"`
	IsLiked    bool   `json:"is_liked"`
	LikesCount int64  `json:"likes_count"`
}

func (e *Engine) authorView(user *model.User) AuthorView {
	view := AuthorView{
		Id:    user.Id,
		Name:  user.Name,
		Email: user.Email,
	}
	if user.ProfilePhoto != "" {
		url := e.files.GetUrlFromKey(user.ProfilePhoto)
		view.ProfilePhotoUrl = &url
	}
	return view
}

func (e *Engine) postView(post *model.Post, viewerID string) (*PostView, error) {
	view := PostView{
		Id:        post.Id,
		Content:   post.Content,
		User:      e.authorView(&post.User),
		IsOwner:   post.UserID == viewerID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if post.ImagePath != "" {
		url := e.files.GetUrlFromKey(post.ImagePath)
		view.ImageUrl = &url
	}

	if err := e.db.Model(&model.Like{}).Where("post_id = ?", post.Id).Count(&view.LikesCount).Error; err != nil {
		return nil, errors.Wrap(err, "fail to count likes")
	}
	if err := e.db.Model(&model.Comment{}).Where("post_id = ?", post.Id).Count(&view.CommentsCount).Error; err != nil {
		return nil, errors.Wrap(err, "fail to count comments")
	}

	result := e.db.Model(&model.Like{}).
		Where("post_id = ? AND user_id = ?", post.Id, viewerID).
		First(&model.Like{})
	if result.Error == nil {
		view.IsLiked = true
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(result.Error, "fail to read like state")
	}
	return &view, nil
}

func (e *Engine) commentView(comment *model.Comment) CommentView {
	return CommentView{
		Id:        comment.Id,
		PostID:    comment.PostID,
		Body:      comment.Body,
		User:      e.authorView(&comment.User),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func (e *Engine) likeView(like *model.Like) LikeView {
	return LikeView{
		Id:        like.Id,
		User:      e.authorView(&like.User),
		CreatedAt: like.CreatedAt,
	}
}
