// Package social is the single point through which posts, likes and
// comments are mutated. It enforces the ownership rules, the
// one-like-per-user invariant and the cascade semantics of post
// deletion, and builds the denormalized read projections.
package social

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pixelgram-app/pixelgram-backend/file_store"
	"github.com/pixelgram-app/pixelgram-backend/model"
	Logger "github.com/pixelgram-app/pixelgram-backend/utils/log"
)

type Engine struct {
	db    *gorm.DB
	files file_store.FileStore
}

func NewEngine(db *gorm.DB, files file_store.FileStore) *Engine {
	return &Engine{db: db, files: files}
}

// loadPost fetches a post with its author, translating a missing row
// into ErrPostNotFound so callers never see the storage-layer error.
func (e *Engine) loadPost(postID string) (*model.Post, error) {
	var post model.Post
	queryResult := e.db.Preload("User").Where("id = ?", postID).First(&post)
	if queryResult.RowsAffected != 1 {
		if queryResult.Error != nil && !errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(queryResult.Error, "fail to load post")
		}
		return nil, ErrPostNotFound
	}
	return &post, nil
}

// CreatePost publishes a new post. The image is already persisted in
// the media store, imageKey is its handle and never changes afterwards.
func (e *Engine) CreatePost(userID, content, imageKey string) (*PostView, error) {
	var user model.User
	queryResult := e.db.Where("id = ?", userID).First(&user)
	if queryResult.RowsAffected != 1 {
		return nil, ErrUserNotFound
	}

	post := model.Post{
		Id:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		ImagePath: imageKey,
	}
	if err := e.db.Create(&post).Error; err != nil {
		return nil, errors.Wrap(err, "fail to create post")
	}
	post.User = user
	return e.postView(&post, userID)
}

func (e *Engine) GetPost(viewerID, postID string) (*PostView, error) {
	post, err := e.loadPost(postID)
	if err != nil {
		return nil, err
	}
	return e.postView(post, viewerID)
}

// ListPosts returns one page of the global feed, newest first, plus the
// total number of posts.
func (e *Engine) ListPosts(viewerID string, page, perPage int) ([]*PostView, int64, error) {
	return e.listPosts(viewerID, "", page, perPage)
}

// ListPostsByUser returns one page of a single user's posts, newest
// first. Fails with ErrUserNotFound for an unknown user.
func (e *Engine) ListPostsByUser(viewerID, ownerID string, page, perPage int) ([]*PostView, int64, error) {
	queryResult := e.db.Where("id = ?", ownerID).First(&model.User{})
	if queryResult.RowsAffected != 1 {
		return nil, 0, ErrUserNotFound
	}
	return e.listPosts(viewerID, ownerID, page, perPage)
}

// listPosts pages through posts newest first, optionally scoped to one
// owner. ownerID empty means the global feed.
func (e *Engine) listPosts(viewerID, ownerID string, page, perPage int) ([]*PostView, int64, error) {
	scoped := func() *gorm.DB {
		query := e.db.Model(&model.Post{})
		if ownerID != "" {
			query = query.Where("user_id = ?", ownerID)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "fail to count posts")
	}

	var posts []*model.Post
	err := scoped().Preload("User").
		Order("created_at desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "fail to list posts")
	}

	views := []*PostView{}
	for _, post := range posts {
		view, err := e.postView(post, viewerID)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// UpdatePost replaces the post's text content. Only the owner may do
// it, and only the content is mutable: owner and image are fixed at
// creation. A nil content leaves the post as it is.
func (e *Engine) UpdatePost(actorID, postID string, content *string) (*PostView, error) {
	post, err := e.loadPost(postID)
	if err != nil {
		return nil, err
	}
	if !CanMutatePost(actorID, post) {
		return nil, ErrNotOwner
	}

	if content != nil {
		post.Content = *content
		if err := e.db.Model(post).Update("content", *content).Error; err != nil {
			return nil, errors.Wrap(err, "fail to update post")
		}
	}
	return e.postView(post, actorID)
}

// DeletePost removes a post and everything hanging off it. Dependent
// likes and comments go first, then the post row, all in one
// transaction: either the post and its dependents are gone or nothing
// is, so a failed delete can simply be retried. The attached image is
// released after commit, best effort only, because the post row is the
// source of truth and an orphaned file is harmless.
func (e *Engine) DeletePost(actorID, postID string) error {
	post, err := e.loadPost(postID)
	if err != nil {
		return err
	}
	if !CanMutatePost(actorID, post) {
		return ErrNotOwner
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", postID).Error
	})
	if err != nil {
		return errors.Wrap(err, "fail to delete post")
	}

	if post.ImagePath != "" {
		if err := e.files.Delete(post.ImagePath); err != nil {
			Logger.Log.Error(fmt.Sprintf("fail to release media %s of deleted post %s: %v", post.ImagePath, postID, err))
		}
	}
	return nil
}
