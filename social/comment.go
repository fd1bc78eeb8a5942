package social

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pixelgram-app/pixelgram-backend/model"
)

// loadComment fetches a comment scoped to its post, so a valid comment
// id under the wrong post still reads as not found.
func (e *Engine) loadComment(postID, commentID string) (*model.Comment, error) {
	var comment model.Comment
	queryResult := e.db.Preload("User").
		Where("post_id = ? AND id = ?", postID, commentID).
		First(&comment)
	if queryResult.RowsAffected != 1 {
		if queryResult.Error != nil && !errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(queryResult.Error, "fail to load comment")
		}
		return nil, ErrCommentNotFound
	}
	return &comment, nil
}

// CreateComment adds a comment to a post. Any authenticated user may
// comment on any post, ownership only matters for mutation.
func (e *Engine) CreateComment(userID, postID, body string) (*CommentView, error) {
	if _, err := e.loadPost(postID); err != nil {
		return nil, err
	}
	var user model.User
	queryResult := e.db.Where("id = ?", userID).First(&user)
	if queryResult.RowsAffected != 1 {
		return nil, ErrUserNotFound
	}

	comment := model.Comment{
		Id:     uuid.New().String(),
		PostID: postID,
		UserID: userID,
		Body:   body,
	}
	if err := e.db.Create(&comment).Error; err != nil {
		return nil, errors.Wrap(err, "fail to create comment")
	}
	comment.User = user
	view := e.commentView(&comment)
	return &view, nil
}

// ListComments returns one page of a post's comments, newest first,
// plus the total comment count on the post.
func (e *Engine) ListComments(postID string, page, perPage int) ([]*CommentView, int64, error) {
	if _, err := e.loadPost(postID); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := e.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "fail to count comments")
	}

	var comments []*model.Comment
	err := e.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&comments).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "fail to list comments")
	}

	views := []*CommentView{}
	for _, comment := range comments {
		view := e.commentView(comment)
		views = append(views, &view)
	}
	return views, total, nil
}

// UpdateComment replaces the comment body. Only the author may do it,
// and only the body is mutable.
func (e *Engine) UpdateComment(actorID, postID, commentID, body string) (*CommentView, error) {
	comment, err := e.loadComment(postID, commentID)
	if err != nil {
		return nil, err
	}
	if !CanMutateComment(actorID, comment) {
		return nil, ErrNotOwner
	}

	comment.Body = body
	if err := e.db.Model(comment).Update("body", body).Error; err != nil {
		return nil, errors.Wrap(err, "fail to update comment")
	}
	view := e.commentView(comment)
	return &view, nil
}

// DeleteComment removes a comment. Only the author may do it.
func (e *Engine) DeleteComment(actorID, postID, commentID string) error {
	comment, err := e.loadComment(postID, commentID)
	if err != nil {
		return err
	}
	if !CanMutateComment(actorID, comment) {
		return ErrNotOwner
	}
	return errors.Wrap(e.db.Delete(&model.Comment{}, "id = ?", comment.Id).Error, "fail to delete comment")
}
