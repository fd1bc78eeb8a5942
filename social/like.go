package social

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pixelgram-app/pixelgram-backend/model"
	Logger "github.com/pixelgram-app/pixelgram-backend/utils/log"
)

// ToggleLike flips the like state of (postID, userID). There is no
// explicit like or unlike verb: no row means the call inserts one,
// an existing row means the call removes it. The returned count is
// recomputed from the rows after the transition, never maintained
// incrementally.
func (e *Engine) ToggleLike(userID, postID string) (*LikeToggle, error) {
	if _, err := e.loadPost(postID); err != nil {
		return nil, err
	}

	var like model.Like
	queryResult := e.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like)

	var liked bool
	switch {
	case queryResult.Error == nil:
		if err := e.db.Delete(&model.Like{}, "id = ?", like.Id).Error; err != nil {
			return nil, errors.Wrap(err, "fail to remove like")
		}
		liked = false
	case errors.Is(queryResult.Error, gorm.ErrRecordNotFound):
		var err error
		liked, err = e.insertLike(userID, postID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrap(queryResult.Error, "fail to read like state")
	}

	count, err := e.countLikes(postID)
	if err != nil {
		return nil, err
	}
	return &LikeToggle{PostID: postID, IsLiked: liked, LikesCount: count}, nil
}

// insertLike creates the like row for (postID, userID). When two
// toggles race past the read, the unique index on (post_id, user_id)
// rejects the loser with a duplicated key error. That outcome is
// expected and recoverable, not a failure: the pair is Liked either
// way, so report the current state instead of surfacing the conflict.
func (e *Engine) insertLike(userID, postID string) (bool, error) {
	like := model.Like{
		Id:     uuid.New().String(),
		PostID: postID,
		UserID: userID,
	}
	err := e.db.Create(&like).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		Logger.Log.Info(fmt.Sprintf("concurrent like toggle on post %s by user %s, keeping existing like", postID, userID))
		return true, nil
	default:
		return false, errors.Wrap(err, "fail to create like")
	}
}

func (e *Engine) countLikes(postID string) (int64, error) {
	var count int64
	if err := e.db.Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "fail to count likes")
	}
	return count, nil
}

// ListLikes returns every like on the post, newest first, with the
// liking user. Fails with ErrPostNotFound for an unknown post.
func (e *Engine) ListLikes(postID string) ([]*LikeView, int64, error) {
	if _, err := e.loadPost(postID); err != nil {
		return nil, 0, err
	}

	var likes []*model.Like
	err := e.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at desc").
		Find(&likes).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "fail to list likes")
	}

	views := []*LikeView{}
	for _, like := range likes {
		view := e.likeView(like)
		views = append(views, &view)
	}
	return views, int64(len(views)), nil
}
