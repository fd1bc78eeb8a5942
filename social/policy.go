package social

import (
	"github.com/pixelgram-app/pixelgram-backend/model"
)

// Ownership policy for posts and comments. Ownership is absolute: no
// roles, no moderator override. Any authenticated user may create and
// view, so only the mutating actions need a predicate.

// CanMutatePost reports whether the actor may update or delete the post.
func CanMutatePost(actorID string, post *model.Post) bool {
	return actorID == post.UserID
}

// CanMutateComment reports whether the actor may update or delete the
// comment.
func CanMutateComment(actorID string, comment *model.Comment) bool {
	return actorID == comment.UserID
}
