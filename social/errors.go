package social

import (
	"github.com/pkg/errors"
)

// Outcome kinds every engine operation resolves to. Handlers map these
// onto HTTP statuses, anything else is an internal failure.
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrNotOwner means the entity exists but the actor does not own it.
	// Existence is always checked first, so callers do learn whether the
	// target exists before this fires.
	ErrNotOwner = errors.New("actor is not the owner")
)
