package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixelgram-app/pixelgram-backend/social"
)

// LikeToggleHandler flips the caller's like on a post. There is no way
// to force a target state, the endpoint is a pure toggle.
func LikeToggleHandler(engine *social.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := engine.ToggleLike(actorID(c), c.Param("id"))
		if err != nil {
			respondEngineError(c, err)
			return
		}
		message := "Post unliked"
		if result.IsLiked {
			message = "Post liked"
		}
		respond(c, http.StatusOK, message, result)
	}
}

func LikesIndexHandler(engine *social.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID := c.Param("id")
		views, count, err := engine.ListLikes(postID)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusOK, "OK", gin.H{
			"post_id":     postID,
			"likes_count": count,
			"likes":       views,
		})
	}
}
