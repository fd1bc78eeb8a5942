package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pixelgram-app/pixelgram-backend/social"
	"github.com/pixelgram-app/pixelgram-backend/utils"
)

const maxCommentLen = 500

type commentRequest struct {
	Comment string `json:"comment"`
}

func validateCommentBody(body string) map[string]string {
	if strings.TrimSpace(body) == "" {
		return map[string]string{"comment": "The comment field is required"}
	}
	if len(body) > maxCommentLen {
		return map[string]string{"comment": "The comment may not be greater than 500 characters"}
	}
	return nil
}

func CommentCreateHandler(engine *social.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req commentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, map[string]string{"comment": "The comment field is required"})
			return
		}
		if fieldErrors := validateCommentBody(req.Comment); fieldErrors != nil {
			respondValidationError(c, fieldErrors)
			return
		}

		view, err := engine.CreateComment(actorID(c), c.Param("id"), strings.TrimSpace(req.Comment))
		if err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Comment added", view)
	}
}

func CommentsIndexHandler(engine *social.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID := c.Param("id")
		page, perPage := pageParams(c)
		views, total, err := engine.ListComments(postID, page, perPage)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusOK, "OK", gin.H{
			"post_id":        postID,
			"comments_count": total,
			"comments":       utils.Paginate(views, page, perPage, len(views), total),
		})
	}
}

func CommentUpdateHandler(engine *social.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req commentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, map[string]string{"comment": "The comment field is required"})
			return
		}
		if fieldErrors := validateCommentBody(req.Comment); fieldErrors != nil {
			respondValidationError(c, fieldErrors)
			return
		}

		view, err := engine.UpdateComment(actorID(c), c.Param("id"), c.Param("commentId"), strings.TrimSpace(req.Comment))
		if err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusOK, "Comment updated", view)
	}
}

func CommentDeleteHandler(engine *social.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := engine.DeleteComment(actorID(c), c.Param("id"), c.Param("commentId")); err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusOK, "Comment deleted", nil)
	}
}
