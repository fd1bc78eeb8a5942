package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pixelgram-app/pixelgram-backend/file_store"
	"github.com/pixelgram-app/pixelgram-backend/social"
	"github.com/pixelgram-app/pixelgram-backend/utils"
)

const (
	maxImageSize      = 2 << 20 // 2MB
	maxPostContentLen = 1000
)

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// PostUploadHandler creates a post from a multipart form: a required
// image plus optional text content. The image goes to the media store
// first, only its key is persisted on the post.
func PostUploadHandler(engine *social.Engine, files file_store.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		fieldErrors := map[string]string{}

		content := c.PostForm("content")
		if len(content) > maxPostContentLen {
			fieldErrors["content"] = "The content may not be greater than 1000 characters"
		}

		header, err := c.FormFile("image")
		if err != nil {
			fieldErrors["image"] = "The image field is required"
		} else {
			if header.Size > maxImageSize {
				fieldErrors["image"] = "The image may not be greater than 2048 kilobytes"
			}
			if !allowedImageExts[utils.GetUrlExtNameWithDot(header.Filename)] {
				fieldErrors["image"] = "The image must be a file of type: jpeg, png, jpg, gif"
			}
		}
		if len(fieldErrors) > 0 {
			respondValidationError(c, fieldErrors)
			return
		}

		file, err := header.Open()
		if err != nil {
			respondEngineError(c, err)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		key, err := files.Store(data, header.Filename)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		view, err := engine.CreatePost(actorID(c), strings.TrimSpace(content), key)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Upload successful", view)
	}
}

// PostsIndexHandler returns the global feed, newest first, paginated.
func PostsIndexHandler(engine *social.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, perPage := pageParams(c)
		views, total, err := engine.ListPosts(actorID(c), page, perPage)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusOK, "OK", utils.Paginate(views, page, perPage, len(views), total))
	}
}

func PostShowHandler(engine *social.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := engine.GetPost(actorID(c), c.Param("id"))
		if err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusOK, "OK", view)
	}
}

type updatePostRequest struct {
	Content *string `json:"content"`
}

// PostUpdateHandler edits the post's text content. Image and owner are
// fixed at creation, the request simply has no way to address them.
func PostUpdateHandler(engine *social.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, map[string]string{"content": "The content must be a string"})
			return
		}
		if req.Content != nil && len(*req.Content) > maxPostContentLen {
			respondValidationError(c, map[string]string{"content": "The content may not be greater than 1000 characters"})
			return
		}

		view, err := engine.UpdatePost(actorID(c), c.Param("id"), req.Content)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusOK, "Post updated", view)
	}
}

func PostDeleteHandler(engine *social.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := engine.DeletePost(actorID(c), c.Param("id")); err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusOK, "Post deleted", nil)
	}
}
