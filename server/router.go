package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pixelgram-app/pixelgram-backend/auth"
	"github.com/pixelgram-app/pixelgram-backend/file_store"
	"github.com/pixelgram-app/pixelgram-backend/server/handlers"
	"github.com/pixelgram-app/pixelgram-backend/server/middlewares"
	"github.com/pixelgram-app/pixelgram-backend/social"
)

// NewRouter builds the full API surface. Register and login are
// public, everything else sits behind the bearer token middleware.
func NewRouter(db *gorm.DB, engine *social.Engine, issuer *auth.TokenIssuer, files file_store.FileStore) *gin.Engine {
	// Default with the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())

	api := router.Group("/api")
	api.POST("/register", handlers.RegisterHandler(db, issuer))
	api.POST("/login", handlers.LoginHandler(db, issuer))

	authed := api.Group("", middlewares.Auth(issuer))

	authed.POST("/upload", handlers.PostUploadHandler(engine, files))
	authed.GET("/posts", handlers.PostsIndexHandler(engine))
	authed.GET("/posts/:id", handlers.PostShowHandler(engine))
	authed.PUT("/posts/:id", handlers.PostUpdateHandler(engine))
	authed.DELETE("/posts/:id", handlers.PostDeleteHandler(engine))

	authed.POST("/posts/:id/like", handlers.LikeToggleHandler(engine))
	authed.GET("/posts/:id/likes", handlers.LikesIndexHandler(engine))

	authed.POST("/posts/:id/comments", handlers.CommentCreateHandler(engine))
	authed.GET("/posts/:id/comments", handlers.CommentsIndexHandler(engine))
	authed.PUT("/posts/:id/comments/:commentId", handlers.CommentUpdateHandler(engine))
	authed.DELETE("/posts/:id/comments/:commentId", handlers.CommentDeleteHandler(engine))

	authed.GET("/me", handlers.MeHandler(db, engine, files))
	authed.PUT("/me", handlers.UpdateProfileHandler(db, files))
	authed.GET("/users/:id", handlers.ProfileHandler(db, engine, files))
	authed.POST("/logout", handlers.LogoutHandler(issuer))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Pixelgram server - API not found"})
	})

	return router
}
