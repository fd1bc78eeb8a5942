package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pixelgram-app/pixelgram-backend/auth"
)

const (
	// UserIDKey is the gin context key holding the authenticated user id.
	UserIDKey = "userID"
	// TokenIDKey is the gin context key holding the id of the presented
	// token, needed by logout to revoke exactly that token.
	TokenIDKey = "tokenID"
)

// Auth validates the "Authorization: Bearer <token>" header on every
// request and stores the authenticated user id on the context. It
// returns 401 when the token is missing, malformed, expired or revoked.
func Auth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthenticated",
			})
			return
		}

		userID, tokenID, err := issuer.Authenticate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthenticated",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenIDKey, tokenID)
		c.Next()
	}
}
