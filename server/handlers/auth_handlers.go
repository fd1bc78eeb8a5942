package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/pixelgram-app/pixelgram-backend/auth"
	"github.com/pixelgram-app/pixelgram-backend/file_store"
	"github.com/pixelgram-app/pixelgram-backend/model"
	"github.com/pixelgram-app/pixelgram-backend/server/middlewares"
	"github.com/pixelgram-app/pixelgram-backend/social"
	"github.com/pixelgram-app/pixelgram-backend/utils"
	Logger "github.com/pixelgram-app/pixelgram-backend/utils/log"
)

const (
	maxNameLen     = 255
	maxEmailLen    = 255
	minPasswordLen = 8
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func emailTaken(db *gorm.DB, email, excludeUserID string) bool {
	var count int64
	db.Model(&model.User{}).
		Where("email = ? AND id != ?", email, excludeUserID).
		Count(&count)
	return count > 0
}

// RegisterHandler creates a user account and issues its first token.
func RegisterHandler(db *gorm.DB, issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, map[string]string{"body": "Malformed request body"})
			return
		}

		fieldErrors := map[string]string{}
		if strings.TrimSpace(req.Name) == "" || len(req.Name) > maxNameLen {
			fieldErrors["name"] = "The name field is required"
		}
		if !emailRegex.MatchString(req.Email) || len(req.Email) > maxEmailLen {
			fieldErrors["email"] = "The email must be a valid email address"
		} else if emailTaken(db, req.Email, "") {
			fieldErrors["email"] = "The email has already been taken"
		}
		if len(req.Password) < minPasswordLen {
			fieldErrors["password"] = "The password must be at least 8 characters"
		}
		if len(fieldErrors) > 0 {
			respondValidationError(c, fieldErrors)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		user := model.User{
			Id:           uuid.New().String(),
			Name:         strings.TrimSpace(req.Name),
			Email:        req.Email,
			PasswordHash: hash,
		}
		if err := db.Create(&user).Error; err != nil {
			// unique index race on email
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				respondValidationError(c, map[string]string{"email": "The email has already been taken"})
				return
			}
			respondEngineError(c, err)
			return
		}

		token, err := issuer.Issue(user.Id)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Registration successful", gin.H{
			"user":       userResponse{Id: user.Id, Name: user.Name, Email: user.Email},
			"token":      token,
			"token_type": "Bearer",
		})
	}
}

func LoginHandler(db *gorm.DB, issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, map[string]string{"body": "Malformed request body"})
			return
		}
		fieldErrors := map[string]string{}
		if !emailRegex.MatchString(req.Email) {
			fieldErrors["email"] = "The email must be a valid email address"
		}
		if req.Password == "" {
			fieldErrors["password"] = "The password field is required"
		}
		if len(fieldErrors) > 0 {
			respondValidationError(c, fieldErrors)
			return
		}

		var user model.User
		queryResult := db.Where("email = ?", req.Email).First(&user)
		if queryResult.RowsAffected != 1 || !auth.VerifyPassword(req.Password, user.PasswordHash) {
			respond(c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}

		token, err := issuer.Issue(user.Id)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusOK, "Login successful", gin.H{
			"user":       userResponse{Id: user.Id, Name: user.Name, Email: user.Email},
			"token":      token,
			"token_type": "Bearer",
		})
	}
}

func profilePhotoUrl(files file_store.FileStore, user *model.User) *string {
	if user.ProfilePhoto == "" {
		return nil
	}
	url := files.GetUrlFromKey(user.ProfilePhoto)
	return &url
}

// MeHandler returns the caller's own profile with a paginated list of
// their posts.
func MeHandler(db *gorm.DB, engine *social.Engine, files file_store.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := actorID(c)
		var user model.User
		queryResult := db.Where("id = ?", userID).First(&user)
		if queryResult.RowsAffected != 1 {
			respondEngineError(c, social.ErrUserNotFound)
			return
		}

		page, perPage := pageParams(c)
		views, total, err := engine.ListPostsByUser(userID, userID, page, perPage)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		respond(c, http.StatusOK, "OK", gin.H{
			"user": gin.H{
				"id":                user.Id,
				"name":              user.Name,
				"email":             user.Email,
				"profile_photo_url": profilePhotoUrl(files, &user),
				"created_at":        user.CreatedAt,
			},
			"posts": utils.Paginate(views, page, perPage, len(views), total),
		})
	}
}

// ProfileHandler returns another user's profile with their posts. The
// viewer-relative is_liked flag on each post is computed for the
// caller, not the profile owner.
func ProfileHandler(db *gorm.DB, engine *social.Engine, files file_store.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.Param("id")
		var user model.User
		queryResult := db.Where("id = ?", profileID).First(&user)
		if queryResult.RowsAffected != 1 {
			respondEngineError(c, social.ErrUserNotFound)
			return
		}

		page, perPage := pageParams(c)
		views, total, err := engine.ListPostsByUser(actorID(c), profileID, page, perPage)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		respond(c, http.StatusOK, "OK", gin.H{
			"user": gin.H{
				"id":                user.Id,
				"name":              user.Name,
				"email":             user.Email,
				"profile_photo_url": profilePhotoUrl(files, &user),
				"created_at":        user.CreatedAt,
			},
			"is_own_profile": profileID == actorID(c),
			"posts":          utils.Paginate(views, page, perPage, len(views), total),
		})
	}
}

// UpdateProfileHandler applies a partial profile update: name, email,
// password and profile photo, each only when present in the form. A
// replaced photo is released from the media store best effort.
func UpdateProfileHandler(db *gorm.DB, files file_store.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := actorID(c)
		var user model.User
		queryResult := db.Where("id = ?", userID).First(&user)
		if queryResult.RowsAffected != 1 {
			respondEngineError(c, social.ErrUserNotFound)
			return
		}

		fieldErrors := map[string]string{}
		if name, ok := c.GetPostForm("name"); ok {
			if strings.TrimSpace(name) == "" || len(name) > maxNameLen {
				fieldErrors["name"] = "The name may not be greater than 255 characters"
			} else {
				user.Name = strings.TrimSpace(name)
			}
		}
		if email, ok := c.GetPostForm("email"); ok {
			if !emailRegex.MatchString(email) || len(email) > maxEmailLen {
				fieldErrors["email"] = "The email must be a valid email address"
			} else if emailTaken(db, email, userID) {
				fieldErrors["email"] = "The email has already been taken"
			} else {
				user.Email = email
			}
		}
		if password, ok := c.GetPostForm("password"); ok {
			if len(password) < minPasswordLen {
				fieldErrors["password"] = "The password must be at least 8 characters"
			} else {
				hash, err := auth.HashPassword(password)
				if err != nil {
					respondEngineError(c, err)
					return
				}
				user.PasswordHash = hash
			}
		}

		var oldPhoto string
		if header, err := c.FormFile("profile_photo"); err == nil {
			if header.Size > maxImageSize {
				fieldErrors["profile_photo"] = "The profile photo may not be greater than 2048 kilobytes"
			} else if !allowedImageExts[utils.GetUrlExtNameWithDot(header.Filename)] {
				fieldErrors["profile_photo"] = "The profile photo must be a file of type: jpeg, png, jpg, gif"
			} else {
				file, err := header.Open()
				if err != nil {
					respondEngineError(c, err)
					return
				}
				data, err := io.ReadAll(file)
				file.Close()
				if err != nil {
					respondEngineError(c, err)
					return
				}
				key, err := files.Store(data, header.Filename)
				if err != nil {
					respondEngineError(c, err)
					return
				}
				oldPhoto = user.ProfilePhoto
				user.ProfilePhoto = key
			}
		}

		if len(fieldErrors) > 0 {
			respondValidationError(c, fieldErrors)
			return
		}

		if err := db.Save(&user).Error; err != nil {
			respondEngineError(c, err)
			return
		}
		if oldPhoto != "" && oldPhoto != user.ProfilePhoto {
			if err := files.Delete(oldPhoto); err != nil {
				Logger.Log.Warnf("fail to release replaced profile photo %s: %v", oldPhoto, err)
			}
		}

		respond(c, http.StatusOK, "Profile updated", gin.H{
			"id":                user.Id,
			"name":              user.Name,
			"email":             user.Email,
			"profile_photo_url": profilePhotoUrl(files, &user),
			"updated_at":        user.UpdatedAt,
		})
	}
}

// LogoutHandler revokes the token the request was authenticated with.
func LogoutHandler(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := issuer.Revoke(c.GetString(middlewares.TokenIDKey)); err != nil {
			respondEngineError(c, err)
			return
		}
		respond(c, http.StatusOK, "Logout successful", nil)
	}
}
