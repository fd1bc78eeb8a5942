// Package auth is the identity store: password hashing and bearer
// token issue/verify. Tokens are HS256 JWTs whose jti points at an
// AccessToken row, so logout can revoke a token before it expires.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pixelgram-app/pixelgram-backend/model"
)

const TokenTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "fail to hash password")
	}
	return string(hash), nil
}

func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type TokenIssuer struct {
	db     *gorm.DB
	secret []byte
}

func NewTokenIssuer(db *gorm.DB, secret string) *TokenIssuer {
	return &TokenIssuer{db: db, secret: []byte(secret)}
}

// Issue signs a new token for the user and records it for later
// revocation.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	record := model.AccessToken{
		Id:     uuid.New().String(),
		UserID: userID,
	}
	if err := t.db.Create(&record).Error; err != nil {
		return "", errors.Wrap(err, "fail to persist access token")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        record.Id,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "fail to sign access token")
	}
	return signed, nil
}

// Authenticate verifies the signature and expiry of a bearer token and
// checks its revocation record still exists. Returns the user id and
// the token id.
func (t *TokenIssuer) Authenticate(tokenString string) (userID string, tokenID string, err error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}

	var record model.AccessToken
	result := t.db.Where("id = ?", claims.ID).First(&record)
	if result.Error != nil {
		// revoked or never issued by us
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.ID, nil
}

// Revoke deletes the token record, invalidating the signed token.
func (t *TokenIssuer) Revoke(tokenID string) error {
	return t.db.Delete(&model.AccessToken{}, "id = ?", tokenID).Error
}
