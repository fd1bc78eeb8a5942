package model

import (
	"time"
)

/*

AccessToken is a revocation record for an issued access token

Id: token id (jti claim of the signed token)
CreatedAt: time when token is issued
UserID: user the token belongs to

A signed token is only accepted while its record exists. Logout removes
the record, which invalidates the token without waiting for expiry.

*/

type AccessToken struct {
	Id        string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"<-:create"`
	UserID    string    `gorm:"index"`
}
