package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the signed token body. RegisteredClaims.ID carries the session id.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
