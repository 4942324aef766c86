package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the claims this service expects in bearer tokens
// issued by the platform's auth service.
type UserClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}
