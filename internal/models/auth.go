package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the signed admin session token. The admin
// flag lives server-side in the signature, never in client-trusted state.
type SessionClaims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// LoginRequest carries the admin login form.
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}
