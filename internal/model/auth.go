package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for back-office access
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// SessionClaims are JWT claims scoped to one assessment session
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// ChatClaims are JWT claims scoped to one chat conversation
type ChatClaims struct {
	ChatID string `json:"chatId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}
