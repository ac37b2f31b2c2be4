package dto

import (
	"time"
)

// LoginRequest representa os dados para login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse representa a resposta de login bem-sucedido
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"token"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// VerifyResponse representa o usuário identificado pelo token
type VerifyResponse struct {
	Valid bool             `json:"valid"`
	User  AuthUserResponse `json:"user"`
}

// AuthUserResponse é o usuário conforme as claims do token
type AuthUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
