package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	IsActive *bool      `json:"is_active,omitempty"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type MeResponse struct {
	User UserInfo `json:"user"`
}
