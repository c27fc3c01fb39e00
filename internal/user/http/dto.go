package http

import (
	"time"

	"github.com/playamar/beach-admin-backend/internal/pkg/request"
	"github.com/playamar/beach-admin-backend/internal/user"
)

// UserResponse is the shape of account data returned by the API. The
// password hash never appears here.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

func NewUserResponse(u *user.User) UserResponse {
	var lastLoginAt *time.Time
	if u.LastLoginAt != nil {
		ll := *u.LastLoginAt
		lastLoginAt = &ll
	}
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
		LastLoginAt: lastLoginAt,
	}
}

// LoginRequest defines the payload for admin login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the token and account info.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

// ListUsersRequest defines query parameters for listing accounts.
type ListUsersRequest struct {
	request.ListParams
	Keyword string `form:"q"`
	Role    string `form:"role"`
}

// CreateUserRequest defines the payload for creating an admin account.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// UpdateUserRequest defines fields allowed to change via PATCH /users/:id.
// Pointers distinguish "field not sent" from "field sent empty".
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
}
