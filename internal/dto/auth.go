package dto

import (
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
)

// RegisterRequest defines the payload for creating a new user.
// BranchID is required when registering STAFF; OWNER users are unscoped.
type RegisterRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	FullName string      `json:"fullName" binding:"required,min=1"`
	Role     domain.Role `json:"role" binding:"omitempty,oneof=OWNER STAFF"`
	BranchID *string     `json:"branchId" binding:"omitempty,uuid"`
}

// LoginRequest defines the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string      `json:"userID"`
	Email     string      `json:"email"`
	FullName  string      `json:"fullName"`
	Role      domain.Role `json:"role"`
	BranchID  *string     `json:"branchID,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its DTO, dropping the password hash.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		BranchID:  user.BranchID,
		CreatedAt: user.CreatedAt,
	}
}
