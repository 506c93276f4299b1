package auth

import "hotel/internal/domain"

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=64"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6,max=72"`
	FirstName   string `json:"first_name" binding:"max=100"`
	LastName    string `json:"last_name" binding:"max=100"`
	PhoneNumber string `json:"phone_number" binding:"max=32"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName   *string `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName    *string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" binding:"omitempty,max=32"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token    string          `json:"token"`
	Type     string          `json:"type"`
	UserID   int64           `json:"user_id"`
	Username string          `json:"username"`
	Role     domain.UserRole `json:"role"`
}

type UserPublic struct {
	ID          int64           `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Role        domain.UserRole `json:"role"`
	Enabled     bool            `json:"enabled"`
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Enabled:     u.Enabled,
	}
}
