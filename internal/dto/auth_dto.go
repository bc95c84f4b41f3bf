package dto

import (
	"time"

	"github.com/praxis-ed/praxis-api/internal/models"
)

// RegisterRequest describes the payload for account registration.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=255"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Phone           string `json:"phone" validate:"omitempty,max=64"`
	Subject         string `json:"subject" validate:"omitempty,max=255"`
	YearsExperience int    `json:"years_experience" validate:"omitempty,gte=0,lte=60"`
	Institution     string `json:"institution" validate:"omitempty,max=255"`
}

// LoginRequest describes the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the signed token and the authenticated profile.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the serialized account profile. The password hash never
// leaves the models layer.
type UserResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Phone           string    `json:"phone,omitempty"`
	Subject         string    `json:"subject,omitempty"`
	YearsExperience int       `json:"years_experience"`
	Institution     string    `json:"institution,omitempty"`
	Avatar          string    `json:"avatar,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:              model.ID,
		Name:            model.Name,
		Email:           model.Email,
		Role:            model.Role,
		Phone:           model.Phone,
		Subject:         model.Subject,
		YearsExperience: model.YearsExperience,
		Institution:     model.Institution,
		Avatar:          model.Avatar,
		CreatedAt:       model.CreatedAt,
	}
}
