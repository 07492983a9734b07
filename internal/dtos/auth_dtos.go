package dtos

import (
	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
)

// SignupRequest registers a new submitter account. Authority accounts
// are provisioned by seeding, not through this endpoint.
type SignupRequest struct {
	Name       string `json:"name" validate:"required,min=1"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"required,oneof=student faculty staff"`
	Department string `json:"department,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the access token plus a snapshot of the
// authenticated user for the client session.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

type SignupResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// ValidationErrorDetail is the structured shape of a single failed
// validation rule in 400 responses.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}
