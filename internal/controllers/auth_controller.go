package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Deepanshumelkani77/Grievance-system/internal/dtos"
	"github.com/Deepanshumelkani77/Grievance-system/internal/middleware"
	"github.com/Deepanshumelkani77/Grievance-system/internal/services"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

type AuthController struct {
	authService *services.AuthService
	validate    *validator.Validate
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{
		authService: s,
		validate:    validator.New(),
	}
}

// POST /api/v1/auth/signup
func (c *AuthController) SignupHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "SignupHandler")
	logger.Info("Request received")

	var req dtos.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", formatValidationErrors(validationErrs))
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		}
		return
	}

	user, err := c.authService.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, utils.ErrEmailExists) {
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeEmailExists, "An account with this email already exists", nil)
			return
		}
		logger.WithError(err).Error("Signup failed")
		utils.HandleAppError(w, err)
		return
	}

	logger.WithField("userID", user.ID).Info("Account created")
	utils.RespondWithJSON(w, http.StatusCreated, dtos.SignupResponse{
		Message: "Account created successfully",
		User:    user,
	})
}

// POST /api/v1/auth/login
func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "LoginHandler")
	logger.Info("Request received")

	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", formatValidationErrors(validationErrs))
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		}
		return
	}

	resp, err := c.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Invalid email or password", nil)
			return
		}
		logger.WithError(err).Error("Login failed")
		utils.HandleAppError(w, err)
		return
	}

	logger.WithField("userID", resp.User.ID).Info("Login successful")
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/auth/me
func (c *AuthController) MeHandler(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing principal in context", nil)
		return
	}

	user, err := c.authService.Me(r.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "User not found", nil)
			return
		}
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// formatValidationErrors converts validator errors into the structured
// detail list returned in 400 responses.
func formatValidationErrors(errs validator.ValidationErrors) []dtos.ValidationErrorDetail {
	var details []dtos.ValidationErrorDetail
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field '%s' must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field '%s' must be at least %s in length", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field '%s' must not exceed %s in length", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, dtos.ValidationErrorDetail{
			Field:   err.Field(),
			Message: message,
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}
