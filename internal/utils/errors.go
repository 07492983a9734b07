package utils

import (
	"errors"
	"net/http"

	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
)

/*
Sentinel errors for grievance workflow domain logic.
Controllers can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	ErrComplaintNotFound = errors.New("complaint_not_found")
	ErrDirectorNotFound  = errors.New("director_not_found")
	ErrUserNotFound      = errors.New("user_not_found")

	ErrNotAssignedAuthority = errors.New("not_assigned_authority")
	ErrRoleNotPermitted     = errors.New("role_not_permitted")
	ErrWrongStatus          = errors.New("wrong_status")

	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrMissingFields   = errors.New("missing_fields")

	ErrEmailExists        = errors.New("email_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

/*
RowVersionConflictError carries the latest complaint snapshot so the
controller can return it to the caller alongside the 409, letting the
client re-render and retry against current state.
*/
type RowVersionConflictError struct {
	Current *models.Complaint
}

func (e *RowVersionConflictError) Error() string {
	return "row_version_conflict"
}

func NewRowVersionConflictError(current *models.Complaint) error {
	return &RowVersionConflictError{Current: current}
}

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
