package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Deepanshumelkani77/Grievance-system/internal/constants"
	"github.com/Deepanshumelkani77/Grievance-system/internal/dtos"
	"github.com/Deepanshumelkani77/Grievance-system/internal/middleware"
	"github.com/Deepanshumelkani77/Grievance-system/internal/services"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

type ComplaintsController struct {
	complaintService *services.ComplaintService
	validate         *validator.Validate
}

func NewComplaintsController(s *services.ComplaintService) *ComplaintsController {
	return &ComplaintsController{
		complaintService: s,
		validate:         validator.New(),
	}
}

func (c *ComplaintsController) getPrincipal(r *http.Request) (middleware.Principal, error) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return middleware.Principal{}, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Missing principal in context",
		}
	}
	return principal, nil
}

func (c *ComplaintsController) getComplaintID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid complaint ID format",
			Err:        err,
		}
	}
	return id, nil
}

/*
respondServiceError maps workflow errors onto the HTTP failure taxonomy.
A row-version conflict returns 409 with the latest complaint snapshot in
details so the client can re-render and retry.
*/
func (c *ComplaintsController) respondServiceError(w http.ResponseWriter, err error) {
	var conflictErr *utils.RowVersionConflictError
	if errors.As(err, &conflictErr) {
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeRowVersionConflict,
			constants.ErrMsgRowVersionConflictRefresh, conflictErr.Current,
		)
		return
	}

	switch {
	case errors.Is(err, utils.ErrComplaintNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Complaint not found", nil)
	case errors.Is(err, utils.ErrDirectorNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Director not found", nil)
	case errors.Is(err, utils.ErrUserNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "User not found", nil)
	case errors.Is(err, utils.ErrRoleNotPermitted), errors.Is(err, utils.ErrNotAssignedAuthority):
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "You do not have permission to perform this action", nil)
	case errors.Is(err, utils.ErrWrongStatus):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidState, "Complaint is not in a valid status for this action", nil)
	case errors.Is(err, utils.ErrInvalidCategory):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidCategory, "Unknown complaint category", nil)
	case errors.Is(err, utils.ErrInvalidStatus):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidStatus, "Unknown complaint status", nil)
	case errors.Is(err, utils.ErrMissingFields):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing required fields", nil)
	default:
		utils.HandleAppError(w, err)
	}
}

func (c *ComplaintsController) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return false
	}
	if err := c.validate.Struct(req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", formatValidationErrors(validationErrs))
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		}
		return false
	}
	return true
}

// POST /api/v1/complaints/submit
func (c *ComplaintsController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "SubmitHandler")
	logger.Info("Request received")

	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.SubmitComplaintRequest
	if !c.decodeAndValidate(w, r, &req) {
		return
	}

	complaint, err := c.complaintService.Submit(r.Context(), principal.ID, req)
	if err != nil {
		logger.WithError(err).Error("Submit failed")
		c.respondServiceError(w, err)
		return
	}

	logger.WithField("complaintID", complaint.ID).Info("Complaint submitted")
	utils.RespondWithJSON(w, http.StatusCreated, complaint)
}

// PUT /api/v1/complaints/{id}/accept
func (c *ComplaintsController) AcceptHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "AcceptHandler")
	logger.Info("Request received")

	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	complaintID, err := c.getComplaintID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	updated, err := c.complaintService.Accept(r.Context(), principal.ID, principal.Role, complaintID)
	if err != nil {
		logger.WithError(err).Error("Accept failed")
		c.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// PUT /api/v1/complaints/{id}/reject
func (c *ComplaintsController) RejectHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "RejectHandler")
	logger.Info("Request received")

	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	complaintID, err := c.getComplaintID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.RejectComplaintRequest
	if !c.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := c.complaintService.Reject(r.Context(), principal.ID, principal.Role, complaintID, req.Reason)
	if err != nil {
		logger.WithError(err).Error("Reject failed")
		c.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// PUT /api/v1/complaints/{id}/resolve
func (c *ComplaintsController) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "ResolveHandler")
	logger.Info("Request received")

	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	complaintID, err := c.getComplaintID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.ResolveComplaintRequest
	if !c.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := c.complaintService.Resolve(r.Context(), principal.ID, principal.Role, complaintID, req.Response)
	if err != nil {
		logger.WithError(err).Error("Resolve failed")
		c.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// PUT /api/v1/complaints/{id}/escalate
func (c *ComplaintsController) EscalateHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "EscalateHandler")
	logger.Info("Request received")

	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	complaintID, err := c.getComplaintID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	updated, err := c.complaintService.Escalate(r.Context(), principal.ID, principal.Role, complaintID)
	if err != nil {
		logger.WithError(err).Error("Escalate failed")
		c.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// PUT /api/v1/complaints/{id}/status
func (c *ComplaintsController) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "UpdateStatusHandler")
	logger.Info("Request received")

	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	complaintID, err := c.getComplaintID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateStatusRequest
	if !c.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := c.complaintService.UpdateStatus(r.Context(), principal.ID, principal.Role, complaintID, req)
	if err != nil {
		logger.WithError(err).Error("Status update failed")
		c.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// POST /api/v1/complaints/backfill
func (c *ComplaintsController) BackfillHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "BackfillHandler")
	logger.Info("Request received")

	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.BackfillComplaintRequest
	if !c.decodeAndValidate(w, r, &req) {
		return
	}

	complaint, err := c.complaintService.Backfill(r.Context(), principal.ID, principal.Role, req)
	if err != nil {
		logger.WithError(err).Error("Backfill failed")
		c.respondServiceError(w, err)
		return
	}

	logger.WithField("complaintID", complaint.ID).Info("Historical complaint recorded")
	utils.RespondWithJSON(w, http.StatusCreated, complaint)
}

// GET /api/v1/complaints/my
func (c *ComplaintsController) ListMyHandler(w http.ResponseWriter, r *http.Request) {
	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, err := c.complaintService.ListMine(r.Context(), principal.ID)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/complaints/assigned
func (c *ComplaintsController) ListAssignedHandler(w http.ResponseWriter, r *http.Request) {
	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, err := c.complaintService.ListAssigned(r.Context(), principal.ID, principal.Role)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/complaints/all
func (c *ComplaintsController) ListAllHandler(w http.ResponseWriter, r *http.Request) {
	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, err := c.complaintService.ListAll(r.Context(), principal.Role)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/complaints/logs/all
func (c *ComplaintsController) ListAllLogsHandler(w http.ResponseWriter, r *http.Request) {
	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, err := c.complaintService.ListAllLogs(r.Context(), principal.Role)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/complaints/{id}/logs
func (c *ComplaintsController) ComplaintHistoryHandler(w http.ResponseWriter, r *http.Request) {
	principal, err := c.getPrincipal(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	complaintID, err := c.getComplaintID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, err := c.complaintService.ComplaintHistory(r.Context(), principal.ID, principal.Role, complaintID)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
