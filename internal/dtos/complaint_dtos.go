package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
)

// SubmitComplaintRequest opens a new complaint. Category drives the
// routing; the submitter never picks an assignee directly.
type SubmitComplaintRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1"`
	Category    string `json:"category" validate:"required,oneof=academic hostel staff"`
}

// RejectComplaintRequest carries the optional rejection reason, stored
// as the complaint response.
type RejectComplaintRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ResolveComplaintRequest carries the optional resolution text.
type ResolveComplaintRequest struct {
	Response string `json:"response,omitempty"`
}

// UpdateStatusRequest is the administrative override. Any known status
// may be set regardless of the guided transitions; status and response
// are each optional so a response-only update is possible.
type UpdateStatusRequest struct {
	Status   string  `json:"status,omitempty"`
	Response *string `json:"response,omitempty"`
}

// BackfillComplaintRequest records a historical complaint that was
// handled outside the system. The submitter account is created on the
// fly when the email is unknown.
type BackfillComplaintRequest struct {
	Title          string     `json:"title" validate:"required,min=1,max=200"`
	Description    string     `json:"description" validate:"required,min=1"`
	Category       string     `json:"category" validate:"required,oneof=academic hostel staff"`
	SubmitterName  string     `json:"submitter_name" validate:"required,min=1"`
	SubmitterEmail string     `json:"submitter_email" validate:"required,email"`
	CustomDate     *time.Time `json:"custom_date" validate:"required"`
	Status         *string    `json:"status,omitempty"`
	Response       *string    `json:"response,omitempty"`
}

// ComplaintResponse is a complaint hydrated with the display names the
// clients render instead of raw IDs.
type ComplaintResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Category    models.CategoryType        `json:"category"`
	Status      models.ComplaintStatusType `json:"status"`
	Response    string                     `json:"response,omitempty"`

	CreatedBy       uuid.UUID  `json:"created_by"`
	CreatedByName   string     `json:"created_by_name,omitempty"`
	AssignedTo      *uuid.UUID `json:"assigned_to,omitempty"`
	AssignedToName  string     `json:"assigned_to_name,omitempty"`
	EscalatedTo     *uuid.UUID `json:"escalated_to,omitempty"`
	EscalatedToName string     `json:"escalated_to_name,omitempty"`

	RowVersion int64     `json:"row_version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ComplaintLogResponse is a ledger entry hydrated with the performer's
// display name.
type ComplaintLogResponse struct {
	ID              uuid.UUID                   `json:"id"`
	ComplaintID     uuid.UUID                   `json:"complaint_id"`
	Action          models.LogActionType        `json:"action"`
	PerformedBy     uuid.UUID                   `json:"performed_by"`
	PerformedByName string                      `json:"performed_by_name,omitempty"`
	PreviousStatus  *models.ComplaintStatusType `json:"previous_status,omitempty"`
	NewStatus       *models.ComplaintStatusType `json:"new_status,omitempty"`
	Remarks         string                      `json:"remarks,omitempty"`
	AssignedTo      *uuid.UUID                  `json:"assigned_to,omitempty"`
	EscalatedTo     *uuid.UUID                  `json:"escalated_to,omitempty"`
	Timestamp       time.Time                   `json:"timestamp"`
}

type ComplaintListResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
	Count      int                 `json:"count"`
}

// ComplaintHistoryResponse pairs a complaint summary with its ledger in
// chronological order.
type ComplaintHistoryResponse struct {
	Complaint ComplaintResponse      `json:"complaint"`
	Logs      []ComplaintLogResponse `json:"logs"`
	Count     int                    `json:"count"`
}

type ComplaintLogListResponse struct {
	Logs  []ComplaintLogResponse `json:"logs"`
	Count int                    `json:"count"`
}

type ConfirmationResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}
