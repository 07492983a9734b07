package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type LogActionType string

const (
	ActionSubmitted     LogActionType = "submitted"
	ActionAccepted      LogActionType = "accepted"
	ActionRejected      LogActionType = "rejected"
	ActionResolved      LogActionType = "resolved"
	ActionEscalated     LogActionType = "escalated"
	ActionStatusUpdated LogActionType = "status_updated"
	ActionAssigned      LogActionType = "assigned"
	ActionManuallyAdded LogActionType = "manually_added"
)

func ParseLogAction(s string) (LogActionType, error) {
	switch LogActionType(s) {
	case ActionSubmitted, ActionAccepted, ActionRejected, ActionResolved,
		ActionEscalated, ActionStatusUpdated, ActionAssigned, ActionManuallyAdded:
		return LogActionType(s), nil
	}
	return "", fmt.Errorf("invalid log action: %q", s)
}

// ComplaintLog is one entry of the append-only action ledger. Entries are
// never mutated or deleted; ordered by Timestamp they are the canonical
// history of a complaint.
type ComplaintLog struct {
	ID          uuid.UUID     `json:"id"`
	ComplaintID uuid.UUID     `json:"complaint_id"`
	Action      LogActionType `json:"action"`
	PerformedBy uuid.UUID     `json:"performed_by"`

	// Absent for pure informational entries.
	PreviousStatus *ComplaintStatusType `json:"previous_status,omitempty"`
	NewStatus      *ComplaintStatusType `json:"new_status,omitempty"`

	Remarks     string     `json:"remarks,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	EscalatedTo *uuid.UUID `json:"escalated_to,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}
