package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ComplaintStatusType string

// Persisted status strings. "In Progress" and "Resolved" are reachable only
// through the administrative override, never through the guided transitions.
const (
	StatusPending    ComplaintStatusType = "Pending"
	StatusAccepted   ComplaintStatusType = "Accepted"
	StatusRejected   ComplaintStatusType = "Rejected"
	StatusInProgress ComplaintStatusType = "In Progress"
	StatusResolved   ComplaintStatusType = "Resolved"
	StatusEscalated  ComplaintStatusType = "Escalated"
	StatusCompleted  ComplaintStatusType = "Completed"
)

func ParseComplaintStatus(s string) (ComplaintStatusType, error) {
	switch ComplaintStatusType(s) {
	case StatusPending, StatusAccepted, StatusRejected, StatusInProgress,
		StatusResolved, StatusEscalated, StatusCompleted:
		return ComplaintStatusType(s), nil
	}
	return "", fmt.Errorf("invalid status: %q", s)
}

// IsTerminal reports whether no further guided transition is defined
// from the status.
func (s ComplaintStatusType) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

type CategoryType string

const (
	CategoryAcademic CategoryType = "academic"
	CategoryHostel   CategoryType = "hostel"
	CategoryStaff    CategoryType = "staff"
)

func ParseCategory(s string) (CategoryType, error) {
	switch CategoryType(s) {
	case CategoryAcademic, CategoryHostel, CategoryStaff:
		return CategoryType(s), nil
	}
	return "", fmt.Errorf("invalid category: %q", s)
}

type Complaint struct {
	Versioned

	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    CategoryType        `json:"category"` // immutable after creation
	CreatedBy   uuid.UUID           `json:"created_by"`
	AssignedTo  *uuid.UUID          `json:"assigned_to,omitempty"`
	EscalatedTo *uuid.UUID          `json:"escalated_to,omitempty"`
	Status      ComplaintStatusType `json:"status"`
	Response    string              `json:"response,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Complaint) GetID() string {
	return c.ID.String()
}
