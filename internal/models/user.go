package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RoleType string

const (
	RoleStudent   RoleType = "student"
	RoleFaculty   RoleType = "faculty"
	RoleStaff     RoleType = "staff"
	RoleHOD       RoleType = "hod"
	RoleWarden    RoleType = "chief_hostel_warden"
	RoleRegistrar RoleType = "registrar"
	RoleDirector  RoleType = "director"
)

// ParseRole converts a wire-level role string into the canonical enum.
// "warden" is accepted as a legacy alias of "chief_hostel_warden" — older
// records used the short spelling.
func ParseRole(s string) (RoleType, error) {
	switch RoleType(s) {
	case RoleStudent, RoleFaculty, RoleStaff, RoleHOD, RoleWarden, RoleRegistrar, RoleDirector:
		return RoleType(s), nil
	}
	if s == "warden" {
		return RoleWarden, nil
	}
	return "", fmt.Errorf("invalid role: %q", s)
}

// User is any identity known to the system: submitters (students, faculty,
// staff) and the authority roles that triage their complaints.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	Role         RoleType  `json:"role"`
	Department   string    `json:"department,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) GetID() string {
	return u.ID.String()
}
