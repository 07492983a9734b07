package constants

import (
	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
)

const (
	OrganizationName = "BIAS"

	// Credential assigned to submitter accounts created during a manual
	// backfill; the submitter is expected to rotate it on first login.
	BackfillDefaultPassword = "student123"

	// Department recorded for submitters created during a manual backfill.
	BackfillDepartment = "Historical Record"
)

// Common concurrency conflict / row-version conflict messages
const (
	ErrMsgRowVersionConflictRefresh = "Another update occurred, please refresh"
	ErrMsgNoRowsUpdated             = "No rows updated"
)

// Capability describes what a role may do in the complaint workflow.
// Role checks used to be spelled out per endpoint and per service method;
// this table is the single source both layers consume.
type Capability struct {
	CanAccept       bool
	CanReject       bool
	CanResolve      bool
	CanEscalate     bool
	CanViewAssigned bool
}

var roleCapabilities = map[models.RoleType]Capability{
	models.RoleStudent: {},
	models.RoleFaculty: {},
	models.RoleStaff:   {},
	models.RoleHOD: {
		CanAccept: true, CanReject: true, CanResolve: true,
		CanEscalate: true, CanViewAssigned: true,
	},
	models.RoleRegistrar: {
		CanAccept: true, CanReject: true, CanResolve: true,
		CanEscalate: true, CanViewAssigned: true,
	},
	models.RoleWarden: {
		CanAccept: true, CanReject: true, CanResolve: true,
		CanEscalate: true, CanViewAssigned: true,
	},
	models.RoleDirector: {
		CanResolve: true,
	},
}

// CapabilitiesFor returns the capability row for a role. Unknown roles get
// the zero Capability (no workflow powers).
func CapabilitiesFor(role models.RoleType) Capability {
	return roleCapabilities[role]
}

// IsAuthorityRole reports whether the role triages complaints in its
// category (HOD, Registrar, Chief Hostel Warden). The director is the
// escalation target, not a category authority.
func IsAuthorityRole(role models.RoleType) bool {
	return roleCapabilities[role].CanViewAssigned
}

// AuthorityRoles lists the mid-level roles for route gating.
func AuthorityRoles() []models.RoleType {
	return []models.RoleType{models.RoleHOD, models.RoleRegistrar, models.RoleWarden}
}

// CategoryAuthority maps a complaint category to the role that owns it.
var CategoryAuthority = map[models.CategoryType]models.RoleType{
	models.CategoryAcademic: models.RoleHOD,
	models.CategoryHostel:   models.RoleWarden,
	models.CategoryStaff:    models.RoleRegistrar,
}
