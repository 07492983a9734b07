package constants

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
)

func TestCapabilityTable(t *testing.T) {
	// Submitter roles have no workflow powers at all.
	for _, role := range []models.RoleType{models.RoleStudent, models.RoleFaculty, models.RoleStaff} {
		require.Equal(t, Capability{}, CapabilitiesFor(role), "role %s must have no powers", role)
	}

	// Category authorities hold the full mid-level set.
	for _, role := range []models.RoleType{models.RoleHOD, models.RoleRegistrar, models.RoleWarden} {
		caps := CapabilitiesFor(role)
		require.True(t, caps.CanAccept, "%s", role)
		require.True(t, caps.CanReject, "%s", role)
		require.True(t, caps.CanResolve, "%s", role)
		require.True(t, caps.CanEscalate, "%s", role)
		require.True(t, caps.CanViewAssigned, "%s", role)
	}

	// The director only resolves; escalated complaints land with them
	// through escalation, not assignment.
	director := CapabilitiesFor(models.RoleDirector)
	require.Equal(t, Capability{CanResolve: true}, director)

	// Unknown roles get the zero capability.
	require.Equal(t, Capability{}, CapabilitiesFor(models.RoleType("janitor")))
}

func TestCategoryAuthorityCoversAllCategories(t *testing.T) {
	want := map[models.CategoryType]models.RoleType{
		models.CategoryAcademic: models.RoleHOD,
		models.CategoryHostel:   models.RoleWarden,
		models.CategoryStaff:    models.RoleRegistrar,
	}
	require.Equal(t, want, CategoryAuthority)

	for category, role := range CategoryAuthority {
		require.True(t, IsAuthorityRole(role), "category %s must map to an authority role", category)
	}
}

func TestAuthorityRoles(t *testing.T) {
	roles := AuthorityRoles()
	require.Len(t, roles, 3)
	for _, role := range roles {
		require.True(t, IsAuthorityRole(role))
	}
	require.False(t, IsAuthorityRole(models.RoleDirector))
	require.False(t, IsAuthorityRole(models.RoleStudent))
}
