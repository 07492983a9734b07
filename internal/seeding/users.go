package seeding

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
	"github.com/Deepanshumelkani77/Grievance-system/internal/repositories"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

const defaultAuthorityPassword = "admin123"

// Fixed IDs so reseeding an existing database is a no-op.
var defaultAuthorityUsers = []models.User{
	{
		ID:         uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
		Name:       "Director",
		Email:      "director@college.edu",
		Role:       models.RoleDirector,
		Department: "Administration",
	},
	{
		ID:         uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002"),
		Name:       "HOD Computer Science",
		Email:      "hod.cse@college.edu",
		Role:       models.RoleHOD,
		Department: "Computer Science",
	},
	{
		ID:         uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000003"),
		Name:       "HOD Mechanical",
		Email:      "hod.mech@college.edu",
		Role:       models.RoleHOD,
		Department: "Mechanical",
	},
	{
		ID:         uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000004"),
		Name:       "Registrar",
		Email:      "registrar@college.edu",
		Role:       models.RoleRegistrar,
		Department: "Administration",
	},
	{
		ID:         uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000005"),
		Name:       "Chief Hostel Warden",
		Email:      "chief.hostel.warden@college.edu",
		Role:       models.RoleWarden,
		Department: "Hostel",
	},
}

/*
SeedDefaultAuthorityUsers creates the default director, HODs, registrar
and chief hostel warden accounts when they do not exist yet. Every part
of the workflow assumes these roles are staffed; a fresh deployment is
unusable without them.
*/
func SeedDefaultAuthorityUsers(ctx context.Context, userRepo repositories.UserRepository) error {
	hash, err := utils.HashPassword(defaultAuthorityPassword)
	if err != nil {
		return fmt.Errorf("failed to bcrypt-hash default authority password: %w", err)
	}

	for _, tmpl := range defaultAuthorityUsers {
		existing, err := userRepo.GetByID(ctx, tmpl.ID)
		if err != nil {
			return fmt.Errorf("error checking for existing user %s: %w", tmpl.Email, err)
		}
		if existing != nil {
			utils.Logger.Infof("Default %s already exists (ID=%s); skipping seed.", tmpl.Role, existing.ID)
			continue
		}

		u := tmpl
		u.PasswordHash = hash
		if err := userRepo.Create(ctx, &u); err != nil {
			return fmt.Errorf("failed to insert default %s: %w", u.Role, err)
		}
		utils.Logger.Infof("Seeded default %s account: %s", u.Role, u.Email)
	}
	return nil
}
