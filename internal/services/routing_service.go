package services

import (
	"context"

	"github.com/Deepanshumelkani77/Grievance-system/internal/constants"
	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
	"github.com/Deepanshumelkani77/Grievance-system/internal/repositories"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

// RoutingService resolves which authority user receives a complaint.
type RoutingService struct {
	userRepo repositories.UserRepository
}

func NewRoutingService(userRepo repositories.UserRepository) *RoutingService {
	return &RoutingService{userRepo: userRepo}
}

/*
FindAuthorityForCategory resolves the assignee for a new complaint:
academic goes to an HOD, hostel to the chief hostel warden, staff to
the registrar. When several users hold the role, one whose department
matches the submitter's is preferred; ties break on lowest id so the
same inputs always route to the same user.

Returns (nil, nil) when no user holds the role — submission proceeds
unassigned rather than failing.
*/
func (s *RoutingService) FindAuthorityForCategory(
	ctx context.Context,
	category models.CategoryType,
	preferredDepartment string,
) (*models.User, error) {
	role, ok := constants.CategoryAuthority[category]
	if !ok {
		return nil, utils.ErrInvalidCategory
	}
	return s.userRepo.FindOneByRole(ctx, role, preferredDepartment)
}

// FindDirector resolves the escalation target. Unlike category routing,
// a missing director is an error: escalation has nowhere to go.
func (s *RoutingService) FindDirector(ctx context.Context) (*models.User, error) {
	director, err := s.userRepo.FindOneByRole(ctx, models.RoleDirector, "")
	if err != nil {
		return nil, err
	}
	if director == nil {
		return nil, utils.ErrDirectorNotFound
	}
	return director, nil
}
