package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Deepanshumelkani77/Grievance-system/internal/constants"
	"github.com/Deepanshumelkani77/Grievance-system/internal/dtos"
	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

/*
Submit opens a new complaint for the authenticated submitter. The
complaint is routed to the authority owning its category; when no user
holds that role the complaint is created unassigned and a warning is
logged, so intake never depends on org-chart completeness.
*/
func (s *ComplaintService) Submit(
	ctx context.Context,
	submitterID uuid.UUID,
	req dtos.SubmitComplaintRequest,
) (*models.Complaint, error) {
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return nil, utils.ErrInvalidCategory
	}

	submitter, err := s.userRepo.GetByID(ctx, submitterID)
	if err != nil {
		return nil, err
	}
	if submitter == nil {
		return nil, fmt.Errorf("authenticated user with ID %s not found in database", submitterID)
	}

	assignee, err := s.routing.FindAuthorityForCategory(ctx, category, submitter.Department)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		utils.Logger.Warnf(
			"No authority found for category %q, complaint will be created unassigned", category,
		)
	}

	c := &models.Complaint{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		CreatedBy:   submitterID,
		Status:      models.StatusPending,
	}
	if assignee != nil {
		c.AssignedTo = &assignee.ID
	}

	if err := s.complaintRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.recordAction(ctx, &models.ComplaintLog{
		ComplaintID: c.ID,
		Action:      models.ActionSubmitted,
		PerformedBy: submitterID,
		NewStatus:   utils.Ptr(models.StatusPending),
		Remarks:     "Complaint submitted: " + c.Title,
		AssignedTo:  c.AssignedTo,
	})
	s.notifier.ComplaintSubmitted(c, submitter, assignee)

	return c, nil
}

// Accept moves a Pending complaint to Accepted. Only the assigned
// authority may accept.
func (s *ComplaintService) Accept(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole models.RoleType,
	complaintID uuid.UUID,
) (*models.Complaint, error) {
	if !constants.CapabilitiesFor(actorRole).CanAccept {
		return nil, utils.ErrRoleNotPermitted
	}

	c, err := s.loadComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !isAssignee(c, actorID) {
		return nil, utils.ErrNotAssignedAuthority
	}
	if c.Status != models.StatusPending {
		return nil, utils.ErrWrongStatus
	}

	updated, err := s.complaintRepo.UpdateStatusToAccepted(ctx, c.ID, c.RowVersion)
	if err != nil {
		return nil, s.handleTransitionErr(ctx, c.ID, err)
	}

	s.recordAction(ctx, &models.ComplaintLog{
		ComplaintID:    c.ID,
		Action:         models.ActionAccepted,
		PerformedBy:    actorID,
		PreviousStatus: utils.Ptr(models.StatusPending),
		NewStatus:      utils.Ptr(models.StatusAccepted),
		Remarks:        "Complaint accepted by admin",
	})
	s.notifier.ComplaintAccepted(updated, s.submitterOf(ctx, updated))

	return updated, nil
}

// Reject moves a Pending complaint to the terminal Rejected status.
// The optional reason is stored as the complaint response.
func (s *ComplaintService) Reject(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole models.RoleType,
	complaintID uuid.UUID,
	reason string,
) (*models.Complaint, error) {
	if !constants.CapabilitiesFor(actorRole).CanReject {
		return nil, utils.ErrRoleNotPermitted
	}

	c, err := s.loadComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !isAssignee(c, actorID) {
		return nil, utils.ErrNotAssignedAuthority
	}
	if c.Status != models.StatusPending {
		return nil, utils.ErrWrongStatus
	}

	var response *string
	remarks := "Complaint rejected by admin"
	if reason != "" {
		response = &reason
		remarks = reason
	}

	updated, err := s.complaintRepo.UpdateStatusToRejected(ctx, c.ID, c.RowVersion, response)
	if err != nil {
		return nil, s.handleTransitionErr(ctx, c.ID, err)
	}

	s.recordAction(ctx, &models.ComplaintLog{
		ComplaintID:    c.ID,
		Action:         models.ActionRejected,
		PerformedBy:    actorID,
		PreviousStatus: utils.Ptr(models.StatusPending),
		NewStatus:      utils.Ptr(models.StatusRejected),
		Remarks:        remarks,
	})
	s.notifier.ComplaintRejected(updated, s.submitterOf(ctx, updated))

	return updated, nil
}

/*
Resolve closes a complaint from Accepted or Escalated. The assigned
authority and the director may both resolve either state. Both paths
land on the terminal Completed status; the prior status is captured in
the log entry so the history shows which path was taken.
*/
func (s *ComplaintService) Resolve(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole models.RoleType,
	complaintID uuid.UUID,
	response string,
) (*models.Complaint, error) {
	if !constants.CapabilitiesFor(actorRole).CanResolve {
		return nil, utils.ErrRoleNotPermitted
	}

	c, err := s.loadComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	if c.Status != models.StatusAccepted && c.Status != models.StatusEscalated {
		return nil, utils.ErrWrongStatus
	}
	if !isAssignee(c, actorID) && actorRole != models.RoleDirector {
		return nil, utils.ErrNotAssignedAuthority
	}

	var responsePtr *string
	if response != "" {
		responsePtr = &response
	}

	prev := c.Status
	updated, err := s.complaintRepo.UpdateStatusToCompleted(ctx, c.ID, c.RowVersion, responsePtr)
	if err != nil {
		return nil, s.handleTransitionErr(ctx, c.ID, err)
	}

	remarks := "Complaint resolved"
	if response != "" {
		remarks = response
	}
	s.recordAction(ctx, &models.ComplaintLog{
		ComplaintID:    c.ID,
		Action:         models.ActionResolved,
		PerformedBy:    actorID,
		PreviousStatus: utils.Ptr(prev),
		NewStatus:      utils.Ptr(models.StatusCompleted),
		Remarks:        remarks,
	})
	s.notifier.ComplaintResolved(updated, s.submitterOf(ctx, updated))

	return updated, nil
}

// Escalate hands an Accepted complaint to the director. Escalation is
// one-shot: once Escalated the only guided transition left is Resolve.
func (s *ComplaintService) Escalate(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole models.RoleType,
	complaintID uuid.UUID,
) (*models.Complaint, error) {
	if !constants.CapabilitiesFor(actorRole).CanEscalate {
		return nil, utils.ErrRoleNotPermitted
	}

	c, err := s.loadComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !isAssignee(c, actorID) {
		return nil, utils.ErrNotAssignedAuthority
	}
	if c.Status != models.StatusAccepted {
		return nil, utils.ErrWrongStatus
	}

	director, err := s.routing.FindDirector(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.complaintRepo.EscalateAtomic(ctx, c.ID, c.RowVersion, director.ID)
	if err != nil {
		return nil, s.handleTransitionErr(ctx, c.ID, err)
	}

	s.recordAction(ctx, &models.ComplaintLog{
		ComplaintID:    c.ID,
		Action:         models.ActionEscalated,
		PerformedBy:    actorID,
		PreviousStatus: utils.Ptr(models.StatusAccepted),
		NewStatus:      utils.Ptr(models.StatusEscalated),
		Remarks:        "Complaint escalated to Director",
		EscalatedTo:    &director.ID,
	})

	escalator, uErr := s.userRepo.GetByID(ctx, actorID)
	if uErr != nil {
		utils.Logger.WithError(uErr).Warnf("Could not load escalating authority %s for notification", actorID)
		escalator = nil
	}
	s.notifier.ComplaintEscalated(updated, s.submitterOf(ctx, updated), escalator, director)

	return updated, nil
}

/*
UpdateStatus is the administrative override: it sets any known status
and/or the response without walking the guided transitions. Unlike the
guided paths it performs no status precondition, but it is still
restricted to the complaint's assignee or the director, and every use
lands in the ledger as a status_updated entry.
*/
func (s *ComplaintService) UpdateStatus(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole models.RoleType,
	complaintID uuid.UUID,
	req dtos.UpdateStatusRequest,
) (*models.Complaint, error) {
	caps := constants.CapabilitiesFor(actorRole)
	if !caps.CanViewAssigned && !caps.CanResolve {
		return nil, utils.ErrRoleNotPermitted
	}

	// Status and response are each optional; an override may update
	// either or both.
	var status *models.ComplaintStatusType
	if req.Status != "" {
		parsed, err := models.ParseComplaintStatus(req.Status)
		if err != nil {
			return nil, utils.ErrInvalidStatus
		}
		status = &parsed
	}

	c, err := s.loadComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !isAssignee(c, actorID) && actorRole != models.RoleDirector {
		return nil, utils.ErrNotAssignedAuthority
	}

	prev := c.Status
	updated, err := s.complaintRepo.OverrideAtomic(ctx, c.ID, c.RowVersion, status, req.Response)
	if err != nil {
		return nil, s.handleTransitionErr(ctx, c.ID, err)
	}

	s.recordAction(ctx, &models.ComplaintLog{
		ComplaintID:    c.ID,
		Action:         models.ActionStatusUpdated,
		PerformedBy:    actorID,
		PreviousStatus: utils.Ptr(prev),
		NewStatus:      utils.Ptr(updated.Status),
		Remarks:        "Status manually updated",
	})
	s.notifier.ComplaintStatusUpdated(updated, s.submitterOf(ctx, updated), prev)

	return updated, nil
}

/*
Backfill records a complaint that was handled outside the system, dated
at its explicit original date. The submitter account is looked up by
email and created with a default credential when unknown. The complaint
is assigned to the
acting admin and defaults to Completed; a single manually_added ledger
entry carries the original date.
*/
func (s *ComplaintService) Backfill(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole models.RoleType,
	req dtos.BackfillComplaintRequest,
) (*models.Complaint, error) {
	if !constants.IsAuthorityRole(actorRole) {
		return nil, utils.ErrRoleNotPermitted
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return nil, utils.ErrInvalidCategory
	}

	status := models.StatusCompleted
	if req.Status != nil {
		status, err = models.ParseComplaintStatus(*req.Status)
		if err != nil {
			return nil, utils.ErrInvalidStatus
		}
	}

	if req.CustomDate == nil {
		return nil, utils.ErrMissingFields
	}
	createdAt := req.CustomDate.UTC()

	admin, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, fmt.Errorf("authenticated user with ID %s not found in database", actorID)
	}

	submitter, err := s.findOrCreateSubmitter(ctx, req.SubmitterName, req.SubmitterEmail)
	if err != nil {
		return nil, err
	}

	c := &models.Complaint{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		CreatedBy:   submitter.ID,
		AssignedTo:  &admin.ID,
		Status:      status,
		CreatedAt:   createdAt,
	}
	if req.Response != nil {
		c.Response = *req.Response
	}

	if err := s.complaintRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.recordAction(ctx, &models.ComplaintLog{
		ComplaintID: c.ID,
		Action:      models.ActionManuallyAdded,
		PerformedBy: actorID,
		NewStatus:   utils.Ptr(status),
		Remarks: fmt.Sprintf(
			"Old complaint added manually by %s (%s). Original date: %s",
			admin.Name, admin.Role, createdAt.Format("2006-01-02"),
		),
		AssignedTo: &admin.ID,
		Timestamp:  createdAt,
	})

	// Historical record: the submitter is not notified.
	return c, nil
}

// findOrCreateSubmitter resolves a backfill submitter by email, creating
// a student account with the default credential when none exists.
func (s *ComplaintService) findOrCreateSubmitter(ctx context.Context, name, email string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	hash, err := utils.HashPassword(constants.BackfillDefaultPassword)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		Department:   constants.BackfillDepartment,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Created submitter account %s for backfilled complaint", email)
	return u, nil
}
