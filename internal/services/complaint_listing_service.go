package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Deepanshumelkani77/Grievance-system/internal/constants"
	"github.com/Deepanshumelkani77/Grievance-system/internal/dtos"
	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

// ListMine returns the complaints the actor submitted, newest first.
func (s *ComplaintService) ListMine(ctx context.Context, actorID uuid.UUID) (*dtos.ComplaintListResponse, error) {
	complaints, err := s.complaintRepo.ListByCreator(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.buildComplaintList(ctx, complaints)
}

// ListAssigned returns the complaints routed to the acting authority,
// newest first.
func (s *ComplaintService) ListAssigned(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole models.RoleType,
) (*dtos.ComplaintListResponse, error) {
	if !constants.CapabilitiesFor(actorRole).CanViewAssigned {
		return nil, utils.ErrRoleNotPermitted
	}
	complaints, err := s.complaintRepo.ListByAssignee(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.buildComplaintList(ctx, complaints)
}

// ListAll returns every complaint in the system. Director only.
func (s *ComplaintService) ListAll(ctx context.Context, actorRole models.RoleType) (*dtos.ComplaintListResponse, error) {
	if actorRole != models.RoleDirector {
		return nil, utils.ErrRoleNotPermitted
	}
	complaints, err := s.complaintRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildComplaintList(ctx, complaints)
}

// ListAllLogs returns the full action ledger, newest first. Director only.
func (s *ComplaintService) ListAllLogs(ctx context.Context, actorRole models.RoleType) (*dtos.ComplaintLogListResponse, error) {
	if actorRole != models.RoleDirector {
		return nil, utils.ErrRoleNotPermitted
	}
	logs, err := s.logRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	cache := map[uuid.UUID]*models.User{}
	out := make([]dtos.ComplaintLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, s.buildLogDTO(ctx, l, cache))
	}
	return &dtos.ComplaintLogListResponse{Logs: out, Count: len(out)}, nil
}

/*
ComplaintHistory returns one complaint with its ledger in chronological
order. Visible to the complaint's creator, its assignee or escalation
target, and the director.
*/
func (s *ComplaintService) ComplaintHistory(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole models.RoleType,
	complaintID uuid.UUID,
) (*dtos.ComplaintHistoryResponse, error) {
	c, err := s.loadComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	allowed := c.CreatedBy == actorID ||
		isAssignee(c, actorID) ||
		isEscalationTarget(c, actorID) ||
		actorRole == models.RoleDirector
	if !allowed {
		return nil, utils.ErrNotAssignedAuthority
	}

	logs, err := s.logRepo.ListByComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	cache := map[uuid.UUID]*models.User{}
	logDTOs := make([]dtos.ComplaintLogResponse, 0, len(logs))
	for _, l := range logs {
		logDTOs = append(logDTOs, s.buildLogDTO(ctx, l, cache))
	}
	return &dtos.ComplaintHistoryResponse{
		Complaint: s.buildComplaintDTO(ctx, c, cache),
		Logs:      logDTOs,
		Count:     len(logDTOs),
	}, nil
}

func (s *ComplaintService) buildComplaintList(ctx context.Context, complaints []*models.Complaint) (*dtos.ComplaintListResponse, error) {
	cache := map[uuid.UUID]*models.User{}
	out := make([]dtos.ComplaintResponse, 0, len(complaints))
	for _, c := range complaints {
		out = append(out, s.buildComplaintDTO(ctx, c, cache))
	}
	return &dtos.ComplaintListResponse{Complaints: out, Count: len(out)}, nil
}

// lookupName resolves a user's display name through a per-request cache.
// A missing or unloadable user hydrates as an empty name, never an error.
func (s *ComplaintService) lookupName(ctx context.Context, id uuid.UUID, cache map[uuid.UUID]*models.User) string {
	if u, ok := cache[id]; ok {
		if u == nil {
			return ""
		}
		return u.Name
	}
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Could not hydrate user %s for listing", id)
		u = nil
	}
	cache[id] = u
	if u == nil {
		return ""
	}
	return u.Name
}

func (s *ComplaintService) buildComplaintDTO(ctx context.Context, c *models.Complaint, cache map[uuid.UUID]*models.User) dtos.ComplaintResponse {
	dto := dtos.ComplaintResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Category:      c.Category,
		Status:        c.Status,
		Response:      c.Response,
		CreatedBy:     c.CreatedBy,
		CreatedByName: s.lookupName(ctx, c.CreatedBy, cache),
		AssignedTo:    c.AssignedTo,
		EscalatedTo:   c.EscalatedTo,
		RowVersion:    c.RowVersion,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.AssignedTo != nil {
		dto.AssignedToName = s.lookupName(ctx, *c.AssignedTo, cache)
	}
	if c.EscalatedTo != nil {
		dto.EscalatedToName = s.lookupName(ctx, *c.EscalatedTo, cache)
	}
	return dto
}

func (s *ComplaintService) buildLogDTO(ctx context.Context, l *models.ComplaintLog, cache map[uuid.UUID]*models.User) dtos.ComplaintLogResponse {
	return dtos.ComplaintLogResponse{
		ID:              l.ID,
		ComplaintID:     l.ComplaintID,
		Action:          l.Action,
		PerformedBy:     l.PerformedBy,
		PerformedByName: s.lookupName(ctx, l.PerformedBy, cache),
		PreviousStatus:  l.PreviousStatus,
		NewStatus:       l.NewStatus,
		Remarks:         l.Remarks,
		AssignedTo:      l.AssignedTo,
		EscalatedTo:     l.EscalatedTo,
		Timestamp:       l.Timestamp,
	}
}
