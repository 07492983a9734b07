package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Deepanshumelkani77/Grievance-system/internal/config"
	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
	"github.com/Deepanshumelkani77/Grievance-system/internal/repositories"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

// ComplaintService owns the complaint workflow: submission, the guided
// transitions, the administrative override, backfill, and the read side.
type ComplaintService struct {
	cfg           *config.Config
	complaintRepo repositories.ComplaintRepository
	logRepo       repositories.ComplaintLogRepository
	userRepo      repositories.UserRepository
	routing       *RoutingService
	notifier      Notifier
}

func NewComplaintService(
	cfg *config.Config,
	complaintRepo repositories.ComplaintRepository,
	logRepo repositories.ComplaintLogRepository,
	userRepo repositories.UserRepository,
	routing *RoutingService,
	notifier Notifier,
) *ComplaintService {
	return &ComplaintService{
		cfg:           cfg,
		complaintRepo: complaintRepo,
		logRepo:       logRepo,
		userRepo:      userRepo,
		routing:       routing,
		notifier:      notifier,
	}
}

// loadComplaint fetches a complaint or maps its absence to the domain
// not-found error.
func (s *ComplaintService) loadComplaint(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	c, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.ErrComplaintNotFound
	}
	return c, nil
}

/*
recordAction appends one ledger entry for a workflow action. Append
failures are logged and swallowed: the state change has already been
committed and must not be rolled back or reported as failed because
the history write missed.
*/
func (s *ComplaintService) recordAction(ctx context.Context, entry *models.ComplaintLog) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		utils.Logger.WithError(err).
			Errorf("Failed to append complaint log (complaint=%s action=%s)", entry.ComplaintID, entry.Action)
	}
}

// handleTransitionErr maps repository CAS failures onto service errors.
// A row-version conflict is returned with the latest snapshot so the
// caller can surface current state; a concurrent status change surfaces
// as a wrong-status error.
func (s *ComplaintService) handleTransitionErr(ctx context.Context, id uuid.UUID, err error) error {
	if strings.Contains(err.Error(), utils.ErrRowVersionConflict.Error()) {
		latest, _ := s.complaintRepo.GetByID(ctx, id)
		if latest != nil {
			return utils.NewRowVersionConflictError(latest)
		}
		return err
	}
	if strings.Contains(err.Error(), "cannot transition") {
		return utils.ErrWrongStatus
	}
	return err
}

func (s *ComplaintService) submitterOf(ctx context.Context, c *models.Complaint) *models.User {
	submitter, err := s.userRepo.GetByID(ctx, c.CreatedBy)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Could not load submitter %s for notification", c.CreatedBy)
		return nil
	}
	return submitter
}

func isAssignee(c *models.Complaint, actorID uuid.UUID) bool {
	return c.AssignedTo != nil && *c.AssignedTo == actorID
}

func isEscalationTarget(c *models.Complaint, actorID uuid.UUID) bool {
	return c.EscalatedTo != nil && *c.EscalatedTo == actorID
}
