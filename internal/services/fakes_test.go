package services_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
)

// In-memory repository fakes. They mirror the SQL repositories' contracts:
// nil result for missing rows, row-version CAS on transitions, and the
// same deterministic routing order.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindOneByRole(ctx context.Context, role models.RoleType, preferredDepartment string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var candidates []*models.User
	for _, u := range r.users {
		if u.Role == role {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	// Department match wins, then lowest id.
	sort.Slice(candidates, func(i, j int) bool {
		iMatch := candidates[i].Department == preferredDepartment
		jMatch := candidates[j].Department == preferredDepartment
		if iMatch != jMatch {
			return iMatch
		}
		return strings.Compare(candidates[i].ID.String(), candidates[j].ID.String()) < 0
	})
	cp := *candidates[0]
	return &cp, nil
}

type fakeComplaintRepo struct {
	mu         sync.Mutex
	complaints map[uuid.UUID]*models.Complaint
	seq        int
	baseTime   time.Time

	// When set, the next transition loses the CAS race: the stored row
	// version is bumped as if another writer got there first.
	conflictNextTransition bool
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{
		complaints: map[uuid.UUID]*models.Complaint{},
		baseTime:   time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *fakeComplaintRepo) nextTime() time.Time {
	r.seq++
	return r.baseTime.Add(time.Duration(r.seq) * time.Minute)
}

func (r *fakeComplaintRepo) Create(ctx context.Context, c *models.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = r.nextTime()
	}
	cp.UpdatedAt = cp.CreatedAt
	cp.RowVersion = 1
	r.complaints[cp.ID] = &cp
	*c = cp
	return nil
}

func (r *fakeComplaintRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.complaints[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeComplaintRepo) listWhere(keep func(*models.Complaint) bool) []*models.Complaint {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Complaint
	for _, c := range r.complaints {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *fakeComplaintRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*models.Complaint, error) {
	return r.listWhere(func(c *models.Complaint) bool { return c.CreatedBy == creatorID }), nil
}

func (r *fakeComplaintRepo) ListByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]*models.Complaint, error) {
	return r.listWhere(func(c *models.Complaint) bool {
		return c.AssignedTo != nil && *c.AssignedTo == assigneeID
	}), nil
}

func (r *fakeComplaintRepo) ListAll(ctx context.Context) ([]*models.Complaint, error) {
	return r.listWhere(func(*models.Complaint) bool { return true }), nil
}

func (r *fakeComplaintRepo) transition(
	id uuid.UUID,
	expectedVersion int64,
	allowedFrom []models.ComplaintStatusType,
	apply func(*models.Complaint),
) (*models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.complaints[id]
	if !ok {
		return nil, nil
	}
	if r.conflictNextTransition {
		r.conflictNextTransition = false
		c.RowVersion++
		return nil, fmt.Errorf("row_version_conflict")
	}
	if c.RowVersion != expectedVersion {
		return nil, fmt.Errorf("row_version_conflict")
	}
	if len(allowedFrom) > 0 {
		allowed := false
		for _, s := range allowedFrom {
			if c.Status == s {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("cannot transition complaint in status %q", c.Status)
		}
	}
	apply(c)
	c.RowVersion++
	c.UpdatedAt = r.nextTime()
	cp := *c
	return &cp, nil
}

func (r *fakeComplaintRepo) UpdateStatusToAccepted(ctx context.Context, id uuid.UUID, expectedVersion int64) (*models.Complaint, error) {
	return r.transition(id, expectedVersion,
		[]models.ComplaintStatusType{models.StatusPending},
		func(c *models.Complaint) { c.Status = models.StatusAccepted })
}

func (r *fakeComplaintRepo) UpdateStatusToRejected(ctx context.Context, id uuid.UUID, expectedVersion int64, response *string) (*models.Complaint, error) {
	return r.transition(id, expectedVersion,
		[]models.ComplaintStatusType{models.StatusPending},
		func(c *models.Complaint) {
			c.Status = models.StatusRejected
			if response != nil {
				c.Response = *response
			}
		})
}

func (r *fakeComplaintRepo) UpdateStatusToCompleted(ctx context.Context, id uuid.UUID, expectedVersion int64, response *string) (*models.Complaint, error) {
	return r.transition(id, expectedVersion,
		[]models.ComplaintStatusType{models.StatusAccepted, models.StatusEscalated},
		func(c *models.Complaint) {
			c.Status = models.StatusCompleted
			if response != nil {
				c.Response = *response
			}
		})
}

func (r *fakeComplaintRepo) EscalateAtomic(ctx context.Context, id uuid.UUID, expectedVersion int64, escalatedTo uuid.UUID) (*models.Complaint, error) {
	return r.transition(id, expectedVersion,
		[]models.ComplaintStatusType{models.StatusAccepted},
		func(c *models.Complaint) {
			c.Status = models.StatusEscalated
			c.EscalatedTo = &escalatedTo
		})
}

func (r *fakeComplaintRepo) OverrideAtomic(ctx context.Context, id uuid.UUID, expectedVersion int64, status *models.ComplaintStatusType, response *string) (*models.Complaint, error) {
	return r.transition(id, expectedVersion, nil,
		func(c *models.Complaint) {
			if status != nil {
				c.Status = *status
			}
			if response != nil {
				c.Response = *response
			}
		})
}

type fakeLogRepo struct {
	mu         sync.Mutex
	entries    []*models.ComplaintLog
	seq        int
	baseTime   time.Time
	failCreate error
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{baseTime: time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)}
}

func (r *fakeLogRepo) Create(ctx context.Context, entry *models.ComplaintLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *entry
	r.seq++
	if cp.Timestamp.IsZero() {
		cp.Timestamp = r.baseTime.Add(time.Duration(r.seq) * time.Second)
	}
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLogRepo) ListAll(ctx context.Context) ([]*models.ComplaintLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ComplaintLog, 0, len(r.entries))
	for _, e := range r.entries {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *fakeLogRepo) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]*models.ComplaintLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ComplaintLog
	for _, e := range r.entries {
		if e.ComplaintID == complaintID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *fakeLogRepo) forComplaint(id uuid.UUID) []*models.ComplaintLog {
	logs, _ := r.ListByComplaint(context.Background(), id)
	return logs
}

// fakeNotifier records event names in dispatch order, plus who escalated
// the last escalation.
type fakeNotifier struct {
	mu          sync.Mutex
	events      []string
	escalatedBy *models.User
}

func (n *fakeNotifier) record(event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *fakeNotifier) ComplaintSubmitted(c *models.Complaint, submitter, assignee *models.User) {
	n.record("submitted")
}
func (n *fakeNotifier) ComplaintAccepted(c *models.Complaint, submitter *models.User) {
	n.record("accepted")
}
func (n *fakeNotifier) ComplaintRejected(c *models.Complaint, submitter *models.User) {
	n.record("rejected")
}
func (n *fakeNotifier) ComplaintResolved(c *models.Complaint, submitter *models.User) {
	n.record("resolved")
}
func (n *fakeNotifier) ComplaintEscalated(c *models.Complaint, submitter, escalator, director *models.User) {
	n.mu.Lock()
	n.escalatedBy = escalator
	n.mu.Unlock()
	n.record("escalated")
}
func (n *fakeNotifier) ComplaintStatusUpdated(c *models.Complaint, submitter *models.User, previous models.ComplaintStatusType) {
	n.record("status_updated")
}
