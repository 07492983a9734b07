package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
)

// ComplaintLogRepository is append-only: entries are never updated or
// deleted once written.
type ComplaintLogRepository interface {
	Create(ctx context.Context, entry *models.ComplaintLog) error

	// ListAll returns every entry, newest first.
	ListAll(ctx context.Context) ([]*models.ComplaintLog, error)

	// ListByComplaint returns entries for one complaint in chronological
	// order (oldest first) — the causal history of the complaint.
	ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]*models.ComplaintLog, error)
}

type complaintLogRepo struct {
	db DB
}

func NewComplaintLogRepository(db DB) ComplaintLogRepository {
	return &complaintLogRepo{db: db}
}

func baseSelectLog() string {
	return `
        SELECT
            id, complaint_id, action, performed_by,
            previous_status, new_status, remarks,
            assigned_to, escalated_to, timestamp
        FROM complaint_logs
    `
}

func scanLog(row pgx.Row) (*models.ComplaintLog, error) {
	var e models.ComplaintLog
	var remarks *string
	err := row.Scan(
		&e.ID,
		&e.ComplaintID,
		&e.Action,
		&e.PerformedBy,
		&e.PreviousStatus,
		&e.NewStatus,
		&remarks,
		&e.AssignedTo,
		&e.EscalatedTo,
		&e.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	if remarks != nil {
		e.Remarks = *remarks
	}
	return &e, nil
}

func (r *complaintLogRepo) Create(ctx context.Context, entry *models.ComplaintLog) error {
	// Backfilled entries carry a historical timestamp; everything else
	// is stamped at insert time.
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO complaint_logs (
            id, complaint_id, action, performed_by,
            previous_status, new_status, remarks,
            assigned_to, escalated_to, timestamp
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `,
		entry.ID,
		entry.ComplaintID,
		entry.Action,
		entry.PerformedBy,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.Remarks,
		entry.AssignedTo,
		entry.EscalatedTo,
		entry.Timestamp,
	)
	return err
}

func (r *complaintLogRepo) list(ctx context.Context, where, order string, args ...interface{}) ([]*models.ComplaintLog, error) {
	rows, err := r.db.Query(ctx, baseSelectLog()+where+order, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ComplaintLog
	for rows.Next() {
		e, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *complaintLogRepo) ListAll(ctx context.Context) ([]*models.ComplaintLog, error) {
	return r.list(ctx, "", " ORDER BY timestamp DESC")
}

func (r *complaintLogRepo) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]*models.ComplaintLog, error) {
	return r.list(ctx, " WHERE complaint_id=$1", " ORDER BY timestamp ASC", complaintID)
}
