package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
)

type ComplaintRepository interface {
	Create(ctx context.Context, c *models.Complaint) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error)

	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*models.Complaint, error)
	ListByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]*models.Complaint, error)
	ListAll(ctx context.Context) ([]*models.Complaint, error)

	// Guided transitions. Each runs in a transaction, re-reads the row
	// FOR UPDATE, verifies the expected row version and the status
	// precondition, then writes the new status in the same statement
	// batch. Concurrent callers lose with a row_version_conflict error.
	UpdateStatusToAccepted(ctx context.Context, id uuid.UUID, expectedVersion int64) (*models.Complaint, error)
	UpdateStatusToRejected(ctx context.Context, id uuid.UUID, expectedVersion int64, response *string) (*models.Complaint, error)
	UpdateStatusToCompleted(ctx context.Context, id uuid.UUID, expectedVersion int64, response *string) (*models.Complaint, error)
	EscalateAtomic(ctx context.Context, id uuid.UUID, expectedVersion int64, escalatedTo uuid.UUID) (*models.Complaint, error)

	// Administrative override: writes status and/or response without path
	// validation. Still version-checked.
	OverrideAtomic(ctx context.Context, id uuid.UUID, expectedVersion int64, status *models.ComplaintStatusType, response *string) (*models.Complaint, error)
}

type complaintRepo struct {
	db DB
}

func NewComplaintRepository(db DB) ComplaintRepository {
	return &complaintRepo{db: db}
}

func baseSelectComplaint() string {
	return `
        SELECT
            id, title, description, category, created_by,
            assigned_to, escalated_to, status, response,
            row_version, created_at, updated_at
        FROM complaints
    `
}

func scanComplaint(row pgx.Row) (*models.Complaint, error) {
	var c models.Complaint
	var response *string
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.CreatedBy,
		&c.AssignedTo,
		&c.EscalatedTo,
		&c.Status,
		&response,
		&c.RowVersion,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if response != nil {
		c.Response = *response
	}
	return &c, nil
}

func (r *complaintRepo) Create(ctx context.Context, c *models.Complaint) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO complaints (
            id, title, description, category, created_by,
            assigned_to, escalated_to, status, response,
            row_version, created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,1,$10,NOW()
        )
    `,
		c.ID,
		c.Title,
		c.Description,
		c.Category,
		c.CreatedBy,
		c.AssignedTo,
		c.EscalatedTo,
		c.Status,
		c.Response,
		createdAt,
	)
	return err
}

func (r *complaintRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	row := r.db.QueryRow(ctx, baseSelectComplaint()+" WHERE id=$1", id)
	c, err := scanComplaint(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *complaintRepo) listWhere(ctx context.Context, where string, args ...interface{}) ([]*models.Complaint, error) {
	rows, err := r.db.Query(ctx, baseSelectComplaint()+where+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *complaintRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*models.Complaint, error) {
	return r.listWhere(ctx, " WHERE created_by=$1", creatorID)
}

func (r *complaintRepo) ListByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]*models.Complaint, error) {
	return r.listWhere(ctx, " WHERE assigned_to=$1", assigneeID)
}

func (r *complaintRepo) ListAll(ctx context.Context) ([]*models.Complaint, error) {
	return r.listWhere(ctx, "")
}

// transition re-reads the complaint inside a transaction, runs the checks,
// applies the update statement, and returns the fresh row.
func (r *complaintRepo) transition(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int64,
	allowedFrom []models.ComplaintStatusType,
	apply func(tx pgx.Tx, current *models.Complaint) error,
) (*models.Complaint, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectComplaint()+" WHERE id=$1 FOR UPDATE", id)
	c, err := scanComplaint(row)
	if err != nil {
		return nil, err
	}
	if c.RowVersion != expectedVersion {
		err = fmt.Errorf("row_version_conflict")
		return c, err
	}
	if len(allowedFrom) > 0 {
		ok := false
		for _, st := range allowedFrom {
			if c.Status == st {
				ok = true
				break
			}
		}
		if !ok {
			err = fmt.Errorf("cannot transition complaint in status %q", c.Status)
			return c, err
		}
	}

	if err = apply(tx, c); err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectComplaint()+" WHERE id=$1", id)
	return scanComplaint(newRow)
}

func (r *complaintRepo) UpdateStatusToAccepted(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int64,
) (*models.Complaint, error) {
	return r.transition(ctx, id, expectedVersion,
		[]models.ComplaintStatusType{models.StatusPending},
		func(tx pgx.Tx, _ *models.Complaint) error {
			_, err := tx.Exec(ctx, `
                UPDATE complaints
                SET status=$1, row_version=row_version+1, updated_at=NOW()
                WHERE id=$2
            `, models.StatusAccepted, id)
			return err
		})
}

func (r *complaintRepo) UpdateStatusToRejected(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int64,
	response *string,
) (*models.Complaint, error) {
	return r.transition(ctx, id, expectedVersion,
		[]models.ComplaintStatusType{models.StatusPending},
		func(tx pgx.Tx, _ *models.Complaint) error {
			_, err := tx.Exec(ctx, `
                UPDATE complaints
                SET status=$1,
                    response=COALESCE($2, response),
                    row_version=row_version+1, updated_at=NOW()
                WHERE id=$3
            `, models.StatusRejected, response, id)
			return err
		})
}

func (r *complaintRepo) UpdateStatusToCompleted(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int64,
	response *string,
) (*models.Complaint, error) {
	return r.transition(ctx, id, expectedVersion,
		[]models.ComplaintStatusType{models.StatusAccepted, models.StatusEscalated},
		func(tx pgx.Tx, _ *models.Complaint) error {
			_, err := tx.Exec(ctx, `
                UPDATE complaints
                SET status=$1,
                    response=COALESCE($2, response),
                    row_version=row_version+1, updated_at=NOW()
                WHERE id=$3
            `, models.StatusCompleted, response, id)
			return err
		})
}

func (r *complaintRepo) EscalateAtomic(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int64,
	escalatedTo uuid.UUID,
) (*models.Complaint, error) {
	return r.transition(ctx, id, expectedVersion,
		[]models.ComplaintStatusType{models.StatusAccepted},
		func(tx pgx.Tx, _ *models.Complaint) error {
			_, err := tx.Exec(ctx, `
                UPDATE complaints
                SET status=$1, escalated_to=$2,
                    row_version=row_version+1, updated_at=NOW()
                WHERE id=$3
            `, models.StatusEscalated, escalatedTo, id)
			return err
		})
}

func (r *complaintRepo) OverrideAtomic(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int64,
	status *models.ComplaintStatusType,
	response *string,
) (*models.Complaint, error) {
	return r.transition(ctx, id, expectedVersion, nil,
		func(tx pgx.Tx, _ *models.Complaint) error {
			_, err := tx.Exec(ctx, `
                UPDATE complaints
                SET status=COALESCE($1, status),
                    response=COALESCE($2, response),
                    row_version=row_version+1, updated_at=NOW()
                WHERE id=$3
            `, status, response, id)
			return err
		})
}
