package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================== Hiring Repository ==============================
type HiringRepo struct {
	db *pgxpool.Pool
}

func NewHiringRepo(db *pgxpool.Pool) *HiringRepo {
	return &HiringRepo{db: db}
}

// CreateCycle opens a new hiring cycle
func (r *HiringRepo) CreateCycle(ctx context.Context, c *models.HiringCycle) (int64, error) {
	query := `
		INSERT INTO hiring_cycles (title, vacancies, status, opened_at)
		VALUES ($1, $2, 'open', NOW())
		RETURNING id, opened_at, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, c.Title, c.Vacancies).
		Scan(&c.ID, &c.OpenedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return 0, err
	}
	c.Status = "open"
	return c.ID, nil
}

// GetCycle fetches a single hiring cycle by id
func (r *HiringRepo) GetCycle(ctx context.Context, cycleID int64) (*models.HiringCycle, error) {
	query := `
		SELECT id, title, vacancies, status, opened_at, closed_at, created_at, updated_at
		FROM hiring_cycles
		WHERE id=$1
	`
	var c models.HiringCycle
	err := r.db.QueryRow(ctx, query, cycleID).
		Scan(&c.ID, &c.Title, &c.Vacancies, &c.Status, &c.OpenedAt, &c.ClosedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hiring cycle not found")
		}
		return nil, err
	}
	return &c, nil
}

// ListCycles returns hiring cycles, newest first, optionally filtered by status
func (r *HiringRepo) ListCycles(ctx context.Context, status string) ([]*models.HiringCycle, error) {
	query := `
		SELECT id, title, vacancies, status, opened_at, closed_at, created_at, updated_at
		FROM hiring_cycles
		WHERE 1=1
	`
	args := []interface{}{}
	if status != "" {
		query += ` AND status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY opened_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []*models.HiringCycle
	for rows.Next() {
		var c models.HiringCycle
		if err := rows.Scan(&c.ID, &c.Title, &c.Vacancies, &c.Status, &c.OpenedAt, &c.ClosedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cycles = append(cycles, &c)
	}
	return cycles, nil
}

// ArchiveCycle closes a cycle and auto-rejects its still-pending applicants,
// both in one transaction.
func (r *HiringRepo) ArchiveCycle(ctx context.Context, cycleID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE hiring_cycles
		SET status='archived', closed_at=NOW(), updated_at=NOW()
		WHERE id=$1 AND status='open'
	`, cycleID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("hiring cycle not found or already archived")
	}

	_, err = tx.Exec(ctx, `
		UPDATE applicants
		SET status='rejected', updated_at=NOW()
		WHERE cycle_id=$1 AND status='pending'
	`, cycleID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CreateApplicant adds an applicant to an open cycle
func (r *HiringRepo) CreateApplicant(ctx context.Context, a *models.Applicant) (int64, error) {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM hiring_cycles WHERE id=$1`, a.CycleID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("hiring cycle not found")
		}
		return 0, err
	}
	if status != "open" {
		return 0, fmt.Errorf("hiring cycle is archived")
	}

	query := `
		INSERT INTO applicants (cycle_id, name, mobile, status, notes)
		VALUES ($1, $2, $3, 'pending', $4)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query, a.CycleID, a.Name, a.Mobile, a.Notes).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return 0, err
	}
	a.Status = "pending"
	return a.ID, nil
}

// UpdateApplicantStatus moves a pending applicant to approved or rejected.
// Approval records the agreed joining date.
func (r *HiringRepo) UpdateApplicantStatus(ctx context.Context, applicantID int64, status string, joiningDate *string) error {
	switch status {
	case "approved":
		if joiningDate == nil {
			return fmt.Errorf("joining_date is required on approval")
		}
		ct, err := r.db.Exec(ctx, `
			UPDATE applicants
			SET status='approved', joining_date=$1, updated_at=NOW()
			WHERE id=$2 AND status='pending'
		`, *joiningDate, applicantID)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return fmt.Errorf("applicant not found or already decided")
		}
		return nil
	case "rejected":
		ct, err := r.db.Exec(ctx, `
			UPDATE applicants
			SET status='rejected', updated_at=NOW()
			WHERE id=$1 AND status='pending'
		`, applicantID)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return fmt.Errorf("applicant not found or already decided")
		}
		return nil
	default:
		return fmt.Errorf("invalid applicant status: %s", status)
	}
}

// PaginatedApplicantList returns applicants with total count, filtered by
// cycle and status.
func (r *HiringRepo) PaginatedApplicantList(ctx context.Context, pageNo, pageLength int, cycleID int64, status string) ([]*models.Applicant, int, error) {
	query := `
		SELECT COUNT(*) OVER() AS total_count,
			id, cycle_id, name, mobile, status, joining_date, notes, created_at, updated_at
		FROM applicants
		WHERE 1=1
	`
	args := []interface{}{}
	argID := 1
	if cycleID > 0 {
		query += ` AND cycle_id=$` + strconv.Itoa(argID)
		args = append(args, cycleID)
		argID++
	}
	if status != "" {
		query += ` AND status=$` + strconv.Itoa(argID)
		args = append(args, status)
		argID++
	}

	query += ` ORDER BY created_at DESC`

	if pageLength != -1 {
		offset := (pageNo - 1) * pageLength
		query += ` LIMIT $` + strconv.Itoa(argID) + ` OFFSET $` + strconv.Itoa(argID+1)
		args = append(args, pageLength, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var total int
	var applicants []*models.Applicant
	for rows.Next() {
		var a models.Applicant
		if err := rows.Scan(&total, &a.ID, &a.CycleID, &a.Name, &a.Mobile, &a.Status, &a.JoiningDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		applicants = append(applicants, &a)
	}
	return applicants, total, nil
}
