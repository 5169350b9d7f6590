package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================== Adjustment Repository ==============================
type AdjustmentRepo struct {
	db *pgxpool.Pool
}

func NewAdjustmentRepo(db *pgxpool.Pool) *AdjustmentRepo {
	return &AdjustmentRepo{db: db}
}

const adjustmentColumns = `id, driver_id, vehicle_number, amount, category, description,
	adjustment_date, status, applied_to_report, created_at, updated_at`

func scanAdjustment(row pgx.Row) (*models.CommonAdjustment, error) {
	a := &models.CommonAdjustment{}
	err := row.Scan(
		&a.ID, &a.DriverID, &a.VehicleNumber, &a.Amount, &a.Category, &a.Description,
		&a.AdjustmentDate, &a.Status, &a.AppliedToReport, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAdjustment inserts a new adjustment in pending or approved status
func (r *AdjustmentRepo) CreateAdjustment(ctx context.Context, a *models.CommonAdjustment) error {
	if a.Status != models.AdjustmentPending && a.Status != models.AdjustmentApproved {
		return fmt.Errorf("adjustments start as %s or %s, not %s", models.AdjustmentPending, models.AdjustmentApproved, a.Status)
	}
	query := `
		INSERT INTO common_adjustments
			(driver_id, vehicle_number, amount, category, description, adjustment_date, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at;
	`
	return r.db.QueryRow(ctx, query,
		a.DriverID, a.VehicleNumber, a.Amount, a.Category, a.Description, a.AdjustmentDate, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// GetAdjustment fetches an adjustment by ID
func (r *AdjustmentRepo) GetAdjustment(ctx context.Context, id int64) (*models.CommonAdjustment, error) {
	a, err := scanAdjustment(r.db.QueryRow(ctx, `SELECT `+adjustmentColumns+` FROM common_adjustments WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("no adjustment found")
		}
		return nil, err
	}
	return a, nil
}

// UpdateAdjustmentStatus moves a pending adjustment to approved or rejected.
// Applied adjustments never transition here; application happens only inside
// the report approval transaction.
func (r *AdjustmentRepo) UpdateAdjustmentStatus(ctx context.Context, id int64, status string) (*models.CommonAdjustment, error) {
	if status != models.AdjustmentApproved && status != models.AdjustmentRejected {
		return nil, fmt.Errorf("adjustments can only move to %s or %s here", models.AdjustmentApproved, models.AdjustmentRejected)
	}
	query := `
		UPDATE common_adjustments
		SET status=$1, updated_at=CURRENT_TIMESTAMP
		WHERE id=$2 AND status=$3
		RETURNING ` + adjustmentColumns + `;
	`
	a, err := scanAdjustment(r.db.QueryRow(ctx, query, status, id, models.AdjustmentPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("adjustment not found or not pending")
		}
		return nil, err
	}
	return a, nil
}

// PaginatedAdjustmentList returns adjustments with optional status, driver,
// vehicle and date-range filters, newest first.
func (r *AdjustmentRepo) PaginatedAdjustmentList(ctx context.Context, page, limit int, status string, driverID int64, vehicleNumber string, start, end *time.Time) ([]*models.CommonAdjustment, int, error) {
	offset := (page - 1) * limit

	query := `SELECT ` + adjustmentColumns + ` FROM common_adjustments WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM common_adjustments WHERE 1=1`

	args := []interface{}{}
	countArgs := []interface{}{}
	argIdx := 1

	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		countArgs = append(countArgs, status)
		argIdx++
	}
	if driverID > 0 {
		query += fmt.Sprintf(" AND driver_id = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND driver_id = $%d", argIdx)
		args = append(args, driverID)
		countArgs = append(countArgs, driverID)
		argIdx++
	}
	if vehicleNumber != "" {
		query += fmt.Sprintf(" AND vehicle_number = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND vehicle_number = $%d", argIdx)
		args = append(args, vehicleNumber)
		countArgs = append(countArgs, vehicleNumber)
		argIdx++
	}
	if start != nil && end != nil {
		query += fmt.Sprintf(" AND adjustment_date BETWEEN $%d AND $%d", argIdx, argIdx+1)
		countQuery += fmt.Sprintf(" AND adjustment_date BETWEEN $%d AND $%d", argIdx, argIdx+1)
		args = append(args, *start, *end)
		countArgs = append(countArgs, *start, *end)
		argIdx += 2
	}

	query += fmt.Sprintf(" ORDER BY adjustment_date DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	adjustments := []*models.CommonAdjustment{}
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, 0, err
		}
		adjustments = append(adjustments, a)
	}

	return adjustments, total, nil
}

// approvedAdjustmentsForUpdateTx locks and returns the approved adjustments
// matching a report's driver and date, for application inside the report
// approval transaction.
func approvedAdjustmentsForUpdateTx(ctx context.Context, tx pgx.Tx, driverID int64, date time.Time) ([]*models.CommonAdjustment, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+adjustmentColumns+`
		FROM common_adjustments
		WHERE driver_id=$1 AND adjustment_date=$2 AND status=$3
		ORDER BY id
		FOR UPDATE
	`, driverID, date, models.AdjustmentApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adjustments []*models.CommonAdjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, nil
}

// appliedAdjustmentsForUpdateTx locks and returns the adjustments applied to
// a report, for unlinking inside the report deletion transaction.
func appliedAdjustmentsForUpdateTx(ctx context.Context, tx pgx.Tx, reportID int64) ([]*models.CommonAdjustment, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+adjustmentColumns+`
		FROM common_adjustments
		WHERE applied_to_report=$1 AND status=$2
		ORDER BY id
		FOR UPDATE
	`, reportID, models.AdjustmentApplied)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adjustments []*models.CommonAdjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, nil
}
