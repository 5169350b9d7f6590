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

// ============================== Driver Repository ==============================
type DriverRepo struct {
	db *pgxpool.Pool
}

func NewDriverRepo(db *pgxpool.Pool) *DriverRepo {
	return &DriverRepo{db: db}
}

const driverColumns = `id, full_name, mobile, shift, vehicle_number, driver_status, online,
	pending_balance, total_penalties, joining_date, offline_from_date, online_from_date,
	resigning_date, resignation_reason, leave_return_date, weekly_off_day, created_at, updated_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	d := &models.Driver{}
	err := row.Scan(
		&d.ID, &d.FullName, &d.Mobile, &d.Shift, &d.VehicleNumber, &d.DriverStatus, &d.Online,
		&d.PendingBalance, &d.TotalPenalties, &d.JoiningDate, &d.OfflineFromDate, &d.OnlineFromDate,
		&d.ResigningDate, &d.ResignationReason, &d.LeaveReturnDate, &d.WeeklyOffDay, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CreateDriver inserts a new driver
func (r *DriverRepo) CreateDriver(ctx context.Context, d *models.Driver) error {
	query := `
		INSERT INTO drivers
			(full_name, mobile, shift, vehicle_number, online, pending_balance, total_penalties,
			 joining_date, weekly_off_day, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at;
	`
	return r.db.QueryRow(ctx, query,
		d.FullName, d.Mobile, d.Shift, d.VehicleNumber, d.Online,
		d.PendingBalance, d.TotalPenalties, d.JoiningDate, d.WeeklyOffDay,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// GetDriver fetches a driver by ID
func (r *DriverRepo) GetDriver(ctx context.Context, id int64) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id=$1`
	d, err := scanDriver(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("no driver found")
		}
		return nil, err
	}
	return d, nil
}

// UpdateDriver updates general driver details
func (r *DriverRepo) UpdateDriver(ctx context.Context, d *models.Driver) error {
	query := `
		UPDATE drivers
		SET full_name=$1, mobile=$2, shift=$3, vehicle_number=$4, weekly_off_day=$5, updated_at=CURRENT_TIMESTAMP
		WHERE id=$6
		RETURNING updated_at;
	`
	return r.db.QueryRow(ctx, query,
		d.FullName, d.Mobile, d.Shift, d.VehicleNumber, d.WeeklyOffDay, d.ID,
	).Scan(&d.UpdatedAt)
}

// UpdateDriverStatus sets the driver_status transition fields: leave with a
// return date, resigning with date and reason, or going_to_24hr. A nil
// status clears the transition back to active.
func (r *DriverRepo) UpdateDriverStatus(ctx context.Context, d *models.Driver) error {
	query := `
		UPDATE drivers
		SET driver_status=$1, leave_return_date=$2, resigning_date=$3, resignation_reason=$4,
		    updated_at=CURRENT_TIMESTAMP
		WHERE id=$5
		RETURNING updated_at;
	`
	return r.db.QueryRow(ctx, query,
		d.DriverStatus, d.LeaveReturnDate, d.ResigningDate, d.ResignationReason, d.ID,
	).Scan(&d.UpdatedAt)
}

// SetDriverOffline marks the driver offline starting from the given date.
// The overdue gate lives in the handler; this is the raw transition.
func (r *DriverRepo) SetDriverOffline(ctx context.Context, id int64, from time.Time) error {
	query := `
		UPDATE drivers
		SET online=false, offline_from_date=$1, online_from_date=NULL, updated_at=CURRENT_TIMESTAMP
		WHERE id=$2
	`
	_, err := r.db.Exec(ctx, query, from, id)
	return err
}

// SetDriverOnline marks the driver online again from the given date
func (r *DriverRepo) SetDriverOnline(ctx context.Context, id int64, from time.Time) error {
	query := `
		UPDATE drivers
		SET online=true, online_from_date=$1, updated_at=CURRENT_TIMESTAMP
		WHERE id=$2
	`
	_, err := r.db.Exec(ctx, query, from, id)
	return err
}

// PaginatedDriverList returns a paginated list of drivers with optional
// shift, driver_status and online filters.
func (r *DriverRepo) PaginatedDriverList(ctx context.Context, page, limit int, shift, status string, online *bool) ([]*models.Driver, int, error) {
	offset := (page - 1) * limit

	query := `SELECT ` + driverColumns + ` FROM drivers WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM drivers WHERE 1=1`

	args := []interface{}{}
	countArgs := []interface{}{}
	argIdx := 1

	if shift != "" {
		query += fmt.Sprintf(" AND shift = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND shift = $%d", argIdx)
		args = append(args, shift)
		countArgs = append(countArgs, shift)
		argIdx++
	}

	if status != "" {
		query += fmt.Sprintf(" AND driver_status = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND driver_status = $%d", argIdx)
		args = append(args, status)
		countArgs = append(countArgs, status)
		argIdx++
	}

	if online != nil {
		query += fmt.Sprintf(" AND online = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND online = $%d", argIdx)
		args = append(args, *online)
		countArgs = append(countArgs, *online)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
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

	drivers := []*models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, 0, err
		}
		drivers = append(drivers, d)
	}

	return drivers, total, nil
}

// ReportStatusByDate returns the driver's report statuses keyed by rent date
// ("2006-01-02") for the given range. The duty evaluator and calendar
// endpoint both consume this map.
func (r *DriverRepo) ReportStatusByDate(ctx context.Context, driverID int64, start, end time.Time) (map[string]string, error) {
	query := `
		SELECT rent_date, status
		FROM fleet_reports
		WHERE driver_id=$1 AND rent_date BETWEEN $2 AND $3
	`
	rows, err := r.db.Query(ctx, query, driverID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := map[string]string{}
	for rows.Next() {
		var date time.Time
		var status string
		if err := rows.Scan(&date, &status); err != nil {
			return nil, err
		}
		statuses[date.Format("2006-01-02")] = status
	}
	return statuses, nil
}

// BalanceSummary computes the ledger-derived outstanding position:
// pending_balance + penalty credits - penalty debits. When the ledger sum
// query fails, the denormalized total_penalties is used as a degraded
// fallback instead of failing the lookup.
func (r *DriverRepo) BalanceSummary(ctx context.Context, driverID int64) (*models.DriverBalanceSummary, error) {
	d, err := r.GetDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	summary := &models.DriverBalanceSummary{
		DriverID:       driverID,
		PendingBalance: d.PendingBalance,
	}

	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = $2), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = $3), 0)
		FROM driver_penalty_transactions
		WHERE driver_id = $1
	`
	err = r.db.QueryRow(ctx, query, driverID, models.TxnPenalty, models.TxnPenaltyPaid).
		Scan(&summary.PenaltyCredits, &summary.PenaltyDebits)
	if err != nil {
		// stale fallback: the denormalized counter
		summary.PenaltyCredits = d.TotalPenalties
		summary.PenaltyDebits = 0
		summary.LedgerDegraded = true
	}

	summary.OutstandingBalance = summary.PendingBalance + summary.PenaltyCredits - summary.PenaltyDebits
	return summary, nil
}
