package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/fleetora/fleet-ops-api/internal/reconcile"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================== Report Repository ==============================
type ReportRepo struct {
	db *pgxpool.Pool
}

func NewReportRepo(db *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{db: db}
}

const reportColumns = `id, driver_id, vehicle_number, rent_date, shift, total_trips, total_earnings,
	toll, total_cashcollect, other_fee, deposit_cutting_amount, rent_paid_amount, status,
	is_service_day, rent_verified, created_at, updated_at`

func scanReport(row pgx.Row) (*models.FleetReport, error) {
	rep := &models.FleetReport{}
	err := row.Scan(
		&rep.ID, &rep.DriverID, &rep.VehicleNumber, &rep.RentDate, &rep.Shift, &rep.TotalTrips,
		&rep.TotalEarnings, &rep.Toll, &rep.TotalCashCollect, &rep.OtherFee, &rep.DepositCuttingAmount,
		&rep.RentPaidAmount, &rep.Status, &rep.IsServiceDay, &rep.RentVerified, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// CreateReport inserts a new shift submission. The handler computes
// RentPaidAmount before calling; at most one report per (driver, date,
// shift) is accepted.
func (r *ReportRepo) CreateReport(ctx context.Context, rep *models.FleetReport) error {
	query := `
		INSERT INTO fleet_reports
			(driver_id, vehicle_number, rent_date, shift, total_trips, total_earnings, toll,
			 total_cashcollect, other_fee, deposit_cutting_amount, rent_paid_amount, status,
			 is_service_day, rent_verified, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,false,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at;
	`
	return r.db.QueryRow(ctx, query,
		rep.DriverID, rep.VehicleNumber, rep.RentDate, rep.Shift, rep.TotalTrips, rep.TotalEarnings,
		rep.Toll, rep.TotalCashCollect, rep.OtherFee, rep.DepositCuttingAmount, rep.RentPaidAmount,
		rep.Status, rep.IsServiceDay,
	).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
}

// GetReport fetches a report by ID
func (r *ReportRepo) GetReport(ctx context.Context, id int64) (*models.FleetReport, error) {
	rep, err := scanReport(r.db.QueryRow(ctx, `SELECT `+reportColumns+` FROM fleet_reports WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("no report found")
		}
		return nil, err
	}
	return rep, nil
}

// UpdateReport rewrites the numeric figures of an unverified report. The
// handler recomputes RentPaidAmount from the new figures before calling.
func (r *ReportRepo) UpdateReport(ctx context.Context, rep *models.FleetReport) error {
	query := `
		UPDATE fleet_reports
		SET total_trips=$1, total_earnings=$2, toll=$3, total_cashcollect=$4, other_fee=$5,
		    deposit_cutting_amount=$6, rent_paid_amount=$7, is_service_day=$8, updated_at=CURRENT_TIMESTAMP
		WHERE id=$9 AND rent_verified=false
		RETURNING updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		rep.TotalTrips, rep.TotalEarnings, rep.Toll, rep.TotalCashCollect, rep.OtherFee,
		rep.DepositCuttingAmount, rep.RentPaidAmount, rep.IsServiceDay, rep.ID,
	).Scan(&rep.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.New("report not found or already verified")
	}
	return err
}

// MarkReportLeave flips a pending report to leave status
func (r *ReportRepo) MarkReportLeave(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE fleet_reports SET status=$1, updated_at=CURRENT_TIMESTAMP
		WHERE id=$2 AND status=$3
	`, models.ReportLeave, id, models.ReportPendingVerification)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("report not found or not pending")
	}
	return nil
}

// ApproveReport runs the whole approval as one transaction: deposit ledger
// row plus balance increment, adjustment application into the vehicle's
// expenses, vehicle trip counter, and the status flip. Partial approval
// cannot be observed.
func (r *ReportRepo) ApproveReport(ctx context.Context, reportID int64) (*models.FleetReport, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// --- Step 1: Lock and load the report ---
	rep, err := scanReport(tx.QueryRow(ctx, `SELECT `+reportColumns+` FROM fleet_reports WHERE id=$1 FOR UPDATE`, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("no report found")
		}
		return nil, fmt.Errorf("load report: %w", err)
	}

	// --- Step 2: Lock the matching approved adjustments ---
	adjustments, err := approvedAdjustmentsForUpdateTx(ctx, tx, rep.DriverID, rep.RentDate)
	if err != nil {
		return nil, fmt.Errorf("load adjustments: %w", err)
	}

	plan, err := reconcile.PlanApproval(rep, adjustments)
	if err != nil {
		return nil, err
	}

	// --- Step 3: Deposit ledger row + balance increment ---
	if plan.Deposit != nil {
		reportID := rep.ID
		entry := &models.DriverTransaction{
			DriverID:    rep.DriverID,
			ReportID:    &reportID,
			Amount:      plan.Deposit.Amount,
			Type:        plan.Deposit.Type,
			Description: plan.Deposit.Description,
		}
		if err := CreateBalanceTransactionTx(ctx, tx, entry); err != nil {
			return nil, err
		}
		if err := AdjustDriverPendingBalanceTx(ctx, tx, rep.DriverID, plan.BalanceDelta); err != nil {
			return nil, err
		}
	}

	// --- Step 4: Apply adjustments into the vehicle ledger and aggregate ---
	for _, entry := range plan.VehicleEntries {
		adjustmentID := entry.AdjustmentID
		reportID := rep.ID
		vt := &models.VehicleTransaction{
			VehicleNumber: rep.VehicleNumber,
			ReportID:      &reportID,
			AdjustmentID:  &adjustmentID,
			Amount:        entry.Amount,
			Type:          entry.Type,
			Description:   entry.Description,
		}
		if err := CreateVehicleTransactionTx(ctx, tx, vt); err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, `
			UPDATE common_adjustments
			SET status=$1, applied_to_report=$2, updated_at=CURRENT_TIMESTAMP
			WHERE id=$3
		`, models.AdjustmentApplied, rep.ID, adjustmentID)
		if err != nil {
			return nil, fmt.Errorf("apply adjustment %d: %w", adjustmentID, err)
		}
	}

	perf := &models.VehiclePerformance{
		SheetDate:     rep.RentDate,
		VehicleNumber: rep.VehicleNumber,
		TotalTrips:    int64(plan.TripDelta),
		Earnings:      rep.TotalEarnings,
		OtherExpenses: plan.OtherExpensesDelta,
	}
	if err := SaveVehiclePerformanceTx(ctx, tx, perf); err != nil {
		return nil, err
	}

	// --- Step 5: Vehicle trip counter ---
	_, err = tx.Exec(ctx, `
		UPDATE vehicles
		SET total_trips = total_trips + $1, updated_at=CURRENT_TIMESTAMP
		WHERE vehicle_number=$2
	`, plan.TripDelta, rep.VehicleNumber)
	if err != nil {
		return nil, fmt.Errorf("update vehicle trips: %w", err)
	}

	// --- Step 6: Flip the report ---
	err = tx.QueryRow(ctx, `
		UPDATE fleet_reports
		SET status=$1, rent_verified=true, updated_at=CURRENT_TIMESTAMP
		WHERE id=$2
		RETURNING updated_at
	`, models.ReportApproved, rep.ID).Scan(&rep.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("approve report: %w", err)
	}
	rep.Status = models.ReportApproved
	rep.RentVerified = true

	return rep, tx.Commit(ctx)
}

// RejectReport deletes the deposit ledger rows written for this report and
// subtracts their total back out of the driver's pending balance, in one
// transaction. Applied adjustments are left as they are.
func (r *ReportRepo) RejectReport(ctx context.Context, reportID int64) (*models.FleetReport, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rep, err := scanReport(tx.QueryRow(ctx, `SELECT `+reportColumns+` FROM fleet_reports WHERE id=$1 FOR UPDATE`, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("no report found")
		}
		return nil, fmt.Errorf("load report: %w", err)
	}

	depositRows, err := deleteDepositRowsTx(ctx, tx, rep.ID)
	if err != nil {
		return nil, err
	}

	plan, err := reconcile.PlanRejection(rep, depositRows)
	if err != nil {
		return nil, err
	}
	if plan.BalanceDelta != 0 {
		if err := AdjustDriverPendingBalanceTx(ctx, tx, rep.DriverID, plan.BalanceDelta); err != nil {
			return nil, err
		}
	}

	err = tx.QueryRow(ctx, `
		UPDATE fleet_reports
		SET status=$1, rent_verified=false, updated_at=CURRENT_TIMESTAMP
		WHERE id=$2
		RETURNING updated_at
	`, models.ReportRejected, rep.ID).Scan(&rep.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("reject report: %w", err)
	}
	rep.Status = models.ReportRejected
	rep.RentVerified = false

	return rep, tx.Commit(ctx)
}

// DeleteReport removes a report after unlinking whatever was tied to it:
// applied adjustments go back to approved with no report reference, deposit
// ledger rows are deleted and their total reversed, and the vehicle
// aggregates the approval wrote are taken back out.
func (r *ReportRepo) DeleteReport(ctx context.Context, reportID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rep, err := scanReport(tx.QueryRow(ctx, `SELECT `+reportColumns+` FROM fleet_reports WHERE id=$1 FOR UPDATE`, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("no report found")
		}
		return fmt.Errorf("load report: %w", err)
	}

	applied, err := appliedAdjustmentsForUpdateTx(ctx, tx, rep.ID)
	if err != nil {
		return fmt.Errorf("load applied adjustments: %w", err)
	}
	depositRows, err := deleteDepositRowsTx(ctx, tx, rep.ID)
	if err != nil {
		return err
	}
	vehicleRows, err := deleteVehicleRowsTx(ctx, tx, rep.ID)
	if err != nil {
		return err
	}

	plan := reconcile.PlanDeletion(rep, applied, depositRows, vehicleRows)

	for _, adjustmentID := range plan.AdjustmentIDs {
		_, err = tx.Exec(ctx, `
			UPDATE common_adjustments
			SET status=$1, applied_to_report=NULL, updated_at=CURRENT_TIMESTAMP
			WHERE id=$2
		`, models.AdjustmentApproved, adjustmentID)
		if err != nil {
			return fmt.Errorf("unlink adjustment %d: %w", adjustmentID, err)
		}
	}

	if plan.BalanceDelta != 0 {
		if err := AdjustDriverPendingBalanceTx(ctx, tx, rep.DriverID, plan.BalanceDelta); err != nil {
			return err
		}
	}

	// Reverse the per-day aggregate and the vehicle trip counter with the
	// same additive upsert the approval used, deltas negated.
	if plan.TripDelta != 0 || plan.EarningsDelta != 0 || plan.OtherExpensesDelta != 0 {
		perf := &models.VehiclePerformance{
			SheetDate:     rep.RentDate,
			VehicleNumber: rep.VehicleNumber,
			TotalTrips:    int64(plan.TripDelta),
			Earnings:      plan.EarningsDelta,
			OtherExpenses: plan.OtherExpensesDelta,
		}
		if err := SaveVehiclePerformanceTx(ctx, tx, perf); err != nil {
			return err
		}
	}
	if plan.TripDelta != 0 {
		_, err = tx.Exec(ctx, `
			UPDATE vehicles
			SET total_trips = total_trips + $1, updated_at=CURRENT_TIMESTAMP
			WHERE vehicle_number=$2
		`, plan.TripDelta, rep.VehicleNumber)
		if err != nil {
			return fmt.Errorf("reverse vehicle trips: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `DELETE FROM fleet_reports WHERE id=$1`, rep.ID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	return tx.Commit(ctx)
}

// deleteVehicleRowsTx removes the vehicle ledger rows tied to a report and
// returns them so the caller can reverse the folded expenses.
func deleteVehicleRowsTx(ctx context.Context, tx pgx.Tx, reportID int64) ([]*models.VehicleTransaction, error) {
	rows, err := tx.Query(ctx, `
		DELETE FROM vehicle_transactions
		WHERE report_id=$1
		RETURNING id, reference_id, vehicle_number, report_id, adjustment_id, amount, type, description, created_at
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("delete vehicle rows: %w", err)
	}
	defer rows.Close()

	var deleted []*models.VehicleTransaction
	for rows.Next() {
		var t models.VehicleTransaction
		if err := rows.Scan(&t.ID, &t.ReferenceID, &t.VehicleNumber, &t.ReportID, &t.AdjustmentID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		deleted = append(deleted, &t)
	}
	return deleted, nil
}

// deleteDepositRowsTx removes the deposit ledger rows tied to a report and
// returns them so the caller can reverse the balance.
func deleteDepositRowsTx(ctx context.Context, tx pgx.Tx, reportID int64) ([]*models.DriverTransaction, error) {
	rows, err := tx.Query(ctx, `
		DELETE FROM driver_balance_transactions
		WHERE report_id=$1 AND type=$2
		RETURNING id, reference_id, driver_id, report_id, amount, type, description, created_at
	`, reportID, models.TxnDeposit)
	if err != nil {
		return nil, fmt.Errorf("delete deposit rows: %w", err)
	}
	defer rows.Close()

	var deleted []*models.DriverTransaction
	for rows.Next() {
		var t models.DriverTransaction
		if err := rows.Scan(&t.ID, &t.ReferenceID, &t.DriverID, &t.ReportID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		deleted = append(deleted, &t)
	}
	return deleted, nil
}

// PaginatedReportList returns reports with optional driver, vehicle, status
// and date-range filters, newest first.
func (r *ReportRepo) PaginatedReportList(ctx context.Context, page, limit int, driverID int64, vehicleNumber, status string, start, end *time.Time) ([]*models.FleetReport, int, error) {
	offset := (page - 1) * limit

	query := `
		SELECT r.id, r.driver_id, r.vehicle_number, r.rent_date, r.shift, r.total_trips, r.total_earnings,
		       r.toll, r.total_cashcollect, r.other_fee, r.deposit_cutting_amount, r.rent_paid_amount,
		       r.status, r.is_service_day, r.rent_verified, r.created_at, r.updated_at, d.full_name
		FROM fleet_reports r
		JOIN drivers d ON d.id = r.driver_id
		WHERE 1=1
	`
	countQuery := `SELECT COUNT(*) FROM fleet_reports r WHERE 1=1`

	args := []interface{}{}
	countArgs := []interface{}{}
	argIdx := 1

	if driverID > 0 {
		query += fmt.Sprintf(" AND r.driver_id = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND r.driver_id = $%d", argIdx)
		args = append(args, driverID)
		countArgs = append(countArgs, driverID)
		argIdx++
	}
	if vehicleNumber != "" {
		query += fmt.Sprintf(" AND r.vehicle_number = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND r.vehicle_number = $%d", argIdx)
		args = append(args, vehicleNumber)
		countArgs = append(countArgs, vehicleNumber)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND r.status = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, status)
		countArgs = append(countArgs, status)
		argIdx++
	}
	if start != nil && end != nil {
		query += fmt.Sprintf(" AND r.rent_date BETWEEN $%d AND $%d", argIdx, argIdx+1)
		countQuery += fmt.Sprintf(" AND r.rent_date BETWEEN $%d AND $%d", argIdx, argIdx+1)
		args = append(args, *start, *end)
		countArgs = append(countArgs, *start, *end)
		argIdx += 2
	}

	query += fmt.Sprintf(" ORDER BY r.rent_date DESC, r.id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
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

	reports := []*models.FleetReport{}
	for rows.Next() {
		var rep models.FleetReport
		err := rows.Scan(
			&rep.ID, &rep.DriverID, &rep.VehicleNumber, &rep.RentDate, &rep.Shift, &rep.TotalTrips,
			&rep.TotalEarnings, &rep.Toll, &rep.TotalCashCollect, &rep.OtherFee, &rep.DepositCuttingAmount,
			&rep.RentPaidAmount, &rep.Status, &rep.IsServiceDay, &rep.RentVerified, &rep.CreatedAt,
			&rep.UpdatedAt, &rep.DriverName,
		)
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, &rep)
	}

	return reports, total, nil
}

// GetReportOverview returns per-status counts and sums for the window
// around refDate given by summaryType (daily, weekly, monthly, yearly, all).
func (r *ReportRepo) GetReportOverview(ctx context.Context, summaryType string, refDate time.Time) (*models.ReportOverview, error) {
	var startDate, endDate time.Time

	switch summaryType {
	case "daily":
		startDate = refDate
		endDate = refDate
	case "weekly":
		weekday := int(refDate.Weekday())
		startDate = refDate.AddDate(0, 0, -weekday)
		endDate = startDate.AddDate(0, 0, 6)
	case "monthly":
		startDate = time.Date(refDate.Year(), refDate.Month(), 1, 0, 0, 0, 0, refDate.Location())
		endDate = startDate.AddDate(0, 1, -1)
	case "yearly":
		startDate = time.Date(refDate.Year(), 1, 1, 0, 0, 0, 0, refDate.Location())
		endDate = time.Date(refDate.Year(), 12, 31, 0, 0, 0, 0, refDate.Location())
	case "all":
		startDate = time.Time{}
		endDate = time.Now()
	default:
		return nil, fmt.Errorf("invalid summary type: %s", summaryType)
	}

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status=$3 AND rent_date BETWEEN $1 AND $2),
			COUNT(*) FILTER (WHERE status=$4 AND rent_date BETWEEN $1 AND $2),
			COUNT(*) FILTER (WHERE status=$5 AND rent_date BETWEEN $1 AND $2),
			COUNT(*) FILTER (WHERE status=$6 AND rent_date BETWEEN $1 AND $2),
			COUNT(*) FILTER (WHERE rent_date BETWEEN $1 AND $2),
			COALESCE(SUM(total_earnings) FILTER (WHERE rent_date BETWEEN $1 AND $2),0),
			COALESCE(SUM(rent_paid_amount) FILTER (WHERE status=$4 AND rent_date BETWEEN $1 AND $2),0)
		FROM fleet_reports
	`

	var o models.ReportOverview
	err := r.db.QueryRow(ctx, query, startDate, endDate,
		models.ReportPendingVerification, models.ReportApproved, models.ReportRejected, models.ReportLeave,
	).Scan(
		&o.PendingReports, &o.ApprovedReports, &o.RejectedReports, &o.LeaveReports, &o.TotalReports,
		&o.TotalEarnings, &o.TotalRentPaid,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
