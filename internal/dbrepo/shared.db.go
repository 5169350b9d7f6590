package dbrepo

import (
	"context"
	"fmt"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateBalanceTransactionTx appends a driver_balance_transactions row inside
// an open transaction. A fresh reference id is generated when none is set so
// later reversals can target exact rows.
func CreateBalanceTransactionTx(ctx context.Context, tx pgx.Tx, t *models.DriverTransaction) error {
	if t.ReferenceID == "" {
		t.ReferenceID = uuid.NewString()
	}
	query := `
		INSERT INTO driver_balance_transactions
			(reference_id, driver_id, report_id, amount, type, description, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,CURRENT_TIMESTAMP)
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, query,
		t.ReferenceID, t.DriverID, t.ReportID, t.Amount, t.Type, t.Description,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert balance transaction: %w", err)
	}
	return nil
}

// CreatePenaltyTransactionTx appends a driver_penalty_transactions row inside
// an open transaction.
func CreatePenaltyTransactionTx(ctx context.Context, tx pgx.Tx, t *models.DriverTransaction) error {
	if t.ReferenceID == "" {
		t.ReferenceID = uuid.NewString()
	}
	query := `
		INSERT INTO driver_penalty_transactions
			(reference_id, driver_id, report_id, amount, type, description, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,CURRENT_TIMESTAMP)
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, query,
		t.ReferenceID, t.DriverID, t.ReportID, t.Amount, t.Type, t.Description,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert penalty transaction: %w", err)
	}
	return nil
}

// CreateVehicleTransactionTx appends a vehicle_transactions row inside an
// open transaction.
func CreateVehicleTransactionTx(ctx context.Context, tx pgx.Tx, t *models.VehicleTransaction) error {
	if t.ReferenceID == "" {
		t.ReferenceID = uuid.NewString()
	}
	query := `
		INSERT INTO vehicle_transactions
			(reference_id, vehicle_number, report_id, adjustment_id, amount, type, description, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,CURRENT_TIMESTAMP)
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, query,
		t.ReferenceID, t.VehicleNumber, t.ReportID, t.AdjustmentID, t.Amount, t.Type, t.Description,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert vehicle transaction: %w", err)
	}
	return nil
}

// SaveVehiclePerformanceTx upserts the per-day vehicle aggregate, adding the
// deltas onto whatever is already recorded for that date.
func SaveVehiclePerformanceTx(ctx context.Context, tx pgx.Tx, vp *models.VehiclePerformance) error {
	query := `
		INSERT INTO vehicle_performance (sheet_date, vehicle_number, total_trips, earnings, other_expenses)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (sheet_date, vehicle_number) DO UPDATE SET
			total_trips    = vehicle_performance.total_trips + EXCLUDED.total_trips,
			earnings       = vehicle_performance.earnings + EXCLUDED.earnings,
			other_expenses = vehicle_performance.other_expenses + EXCLUDED.other_expenses;
	`
	_, err := tx.Exec(ctx, query, vp.SheetDate, vp.VehicleNumber, vp.TotalTrips, vp.Earnings, vp.OtherExpenses)
	if err != nil {
		return fmt.Errorf("save vehicle performance: %w", err)
	}
	return nil
}

// AdjustDriverPendingBalanceTx shifts drivers.pending_balance with a single
// server-side increment so concurrent approvals cannot race a read-then-write.
func AdjustDriverPendingBalanceTx(ctx context.Context, tx pgx.Tx, driverID int64, delta float64) error {
	_, err := tx.Exec(ctx, `
		UPDATE drivers
		SET pending_balance = pending_balance + $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, delta, driverID)
	if err != nil {
		return fmt.Errorf("adjust pending balance: %w", err)
	}
	return nil
}

// AdjustDriverTotalPenaltiesTx shifts the denormalized drivers.total_penalties
func AdjustDriverTotalPenaltiesTx(ctx context.Context, tx pgx.Tx, driverID int64, delta float64) error {
	_, err := tx.Exec(ctx, `
		UPDATE drivers
		SET total_penalties = total_penalties + $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, delta, driverID)
	if err != nil {
		return fmt.Errorf("adjust total penalties: %w", err)
	}
	return nil
}
