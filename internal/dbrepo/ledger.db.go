package dbrepo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================== Ledger Repository ==============================
// The three transaction tables are append-only; rows are only ever inserted
// here or deleted by the report rejection/deletion flows.
type LedgerRepo struct {
	db *pgxpool.Pool
}

func NewLedgerRepo(db *pgxpool.Pool) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// RecordPenalty appends a penalty ledger row and moves the denormalized
// total in the same transaction. Positive amounts with type penalty raise
// the outstanding total; penalty_paid rows lower it.
func (r *LedgerRepo) RecordPenalty(ctx context.Context, t *models.DriverTransaction) error {
	if t.Type != models.TxnPenalty && t.Type != models.TxnPenaltyPaid {
		return fmt.Errorf("penalty ledger only takes %s or %s rows", models.TxnPenalty, models.TxnPenaltyPaid)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("penalty amount must be positive")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := CreatePenaltyTransactionTx(ctx, tx, t); err != nil {
		return err
	}

	delta := t.Amount
	if t.Type == models.TxnPenaltyPaid {
		delta = -t.Amount
	}
	if err := AdjustDriverTotalPenaltiesTx(ctx, tx, t.DriverID, delta); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RecordBalanceTransaction appends a balance ledger row (refund, bonus or
// due) and moves pending_balance in the same transaction. Deposits travel
// through report approval, not here.
func (r *LedgerRepo) RecordBalanceTransaction(ctx context.Context, t *models.DriverTransaction) error {
	if t.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	var delta float64
	switch t.Type {
	case models.TxnBonus, models.TxnDue:
		delta = t.Amount
	case models.TxnRefund:
		delta = -t.Amount
	default:
		return fmt.Errorf("balance ledger only takes %s, %s or %s rows here", models.TxnRefund, models.TxnBonus, models.TxnDue)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := CreateBalanceTransactionTx(ctx, tx, t); err != nil {
		return err
	}
	if err := AdjustDriverPendingBalanceTx(ctx, tx, t.DriverID, delta); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *LedgerRepo) listDriverTransactions(ctx context.Context, table string, driverID int64, pageNo, pageLength int, trxType *string) ([]*models.DriverTransaction, error) {
	query := `
		SELECT id, reference_id, driver_id, report_id, amount, type, description, created_at
		FROM ` + table + `
		WHERE 1=1
	`
	args := []interface{}{}
	argID := 1
	if driverID > 0 {
		query += ` AND driver_id=$` + strconv.Itoa(argID)
		args = append(args, driverID)
		argID++
	}
	if trxType != nil {
		query += ` AND type=$` + strconv.Itoa(argID)
		args = append(args, *trxType)
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
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.DriverTransaction
	for rows.Next() {
		var t models.DriverTransaction
		if err := rows.Scan(&t.ID, &t.ReferenceID, &t.DriverID, &t.ReportID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, &t)
	}
	return transactions, nil
}

// ListBalanceTransactions returns driver_balance_transactions rows,
// newest first, optionally filtered by driver and type.
func (r *LedgerRepo) ListBalanceTransactions(ctx context.Context, driverID int64, pageNo, pageLength int, trxType *string) ([]*models.DriverTransaction, error) {
	return r.listDriverTransactions(ctx, "driver_balance_transactions", driverID, pageNo, pageLength, trxType)
}

// ListPenaltyTransactions returns driver_penalty_transactions rows,
// newest first, optionally filtered by driver and type.
func (r *LedgerRepo) ListPenaltyTransactions(ctx context.Context, driverID int64, pageNo, pageLength int, trxType *string) ([]*models.DriverTransaction, error) {
	return r.listDriverTransactions(ctx, "driver_penalty_transactions", driverID, pageNo, pageLength, trxType)
}

// ListVehicleTransactions returns vehicle ledger rows, newest first,
// optionally filtered by vehicle and type.
func (r *LedgerRepo) ListVehicleTransactions(ctx context.Context, vehicleNumber string, pageNo, pageLength int, trxType *string) ([]*models.VehicleTransaction, error) {
	query := `
		SELECT id, reference_id, vehicle_number, report_id, adjustment_id, amount, type, description, created_at
		FROM vehicle_transactions
		WHERE 1=1
	`
	args := []interface{}{}
	argID := 1
	if vehicleNumber != "" {
		query += ` AND vehicle_number=$` + strconv.Itoa(argID)
		args = append(args, vehicleNumber)
		argID++
	}
	if trxType != nil {
		query += ` AND type=$` + strconv.Itoa(argID)
		args = append(args, *trxType)
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
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.VehicleTransaction
	for rows.Next() {
		var t models.VehicleTransaction
		if err := rows.Scan(&t.ID, &t.ReferenceID, &t.VehicleNumber, &t.ReportID, &t.AdjustmentID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, &t)
	}
	return transactions, nil
}
