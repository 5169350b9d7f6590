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

// ============================== Vehicle Repository ==============================
type VehicleRepo struct {
	db *pgxpool.Pool
}

func NewVehicleRepo(db *pgxpool.Pool) *VehicleRepo {
	return &VehicleRepo{db: db}
}

// CreateVehicle inserts a new vehicle
func (r *VehicleRepo) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (vehicle_number, model, total_trips, online, deposit, actual_rent, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at;
	`
	return r.db.QueryRow(ctx, query,
		v.VehicleNumber, v.Model, v.TotalTrips, v.Online, v.Deposit, v.ActualRent,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

// GetVehicle fetches a vehicle by its natural key
func (r *VehicleRepo) GetVehicle(ctx context.Context, vehicleNumber string) (*models.Vehicle, error) {
	query := `
		SELECT id, vehicle_number, model, total_trips, online, deposit, actual_rent, created_at, updated_at
		FROM vehicles WHERE vehicle_number=$1
	`
	v := &models.Vehicle{}
	err := r.db.QueryRow(ctx, query, vehicleNumber).Scan(
		&v.ID, &v.VehicleNumber, &v.Model, &v.TotalTrips, &v.Online, &v.Deposit, &v.ActualRent,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("no vehicle found")
		}
		return nil, err
	}
	return v, nil
}

// UpdateVehicle updates vehicle details including the actual_rent override
func (r *VehicleRepo) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	query := `
		UPDATE vehicles
		SET model=$1, online=$2, deposit=$3, actual_rent=$4, updated_at=CURRENT_TIMESTAMP
		WHERE vehicle_number=$5
		RETURNING updated_at;
	`
	return r.db.QueryRow(ctx, query,
		v.Model, v.Online, v.Deposit, v.ActualRent, v.VehicleNumber,
	).Scan(&v.UpdatedAt)
}

// PaginatedVehicleList returns a paginated vehicle list with an optional
// online filter.
func (r *VehicleRepo) PaginatedVehicleList(ctx context.Context, page, limit int, online *bool) ([]*models.Vehicle, int, error) {
	offset := (page - 1) * limit

	query := `
		SELECT id, vehicle_number, model, total_trips, online, deposit, actual_rent, created_at, updated_at
		FROM vehicles WHERE 1=1
	`
	countQuery := `SELECT COUNT(*) FROM vehicles WHERE 1=1`

	args := []interface{}{}
	countArgs := []interface{}{}
	argIdx := 1

	if online != nil {
		query += fmt.Sprintf(" AND online = $%d", argIdx)
		countQuery += fmt.Sprintf(" AND online = $%d", argIdx)
		args = append(args, *online)
		countArgs = append(countArgs, *online)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY vehicle_number ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
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

	vehicles := []*models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		err := rows.Scan(
			&v.ID, &v.VehicleNumber, &v.Model, &v.TotalTrips, &v.Online, &v.Deposit, &v.ActualRent,
			&v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, &v)
	}

	return vehicles, total, nil
}

// VehiclePerformanceRange returns the per-day aggregates for a vehicle in a
// date range, oldest first.
func (r *VehicleRepo) VehiclePerformanceRange(ctx context.Context, vehicleNumber string, start, end time.Time) ([]*models.VehiclePerformance, error) {
	query := `
		SELECT sheet_date, vehicle_number, total_trips, earnings, other_expenses
		FROM vehicle_performance
		WHERE vehicle_number=$1 AND sheet_date BETWEEN $2 AND $3
		ORDER BY sheet_date;
	`
	rows, err := r.db.Query(ctx, query, vehicleNumber, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perf []*models.VehiclePerformance
	for rows.Next() {
		var vp models.VehiclePerformance
		if err := rows.Scan(&vp.SheetDate, &vp.VehicleNumber, &vp.TotalTrips, &vp.Earnings, &vp.OtherExpenses); err != nil {
			return nil, err
		}
		perf = append(perf, &vp)
	}
	return perf, nil
}
