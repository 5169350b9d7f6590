package dbrepo

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBRepository contains all individual repositories
type DBRepository struct {
	StaffRepo      *StaffRepo
	DriverRepo     *DriverRepo
	VehicleRepo    *VehicleRepo
	ReportRepo     *ReportRepo
	AdjustmentRepo *AdjustmentRepo
	LedgerRepo     *LedgerRepo
	HiringRepo     *HiringRepo
}

// NewDBRepository initializes all repositories with a shared connection pool
func NewDBRepository(db *pgxpool.Pool) *DBRepository {
	return &DBRepository{
		StaffRepo:      NewStaffRepo(db),
		DriverRepo:     NewDriverRepo(db),
		VehicleRepo:    NewVehicleRepo(db),
		ReportRepo:     NewReportRepo(db),
		AdjustmentRepo: NewAdjustmentRepo(db),
		LedgerRepo:     NewLedgerRepo(db),
		HiringRepo:     NewHiringRepo(db),
	}
}
