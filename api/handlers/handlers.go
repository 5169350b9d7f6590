package api

import (
	"log"

	"github.com/fleetora/fleet-ops-api/internal/dbrepo"
	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/fleetora/fleet-ops-api/internal/settlement"
)

type HandlerRepo struct {
	Auth        AuthHandler
	Staff       StaffHandler
	Driver      DriverHandler
	Vehicle     VehicleHandler
	Report      ReportHandler
	Adjustment  AdjustmentHandler
	Transaction TransactionHandler
	Hiring      *HiringHandler
}

func NewHandlerRepo(db *dbrepo.DBRepository, JWT models.JWTConfig, tables settlement.Tables, infoLog *log.Logger, errorLog *log.Logger) *HandlerRepo {
	return &HandlerRepo{
		Auth:        *NewAuthHandler(db, JWT, infoLog, errorLog),
		Staff:       *NewStaffHandler(db.StaffRepo, infoLog, errorLog),
		Driver:      *NewDriverHandler(db.DriverRepo, infoLog, errorLog),
		Vehicle:     *NewVehicleHandler(db.VehicleRepo, infoLog, errorLog),
		Report:      *NewReportHandler(db, tables, infoLog, errorLog),
		Adjustment:  *NewAdjustmentHandler(db.AdjustmentRepo, infoLog, errorLog),
		Transaction: *NewTransactionHandler(db.LedgerRepo, infoLog, errorLog),
		Hiring:      NewHiringHandler(db.HiringRepo, infoLog, errorLog),
	}
}
