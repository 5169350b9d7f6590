package api

import (
	"net/http"

	"github.com/fleetora/fleet-ops-api/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	// --- Global middlewares ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(app.Logger) // Simple logger

	// --- Health check endpoint ---
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, 200, "Live")
	})

	mux.Post("/api/v1/login", app.Handlers.Auth.Signin)

	// --- Staff Routes (Admin only) ---
	mux.Route("/api/v1/staff", func(r chi.Router) {
		r.Use(app.Authenticate)
		r.Use(app.RequireRole("admin"))

		// Add a new staff account
		// Example: POST /api/v1/staff
		// Body (JSON): { name, role, email, password, mobile }
		r.Post("/", app.Handlers.Staff.AddStaff)

		// List all staff accounts
		// Example: GET /api/v1/staff
		r.Get("/", app.Handlers.Staff.ListStaff)

		// Update staff role and status
		// Example: PUT /api/v1/staff/role
		// Body (JSON): { id, role, status }
		r.Put("/role", app.Handlers.Staff.UpdateStaffRole)
	})

	// --- Driver Routes ---
	mux.Route("/api/v1/drivers", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Get single driver by id (query param)
		// Example: GET /api/v1/drivers/driver?id=5
		r.Get("/driver", app.Handlers.Driver.GetDriver)

		// Add a new driver
		// Example: POST /api/v1/drivers/driver
		// Body (JSON): { driver }
		r.Post("/driver", app.Handlers.Driver.AddDriver)

		// Update general driver details
		// Example: PUT /api/v1/drivers/driver
		// Body (JSON): { driver }
		r.Put("/driver", app.Handlers.Driver.UpdateDriver)

		// Get paginated list of drivers with optional filters
		// Example: GET /api/v1/drivers?pageNo=1&pageLength=20&shift=morning&online=true
		r.Get("/", app.Handlers.Driver.PaginatedDriverList)

		// Update driver lifecycle status (leave, resigning, going_to_24hr)
		// Example: PUT /api/v1/drivers/status
		// Body (JSON): { id, driver_status, resigning_date, leave_return_date }
		r.Put("/status", app.Handlers.Driver.UpdateDriverStatus)

		// Take a driver off roster; 409 while overdue days remain
		// Example: PUT /api/v1/drivers/offline?id=5&from=2026-09-01&force=false
		r.Put("/offline", app.Handlers.Driver.SetDriverOffline)

		// Put a driver back on roster
		// Example: PUT /api/v1/drivers/online?id=5&from=2026-09-10
		r.Put("/online", app.Handlers.Driver.SetDriverOnline)

		// Per-day classification over the lookback window
		// Example: GET /api/v1/drivers/calendar?id=5
		r.Get("/calendar", app.Handlers.Driver.GetDriverCalendar)

		// Overdue-day count only
		// Example: GET /api/v1/drivers/overdue?id=5
		r.Get("/overdue", app.Handlers.Driver.GetDriverOverdue)

		// Ledger-derived balance summary
		// Example: GET /api/v1/drivers/balance?id=5
		r.Get("/balance", app.Handlers.Driver.GetDriverBalance)
	})

	// --- Vehicle Routes ---
	mux.Route("/api/v1/vehicles", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Example: GET /api/v1/vehicles/vehicle?vehicle_number=DM-1234
		r.Get("/vehicle", app.Handlers.Vehicle.GetVehicle)

		// Example: POST /api/v1/vehicles/vehicle
		r.Post("/vehicle", app.Handlers.Vehicle.AddVehicle)

		// Example: PUT /api/v1/vehicles/vehicle
		r.Put("/vehicle", app.Handlers.Vehicle.UpdateVehicle)

		// Example: GET /api/v1/vehicles?pageNo=1&pageLength=20&online=true
		r.Get("/", app.Handlers.Vehicle.PaginatedVehicleList)

		// Per-day aggregates over a date range
		// Example: GET /api/v1/vehicles/performance?vehicle_number=DM-1234&start_date=2026-08-01&end_date=2026-08-31
		r.Get("/performance", app.Handlers.Vehicle.GetVehiclePerformance)
	})

	// --- Report Routes ---
	mux.Route("/api/v1/reports", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Submit a daily report; settlement is computed server-side
		// Example: POST /api/v1/reports/report
		// Body (JSON): { report }
		r.Post("/report", app.Handlers.Report.SubmitReport)

		// Example: GET /api/v1/reports/report?report_id=120
		r.Get("/report", app.Handlers.Report.GetReport)

		// Update a not-yet-verified report; settlement is recomputed
		// Example: PUT /api/v1/reports/report
		r.Put("/report", app.Handlers.Report.UpdateReport)

		// Example: GET /api/v1/reports?pageNo=1&pageLength=20&driver_id=5&status=approved
		r.Get("/", app.Handlers.Report.PaginatedReportList)

		// Approve: deposit ledger, adjustments, vehicle performance, one tx
		// Example: PUT /api/v1/reports/approve?report_id=120
		r.Put("/approve", app.Handlers.Report.ApproveReport)

		// Reject: reverses deposit rows of the report
		// Example: PUT /api/v1/reports/reject?report_id=120
		r.Put("/reject", app.Handlers.Report.RejectReport)

		// Example: PUT /api/v1/reports/leave?report_id=120
		r.Put("/leave", app.Handlers.Report.MarkReportLeave)

		// Delete: reverses ledger footprint, re-opens applied adjustments
		// Example: DELETE /api/v1/reports/report?report_id=120
		r.Delete("/report", app.Handlers.Report.DeleteReport)

		// Example: GET /api/v1/reports/overview?type=weekly&date=2026-08-31
		r.Get("/overview", app.Handlers.Report.GetReportOverview)
	})

	// --- Adjustment Routes ---
	mux.Route("/api/v1/adjustments", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Example: POST /api/v1/adjustments/adjustment
		r.Post("/adjustment", app.Handlers.Adjustment.AddAdjustment)

		// Example: GET /api/v1/adjustments/adjustment?adjustment_id=12
		r.Get("/adjustment", app.Handlers.Adjustment.GetAdjustment)

		// pending -> approved / rejected only
		// Example: PUT /api/v1/adjustments/status
		// Body (JSON): { adjustment_id, status }
		r.Put("/status", app.Handlers.Adjustment.UpdateAdjustmentStatus)

		// Example: GET /api/v1/adjustments?pageNo=1&pageLength=20&status=approved
		r.Get("/", app.Handlers.Adjustment.PaginatedAdjustmentList)
	})

	// --- Ledger Routes ---
	mux.Route("/api/v1/transactions", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Example: POST /api/v1/transactions/penalty
		// Body (JSON): { driver_id, amount, description }
		r.Post("/penalty", app.Handlers.Transaction.ImposePenalty)

		// Example: POST /api/v1/transactions/penalty/settle
		r.Post("/penalty/settle", app.Handlers.Transaction.SettlePenalty)

		// refund / bonus / due rows against the deposit balance
		// Example: POST /api/v1/transactions/balance
		// Body (JSON): { driver_id, amount, type, description }
		r.Post("/balance", app.Handlers.Transaction.AddBalanceTransaction)

		// Example: GET /api/v1/transactions/balance?driver_id=5&pageNo=1&pageLength=20
		r.Get("/balance", app.Handlers.Transaction.ListBalanceTransactions)

		// Example: GET /api/v1/transactions/penalty?driver_id=5
		r.Get("/penalty", app.Handlers.Transaction.ListPenaltyTransactions)

		// Example: GET /api/v1/transactions/vehicle?vehicle_number=DM-1234
		r.Get("/vehicle", app.Handlers.Transaction.ListVehicleTransactions)
	})

	// --- HR (Hiring) Routes ---
	mux.Route("/api/v1/hr", func(r chi.Router) {
		r.Use(app.Authenticate)
		r.Use(app.RequireRole("admin", "hr"))

		// Example: POST /api/v1/hr/cycle
		r.Post("/cycle", app.Handlers.Hiring.AddCycle)

		// Example: GET /api/v1/hr/cycle?cycle_id=3
		r.Get("/cycle", app.Handlers.Hiring.GetCycle)

		// Example: GET /api/v1/hr/cycles?status=open
		r.Get("/cycles", app.Handlers.Hiring.ListCycles)

		// Archiving auto-rejects still-pending applicants
		// Example: PUT /api/v1/hr/cycle/archive?cycle_id=3
		r.Put("/cycle/archive", app.Handlers.Hiring.ArchiveCycle)

		// Example: POST /api/v1/hr/applicant
		r.Post("/applicant", app.Handlers.Hiring.AddApplicant)

		// Approve with joining date, or reject
		// Example: PUT /api/v1/hr/applicant/status
		// Body (JSON): { applicant_id, status, joining_date }
		r.Put("/applicant/status", app.Handlers.Hiring.UpdateApplicantStatus)

		// Example: GET /api/v1/hr/applicants?pageNo=1&pageLength=20&cycle_id=3
		r.Get("/applicants", app.Handlers.Hiring.PaginatedApplicantList)
	})

	return mux
}
