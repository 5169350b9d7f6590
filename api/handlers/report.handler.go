package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/dbrepo"
	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/fleetora/fleet-ops-api/internal/settlement"
	"github.com/fleetora/fleet-ops-api/internal/utils"
)

type ReportHandler struct {
	DB       *dbrepo.DBRepository
	Tables   settlement.Tables
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewReportHandler(db *dbrepo.DBRepository, tables settlement.Tables, infoLog *log.Logger, errorLog *log.Logger) *ReportHandler {
	return &ReportHandler{
		DB:       db,
		Tables:   tables,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// settle recomputes the settlement for a report server-side. Client-sent
// rent_paid_amount is always discarded.
func (h *ReportHandler) settle(r *http.Request, rep *models.FleetReport) (settlement.Settlement, error) {
	figures := settlement.ReportFigures{
		TotalTrips:           rep.TotalTrips,
		Shift:                settlement.Shift(rep.Shift),
		IsServiceDay:         rep.IsServiceDay,
		TotalEarnings:        rep.TotalEarnings,
		Toll:                 rep.Toll,
		TotalCashCollect:     rep.TotalCashCollect,
		OtherFee:             rep.OtherFee,
		DepositCuttingAmount: rep.DepositCuttingAmount,
	}
	if rep.VehicleNumber != "" {
		vehicle, err := h.DB.VehicleRepo.GetVehicle(r.Context(), rep.VehicleNumber)
		if err != nil {
			return settlement.Settlement{}, err
		}
		figures.ActualRent = vehicle.ActualRent
	}
	return settlement.Compute(h.Tables, figures), nil
}

func (h *ReportHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var rep models.FleetReport
	if err := utils.ReadJSON(w, r, &rep); err != nil {
		h.errorLog.Println("ERROR_01_SubmitReport:", err)
		utils.BadRequest(w, err)
		return
	}
	if rep.DriverID == 0 || rep.VehicleNumber == "" {
		utils.BadRequest(w, errors.New("driver_id and vehicle_number are required"))
		return
	}
	if rep.RentDate.IsZero() {
		rep.RentDate = time.Now().UTC()
	}
	if rep.Shift == "" {
		driver, err := h.DB.DriverRepo.GetDriver(r.Context(), rep.DriverID)
		if err != nil {
			h.errorLog.Println("ERROR_02_SubmitReport:", err)
			utils.BadRequest(w, err)
			return
		}
		rep.Shift = driver.Shift
	}

	settled, err := h.settle(r, &rep)
	if err != nil {
		h.errorLog.Println("ERROR_03_SubmitReport:", err)
		utils.BadRequest(w, err)
		return
	}
	rep.RentPaidAmount = settled.StoredAmount()
	rep.Status = models.ReportPendingVerification

	if err := h.DB.ReportRepo.CreateReport(r.Context(), &rep); err != nil {
		h.errorLog.Println("ERROR_04_SubmitReport:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error      bool                   `json:"error"`
		Status     string                 `json:"status"`
		Message    string                 `json:"message"`
		Report     *models.FleetReport    `json:"report"`
		Settlement *settlement.Settlement `json:"settlement"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Report submitted successfully"
	resp.Report = &rep
	resp.Settlement = &settled

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// fillFromStored backfills identity fields a figure-only update request may
// omit, so the settlement resolves against the report's real shift and
// vehicle instead of defaults.
func fillFromStored(rep, stored *models.FleetReport) {
	if rep.Shift == "" {
		rep.Shift = stored.Shift
	}
	if rep.VehicleNumber == "" {
		rep.VehicleNumber = stored.VehicleNumber
	}
	if rep.DriverID == 0 {
		rep.DriverID = stored.DriverID
	}
	if rep.RentDate.IsZero() {
		rep.RentDate = stored.RentDate
	}
}

// UpdateReport replaces the figures of a not-yet-verified report and
// recomputes the settlement.
func (h *ReportHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	var rep models.FleetReport
	if err := utils.ReadJSON(w, r, &rep); err != nil {
		h.errorLog.Println("ERROR_01_UpdateReport:", err)
		utils.BadRequest(w, err)
		return
	}
	if rep.ID == 0 {
		utils.BadRequest(w, errors.New("report id is required"))
		return
	}

	stored, err := h.DB.ReportRepo.GetReport(r.Context(), rep.ID)
	if err != nil {
		h.errorLog.Println("ERROR_02_UpdateReport:", err)
		utils.BadRequest(w, err)
		return
	}
	fillFromStored(&rep, stored)

	settled, err := h.settle(r, &rep)
	if err != nil {
		h.errorLog.Println("ERROR_03_UpdateReport:", err)
		utils.BadRequest(w, err)
		return
	}
	rep.RentPaidAmount = settled.StoredAmount()

	if err := h.DB.ReportRepo.UpdateReport(r.Context(), &rep); err != nil {
		h.errorLog.Println("ERROR_04_UpdateReport:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error      bool                   `json:"error"`
		Status     string                 `json:"status"`
		Message    string                 `json:"message"`
		Report     *models.FleetReport    `json:"report"`
		Settlement *settlement.Settlement `json:"settlement"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Report updated successfully"
	resp.Report = &rep
	resp.Settlement = &settled

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("report_id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetReport: invalid report ID", err)
		utils.BadRequest(w, err)
		return
	}

	rep, err := h.DB.ReportRepo.GetReport(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_02_GetReport:", err)
		utils.BadRequest(w, err)
		return
	}

	settled := settlement.FromStored(rep.RentPaidAmount)

	var resp struct {
		Error      bool                   `json:"error"`
		Status     string                 `json:"status"`
		Message    string                 `json:"message"`
		Report     *models.FleetReport    `json:"report"`
		Settlement *settlement.Settlement `json:"settlement"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Report fetched successfully"
	resp.Report = rep
	resp.Settlement = &settled

	utils.WriteJSON(w, http.StatusOK, resp)
}

// ApproveReport runs the whole approval as one server-side transaction:
// deposit ledger row, adjustment application, vehicle performance upsert and
// the status flip either all land or none do.
func (h *ReportHandler) ApproveReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("report_id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_ApproveReport: invalid report ID", err)
		utils.BadRequest(w, err)
		return
	}

	rep, err := h.DB.ReportRepo.ApproveReport(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_02_ApproveReport:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool                `json:"error"`
		Status  string              `json:"status"`
		Message string              `json:"message"`
		Report  *models.FleetReport `json:"report"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Report approved successfully"
	resp.Report = rep

	utils.WriteJSON(w, http.StatusOK, resp)
}

// RejectReport reverses the deposit ledger rows of the report and flips it
// to rejected, in one transaction.
func (h *ReportHandler) RejectReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("report_id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_RejectReport: invalid report ID", err)
		utils.BadRequest(w, err)
		return
	}

	rep, err := h.DB.ReportRepo.RejectReport(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_02_RejectReport:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool                `json:"error"`
		Status  string              `json:"status"`
		Message string              `json:"message"`
		Report  *models.FleetReport `json:"report"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Report rejected successfully"
	resp.Report = rep

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *ReportHandler) MarkReportLeave(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("report_id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_MarkReportLeave: invalid report ID", err)
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.ReportRepo.MarkReportLeave(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_02_MarkReportLeave:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool   `json:"error"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Report marked as leave"

	utils.WriteJSON(w, http.StatusOK, resp)
}

// DeleteReport removes a report and reverses its ledger footprint, putting
// its applied adjustments back to approved.
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("report_id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_DeleteReport: invalid report ID", err)
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.ReportRepo.DeleteReport(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_02_DeleteReport:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool   `json:"error"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Report deleted successfully"

	utils.WriteJSON(w, http.StatusOK, resp)
}

// PaginatedReportList with optional filters
// Example: GET /reports?pageNo=1&pageLength=20&driver_id=5&status=pending_verification&start_date=2026-08-01&end_date=2026-08-31
func (h *ReportHandler) PaginatedReportList(w http.ResponseWriter, r *http.Request) {
	pageNo, _ := strconv.Atoi(r.URL.Query().Get("pageNo"))
	if pageNo <= 0 {
		pageNo = 1
	}
	pageLength, _ := strconv.Atoi(r.URL.Query().Get("pageLength"))
	if pageLength == 0 {
		pageLength = 10
	}

	driverID, _ := strconv.ParseInt(r.URL.Query().Get("driver_id"), 10, 64)
	vehicleNumber := r.URL.Query().Get("vehicle_number")
	status := r.URL.Query().Get("status")

	var start, end *time.Time
	if v := r.URL.Query().Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.BadRequest(w, errors.New("start_date must be formatted as YYYY-MM-DD"))
			return
		}
		start = &t
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.BadRequest(w, errors.New("end_date must be formatted as YYYY-MM-DD"))
			return
		}
		end = &t
	}

	reports, total, err := h.DB.ReportRepo.PaginatedReportList(r.Context(), pageNo, pageLength, driverID, vehicleNumber, status, start, end)
	if err != nil {
		h.errorLog.Println("ERROR_01_PaginatedReportList:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"status":  "success",
		"total":   total,
		"reports": reports,
	})
}

// GetReportOverview returns per-status counts and settled sums
// Example: GET /reports/overview?type=weekly&date=2026-08-31
func (h *ReportHandler) GetReportOverview(w http.ResponseWriter, r *http.Request) {
	summaryType := r.URL.Query().Get("type")
	if summaryType == "" {
		summaryType = "daily"
	}

	refDate := time.Now().UTC()
	if v := r.URL.Query().Get("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.BadRequest(w, errors.New("date must be formatted as YYYY-MM-DD"))
			return
		}
		refDate = t
	}

	overview, err := h.DB.ReportRepo.GetReportOverview(r.Context(), summaryType, refDate)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetReportOverview:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":    false,
		"status":   "success",
		"overview": overview,
	})
}
