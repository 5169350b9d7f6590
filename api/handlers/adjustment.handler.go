package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/dbrepo"
	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/fleetora/fleet-ops-api/internal/utils"
)

type AdjustmentHandler struct {
	DB       *dbrepo.AdjustmentRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewAdjustmentHandler(db *dbrepo.AdjustmentRepo, infoLog *log.Logger, errorLog *log.Logger) *AdjustmentHandler {
	return &AdjustmentHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func (h *AdjustmentHandler) AddAdjustment(w http.ResponseWriter, r *http.Request) {
	var adj models.CommonAdjustment
	if err := utils.ReadJSON(w, r, &adj); err != nil {
		h.errorLog.Println("ERROR_01_AddAdjustment:", err)
		utils.BadRequest(w, err)
		return
	}
	if adj.DriverID == 0 || adj.VehicleNumber == "" {
		utils.BadRequest(w, errors.New("driver_id and vehicle_number are required"))
		return
	}
	if adj.AdjustmentDate.IsZero() {
		adj.AdjustmentDate = time.Now().UTC()
	}
	if adj.Status == "" {
		adj.Status = models.AdjustmentPending
	}

	if err := h.DB.CreateAdjustment(r.Context(), &adj); err != nil {
		h.errorLog.Println("ERROR_02_AddAdjustment:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error      bool                     `json:"error"`
		Status     string                   `json:"status"`
		Message    string                   `json:"message"`
		Adjustment *models.CommonAdjustment `json:"adjustment"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Adjustment added successfully"
	resp.Adjustment = &adj

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (h *AdjustmentHandler) GetAdjustment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("adjustment_id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetAdjustment: invalid adjustment ID", err)
		utils.BadRequest(w, err)
		return
	}

	adj, err := h.DB.GetAdjustment(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_02_GetAdjustment:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error      bool                     `json:"error"`
		Status     string                   `json:"status"`
		Message    string                   `json:"message"`
		Adjustment *models.CommonAdjustment `json:"adjustment"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Adjustment fetched successfully"
	resp.Adjustment = adj

	utils.WriteJSON(w, http.StatusOK, resp)
}

// UpdateAdjustmentStatus moves a pending adjustment to approved or rejected.
// Application to a report only happens through report approval.
func (h *AdjustmentHandler) UpdateAdjustmentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdjustmentID int64  `json:"adjustment_id"`
		Status       string `json:"status"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_UpdateAdjustmentStatus:", err)
		utils.BadRequest(w, err)
		return
	}

	adj, err := h.DB.UpdateAdjustmentStatus(r.Context(), req.AdjustmentID, req.Status)
	if err != nil {
		h.errorLog.Println("ERROR_02_UpdateAdjustmentStatus:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error      bool                     `json:"error"`
		Status     string                   `json:"status"`
		Message    string                   `json:"message"`
		Adjustment *models.CommonAdjustment `json:"adjustment"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Adjustment status updated successfully"
	resp.Adjustment = adj

	utils.WriteJSON(w, http.StatusOK, resp)
}

// PaginatedAdjustmentList with optional filters
// Example: GET /adjustments?pageNo=1&pageLength=20&status=approved&driver_id=5
func (h *AdjustmentHandler) PaginatedAdjustmentList(w http.ResponseWriter, r *http.Request) {
	pageNo, _ := strconv.Atoi(r.URL.Query().Get("pageNo"))
	if pageNo <= 0 {
		pageNo = 1
	}
	pageLength, _ := strconv.Atoi(r.URL.Query().Get("pageLength"))
	if pageLength == 0 {
		pageLength = 10
	}

	status := r.URL.Query().Get("status")
	driverID, _ := strconv.ParseInt(r.URL.Query().Get("driver_id"), 10, 64)
	vehicleNumber := r.URL.Query().Get("vehicle_number")

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

	adjustments, total, err := h.DB.PaginatedAdjustmentList(r.Context(), pageNo, pageLength, status, driverID, vehicleNumber, start, end)
	if err != nil {
		h.errorLog.Println("ERROR_01_PaginatedAdjustmentList:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":       false,
		"status":      "success",
		"total":       total,
		"adjustments": adjustments,
	})
}
