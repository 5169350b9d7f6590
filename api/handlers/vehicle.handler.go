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

type VehicleHandler struct {
	DB       *dbrepo.VehicleRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewVehicleHandler(db *dbrepo.VehicleRepo, infoLog *log.Logger, errorLog *log.Logger) *VehicleHandler {
	return &VehicleHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func (h *VehicleHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := utils.ReadJSON(w, r, &vehicle); err != nil {
		h.errorLog.Println("ERROR_01_AddVehicle:", err)
		utils.BadRequest(w, err)
		return
	}
	if vehicle.VehicleNumber == "" {
		utils.BadRequest(w, errors.New("vehicle_number is required"))
		return
	}

	if err := h.DB.CreateVehicle(r.Context(), &vehicle); err != nil {
		h.errorLog.Println("ERROR_02_AddVehicle:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Vehicle *models.Vehicle `json:"vehicle"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Vehicle added successfully"
	resp.Vehicle = &vehicle

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleNumber := r.URL.Query().Get("vehicle_number")
	if vehicleNumber == "" {
		utils.BadRequest(w, errors.New("vehicle_number query param required"))
		return
	}

	vehicle, err := h.DB.GetVehicle(r.Context(), vehicleNumber)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetVehicle:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Vehicle *models.Vehicle `json:"vehicle"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Vehicle fetched successfully"
	resp.Vehicle = vehicle

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := utils.ReadJSON(w, r, &vehicle); err != nil {
		h.errorLog.Println("ERROR_01_UpdateVehicle:", err)
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.UpdateVehicle(r.Context(), &vehicle); err != nil {
		h.errorLog.Println("ERROR_02_UpdateVehicle:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Vehicle *models.Vehicle `json:"vehicle"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Vehicle updated successfully"
	resp.Vehicle = &vehicle

	utils.WriteJSON(w, http.StatusOK, resp)
}

// PaginatedVehicleList
// Example: GET /vehicles?pageNo=1&pageLength=20&online=true
func (h *VehicleHandler) PaginatedVehicleList(w http.ResponseWriter, r *http.Request) {
	pageNo, _ := strconv.Atoi(r.URL.Query().Get("pageNo"))
	if pageNo <= 0 {
		pageNo = 1
	}
	pageLength, _ := strconv.Atoi(r.URL.Query().Get("pageLength"))
	if pageLength == 0 {
		pageLength = 10
	}

	var online *bool
	if v := r.URL.Query().Get("online"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			utils.BadRequest(w, errors.New("online must be true or false"))
			return
		}
		online = &b
	}

	vehicles, total, err := h.DB.PaginatedVehicleList(r.Context(), pageNo, pageLength, online)
	if err != nil {
		h.errorLog.Println("ERROR_01_PaginatedVehicleList:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":    false,
		"status":   "success",
		"total":    total,
		"vehicles": vehicles,
	})
}

// GetVehiclePerformance returns the per-day aggregates over a date range
// Example: GET /vehicles/performance?vehicle_number=DM-1234&start_date=2026-08-01&end_date=2026-08-31
func (h *VehicleHandler) GetVehiclePerformance(w http.ResponseWriter, r *http.Request) {
	vehicleNumber := r.URL.Query().Get("vehicle_number")
	if vehicleNumber == "" {
		utils.BadRequest(w, errors.New("vehicle_number query param required"))
		return
	}

	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")
	if startStr == "" || endStr == "" {
		utils.BadRequest(w, errors.New("start_date and end_date query params are required"))
		return
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		utils.BadRequest(w, errors.New("start_date must be formatted as YYYY-MM-DD"))
		return
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		utils.BadRequest(w, errors.New("end_date must be formatted as YYYY-MM-DD"))
		return
	}

	performance, err := h.DB.VehiclePerformanceRange(r.Context(), vehicleNumber, start, end)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetVehiclePerformance:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":       false,
		"status":      "success",
		"performance": performance,
	})
}
