package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/dbrepo"
	"github.com/fleetora/fleet-ops-api/internal/duty"
	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/fleetora/fleet-ops-api/internal/utils"
)

type DriverHandler struct {
	DB       *dbrepo.DriverRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewDriverHandler(db *dbrepo.DriverRepo, infoLog *log.Logger, errorLog *log.Logger) *DriverHandler {
	return &DriverHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func (h *DriverHandler) AddDriver(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if err := utils.ReadJSON(w, r, &driver); err != nil {
		h.errorLog.Println("ERROR_01_AddDriver:", err)
		utils.BadRequest(w, err)
		return
	}
	if driver.FullName == "" || driver.Mobile == "" {
		utils.BadRequest(w, errors.New("full_name and mobile are required"))
		return
	}
	if driver.JoiningDate.IsZero() {
		driver.JoiningDate = time.Now().UTC()
	}

	if err := h.DB.CreateDriver(r.Context(), &driver); err != nil {
		h.errorLog.Println("ERROR_02_AddDriver:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool           `json:"error"`
		Status  string         `json:"status"`
		Message string         `json:"message"`
		Driver  *models.Driver `json:"driver"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Driver added successfully"
	resp.Driver = &driver

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (h *DriverHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetDriver: invalid driver ID", err)
		utils.BadRequest(w, err)
		return
	}

	driver, err := h.DB.GetDriver(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_02_GetDriver:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool           `json:"error"`
		Status  string         `json:"status"`
		Message string         `json:"message"`
		Driver  *models.Driver `json:"driver"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Driver fetched successfully"
	resp.Driver = driver

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *DriverHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if err := utils.ReadJSON(w, r, &driver); err != nil {
		h.errorLog.Println("ERROR_01_UpdateDriver:", err)
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.UpdateDriver(r.Context(), &driver); err != nil {
		h.errorLog.Println("ERROR_02_UpdateDriver:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool           `json:"error"`
		Status  string         `json:"status"`
		Message string         `json:"message"`
		Driver  *models.Driver `json:"driver"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Driver updated successfully"
	resp.Driver = &driver

	utils.WriteJSON(w, http.StatusOK, resp)
}

// PaginatedDriverList with optional filters
// Example: GET /drivers?pageNo=1&pageLength=20&shift=morning&status=leave&online=true
func (h *DriverHandler) PaginatedDriverList(w http.ResponseWriter, r *http.Request) {
	pageNo, _ := strconv.Atoi(r.URL.Query().Get("pageNo"))
	if pageNo <= 0 {
		pageNo = 1
	}
	pageLength, _ := strconv.Atoi(r.URL.Query().Get("pageLength"))
	if pageLength == 0 {
		pageLength = 10
	}
	shift := r.URL.Query().Get("shift")
	status := r.URL.Query().Get("status")

	var online *bool
	if v := r.URL.Query().Get("online"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			utils.BadRequest(w, errors.New("online must be true or false"))
			return
		}
		online = &b
	}

	drivers, total, err := h.DB.PaginatedDriverList(r.Context(), pageNo, pageLength, shift, status, online)
	if err != nil {
		h.errorLog.Println("ERROR_01_PaginatedDriverList:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"status":  "success",
		"total":   total,
		"drivers": drivers,
	})
}

// UpdateDriverStatus sets the lifecycle flag (leave, resigning, going_to_24hr)
// together with its companion date fields.
func (h *DriverHandler) UpdateDriverStatus(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if err := utils.ReadJSON(w, r, &driver); err != nil {
		h.errorLog.Println("ERROR_01_UpdateDriverStatus:", err)
		utils.BadRequest(w, err)
		return
	}
	if driver.DriverStatus != nil {
		switch *driver.DriverStatus {
		case models.DriverStatusLeave, models.DriverStatusResigning, models.DriverStatusGoingTo24Hr:
		default:
			utils.BadRequest(w, fmt.Errorf("invalid driver status: %s", *driver.DriverStatus))
			return
		}
	}

	if err := h.DB.UpdateDriverStatus(r.Context(), &driver); err != nil {
		h.errorLog.Println("ERROR_02_UpdateDriverStatus:", err)
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
	resp.Message = "Driver status updated successfully"

	utils.WriteJSON(w, http.StatusOK, resp)
}

// overdueCount runs the sliding-window day classification for a driver.
func (h *DriverHandler) overdueCount(r *http.Request, driver *models.Driver, today time.Time) (int, error) {
	cal := duty.CalendarFor(driver)
	start, end := duty.Window(cal.JoiningDate, today)
	reports, err := h.DB.ReportStatusByDate(r.Context(), driver.ID, start, end)
	if err != nil {
		return 0, err
	}
	return duty.CountOverdueDays(cal, reports, today), nil
}

// SetDriverOffline takes a driver off roster. Blocked with 409 while the
// driver still has overdue days in the lookback window, unless force=true.
// Example: PUT /drivers/offline?id=5&from=2026-09-01&force=false
func (h *DriverHandler) SetDriverOffline(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_SetDriverOffline: invalid driver ID", err)
		utils.BadRequest(w, err)
		return
	}

	from := time.Now().UTC()
	if v := r.URL.Query().Get("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			utils.BadRequest(w, errors.New("from must be formatted as YYYY-MM-DD"))
			return
		}
	}
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	driver, err := h.DB.GetDriver(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_02_SetDriverOffline:", err)
		utils.BadRequest(w, err)
		return
	}

	if !force {
		overdue, err := h.overdueCount(r, driver, time.Now().UTC())
		if err != nil {
			h.errorLog.Println("ERROR_03_SetDriverOffline:", err)
			utils.ServerError(w, err)
			return
		}
		if overdue > 0 {
			h.infoLog.Printf("offline blocked for driver %d: %d overdue days", id, overdue)
			utils.Conflict(w, map[string]interface{}{
				"error":        true,
				"status":       "conflict",
				"message":      fmt.Sprintf("driver has %d overdue day(s) in the last %d days", overdue, duty.WindowDays),
				"overdue_days": overdue,
			})
			return
		}
	}

	if err := h.DB.SetDriverOffline(r.Context(), id, from); err != nil {
		h.errorLog.Println("ERROR_04_SetDriverOffline:", err)
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
	resp.Message = "Driver set offline successfully"

	utils.WriteJSON(w, http.StatusOK, resp)
}

// SetDriverOnline puts a driver back on roster from the given date.
// Example: PUT /drivers/online?id=5&from=2026-09-10
func (h *DriverHandler) SetDriverOnline(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_SetDriverOnline: invalid driver ID", err)
		utils.BadRequest(w, err)
		return
	}

	from := time.Now().UTC()
	if v := r.URL.Query().Get("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			utils.BadRequest(w, errors.New("from must be formatted as YYYY-MM-DD"))
			return
		}
	}

	if err := h.DB.SetDriverOnline(r.Context(), id, from); err != nil {
		h.errorLog.Println("ERROR_02_SetDriverOnline:", err)
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
	resp.Message = "Driver set online successfully"

	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetDriverCalendar returns the per-day classification over the lookback
// window.
func (h *DriverHandler) GetDriverCalendar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetDriverCalendar: invalid driver ID", err)
		utils.BadRequest(w, err)
		return
	}

	driver, err := h.DB.GetDriver(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_02_GetDriverCalendar:", err)
		utils.BadRequest(w, err)
		return
	}

	today := time.Now().UTC()
	cal := duty.CalendarFor(driver)
	start, end := duty.Window(cal.JoiningDate, today)
	reports, err := h.DB.ReportStatusByDate(r.Context(), id, start, end)
	if err != nil {
		h.errorLog.Println("ERROR_03_GetDriverCalendar:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":  false,
		"status": "success",
		"days":   duty.Classify(cal, reports, today),
	})
}

// GetDriverOverdue returns just the overdue-day count for a driver.
func (h *DriverHandler) GetDriverOverdue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetDriverOverdue: invalid driver ID", err)
		utils.BadRequest(w, err)
		return
	}

	driver, err := h.DB.GetDriver(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_02_GetDriverOverdue:", err)
		utils.BadRequest(w, err)
		return
	}

	overdue, err := h.overdueCount(r, driver, time.Now().UTC())
	if err != nil {
		h.errorLog.Println("ERROR_03_GetDriverOverdue:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":        false,
		"status":       "success",
		"driver_id":    id,
		"overdue_days": overdue,
	})
}

// GetDriverBalance returns the ledger-derived outstanding position.
func (h *DriverHandler) GetDriverBalance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetDriverBalance: invalid driver ID", err)
		utils.BadRequest(w, err)
		return
	}

	summary, err := h.DB.BalanceSummary(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_02_GetDriverBalance:", err)
		utils.BadRequest(w, err)
		return
	}
	if summary.LedgerDegraded {
		h.errorLog.Printf("ERROR_03_GetDriverBalance: ledger sums unavailable for driver %d, serving denormalized totals", id)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"status":  "success",
		"balance": summary,
	})
}
