package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/fleetora/fleet-ops-api/internal/dbrepo"
	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/fleetora/fleet-ops-api/internal/utils"
)

type HiringHandler struct {
	DB       *dbrepo.HiringRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewHiringHandler(db *dbrepo.HiringRepo, infoLog *log.Logger, errorLog *log.Logger) *HiringHandler {
	return &HiringHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func (h *HiringHandler) AddCycle(w http.ResponseWriter, r *http.Request) {
	var cycle models.HiringCycle
	if err := utils.ReadJSON(w, r, &cycle); err != nil {
		h.errorLog.Println("ERROR_01_AddCycle:", err)
		utils.BadRequest(w, err)
		return
	}
	if cycle.Title == "" {
		utils.BadRequest(w, errors.New("title is required"))
		return
	}

	if _, err := h.DB.CreateCycle(r.Context(), &cycle); err != nil {
		h.errorLog.Println("ERROR_02_AddCycle:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool                `json:"error"`
		Status  string              `json:"status"`
		Message string              `json:"message"`
		Cycle   *models.HiringCycle `json:"cycle"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Hiring cycle opened successfully"
	resp.Cycle = &cycle

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (h *HiringHandler) GetCycle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("cycle_id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetCycle: invalid cycle ID", err)
		utils.BadRequest(w, err)
		return
	}

	cycle, err := h.DB.GetCycle(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_02_GetCycle:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool                `json:"error"`
		Status  string              `json:"status"`
		Message string              `json:"message"`
		Cycle   *models.HiringCycle `json:"cycle"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Hiring cycle fetched successfully"
	resp.Cycle = cycle

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *HiringHandler) ListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.DB.ListCycles(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.errorLog.Println("ERROR_01_ListCycles:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":  false,
		"status": "success",
		"cycles": cycles,
	})
}

// ArchiveCycle closes a cycle; still-pending applicants are auto-rejected.
func (h *HiringHandler) ArchiveCycle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("cycle_id"), 10, 64)
	if err != nil {
		h.errorLog.Println("ERROR_01_ArchiveCycle: invalid cycle ID", err)
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.ArchiveCycle(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_02_ArchiveCycle:", err)
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
	resp.Message = "Hiring cycle archived successfully"

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *HiringHandler) AddApplicant(w http.ResponseWriter, r *http.Request) {
	var applicant models.Applicant
	if err := utils.ReadJSON(w, r, &applicant); err != nil {
		h.errorLog.Println("ERROR_01_AddApplicant:", err)
		utils.BadRequest(w, err)
		return
	}
	if applicant.CycleID == 0 || applicant.Name == "" {
		utils.BadRequest(w, errors.New("cycle_id and name are required"))
		return
	}

	if _, err := h.DB.CreateApplicant(r.Context(), &applicant); err != nil {
		h.errorLog.Println("ERROR_02_AddApplicant:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error     bool              `json:"error"`
		Status    string            `json:"status"`
		Message   string            `json:"message"`
		Applicant *models.Applicant `json:"applicant"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Applicant added successfully"
	resp.Applicant = &applicant

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// UpdateApplicantStatus approves (with joining date) or rejects an applicant.
func (h *HiringHandler) UpdateApplicantStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApplicantID int64   `json:"applicant_id"`
		Status      string  `json:"status"`
		JoiningDate *string `json:"joining_date"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_UpdateApplicantStatus:", err)
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.UpdateApplicantStatus(r.Context(), req.ApplicantID, req.Status, req.JoiningDate); err != nil {
		h.errorLog.Println("ERROR_02_UpdateApplicantStatus:", err)
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
	resp.Message = "Applicant status updated successfully"

	utils.WriteJSON(w, http.StatusOK, resp)
}

// PaginatedApplicantList
// Example: GET /hr/applicants?pageNo=1&pageLength=20&cycle_id=3&status=pending
func (h *HiringHandler) PaginatedApplicantList(w http.ResponseWriter, r *http.Request) {
	pageNo, _ := strconv.Atoi(r.URL.Query().Get("pageNo"))
	if pageNo <= 0 {
		pageNo = 1
	}
	pageLength, _ := strconv.Atoi(r.URL.Query().Get("pageLength"))
	if pageLength == 0 {
		pageLength = 10
	}
	cycleID, _ := strconv.ParseInt(r.URL.Query().Get("cycle_id"), 10, 64)
	status := r.URL.Query().Get("status")

	applicants, total, err := h.DB.PaginatedApplicantList(r.Context(), pageNo, pageLength, cycleID, status)
	if err != nil {
		h.errorLog.Println("ERROR_01_PaginatedApplicantList:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":      false,
		"status":     "success",
		"total":      total,
		"applicants": applicants,
	})
}
