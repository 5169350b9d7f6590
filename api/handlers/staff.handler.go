package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/fleetora/fleet-ops-api/internal/dbrepo"
	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/fleetora/fleet-ops-api/internal/utils"
)

type StaffHandler struct {
	DB       *dbrepo.StaffRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewStaffHandler(db *dbrepo.StaffRepo, infoLog *log.Logger, errorLog *log.Logger) *StaffHandler {
	return &StaffHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func (h *StaffHandler) AddStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Role     string `json:"role"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Mobile   string `json:"mobile"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_AddStaff:", err)
		utils.BadRequest(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.BadRequest(w, errors.New("email and password are required"))
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.errorLog.Println("ERROR_02_AddStaff:", err)
		utils.ServerError(w, err)
		return
	}

	staff := models.Staff{
		Name:     req.Name,
		Role:     req.Role,
		Status:   "active",
		Email:    req.Email,
		Password: hash,
		Mobile:   req.Mobile,
	}
	if err := h.DB.CreateStaff(r.Context(), &staff); err != nil {
		h.errorLog.Println("ERROR_03_AddStaff:", err)
		if strings.Contains(err.Error(), "staff_email_key") {
			err = errors.New("a staff account with this email already exists")
		}
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool          `json:"error"`
		Status  string        `json:"status"`
		Message string        `json:"message"`
		Staff   *models.Staff `json:"staff"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Staff added successfully"
	resp.Staff = &staff

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (h *StaffHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.DB.ListStaff(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_ListStaff:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":  false,
		"status": "success",
		"staff":  staff,
	})
}

// UpdateStaffRole updates role and status (Admin only)
func (h *StaffHandler) UpdateStaffRole(w http.ResponseWriter, r *http.Request) {
	var req models.Staff
	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_UpdateStaffRole:", err)
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.UpdateStaffRole(r.Context(), &req); err != nil {
		h.errorLog.Println("ERROR_02_UpdateStaffRole:", err)
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
	resp.Message = "Staff role updated successfully"

	utils.WriteJSON(w, http.StatusOK, resp)
}
