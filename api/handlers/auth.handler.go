package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/fleetora/fleet-ops-api/internal/dbrepo"
	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/fleetora/fleet-ops-api/internal/utils"
)

type AuthHandler struct {
	DB        *dbrepo.DBRepository
	JWTConfig models.JWTConfig
	infoLog   *log.Logger
	errorLog  *log.Logger
}

func NewAuthHandler(db *dbrepo.DBRepository, JWTConfig models.JWTConfig, infoLog *log.Logger, errorLog *log.Logger) *AuthHandler {
	return &AuthHandler{
		DB:        db,
		JWTConfig: JWTConfig,
		infoLog:   infoLog,
		errorLog:  errorLog,
	}
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_Signin:", err)
		utils.BadRequest(w, err)
		return
	}

	// Validate credentials from DB
	staff, err := h.DB.StaffRepo.GetStaffByEmail(r.Context(), req.Username)
	if err != nil || !utils.CheckPassword(req.Password, staff.Password) {
		h.errorLog.Println("ERROR_02_Signin: invalid credentials")
		utils.BadRequest(w, errors.New("invalid username or password"))
		return
	}

	// Generate JWT
	token, err := utils.GenerateJWT(models.JWT{
		ID:        staff.ID,
		Name:      staff.Name,
		Username:  staff.Email,
		Role:      staff.Role,
		CreatedAt: staff.CreatedAt,
		UpdatedAt: staff.UpdatedAt,
	}, h.JWTConfig)

	if err != nil {
		h.errorLog.Println("ERROR_03_Signin: failed to generate JWT", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error bool          `json:"error"`
		Token string        `json:"token"`
		Staff *models.Staff `json:"staff"`
	}{
		Error: false,
		Token: token,
		Staff: staff,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
