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

type TransactionHandler struct {
	DB       *dbrepo.LedgerRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewTransactionHandler(db *dbrepo.LedgerRepo, infoLog *log.Logger, errorLog *log.Logger) *TransactionHandler {
	return &TransactionHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// ImposePenalty appends a penalty row and raises the driver's outstanding
// penalty total.
func (h *TransactionHandler) ImposePenalty(w http.ResponseWriter, r *http.Request) {
	var txn models.DriverTransaction
	if err := utils.ReadJSON(w, r, &txn); err != nil {
		h.errorLog.Println("ERROR_01_ImposePenalty:", err)
		utils.BadRequest(w, err)
		return
	}
	if txn.DriverID == 0 {
		utils.BadRequest(w, errors.New("driver_id is required"))
		return
	}
	txn.Type = models.TxnPenalty

	if err := h.DB.RecordPenalty(r.Context(), &txn); err != nil {
		h.errorLog.Println("ERROR_02_ImposePenalty:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error       bool                      `json:"error"`
		Status      string                    `json:"status"`
		Message     string                    `json:"message"`
		Transaction *models.DriverTransaction `json:"transaction"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Penalty recorded successfully"
	resp.Transaction = &txn

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// SettlePenalty records a penalty payment, lowering the outstanding total.
func (h *TransactionHandler) SettlePenalty(w http.ResponseWriter, r *http.Request) {
	var txn models.DriverTransaction
	if err := utils.ReadJSON(w, r, &txn); err != nil {
		h.errorLog.Println("ERROR_01_SettlePenalty:", err)
		utils.BadRequest(w, err)
		return
	}
	if txn.DriverID == 0 {
		utils.BadRequest(w, errors.New("driver_id is required"))
		return
	}
	txn.Type = models.TxnPenaltyPaid

	if err := h.DB.RecordPenalty(r.Context(), &txn); err != nil {
		h.errorLog.Println("ERROR_02_SettlePenalty:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error       bool                      `json:"error"`
		Status      string                    `json:"status"`
		Message     string                    `json:"message"`
		Transaction *models.DriverTransaction `json:"transaction"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Penalty payment recorded successfully"
	resp.Transaction = &txn

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// AddBalanceTransaction records a refund, bonus or due row against a
// driver's deposit balance.
func (h *TransactionHandler) AddBalanceTransaction(w http.ResponseWriter, r *http.Request) {
	var txn models.DriverTransaction
	if err := utils.ReadJSON(w, r, &txn); err != nil {
		h.errorLog.Println("ERROR_01_AddBalanceTransaction:", err)
		utils.BadRequest(w, err)
		return
	}
	if txn.DriverID == 0 {
		utils.BadRequest(w, errors.New("driver_id is required"))
		return
	}

	if err := h.DB.RecordBalanceTransaction(r.Context(), &txn); err != nil {
		h.errorLog.Println("ERROR_02_AddBalanceTransaction:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error       bool                      `json:"error"`
		Status      string                    `json:"status"`
		Message     string                    `json:"message"`
		Transaction *models.DriverTransaction `json:"transaction"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Balance transaction recorded successfully"
	resp.Transaction = &txn

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func listParams(r *http.Request) (pageNo, pageLength int, trxType *string) {
	pageNo, _ = strconv.Atoi(r.URL.Query().Get("pageNo"))
	if pageNo <= 0 {
		pageNo = 1
	}
	pageLength, _ = strconv.Atoi(r.URL.Query().Get("pageLength"))
	if pageLength == 0 {
		pageLength = 10
	}
	if v := r.URL.Query().Get("type"); v != "" {
		trxType = &v
	}
	return pageNo, pageLength, trxType
}

// ListBalanceTransactions
// Example: GET /transactions/balance?driver_id=5&pageNo=1&pageLength=20&type=deposit
func (h *TransactionHandler) ListBalanceTransactions(w http.ResponseWriter, r *http.Request) {
	driverID, _ := strconv.ParseInt(r.URL.Query().Get("driver_id"), 10, 64)
	pageNo, pageLength, trxType := listParams(r)

	transactions, err := h.DB.ListBalanceTransactions(r.Context(), driverID, pageNo, pageLength, trxType)
	if err != nil {
		h.errorLog.Println("ERROR_01_ListBalanceTransactions:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":        false,
		"status":       "success",
		"transactions": transactions,
	})
}

// ListPenaltyTransactions
// Example: GET /transactions/penalty?driver_id=5&pageNo=1&pageLength=20
func (h *TransactionHandler) ListPenaltyTransactions(w http.ResponseWriter, r *http.Request) {
	driverID, _ := strconv.ParseInt(r.URL.Query().Get("driver_id"), 10, 64)
	pageNo, pageLength, trxType := listParams(r)

	transactions, err := h.DB.ListPenaltyTransactions(r.Context(), driverID, pageNo, pageLength, trxType)
	if err != nil {
		h.errorLog.Println("ERROR_01_ListPenaltyTransactions:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":        false,
		"status":       "success",
		"transactions": transactions,
	})
}

// ListVehicleTransactions
// Example: GET /transactions/vehicle?vehicle_number=DM-1234&pageNo=1&pageLength=20&type=expense
func (h *TransactionHandler) ListVehicleTransactions(w http.ResponseWriter, r *http.Request) {
	vehicleNumber := r.URL.Query().Get("vehicle_number")
	pageNo, pageLength, trxType := listParams(r)

	transactions, err := h.DB.ListVehicleTransactions(r.Context(), vehicleNumber, pageNo, pageLength, trxType)
	if err != nil {
		h.errorLog.Println("ERROR_01_ListVehicleTransactions:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":        false,
		"status":       "success",
		"transactions": transactions,
	})
}
