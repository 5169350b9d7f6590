package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fleetora/fleet-ops-api/internal/models"
)

// WriteJSON writes v as a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	out, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	return err
}

// ReadJSON decodes a single JSON body (max 1MB) into dst
func ReadJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1048576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON value")
	}
	return nil
}

// BadRequest replies with a 400 and the error message in the standard envelope
func BadRequest(w http.ResponseWriter, err error) {
	resp := models.Response{
		Error:   true,
		Status:  "failed",
		Message: err.Error(),
	}
	_ = WriteJSON(w, http.StatusBadRequest, resp)
}

// ServerError replies with a 500 and the error message in the standard envelope
func ServerError(w http.ResponseWriter, err error) {
	resp := models.Response{
		Error:   true,
		Status:  "failed",
		Message: err.Error(),
	}
	_ = WriteJSON(w, http.StatusInternalServerError, resp)
}

// Conflict replies with a 409; used when a guarded transition is refused
func Conflict(w http.ResponseWriter, v interface{}) {
	_ = WriteJSON(w, http.StatusConflict, v)
}

// Unauthorized replies with a 401 in the standard envelope
func Unauthorized(w http.ResponseWriter, message string) {
	resp := models.Response{
		Error:   true,
		Status:  "failed",
		Message: message,
	}
	_ = WriteJSON(w, http.StatusUnauthorized, resp)
}
