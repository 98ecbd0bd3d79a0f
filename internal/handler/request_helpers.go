package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/validation"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// decodeJSON decodes the request body into req. On failure the response has
// already been written and the handler should return.
func decodeJSON(w http.ResponseWriter, r *http.Request, req interface{}, actionName string) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	return nil
}

// validateRequest validates req with the shared struct validator. On failure
// the response has already been written and the handler should return.
func validateRequest(w http.ResponseWriter, r *http.Request, req interface{}, actionName string) error {
	if err := validation.Struct().Struct(req); err != nil {
		logger.FromContext(r.Context()).Debug(LogMsgValidationFailed, "action", actionName, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}
