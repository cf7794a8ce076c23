package utils

import (
	"encoding/json"
	"net/http"

	"github.com/zwennpay/statements/src/logger"
)

// SendJSONError is a helper function to send JSON formatted error responses.
func SendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if logger.L != nil {
		logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	}
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// SendJSONErrorList is like SendJSONError but carries the accumulated
// per-entry error list of a failed batch alongside the top-level message.
func SendJSONErrorList(w http.ResponseWriter, message string, errs []string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if logger.L != nil {
		logger.L.Warn("Sending JSON error list to client", "message", message, "errorCount", len(errs), "statusCode", statusCode)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"error": message, "errors": errs})
}
