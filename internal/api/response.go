// Package api provides HTTP response utilities for CareerAI.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
)

// Pre-marshaled fallback responses to avoid runtime JSON encoding failures
var (
	fallbackErrorResponse []byte
)

// init validates that our fallback responses can be marshaled
func init() {
	var err error
	fallbackErrorResponse, err = json.Marshal(models.Error("Internal server error"))
	if err != nil {
		panic(fmt.Sprintf("Failed to marshal fallback error response at startup: %v", err))
	}
}

// writeJSONResponse writes a JSON response to the http.ResponseWriter with the given status code.
func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	// Marshal the response to JSON first to catch encoding errors before writing headers
	jsonData, err := json.Marshal(response)
	if err != nil {
		slog.Error("Server.writeJSONResponse: failed to marshal JSON response", "error", err)
		jsonData = fallbackErrorResponse
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(jsonData); writeErr != nil {
		slog.Error("Server.writeJSONResponse: failed to write JSON response", "error", writeErr)
	}
}

// statusForKind maps the engine's error taxonomy onto HTTP status codes.
func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.ErrorKindValidation, models.ErrorKindRender:
		return http.StatusBadRequest
	case models.ErrorKindNotFound:
		return http.StatusNotFound
	case models.ErrorKindRateLimited:
		return http.StatusTooManyRequests
	case models.ErrorKindDuplicateFlow:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

// writeFlowError writes a classified engine error. Rate-limited failures get
// a distinct retry-later response; caller mistakes (validation, unknown flow)
// keep their message; provider-side failures collapse to a generic message.
func writeFlowError(w http.ResponseWriter, err error) {
	kind := models.KindOf(err)
	switch kind {
	case models.ErrorKindRateLimited:
		writeJSONResponse(w, http.StatusTooManyRequests, models.RateLimited())
	case models.ErrorKindValidation, models.ErrorKindRender, models.ErrorKindNotFound:
		writeJSONResponse(w, statusForKind(kind), models.Error(err.Error()))
	default:
		writeJSONResponse(w, statusForKind(kind), models.Error("Document generation failed"))
	}
}
