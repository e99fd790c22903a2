package api

import (
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
	Detail string `json:"detail"`
}

// respondJSON writes v as the JSON body of a response with the given status.
func respondJSON(w http.ResponseWriter, log hclog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding response", "error", err)
	}
}

// respondError writes an ErrorResponse with the given status and detail.
func respondError(w http.ResponseWriter, log hclog.Logger, status int, detail string) {
	respondJSON(w, log, status, ErrorResponse{
		Status: "error",
		Code:   status,
		Detail: detail,
	})
}
