package api

import (
	"net/http"

	"github.com/readable-research/readable/internal/server"
)

// RootHandler serves the welcome message at "/".
func RootHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, srv.Logger, http.StatusOK, map[string]string{
			"message": "Welcome to Readable Research API",
		})
	})
}

// HealthHandler reports that the server is up.
func HealthHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, srv.Logger, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})
}
