package api

import (
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/readable-research/readable/internal/server"
	"github.com/readable-research/readable/pkg/papers"
)

// PaperResponse is the body of a successful paper lookup.
type PaperResponse struct {
	Status string          `json:"status"`
	Code   int             `json:"code"`
	Paper  papers.Document `json:"paper"`
}

// PapersHandler serves paper documents.
// Routes:
//
//	GET /api/papers/{id} - Get the paper stored as <papers dir>/{id}.json
func PapersHandler(srv server.Server) http.Handler {
	log := srv.Logger.Named("papers")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		doc, err := srv.Papers.Get(r.Context(), id)
		if err != nil {
			status, detail := lookupErrorResponse(id, err)
			logLookupError(log, srv.Papers, id, status, err)
			respondError(w, log, status, detail)
			return
		}

		log.Debug("serving paper", "id", id, "path", srv.Papers.Path(id))
		respondJSON(w, log, http.StatusOK, PaperResponse{
			Status: "success",
			Code:   http.StatusOK,
			Paper:  doc,
		})
	})
}

// lookupErrorResponse maps a paper store error to an HTTP status code and a
// message naming the requested identifier.
func lookupErrorResponse(id string, err error) (int, string) {
	switch papers.KindOf(err) {
	case papers.KindNotFound:
		return http.StatusNotFound,
			fmt.Sprintf("Paper with ID %s not found", id)
	case papers.KindInvalidJSON:
		return http.StatusInternalServerError,
			fmt.Sprintf("Error parsing paper data for ID %s", id)
	case papers.KindIO:
		return http.StatusInternalServerError,
			fmt.Sprintf("Error reading paper data for ID %s", id)
	case papers.KindInvalidIdentifier:
		return http.StatusBadRequest,
			fmt.Sprintf("Invalid paper ID %s", id)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func logLookupError(
	log hclog.Logger, store *papers.Store, id string, status int, err error,
) {
	switch papers.KindOf(err) {
	case papers.KindNotFound:
		log.Warn("paper not found", "id", id, "path", store.Path(id))
	case papers.KindInvalidIdentifier:
		log.Warn("rejected paper ID", "id", id, "error", err)
	default:
		log.Error("error getting paper",
			"id", id,
			"status", status,
			"error", err,
		)
	}
}
