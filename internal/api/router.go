package api

import (
	"net/http"
	"strings"

	httptrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/net/http"

	"github.com/readable-research/readable/internal/server"
)

// NewHandler returns the HTTP handler for the whole API.
func NewHandler(srv server.Server) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, h http.Handler) {
		if dd := srv.Config.Datadog; dd != nil && dd.Enabled {
			h = httptrace.WrapHandler(h, dd.Service, pattern)
		}
		mux.Handle(pattern, h)
	}

	routes := map[string]http.Handler{
		"/{$}":             RootHandler(srv),
		"/api/health":      HealthHandler(srv),
		"/api/papers/{id}": PapersHandler(srv),
	}
	for path, h := range routes {
		handle("GET "+path, h)
		// Other methods on a known path fall through to this pattern instead
		// of the mux's plain-text 405.
		mux.Handle(path, methodNotAllowedHandler(srv, http.MethodGet, http.MethodHead))
	}
	mux.Handle("/", notFoundHandler(srv))

	return RequestLoggerMiddleware(
		srv.Logger.Named("http"),
		CORSMiddleware(srv.Config.CORS, mux),
	)
}

// notFoundHandler answers every path no route matches.
func notFoundHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, srv.Logger, http.StatusNotFound, "Not Found")
	})
}

// methodNotAllowedHandler answers requests to a known path with a method it
// does not serve.
func methodNotAllowedHandler(srv server.Server, allowed ...string) http.Handler {
	allow := strings.Join(allowed, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		respondError(w, srv.Logger, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
}
