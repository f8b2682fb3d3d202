package http

import (
	"net/http"

	mobymcp "github.com/dylangroos/moby-mcp"
)

// DefaultExemptPaths lists request paths that bypass the credential gate.
var DefaultExemptPaths = []string{"/healthz"}

// AuthMiddleware creates middleware that enforces bearer-token
// authentication via the given gate. Requests to exempt paths are always
// allowed. Pass nil for gate to disable authentication (public access).
//
// A rejected request is terminated before any handler logic runs, so no
// file system access happens for unauthenticated callers.
func AuthMiddleware(gate *mobymcp.Gate, exempt []string) func(http.Handler) http.Handler {
	if gate == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	exemptSet := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		exemptSet[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptSet[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			if err := gate.Authorize(r.Header.Get("Authorization")); err != nil {
				HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
