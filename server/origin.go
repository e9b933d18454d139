package server

import (
	"net/http"
)

// originValidationMiddleware rejects browser requests whose Origin is not in the allow-list.
// Requests without Origin, a wildcard entry or an empty allow-list pass through.
func originValidationMiddleware(allowed []string) Middleware {
	allowedMap := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		allowedMap[v] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedMap) == 0 || allowedMap["*"] || allowedMap[origin] {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "origin not allowed", http.StatusForbidden)
		})
	}
}
