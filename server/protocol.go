package server

import (
	"net/http"
)

const protocolVersionHeader = "MCP-Protocol-Version"

// protocolVersionMiddleware rejects requests declaring an MCP-Protocol-Version other than
// the server one and sets the response header. Absent header is accepted.
func protocolVersionMiddleware(version string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested := r.Header.Get(protocolVersionHeader)
			if requested != "" && requested != version {
				http.Error(w, "invalid MCP-Protocol-Version", http.StatusBadRequest)
				return
			}
			w.Header().Set(protocolVersionHeader, version)
			next.ServeHTTP(w, r)
		})
	}
}
