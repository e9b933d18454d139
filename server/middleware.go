package server

import (
	"net/http"
	"time"
)

// Middleware is a function that takes an http.Handler and returns an http.Handler
type Middleware func(next http.Handler) http.Handler

// ChainMiddlewareHandlers chains multiple middleware handlers together
func ChainMiddlewareHandlers(h http.Handler, mws ...Middleware) http.Handler {
	// apply in reverse so the first middleware is outermost
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func (s *Server) requestLoggingMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			switch {
			case r.Method == http.MethodGet && r.URL.Path == s.sseURI:
				s.logger.Info("received new SSE connection", "remote", r.RemoteAddr)
			case r.Method == http.MethodPost && r.URL.Path == s.sseMessageURI:
				s.logger.Debug("received message", "remote", r.RemoteAddr)
			}
			next.ServeHTTP(w, r)
			s.logger.Debug("http request served", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(started))
		})
	}
}
