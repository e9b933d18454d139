package server

import (
	"context"
	"net/http"

	"github.com/viant/jsonrpc/transport/server/http/sse"
	"github.com/viant/jsonrpc/transport/server/http/streamable"
)

const (
	defaultSSEURI        = "/sse"
	defaultSSEMessageURI = "/message"
	defaultStreamableURI = "/mcp"
)

type httpServer struct {
	sseHandler         *sse.Handler
	streamingHandler   *streamable.Handler
	useStreamableHTTP  bool
	addr               string
	corsConfig         *Cors
	customHTTPHandlers map[string]http.HandlerFunc
	sseURI             string
	sseMessageURI      string
	streamableURI      string
	rootRedirect       bool
}

// UseStreamableHTTP sets whether root redirect targets streamable HTTP or SSE.
func (s *Server) UseStreamableHTTP(flag bool) {
	s.useStreamableHTTP = flag
}

// HTTP creates and returns an HTTP server with SSE and streamable handlers.
// SSE sessions are tracked by the transport: each stream gets its own session id that
// the client passes back on the message endpoint.
func (s *Server) HTTP(_ context.Context, addr string) *http.Server {
	if addr == "" {
		addr = s.addr
	}
	if addr == "" {
		addr = "127.0.0.1:5000"
	}
	if s.sseURI == "" {
		s.sseURI = defaultSSEURI
	}
	if s.sseMessageURI == "" {
		s.sseMessageURI = defaultSSEMessageURI
	}
	if s.streamableURI == "" {
		s.streamableURI = defaultStreamableURI
	}
	if s.corsConfig == nil {
		s.corsConfig = defaultCors()
	}

	s.sseHandler = sse.New(s.NewHandler,
		sse.WithURI(s.sseURI),
		sse.WithMessageURI(s.sseMessageURI),
	)
	s.streamingHandler = streamable.New(s.NewHandler,
		streamable.WithURI(s.streamableURI),
	)
	mux := http.NewServeMux()
	for path, handler := range s.customHTTPHandlers {
		mux.Handle(path, handler)
	}
	corsHandler := &corsHandler{Cors: s.corsConfig}
	middlewareHandlers := []Middleware{
		s.requestLoggingMiddleware(),
		protocolVersionMiddleware(s.protocolVersion),
		corsHandler.Middleware,
		originValidationMiddleware(s.corsConfig.AllowOrigins),
	}
	sseChain := ChainMiddlewareHandlers(s.sseHandler, middlewareHandlers...)
	streamChain := ChainMiddlewareHandlers(s.streamingHandler, middlewareHandlers...)

	mux.Handle(s.sseURI, sseChain)
	mux.Handle(s.sseMessageURI, sseChain)
	mux.Handle(s.streamableURI, streamChain)

	if s.rootRedirect {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			target := s.sseURI
			if s.useStreamableHTTP {
				target = s.streamableURI
			}
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		})
	}
	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}
