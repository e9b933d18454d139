package server

import (
	"log/slog"
	"net/http"

	"github.com/viant/mcp-protocol/schema"
)

// Option is a function that configures the server.
type Option func(s *Server) error

// WithRegistry sets the tool registry.
func WithRegistry(registry *Registry) Option {
	return func(s *Server) error {
		s.registry = registry
		return nil
	}
}

// WithCORS adds a new CORS handler to the server.
func WithCORS(cors *Cors) Option {
	return func(s *Server) error {
		s.corsConfig = cors
		return nil
	}
}

// WithImplementation sets the server implementation.
func WithImplementation(implementation schema.Implementation) Option {
	return func(s *Server) error {
		s.info = implementation
		return nil
	}
}

// WithInstructions sets instructions returned on initialize.
func WithInstructions(instructions string) Option {
	return func(s *Server) error {
		s.instructions = &instructions
		return nil
	}
}

// WithProtocolVersion sets the protocol version.
func WithProtocolVersion(version string) Option {
	return func(s *Server) error {
		s.protocolVersion = version
		return nil
	}
}

// WithLoggerName sets the client notification logger name.
func WithLoggerName(name string) Option {
	return func(s *Server) error {
		s.loggerName = name
		return nil
	}
}

// WithLogger sets the process logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithEndpointAddress sets the HTTP listen address.
func WithEndpointAddress(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithSSEURI sets the SSE stream URI (default /sse).
func WithSSEURI(uri string) Option {
	return func(s *Server) error {
		s.sseURI = uri
		return nil
	}
}

// WithSSEMessageURI sets the SSE message URI (default /message).
func WithSSEMessageURI(uri string) Option {
	return func(s *Server) error {
		s.sseMessageURI = uri
		return nil
	}
}

// WithStreamableURI sets the streamable HTTP URI (default /mcp).
func WithStreamableURI(uri string) Option {
	return func(s *Server) error {
		s.streamableURI = uri
		return nil
	}
}

// WithRootRedirect redirects "/" to the active HTTP transport.
func WithRootRedirect(flag bool) Option {
	return func(s *Server) error {
		s.rootRedirect = flag
		return nil
	}
}

// WithCustomHTTPHandler adds a custom HTTP handler.
func WithCustomHTTPHandler(path string, handler http.HandlerFunc) Option {
	return func(s *Server) error {
		if s.customHTTPHandlers == nil {
			s.customHTTPHandlers = make(map[string]http.HandlerFunc)
		}
		s.customHTTPHandlers[path] = handler
		return nil
	}
}
