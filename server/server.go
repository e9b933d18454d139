package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Server represents MCP protocol server exposing registered tools
type Server struct {
	registry     *Registry
	capabilities schema.ServerCapabilities
	info         schema.Implementation

	instructions    *string
	protocolVersion string
	loggerName      string
	logger          *slog.Logger

	stdioServer
	httpServer
}

// Registry returns tool registry
func (s *Server) Registry() *Registry {
	return s.registry
}

// NewHandler creates a new handler instance, one per transport session
func (s *Server) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	return s.newHandler(ctx, transport)
}

func (s *Server) newHandler(_ context.Context, notifier transport.Notifier) *Handler {
	ret := &Handler{
		Server:         s,
		Notifier:       notifier,
		activeContexts: newActiveContexts(),
	}
	ret.Logger = NewLogger(s.loggerName, &ret.loggingLevel, notifier)
	return ret
}

// New creates a new Server instance
func New(options ...Option) (*Server, error) {
	s := &Server{
		capabilities: schema.ServerCapabilities{
			Tools: &schema.ServerCapabilitiesTools{},
		},
		info: schema.Implementation{
			Name:    "MCP",
			Version: "0.1",
		},
		loggerName:      "server",
		protocolVersion: schema.LatestProtocolVersion,
		logger:          slog.Default(),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	if s.registry == nil {
		return nil, errors.New("no tool registry specified")
	}
	return s, nil
}
