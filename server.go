package sapmcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/sap-mcp/sap"
	"github.com/viant/sap-mcp/server"
)

const shutdownTimeout = 5 * time.Second

// NewServer creates an MCP server with the sap_login tool registered
func NewServer(options *Options, logger *slog.Logger) (*server.Server, error) {
	if options == nil {
		options = &Options{}
	}
	options.Init()
	if logger == nil {
		logger = slog.Default()
	}
	registry := server.NewRegistry()
	prober := sap.NewProber(sap.WithTimeout(options.Timeout), sap.WithLogger(logger))
	if err := sap.NewTool(prober, logger).Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register %v: %w", sap.ToolName, err)
	}

	serverOptions := []server.Option{
		server.WithRegistry(registry),
		server.WithLogger(logger),
		server.WithImplementation(schema.Implementation{Name: options.Name, Version: options.Version}),
		server.WithLoggerName(options.LoggerName),
		server.WithCustomHTTPHandler(healthURI, healthHandler),
	}
	if options.ProtocolVersion != "" {
		serverOptions = append(serverOptions, server.WithProtocolVersion(options.ProtocolVersion))
	}
	transport := options.Transport
	if transport.Port > 0 {
		serverOptions = append(serverOptions, server.WithEndpointAddress(transport.Address()))
	}
	if transport.Cors != nil {
		serverOptions = append(serverOptions, server.WithCORS(transport.Cors))
	}
	if transport.SSEURI != "" {
		serverOptions = append(serverOptions, server.WithSSEURI(transport.SSEURI))
	}
	if transport.SSEMessageURI != "" {
		serverOptions = append(serverOptions, server.WithSSEMessageURI(transport.SSEMessageURI))
	}
	if transport.StreamableURI != "" {
		serverOptions = append(serverOptions, server.WithStreamableURI(transport.StreamableURI))
	}
	if transport.RootRedirect {
		serverOptions = append(serverOptions, server.WithRootRedirect(true))
	}
	srv, err := server.New(serverOptions...)
	if err != nil {
		return nil, err
	}
	srv.UseStreamableHTTP(transport.Type == TransportStreamable)
	return srv, nil
}

// Serve binds the server to HTTP when a port is configured, otherwise to stdio.
// The mode is fixed for the server lifetime.
func Serve(ctx context.Context, srv *server.Server, options *Options, logger *slog.Logger) error {
	if !options.Transport.IsHTTP() {
		logger.Info("SAP MCP Server running on stdio")
		return srv.Stdio(ctx).ListenAndServe()
	}
	httpServer := srv.HTTP(ctx, options.Transport.Address())
	errs := make(chan error, 1)
	go func() {
		errs <- httpServer.ListenAndServe()
	}()
	logger.Info("SAP MCP Server running (HTTP/SSE mode)", "port", options.Transport.Port,
		"sse", options.Transport.SSEURI, "message", options.Transport.SSEMessageURI)
	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

const healthURI = "/health"

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}
