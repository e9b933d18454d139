package sap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/sap-mcp/server"
)

// Tool implements the sap_login MCP tool
type Tool struct {
	validator *Validator
	prober    *Prober
	logger    *slog.Logger
}

// Call validates arguments, probes the SAP endpoint and translates the outcome.
// Every outcome is reported as a tool result, protocol errors are not used.
func (t *Tool) Call(ctx context.Context, arguments map[string]interface{}) (*schema.CallToolResult, *jsonrpc.Error) {
	request, err := t.validator.Validate(arguments)
	if err != nil {
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			return nil, jsonrpc.NewInternalError(err.Error(), nil)
		}
		t.logger.Debug("invalid arguments", "tool", ToolName, "error", err)
		return Translate(nil, err), nil
	}
	notifier, hasNotifier := server.LoggerFromContext(ctx)
	if hasNotifier {
		_ = notifier.Debug(ctx, fmt.Sprintf("%v: probing %v", ToolName, request))
	}
	result, err := t.prober.Probe(ctx, request)
	if err == nil {
		err = result.Err()
	}
	if hasNotifier {
		if err != nil {
			_ = notifier.Warning(ctx, fmt.Sprintf("%v: %v", ToolName, err))
		} else {
			_ = notifier.Info(ctx, fmt.Sprintf("%v: login succeeded with status %d", ToolName, result.StatusCode))
		}
	}
	return Translate(result, err), nil
}

// Register registers the tool
func (t *Tool) Register(registry *server.Registry) error {
	descriptor, err := Descriptor()
	if err != nil {
		return err
	}
	return registry.Register(descriptor, t.Call)
}

// NewTool creates a tool
func NewTool(prober *Prober, logger *slog.Logger) *Tool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tool{
		validator: NewValidator(),
		prober:    prober,
		logger:    logger,
	}
}
