package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Handler represents a per session JSON-RPC handler
type Handler struct {
	transport.Notifier
	*Logger
	*Server
	activeContexts   *activeContexts
	clientInitialize *schema.InitializeRequestParams
	loggingLevel     LoggingLevel
	initialized      atomic.Bool
}

// Initialized returns true once the client sent notifications/initialized
func (h *Handler) Initialized() bool {
	return h.initialized.Load()
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(parent context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	switch request.Method {
	case schema.MethodInitialize, schema.MethodPing, schema.MethodLoggingSetLevel,
		schema.MethodToolsList, schema.MethodToolsCall:
	default:
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
		return
	}

	ctx, cancel := context.WithCancel(parent)
	ctx = withLogger(ctx, h.Logger)
	release := h.activeContexts.Put(request.Id, cancel)
	defer release()

	switch request.Method {
	case schema.MethodInitialize:
		result, err := h.Initialize(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodPing:
		result, err := h.Ping(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodToolsList:
		result, err := h.ListTools(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodToolsCall:
		result, err := h.CallTool(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodLoggingSetLevel:
		result, err := h.SetLevel(ctx, request)
		h.setResponse(response, result, err)
	}
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), []byte{})
	}
}

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationCancel:
		if err := h.Cancel(ctx, notification); err != nil {
			h.Server.logger.Debug("invalid cancel notification", "error", err.Error())
		}
	case schema.MethodNotificationInitialized:
		h.initialized.Store(true)
	}
}

// decodeParams decodes optional request params
func decodeParams(params []byte, target interface{}) *jsonrpc.Error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, target); err != nil {
		return jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), params)
	}
	return nil
}
