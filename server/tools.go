package server

import (
	"context"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// ListTools handles the tools/list method
func (h *Handler) ListTools(_ context.Context, request *jsonrpc.Request) (*schema.ListToolsResult, *jsonrpc.Error) {
	params := &schema.ListToolsRequestParams{}
	if err := decodeParams(request.Params, params); err != nil {
		return nil, err
	}
	tools, err := h.registry.Tools()
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	return &schema.ListToolsResult{Tools: tools}, nil
}

// CallTool handles the tools/call method
func (h *Handler) CallTool(ctx context.Context, request *jsonrpc.Request) (*schema.CallToolResult, *jsonrpc.Error) {
	params := &schema.CallToolRequestParams{}
	if err := decodeParams(request.Params, params); err != nil {
		return nil, err
	}
	handler, ok := h.registry.Lookup(params.Name)
	if !ok {
		return nil, NewUnknownTool(params.Name)
	}
	return handler(ctx, params.Arguments)
}
