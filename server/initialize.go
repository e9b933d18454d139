package server

import (
	"context"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// Initialize handles the initialize method
func (h *Handler) Initialize(ctx context.Context, request *jsonrpc.Request) (*schema.InitializeResult, *jsonrpc.Error) {
	params := &schema.InitializeRequestParams{}
	if err := decodeParams(request.Params, params); err != nil {
		return nil, err
	}
	h.clientInitialize = params
	result := schema.InitializeResult{
		ProtocolVersion: h.protocolVersion,
		ServerInfo:      h.info,
		Capabilities:    h.capabilities,
		Instructions:    h.instructions,
	}
	return &result, nil
}

// Ping handles the ping method
func (h *Handler) Ping(_ context.Context, _ *jsonrpc.Request) (*schema.PingResult, *jsonrpc.Error) {
	return &schema.PingResult{}, nil
}
