package server

import (
	"context"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// SetLevel handles the logging/setLevel method
func (h *Handler) SetLevel(_ context.Context, request *jsonrpc.Request) (*schema.SetLevelResult, *jsonrpc.Error) {
	var params struct {
		Level schema.LoggingLevel `json:"level"`
	}
	if err := decodeParams(request.Params, &params); err != nil {
		return nil, err
	}
	if _, ok := levelOrdinals[string(params.Level)]; !ok {
		return nil, jsonrpc.NewInvalidParamsError("invalid logging level: "+string(params.Level), request.Params)
	}
	h.loggingLevel.Set(params.Level)
	return &schema.SetLevelResult{}, nil
}
