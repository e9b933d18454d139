package server

import (
	"context"
	"fmt"

	"github.com/viant/jsonrpc"
)

// Cancel handles notifications/cancelled, it aborts the in-flight request of this session
func (h *Handler) Cancel(_ context.Context, notification *jsonrpc.Notification) *jsonrpc.Error {
	var params struct {
		RequestId interface{} `json:"requestId"`
		Reason    string      `json:"reason,omitempty"`
	}
	if err := decodeParams(notification.Params, &params); err != nil {
		return jsonrpc.NewParsingError(fmt.Sprintf("failed to parse notification: %v", err.Error()), notification.Params)
	}
	if params.RequestId == nil {
		return jsonrpc.NewInvalidParamsError("invalid requestId", notification.Params)
	}
	h.activeContexts.Cancel(params.RequestId)
	return nil
}
