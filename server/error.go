package server

import "github.com/viant/jsonrpc"

// NewUnknownTool creates unknown tool error
func NewUnknownTool(toolName string) *jsonrpc.Error {
	return jsonrpc.NewError(jsonrpc.InvalidParams, "Tool not found: "+toolName, nil)
}
