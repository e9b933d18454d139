// Package server provides a configurable MCP tool server.
//
// It binds a tool Registry to the github.com/viant/jsonrpc transports and
// serves the MCP methods needed by tool servers:
//   - initialize, ping, logging/setLevel
//   - tools/list, tools/call
//   - notifications/initialized, notifications/cancelled
//
// HTTP mode mounts SSE (/sse + /message) and streamable (/mcp) handlers with
// CORS, Origin and MCP-Protocol-Version middleware. Stdio mode serves the
// process stdin/stdout.
//
//	registry := server.NewRegistry()
//	_ = registry.Register(tool, handler)
//	s, _ := server.New(server.WithRegistry(registry))
//	log.Fatal(s.HTTP(ctx, ":4981").ListenAndServe())
package server
