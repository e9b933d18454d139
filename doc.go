// Package sapmcp provides an MCP server exposing the sap_login tool.
//
// The sap_login tool attempts HTTP Basic Authentication against an SAP system
// endpoint and reports the outcome together with any session cookies.
//
// The package glues the tool implementation (package sap) with the MCP server
// (package server) and the process configuration:
//  1. NewServer – returns a server with the sap_login tool registered,
//  2. Serve – binds the server to stdio or HTTP (SSE) depending on the port,
//  3. Run – the command line entry point used by cmd/sap-mcp.
//
// Example:
//
//	options := &sapmcp.Options{}
//	options.Init()
//	srv, _ := sapmcp.NewServer(options, slog.Default())
//	_ = sapmcp.Serve(ctx, srv, options, slog.Default())
package sapmcp
