package server

import (
	"context"

	"github.com/viant/jsonrpc/transport/server/stdio"
)

type stdioServer struct {
	stdioServerOption []stdio.Option
}

// Stdio returns stdio server bound to the process stdin/stdout
func (s *Server) Stdio(ctx context.Context) *stdio.Server {
	return stdio.New(ctx, s.NewHandler, s.stdioServerOption...)
}
