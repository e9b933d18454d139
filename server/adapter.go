package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// Adapter drives a server Handler in process, the way a transport would
type Adapter struct {
	handler *Handler
	notices *notificationRecorder
	nextId  int
	mux     sync.Mutex
}

// Initialize initializes the session
func (a *Adapter) Initialize(ctx context.Context) (*schema.InitializeResult, error) {
	params := &schema.InitializeRequestParams{ProtocolVersion: schema.LatestProtocolVersion}
	var result schema.InitializeResult
	if err := a.call(ctx, schema.MethodInitialize, params, &result); err != nil {
		return nil, err
	}
	a.handler.OnNotification(ctx, &jsonrpc.Notification{Method: schema.MethodNotificationInitialized})
	return &result, nil
}

// ListTools lists tools
func (a *Adapter) ListTools(ctx context.Context, cursor *string) (*schema.ListToolsResult, error) {
	params := &schema.ListToolsRequestParams{Cursor: cursor}
	var result schema.ListToolsResult
	if err := a.call(ctx, schema.MethodToolsList, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CallTool calls a tool
func (a *Adapter) CallTool(ctx context.Context, params *schema.CallToolRequestParams) (*schema.CallToolResult, error) {
	var result schema.CallToolResult
	if err := a.call(ctx, schema.MethodToolsCall, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping pings the server
func (a *Adapter) Ping(ctx context.Context) (*schema.PingResult, error) {
	var result schema.PingResult
	if err := a.call(ctx, schema.MethodPing, &schema.PingRequestParams{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetLevel sets the client notification logging level
func (a *Adapter) SetLevel(ctx context.Context, level schema.LoggingLevel) (*schema.SetLevelResult, error) {
	var result schema.SetLevelResult
	params := map[string]interface{}{"level": level}
	if err := a.call(ctx, schema.MethodLoggingSetLevel, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Serve sends a raw request and returns a raw response
func (a *Adapter) Serve(ctx context.Context, method string, params interface{}) (*jsonrpc.Response, error) {
	request, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		return nil, err
	}
	request.Jsonrpc = jsonrpc.Version
	a.mux.Lock()
	a.nextId++
	request.Id = a.nextId
	a.mux.Unlock()
	response := &jsonrpc.Response{Id: request.Id, Jsonrpc: jsonrpc.Version}
	a.handler.Serve(ctx, request, response)
	return response, nil
}

// Notifications returns notifications the server sent on this session
func (a *Adapter) Notifications() []*jsonrpc.Notification {
	return a.notices.list()
}

func (a *Adapter) call(ctx context.Context, method string, params interface{}, result interface{}) error {
	response, err := a.Serve(ctx, method, params)
	if err != nil {
		return err
	}
	if response.Error != nil {
		return response.Error
	}
	return json.Unmarshal(response.Result, result)
}

// AsClient returns an in-process client session
func (s *Server) AsClient(ctx context.Context) *Adapter {
	notices := &notificationRecorder{}
	return &Adapter{handler: s.newHandler(ctx, notices), notices: notices}
}

type notificationRecorder struct {
	notifications []*jsonrpc.Notification
	mux           sync.Mutex
}

func (r *notificationRecorder) Notify(_ context.Context, notification *jsonrpc.Notification) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *notificationRecorder) list() []*jsonrpc.Notification {
	r.mux.Lock()
	defer r.mux.Unlock()
	return append([]*jsonrpc.Notification{}, r.notifications...)
}
