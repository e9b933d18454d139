package server

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

func echoTool() *schema.Tool {
	description := "echoes its message"
	tool := &schema.Tool{Name: "echo", Description: &description}
	tool.InputSchema.Type = "object"
	return tool
}

func echoHandler(ctx context.Context, arguments map[string]interface{}) (*schema.CallToolResult, *jsonrpc.Error) {
	if logger, ok := LoggerFromContext(ctx); ok {
		_ = logger.Info(ctx, "echo called")
		_ = logger.Debug(ctx, "echo arguments")
	}
	text, _ := arguments["message"].(string)
	return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{schema.TextContent{Type: "text", Text: text}}}, nil
}

// resultText returns the text of a single text content result
func resultText(t *testing.T, result *schema.CallToolResult) string {
	t.Helper()
	data, err := json.Marshal(result)
	require.NoError(t, err)
	var output struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(data, &output))
	require.Len(t, output.Content, 1)
	assert.Equal(t, "text", output.Content[0].Type)
	return output.Content[0].Text
}

func newTestServer(t *testing.T, options ...Option) *Server {
	t.Helper()
	registry := NewRegistry()
	require.NoError(t, registry.Register(echoTool(), echoHandler))
	srv, err := New(append([]Option{WithRegistry(registry), WithImplementation(schema.Implementation{Name: "TestServer", Version: "1.0"})}, options...)...)
	require.NoError(t, err)
	return srv
}

func TestNew(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
	srv := newTestServer(t)
	assert.NotNil(t, srv.Registry())
}

func TestHandler_Initialize(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t, WithInstructions("probe SAP logins")).AsClient(ctx)
	result, err := client.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TestServer", result.ServerInfo.Name)
	assert.Equal(t, "1.0", result.ServerInfo.Version)
	assert.Equal(t, schema.LatestProtocolVersion, result.ProtocolVersion)
	assert.NotNil(t, result.Capabilities.Tools)
	require.NotNil(t, result.Instructions)
	assert.Equal(t, "probe SAP logins", *result.Instructions)
	assert.True(t, client.handler.Initialized())

	_, err = client.Ping(ctx)
	assert.NoError(t, err)
}

func TestHandler_ListTools(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t).AsClient(ctx)
	first, err := client.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, first.Tools, 1)
	assert.Equal(t, "echo", first.Tools[0].Name)

	first.Tools[0].Name = "changed"
	second, err := client.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "echo", second.Tools[0].Name)
	require.NotNil(t, second.Tools[0].Description)
	assert.Equal(t, "echoes its message", *second.Tools[0].Description)
}

func TestHandler_CallTool(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t).AsClient(ctx)

	result, err := client.CallTool(ctx, &schema.CallToolRequestParams{Name: "echo", Arguments: map[string]interface{}{"message": "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "hi", resultText(t, result))

	response, err := client.Serve(ctx, schema.MethodToolsCall, &schema.CallToolRequestParams{Name: "missing"})
	require.NoError(t, err)
	require.NotNil(t, response.Error)
	assert.EqualValues(t, -32602, response.Error.Code)
	assert.Equal(t, "Tool not found: missing", response.Error.Message)
	assert.Empty(t, response.Result)
}

func TestHandler_Serve_Errors(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	client := srv.AsClient(ctx)

	response, err := client.Serve(ctx, "resources/list", nil)
	require.NoError(t, err)
	require.NotNil(t, response.Error)
	assert.EqualValues(t, -32601, response.Error.Code)

	response, err = client.Serve(ctx, schema.MethodToolsCall, "not an object")
	require.NoError(t, err)
	require.NotNil(t, response.Error)
	assert.EqualValues(t, -32602, response.Error.Code)

	request, err := jsonrpc.NewRequest(schema.MethodPing, nil)
	require.NoError(t, err)
	request.Jsonrpc = "1.0"
	request.Id = 1
	response = &jsonrpc.Response{Id: 1}
	srv.newHandler(ctx, &notificationRecorder{}).Serve(ctx, request, response)
	require.NotNil(t, response.Error)
	assert.EqualValues(t, -32600, response.Error.Code)
}

func TestHandler_SetLevel(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t).AsClient(ctx)
	call := func() {
		_, err := client.CallTool(ctx, &schema.CallToolRequestParams{Name: "echo"})
		require.NoError(t, err)
	}

	call()
	assert.Empty(t, client.Notifications())

	_, err := client.SetLevel(ctx, "info")
	require.NoError(t, err)
	call()
	notifications := client.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, schema.MethodNotificationMessage, notifications[0].Method)
	var params struct {
		Level  string `json:"level"`
		Logger string `json:"logger"`
		Data   string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(notifications[0].Params, &params))
	assert.Equal(t, "info", params.Level)
	assert.Equal(t, "server", params.Logger)
	assert.Equal(t, "echo called", params.Data)

	_, err = client.SetLevel(ctx, "debug")
	require.NoError(t, err)
	call()
	assert.Len(t, client.Notifications(), 3)

	_, err = client.SetLevel(ctx, "verbose")
	assert.Error(t, err)
}

func TestHandler_Cancel(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()
	started := make(chan struct{})
	blocking := &schema.Tool{Name: "block"}
	blocking.InputSchema.Type = "object"
	require.NoError(t, registry.Register(blocking, func(ctx context.Context, _ map[string]interface{}) (*schema.CallToolResult, *jsonrpc.Error) {
		close(started)
		<-ctx.Done()
		return nil, jsonrpc.NewInternalError(ctx.Err().Error(), nil)
	}))
	srv, err := New(WithRegistry(registry))
	require.NoError(t, err)
	client := srv.AsClient(ctx)

	done := make(chan *jsonrpc.Response, 1)
	go func() {
		response, _ := client.Serve(ctx, schema.MethodToolsCall, &schema.CallToolRequestParams{Name: "block"})
		done <- response
	}()
	<-started
	assert.Equal(t, 1, client.handler.activeContexts.Len())

	client.handler.OnNotification(ctx, &jsonrpc.Notification{
		Method: schema.MethodNotificationCancel,
		Params: []byte(`{"requestId":1,"reason":"user aborted"}`),
	})
	select {
	case response := <-done:
		require.NotNil(t, response.Error)
		assert.Contains(t, response.Error.Message, "context canceled")
	case <-time.After(2 * time.Second):
		t.Fatal("request was not cancelled")
	}
	assert.Equal(t, 0, client.handler.activeContexts.Len())
}

func newSlowServer(t *testing.T, delay time.Duration, started chan<- struct{}) *Server {
	t.Helper()
	registry := NewRegistry()
	slow := &schema.Tool{Name: "slow"}
	slow.InputSchema.Type = "object"
	require.NoError(t, registry.Register(slow, func(ctx context.Context, _ map[string]interface{}) (*schema.CallToolResult, *jsonrpc.Error) {
		if started != nil {
			started <- struct{}{}
		}
		text := "completed"
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			text = "canceled: " + ctx.Err().Error()
		}
		return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{schema.TextContent{Type: "text", Text: text}}}, nil
	}))
	srv, err := New(WithRegistry(registry))
	require.NoError(t, err)
	return srv
}

func newCallRequest(t *testing.T, id interface{}, name string) *jsonrpc.Request {
	t.Helper()
	request, err := jsonrpc.NewRequest(schema.MethodToolsCall, &schema.CallToolRequestParams{Name: name})
	require.NoError(t, err)
	request.Jsonrpc = jsonrpc.Version
	request.Id = id
	return request
}

func TestHandler_ConcurrentStringIds(t *testing.T) {
	ctx := context.Background()
	handler := newSlowServer(t, 200*time.Millisecond, nil).newHandler(ctx, &notificationRecorder{})

	ids := []interface{}{"req-a", "req-b", 7, "7"}
	requests := make([]*jsonrpc.Request, len(ids))
	for i, id := range ids {
		requests[i] = newCallRequest(t, id, "slow")
	}
	responses := make([]*jsonrpc.Response, len(ids))
	var wg sync.WaitGroup
	for i := range requests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			responses[i] = &jsonrpc.Response{Id: requests[i].Id, Jsonrpc: jsonrpc.Version}
			handler.Serve(ctx, requests[i], responses[i])
		}(i)
		time.Sleep(20 * time.Millisecond)
	}
	wg.Wait()

	for i, response := range responses {
		require.Nil(t, response.Error, "%v", ids[i])
		var result schema.CallToolResult
		require.NoError(t, json.Unmarshal(response.Result, &result))
		assert.Equal(t, "completed", resultText(t, &result), "%v", ids[i])
	}
	assert.Equal(t, 0, handler.activeContexts.Len())
}

func TestHandler_CancelStringId(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{}, 2)
	handler := newSlowServer(t, 2*time.Second, started).newHandler(ctx, &notificationRecorder{})

	responses := make(chan *jsonrpc.Response, 2)
	for _, id := range []string{"keep", "drop"} {
		request := newCallRequest(t, id, "slow")
		go func() {
			response := &jsonrpc.Response{Id: request.Id, Jsonrpc: jsonrpc.Version}
			handler.Serve(ctx, request, response)
			responses <- response
		}()
	}
	<-started
	<-started

	handler.OnNotification(ctx, &jsonrpc.Notification{
		Method: schema.MethodNotificationCancel,
		Params: []byte(`{"requestId":"drop"}`),
	})
	select {
	case response := <-responses:
		var result schema.CallToolResult
		require.NoError(t, json.Unmarshal(response.Result, &result))
		assert.Equal(t, "canceled: context canceled", resultText(t, &result))
		assert.Equal(t, "drop", response.Id)
	case <-time.After(time.Second):
		t.Fatal("request was not cancelled")
	}
	assert.Equal(t, 1, handler.activeContexts.Len())

	response := <-responses
	var result schema.CallToolResult
	require.NoError(t, json.Unmarshal(response.Result, &result))
	assert.Equal(t, "completed", resultText(t, &result))
}
