package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/viant/sap-mcp/internal/conv"
)

type loggerKey struct{}

func withLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the client notification logger of the session handling the request
func LoggerFromContext(ctx context.Context) (*Logger, bool) {
	logger, ok := ctx.Value(loggerKey{}).(*Logger)
	return logger, ok && logger != nil
}

// activeContexts tracks in-flight requests of a single session by request id
type activeContexts struct {
	cancels map[string]*activeContext
	mux     sync.Mutex
}

type activeContext struct {
	cancel context.CancelFunc
}

// requestKey normalizes JSON-RPC ids, numbers and strings with the same text stay distinct
func requestKey(id interface{}) string {
	switch actual := id.(type) {
	case string:
		return "s:" + actual
	case json.Number, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, *int:
		return "n:" + strconv.Itoa(conv.AsInt(actual))
	}
	return fmt.Sprintf("%T:%v", id, id)
}

// Put registers request cancel func and returns a release func that forgets only this entry
func (a *activeContexts) Put(id interface{}, cancel context.CancelFunc) func() {
	key := requestKey(id)
	entry := &activeContext{cancel: cancel}
	a.mux.Lock()
	a.cancels[key] = entry
	a.mux.Unlock()
	return func() {
		a.mux.Lock()
		if a.cancels[key] == entry {
			delete(a.cancels, key)
		}
		a.mux.Unlock()
		cancel()
	}
}

// Cancel cancels and forgets request context
func (a *activeContexts) Cancel(id interface{}) bool {
	key := requestKey(id)
	a.mux.Lock()
	entry, ok := a.cancels[key]
	delete(a.cancels, key)
	a.mux.Unlock()
	if ok {
		entry.cancel()
	}
	return ok
}

func (a *activeContexts) Len() int {
	a.mux.Lock()
	defer a.mux.Unlock()
	return len(a.cancels)
}

func newActiveContexts() *activeContexts {
	return &activeContexts{cancels: make(map[string]*activeContext)}
}
