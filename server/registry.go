package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// ToolHandler handles a tool call with untyped arguments
type ToolHandler func(ctx context.Context, arguments map[string]interface{}) (*schema.CallToolResult, *jsonrpc.Error)

type registryEntry struct {
	metadata []byte
	handler  ToolHandler
}

// Registry holds tools metadata and handlers
type Registry struct {
	entries map[string]*registryEntry
	mux     sync.RWMutex
}

// Register registers a tool, tool names have to be unique
func (r *Registry) Register(tool *schema.Tool, handler ToolHandler) error {
	if tool == nil || tool.Name == "" {
		return fmt.Errorf("tool name was empty")
	}
	if handler == nil {
		return fmt.Errorf("tool %v handler was nil", tool.Name)
	}
	// metadata is kept serialized so that listings cannot mutate it
	metadata, err := json.Marshal(tool)
	if err != nil {
		return fmt.Errorf("failed to encode tool %v: %w", tool.Name, err)
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.entries[tool.Name]; ok {
		return fmt.Errorf("tool %v already registered", tool.Name)
	}
	r.entries[tool.Name] = &registryEntry{metadata: metadata, handler: handler}
	return nil
}

// Tools returns registered tools sorted by name
func (r *Registry) Tools() ([]schema.Tool, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	var names []string
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	var result = make([]schema.Tool, 0, len(names))
	for _, name := range names {
		var tool schema.Tool
		if err := json.Unmarshal(r.entries[name].metadata, &tool); err != nil {
			return nil, fmt.Errorf("failed to decode tool %v: %w", name, err)
		}
		result = append(result, tool)
	}
	return result, nil
}

// Lookup returns a tool handler
func (r *Registry) Lookup(name string) (ToolHandler, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return entry.handler, true
}

// NewRegistry creates a registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}
