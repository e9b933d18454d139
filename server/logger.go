package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

var levelOrdinals = map[string]int{
	"debug":     0,
	"info":      1,
	"notice":    2,
	"warning":   3,
	"error":     4,
	"critical":  5,
	"alert":     6,
	"emergency": 7,
}

// LoggingLevel holds the minimum level requested by the client via logging/setLevel
type LoggingLevel struct {
	level string
	mux   sync.RWMutex
}

// Set sets level
func (l *LoggingLevel) Set(level schema.LoggingLevel) {
	l.mux.Lock()
	defer l.mux.Unlock()
	l.level = string(level)
}

// Enabled returns true if level passes the threshold, nothing is enabled until the client sets a level
func (l *LoggingLevel) Enabled(level string) bool {
	if l == nil {
		return false
	}
	l.mux.RLock()
	defer l.mux.RUnlock()
	threshold, ok := levelOrdinals[l.level]
	if !ok {
		return false
	}
	return levelOrdinals[level] >= threshold
}

// Logger sends log records to the client as notifications/message
type Logger struct {
	name     string
	level    *LoggingLevel
	notifier transport.Notifier
}

// Logger creates a new logger with a name
func (l *Logger) Logger(name string) *Logger {
	return &Logger{
		name:     name,
		level:    l.level,
		notifier: l.notifier,
	}
}

func (l *Logger) log(ctx context.Context, level string, data any) error {
	if !l.level.Enabled(level) || l.notifier == nil {
		return nil
	}
	notification := &jsonrpc.Notification{Method: schema.MethodNotificationMessage}
	params := schema.LoggingMessageNotificationParams{
		Level:  schema.LoggingLevel(level),
		Logger: &l.name,
		Data:   data,
	}
	var err error
	notification.Params, err = json.Marshal(params)
	if err != nil {
		return err
	}
	return l.notifier.Notify(ctx, notification)
}

func (l *Logger) Debug(ctx context.Context, data interface{}) error {
	return l.log(ctx, "debug", data)
}

func (l *Logger) Info(ctx context.Context, data interface{}) error {
	return l.log(ctx, "info", data)
}

func (l *Logger) Notice(ctx context.Context, data interface{}) error {
	return l.log(ctx, "notice", data)
}

func (l *Logger) Warning(ctx context.Context, data interface{}) error {
	return l.log(ctx, "warning", data)
}

func (l *Logger) Error(ctx context.Context, data interface{}) error {
	return l.log(ctx, "error", data)
}

func (l *Logger) Critical(ctx context.Context, data interface{}) error {
	return l.log(ctx, "critical", data)
}

// NewLogger creates a logger
func NewLogger(name string, level *LoggingLevel, notifier transport.Notifier) *Logger {
	return &Logger{
		name:     name,
		level:    level,
		notifier: notifier,
	}
}
