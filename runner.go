package sapmcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// RunOptions represents command line options
type RunOptions struct {
	Port      int           `short:"p" long:"port" env:"PORT" description:"HTTP port, runs on stdio when not set"`
	Config    string        `short:"c" long:"config" description:"options file URL (YAML)"`
	Timeout   time.Duration `short:"t" long:"timeout" description:"login probe timeout, e.g. 30s; no timeout by default"`
	Transport string        `short:"T" long:"transport-type" description:"root redirect target in HTTP mode" choice:"sse" choice:"streamable"`
	LogLevel  string        `short:"l" long:"log-level" description:"process log level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error"`
}

// Options builds server options, flags take precedence over the options file
func (r *RunOptions) Options(ctx context.Context) (*Options, error) {
	ret := &Options{}
	if r.Config != "" {
		var err error
		if ret, err = LoadOptions(ctx, r.Config); err != nil {
			return nil, err
		}
	}
	ret.Init()
	if r.Port != 0 {
		ret.Transport.Port = r.Port
	}
	if r.Timeout != 0 {
		ret.Timeout = r.Timeout
	}
	if r.Transport != "" {
		ret.Transport.Type = r.Transport
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// NewLogger creates a process logger, it writes to w, stdout is reserved for the stdio transport
func NewLogger(w io.Writer, level string) *slog.Logger {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		slogLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel}))
}

// LoadEnv loads dotenv files that exist, missing files are skipped
func LoadEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load %v: %w", file, err)
		}
	}
	return nil
}

// Run parses args and serves until ctx is done or the transport fails
func Run(ctx context.Context, args []string) error {
	if err := LoadEnv(".env"); err != nil {
		return err
	}
	runOptions := &RunOptions{}
	if _, err := flags.ParseArgs(runOptions, args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	logger := NewLogger(os.Stderr, runOptions.LogLevel)
	slog.SetDefault(logger)
	options, err := runOptions.Options(ctx)
	if err != nil {
		return err
	}
	srv, err := NewServer(options, logger)
	if err != nil {
		return err
	}
	return Serve(ctx, srv, options, logger)
}
