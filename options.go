package sapmcp

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/viant/afs"
	"github.com/viant/sap-mcp/server"
	"gopkg.in/yaml.v3"
)

const (
	// TransportSSE selects SSE as the root redirect target
	TransportSSE = "sse"
	// TransportStreamable selects streamable HTTP as the root redirect target
	TransportStreamable = "streamable"
)

// Options defines options for configuring the SAP MCP server.
type Options struct {
	Name            string        `yaml:"name" json:"name"`
	Version         string        `yaml:"version" json:"version"`
	ProtocolVersion string        `yaml:"protocol" json:"protocol"`
	LoggerName      string        `yaml:"loggerName" json:"loggerName"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" validate:"gte=0"`
	Transport       *Transport    `yaml:"transport" json:"transport" validate:"required"`
}

// Transport defines the server transport; a positive port selects HTTP, otherwise stdio is used.
type Transport struct {
	Type          string       `yaml:"type" json:"type" validate:"omitempty,oneof=sse streamable"`
	Port          int          `yaml:"port" json:"port" validate:"gte=0,lte=65535"`
	SSEURI        string       `yaml:"sseURI" json:"sseURI" validate:"omitempty,startswith=/"`
	SSEMessageURI string       `yaml:"sseMessageURI" json:"sseMessageURI" validate:"omitempty,startswith=/"`
	StreamableURI string       `yaml:"streamableURI" json:"streamableURI" validate:"omitempty,startswith=/"`
	RootRedirect  bool         `yaml:"rootRedirect" json:"rootRedirect"`
	Cors          *server.Cors `yaml:"cors" json:"cors"`
}

// IsHTTP returns true when a port is configured
func (t *Transport) IsHTTP() bool {
	return t != nil && t.Port > 0
}

// Address returns the HTTP listen address
func (t *Transport) Address() string {
	return fmt.Sprintf(":%d", t.Port)
}

// Init sets defaults
func (o *Options) Init() {
	if o.Name == "" {
		o.Name = "sap-mcp-server"
	}
	if o.Version == "" {
		o.Version = "1.0.0"
	}
	if o.LoggerName == "" {
		o.LoggerName = "sap-mcp"
	}
	if o.Transport == nil {
		o.Transport = &Transport{}
	}
	if o.Transport.Type == "" {
		o.Transport.Type = TransportSSE
	}
	if o.Transport.SSEURI == "" {
		o.Transport.SSEURI = "/sse"
	}
	if o.Transport.SSEMessageURI == "" {
		o.Transport.SSEMessageURI = "/message"
	}
	if o.Transport.StreamableURI == "" {
		o.Transport.StreamableURI = "/mcp"
	}
}

// Validate validates options
func (o *Options) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("validate options: %w", err)
	}
	if o.Transport.SSEURI == o.Transport.SSEMessageURI {
		return fmt.Errorf("validate options: sseURI and sseMessageURI have to differ: %v", o.Transport.SSEURI)
	}
	return nil
}

// LoadOptions loads YAML options from any afs supported URL, ${VAR} references are expanded
func LoadOptions(ctx context.Context, URL string) (*Options, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("read options %v: %w", URL, err)
	}
	ret := &Options{}
	if err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), ret); err != nil {
		return nil, fmt.Errorf("decode options %v: %w", URL, err)
	}
	return ret, nil
}
