package sap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// defaultBodyLimit caps the response body kept for failure reporting
const defaultBodyLimit = 1 << 20

// ProbeResult represents a completed login probe response
type ProbeResult struct {
	StatusCode int
	Cookies    []string
	Body       []byte
	// Truncated is set when Body was cut at the prober body limit
	Truncated bool
}

// Succeeded returns true for 2xx responses
func (r *ProbeResult) Succeeded() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Err returns *AuthenticationFailure for any non 2xx response
func (r *ProbeResult) Err() error {
	if r.Succeeded() {
		return nil
	}
	return &AuthenticationFailure{StatusCode: r.StatusCode, Body: r.Body, Truncated: r.Truncated}
}

// Prober issues a single authenticated GET against an SAP endpoint
type Prober struct {
	transport *http.Transport
	client    *http.Client
	timeout   time.Duration
	bodyLimit int64
	logger    *slog.Logger
}

// ProberOption represents prober option
type ProberOption func(p *Prober)

// WithTimeout bounds each probe, zero means no timeout
func WithTimeout(timeout time.Duration) ProberOption {
	return func(p *Prober) {
		p.timeout = timeout
	}
}

// WithTransport sets base transport, proxied probes use its clone
func WithTransport(transport *http.Transport) ProberOption {
	return func(p *Prober) {
		p.transport = transport
	}
}

// WithBodyLimit sets the number of response body bytes kept, zero or less keeps the whole body
func WithBodyLimit(limit int64) ProberOption {
	return func(p *Prober) {
		p.bodyLimit = limit
	}
}

// WithLogger sets process logger
func WithLogger(logger *slog.Logger) ProberOption {
	return func(p *Prober) {
		p.logger = logger
	}
}

// Probe performs the login request. Any response with status code below 500 is returned as a result;
// transport failures and 5xx responses are returned as *ConnectionError.
func (p *Prober) Probe(ctx context.Context, request *LoginRequest) (*ProbeResult, error) {
	probeID := uuid.New().String()
	target, err := p.targetURL(request)
	if err != nil {
		return nil, err
	}
	client, closeIdle, err := p.httpClient(request.Proxy)
	if err != nil {
		return nil, err
	}
	defer closeIdle()

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &ConnectionError{Message: err.Error(), Err: err}
	}
	httpRequest.SetBasicAuth(request.Username, request.Password)
	httpRequest.Header.Set("Accept", "application/json, text/plain, */*")

	p.logger.Debug("probing", "probe", probeID, "url", target.Redacted(), "proxy", request.Proxy != "")
	started := time.Now()
	response, err := client.Do(httpRequest)
	if err != nil {
		p.logger.Warn("probe failed", "probe", probeID, "url", target.Redacted(), "error", err)
		return nil, &ConnectionError{Message: err.Error(), Err: err}
	}
	defer response.Body.Close()
	body, truncated, err := p.readBody(response.Body)
	if err != nil {
		return nil, &ConnectionError{Message: err.Error(), Err: err}
	}
	p.logger.Info("probe completed", "probe", probeID, "url", target.Redacted(), "status", response.StatusCode, "elapsed", time.Since(started))
	if response.StatusCode >= http.StatusInternalServerError {
		return nil, &ConnectionError{
			Message:    fmt.Sprintf("Request failed with status code %d", response.StatusCode),
			StatusCode: response.StatusCode,
		}
	}
	cookies := make([]string, 0)
	cookies = append(cookies, response.Header.Values("Set-Cookie")...)
	return &ProbeResult{StatusCode: response.StatusCode, Cookies: cookies, Body: body, Truncated: truncated}, nil
}

func (p *Prober) readBody(body io.Reader) ([]byte, bool, error) {
	if p.bodyLimit <= 0 {
		data, err := io.ReadAll(body)
		return data, false, err
	}
	data, err := io.ReadAll(io.LimitReader(body, p.bodyLimit+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(data)) > p.bodyLimit {
		return data[:p.bodyLimit], true, nil
	}
	return data, false, nil
}

func (p *Prober) targetURL(request *LoginRequest) (*url.URL, error) {
	target, err := url.Parse(request.URL)
	if err != nil {
		return nil, &ConnectionError{Message: fmt.Sprintf("invalid URL: %v", err), Err: err}
	}
	if params := request.Query(); len(params) > 0 {
		query := target.Query()
		for key := range params {
			query.Set(key, params.Get(key))
		}
		target.RawQuery = query.Encode()
	}
	return target, nil
}

func (p *Prober) httpClient(proxy string) (*http.Client, func(), error) {
	if proxy == "" {
		return p.client, func() {}, nil
	}
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return nil, nil, &ConnectionError{Message: fmt.Sprintf("invalid proxy URL: %v", err), Err: err}
	}
	if proxyURL.Scheme == "" || proxyURL.Host == "" {
		return nil, nil, &ConnectionError{Message: fmt.Sprintf("invalid proxy URL: %q", proxy)}
	}
	transport := p.transport.Clone()
	transport.Proxy = http.ProxyURL(proxyURL)
	return &http.Client{Transport: transport, Timeout: p.timeout}, transport.CloseIdleConnections, nil
}

// NewProber creates a prober
func NewProber(options ...ProberOption) *Prober {
	ret := &Prober{bodyLimit: defaultBodyLimit}
	for _, option := range options {
		option(ret)
	}
	if ret.transport == nil {
		ret.transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	if ret.logger == nil {
		ret.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ret.client = &http.Client{Transport: ret.transport, Timeout: ret.timeout}
	return ret
}
