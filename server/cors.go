package server

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	AllowOriginHeader       = "Access-Control-Allow-Origin"
	AllowHeadersHeader      = "Access-Control-Allow-Headers"
	AllowMethodsHeader      = "Access-Control-Allow-Methods"
	AllControlRequestHeader = "Access-Control-Request-Method"
	RequestHeadersHeader    = "Access-Control-Request-Headers"
	AllowCredentialsHeader  = "Access-Control-Allow-Credentials"
	ExposeHeadersHeader     = "Access-Control-Expose-Headers"
	MaxAgeHeader            = "Access-Control-Max-Age"
	Separator               = ","
)

// Cors represents CORS configuration
type Cors struct {
	AllowCredentials *bool    `yaml:"allowCredentials,omitempty" json:"allowCredentials,omitempty"`
	AllowHeaders     []string `yaml:"allowHeaders,omitempty" json:"allowHeaders,omitempty"`
	AllowMethods     []string `yaml:"allowMethods,omitempty" json:"allowMethods,omitempty"`
	AllowOrigins     []string `yaml:"allowOrigins,omitempty" json:"allowOrigins,omitempty"`
	ExposeHeaders    []string `yaml:"exposeHeaders,omitempty" json:"exposeHeaders,omitempty"`
	MaxAge           *int64   `yaml:"maxAge,omitempty" json:"maxAge,omitempty"`
}

// OriginMap returns allowed origins as a set
func (c *Cors) OriginMap() map[string]bool {
	var result = make(map[string]bool)
	for _, origin := range c.AllowOrigins {
		result[origin] = true
	}
	return result
}

// corsHandler is a handler that sets CORS headers and answers preflight requests
type corsHandler struct {
	*Cors
}

func (h *corsHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Cors.setHeaders(w, r)
		if r.Method == http.MethodOptions && r.Header.Get(AllControlRequestHeader) != "" {
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Cors) setHeaders(writer http.ResponseWriter, request *http.Request) {
	if c == nil {
		return
	}
	origin := request.Header.Get("Origin")
	allowedOrigins := c.OriginMap()
	switch {
	case allowedOrigins["*"]:
		writer.Header().Set(AllowOriginHeader, "*")
	case origin != "" && allowedOrigins[origin]:
		writer.Header().Set(AllowOriginHeader, origin)
		writer.Header().Add("Vary", "Origin")
	}
	if c.AllowCredentials != nil && *c.AllowCredentials {
		writer.Header().Set(AllowCredentialsHeader, strconv.FormatBool(true))
	}
	if len(c.ExposeHeaders) > 0 {
		writer.Header().Set(ExposeHeadersHeader, strings.Join(c.ExposeHeaders, Separator))
	}
	if request.Method != http.MethodOptions {
		return
	}
	if len(c.AllowMethods) > 0 {
		writer.Header().Set(AllowMethodsHeader, strings.Join(c.AllowMethods, Separator))
	}
	if len(c.AllowHeaders) > 0 {
		writer.Header().Set(AllowHeadersHeader, strings.Join(c.AllowHeaders, Separator))
	} else if requested := request.Header.Get(RequestHeadersHeader); requested != "" {
		// reflect requested headers when none are configured
		writer.Header().Set(AllowHeadersHeader, requested)
		writer.Header().Add("Vary", RequestHeadersHeader)
	}
	if c.MaxAge != nil {
		writer.Header().Set(MaxAgeHeader, strconv.Itoa(int(*c.MaxAge)))
	}
}

// defaultCors allows any origin without credentials
func defaultCors() *Cors {
	return &Cors{
		AllowMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowOrigins: []string{"*"},
	}
}
