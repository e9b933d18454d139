package sap

import (
	"fmt"
	"net/url"
)

// LoginRequest represents sap_login tool arguments
type LoginRequest struct {
	URL      string `json:"url" jsonschema_description:"The base URL of the SAP system" jsonschema:"minLength=1"`
	Username string `json:"username" jsonschema_description:"SAP username" jsonschema:"minLength=1"`
	Password string `json:"password" jsonschema_description:"SAP password" jsonschema:"minLength=1"`
	Client   string `json:"client,omitempty" jsonschema_description:"SAP Client (e.g., 100)"`
	Language string `json:"language,omitempty" jsonschema_description:"Login Language (e.g., EN)"`
	Proxy    string `json:"proxy,omitempty" jsonschema_description:"Proxy URL if required"`
}

// String returns a loggable representation, password is masked
func (r *LoginRequest) String() string {
	target := r.URL
	if u, err := url.Parse(r.URL); err == nil {
		target = u.Redacted()
	}
	return fmt.Sprintf("{url: %v, username: %v, password: ***, client: %v, language: %v, proxy: %v}",
		target, r.Username, r.Client, r.Language, r.Proxy != "")
}

// Query returns the SAP logon query parameters
func (r *LoginRequest) Query() url.Values {
	values := url.Values{}
	if r.Client != "" {
		values.Set("sap-client", r.Client)
	}
	if r.Language != "" {
		values.Set("sap-language", r.Language)
	}
	return values
}
