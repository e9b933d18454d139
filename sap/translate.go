package sap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/mcp-protocol/schema"
)

// Translate maps a probe outcome to the tool call result
func Translate(result *ProbeResult, err error) *schema.CallToolResult {
	if err == nil && result == nil {
		err = errors.New("no response received")
	}
	if err == nil {
		err = result.Err()
	}
	if err == nil {
		return textResult(fmt.Sprintf("Login successful. Status: %d.\nCookies received: %s", result.StatusCode, renderJSON(result.Cookies, "  ")), false)
	}
	var validationErr *ValidationError
	var authErr *AuthenticationFailure
	var connErr *ConnectionError
	switch {
	case errors.As(err, &validationErr):
		return textResult(fmt.Sprintf("Invalid %v arguments: %s", ToolName, validationErr.Details()), true)
	case errors.As(err, &authErr):
		text := fmt.Sprintf("Login failed. Status: %d. Response: %s", authErr.StatusCode, renderBody(authErr.Body))
		if authErr.Truncated {
			text += fmt.Sprintf(" (truncated to %d bytes)", len(authErr.Body))
		}
		return textResult(text, true)
	case errors.As(err, &connErr):
		return textResult("Error connecting to SAP: "+connErr.Message, true)
	}
	return textResult("Error connecting to SAP: "+err.Error(), true)
}

func textResult(text string, isError bool) *schema.CallToolResult {
	ret := &schema.CallToolResult{
		Content: []schema.CallToolResultContentElem{
			schema.TextContent{Type: "text", Text: text},
		},
	}
	if isError {
		ret.IsError = &isError
	}
	return ret
}

// renderBody renders JSON bodies compacted, anything else as a JSON string
func renderBody(body []byte) string {
	if len(body) == 0 {
		return `""`
	}
	if json.Valid(body) {
		compacted := &bytes.Buffer{}
		if err := json.Compact(compacted, body); err == nil {
			return compacted.String()
		}
	}
	return renderJSON(string(body), "")
}

func renderJSON(value interface{}, indent string) string {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(value); err != nil {
		return fmt.Sprintf("%v", value)
	}
	return strings.TrimSuffix(buffer.String(), "\n")
}
