package sap

import (
	"fmt"
	"strings"
)

// Violation describes a single malformed or missing argument
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

// ValidationError is returned when tool arguments do not match the sap_login input schema.
// No network activity takes place once it is raised.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return "invalid " + ToolName + " arguments: " + e.Details()
}

// Details returns violations joined in a single line
func (e *ValidationError) Details() string {
	var messages []string
	for _, violation := range e.Violations {
		messages = append(messages, violation.String())
	}
	return strings.Join(messages, "; ")
}

// ConnectionError represents a failure to obtain a completed response from the target,
// including proxy failures and responses with status code 500 or above.
type ConnectionError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *ConnectionError) Error() string {
	return e.Message
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// AuthenticationFailure represents a completed response outside of the 2xx range
type AuthenticationFailure struct {
	StatusCode int
	Body       []byte
	Truncated  bool
}

func (e *AuthenticationFailure) Error() string {
	return fmt.Sprintf("login failed with status code %d", e.StatusCode)
}
