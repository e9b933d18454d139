package sap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const inputSchemaResource = "sap_login.json"

// Validator validates untyped tool arguments against the sap_login input schema
type Validator struct {
	schema *jsonschema.Schema
	err    error
	once   sync.Once
}

// Validate validates arguments and returns a typed login request or *ValidationError
func (v *Validator) Validate(arguments map[string]interface{}) (*LoginRequest, error) {
	v.once.Do(func() {
		v.schema, v.err = compileInputSchema()
	})
	if v.err != nil {
		return nil, v.err
	}
	if arguments == nil {
		arguments = map[string]interface{}{}
	}
	// normalize Go values to their JSON representation
	data, err := json.Marshal(arguments)
	if err != nil {
		return nil, &ValidationError{Violations: []Violation{{Message: err.Error()}}}
	}
	var document interface{}
	if err = json.Unmarshal(data, &document); err != nil {
		return nil, &ValidationError{Violations: []Violation{{Message: err.Error()}}}
	}
	if err = v.schema.Validate(document); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &ValidationError{Violations: violations(validationErr, nil)}
		}
		return nil, &ValidationError{Violations: []Violation{{Message: err.Error()}}}
	}
	request := &LoginRequest{}
	if err = json.Unmarshal(data, request); err != nil {
		return nil, &ValidationError{Violations: []Violation{{Message: err.Error()}}}
	}
	return request, nil
}

func violations(err *jsonschema.ValidationError, result []Violation) []Violation {
	if len(err.Causes) == 0 {
		return append(result, Violation{Field: fieldName(err.InstanceLocation), Message: err.Message})
	}
	for _, cause := range err.Causes {
		result = violations(cause, result)
	}
	return result
}

func fieldName(location string) string {
	if location == "" || location == "/" {
		return ""
	}
	location = strings.TrimPrefix(location, "/")
	return strings.ReplaceAll(location, "/", ".")
}

func compileInputSchema() (*jsonschema.Schema, error) {
	data, err := InputSchema()
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err = compiler.AddResource(inputSchemaResource, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add %v schema: %w", ToolName, err)
	}
	return compiler.Compile(inputSchemaResource)
}

// NewValidator creates a validator
func NewValidator() *Validator {
	return &Validator{}
}
