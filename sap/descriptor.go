package sap

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/viant/mcp-protocol/schema"
)

const (
	// ToolName is the MCP tool name
	ToolName        = "sap_login"
	toolDescription = "Log in to an SAP system using basic authentication. Returns success status and session cookies if successful."
)

var (
	inputSchemaOnce sync.Once
	inputSchemaData []byte
	inputSchemaErr  error
)

// Descriptor returns the sap_login tool metadata. Each call returns an independent copy.
func Descriptor() (*schema.Tool, error) {
	data, err := InputSchema()
	if err != nil {
		return nil, err
	}
	var inputSchema schema.ToolInputSchema
	if err = json.Unmarshal(data, &inputSchema); err != nil {
		return nil, fmt.Errorf("failed to decode %v input schema: %w", ToolName, err)
	}
	description := toolDescription
	return &schema.Tool{
		Name:        ToolName,
		Description: &description,
		InputSchema: inputSchema,
	}, nil
}

// InputSchema returns the JSON schema of LoginRequest
func InputSchema() ([]byte, error) {
	inputSchemaOnce.Do(func() {
		inputSchemaData, inputSchemaErr = generateInputSchema()
	})
	return inputSchemaData, inputSchemaErr
}

func generateInputSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
		Anonymous:                 true,
	}
	root := reflector.Reflect(&LoginRequest{})
	if root.Properties == nil {
		return nil, fmt.Errorf("failed to reflect %v input schema: no properties", ToolName)
	}
	properties := make(map[string]interface{})
	for pair := root.Properties.Oldest(); pair != nil; pair = pair.Next() {
		properties[pair.Key] = propertySchema(pair.Value)
	}
	ret := map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   root.Required,
	}
	return json.Marshal(ret)
}

func propertySchema(s *jsonschema.Schema) map[string]interface{} {
	ret := map[string]interface{}{"type": s.Type}
	if s.Description != "" {
		ret["description"] = s.Description
	}
	if s.MinLength != nil {
		ret["minLength"] = *s.MinLength
	}
	return ret
}
