package sap

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcp-protocol/schema"
)

type toolOutput struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

func decodeOutput(t *testing.T, result *schema.CallToolResult) *toolOutput {
	t.Helper()
	data, err := json.Marshal(result)
	require.NoError(t, err)
	output := &toolOutput{}
	require.NoError(t, json.Unmarshal(data, output))
	require.Len(t, output.Content, 1)
	assert.Equal(t, "text", output.Content[0].Type)
	return output
}

func TestTranslate(t *testing.T) {
	var testCases = []struct {
		description string
		result      *ProbeResult
		err         error
		expect      string
		isError     bool
	}{
		{
			description: "success with cookies",
			result:      &ProbeResult{StatusCode: 200, Cookies: []string{"SAP_SESSIONID=abc; path=/", "sap-usercontext=sap-client=100"}},
			expect:      "Login successful. Status: 200.\nCookies received: [\n  \"SAP_SESSIONID=abc; path=/\",\n  \"sap-usercontext=sap-client=100\"\n]",
		},
		{
			description: "success without cookies",
			result:      &ProbeResult{StatusCode: 204, Cookies: []string{}},
			expect:      "Login successful. Status: 204.\nCookies received: []",
		},
		{
			description: "unauthorized with text body",
			result:      &ProbeResult{StatusCode: 401, Body: []byte("Logon failed")},
			expect:      `Login failed. Status: 401. Response: "Logon failed"`,
			isError:     true,
		},
		{
			description: "forbidden with json body",
			result:      &ProbeResult{StatusCode: 403, Body: []byte("{\n  \"error\": \"denied\"\n}")},
			expect:      `Login failed. Status: 403. Response: {"error":"denied"}`,
			isError:     true,
		},
		{
			description: "redirect with empty body",
			result:      &ProbeResult{StatusCode: 302},
			expect:      `Login failed. Status: 302. Response: ""`,
			isError:     true,
		},
		{
			description: "server error",
			err:         &ConnectionError{Message: "Request failed with status code 500", StatusCode: 500},
			expect:      "Error connecting to SAP: Request failed with status code 500",
			isError:     true,
		},
		{
			description: "validation error",
			err:         &ValidationError{Violations: []Violation{{Field: "url", Message: "missing property"}, {Message: "bad"}}},
			expect:      "Invalid sap_login arguments: url: missing property; bad",
			isError:     true,
		},
		{
			description: "truncated body",
			result:      &ProbeResult{StatusCode: 401, Body: []byte(`{"error":`), Truncated: true},
			expect:      `Login failed. Status: 401. Response: "{\"error\":" (truncated to 9 bytes)`,
			isError:     true,
		},
		{
			description: "no outcome",
			expect:      "Error connecting to SAP: no response received",
			isError:     true,
		},
		{
			description: "generic error",
			err:         errors.New("boom"),
			expect:      "Error connecting to SAP: boom",
			isError:     true,
		},
	}

	for _, testCase := range testCases {
		output := decodeOutput(t, Translate(testCase.result, testCase.err))
		assert.Equal(t, testCase.expect, output.Content[0].Text, testCase.description)
		assert.Equal(t, testCase.isError, output.IsError, testCase.description)
	}
}

func TestProbeResult_Err(t *testing.T) {
	assert.NoError(t, (&ProbeResult{StatusCode: 200}).Err())
	assert.NoError(t, (&ProbeResult{StatusCode: 299}).Err())
	err := (&ProbeResult{StatusCode: 300, Body: []byte("moved")}).Err()
	var authErr *AuthenticationFailure
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, 300, authErr.StatusCode)
	assert.EqualValues(t, "moved", authErr.Body)
}
