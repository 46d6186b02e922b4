package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxMessageSize caps a single JSON-RPC message on every transport: one
// stdio line or one HTTP request body.
const MaxMessageSize = 4 << 20

// ParseRequest reads one JSON-RPC message from r. Input beyond
// MaxMessageSize is rejected as an invalid request without being decoded.
func ParseRequest(r io.Reader) (*JSONRPCRequest, *JSONRPCError) {
	data, err := io.ReadAll(io.LimitReader(r, MaxMessageSize+1))
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return nil, messageTooLarge()
	case err != nil:
		return nil, ParseError(err.Error())
	case len(data) > MaxMessageSize:
		return nil, messageTooLarge()
	}
	return ParseRequestBytes(data)
}

// ParseRequestBytes decodes and validates one JSON-RPC message.
func ParseRequestBytes(data []byte) (*JSONRPCRequest, *JSONRPCError) {
	if len(data) > MaxMessageSize {
		return nil, messageTooLarge()
	}
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, ParseError(err.Error())
	}
	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func messageTooLarge() *JSONRPCError {
	return InvalidRequestError(fmt.Sprintf("message exceeds %d bytes", MaxMessageSize))
}

// ValidateRequest checks the envelope fields every request must carry.
func ValidateRequest(req *JSONRPCRequest) *JSONRPCError {
	switch {
	case req.JSONRPC != "2.0":
		return InvalidRequestError(`jsonrpc must be "2.0"`)
	case req.Method == "":
		return InvalidRequestError("method is required")
	}
	return nil
}

// reply turns a dispatch outcome into the response for req. Notifications
// get no response, so reply returns nil for them.
func reply(req *JSONRPCRequest, result interface{}, rpcErr *JSONRPCError) *JSONRPCResponse {
	switch {
	case req == nil:
		return ErrorResponse(nil, rpcErr)
	case req.IsNotification():
		return nil
	case rpcErr != nil:
		return ErrorResponse(req.ID, rpcErr)
	}
	return SuccessResponse(req.ID, result)
}

// UnmarshalParams decodes optional params; absent params give the zero T.
func UnmarshalParams[T any](params json.RawMessage) (*T, *JSONRPCError) {
	var result T
	if len(params) == 0 {
		return &result, nil
	}
	if err := json.Unmarshal(params, &result); err != nil {
		return nil, InvalidParamsError(err.Error())
	}
	return &result, nil
}

// UnmarshalParamsRequired is UnmarshalParams for methods that need params.
func UnmarshalParamsRequired[T any](params json.RawMessage) (*T, *JSONRPCError) {
	if len(params) == 0 {
		return nil, InvalidParamsError("params required")
	}
	return UnmarshalParams[T](params)
}

func textResult(text string, isError bool) *ToolResult {
	return &ToolResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
		IsError: isError,
	}
}

// ToolResultText wraps guidance markdown or Sass source as a tool result.
func ToolResultText(text string) *ToolResult {
	return textResult(text, false)
}

// ToolResultJSON wraps a catalog answer as indented JSON text.
func ToolResultJSON(data interface{}) (*ToolResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return textResult(string(b), false), nil
}

// ToolResultError reports a failed tool call inside the result, with
// isError set, rather than as a JSON-RPC error.
func ToolResultError(message string) *ToolResult {
	return textResult(message, true)
}

// ToolResultErrorf is ToolResultError with formatting.
func ToolResultErrorf(format string, args ...interface{}) *ToolResult {
	return ToolResultError(fmt.Sprintf(format, args...))
}
