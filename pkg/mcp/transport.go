package mcp

import "net/http"

// HTTP headers used by MCP protocol.
const (
	HeaderSessionID       = "Mcp-Session-Id"
	HeaderProtocolVersion = "MCP-Protocol-Version"
	HeaderContentType     = "Content-Type"
	HeaderAccept          = "Accept"
	HeaderOrigin          = "Origin"
)

// Content types.
const (
	ContentTypeJSON        = "application/json"
	ContentTypeEventStream = "text/event-stream"
	ContentTypeMarkdown    = "text/markdown"
	ContentTypeHTML        = "text/html"
)

// RequestInfo extracts information from an HTTP request relevant to MCP.
type RequestInfo struct {
	SessionID       string
	ProtocolVersion string
	ContentType     string
	Accept          string
	Origin          string
}

// ExtractRequestInfo extracts MCP-relevant information from a request.
func ExtractRequestInfo(r *http.Request) *RequestInfo {
	return &RequestInfo{
		SessionID:       r.Header.Get(HeaderSessionID),
		ProtocolVersion: r.Header.Get(HeaderProtocolVersion),
		ContentType:     r.Header.Get(HeaderContentType),
		Accept:          r.Header.Get(HeaderAccept),
		Origin:          r.Header.Get(HeaderOrigin),
	}
}
