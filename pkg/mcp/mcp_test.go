package mcp

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestSession_SetClientData_Concurrent(t *testing.T) {
	t.Parallel()

	session := NewSession()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(3)

		go func() {
			defer wg.Done()
			session.SetClientData(
				"2025-06-18",
				ClientInfo{Name: "client", Version: "1.0"},
				ClientCapabilities{},
			)
		}()

		go func() {
			defer wg.Done()
			_ = session.GetState()
			_ = session.Client()
		}()

		go func(n int) {
			defer wg.Done()
			session.SetState(SessionState(n % 4))
		}(i)
	}

	wg.Wait()
}

func TestSession_Touch_UpdatesLastActive(t *testing.T) {
	t.Parallel()

	session := NewSession()
	original := session.LastActiveAt

	time.Sleep(2 * time.Millisecond)
	session.Touch()

	if !session.LastActiveAt.After(original) {
		t.Error("Touch() should advance LastActiveAt")
	}
}

func TestSession_IsExpired(t *testing.T) {
	t.Parallel()

	session := NewSession()
	if session.IsExpired(time.Hour) {
		t.Error("fresh session should not be expired")
	}

	time.Sleep(5 * time.Millisecond)
	if !session.IsExpired(time.Millisecond) {
		t.Error("idle session should be expired")
	}
}

func TestSession_Close(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.Close()

	if session.GetState() != SessionStateExpired {
		t.Errorf("state = %s, want expired", session.GetState())
	}
}

func TestSessionManager_Create_GeneratesUUID(t *testing.T) {
	t.Parallel()

	manager := NewSessionManager(&Config{SessionTimeout: time.Hour, MaxSessions: 10})

	session1, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	session2, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() second error = %v", err)
	}

	if session1.ID == session2.ID {
		t.Error("sessions should have unique IDs")
	}
	if _, err := uuid.Parse(session1.ID); err != nil {
		t.Errorf("session ID %q is not a UUID: %v", session1.ID, err)
	}
	if session1.GetState() != SessionStateNew {
		t.Errorf("state = %s, want new", session1.GetState())
	}
}

func TestSessionManager_GetAndDelete(t *testing.T) {
	t.Parallel()

	manager := NewSessionManager(&Config{SessionTimeout: time.Hour, MaxSessions: 10})
	session, _ := manager.Create()

	if got := manager.Get(session.ID); got != session {
		t.Error("Get() should return the created session")
	}
	if got := manager.Get("nonexistent-id"); got != nil {
		t.Error("Get() should return nil for nonexistent session")
	}

	if !manager.Delete(session.ID) {
		t.Error("Delete() should report the session existed")
	}
	if manager.Delete(session.ID) {
		t.Error("second Delete() should report nothing was removed")
	}
	if session.GetState() != SessionStateExpired {
		t.Error("deleted session should be closed")
	}
}

func TestSessionManager_Cleanup_RemovesExpired(t *testing.T) {
	t.Parallel()

	manager := NewSessionManager(&Config{SessionTimeout: 5 * time.Millisecond, MaxSessions: 10})

	session1, _ := manager.Create()
	session2, _ := manager.Create()

	time.Sleep(10 * time.Millisecond)
	session2.Touch()

	if removed := manager.Cleanup(); removed != 1 {
		t.Errorf("Cleanup() removed %d, want 1", removed)
	}
	if manager.Get(session1.ID) != nil {
		t.Error("expired session1 should be removed")
	}
	if manager.Get(session2.ID) == nil {
		t.Error("touched session2 should remain")
	}
}

func TestSessionManager_MaxSessions(t *testing.T) {
	t.Parallel()

	manager := NewSessionManager(&Config{SessionTimeout: time.Hour, MaxSessions: 2})

	for i := 0; i < 2; i++ {
		if _, err := manager.Create(); err != nil {
			t.Fatalf("Create() %d error = %v", i, err)
		}
	}
	if _, err := manager.Create(); err == nil {
		t.Error("Create() should fail when max sessions reached")
	}
}

func TestSessionManager_MaxSessions_EvictsExpired(t *testing.T) {
	t.Parallel()

	manager := NewSessionManager(&Config{SessionTimeout: 5 * time.Millisecond, MaxSessions: 1})

	if _, err := manager.Create(); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := manager.Create(); err != nil {
		t.Errorf("Create() should evict the expired session, got %v", err)
	}
	if manager.Count() != 1 {
		t.Errorf("Count() = %d, want 1", manager.Count())
	}
}

func TestSessionManager_Close(t *testing.T) {
	t.Parallel()

	manager := NewSessionManager(&Config{SessionTimeout: time.Hour, MaxSessions: 10})
	s1, _ := manager.Create()
	s2, _ := manager.Create()

	manager.Close()

	if manager.Count() != 0 {
		t.Errorf("Count() = %d, want 0", manager.Count())
	}
	for _, s := range []*MCPSession{s1, s2} {
		if s.GetState() != SessionStateExpired {
			t.Errorf("session %s state = %s, want expired", s.ID, s.GetState())
		}
	}
}

func TestSessionState_String(t *testing.T) {
	t.Parallel()

	tests := map[SessionState]string{
		SessionStateNew:         "new",
		SessionStateInitialized: "initialized",
		SessionStateReady:       "ready",
		SessionStateExpired:     "expired",
		SessionState(99):        "unknown",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("SessionState(%d).String() = %q, want %q", state, got, want)
		}
	}
}

// =============================================================================
// JSONRPC TESTS
// =============================================================================

func TestParseRequest_ValidJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		method string
		hasID  bool
	}{
		{
			name:   "basic request",
			input:  `{"jsonrpc":"2.0","id":1,"method":"ping"}`,
			method: "ping",
			hasID:  true,
		},
		{
			name:   "string id",
			input:  `{"jsonrpc":"2.0","id":"abc123","method":"initialize"}`,
			method: "initialize",
			hasID:  true,
		},
		{
			name:   "notification (no id)",
			input:  `{"jsonrpc":"2.0","method":"notifications/initialized"}`,
			method: "notifications/initialized",
			hasID:  false,
		},
		{
			name:   "with params",
			input:  `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"list_components"}}`,
			method: "tools/call",
			hasID:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequest(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseRequest() error = %v", err)
			}
			if req.Method != tt.method {
				t.Errorf("Method = %s, want %s", req.Method, tt.method)
			}
			if tt.hasID == req.IsNotification() {
				t.Errorf("IsNotification() = %v, want %v", req.IsNotification(), !tt.hasID)
			}
		})
	}
}

func TestParseRequest_InvalidJSON_ReturnsError(t *testing.T) {
	t.Parallel()

	for _, input := range []string{`{"jsonrpc":"2.0"`, `this is not json`, ``} {
		_, err := ParseRequest(strings.NewReader(input))
		if err == nil {
			t.Fatalf("ParseRequest(%q) should return error", input)
		}
		if err.Code != ErrCodeParseError {
			t.Errorf("ParseRequest(%q) code = %d, want %d", input, err.Code, ErrCodeParseError)
		}
	}
}

func TestValidateRequest_InvalidRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  JSONRPCRequest
	}{
		{name: "wrong jsonrpc version", req: JSONRPCRequest{JSONRPC: "1.0", Method: "test"}},
		{name: "empty method", req: JSONRPCRequest{JSONRPC: "2.0", Method: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.req)
			if err == nil {
				t.Fatal("ValidateRequest() should return error")
			}
			if err.Code != ErrCodeInvalidRequest {
				t.Errorf("error code = %d, want %d", err.Code, ErrCodeInvalidRequest)
			}
		})
	}
}

func TestReply(t *testing.T) {
	t.Parallel()

	call := &JSONRPCRequest{JSONRPC: "2.0", ID: 7, Method: "ping"}
	note := &JSONRPCRequest{JSONRPC: "2.0", Method: "notifications/initialized"}

	if resp := reply(call, map[string]string{}, nil); resp == nil || resp.Error != nil || resp.ID != 7 {
		t.Errorf("reply(call, ok) = %+v, want success for id 7", resp)
	}
	if resp := reply(call, nil, MethodNotFoundError("nope")); resp == nil || resp.Error == nil || resp.Error.Code != ErrCodeMethodNotFound {
		t.Errorf("reply(call, err) = %+v, want method-not-found", resp)
	}
	if resp := reply(note, nil, MethodNotFoundError("nope")); resp != nil {
		t.Errorf("reply(notification) = %+v, want nil", resp)
	}
	if resp := reply(nil, nil, ParseError("bad")); resp == nil || resp.ID != nil || resp.Error.Code != ErrCodeParseError {
		t.Errorf("reply(nil, parse error) = %+v, want parse error without id", resp)
	}
}

func TestUnmarshalParams(t *testing.T) {
	t.Parallel()

	result, err := UnmarshalParams[ResourceReadParams](json.RawMessage(`{"uri":"theming://platforms"}`))
	if err != nil {
		t.Fatalf("UnmarshalParams() error = %v", err)
	}
	if result.URI != URIPlatforms {
		t.Errorf("URI = %s, want %s", result.URI, URIPlatforms)
	}

	result, err = UnmarshalParams[ResourceReadParams](nil)
	if err != nil || result.URI != "" {
		t.Errorf("empty params should give zero value, got %+v, %v", result, err)
	}

	if _, err := UnmarshalParams[ResourceReadParams](json.RawMessage(`{invalid}`)); err == nil {
		t.Error("UnmarshalParams() should return error for invalid JSON")
	}

	_, err = UnmarshalParamsRequired[ResourceReadParams](nil)
	if err == nil || err.Code != ErrCodeInvalidParams {
		t.Errorf("UnmarshalParamsRequired(nil) = %v, want invalid params", err)
	}
}

func TestToolResultHelpers(t *testing.T) {
	t.Parallel()

	text := ToolResultText("hello")
	if text.IsError || len(text.Content) != 1 || text.Content[0].Type != "text" || text.Content[0].Text != "hello" {
		t.Errorf("ToolResultText() = %+v", text)
	}

	errResult := ToolResultErrorf("bad %s: %d", "thing", 3)
	if !errResult.IsError || errResult.Content[0].Text != "bad thing: 3" {
		t.Errorf("ToolResultErrorf() = %+v", errResult)
	}

	jsonResult, err := ToolResultJSON(map[string]int{"count": 2})
	if err != nil {
		t.Fatalf("ToolResultJSON() error = %v", err)
	}
	if jsonResult.Content[0].Text != "{\n  \"count\": 2\n}" {
		t.Errorf("ToolResultJSON() text = %q", jsonResult.Content[0].Text)
	}
}

func TestJSONRPCError_Error(t *testing.T) {
	t.Parallel()

	if got := NotInitializedError().Error(); got != "Session not initialized (-32007)" {
		t.Errorf("Error() = %q", got)
	}

	err := ProtocolVersionError("1999-01-01", SupportedProtocolVersions)
	if err.Code != ErrCodeProtocolVersion {
		t.Errorf("code = %d, want %d", err.Code, ErrCodeProtocolVersion)
	}
	if !strings.Contains(err.Error(), "1999-01-01") {
		t.Errorf("Error() = %q should name the requested version", err.Error())
	}
}

func TestIsProtocolVersionSupported(t *testing.T) {
	t.Parallel()

	if !IsProtocolVersionSupported(ProtocolVersion) {
		t.Error("preferred version must be supported")
	}
	if IsProtocolVersionSupported("2020-01-01") {
		t.Error("unknown version should not be supported")
	}
	if got := negotiateVersion("2024-11-05"); got != "2024-11-05" {
		t.Errorf("negotiateVersion(supported) = %s", got)
	}
	if got := negotiateVersion("2020-01-01"); got != ProtocolVersion {
		t.Errorf("negotiateVersion(unknown) = %s, want %s", got, ProtocolVersion)
	}
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{Port: 9091, Path: "/mcp", MaxSessions: 100, SessionTimeout: time.Minute}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "invalid port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "invalid port too high", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "empty path", mutate: func(c *Config) { c.Path = "" }, wantErr: true},
		{name: "path without leading slash", mutate: func(c *Config) { c.Path = "mcp" }, wantErr: true},
		{name: "zero max sessions", mutate: func(c *Config) { c.MaxSessions = 0 }, wantErr: true},
		{name: "session timeout too short", mutate: func(c *Config) { c.SessionTimeout = time.Millisecond }, wantErr: true},
		{name: "negative cache ttl", mutate: func(c *Config) { c.GuidanceCacheTTL = -time.Second }, wantErr: true},
		{name: "cache disabled", mutate: func(c *Config) { c.GuidanceCacheTTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Address(t *testing.T) {
	t.Parallel()

	if addr := (&Config{Port: 9091}).Address(); addr != "127.0.0.1:9091" {
		t.Errorf("Address() = %s, want 127.0.0.1:9091", addr)
	}
	if addr := (&Config{Port: 9091, AllowRemote: true}).Address(); addr != ":9091" {
		t.Errorf("Address() = %s, want :9091", addr)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Port != 9091 || cfg.Path != "/mcp" {
		t.Errorf("listen = %d %s, want 9091 /mcp", cfg.Port, cfg.Path)
	}
	if cfg.GuidanceCacheTTL != 10*time.Minute {
		t.Errorf("GuidanceCacheTTL = %v, want 10m", cfg.GuidanceCacheTTL)
	}
}

// =============================================================================
// TOOL ARGUMENT HELPERS
// =============================================================================

func TestRequireString(t *testing.T) {
	t.Parallel()

	args := map[string]interface{}{"ok": "  avatar ", "blank": "   ", "num": 3.0}

	if got, err := requireString(args, "ok"); err != nil || got != "avatar" {
		t.Errorf("requireString(ok) = %q, %v", got, err)
	}
	for _, key := range []string{"blank", "num", "missing"} {
		if _, err := requireString(args, key); err == nil {
			t.Errorf("requireString(%s) should fail", key)
		}
	}
}

func TestGetStringMap(t *testing.T) {
	t.Parallel()

	args := map[string]interface{}{
		"tokens": map[string]interface{}{"background": "red", "size": 2.0, "flag": true},
		"bad":    map[string]interface{}{"x": []interface{}{1}},
		"scalar": "nope",
	}

	got, err := getStringMap(args, "tokens")
	if err != nil {
		t.Fatalf("getStringMap() error = %v", err)
	}
	want := map[string]string{"background": "red", "size": "2", "flag": "true"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("tokens[%s] = %q, want %q", k, got[k], v)
		}
	}

	if _, err := getStringMap(args, "bad"); err == nil {
		t.Error("nested values should be rejected")
	}
	if _, err := getStringMap(args, "scalar"); err == nil {
		t.Error("non-object should be rejected")
	}
	if m, err := getStringMap(args, "missing"); err != nil || m != nil {
		t.Errorf("missing key = %v, %v; want nil, nil", m, err)
	}
}

func TestMatchOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origin, pattern string
		want            bool
	}{
		{"http://localhost:3000", "http://localhost:*", true},
		{"http://localhost:", "http://localhost:*", false},
		{"http://localhost:abc", "http://localhost:*", false},
		{"https://example.com", "https://example.com", true},
		{"https://evil.com", "https://example.com", false},
	}
	for _, tt := range tests {
		if got := matchOrigin(tt.origin, tt.pattern); got != tt.want {
			t.Errorf("matchOrigin(%q, %q) = %v, want %v", tt.origin, tt.pattern, got, tt.want)
		}
	}
}

func TestIsLocalhost(t *testing.T) {
	t.Parallel()

	for addr, want := range map[string]bool{
		"":                true,
		"127.0.0.1:5000":  true,
		"[::1]:5000":      true,
		"localhost:80":    true,
		"10.0.0.7:5000":   false,
		"[2001:db8::1]:1": false,
	} {
		if got := isLocalhost(addr); got != want {
			t.Errorf("isLocalhost(%q) = %v, want %v", addr, got, want)
		}
	}
}
