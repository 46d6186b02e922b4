package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/themesmith/themesmith/pkg/catalog"
	"github.com/themesmith/themesmith/pkg/guidance"
	"github.com/themesmith/themesmith/pkg/httputil"
	"github.com/themesmith/themesmith/pkg/logging"
	"github.com/themesmith/themesmith/pkg/sassgen"
	"github.com/themesmith/themesmith/pkg/tokens"
)

// ServerName is the name reported in serverInfo.
const ServerName = "themesmith"

// ServerVersion is the themesmith MCP server version.
const ServerVersion = "0.1.0"

// Server is the MCP protocol server.
type Server struct {
	config     *Config
	components *catalog.Catalog
	themes     *tokens.Catalog
	guidance   *guidanceCache
	generator  *sassgen.Generator
	sessions   *SessionManager
	tools      *ToolRegistry
	resources  *ResourceProvider
	httpServer *http.Server
	addr       string
	stopCh     chan struct{}
	mu         sync.RWMutex
	running    bool
	log        *slog.Logger
}

// NewServer creates a new MCP server over the given catalogs. A nil catalog
// is replaced by the embedded default.
func NewServer(cfg *Config, components *catalog.Catalog, themes *tokens.Catalog) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if components == nil {
		components = catalog.Default()
	}
	if themes == nil {
		themes = tokens.Default()
	}

	s := &Server{
		config:     cfg,
		components: components,
		themes:     themes,
		guidance:   newGuidanceCache(guidance.NewBuilder(components, themes), cfg.GuidanceCacheTTL),
		generator:  sassgen.New(components, themes),
		sessions:   NewSessionManager(cfg),
		stopCh:     make(chan struct{}),
		log:        logging.Nop(),
	}

	s.tools = NewToolRegistry(s)
	s.resources = NewResourceProvider(s)

	return s
}

// Start starts the MCP HTTP server.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("MCP server is already running")
	}

	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid MCP config: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         s.config.Address(),
		Handler:      s.handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("MCP server listen: %w", err)
	}
	s.addr = ln.Addr().String()

	s.sessions.StartCleanupRoutine(time.Minute, s.stopCh)

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("MCP server error", "error", err)
		}
	}()

	s.log.Info("MCP HTTP server started", "address", s.addr, "path", s.config.Path)
	s.running = true
	return nil
}

// Stop gracefully shuts down the MCP server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	close(s.stopCh)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("MCP server shutdown: %w", err)
	}

	s.sessions.Close()
	s.running = false
	return nil
}

// Handler returns the HTTP handler for the MCP server.
// This is useful for testing without starting the HTTP server.
func (s *Server) Handler() http.Handler {
	return s.handler()
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.handleMCP)
	return s.withMiddleware(mux)
}

// withMiddleware wraps the handler with CORS and origin validation.
func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.config.AllowRemote && !isLocalhost(r.RemoteAddr) {
			http.Error(w, "Remote access not allowed", http.StatusForbidden)
			return
		}

		origin := r.Header.Get(HeaderOrigin)
		if origin != "" && !s.isOriginAllowed(origin) {
			http.Error(w, "Origin not allowed", http.StatusForbidden)
			return
		}

		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Mcp-Session-Id, MCP-Protocol-Version")
		w.Header().Set("Access-Control-Expose-Headers", HeaderSessionID)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

// isLocalhost checks if the remote address is localhost.
func isLocalhost(remoteAddr string) bool {
	// Empty address is allowed (test environment or internal calls)
	if remoteAddr == "" {
		return true
	}

	host := remoteAddr
	if idx := strings.LastIndex(remoteAddr, ":"); idx != -1 {
		host = remoteAddr[:idx]
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")

	return host == "127.0.0.1" || host == "localhost" || host == "::1"
}

// isOriginAllowed checks if the origin is in the allowed list.
func (s *Server) isOriginAllowed(origin string) bool {
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || matchOrigin(origin, allowed) {
			return true
		}
	}
	return false
}

// matchOrigin matches an origin against a pattern (supports * wildcard for port).
func matchOrigin(origin, pattern string) bool {
	if origin == pattern {
		return true
	}

	if !strings.HasSuffix(pattern, ":*") {
		return false
	}
	prefix := strings.TrimSuffix(pattern, "*")
	if !strings.HasPrefix(origin, prefix) {
		return false
	}
	rest := origin[len(prefix):]
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(rest) > 0
}

// handleMCP is the main handler for MCP requests. The server never pushes
// messages, so GET (the server-to-client stream) is not offered.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleJSONRPC(w, r)
	case http.MethodDelete:
		s.handleSessionDelete(w, r)
	default:
		httputil.MethodNotAllowed(w, http.MethodPost, http.MethodDelete)
	}
}

// handleJSONRPC handles JSON-RPC POST requests.
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	info := ExtractRequestInfo(r)

	if info.ProtocolVersion != "" && !IsProtocolVersionSupported(info.ProtocolVersion) {
		resp := ErrorResponse(nil, ProtocolVersionError(info.ProtocolVersion, SupportedProtocolVersions))
		httputil.WriteJSON(w, http.StatusBadRequest, resp)
		return
	}

	req, parseErr := ParseRequest(http.MaxBytesReader(w, r.Body, MaxMessageSize))
	if parseErr != nil {
		s.writeError(w, nil, parseErr)
		return
	}

	var session *MCPSession
	if req.Method == "initialize" {
		var err error
		session, err = s.sessions.Create()
		if err != nil {
			s.writeError(w, req.ID, InternalError(err))
			return
		}
		w.Header().Set(HeaderSessionID, session.ID)
	} else {
		if info.SessionID == "" {
			s.writeError(w, req.ID, SessionRequiredError())
			return
		}
		session = s.sessions.Get(info.SessionID)
		if session == nil {
			s.writeError(w, req.ID, SessionExpiredError(info.SessionID))
			return
		}
		session.Touch()
	}

	result, err := s.dispatch(session, req)
	resp := reply(req, result, err)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	// JSON-RPC errors are returned with 200 OK
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// dispatch routes the request to the appropriate handler.
func (s *Server) dispatch(session *MCPSession, req *JSONRPCRequest) (interface{}, *JSONRPCError) {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(session, req.Params)
	case "initialized", "notifications/initialized":
		return s.handleInitialized(session)
	case "ping":
		return s.handlePing()

	case "tools/list":
		return s.handleToolsList(session)
	case "tools/call":
		return s.handleToolsCall(session, req.Params)

	case "resources/list":
		return s.handleResourcesList(session)
	case "resources/templates/list":
		return s.handleResourceTemplatesList(session)
	case "resources/read":
		return s.handleResourcesRead(session, req.Params)

	default:
		return nil, MethodNotFoundError(req.Method)
	}
}

// negotiateVersion picks the protocol version for a session: the client's
// when it is supported, otherwise the server's preferred one.
func negotiateVersion(requested string) string {
	if IsProtocolVersionSupported(requested) {
		return requested
	}
	return ProtocolVersion
}

// handleInitialize handles the initialize request.
func (s *Server) handleInitialize(session *MCPSession, params json.RawMessage) (interface{}, *JSONRPCError) {
	initParams, err := UnmarshalParamsRequired[InitializeParams](params)
	if err != nil {
		return nil, err
	}

	version := negotiateVersion(initParams.ProtocolVersion)
	if version != initParams.ProtocolVersion {
		s.log.Warn("client requested unsupported protocol version",
			"requested", initParams.ProtocolVersion,
			"negotiated", version,
		)
	}

	session.SetClientData(version, initParams.ClientInfo, initParams.Capabilities)
	session.SetState(SessionStateInitialized)

	s.log.Info("MCP session initialized",
		"session", session.ID,
		"client", initParams.ClientInfo.Name,
		"protocol", version,
	)

	return &InitializeResult{
		ProtocolVersion: version,
		Capabilities: ServerCapabilities{
			Tools:     &ToolsCapability{},
			Resources: &ResourcesCapability{},
		},
		ServerInfo: ServerInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}, nil
}

// handleInitialized handles the initialized notification.
func (s *Server) handleInitialized(session *MCPSession) (interface{}, *JSONRPCError) {
	if session.GetState() != SessionStateInitialized {
		return nil, NotInitializedError()
	}
	session.SetState(SessionStateReady)
	return nil, nil
}

func (s *Server) handlePing() (interface{}, *JSONRPCError) {
	return map[string]interface{}{}, nil
}

func (s *Server) handleToolsList(session *MCPSession) (interface{}, *JSONRPCError) {
	if session.GetState() != SessionStateReady {
		return nil, NotInitializedError()
	}

	return &ToolsListResult{
		Tools: s.tools.List(),
	}, nil
}

// handleToolsCall executes a tool. Tool failures are reported inside the
// result with isError set, never as JSON-RPC errors.
func (s *Server) handleToolsCall(session *MCPSession, params json.RawMessage) (interface{}, *JSONRPCError) {
	if session.GetState() != SessionStateReady {
		return nil, NotInitializedError()
	}

	callParams, err := UnmarshalParamsRequired[ToolCallParams](params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, toolErr := s.tools.Execute(callParams.Name, callParams.Arguments, session)
	if toolErr != nil {
		s.log.Error("tool execution failed", "tool", callParams.Name, "error", toolErr)
		return ToolResultError(toolErr.Error()), nil
	}

	s.log.Debug("tool executed",
		"tool", callParams.Name,
		"isError", result.IsError,
		"duration", time.Since(start),
	)
	return result, nil
}

func (s *Server) handleResourcesList(session *MCPSession) (interface{}, *JSONRPCError) {
	if session.GetState() != SessionStateReady {
		return nil, NotInitializedError()
	}

	return &ResourcesListResult{
		Resources: s.resources.List(),
	}, nil
}

func (s *Server) handleResourceTemplatesList(session *MCPSession) (interface{}, *JSONRPCError) {
	if session.GetState() != SessionStateReady {
		return nil, NotInitializedError()
	}

	return &ResourceTemplatesListResult{
		ResourceTemplates: s.resources.Templates(),
	}, nil
}

func (s *Server) handleResourcesRead(session *MCPSession, params json.RawMessage) (interface{}, *JSONRPCError) {
	if session.GetState() != SessionStateReady {
		return nil, NotInitializedError()
	}

	readParams, err := UnmarshalParamsRequired[ResourceReadParams](params)
	if err != nil {
		return nil, err
	}

	contents, readErr := s.resources.Read(readParams.URI)
	if readErr != nil {
		return nil, readErr
	}

	return &ResourceReadResult{
		Contents: contents,
	}, nil
}

// handleSessionDelete handles session termination.
func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(HeaderSessionID)
	if sessionID == "" {
		http.Error(w, "Session required", http.StatusBadRequest)
		return
	}

	if !s.sessions.Delete(sessionID) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError writes a JSON-RPC error response.
func (s *Server) writeError(w http.ResponseWriter, id interface{}, err *JSONRPCError) {
	// JSON-RPC errors are returned with 200 OK
	httputil.WriteJSON(w, http.StatusOK, ErrorResponse(id, err))
}

// Addr returns the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Components returns the component catalog the server answers from.
func (s *Server) Components() *catalog.Catalog {
	return s.components
}

// Themes returns the token catalog the server answers from.
func (s *Server) Themes() *tokens.Catalog {
	return s.themes
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// SetLogger sets the operational logger for the server.
func (s *Server) SetLogger(log *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log != nil {
		s.log = log
	} else {
		s.log = logging.Nop()
	}
}
