package mcp

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MCPSession represents a single client session.
type MCPSession struct {
	// ID is the unique session identifier.
	ID string

	// ProtocolVersion is the negotiated protocol version.
	ProtocolVersion string

	// ClientInfo contains information about the connected client.
	ClientInfo ClientInfo

	// Capabilities are the client-declared capabilities.
	Capabilities ClientCapabilities

	// State is the current session lifecycle state.
	State SessionState

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	// LastActiveAt is the timestamp of the last request.
	LastActiveAt time.Time

	mu sync.RWMutex
}

// NewSession creates a new session with a random UUID.
func NewSession() *MCPSession {
	now := time.Now()
	return &MCPSession{
		ID:           uuid.NewString(),
		State:        SessionStateNew,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// SetClientData records what the client sent in initialize.
func (s *MCPSession) SetClientData(version string, info ClientInfo, caps ClientCapabilities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProtocolVersion = version
	s.ClientInfo = info
	s.Capabilities = caps
}

// Client returns the client info recorded at initialize.
func (s *MCPSession) Client() ClientInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ClientInfo
}

// Touch updates the last active timestamp.
func (s *MCPSession) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastActiveAt = time.Now()
}

// IsExpired checks if the session has been idle longer than timeout.
func (s *MCPSession) IsExpired(timeout time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.LastActiveAt) > timeout
}

// SetState updates the session state.
func (s *MCPSession) SetState(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = state
}

// GetState returns the current session state.
func (s *MCPSession) GetState() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.State
}

// Close marks the session expired.
func (s *MCPSession) Close() {
	s.SetState(SessionStateExpired)
}

// SessionManager tracks the sessions of the HTTP transport. The stdio
// transport has exactly one session and does not use it.
type SessionManager struct {
	sessions map[string]*MCPSession
	config   *Config
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager(cfg *Config) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*MCPSession),
		config:   cfg,
	}
}

// Create creates a new session and adds it to the manager.
// Returns an error if the maximum session limit is reached.
func (m *SessionManager) Create() (*MCPSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.config.MaxSessions {
		m.cleanupLocked()

		if len(m.sessions) >= m.config.MaxSessions {
			return nil, NewJSONRPCErrorWithMessage(
				ErrCodeInternalError,
				"maximum session limit reached",
				nil,
			)
		}
	}

	session := NewSession()
	m.sessions[session.ID] = session
	return session, nil
}

// Get retrieves a session by ID.
func (m *SessionManager) Get(id string) *MCPSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Delete removes a session by ID.
func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if ok {
		session.Close()
		delete(m.sessions, id)
	}
	return ok
}

// Cleanup removes all expired sessions and returns how many were removed.
func (m *SessionManager) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanupLocked()
}

func (m *SessionManager) cleanupLocked() int {
	removed := 0
	for id, session := range m.sessions {
		if session.IsExpired(m.config.SessionTimeout) {
			session.Close()
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of active sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartCleanupRoutine starts a goroutine that periodically removes expired
// sessions until stop is closed.
func (m *SessionManager) StartCleanupRoutine(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}

// Close closes all sessions.
func (m *SessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, session := range m.sessions {
		session.Close()
		delete(m.sessions, id)
	}
}
