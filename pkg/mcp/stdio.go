package mcp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/themesmith/themesmith/pkg/logging"
)

// StdioServer speaks MCP over newline-delimited JSON on stdin/stdout, the
// transport editors use when they launch themesmith as a subprocess:
//
//	{"mcpServers": {"themesmith": {"command": "themesmith", "args": ["mcp"]}}}
//
// A stdio connection has exactly one client, so there is one session,
// created by initialize and replaced if the client initializes again.
type StdioServer struct {
	server  *Server
	session *MCPSession
	in      io.Reader
	out     io.Writer
	log     *slog.Logger
	writeMu sync.Mutex
}

// NewStdioServer answers requests from the given server's catalogs, tools
// and resources.
func NewStdioServer(server *Server) *StdioServer {
	return &StdioServer{
		server: server,
		in:     os.Stdin,
		out:    os.Stdout,
		log:    logging.Nop(),
	}
}

// SetLogger sets the logger. It must not write to stdout.
func (s *StdioServer) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	}
}

// SetIO replaces stdin and stdout.
func (s *StdioServer) SetIO(in io.Reader, out io.Writer) {
	s.in = in
	s.out = out
}

// Run serves messages until the input is exhausted. A line longer than
// MaxMessageSize is answered with an error and ends the session, since the
// stream cannot be resynchronized.
func (s *StdioServer) Run() error {
	s.log.Info("MCP stdio server starting", "version", ServerVersion, "protocol", ProtocolVersion)

	lines := bufio.NewScanner(s.in)
	lines.Buffer(make([]byte, 0, 64*1024), MaxMessageSize+1)
	for lines.Scan() {
		msg := lines.Bytes()
		if len(msg) == 0 {
			continue
		}
		s.log.Debug("received", "bytes", len(msg), "message", string(msg))
		if resp := s.handleMessage(msg); resp != nil {
			s.send(resp)
		}
	}

	err := lines.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		s.send(ErrorResponse(nil, messageTooLarge()))
		return fmt.Errorf("reading stdin: message exceeds %d bytes", MaxMessageSize)
	}
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	s.log.Info("MCP stdio server stopped")
	return nil
}

func (s *StdioServer) handleMessage(data []byte) *JSONRPCResponse {
	req, rpcErr := ParseRequestBytes(data)
	if rpcErr != nil {
		return reply(nil, nil, rpcErr)
	}

	session, rpcErr := s.sessionFor(req)
	if rpcErr != nil {
		return reply(req, nil, rpcErr)
	}
	if session == nil {
		// notification before initialize
		return nil
	}

	result, rpcErr := s.server.dispatch(session, req)
	return reply(req, result, rpcErr)
}

// sessionFor returns the session req runs in, starting a fresh one for
// initialize.
func (s *StdioServer) sessionFor(req *JSONRPCRequest) (*MCPSession, *JSONRPCError) {
	if req.Method == "initialize" {
		s.session = NewSession()
		return s.session, nil
	}
	if s.session == nil {
		if req.IsNotification() {
			return nil, nil
		}
		return nil, NotInitializedError()
	}
	s.session.Touch()
	return s.session, nil
}

func (s *StdioServer) send(resp *JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("encoding response", "error", err)
		return
	}
	s.log.Debug("sending", "bytes", len(data))

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.out.Write(append(data, '\n')); err != nil {
		s.log.Error("writing response", "error", err)
	}
}
