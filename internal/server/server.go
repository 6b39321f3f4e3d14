package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/Elactrac/newtation-mcp/internal/reference"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "newtation-mcp"
	serverVersion   = "1.0.0"
)

// JSON-RPC error codes. Unknown tools get a server-defined code so the
// host can tell them apart from parameter failures.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
	codeUnknownTool    = -32001
)

// Server handles MCP protocol communication
type Server struct {
	registry *Registry

	// ready flips once the initialize handshake has been answered.
	// Dispatch is permissive: tools/list and tools/call are served
	// even before the handshake, matching the stateless router this
	// server replaces.
	ready bool
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// isNotification reports whether the request carries no id and must
// therefore never be answered.
func (r *MCPRequest) isNotification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *MCPError       `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// New creates a server with the full audit tool registry. It fails if
// the embedded reference tables are invalid or the registry cannot be
// built; callers must treat that as a fatal startup error.
func New() (*Server, error) {
	ref, err := reference.Load()
	if err != nil {
		return nil, fmt.Errorf("load reference tables: %w", err)
	}
	reg := NewRegistry()
	if err := registerTools(reg, ref); err != nil {
		return nil, fmt.Errorf("build tool registry: %w", err)
	}
	return &Server{registry: reg}, nil
}

// Run drives the session: read frame, dispatch, write frame, in
// arrival order, until the input stream closes. A clean close returns
// nil. Malformed frames never terminate the loop; they produce a parse
// error response when the request id can be recovered and are logged
// and dropped otherwise.
func (s *Server) Run(r io.Reader, w io.Writer) error {
	dec := newFrameDecoder(r)
	enc := newFrameEncoder(w)

	for {
		line, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if errors.Is(err, errFrameTooLong) {
			// The id is unrecoverable once the frame is discarded.
			log.Printf("dropping oversized frame: %v", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			if id, ok := recoverID(line); ok {
				s.write(enc, errorResponse(id, codeParseError, "Parse error", err.Error()))
			} else {
				log.Printf("dropping malformed frame: %v", err)
			}
			continue
		}

		if resp := s.handleRequest(&req); resp != nil {
			s.write(enc, resp)
		}
	}
}

func (s *Server) write(enc *frameEncoder, resp *MCPResponse) {
	if err := enc.Encode(resp); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// recoverID extracts a usable request id from a frame that failed to
// decode as a request, so the parse error can still be correlated.
func recoverID(line []byte) (json.RawMessage, bool) {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(line, &probe); err != nil {
		return nil, false
	}
	if len(probe.ID) == 0 || string(probe.ID) == "null" {
		return nil, false
	}
	return probe.ID, true
}

// handleRequest routes requests to appropriate handlers. Notifications
// are consumed without a reply.
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	if req.isNotification() {
		// Client acknowledgments (e.g. notifications/initialized)
		// need no response.
		return nil
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]any{},
		}
	default:
		return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
	}
}

// handleInitialize answers the capability handshake and marks the
// session ready.
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	s.ready = true
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":        serverName,
				"version":     serverVersion,
				"description": "AI brand presence auditing tools",
			},
		},
	}
}

// handleToolsList returns every registered tool descriptor.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]any{
			"tools": s.registry.Descriptors(),
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func errorResponse(id json.RawMessage, code int, message string, data any) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}
