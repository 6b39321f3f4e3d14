package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := newTestServer(t)
	if s.registry == nil {
		t.Fatal("New() did not initialize registry")
	}
	if len(s.registry.Descriptors()) == 0 {
		t.Fatal("New() built an empty registry")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     string
		wantMethod string
		notif      bool
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			`"test-1"`,
			"tools/list",
			false,
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			`42`,
			"ping",
			false,
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			`null`,
			"initialize",
			true,
		},
		{
			"absent id",
			`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
			``,
			"notifications/initialized",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}

			if string(req.ID) != tt.wantID {
				t.Errorf("ID: got %s, want %s", req.ID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
			if req.isNotification() != tt.notif {
				t.Errorf("isNotification: got %v, want %v", req.isNotification(), tt.notif)
			}
		})
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: json.RawMessage(`7`), Method: "ping"})

	if resp == nil {
		t.Fatal("ping returned nil response")
	}
	if resp.Error != nil {
		t.Fatalf("ping returned error: %v", resp.Error)
	}
	if string(resp.ID) != "7" {
		t.Errorf("ID: got %s, want 7", resp.ID)
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: json.RawMessage(`1`), Method: "resources/list"})

	if resp == nil || resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != codeMethodNotFound {
		t.Errorf("Code: got %d, want %d", resp.Error.Code, codeMethodNotFound)
	}
	if string(resp.ID) != "1" {
		t.Errorf("ID: got %s, want 1", resp.ID)
	}
}

func TestHandleRequest_NotificationGetsNoResponse(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})
	if resp != nil {
		t.Errorf("notification produced a response: %+v", resp)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: json.RawMessage(`1`), Method: "initialize"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp)
	}
	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("Result has unexpected type %T", resp.Result)
	}
	if result["protocolVersion"] != protocolVersion {
		t.Errorf("protocolVersion: got %v, want %s", result["protocolVersion"], protocolVersion)
	}
	if !s.ready {
		t.Error("server not marked ready after initialize")
	}
}

// Dispatch is permissive: tool methods work before the handshake.
func TestHandleRequest_ToolsBeforeHandshake(t *testing.T) {
	s := newTestServer(t)
	if s.ready {
		t.Fatal("server ready before handshake")
	}

	list := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: json.RawMessage(`1`), Method: "tools/list"})
	if list == nil || list.Error != nil {
		t.Fatalf("tools/list before handshake failed: %+v", list)
	}

	params, _ := json.Marshal(map[string]any{
		"name":      "entity_clarity_score",
		"arguments": map[string]any{"brand_name": "Acme Corp"},
	})
	call := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: json.RawMessage(`2`), Method: "tools/call", Params: params})
	if call == nil || call.Error != nil {
		t.Fatalf("tools/call before handshake failed: %+v", call)
	}
}

// The tool set advertised after the handshake must equal the registry
// contents exactly.
func TestToolsList_MatchesRegistry(t *testing.T) {
	s := newTestServer(t)

	s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: json.RawMessage(`1`), Method: "initialize"})
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: json.RawMessage(`2`), Method: "tools/list"})

	result := resp.Result.(map[string]any)
	listed := result["tools"].([]Tool)

	want := make(map[string]bool)
	for _, tool := range s.registry.Descriptors() {
		want[tool.Name] = true
	}
	got := make(map[string]bool)
	for _, tool := range listed {
		got[tool.Name] = true
	}

	if len(got) != len(want) {
		t.Fatalf("tool count: got %d, want %d", len(got), len(want))
	}
	for name := range want {
		if !got[name] {
			t.Errorf("tools/list missing %q", name)
		}
	}
}

func TestRecoverID(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		wantID string
		ok     bool
	}{
		{"valid object with id", `{"id":7,"method":123}`, "7", true},
		{"string id", `{"id":"abc","method":[]}`, `"abc"`, true},
		{"null id", `{"id":null}`, "", false},
		{"no id", `{"method":"x"}`, "", false},
		{"not json", `{garbled`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := recoverID([]byte(tt.line))
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if ok && string(id) != tt.wantID {
				t.Errorf("id: got %s, want %s", id, tt.wantID)
			}
		})
	}
}

// A malformed frame must not prevent subsequent well-formed requests
// from being answered.
func TestRun_SurvivesMalformedFrames(t *testing.T) {
	s := newTestServer(t)

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{this is not json`,
		`{"jsonrpc":"2.0","id":2,"method":123}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"citation_check","arguments":{"brand_name":"Acme Corp","topics":["pricing","support"]}}}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := s.Run(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response frame %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}

	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}

	// initialize
	if string(responses[0].ID) != "1" || responses[0].Error != nil {
		t.Errorf("response 0: id %s, error %+v", responses[0].ID, responses[0].Error)
	}
	// parse error for the frame with a recoverable id
	if string(responses[1].ID) != "2" {
		t.Errorf("response 1: id %s, want 2", responses[1].ID)
	}
	if responses[1].Error == nil || responses[1].Error.Code != codeParseError {
		t.Errorf("response 1: expected parse error, got %+v", responses[1].Error)
	}
	// the request after the bad frames still succeeds
	if string(responses[2].ID) != "3" || responses[2].Error != nil {
		t.Errorf("response 2: id %s, error %+v", responses[2].ID, responses[2].Error)
	}
}

// A frame past the size cap, even one that is valid JSON, must be
// dropped without ending the session: requests after it still get
// answered and Run still exits cleanly at end of stream.
func TestRun_SurvivesOversizedFrame(t *testing.T) {
	s := newTestServer(t)

	huge := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"entity_clarity_score","arguments":{"brand_name":"Acme Corp","tagline_or_description":"` +
		strings.Repeat("a", 2*1024*1024) + `"}}}`
	input := huge + "\n" + `{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n"

	var out bytes.Buffer
	if err := s.Run(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run terminated on oversized frame: %v", err)
	}

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response frame %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}

	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1 (oversized frame dropped, ping answered)", len(responses))
	}
	if string(responses[0].ID) != "2" || responses[0].Error != nil {
		t.Errorf("ping response: id %s, error %+v", responses[0].ID, responses[0].Error)
	}
}

func TestRun_CleanEOF(t *testing.T) {
	s := newTestServer(t)

	var out bytes.Buffer
	if err := s.Run(strings.NewReader(""), &out); err != nil {
		t.Fatalf("Run on empty stream: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output on empty stream: %q", out.String())
	}
}

func TestMCPResponse_NullIDMarshal(t *testing.T) {
	resp := MCPResponse{JSONRPC: "2.0", ID: nil, Result: map[string]any{}}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Contains(data, []byte(`"id":null`)) {
		t.Errorf("nil ID did not marshal as null: %s", data)
	}
}
