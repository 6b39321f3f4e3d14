package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Elactrac/newtation-mcp/internal/audit"
	"github.com/Elactrac/newtation-mcp/internal/reference"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g. "citation_check").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// paramError reports a parameter that failed schema validation. The
// dispatcher maps it to an invalid-params response naming the field.
type paramError struct {
	Field  string
	Reason string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("parameter %q %s", e.Field, e.Reason)
}

func missingParam(field string) error {
	return &paramError{Field: field, Reason: "is required"}
}

// handleToolsCall processes a tools/call request and executes the
// specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Unknown tools return code -32001, invalid parameters -32602 with the
// offending field in the error data, and handler failures -32603.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	handler, ok := s.registry.Resolve(params.Name)
	if !ok {
		return errorResponse(req.ID, codeUnknownTool, fmt.Sprintf("Unknown tool: %s", params.Name), nil)
	}

	result, err := invoke(handler, params.Arguments)
	if err != nil {
		var pErr *paramError
		if errors.As(err, &pErr) {
			return errorResponse(req.ID, codeInvalidParams, "Invalid params: "+pErr.Error(), map[string]any{
				"field": pErr.Field,
			})
		}
		return errorResponse(req.ID, codeInternalError, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]any{
			"content": []map[string]any{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// invoke runs a handler, converting panics into errors so a faulty
// tool can never take down the session loop.
func invoke(handler HandlerFunc, args json.RawMessage) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(args)
}

// decodeArgs unmarshals tool arguments into a typed struct, converting
// JSON type mismatches into paramErrors that name the field.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		args = []byte("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &paramError{Field: typeErr.Field, Reason: fmt.Sprintf("must have type %s", typeErr.Type)}
		}
		return err
	}
	return nil
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Tool Handlers ===

type perceptionArgs struct {
	BrandName string `json:"brand_name"`
	Industry  string `json:"industry"`
	Website   string `json:"website"`
}

func perceptionHandler(ref *reference.Tables) HandlerFunc {
	return func(args json.RawMessage) (any, error) {
		var a perceptionArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.BrandName == "" {
			return nil, missingParam("brand_name")
		}
		if a.Industry == "" {
			return nil, missingParam("industry")
		}
		return audit.PerceptionAudit(ref, a.BrandName, a.Industry, a.Website), nil
	}
}

type citationArgs struct {
	BrandName string   `json:"brand_name"`
	Topics    []string `json:"topics"`
}

func citationHandler(ref *reference.Tables) HandlerFunc {
	return func(args json.RawMessage) (any, error) {
		var a citationArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.BrandName == "" {
			return nil, missingParam("brand_name")
		}
		if a.Topics == nil {
			return nil, missingParam("topics")
		}
		return audit.CitationCheck(ref, a.BrandName, a.Topics), nil
	}
}

type competitorArgs struct {
	BrandName   string   `json:"brand_name"`
	Competitors []string `json:"competitors"`
	Category    string   `json:"category"`
}

func competitorHandler(ref *reference.Tables) HandlerFunc {
	return func(args json.RawMessage) (any, error) {
		var a competitorArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.BrandName == "" {
			return nil, missingParam("brand_name")
		}
		if a.Competitors == nil {
			return nil, missingParam("competitors")
		}
		if a.Category == "" {
			return nil, missingParam("category")
		}
		return audit.CompetitorComparison(ref, a.BrandName, a.Competitors, a.Category), nil
	}
}

type clarityArgs struct {
	BrandName string `json:"brand_name"`
	Tagline   string `json:"tagline_or_description"`
}

func clarityHandler(ref *reference.Tables) HandlerFunc {
	return func(args json.RawMessage) (any, error) {
		var a clarityArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.BrandName == "" {
			return nil, missingParam("brand_name")
		}
		return audit.EntityClarityScore(ref, a.BrandName, a.Tagline), nil
	}
}

type geoArgs struct {
	BrandName       string   `json:"brand_name"`
	Service         string   `json:"service"`
	TargetLocations []string `json:"target_locations"`
}

func geoHandler(ref *reference.Tables) HandlerFunc {
	return func(args json.RawMessage) (any, error) {
		var a geoArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.BrandName == "" {
			return nil, missingParam("brand_name")
		}
		if a.Service == "" {
			return nil, missingParam("service")
		}
		if a.TargetLocations == nil {
			return nil, missingParam("target_locations")
		}
		return audit.GeoRecommendations(ref, a.BrandName, a.Service, a.TargetLocations), nil
	}
}
