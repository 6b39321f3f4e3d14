// Package server implements the MCP (Model Context Protocol) server
// for brand AI-presence auditing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the audit
// routines in internal/audit through the MCP protocol. It's designed
// to work with Claude and other MCP-compatible clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Requests without an id are notifications and are never answered.
// Responses are emitted in request arrival order; the loop is a single
// goroutine with no pipelining.
//
// # Handshake policy
//
// Dispatch is permissive: tools/list and tools/call succeed even if
// the client has not completed the initialize handshake. The server
// tracks readiness but does not gate on it, since every tool is a pure
// function with no session state to negotiate.
//
// # Available Tools
//
// Five brand analysis tools, all deterministic:
//   - brand_perception_audit: How AI describes a brand overall
//   - citation_check: Whether AI cites the brand as a source
//   - competitor_comparison: Brand vs competitors in AI visibility
//   - entity_clarity_score: How clearly AI understands the brand
//   - geo_recommendations: Whether AI recommends the brand by location
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32700: malformed frame (only when the request id is recoverable;
//     otherwise the frame is logged to stderr and dropped). Frames past
//     the 1 MiB cap are discarded the same way, with the stream kept
//     aligned at the next delimiter.
//   - -32601: unknown method
//   - -32602: invalid tool parameters; error data names the field
//   - -32001: unknown tool name
//   - -32603: handler failure (including recovered panics)
//
// No request error is fatal: the session loop only ends when the input
// stream closes, which is a clean shutdown. The only fatal errors are
// at startup, when the reference tables or registry cannot be built.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv, err := server.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
