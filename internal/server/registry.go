package server

import (
	"encoding/json"
	"fmt"
)

// HandlerFunc executes one tool call with raw JSON arguments.
type HandlerFunc func(args json.RawMessage) (any, error)

type registryEntry struct {
	tool    Tool
	handler HandlerFunc
}

// Registry is the fixed catalogue of tools: name to descriptor and
// handler. It is built once at startup and never mutated afterwards,
// which makes it safe for concurrent reads without locking.
type Registry struct {
	order   []string
	entries map[string]registryEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// Register adds a tool to the registry. Names must be unique.
func (r *Registry) Register(tool Tool, handler HandlerFunc) error {
	if tool.Name == "" {
		return fmt.Errorf("tool with empty name")
	}
	if handler == nil {
		return fmt.Errorf("tool %s: nil handler", tool.Name)
	}
	if _, dup := r.entries[tool.Name]; dup {
		return fmt.Errorf("duplicate tool name: %s", tool.Name)
	}
	r.entries[tool.Name] = registryEntry{tool: tool, handler: handler}
	r.order = append(r.order, tool.Name)
	return nil
}

// Descriptors returns every tool definition in registration order.
func (r *Registry) Descriptors() []Tool {
	tools := make([]Tool, len(r.order))
	for i, name := range r.order {
		tools[i] = r.entries[name].tool
	}
	return tools
}

// Resolve returns the handler registered under name.
func (r *Registry) Resolve(name string) (HandlerFunc, bool) {
	e, ok := r.entries[name]
	return e.handler, ok
}
