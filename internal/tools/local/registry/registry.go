package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/windlant/mcp-client/internal/tools"
)

// Sentinel errors for the registry.
var (
	ErrAlreadyExists = errors.New("tool already registered")
	ErrEmptyName     = errors.New("tool name is empty")
)

// Definition is a locally implemented tool.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON Schema object
	Function    tools.ToolFunc
}

// Descriptor returns the definition as the server advertises it.
func (d Definition) Descriptor() tools.Descriptor {
	return tools.Descriptor{Name: d.Name, Description: d.Description, InputSchema: d.Parameters}
}

// Registry stores and manages available tools by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Definition
}

// NewRegistry creates a new empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Definition),
	}
}

// Register adds a tool. Names must be non-empty and unique.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, def.Name)
	}
	r.tools[def.Name] = def
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	return def, ok
}

// ListAll returns every definition sorted by name.
func (r *Registry) ListAll() []Definition {
	r.mu.RLock()
	defs := make([]Definition, 0, len(r.tools))
	for _, def := range r.tools {
		defs = append(defs, def)
	}
	r.mu.RUnlock()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}
