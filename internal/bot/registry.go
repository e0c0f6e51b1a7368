package bot

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownModule is returned when a selected module was never registered.
var ErrUnknownModule = errors.New("unknown module")

// Registry holds registered modules in registration order.
type Registry struct {
	mu      sync.RWMutex
	modules []Module
	byName  map[string]Module
}

// NewRegistry creates a new module registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Module),
	}
}

// Register adds a module to the registry.
// It panics if a module with the same name is already registered.
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := m.Name()
	if _, dup := r.byName[name]; dup {
		panic(fmt.Sprintf("bot: module %q registered twice", name))
	}

	r.byName[name] = m
	r.modules = append(r.modules, m)
}

// Modules returns a copy of the registered modules.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.modules)
}

// Select returns the named modules in the given order, skipping repeats.
// An empty selection returns every registered module.
func (r *Registry) Select(names []string) ([]Module, error) {
	if len(names) == 0 {
		return r.Modules(), nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	selected := make([]Module, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		m, ok := r.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
		}
		seen[name] = true
		selected = append(selected, m)
	}
	return selected, nil
}

// Global registry instance for module self-registration via init()
var globalRegistry = NewRegistry()

// Register adds a module to the global registry.
// Modules call it from their init() functions.
func Register(m Module) {
	globalRegistry.Register(m)
}

// Modules returns all modules from the global registry.
func Modules() []Module {
	return globalRegistry.Modules()
}

// SelectModules selects modules from the global registry.
func SelectModules(names []string) ([]Module, error) {
	return globalRegistry.Select(names)
}

// ResetGlobalRegistry resets the global registry.
// This is intended for testing purposes only.
func ResetGlobalRegistry() {
	globalRegistry = NewRegistry()
}
