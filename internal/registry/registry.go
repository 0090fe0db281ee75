// Package registry provides a global registry for terminal front ends.
// Front ends register themselves in init() functions, allowing the CLI
// to pick one by name without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/session"
)

// Runner drives a game session on a terminal until the player quits or
// asks for the menu. Run must restore the terminal before returning.
type Runner interface {
	// ID returns a unique identifier (e.g., "tea", "tcell").
	// Used for the --renderer flag and the settings file.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run blocks until s is done, ctx is cancelled or the terminal fails.
	Run(ctx context.Context, s *session.Session) error
}

// RunnerInfo contains metadata about a registered runner.
type RunnerInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new runner.
type Factory func() Runner

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a runner factory to the registry.
// Typically called from a front end's init() function.
// Panics if a runner with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: runner %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered runners, sorted by ID.
func List() []RunnerInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]RunnerInfo, 0, len(factories))
	for id := range factories {
		result = append(result, RunnerInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a runner by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Runner, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown renderer %q", id)
	}

	return f(), nil
}

// Exists checks if a runner with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
