// Package registry keeps the catalogue of playable worlds.
// The CLI registers one entry per loaded world, and the platform creates a
// fresh Game from an entry for every session.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/bunburrows/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game, the world directory.
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts the game from the world's surface entry.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Info describes a registered entry.
type Info struct {
	ID      string
	Title   string
	Summary string
	Enabled bool
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    Info
	factory Factory
}

// Registry is a set of game factories keyed by ID. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a factory under info.ID.
func (r *Registry) Register(info Info, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info.ID == "" {
		return fmt.Errorf("registry: empty id for %q", info.Title)
	}
	if _, exists := r.entries[info.ID]; exists {
		return fmt.Errorf("registry: %q already registered", info.ID)
	}
	r.entries[info.ID] = entry{info: info, factory: f}
	return nil
}

// List returns information about all registered entries, sorted by ID.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup finds an entry by ID, or failing that by case-insensitive title.
func (r *Registry) Lookup(key string) (Info, bool) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if ok {
		return e.info, true
	}

	for _, info := range r.List() {
		if strings.EqualFold(info.Title, key) {
			return info, true
		}
	}
	return Info{}, false
}

// Default returns the first enabled entry in ID order.
func (r *Registry) Default() (Info, bool) {
	for _, info := range r.List() {
		if info.Enabled {
			return info, true
		}
	}
	return Info{}, false
}

// Create instantiates a new game by its ID.
// Returns an error if the ID is not registered.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown world %q", id)
	}

	return e.factory(), nil
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
