package finder

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Runtime owns the process-wide Finder and swaps it when the title set
// changes. Readers always see a fully built Finder.
type Runtime struct {
	mu      sync.RWMutex
	current *Finder
	opts    []Option
	builds  int
	builtAt time.Time
}

// RuntimeInfo describes the Finder currently held by a Runtime.
type RuntimeInfo struct {
	Patterns   int       `json:"patterns"`
	States     int       `json:"states"`
	IgnoreCase bool      `json:"ignoreCase"`
	Backend    string    `json:"backend"`
	Builds     int       `json:"builds"`
	BuiltAt    time.Time `json:"builtAt"`
}

// NewRuntime builds the initial Finder from opts. The same options are
// reused by Reload.
func NewRuntime(opts ...Option) (*Runtime, error) {
	f, err := New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build finder: %w", err)
	}
	return &Runtime{
		current: f,
		opts:    opts,
		builds:  1,
		builtAt: time.Now(),
	}, nil
}

// Current returns the active Finder.
func (r *Runtime) Current() *Finder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Reload rebuilds the Finder and swaps it in. With no arguments the options
// of the previous build are reused; otherwise opts replace them. On failure
// the current Finder stays active.
func (r *Runtime) Reload(opts ...Option) error {
	r.mu.RLock()
	if len(opts) == 0 {
		opts = r.opts
	}
	r.mu.RUnlock()

	// built off-lock, scans keep running against the old finder meanwhile
	f, err := New(opts...)
	if err != nil {
		log.Warnf("Reload failed, keeping current finder: %v", err)
		return fmt.Errorf("failed to rebuild finder: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = f
	r.opts = opts
	r.builds++
	r.builtAt = time.Now()
	log.Debugf("Finder reloaded: %d patterns (build #%d)", f.Patterns().Len(), r.builds)
	return nil
}

// Info returns statistics about the active Finder.
func (r *Runtime) Info() RuntimeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := r.current.Stats()
	return RuntimeInfo{
		Patterns:   stats["patterns"],
		States:     stats["states"],
		IgnoreCase: r.current.IgnoreCase(),
		Backend:    r.current.Backend().String(),
		Builds:     r.builds,
		BuiltAt:    r.builtAt,
	}
}
