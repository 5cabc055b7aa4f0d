package ahocorasick

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPattern is reported for a zero-length pattern. An empty pattern
	// would match at every offset of every input.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrFinalized is returned when a Builder is used after Build.
	ErrFinalized = errors.New("builder already finalized")
)

// BuildError describes why a pattern set could not be compiled.
// Index is the position of the offending pattern in insertion order.
type BuildError struct {
	Index   int
	Pattern string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build automaton: pattern #%d %q: %v", e.Index, e.Pattern, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
