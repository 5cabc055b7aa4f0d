package finder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bastiangx/titleserve/pkg/ahocorasick"
	"github.com/bastiangx/titleserve/pkg/dictionary"
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Backend selects the automaton implementation behind a Finder.
type Backend int

const (
	// BackendNative uses this module's ahocorasick package.
	BackendNative Backend = iota
	// BackendLibrary uses petar-dambovaliev/aho-corasick in DFA mode.
	BackendLibrary
)

func (b Backend) String() string {
	switch b {
	case BackendNative:
		return "native"
	case BackendLibrary:
		return "library"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend parses a backend name as used in config files and flags.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return BackendNative, nil
	case "library", "lib", "dfa":
		return BackendLibrary, nil
	default:
		return BackendNative, fmt.Errorf("unknown backend %q (want native or library)", s)
	}
}

// engine produces raw matches with non-decreasing End.
type engine interface {
	scan(text string, fn func(Match) bool)
	maxPatternLen() int
	stateCount() int
}

func newEngine(backend Backend, set *dictionary.Set) (engine, error) {
	switch backend {
	case BackendNative:
		return newNativeEngine(set)
	case BackendLibrary:
		return newLibraryEngine(set), nil
	default:
		return nil, fmt.Errorf("unknown backend %v", backend)
	}
}

type nativeEngine struct {
	automaton *ahocorasick.Automaton
}

func newNativeEngine(set *dictionary.Set) (*nativeEngine, error) {
	b := ahocorasick.NewBuilder()
	if err := b.AddAll(set.All()); err != nil {
		return nil, err
	}
	a, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &nativeEngine{automaton: a}, nil
}

func (e *nativeEngine) scan(text string, fn func(Match) bool) {
	e.automaton.Scan(text, func(end, id int) bool {
		p := e.automaton.Pattern(id)
		return fn(Match{Start: end - len(p), End: end, Text: p})
	})
}

func (e *nativeEngine) maxPatternLen() int { return e.automaton.MaxPatternLen() }

func (e *nativeEngine) stateCount() int { return e.automaton.StateCount() }

// libraryEngine wraps the third-party automaton. StandardMatch is required
// for overlapping iteration.
type libraryEngine struct {
	automaton aho.AhoCorasick
	patterns  []string
	maxLen    int
}

func newLibraryEngine(set *dictionary.Set) *libraryEngine {
	patterns := slices.Collect(set.All())
	e := &libraryEngine{patterns: patterns}
	for _, p := range patterns {
		e.maxLen = max(e.maxLen, len(p))
	}
	if len(patterns) == 0 {
		return e
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		MatchKind: aho.StandardMatch,
		DFA:       true,
	})
	e.automaton = builder.Build(patterns)
	return e
}

func (e *libraryEngine) scan(text string, fn func(Match) bool) {
	if len(e.patterns) == 0 {
		return
	}
	it := e.automaton.IterOverlapping(text)
	for m := it.Next(); m != nil; m = it.Next() {
		if !fn(Match{Start: m.Start(), End: m.End(), Text: e.patterns[m.Pattern()]}) {
			return
		}
	}
}

func (e *libraryEngine) maxPatternLen() int { return e.maxLen }

// stateCount is not exposed by the library.
func (e *libraryEngine) stateCount() int { return -1 }
