/*
Package finder locates job titles in free text.

A Finder owns one compiled automaton over a fixed title set. Building it is
the expensive part, so a Finder is meant to be created once and shared; all
query methods are safe for concurrent use.

	f, err := finder.New(finder.WithIgnoreCase(true))
	if err != nil {
		return err
	}
	matches, err := f.FindAll("I am the Senior Vice President", true)
	// [{Start: 9, End: 30, Text: "Senior Vice President"}]

# Case handling

WithIgnoreCase registers every title twice, as given and fully lower-cased.
Input is never folded: "president & ceo" matches "President & CEO", but
"PRESIDENT & CEO" does not. Callers that need full case-insensitivity should
lower-case the input themselves.

# Resolution

With resolveLongest, nested matches collapse to the longest one (see Longest)
and partially overlapping matches are both kept:

	"Vice President & CEO" -> "Vice President", "President & CEO"

Without it every raw occurrence is returned. Both streams are ordered by
ascending Start, ties by descending length.
*/
package finder

import (
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/titleserve/internal/logger"
	"github.com/bastiangx/titleserve/pkg/ahocorasick"
	"github.com/bastiangx/titleserve/pkg/dictionary"
	"github.com/bastiangx/titleserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

type options struct {
	ignoreCase bool
	source     dictionary.Source
	extra      []dictionary.Source
	backend    Backend
	logger     *log.Logger
}

// Option configures New.
type Option func(*options)

// WithIgnoreCase also registers the lower-cased form of every title.
func WithIgnoreCase(ignore bool) Option {
	return func(o *options) { o.ignoreCase = ignore }
}

// WithTitles replaces the bundled title list. Calling it with no titles
// yields a finder that matches nothing.
func WithTitles(titles ...string) Option {
	return func(o *options) { o.source = dictionary.Strings(titles...) }
}

// WithSource replaces the bundled title list with src.
func WithSource(src dictionary.Source) Option {
	return func(o *options) { o.source = src }
}

// WithExtraTitles adds titles on top of the base list.
func WithExtraTitles(titles ...string) Option {
	return func(o *options) {
		if len(titles) > 0 {
			o.extra = append(o.extra, dictionary.Strings(titles...))
		}
	}
}

// WithExtraSource adds the titles of src on top of the base list.
func WithExtraSource(src dictionary.Source) Option {
	return func(o *options) { o.extra = append(o.extra, src) }
}

// WithBackend selects the automaton implementation.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithLogger sets the logger used while building.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Finder finds titles in text. It is immutable once built.
type Finder struct {
	engine     engine
	patterns   *dictionary.Set
	ignoreCase bool
	backend    Backend

	completeOnce sync.Once
	completer    *suggest.Completer
}

// New builds a Finder. Source errors are returned as they are; an empty
// title yields an *ahocorasick.BuildError.
func New(opts ...Option) (*Finder, error) {
	o := options{backend: BackendNative}
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil {
		o.source = dictionary.Default()
	}
	if o.logger == nil {
		o.logger = logger.New("finder")
	}

	start := time.Now()
	o.logger.Debug("building job title searcher", "backend", o.backend, "ignoreCase", o.ignoreCase)

	set := dictionary.NewSet()
	index := 0
	register := func(src dictionary.Source) error {
		for title, err := range src {
			if err != nil {
				return err
			}
			if title == "" {
				return &ahocorasick.BuildError{Index: index, Pattern: title, Err: ahocorasick.ErrEmptyPattern}
			}
			index++
			set.Add(title)
			if o.ignoreCase {
				set.Add(strings.ToLower(title))
			}
		}
		return nil
	}

	if err := register(o.source); err != nil {
		return nil, err
	}
	for _, src := range o.extra {
		if err := register(src); err != nil {
			return nil, err
		}
	}

	eng, err := newEngine(o.backend, set)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("building done", "titles", index, "patterns", set.Len(), "took", time.Since(start))
	return &Finder{
		engine:     eng,
		patterns:   set,
		ignoreCase: o.ignoreCase,
		backend:    o.backend,
	}, nil
}

// FindIter returns a lazy sequence of the matches in text. Malformed UTF-8
// is rejected with a *ScanError before any match is produced. The sequence
// rescans text on every range.
func (f *Finder) FindIter(text string, resolveLongest bool) (iter.Seq[Match], error) {
	if err := validate(text); err != nil {
		return nil, err
	}
	seq := ordered(f.engine, text)
	if resolveLongest {
		seq = Longest(seq)
	}
	return seq, nil
}

// FindAll collects FindIter into a slice.
func (f *Finder) FindAll(text string, resolveLongest bool) ([]Match, error) {
	seq, err := f.FindIter(text, resolveLongest)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// Patterns returns the registered pattern set, case variants included.
func (f *Finder) Patterns() *dictionary.Set {
	return f.patterns
}

// IgnoreCase reports whether lower-cased variants were registered.
func (f *Finder) IgnoreCase() bool {
	return f.ignoreCase
}

// Backend reports the automaton implementation in use.
func (f *Finder) Backend() Backend {
	return f.backend
}

// Lookup completes prefix against the registered titles. The completer is
// built on first use.
func (f *Finder) Lookup(prefix string, limit int) []suggest.Suggestion {
	f.completeOnce.Do(func() {
		f.completer = suggest.NewCompleterFrom(f.patterns.All())
	})
	return f.completer.Complete(prefix, limit)
}

// Stats returns size information about the compiled automaton.
// states is -1 for backends that do not expose it.
func (f *Finder) Stats() map[string]int {
	return map[string]int{
		"patterns":      f.patterns.Len(),
		"states":        f.engine.stateCount(),
		"maxPatternLen": f.engine.maxPatternLen(),
	}
}
