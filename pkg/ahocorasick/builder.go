/*
Package ahocorasick compiles a set of byte patterns into an immutable
Aho-Corasick automaton and scans text for every occurrence of every pattern
in a single left-to-right pass.

Building happens in two phases:

 1. trie construction: each pattern is inserted byte by byte, sharing prefixes;
 2. failure links: a BFS over the trie links every state to the state of the
    longest proper suffix of its path that is also a prefix of some pattern.

On top of the failure links each state carries a dictionary link, the nearest
state along its failure chain that ends a pattern. Scanning follows the
dictionary links only, so reporting costs one step per reported match.

The compiled form keeps the transitions in flat arrays (one offset per state,
sorted keys, targets) plus a dense table for the root, which is hit on almost
every byte of natural-language input.

	b := ahocorasick.NewBuilder()
	_ = b.Add("Vice President")
	_ = b.Add("President")
	a, err := b.Build()
	a.Scan("the Vice President", func(end, id int) bool {
		fmt.Println(a.Pattern(id), end)
		return true
	})

A built Automaton is never mutated and can be scanned from any number of
goroutines at once.
*/
package ahocorasick

import (
	"cmp"
	"iter"
	"slices"

	"github.com/charmbracelet/log"
)

type edge struct {
	key byte
	to  int32
}

// node is a trie state during construction only.
type node struct {
	edges []edge // sorted by key
	out   int32  // pattern id ending here, -1 if none
}

// Builder collects patterns into a trie. It is single-use and not safe for
// concurrent use.
type Builder struct {
	nodes    []node
	patterns []string
	added    int
	err      error
	built    bool
}

// NewBuilder returns an empty builder holding only the root state.
func NewBuilder() *Builder {
	return &Builder{
		nodes: []node{{out: -1}},
	}
}

// Add registers a pattern. Adding a pattern that is already registered is a
// no-op. Once Add fails, the builder keeps returning the same error.
func (b *Builder) Add(pattern string) error {
	if b.built {
		return ErrFinalized
	}
	if b.err != nil {
		return b.err
	}

	index := b.added
	b.added++
	if pattern == "" {
		b.err = &BuildError{Index: index, Pattern: pattern, Err: ErrEmptyPattern}
		return b.err
	}

	state := int32(0)
	for i := 0; i < len(pattern); i++ {
		state = b.child(state, pattern[i])
	}
	if b.nodes[state].out >= 0 {
		return nil
	}
	b.nodes[state].out = int32(len(b.patterns))
	b.patterns = append(b.patterns, pattern)
	return nil
}

// AddAll registers every pattern of seq, stopping at the first error.
func (b *Builder) AddAll(seq iter.Seq[string]) error {
	for p := range seq {
		if err := b.Add(p); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of distinct patterns registered so far.
func (b *Builder) Len() int {
	return len(b.patterns)
}

// child returns the state reached from s on c, creating it if needed.
func (b *Builder) child(s int32, c byte) int32 {
	edges := b.nodes[s].edges
	i, found := slices.BinarySearchFunc(edges, c, func(e edge, c byte) int {
		return cmp.Compare(e.key, c)
	})
	if found {
		return edges[i].to
	}
	to := int32(len(b.nodes))
	b.nodes = append(b.nodes, node{out: -1})
	b.nodes[s].edges = slices.Insert(edges, i, edge{key: c, to: to})
	return to
}

// Build finalizes the automaton. The builder cannot be used afterwards.
func (b *Builder) Build() (*Automaton, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built {
		return nil, ErrFinalized
	}
	b.built = true

	a := b.flatten()
	a.link()

	log.Debugf("Automaton built: %d patterns, %d states, longest pattern %d bytes",
		len(a.patterns), len(a.out), a.maxLen)

	b.nodes = nil
	return a, nil
}

// flatten copies the trie into the compact read-only layout.
func (b *Builder) flatten() *Automaton {
	n := len(b.nodes)
	total := 0
	for i := range b.nodes {
		total += len(b.nodes[i].edges)
	}

	a := &Automaton{
		offsets:  make([]uint32, n+1),
		keys:     make([]byte, 0, total),
		targets:  make([]int32, 0, total),
		fail:     make([]int32, n),
		dict:     make([]int32, n),
		out:      make([]int32, n),
		patterns: b.patterns,
	}
	for i, nd := range b.nodes {
		a.offsets[i] = uint32(len(a.keys))
		for _, e := range nd.edges {
			a.keys = append(a.keys, e.key)
			a.targets = append(a.targets, e.to)
		}
		a.out[i] = nd.out
	}
	a.offsets[n] = uint32(len(a.keys))

	for _, e := range b.nodes[0].edges {
		a.root[e.key] = e.to
	}
	for _, p := range b.patterns {
		a.maxLen = max(a.maxLen, len(p))
	}
	return a
}

// link computes failure and dictionary links breadth first, so a state's
// failure target is always final before its children are visited.
// Depth-one states keep the zero failure link (root).
func (a *Automaton) link() {
	queue := make([]int32, 0, len(a.out))
	for j := a.offsets[0]; j < a.offsets[1]; j++ {
		queue = append(queue, a.targets[j])
	}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for j := a.offsets[u]; j < a.offsets[u+1]; j++ {
			c, v := a.keys[j], a.targets[j]
			f := a.next(a.fail[u], c)
			a.fail[v] = f
			if a.out[f] >= 0 {
				a.dict[v] = f
			} else {
				a.dict[v] = a.dict[f]
			}
			queue = append(queue, v)
		}
	}
}
