package ahocorasick

import "slices"

// Automaton is a compiled, read-only multi-pattern matcher.
// State 0 is the root. A zero dict link means "no further pattern".
type Automaton struct {
	root     [256]int32
	offsets  []uint32 // state i owns keys[offsets[i]:offsets[i+1]]
	keys     []byte
	targets  []int32
	fail     []int32
	dict     []int32
	out      []int32
	patterns []string
	maxLen   int
}

// step follows a goto edge without failure fallback.
func (a *Automaton) step(s int32, c byte) (int32, bool) {
	lo, hi := a.offsets[s], a.offsets[s+1]
	i, found := slices.BinarySearch(a.keys[lo:hi], c)
	if !found {
		return 0, false
	}
	return a.targets[lo+uint32(i)], true
}

// next is the full transition function: goto edges, falling back through
// failure links until the root.
func (a *Automaton) next(s int32, c byte) int32 {
	for s != 0 {
		if t, ok := a.step(s, c); ok {
			return t
		}
		s = a.fail[s]
	}
	return a.root[c]
}

// Scan reports every occurrence of every pattern in text. fn receives the
// exclusive end offset of the occurrence and the pattern id; returning false
// stops the scan.
//
// Occurrences are reported in ascending end order and, for a shared end,
// longest pattern first.
func (a *Automaton) Scan(text string, fn func(end, id int) bool) {
	if len(a.patterns) == 0 {
		return
	}
	var s int32
	for i := 0; i < len(text); i++ {
		s = a.next(s, text[i])
		t := s
		if a.out[t] < 0 {
			t = a.dict[t]
		}
		for t != 0 {
			if !fn(i+1, int(a.out[t])) {
				return
			}
			t = a.dict[t]
		}
	}
}

// Pattern returns the text of pattern id, or "" when out of range.
func (a *Automaton) Pattern(id int) string {
	if id < 0 || id >= len(a.patterns) {
		return ""
	}
	return a.patterns[id]
}

// PatternCount returns the number of distinct patterns.
func (a *Automaton) PatternCount() int {
	return len(a.patterns)
}

// StateCount returns the number of trie states, root included.
func (a *Automaton) StateCount() int {
	return len(a.out)
}

// MaxPatternLen returns the byte length of the longest pattern.
func (a *Automaton) MaxPatternLen() int {
	return a.maxLen
}
