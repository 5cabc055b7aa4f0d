package finder

import "iter"

// Longest collapses nested matches into their longest member while keeping
// matches that only partially overlap.
//
// seq must be ordered by ascending Start, ties by descending length, which is
// the order of every raw stream this package produces. One candidate is kept:
// a match containing, or contained in, the candidate replaces it when at least
// as long (the later match wins an exact tie); anything else flushes the
// candidate. A chain such as "a" ⊂ "ab" ⊂ "abc" therefore collapses to "abc"
// even though the three end at different offsets, while "abc" and "bcd" in
// "abcd" both survive.
func Longest(seq iter.Seq[Match]) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		var candidate Match
		have := false
		for m := range seq {
			if !have {
				candidate, have = m, true
				continue
			}
			if candidate.Contains(m) || m.Contains(candidate) {
				if m.Len() >= candidate.Len() {
					candidate = m
				}
				continue
			}
			if !yield(candidate) {
				return
			}
			candidate = m
		}
		if have {
			yield(candidate)
		}
	}
}
