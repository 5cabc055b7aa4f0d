package finder

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/bastiangx/titleserve/internal/logger"
	"github.com/google/go-cmp/cmp"
)

func TestLongest(t *testing.T) {
	tests := []struct {
		name string
		in   []Match
		want []Match
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "single",
			in:   []Match{{0, 3, "abc"}},
			want: []Match{{0, 3, "abc"}},
		},
		{
			name: "chain with different ends",
			in:   []Match{{3, 6, "abc"}, {3, 5, "ab"}, {3, 4, "a"}},
			want: []Match{{3, 6, "abc"}},
		},
		{
			name: "inner after outer",
			in:   []Match{{0, 21, "Senior Vice President"}, {7, 21, "Vice President"}, {12, 21, "President"}},
			want: []Match{{0, 21, "Senior Vice President"}},
		},
		{
			name: "cross overlap kept",
			in:   []Match{{0, 3, "abc"}, {1, 4, "bcd"}},
			want: []Match{{0, 3, "abc"}, {1, 4, "bcd"}},
		},
		{
			name: "disjoint",
			in:   []Match{{0, 3, "abc"}, {4, 7, "efg"}},
			want: []Match{{0, 3, "abc"}, {4, 7, "efg"}},
		},
		{
			name: "adjacent",
			in:   []Match{{0, 3, "abc"}, {3, 6, "def"}},
			want: []Match{{0, 3, "abc"}, {3, 6, "def"}},
		},
		{
			name: "later wins exact tie",
			in:   []Match{{0, 3, "CEO"}, {0, 3, "ceo"}},
			want: []Match{{0, 3, "ceo"}},
		},
		{
			name: "candidate replaced by containing match",
			in:   []Match{{2, 4, "cd"}, {2, 4, "CD"}, {5, 6, "f"}},
			want: []Match{{2, 4, "CD"}, {5, 6, "f"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Longest(slices.Values(tt.in)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Longest() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLongestStopsEarly(t *testing.T) {
	in := []Match{{0, 1, "a"}, {2, 3, "b"}, {4, 5, "c"}}
	var got []Match
	for m := range Longest(slices.Values(in)) {
		got = append(got, m)
		if len(got) == 2 {
			break
		}
	}
	if diff := cmp.Diff(in[:2], got); diff != "" {
		t.Errorf("early stop mismatch (-want +got):\n%s", diff)
	}
}

// randomCase returns a pattern set and text over a tiny alphabet so that
// overlaps are frequent.
func randomCase(r *rand.Rand) ([]string, string) {
	word := func(n int) string {
		var sb strings.Builder
		for range n {
			sb.WriteByte("abc"[r.IntN(3)])
		}
		return sb.String()
	}
	titles := make([]string, 1+r.IntN(6))
	for i := range titles {
		titles[i] = word(1 + r.IntN(4))
	}
	return titles, word(r.IntN(40))
}

func sortedRaw(titles []string, text string) []Match {
	var out []Match
	seen := map[string]bool{}
	for _, p := range titles {
		if seen[p] {
			continue
		}
		seen[p] = true
		for i := 0; i+len(p) <= len(text); i++ {
			if text[i:i+len(p)] == p {
				out = append(out, Match{Start: i, End: i + len(p), Text: p})
			}
		}
	}
	slices.SortFunc(out, func(a, b Match) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return b.End - a.End
	})
	return out
}

func TestRawOrderingRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := range 300 {
		titles, text := randomCase(r)
		for _, backend := range backends {
			f := newFinder(t, WithBackend(backend), WithTitles(titles...))
			got, err := f.FindAll(text, false)
			if err != nil {
				t.Fatalf("FindAll() = %v", err)
			}
			want := sortedRaw(titles, text)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("case %d %v titles=%q text=%q (-want +got):\n%s", i, backend, titles, text, diff)
			}
		}
	}
}

func TestResolvedProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := range 300 {
		titles, text := randomCase(r)
		f, err := New(WithLogger(logger.Discard()), WithTitles(titles...))
		if err != nil {
			t.Fatalf("New() = %v", err)
		}
		raw, _ := f.FindAll(text, false)
		resolved, _ := f.FindAll(text, true)

		again := slices.Collect(Longest(slices.Values(resolved)))
		if diff := cmp.Diff(resolved, again); diff != "" {
			t.Fatalf("case %d: resolving twice changed the result:\n%s", i, diff)
		}
		for j := 1; j < len(resolved); j++ {
			prev, cur := resolved[j-1], resolved[j]
			if prev.Contains(cur) || cur.Contains(prev) {
				t.Fatalf("case %d titles=%q text=%q: %v and %v nest", i, titles, text, prev, cur)
			}
		}
		for _, m := range resolved {
			if !slices.Contains(raw, m) {
				t.Fatalf("case %d: resolved match %v not in raw output", i, m)
			}
		}
		if len(raw) > 0 && len(resolved) == 0 {
			t.Fatalf("case %d: raw matches collapsed to nothing", i)
		}
	}
}
