package suggest

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestCompleter() *Completer {
	return NewCompleterFrom(slices.Values([]string{
		"Vice President", "vice president",
		"Vice President of Sales", "Vice Chairman",
		"Senior Vice President", "President", "president",
		"President & CEO", "VP",
	}))
}

func titles(s []Suggestion) []string {
	out := []string{}
	for _, sug := range s {
		out = append(out, sug.Title)
	}
	return out
}

func TestComplete(t *testing.T) {
	c := newTestCompleter()
	tests := []struct {
		prefix string
		limit  int
		want   []string
	}{
		{"vice", 0, []string{"Vice Chairman", "Vice President", "Vice President of Sales"}},
		{"VICE P", 0, []string{"Vice President", "Vice President of Sales"}},
		{"vice", 1, []string{"Vice Chairman"}},
		{"pres", 10, []string{"President", "President & CEO"}},
		{"v", 2, []string{"VP", "Vice Chairman"}},
		{"senior vice president", 5, []string{"Senior Vice President"}},
		{"cto", 5, []string{}},
		{"", 5, []string{}},
		{"123", 5, []string{}},
	}
	for _, tt := range tests {
		got := c.Complete(tt.prefix, tt.limit)
		if diff := cmp.Diff(tt.want, titles(got)); diff != "" {
			t.Errorf("Complete(%q, %d) mismatch (-want +got):\n%s", tt.prefix, tt.limit, diff)
		}
		for i, s := range got {
			if s.Rank != i+1 {
				t.Errorf("Complete(%q)[%d].Rank = %d", tt.prefix, i, s.Rank)
			}
		}
	}
}

func TestCompleteUsesCache(t *testing.T) {
	c := newTestCompleter()
	first := c.Complete("vice", 0)
	second := c.Complete("Vice", 2)
	if diff := cmp.Diff(first[:2], second); diff != "" {
		t.Errorf("cached result mismatch (-want +got):\n%s", diff)
	}
	stats := c.Stats()
	if stats["cacheHits"] != 1 || stats["cacheMisses"] != 1 {
		t.Errorf("Stats() = %v, want one hit and one miss", stats)
	}

	c.AddTitle("Vice Admiral")
	if got := titles(c.Complete("vice a", 0)); !cmp.Equal(got, []string{"Vice Admiral"}) {
		t.Errorf("Complete after AddTitle = %v", got)
	}
}

func TestStats(t *testing.T) {
	c := newTestCompleter()
	c.AddTitle("VP")
	c.AddTitle("")
	stats := c.Stats()
	if stats["titles"] != 7 || stats["variants"] != 9 {
		t.Errorf("Stats() = %v, want 7 titles and 9 variants", stats)
	}
}

func TestHotCacheEviction(t *testing.T) {
	hc := NewHotCache(2)
	hc.Put("a", []string{"A"})
	hc.Put("b", []string{"B"})
	hc.Get("a")
	hc.Put("c", []string{"C"})

	if _, ok := hc.Get("b"); ok {
		t.Error("least recently used entry was not evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := hc.Get(k); !ok {
			t.Errorf("entry %q evicted", k)
		}
	}

	hc.Clear()
	if hc.Stats()["cacheEntries"] != 0 {
		t.Errorf("Clear left %d entries", hc.Stats()["cacheEntries"])
	}
}

var _ ICompleter = (*Completer)(nil)

func TestCompletePunctuatedTitles(t *testing.T) {
	c := NewCompleterFrom(slices.Values([]string{
		"Director's Assistant", "C++ Developer", "C# Developer", "Manager (Acting)",
	}))
	tests := []struct {
		prefix string
		want   []string
	}{
		{"director's", []string{"Director's Assistant"}},
		{"c++", []string{"C++ Developer"}},
		{"c#", []string{"C# Developer"}},
		{"manager (", []string{"Manager (Acting)"}},
		{"c<", []string{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, titles(c.Complete(tt.prefix, 5))); diff != "" {
			t.Errorf("Complete(%q) mismatch (-want +got):\n%s", tt.prefix, diff)
		}
	}
}
