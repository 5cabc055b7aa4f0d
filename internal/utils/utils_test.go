package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsValidPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"vice", true},
		{"Vice Pres", true},
		{"President &", true},
		{"1234", false},
		{"aaa", false},
		{"ceo!", false},
		{"co-f", true},
		{"director's", true},
		{"c++", true},
		{"manager (act", true},
		{"c#", true},
		{"ceo<", false},
		{"vp\x00", false},
	}
	for _, tt := range tests {
		if got := IsValidPrefix(tt.in); got != tt.want {
			t.Errorf("IsValidPrefix(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter()
	var kept []string
	for _, s := range []string{"CEO", "ceo", "CFO", "Ceo", "cfo", "CTO"} {
		if f.ShouldInclude(s) {
			kept = append(kept, s)
		}
	}
	if diff := cmp.Diff([]string{"CEO", "CFO", "CTO"}, kept); diff != "" {
		t.Errorf("kept mismatch (-want +got):\n%s", diff)
	}
}

func TestHighlight(t *testing.T) {
	upper := strings.ToUpper
	tests := []struct {
		name  string
		text  string
		spans []Span
		want  string
	}{
		{"none", "abc", nil, "abc"},
		{"single", "the vp here", []Span{{4, 6}}, "the VP here"},
		{"adjacent", "abcdef", []Span{{0, 3}, {3, 6}}, "ABCDEF"},
		{"overlap clipped", "abcd", []Span{{0, 3}, {1, 4}}, "ABCD"},
		{"out of range", "abc", []Span{{1, 10}}, "aBC"},
	}
	for _, tt := range tests {
		if got := Highlight(tt.text, tt.spans, upper); got != tt.want {
			t.Errorf("%s: Highlight() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatWithCommas(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -45000: "-45,000"}
	for in, want := range tests {
		if got := FormatWithCommas(in); got != want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRankList(t *testing.T) {
	if diff := cmp.Diff([]int{1, 2, 3}, RankList(3)); diff != "" {
		t.Errorf("RankList(3) mismatch:\n%s", diff)
	}
	if got := RankList(-1); len(got) != 0 {
		t.Errorf("RankList(-1) = %v", got)
	}
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[dict]
path = "titles.txt"
extra_titles = ["Staff Engineer", "Principal"]
mixed = ["a", 1]

[server]
workers = 4
debug = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatalf("ParseTOMLWithRecovery() = %v", err)
	}
	dict, ok := ExtractSection(data, "dict")
	if !ok {
		t.Fatal("dict section missing")
	}
	if s, ok := ExtractString(dict, "path"); !ok || s != "titles.txt" {
		t.Errorf("ExtractString(path) = %q, %v", s, ok)
	}
	if got, ok := ExtractStringSlice(dict, "extra_titles"); !ok || !cmp.Equal(got, []string{"Staff Engineer", "Principal"}) {
		t.Errorf("ExtractStringSlice(extra_titles) = %v, %v", got, ok)
	}
	if _, ok := ExtractStringSlice(dict, "mixed"); ok {
		t.Error("ExtractStringSlice(mixed) accepted a non-string element")
	}
	server, _ := ExtractSection(data, "server")
	if n, ok := ExtractInt64(server, "workers"); !ok || n != 4 {
		t.Errorf("ExtractInt64(workers) = %d, %v", n, ok)
	}
	if b, ok := ExtractBool(server, "debug"); !ok || !b {
		t.Errorf("ExtractBool(debug) = %v, %v", b, ok)
	}
	if _, ok := ExtractBool(server, "workers"); ok {
		t.Error("ExtractBool(workers) accepted an integer")
	}
}

func TestSaveTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.toml")
	type section struct {
		Name string `toml:"name"`
	}
	if err := SaveTOMLFile(map[string]section{"a": {Name: "x"}}, path); err != nil {
		t.Fatalf("SaveTOMLFile() = %v", err)
	}
	if !FileExists(path) {
		t.Fatal("file not written")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
	if FileExists(dir) {
		t.Error("FileExists reported a directory")
	}
}

func TestConfigDirFor(t *testing.T) {
	env := map[string]string{"XDG_CONFIG_HOME": "/xdg"}
	getenv := func(k string) string { return env[k] }
	if got := configDirFor("linux", "/home/u", getenv); got != filepath.Join("/xdg", AppName) {
		t.Errorf("linux with XDG = %s", got)
	}
	if got := configDirFor("darwin", "/home/u", getenv); got != filepath.Join("/home/u", ".config", AppName) {
		t.Errorf("darwin = %s", got)
	}
	if got := configDirFor("plan9", "/home/u", getenv); got != filepath.Join("/home/u", "."+AppName) {
		t.Errorf("other = %s", got)
	}
}

func TestResolveDictPath(t *testing.T) {
	execDir := t.TempDir()
	configDir := t.TempDir()
	pr := &PathResolver{executableDir: execDir, configDir: configDir}

	rel := filepath.Join("lists", "titles-relative-test.txt")
	if err := os.MkdirAll(filepath.Join(execDir, "lists"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(execDir, rel), []byte("CEO\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, want := pr.ResolveDictPath(rel), filepath.Join(execDir, rel); got != want {
		t.Errorf("ResolveDictPath(%q) = %q, want %q", rel, got, want)
	}

	abs := filepath.Join(configDir, "custom.txt")
	if err := os.WriteFile(abs, []byte("CFO\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := pr.ResolveDictPath(abs); got != abs {
		t.Errorf("ResolveDictPath(%q) = %q", abs, got)
	}

	missing := "no-such-titles.txt"
	if got := pr.ResolveDictPath(missing); got != missing {
		t.Errorf("ResolveDictPath(%q) = %q, want it returned as given", missing, got)
	}

	found := filepath.Join(configDir, "titles.txt.gz")
	if err := os.WriteFile(found, []byte{0x1f, 0x8b}, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := pr.ResolveDictPath(""); got != found {
		t.Errorf("ResolveDictPath(\"\") = %q, want %q", got, found)
	}
}

func TestResolveRelativePath(t *testing.T) {
	pr := &PathResolver{executableDir: "/opt/titleserve"}
	if got := pr.ResolveRelativePath("data/titles.txt"); got != filepath.Join("/opt/titleserve", "data", "titles.txt") {
		t.Errorf("relative = %s", got)
	}
	abs := filepath.Join(string(filepath.Separator), "srv", "titles.txt")
	if got := pr.ResolveRelativePath(abs); got != abs {
		t.Errorf("absolute = %s", got)
	}
}

func TestUserConfigDirHonorsXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only read on linux")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	got, err := UserConfigDir()
	if err != nil {
		t.Fatalf("UserConfigDir() = %v", err)
	}
	if want := filepath.Join(xdg, AppName); got != want {
		t.Errorf("UserConfigDir() = %q, want %q", got, want)
	}
}
