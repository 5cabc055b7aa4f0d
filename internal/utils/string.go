package utils

import (
	"strconv"
	"strings"
)

// Span is a half-open byte range of a string.
type Span struct {
	Start, End int
}

// Highlight rewrites text with every span passed through style. Spans must
// be sorted by Start; a span overlapping an earlier one is clipped to the
// part not yet emitted.
func Highlight(text string, spans []Span, style func(string) string) string {
	var sb strings.Builder
	pos := 0
	for _, s := range spans {
		start := max(s.Start, pos)
		end := min(s.End, len(text))
		if start >= end {
			continue
		}
		sb.WriteString(text[pos:start])
		sb.WriteString(style(text[start:end]))
		pos = end
	}
	sb.WriteString(text[pos:])
	return sb.String()
}

// FormatWithCommas renders n with thousands separators
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// RankList returns 1-based ranks for count items already in order
func RankList(count int) []int {
	if count <= 0 {
		return []int{}
	}
	ranks := make([]int, count)
	for i := range ranks {
		ranks[i] = i + 1
	}
	return ranks
}
