package finder

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidUTF8 is wrapped by ScanError for malformed input text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Match is one occurrence of a title in the scanned text.
// Start and End are byte offsets, End exclusive, and text[Start:End] == Text.
type Match struct {
	Start int
	End   int
	Text  string
}

// Len returns the byte length of the match.
func (m Match) Len() int {
	return m.End - m.Start
}

// Contains reports whether o lies entirely within m.
func (m Match) Contains(o Match) bool {
	return m.Start <= o.Start && o.End <= m.End
}

func (m Match) String() string {
	return fmt.Sprintf("%q[%d:%d]", m.Text, m.Start, m.End)
}

// ScanError reports input that cannot be scanned.
type ScanError struct {
	Offset int
	Err    error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan: %v at byte %d", e.Err, e.Offset)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// validate returns a ScanError locating the first malformed rune of text.
func validate(text string) error {
	if utf8.ValidString(text) {
		return nil
	}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			return &ScanError{Offset: i, Err: ErrInvalidUTF8}
		}
		i += size
	}
	return nil
}
