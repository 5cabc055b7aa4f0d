/*
Package dictionary provides the title lists the finder is built from.

Sources are lazy and restartable: every range over a Source reopens its
backing file or embedded resource, so a finder can be rebuilt from the same
Source later on. Lines are trimmed and blank lines are skipped.

Three formats are understood, see DetectFileFormat:

	titles.txt        plain text, one title per line
	titles.txt.gz     the same, gzip compressed (the bundled list)
	titles.msgpack    {"v": 1, "titles": [...]} written by WriteBundle

I/O errors are yielded with the title position left empty and end the
iteration; callers stop at the first error.
*/
package dictionary

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/vmihailenco/msgpack/v5"
)

// BundleVersion is the version written into msgpack bundles.
const BundleVersion = 1

// maxLineSize bounds a single title line.
const maxLineSize = 64 * 1024

//go:embed data/titles_combined.txt.gz
var bundledTitles []byte

// Source is a lazy, restartable sequence of titles.
type Source = iter.Seq2[string, error]

// Bundle is the msgpack layout of a precompiled title list.
type Bundle struct {
	Version int      `msgpack:"v"`
	Titles  []string `msgpack:"titles"`
}

// Default yields the title list bundled with the binary.
func Default() Source {
	return func(yield func(string, error) bool) {
		gz, err := gzip.NewReader(bytes.NewReader(bundledTitles))
		if err != nil {
			yield("", fmt.Errorf("failed to open bundled titles: %w", err))
			return
		}
		defer gz.Close()
		for title, err := range Lines(gz) {
			if !yield(title, err) || err != nil {
				return
			}
		}
	}
}

// Lines yields the trimmed, non-empty lines of r. Unlike the other sources it
// is single-use, since r can only be read once.
func Lines(r io.Reader) Source {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(line, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("failed to read titles: %w", err))
		}
	}
}

// Strings adapts an in-memory list to a Source.
func Strings(titles ...string) Source {
	return func(yield func(string, error) bool) {
		for _, t := range titles {
			if !yield(t, nil) {
				return
			}
		}
	}
}

// Load returns a Source reading path in its detected format. The file is
// opened on every iteration.
func Load(path string) Source {
	return func(yield func(string, error) bool) {
		format, err := DetectFileFormat(path)
		if err != nil {
			yield("", err)
			return
		}
		if err := ValidateFileFormat(path, format); err != nil {
			yield("", err)
			return
		}
		log.Debugf("Loading titles from %s (%s)", path, format)

		file, err := os.Open(path)
		if err != nil {
			yield("", fmt.Errorf("failed to open titles file %s: %w", path, err))
			return
		}
		defer file.Close()

		var lines Source
		switch format {
		case FormatText:
			lines = Lines(file)
		case FormatGzip:
			gz, err := gzip.NewReader(file)
			if err != nil {
				yield("", fmt.Errorf("failed to open gzip stream %s: %w", path, err))
				return
			}
			defer gz.Close()
			lines = Lines(gz)
		case FormatBundle:
			bundle, err := ReadBundle(file)
			if err != nil {
				yield("", fmt.Errorf("failed to read bundle %s: %w", path, err))
				return
			}
			lines = Strings(bundle.Titles...)
		default:
			yield("", fmt.Errorf("unsupported format %v for %s", format, path))
			return
		}

		for title, err := range lines {
			if !yield(title, err) || err != nil {
				return
			}
		}
	}
}

// Collect drains src into a slice, returning the first error.
func Collect(src Source) ([]string, error) {
	var titles []string
	for title, err := range src {
		if err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, nil
}

// ReadBundle decodes a msgpack bundle.
func ReadBundle(r io.Reader) (*Bundle, error) {
	var bundle Bundle
	if err := msgpack.NewDecoder(r).Decode(&bundle); err != nil {
		return nil, err
	}
	if bundle.Version != BundleVersion {
		return nil, fmt.Errorf("unsupported bundle version %d", bundle.Version)
	}
	return &bundle, nil
}

// WriteBundle drains src into a msgpack bundle on w.
func WriteBundle(w io.Writer, src Source) error {
	titles, err := Collect(src)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(Bundle{Version: BundleVersion, Titles: titles})
}
