package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported title list formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // One title per line
	FormatGzip               // Gzip compressed text, as bundled
	FormatBundle             // Msgpack bundle written by WriteBundle
)

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	Magic       []byte
}

var gzipMagic = []byte{0x1f, 0x8b}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Title List",
		Extensions:  []string{".txt", ".lst"},
	},
	FormatGzip: {
		Format:      FormatGzip,
		Description: "Gzip Title List",
		Extensions:  []string{".gz"},
		Magic:       gzipMagic,
	},
	FormatBundle: {
		Format:      FormatBundle,
		Description: "Msgpack Title Bundle",
		Extensions:  []string{".msgpack", ".mpk"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFileFormat picks the format from the extension, falling back to the
// gzip magic bytes for files with an unexpected name.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if ext == e {
				return format, nil
			}
		}
	}

	file, err := os.Open(filename)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	head := make([]byte, len(gzipMagic))
	if _, err := io.ReadFull(file, head); err == nil && bytes.Equal(head, gzipMagic) {
		log.Debugf("Detected gzip content in %s by magic bytes", filename)
		return FormatGzip, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// ValidateFileFormat checks that filename exists, is non-empty and starts
// with the expected magic bytes, if the format has any.
func ValidateFileFormat(filename string, expected FileFormat) error {
	info, ok := supportedFormats[expected]
	if !ok {
		return fmt.Errorf("unknown format: %v", expected)
	}

	stat, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}
	if stat.Size() == 0 {
		return fmt.Errorf("file %s is empty", filename)
	}
	if len(info.Magic) == 0 {
		return nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	head := make([]byte, len(info.Magic))
	if _, err := io.ReadFull(file, head); err != nil || !bytes.Equal(head, info.Magic) {
		return fmt.Errorf("file %s is not a valid %s", filename, info.Description)
	}
	return nil
}
