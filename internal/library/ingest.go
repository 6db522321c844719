package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// markdownExtensions lists the accepted source file extensions.
var markdownExtensions = []string{".md", ".markdown"}

// ErrUnsupportedType rejects non-markdown sources before any read
// happens. The message is shown to the user as-is.
var ErrUnsupportedType = errors.New("please choose a markdown (.md) file")

// SupportedExtensions returns the accepted source extensions.
func SupportedExtensions() []string {
	out := make([]string, len(markdownExtensions))
	copy(out, markdownExtensions)
	return out
}

// ReadSource validates and reads a markdown file for ingestion. It
// returns the display name (the base filename) and the raw content.
func ReadSource(path string) (name, content string, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, e := range markdownExtensions {
		if ext == e {
			supported = true
			break
		}
	}
	if !supported {
		return "", "", ErrUnsupportedType
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return filepath.Base(path), string(data), nil
}
