// Package tags reads and writes the Vorbis comment block of FLAC files and
// defines the tag field vocabulary shared by queries and edits.
package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// ExtFLAC is the only file extension handled by this package.
const ExtFLAC = ".flac"

const (
	// id3Magic is the magic bytes for ID3v2 header detection.
	id3Magic = "ID3"
	// flacMagic starts every FLAC stream.
	flacMagic = "fLaC"
)

// ErrNotFLAC is returned when a file's content is not a FLAC stream.
var ErrNotFLAC = errors.New("not a FLAC file")

// IsFLAC returns true if the path has the FLAC file extension.
func IsFLAC(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ExtFLAC)
}

// Identify checks the content of the file at path and returns ErrNotFLAC
// unless it holds a FLAC stream, possibly behind an ID3v2 header.
func Identify(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, fileType, err := tag.Identify(f); err == nil && fileType == tag.FLAC {
		return nil
	}

	// dhowden/tag reports ID3-prefixed streams as MP3; look past the header.
	size, err := id3HeaderSize(f)
	if err != nil || size == 0 {
		return fmt.Errorf("%s: %w", path, ErrNotFLAC)
	}
	if !hasFLACMagicAt(f, size) {
		return fmt.Errorf("%s: %w", path, ErrNotFLAC)
	}
	return nil
}
