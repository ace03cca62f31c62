package tags

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
	"go.senan.xyz/taglib"
)

// File is a FLAC file opened for tag access.
type File struct {
	Path     string
	Size     int64
	Comments *Comments

	// stream is nil when the file could only be read through TagLib.
	stream  *flac.File
	id3Size int64
}

// Open reads the Vorbis comments of the FLAC file at path.
// Files go-flac cannot parse are read through TagLib instead.
func Open(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}

	stream, id3Size, err := parseFLAC(path)
	if err != nil {
		// go-flac is strict about the stream layout; TagLib is not.
		return openWithTaglib(path, info.Size(), err)
	}

	comments, err := readVorbisComments(stream)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &File{
		Path:     path,
		Size:     info.Size(),
		Comments: comments,
		stream:   stream,
		id3Size:  id3Size,
	}, nil
}

// Get implements the query environment over the file's comments.
func (f *File) Get(name string) ([]string, bool) {
	return f.Comments.Get(name)
}

// HasID3Header reports whether the file starts with an ID3v2 header that
// the next Save will strip.
func (f *File) HasID3Header() bool { return f.id3Size > 0 }

// parseFLAC parses a FLAC file, skipping an ID3v2 header if present.
// Returns the parsed stream and the size of the skipped header.
func parseFLAC(path string) (*flac.File, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	id3Size, err := id3HeaderSize(file)
	if err != nil {
		return nil, 0, err
	}
	if id3Size > 0 && !hasFLACMagicAt(file, id3Size) {
		return nil, 0, fmt.Errorf("%w: no fLaC marker after ID3v2 header", ErrNotFLAC)
	}
	if _, err := file.Seek(id3Size, io.SeekStart); err != nil {
		return nil, 0, err
	}

	stream, err := flac.ParseBytes(bufio.NewReader(file))
	if err != nil {
		return nil, 0, fmt.Errorf("parse file: %w", err)
	}
	return stream, id3Size, nil
}

// id3HeaderSize returns the total size of an ID3v2 header at the start of
// r, or 0 if there is none. The read position is left unspecified.
func id3HeaderSize(r io.ReadSeeker) (int64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	header := make([]byte, 10)
	if _, err := io.ReadFull(r, header); err != nil {
		// Too short to carry a header; let the FLAC parser report it.
		return 0, nil //nolint:nilerr // short files are handled by the caller
	}
	if string(header[:3]) != id3Magic {
		return 0, nil
	}

	// Size is stored in bytes 6-9 as syncsafe integer (7 bits per byte)
	size := int64(10) + syncsafe(header[6:10])

	// Extended header present, need to read its size too
	if header[5]&0x40 != 0 {
		ext := make([]byte, 4)
		if _, err := io.ReadFull(r, ext); err != nil {
			return 0, err
		}
		size += syncsafe(ext)
	}
	return size, nil
}

func syncsafe(b []byte) int64 {
	return int64(b[0]&0x7f)<<21 |
		int64(b[1]&0x7f)<<14 |
		int64(b[2]&0x7f)<<7 |
		int64(b[3]&0x7f)
}

// hasFLACMagicAt reports whether the FLAC stream marker sits at offset.
func hasFLACMagicAt(r io.ReadSeeker, offset int64) bool {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return false
	}
	magic := make([]byte, len(flacMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return false
	}
	return string(magic) == flacMagic
}

// readVorbisComments decodes the first VORBIS_COMMENT block of the stream.
// A stream without one yields empty comments.
func readVorbisComments(stream *flac.File) (*Comments, error) {
	idx := vorbisCommentIndex(stream)
	if idx < 0 {
		return NewComments(""), nil
	}

	block, err := flacvorbis.ParseFromMetaDataBlock(*stream.Meta[idx])
	if err != nil {
		return nil, fmt.Errorf("parse vorbis comments: %w", err)
	}

	comments := NewComments(block.Vendor)
	for _, raw := range block.Comments {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			continue
		}
		comments.add(key, value)
	}
	return comments, nil
}

func vorbisCommentIndex(stream *flac.File) int {
	for i, meta := range stream.Meta {
		if meta.Type == flac.VorbisComment {
			return i
		}
	}
	return -1
}

// openWithTaglib reads tags using TagLib as fallback when go-flac fails.
func openWithTaglib(path string, size int64, parseErr error) (*File, error) {
	if !IsFLAC(path) {
		return nil, fmt.Errorf("%s: %w", path, parseErr)
	}
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w (taglib: %w)", path, parseErr, err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	slices.Sort(names)

	comments := NewComments("")
	for _, name := range names {
		for _, v := range raw[name] {
			comments.add(name, v)
		}
	}

	return &File{Path: path, Size: size, Comments: comments}, nil
}
