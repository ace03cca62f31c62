// Package tagstest writes small synthetic FLAC files for tests.
package tagstest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

// streamInfo is a 44.1kHz, 16-bit stereo STREAMINFO block with no samples.
var streamInfo = []byte{
	0x10, 0x00, 0x10, 0x00, // min/max block size 4096
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // min/max frame size unknown
	0x0A, 0xC4, 0x42, 0xF0, // sample rate, channels, bits per sample
	0x00, 0x00, 0x00, 0x00, // total samples
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // MD5
}

// frameStub starts with a valid frame sync code so the stream parses.
var frameStub = []byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00, 0x00}

// Option customizes a generated file.
type Option func(*flac.File)

// PNG returns a valid w x h PNG image.
func PNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WithFrontCover embeds a front cover picture block.
func WithFrontCover(data []byte, mime string) Option {
	return func(f *flac.File) {
		pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Front Cover", data, mime)
		if err != nil {
			panic(err)
		}
		block := pic.Marshal()
		f.Meta = append(f.Meta, &block)
	}
}

// WriteFLAC creates dir/name as a FLAC file carrying the given comments.
// Fields are written in sorted order; values keep their order.
// A nil map writes a file without a Vorbis comment block.
func WriteFLAC(t testing.TB, dir, name string, comments map[string][]string, opts ...Option) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f := &flac.File{
		Meta: []*flac.MetaDataBlock{
			{Type: flac.StreamInfo, Data: slices.Clone(streamInfo)},
		},
		Frames: slices.Clone(frameStub),
	}

	if comments != nil {
		cmts := flacvorbis.New()
		keys := make([]string, 0, len(comments))
		for k := range comments {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			for _, v := range comments[k] {
				if err := cmts.Add(k, v); err != nil {
					t.Fatalf("add comment %s: %v", k, err)
				}
			}
		}
		block := cmts.Marshal()
		f.Meta = append(f.Meta, &block)
	}

	for _, opt := range opts {
		opt(f)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := f.Save(path); err != nil {
		t.Fatalf("save FLAC: %v", err)
	}
	return path
}

// WithID3Header prepends a minimal ID3v2.4 header to the file at path.
func WithID3Header(t testing.TB, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read FLAC: %v", err)
	}
	header := []byte{
		'I', 'D', '3', // Magic
		0x04, 0x00, // Version 4.0
		0x00,                   // Flags
		0x00, 0x00, 0x00, 0x0A, // Size (syncsafe: 10 bytes)
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	if err := os.WriteFile(path, append(header, data...), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
}
