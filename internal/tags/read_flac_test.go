package tags

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/flaq/internal/tags/tagstest"
)

func TestOpen_ReadsComments(t *testing.T) {
	dir := t.TempDir()
	path := tagstest.WriteFLAC(t, dir, "feather.flac", map[string][]string{
		"TITLE":  {"Feather"},
		"ARTIST": {"Nujabes", "Cise Starr"},
		"date":   {"2005"},
	})

	f, err := Open(path)
	require.NoError(t, err)

	got, ok := f.Get("ARTIST")
	require.True(t, ok)
	assert.Equal(t, []string{"Nujabes", "Cise Starr"}, got)

	// Keys are normalized to upper case on read
	got, ok = f.Get("DATE")
	require.True(t, ok)
	assert.Equal(t, []string{"2005"}, got)

	assert.Equal(t, []string{"ARTIST", "DATE", "TITLE"}, f.Comments.Fields())
	assert.False(t, f.HasID3Header())
	assert.Positive(t, f.Size)
}

func TestOpen_NoCommentBlock(t *testing.T) {
	path := tagstest.WriteFLAC(t, t.TempDir(), "bare.flac", nil)

	f, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Comments.Len())
}

func TestOpen_Nonexistent(t *testing.T) {
	_, err := Open("/nonexistent/file.flac")
	assert.Error(t, err)
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := tagstest.WriteFLAC(t, t.TempDir(), "a.flac", map[string][]string{
		"TITLE":       {"Old"},
		"ALBUMARTIST": {"Someone"},
	})

	f, err := Open(path)
	require.NoError(t, err)

	f.Comments.Set(StandardField(Title), []string{"New"})
	f.Comments.Append(StandardField(Artist), []string{"A", "B"})
	f.Comments.StripNonStandard()
	require.NoError(t, f.Save())

	reread, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"TITLE":  {"New"},
		"ARTIST": {"A", "B"},
	}, reread.Comments.Map())
	assert.Equal(t, f.Comments.Vendor(), reread.Comments.Vendor())
}

func TestSave_AddsCommentBlock(t *testing.T) {
	path := tagstest.WriteFLAC(t, t.TempDir(), "bare.flac", nil)

	f, err := Open(path)
	require.NoError(t, err)
	f.Comments.Set(StandardField(Genre), []string{"Jazz"})
	require.NoError(t, f.Save())

	reread, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz"}, reread.Comments.Values(StandardField(Genre)))
}

func TestOpen_ID3HeaderStripping(t *testing.T) {
	path := tagstest.WriteFLAC(t, t.TempDir(), "id3.flac", map[string][]string{
		"TITLE": {"Test Title"},
	})
	tagstest.WithID3Header(t, path)

	f, err := Open(path)
	require.NoError(t, err)
	assert.True(t, f.HasID3Header())
	assert.Equal(t, []string{"Test Title"}, f.Comments.Values(StandardField(Title)))

	require.NoError(t, f.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, flacMagic, string(data[:4]), "ID3v2 header should be stripped")
}

func TestPictures(t *testing.T) {
	pngData := tagstest.PNG(4, 3)
	path := tagstest.WriteFLAC(t, t.TempDir(), "art.flac", map[string][]string{"TITLE": {"x"}},
		tagstest.WithFrontCover(pngData, "image/png"))

	f, err := Open(path)
	require.NoError(t, err)

	pics := f.Pictures()
	require.Len(t, pics, 1)
	assert.Equal(t, "front cover", pics[0].Kind)
	assert.Equal(t, "image/png", pics[0].MIME)
	assert.Equal(t, len(pngData), pics[0].Size)
}

func TestIdentify(t *testing.T) {
	dir := t.TempDir()
	flacPath := tagstest.WriteFLAC(t, dir, "ok.flac", map[string][]string{"TITLE": {"x"}})
	assert.NoError(t, Identify(flacPath))

	fake := filepath.Join(dir, "fake.flac")
	require.NoError(t, os.WriteFile(fake, []byte("definitely not audio data"), 0o600))
	assert.True(t, errors.Is(Identify(fake), ErrNotFLAC))
}

func TestIdentify_ID3Prefixed(t *testing.T) {
	path := tagstest.WriteFLAC(t, t.TempDir(), "id3.flac", map[string][]string{"TITLE": {"x"}})
	tagstest.WithID3Header(t, path)
	assert.NoError(t, Identify(path))
}

func TestIsFLAC(t *testing.T) {
	assert.True(t, IsFLAC("/music/a.flac"))
	assert.True(t, IsFLAC("/music/A.FLAC"))
	assert.False(t, IsFLAC("/music/a.mp3"))
	assert.False(t, IsFLAC("/music/flac"))
}
