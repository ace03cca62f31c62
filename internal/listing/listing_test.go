package listing

import (
	"bytes"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/flaq/internal/tags"
	"github.com/llehouerou/flaq/internal/tags/tagstest"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func sampleEntries() []Entry {
	return []Entry{
		{
			Path: "/music/a.flac",
			Size: 1234567,
			Tags: map[string][]string{
				"TITLE":  {"Feather"},
				"ARTIST": {"Nujabes", "Cise Starr"},
			},
			Pictures: []tags.Picture{
				{Kind: "front cover", MIME: "image/jpeg", Width: 500, Height: 500, Size: 12000},
			},
		},
		{
			Path: "/music/b.flac",
			Size: 82,
			Tags: map[string][]string{},
		},
	}
}

func TestPaths(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, ColorNever)
	require.NoError(t, p.Paths([]string{"/music/a.flac", "/music/b c.flac"}))

	newGoldie(t).Assert(t, "paths", buf.Bytes())
}

func TestDetailed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, ColorNever)
	require.NoError(t, p.Detailed(sampleEntries()))

	newGoldie(t).Assert(t, "detailed", buf.Bytes())
}

func TestDetailed_AutoWithoutTerminalIsPlain(t *testing.T) {
	var auto, never bytes.Buffer
	require.NoError(t, NewPrinter(&auto, ColorAuto).Detailed(sampleEntries()))
	require.NoError(t, NewPrinter(&never, ColorNever).Detailed(sampleEntries()))
	assert.Equal(t, never.String(), auto.String())
}

func TestDetailed_AlwaysColors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, ColorAlways).Detailed(sampleEntries()))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "/music/a.flac")
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := tagstest.WriteFLAC(t, dir, "a.flac",
		map[string][]string{"TITLE": {"Feather"}},
		tagstest.WithFrontCover(tagstest.PNG(2, 2), "image/png"),
	)
	f, err := tags.Open(path)
	require.NoError(t, err)

	e := FromFile(f)
	info, err := os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, path, e.Path)
	assert.Equal(t, info.Size(), e.Size)
	assert.Equal(t, map[string][]string{"TITLE": {"Feather"}}, e.Tags)
	require.Len(t, e.Pictures, 1)
	assert.Equal(t, "front cover", e.Pictures[0].Kind)
}

func TestParseColorMode(t *testing.T) {
	for _, s := range []string{"", "auto", "always", "never"} {
		_, err := ParseColorMode(s)
		assert.NoError(t, err, s)
	}
	mode, _ := ParseColorMode("")
	assert.Equal(t, ColorAuto, mode)

	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}
