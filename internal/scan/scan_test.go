package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/flaq/internal/tags"
	"github.com/llehouerou/flaq/internal/tags/tagstest"
)

func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	tagstest.WriteFLAC(t, root, "b.flac", map[string][]string{"TITLE": {"b"}})
	tagstest.WriteFLAC(t, root, "a.FLAC", map[string][]string{"TITLE": {"a"}})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	tagstest.WriteFLAC(t, filepath.Join(root, "sub"), "c.flac", nil)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden"), 0o755))
	tagstest.WriteFLAC(t, filepath.Join(root, ".hidden"), "d.flac", nil)
	tagstest.WriteFLAC(t, root, ".e.flac", nil)
	writeFile(t, filepath.Join(root, "notes.txt"), "hello")
	writeFile(t, filepath.Join(root, "fake.flac"), "not a flac stream at all")
	return root
}

func TestCollect_Directory(t *testing.T) {
	root := setupTree(t)

	got, err := Collect(context.Background(), []string{root}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.FLAC"),
		filepath.Join(root, "b.flac"),
		filepath.Join(root, "fake.flac"),
	}, got)
}

func TestCollect_Recursive(t *testing.T) {
	root := setupTree(t)

	got, err := Collect(context.Background(), []string{root}, Options{Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.FLAC"),
		filepath.Join(root, "b.flac"),
		filepath.Join(root, "fake.flac"),
		filepath.Join(root, "sub", "c.flac"),
	}, got)
}

func TestCollect_Verify(t *testing.T) {
	root := setupTree(t)

	got, err := Collect(context.Background(), []string{root}, Options{Verify: true})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.FLAC"),
		filepath.Join(root, "b.flac"),
	}, got)
}

func TestCollect_ExplicitFilesKeepOrder(t *testing.T) {
	root := setupTree(t)
	b := filepath.Join(root, "b.flac")
	c := filepath.Join(root, "sub", "c.flac")

	got, err := Collect(context.Background(), []string{c, b, c}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{c, b}, got)
}

func TestCollect_DirectoryAndFileDeduplicated(t *testing.T) {
	root := setupTree(t)
	b := filepath.Join(root, "b.flac")

	got, err := Collect(context.Background(), []string{b, root}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		b,
		filepath.Join(root, "a.FLAC"),
		filepath.Join(root, "fake.flac"),
	}, got)
}

func TestCollect_ExplicitNonFLAC(t *testing.T) {
	root := setupTree(t)

	_, err := Collect(context.Background(), []string{filepath.Join(root, "notes.txt")}, Options{})
	require.ErrorIs(t, err, tags.ErrNotFLAC)

	_, err = Collect(context.Background(), []string{filepath.Join(root, "fake.flac")}, Options{Verify: true})
	require.ErrorIs(t, err, tags.ErrNotFLAC)
}

func TestCollect_Missing(t *testing.T) {
	_, err := Collect(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCollect_Cancelled(t *testing.T) {
	root := setupTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, []string{root}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}
