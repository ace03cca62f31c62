package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	s, err := OpenAt(":memory:", limit)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func count(n int64) *int64 { return &n }

func TestRecordAndRecent(t *testing.T) {
	s := setupTestStore(t, 10)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(Entry{Query: `title == "a"`, Candidates: 10, Matched: count(2), RanAt: base}))
	require.NoError(t, s.Record(Entry{Query: `foo == 1`, Candidates: 10, Error: "expected atom, found `foo`", RanAt: base.Add(time.Minute)}))

	entries, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, `foo == 1`, entries[0].Query)
	assert.Nil(t, entries[0].Matched)
	assert.Equal(t, "expected atom, found `foo`", entries[0].Error)

	assert.Equal(t, `title == "a"`, entries[1].Query)
	require.NotNil(t, entries[1].Matched)
	assert.Equal(t, int64(2), *entries[1].Matched)
	assert.Equal(t, int64(10), entries[1].Candidates)
	assert.Empty(t, entries[1].Error)
	assert.True(t, base.Equal(entries[1].RanAt))
}

func TestRecent_Limit(t *testing.T) {
	s := setupTestStore(t, 10)
	base := time.Now()
	for i := range 5 {
		require.NoError(t, s.Record(Entry{Query: string(rune('a' + i)), RanAt: base.Add(time.Duration(i) * time.Second)}))
	}

	entries, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e", entries[0].Query)
	assert.Equal(t, "d", entries[1].Query)
}

func TestRecord_Prunes(t *testing.T) {
	s := setupTestStore(t, 3)
	base := time.Now()
	for i := range 6 {
		require.NoError(t, s.Record(Entry{Query: string(rune('a' + i)), RanAt: base.Add(time.Duration(i) * time.Second)}))
	}

	entries, err := s.Recent(0)
	require.NoError(t, err)
	var queries []string
	for _, e := range entries {
		queries = append(queries, e.Query)
	}
	assert.Equal(t, []string{"f", "e", "d"}, queries)
}

func TestRecord_DefaultsTime(t *testing.T) {
	s := setupTestStore(t, 0)
	before := time.Now()
	require.NoError(t, s.Record(Entry{Query: "true"}))

	entries, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].RanAt.Before(before))
	assert.Equal(t, DefaultLimit, s.limit)
}

func TestClear(t *testing.T) {
	s := setupTestStore(t, 10)
	require.NoError(t, s.Record(Entry{Query: "true"}))
	require.NoError(t, s.Clear())

	entries, err := s.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenAt_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "flaq.db")

	s, err := OpenAt(path, 5)
	require.NoError(t, err)
	require.NoError(t, s.Record(Entry{Query: "true", Matched: count(1)}))
	require.NoError(t, s.Close())

	// reopening keeps entries and the schema version row
	s, err = OpenAt(path, 5)
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var version int
	require.NoError(t, s.db.QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}
