package jsonstore

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/ohmyblood/internal/model"
	"github.com/idilsaglam/ohmyblood/internal/store"
)

func reading(id string, day int, sys int) model.Reading {
	return model.Reading{
		ID:        id,
		Systolic:  sys,
		Diastolic: 80,
		HeartRate: 60,
		Timestamp: time.Date(2024, 1, day, 8, 0, 0, 0, time.UTC),
		LeftHand:  true,
	}
}

func TestEmptyDirQueriesNothing(t *testing.T) {
	b, err := Open(t.TempDir())
	require.NoError(t, err)

	rs, err := b.QueryAll(store.Descending)
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestInsertQueryDelete(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, b.Insert(reading("a", 2, 120)))
	require.NoError(t, b.Insert(reading("b", 1, 130)))
	require.NoError(t, b.Insert(reading("c", 3, 140)))

	rs, err := b.QueryAll(store.Descending)
	require.NoError(t, err)
	require.Len(t, rs, 3)
	assert.Equal(t, []string{"c", "a", "b"}, ids(rs))

	rs, err = b.QueryAll(store.Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(rs))

	require.NoError(t, b.DeleteAll([]string{"a"}))

	// reopen to make sure it hit the disk
	b2, err := Open(dir)
	require.NoError(t, err)
	rs, err = b2.QueryAll(store.Descending)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, ids(rs))
}

func TestNoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, b.Insert(reading("a", 1, 120)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}

func TestCorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(b.Path(), []byte("{nope"), 0o600))

	_, err = b.QueryAll(store.Descending)
	assert.Error(t, err)
	assert.Error(t, b.Insert(reading("a", 1, 120)))
}

func ids(rs []model.Reading) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
