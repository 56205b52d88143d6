package history

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/ohmyblood/internal/model"
	"github.com/idilsaglam/ohmyblood/internal/store"
	"github.com/idilsaglam/ohmyblood/internal/store/jsonstore"
)

func reading(id string, ts time.Time, sys int) model.Reading {
	return model.Reading{ID: id, Systolic: sys, Diastolic: 80, HeartRate: 60, Timestamp: ts, LeftHand: true}
}

func seeded(t *testing.T) (*store.Store, []model.Reading) {
	t.Helper()
	b, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	s := store.New(b)
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Insert(reading(id, base.Add(time.Duration(i)*24*time.Hour), 120+i*15)))
	}
	rs, err := Load(s)
	require.NoError(t, err)
	return s, rs
}

func TestLoadIsNewestFirst(t *testing.T) {
	_, rs := seeded(t)
	require.Len(t, rs, 4)
	for i := 0; i+1 < len(rs); i++ {
		assert.False(t, rs[i].Timestamp.Before(rs[i+1].Timestamp))
	}
	assert.Equal(t, "d", rs[0].ID)
}

func TestRow(t *testing.T) {
	r := model.Reading{
		ID: "x", Systolic: 151, Diastolic: 90, HeartRate: 72,
		Timestamp: time.Date(2024, 2, 3, 7, 5, 0, 0, time.UTC), LeftHand: false, Note: "cold",
	}
	row := NewRow(r, time.UTC)
	assert.Equal(t, "03.02.2024   07:05", row.When)
	assert.Equal(t, "151 | 90 | 72", row.Values)
	assert.Equal(t, "Hand: Right", row.Hand)
	assert.Equal(t, "Note: cold", row.Note)
	assert.Equal(t, model.VeryHigh, row.Class)

	r.Note = ""
	assert.Empty(t, NewRow(r, time.UTC).Note)

	berlin := time.FixedZone("CET", 3600)
	assert.Equal(t, "03.02.2024   08:05", NewRow(r, berlin).When)
}

func TestDeleteRemovesExactlySelected(t *testing.T) {
	s, shown := seeded(t)
	require.NoError(t, Delete(s, shown, []int{1}, nil))

	rs, err := Load(s)
	require.NoError(t, err)
	var got []string
	for _, r := range rs {
		got = append(got, r.ID)
	}
	assert.Equal(t, []string{"d", "b", "a"}, got)
}

func TestDeleteManyAndDuplicates(t *testing.T) {
	s, shown := seeded(t)
	require.NoError(t, Delete(s, shown, []int{3, 0, 3}, nil))
	rs, err := Load(s)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "c", rs[0].ID)
	assert.Equal(t, "b", rs[1].ID)
}

func TestDeleteOutOfRangeTouchesNothing(t *testing.T) {
	s, shown := seeded(t)
	err := Delete(s, shown, []int{0, 4}, nil)
	var pe *PositionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.Position)

	rs, err := Load(s)
	require.NoError(t, err)
	assert.Len(t, rs, 4)
}

type brokenDeleter struct{ err error }

func (b brokenDeleter) DeleteAll([]string) error { return b.err }

func TestDeleteFailureIsLoggedNotFatal(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	cause := errors.New("locked")
	shown := []model.Reading{reading("a", time.Now(), 120)}

	err := Delete(brokenDeleter{err: cause}, shown, []int{0}, logger)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, buf.String(), "delete readings")
}

func TestSelect(t *testing.T) {
	shown := []model.Reading{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	ids, err := Select(shown, []int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "z"}, ids)

	ids, err = Select(shown, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = Select(shown, []int{-1})
	assert.Error(t, err)
}
