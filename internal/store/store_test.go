package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/ohmyblood/internal/model"
	"github.com/idilsaglam/ohmyblood/internal/store"
	"github.com/idilsaglam/ohmyblood/internal/store/jsonstore"
)

type failing struct {
	store.Backend
	err error
}

func (f failing) Insert(model.Reading) error { return f.err }
func (f failing) DeleteAll([]string) error   { return f.err }

func newJSON(t *testing.T) *store.Store {
	t.Helper()
	b, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	return store.New(b)
}

func TestSubscribersSeeCommittedState(t *testing.T) {
	s := newJSON(t)
	var seen []int
	var events []store.Event
	s.Subscribe(func(ev store.Event) {
		rs, err := s.QueryAll(store.Descending)
		require.NoError(t, err)
		seen = append(seen, len(rs))
		events = append(events, ev)
	})

	r := model.Reading{ID: model.NewID(), Systolic: 120, Diastolic: 80, HeartRate: 60, Timestamp: time.Now()}
	require.NoError(t, s.Insert(r))
	require.NoError(t, s.DeleteAll([]string{r.ID}))

	assert.Equal(t, []int{1, 0}, seen)
	require.Len(t, events, 2)
	assert.Equal(t, store.OpInsert, events[0].Op)
	assert.Equal(t, store.OpDelete, events[1].Op)
	assert.Equal(t, []string{r.ID}, events[1].IDs)
}

func TestSubscribersRunInOrderAndCancel(t *testing.T) {
	s := newJSON(t)
	var calls []string
	s.Subscribe(func(store.Event) { calls = append(calls, "first") })
	cancel := s.Subscribe(func(store.Event) { calls = append(calls, "second") })
	s.Subscribe(func(store.Event) { calls = append(calls, "third") })

	r := model.Reading{ID: "a", Timestamp: time.Now()}
	require.NoError(t, s.Insert(r))
	cancel()
	require.NoError(t, s.DeleteAll([]string{"a"}))

	assert.Equal(t, []string{"first", "second", "third", "first", "third"}, calls)
}

func TestFailuresAreStoreErrorsAndNotBroadcast(t *testing.T) {
	cause := errors.New("disk full")
	s := store.New(failing{err: cause})
	notified := false
	s.Subscribe(func(store.Event) { notified = true })

	err := s.Insert(model.Reading{ID: "a"})
	var se *store.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, store.OpInsert, se.Op)
	assert.ErrorIs(t, err, cause)

	err = s.DeleteAll([]string{"a"})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, store.OpDelete, se.Op)

	assert.False(t, notified)
}

func TestEmptyDeleteIsNoop(t *testing.T) {
	s := store.New(failing{err: errors.New("should not be called")})
	assert.NoError(t, s.DeleteAll(nil))
}
