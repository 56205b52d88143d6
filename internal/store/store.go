package store

import (
	"sort"
	"sync"

	"github.com/idilsaglam/ohmyblood/internal/model"
)

// Direction orders QueryAll results by timestamp.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Backend is the durable part: whatever actually holds the readings.
type Backend interface {
	Insert(r model.Reading) error
	DeleteAll(ids []string) error
	QueryAll(dir Direction) ([]model.Reading, error)
	Close() error
}

// Op names the mutation an Event reports.
type Op string

const (
	OpInsert Op = "insert"
	OpDelete Op = "delete"
)

// Event is delivered to subscribers after a mutation has been committed.
type Event struct {
	Op  Op
	IDs []string
}

// Store serializes mutations on a Backend and tells subscribers about
// every committed change. Subscribers run synchronously, in subscription
// order, after the backend call returned successfully.
type Store struct {
	backend Backend

	mu     sync.Mutex // one mutation in flight
	subsMu sync.Mutex
	nextID int
	subs   map[int]func(Event)
	order  []int
}

func New(b Backend) *Store {
	return &Store{backend: b, subs: map[int]func(Event){}}
}

func (s *Store) Insert(r model.Reading) error {
	s.mu.Lock()
	err := s.backend.Insert(r)
	s.mu.Unlock()
	if err != nil {
		return &Error{Op: OpInsert, Err: err}
	}
	s.notify(Event{Op: OpInsert, IDs: []string{r.ID}})
	return nil
}

func (s *Store) DeleteAll(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	s.mu.Lock()
	err := s.backend.DeleteAll(ids)
	s.mu.Unlock()
	if err != nil {
		return &Error{Op: OpDelete, Err: err}
	}
	s.notify(Event{Op: OpDelete, IDs: append([]string(nil), ids...)})
	return nil
}

// QueryAll returns every reading ordered by timestamp. Readings sharing a
// timestamp keep the backend's order.
func (s *Store) QueryAll(dir Direction) ([]model.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs, err := s.backend.QueryAll(dir)
	if err != nil {
		return nil, &Error{Op: "query", Err: err}
	}
	return rs, nil
}

// Subscribe registers fn for change events. The returned func removes it.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
		for i, o := range s.order {
			if o == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) Close() error { return s.backend.Close() }

func (s *Store) notify(ev Event) {
	s.subsMu.Lock()
	fns := make([]func(Event), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	s.subsMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// SortByTime orders readings in place, keeping ties stable. Backends that
// cannot sort natively use it.
func SortByTime(rs []model.Reading, dir Direction) {
	sort.SliceStable(rs, func(i, j int) bool {
		if dir == Descending {
			return rs[i].Timestamp.After(rs[j].Timestamp)
		}
		return rs[i].Timestamp.Before(rs[j].Timestamp)
	})
}
