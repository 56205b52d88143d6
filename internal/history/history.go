package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chrispappas/golang-generics-set/set"

	"github.com/idilsaglam/ohmyblood/internal/model"
	"github.com/idilsaglam/ohmyblood/internal/store"
)

// DateLayout is how the list shows timestamps.
const DateLayout = "02.01.2006   15:04"

// Row is one reading prepared for display.
type Row struct {
	Reading model.Reading
	When    string
	Values  string // "sys | dia | hr"
	Hand    string
	Note    string // "Note: ..." or empty
	Class   model.Classification
}

// NewRow formats r for display, showing its time in loc (time.Local when nil).
func NewRow(r model.Reading, loc *time.Location) Row {
	if loc == nil {
		loc = time.Local
	}
	row := Row{
		Reading: r,
		When:    r.Timestamp.In(loc).Format(DateLayout),
		Values:  fmt.Sprintf("%d | %d | %d", r.Systolic, r.Diastolic, r.HeartRate),
		Hand:    r.HandLabel(),
		Class:   r.Class(),
	}
	if r.Note != "" {
		row.Note = "Note: " + r.Note
	}
	return row
}

// Rows maps readings to display rows, keeping their order.
func Rows(rs []model.Reading, loc *time.Location) []Row {
	out := make([]Row, len(rs))
	for i, r := range rs {
		out[i] = NewRow(r, loc)
	}
	return out
}

// Load fetches every reading newest first.
func Load(s *store.Store) ([]model.Reading, error) {
	return s.QueryAll(store.Descending)
}

// PositionError reports a selection outside the displayed list.
type PositionError struct {
	Position int
	Len      int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("position %d out of range (have %d)", e.Position, e.Len)
}

// Deleter is the slice of the store the list needs.
type Deleter interface {
	DeleteAll(ids []string) error
}

// Delete removes the readings at the given 0-based positions of displayed.
// Positions are checked before anything is deleted. A store failure is
// logged and returned; it never takes the process down.
func Delete(s Deleter, displayed []model.Reading, positions []int, logger *log.Logger) error {
	ids, err := Select(displayed, positions)
	if err != nil {
		return err
	}
	if err := s.DeleteAll(ids); err != nil {
		if logger != nil {
			logger.Error("delete readings", "count", len(ids), "err", err)
		}
		return err
	}
	if logger != nil {
		logger.Debug("deleted readings", "ids", ids)
	}
	return nil
}

// Select maps positions to record ids. Duplicate positions collapse; the
// result follows display order.
func Select(displayed []model.Reading, positions []int) ([]string, error) {
	for _, p := range positions {
		if p < 0 || p >= len(displayed) {
			return nil, &PositionError{Position: p, Len: len(displayed)}
		}
	}
	seen := set.FromSlice([]int{})
	picked := make([]int, 0, len(positions))
	for _, p := range positions {
		if seen.Has(p) {
			continue
		}
		seen.Add(p)
		picked = append(picked, p)
	}
	sort.Ints(picked)
	ids := make([]string, len(picked))
	for i, p := range picked {
		ids[i] = displayed[p].ID
	}
	return ids, nil
}
