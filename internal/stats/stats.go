package stats

import (
	"time"

	"github.com/idilsaglam/ohmyblood/internal/clock"
	"github.com/idilsaglam/ohmyblood/internal/model"
	"github.com/idilsaglam/ohmyblood/internal/store"
)

// Query selects which readings feed the statistics.
type Query struct {
	Period Period
	Hour   HourBucket
}

// Channel holds the aggregates of one pressure series. A nil field means
// there was no data; an empty selection never produces NaN.
type Channel struct {
	Min     *int
	Max     *int
	Average *float64
}

func (c Channel) Empty() bool { return c.Min == nil }

// Result is the filtered sequence, oldest first, and its aggregates.
type Result struct {
	Query     Query
	Start     time.Time
	Now       time.Time
	Location  *time.Location
	Readings  []model.Reading
	Systolic  Channel
	Diastolic Channel
}

// Compute filters readings by q relative to now and aggregates them.
// Hours are evaluated in loc (time.Local when nil). It does not modify
// its input and depends on nothing but its arguments.
func Compute(readings []model.Reading, q Query, now time.Time, loc *time.Location) Result {
	if loc == nil {
		loc = time.Local
	}
	start := q.Period.Start(now.In(loc))

	sorted := append([]model.Reading(nil), readings...)
	store.SortByTime(sorted, store.Ascending)

	var picked []model.Reading
	for _, r := range sorted {
		ts := r.Timestamp
		if ts.Before(start) || ts.After(now) {
			continue
		}
		if !q.Hour.Holds(ts.In(loc).Hour()) {
			continue
		}
		picked = append(picked, r)
	}

	return Result{
		Query:     q,
		Start:     start,
		Now:       now,
		Location:  loc,
		Readings:  picked,
		Systolic:  aggregate(picked, func(r model.Reading) int { return r.Systolic }),
		Diastolic: aggregate(picked, func(r model.Reading) int { return r.Diastolic }),
	}
}

func aggregate(rs []model.Reading, value func(model.Reading) int) Channel {
	if len(rs) == 0 {
		return Channel{}
	}
	lo, hi, sum := value(rs[0]), value(rs[0]), 0
	for _, r := range rs {
		v := value(r)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
	}
	avg := float64(sum) / float64(len(rs))
	return Channel{Min: &lo, Max: &hi, Average: &avg}
}

// Engine binds Compute to a clock and a time zone.
type Engine struct {
	Clock    clock.Clock
	Location *time.Location
}

func (e Engine) Run(readings []model.Reading, q Query) Result {
	c := e.Clock
	if c == nil {
		c = clock.System{}
	}
	return Compute(readings, q, c.Now(), e.Location)
}
