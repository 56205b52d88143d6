package stats

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Period is the look-back window for statistics.
type Period int

const (
	LastWeek Period = iota
	LastMonth
	Last3Months
	AllTime
)

var Periods = []Period{LastWeek, LastMonth, Last3Months, AllTime}

// Start is the inclusive lower bound of the window ending at now.
// AllTime has no lower bound and returns the zero time.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case LastWeek:
		return now.AddDate(0, 0, -7)
	case LastMonth:
		return subMonths(now, 1)
	case Last3Months:
		return subMonths(now, 3)
	default:
		return time.Time{}
	}
}

func (p Period) String() string {
	switch p {
	case LastWeek:
		return "Last Week"
	case LastMonth:
		return "Last Month"
	case Last3Months:
		return "Last 3 Months"
	default:
		return "All Time"
	}
}

// ParsePeriod accepts week, month, 3months and all (plus a few spellings).
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "lastweek", "1w", "7d":
		return LastWeek, nil
	case "month", "lastmonth", "1m":
		return LastMonth, nil
	case "3months", "last3months", "quarter", "3m":
		return Last3Months, nil
	case "all", "alltime", "":
		return AllTime, nil
	}
	return 0, errors.Errorf("unknown period %q (want week|month|3months|all)", s)
}

// Next cycles through Periods; the TUI uses it for its selector.
func (p Period) Next() Period { return Periods[(int(p)+1)%len(Periods)] }

// HourBucket is a coarse time-of-day filter.
type HourBucket int

const (
	AllHours HourBucket = iota
	Morning
	Afternoon
)

var HourBuckets = []HourBucket{AllHours, Morning, Afternoon}

// IsMorning reports whether hour h (0-23) is in [5, 12).
func IsMorning(h int) bool { return h >= 5 && h < 12 }

// Holds reports whether the local hour h falls in the bucket.
// Afternoon is the exact complement of Morning.
func (b HourBucket) Holds(h int) bool {
	switch b {
	case Morning:
		return IsMorning(h)
	case Afternoon:
		return !IsMorning(h)
	default:
		return true
	}
}

func (b HourBucket) String() string {
	switch b {
	case Morning:
		return "Morning"
	case Afternoon:
		return "Afternoon"
	default:
		return "All"
	}
}

func ParseHourBucket(s string) (HourBucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return AllHours, nil
	case "morning", "am":
		return Morning, nil
	case "afternoon", "pm":
		return Afternoon, nil
	}
	return 0, errors.Errorf("unknown hour bucket %q (want all|morning|afternoon)", s)
}

func (b HourBucket) Next() HourBucket { return HourBuckets[(int(b)+1)%len(HourBuckets)] }

// subMonths steps back n calendar months, clamping the day to the end of
// the target month (Mar 31 -> Feb 29 in a leap year) instead of letting
// time.AddDate roll over into the next month.
func subMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
