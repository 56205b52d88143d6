package entry

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/idilsaglam/ohmyblood/internal/clock"
	"github.com/idilsaglam/ohmyblood/internal/model"
)

// DateLayout is the single accepted date-entry format (dd.MM.yyyy HH:mm).
const DateLayout = "02.01.2006 15:04"

// Form is the raw, user-typed state of a new reading.
type Form struct {
	Systolic  string
	Diastolic string
	HeartRate string
	LeftHand  bool
	Timestamp time.Time
	Note      string
}

// New returns an empty form: left hand, stamped with now.
func New(now time.Time) Form {
	return Form{LeftHand: true, Timestamp: now}
}

// DigitsOnly drops every rune that is not 0-9.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// CanSave is the quick pre-check the UI uses to enable saving.
func (f Form) CanSave() bool {
	return f.Systolic != "" && f.Diastolic != "" && f.HeartRate != ""
}

// Build validates the form and turns it into a Reading with a fresh id.
// Numeric ranges are not checked.
func (f Form) Build(now time.Time) (model.Reading, error) {
	sys, err := parseField("systolic", f.Systolic)
	if err != nil {
		return model.Reading{}, err
	}
	dia, err := parseField("diastolic", f.Diastolic)
	if err != nil {
		return model.Reading{}, err
	}
	hr, err := parseField("heart rate", f.HeartRate)
	if err != nil {
		return model.Reading{}, err
	}

	ts := f.Timestamp
	if ts.IsZero() {
		ts = now
	}
	if ts.After(now) {
		return model.Reading{}, &ValidationError{Field: "timestamp", Reason: "is in the future"}
	}

	return model.Reading{
		ID:        model.NewID(),
		Systolic:  sys,
		Diastolic: dia,
		HeartRate: hr,
		Timestamp: ts,
		LeftHand:  f.LeftHand,
		Note:      strings.TrimRightFunc(f.Note, unicode.IsSpace),
	}, nil
}

// Inserter is the slice of the store the form needs.
type Inserter interface {
	Insert(r model.Reading) error
}

// Submit builds the reading and stores it. Validation and parse errors
// leave the store untouched; store failures come back as-is so the caller
// can keep the form open.
func Submit(s Inserter, f Form, c clock.Clock) (model.Reading, error) {
	r, err := f.Build(c.Now())
	if err != nil {
		return model.Reading{}, err
	}
	if err := s.Insert(r); err != nil {
		return model.Reading{}, err
	}
	return r, nil
}

// ParseDate reads a timestamp typed in DateLayout, in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, &ParseError{Field: "timestamp", Input: s, Err: err}
	}
	return t, nil
}

func parseField(name, raw string) (int, error) {
	if raw == "" {
		return 0, &ValidationError{Field: name, Reason: "is required"}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParseError{Field: name, Input: raw, Err: err}
	}
	return v, nil
}
