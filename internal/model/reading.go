package model

import (
	"time"

	"github.com/google/uuid"
)

// Reading is one blood-pressure measurement.
// Records are never edited; they are created once and deleted whole.
type Reading struct {
	ID        string    `json:"id"`
	Systolic  int       `json:"systolic"`
	Diastolic int       `json:"diastolic"`
	HeartRate int       `json:"heart_rate"`
	Timestamp time.Time `json:"timestamp"`
	LeftHand  bool      `json:"left_hand"`
	Note      string    `json:"note,omitempty"`
}

// NewID returns a fresh record id.
func NewID() string { return uuid.NewString() }

func (r Reading) HandLabel() string {
	if r.LeftHand {
		return "Hand: Left"
	}
	return "Hand: Right"
}

// Class is the severity bucket of the systolic value.
func (r Reading) Class() Classification { return Classify(r.Systolic) }
