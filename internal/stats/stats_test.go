package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/ohmyblood/internal/clock"
	"github.com/idilsaglam/ohmyblood/internal/model"
)

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func scenario() []model.Reading {
	// deliberately stored newest first, the way the list hands them over
	return []model.Reading{
		{ID: "3", Systolic: 130, Diastolic: 85, HeartRate: 65, LeftHand: true, Timestamp: at("2024-01-03T03:00")},
		{ID: "2", Systolic: 160, Diastolic: 100, HeartRate: 75, LeftHand: false, Timestamp: at("2024-01-02T14:00")},
		{ID: "1", Systolic: 150, Diastolic: 95, HeartRate: 70, LeftHand: true, Timestamp: at("2024-01-01T08:00")},
	}
}

func TestScenarioAllTimeMorning(t *testing.T) {
	now := at("2024-01-10T12:00")
	res := Compute(scenario(), Query{Period: AllTime, Hour: Morning}, now, time.UTC)

	require.Len(t, res.Readings, 1)
	r := res.Readings[0]
	assert.Equal(t, "1", r.ID)
	assert.Equal(t, model.High, r.Class())

	require.False(t, res.Systolic.Empty())
	assert.Equal(t, 150, *res.Systolic.Min)
	assert.Equal(t, 150, *res.Systolic.Max)
	assert.InDelta(t, 150.0, *res.Systolic.Average, 1e-9)
	assert.Equal(t, 95, *res.Diastolic.Min)
	assert.Equal(t, 95, *res.Diastolic.Max)
}

func TestScenarioAfternoonIsComplement(t *testing.T) {
	now := at("2024-01-10T12:00")
	res := Compute(scenario(), Query{Period: AllTime, Hour: Afternoon}, now, time.UTC)

	require.Len(t, res.Readings, 2)
	// ascending time order for charting
	assert.Equal(t, "2", res.Readings[0].ID)
	assert.Equal(t, "3", res.Readings[1].ID)
	assert.Equal(t, 130, *res.Systolic.Min)
	assert.Equal(t, 160, *res.Systolic.Max)
	assert.InDelta(t, 145.0, *res.Systolic.Average, 1e-9)
	assert.InDelta(t, 92.5, *res.Diastolic.Average, 1e-9)
}

func TestAllHoursAscendingOrder(t *testing.T) {
	now := at("2024-01-10T12:00")
	res := Compute(scenario(), Query{Period: AllTime, Hour: AllHours}, now, time.UTC)
	require.Len(t, res.Readings, 3)
	assert.Equal(t, "1", res.Readings[0].ID)
	assert.Equal(t, "2", res.Readings[1].ID)
	assert.Equal(t, "3", res.Readings[2].ID)
}

func TestEmptySelectionHasNoAggregates(t *testing.T) {
	now := at("2024-06-01T12:00")
	res := Compute(scenario(), Query{Period: LastWeek, Hour: AllHours}, now, time.UTC)

	assert.Empty(t, res.Readings)
	for _, ch := range []Channel{res.Systolic, res.Diastolic} {
		assert.True(t, ch.Empty())
		assert.Nil(t, ch.Min)
		assert.Nil(t, ch.Max)
		assert.Nil(t, ch.Average)
	}

	res = Compute(nil, Query{}, now, time.UTC)
	assert.Empty(t, res.Readings)
	assert.Nil(t, res.Systolic.Average)
}

func TestComputeIsIdempotentAndPure(t *testing.T) {
	in := scenario()
	before := append([]model.Reading(nil), in...)
	now := at("2024-01-10T12:00")
	q := Query{Period: LastMonth, Hour: Afternoon}

	a := Compute(in, q, now, time.UTC)
	b := Compute(in, q, now, time.UTC)
	assert.Equal(t, a, b)
	assert.Equal(t, before, in, "input must not be reordered")
}

func TestHourPartition(t *testing.T) {
	for h := 0; h < 24; h++ {
		m, a := Morning.Holds(h), Afternoon.Holds(h)
		assert.True(t, m != a, "hour %d must be in exactly one bucket", h)
		assert.Equal(t, h >= 5 && h < 12, m, "hour %d", h)
		assert.True(t, AllHours.Holds(h))
	}
	assert.True(t, Morning.Holds(5))
	assert.False(t, Morning.Holds(12))
	assert.True(t, Afternoon.Holds(12))
	assert.True(t, Afternoon.Holds(4))
}

func TestHourUsesLocation(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	// 04:30 UTC is 05:30 in CET: morning there, not in UTC
	r := model.Reading{ID: "x", Systolic: 120, Diastolic: 80, Timestamp: at("2024-01-05T04:30")}
	now := at("2024-01-06T00:00")

	assert.Len(t, Compute([]model.Reading{r}, Query{Period: AllTime, Hour: Morning}, now, berlin).Readings, 1)
	assert.Empty(t, Compute([]model.Reading{r}, Query{Period: AllTime, Hour: Morning}, now, time.UTC).Readings)
}

func TestPeriodStart(t *testing.T) {
	now := at("2024-03-31T10:00")
	assert.Equal(t, at("2024-03-24T10:00"), LastWeek.Start(now))
	assert.Equal(t, at("2024-02-29T10:00"), LastMonth.Start(now))
	assert.Equal(t, at("2023-12-31T10:00"), Last3Months.Start(now))
	assert.True(t, AllTime.Start(now).IsZero())

	now = at("2024-05-31T23:59")
	assert.Equal(t, at("2024-02-29T23:59"), Last3Months.Start(now))
	now = at("2024-01-15T08:00")
	assert.Equal(t, at("2023-12-15T08:00"), LastMonth.Start(now))
}

func TestPeriodBoundaryIsInclusive(t *testing.T) {
	now := at("2024-01-10T12:00")
	onEdge := model.Reading{ID: "edge", Systolic: 120, Diastolic: 80, Timestamp: at("2024-01-03T12:00")}
	justBefore := model.Reading{ID: "out", Systolic: 120, Diastolic: 80, Timestamp: at("2024-01-03T11:59")}
	future := model.Reading{ID: "future", Systolic: 120, Diastolic: 80, Timestamp: at("2024-01-10T12:01")}

	res := Compute([]model.Reading{onEdge, justBefore, future}, Query{Period: LastWeek}, now, time.UTC)
	require.Len(t, res.Readings, 1)
	assert.Equal(t, "edge", res.Readings[0].ID)
}

func TestParseSelectors(t *testing.T) {
	for in, want := range map[string]Period{"week": LastWeek, "Month": LastMonth, "3months": Last3Months, "all": AllTime} {
		got, err := ParsePeriod(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePeriod("fortnight")
	assert.Error(t, err)

	for in, want := range map[string]HourBucket{"all": AllHours, "morning": Morning, "AFTERNOON": Afternoon} {
		got, err := ParseHourBucket(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = ParseHourBucket("evening")
	assert.Error(t, err)
}

func TestSelectorsCycle(t *testing.T) {
	assert.Equal(t, LastMonth, LastWeek.Next())
	assert.Equal(t, LastWeek, AllTime.Next())
	assert.Equal(t, Morning, AllHours.Next())
	assert.Equal(t, AllHours, Afternoon.Next())
}

func TestEngineUsesClock(t *testing.T) {
	e := Engine{Clock: clock.Fixed(at("2024-01-04T00:00")), Location: time.UTC}
	res := e.Run(scenario(), Query{Period: LastWeek, Hour: AllHours})
	assert.Len(t, res.Readings, 3)

	e.Clock = clock.Fixed(at("2024-01-09T00:00"))
	res = e.Run(scenario(), Query{Period: LastWeek, Hour: AllHours})
	assert.Len(t, res.Readings, 2)
}
