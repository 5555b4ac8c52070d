package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ContiguousRange is a run of consecutive weeks booked at a constant
// spots-per-week. Reducer output; what the traffic system books one line for.
type ContiguousRange struct {
	Start        time.Time
	End          time.Time
	SpotsPerWeek int
	Weeks        int
}

// TotalSpots is the bookable spot count for the whole range.
func (r ContiguousRange) TotalSpots() int { return r.SpotsPerWeek * r.Weeks }

// MisalignedWeekAxisError reports a weekly-spots sequence whose length does
// not match the week-date axis it claims to be aligned with. That is a
// parser bug, not bad input.
type MisalignedWeekAxisError struct {
	Spots int
	Dates int
}

func (e *MisalignedWeekAxisError) Error() string {
	return fmt.Sprintf("misaligned week axis: %d spot entries vs %d week dates", e.Spots, e.Dates)
}

// ErrEmptyDistribution reports a weekly distribution with no airing weeks.
// All-zero lines must be discarded before reduction; reaching the reducer
// with one is a contract violation.
var ErrEmptyDistribution = errors.New("empty weekly distribution")

// Reduce collapses a per-week spot-count sequence into the minimal set of
// contiguous constant-count date ranges.
//
// A zero-spot week always ends the open range and never starts one: equal
// counts on either side of a gap stay separate ranges. A calendar skip in
// the week axis (consecutive entries more than 7 days apart) also forces a
// boundary even when the counts match. Range ends land on the Sunday of the
// last airing week, capped at flightEnd.
func Reduce(weeklySpots []int, weekDates []time.Time, flightEnd time.Time) ([]ContiguousRange, error) {
	if len(weeklySpots) != len(weekDates) {
		return nil, &MisalignedWeekAxisError{Spots: len(weeklySpots), Dates: len(weekDates)}
	}

	var ranges []ContiguousRange
	n := len(weeklySpots)
	i := 0
	for i < n {
		if weeklySpots[i] == 0 {
			i++
			continue
		}

		count := weeklySpots[i]
		start := weekDates[i]

		j := i + 1
		for j < n && weeklySpots[j] == count {
			if weekDates[j].Sub(weekDates[j-1]) != 7*24*time.Hour {
				break
			}
			j++
		}

		end := weekDates[j-1].AddDate(0, 0, 6)
		if end.After(flightEnd) {
			end = flightEnd
		}
		ranges = append(ranges, ContiguousRange{
			Start:        start,
			End:          end,
			SpotsPerWeek: count,
			Weeks:        j - i,
		})
		i = j
	}

	if len(ranges) == 0 {
		return nil, ErrEmptyDistribution
	}
	return ranges, nil
}

// WeekAxisFromFlight derives a week-date axis for documents that give only a
// flight start: one entry per week column, 7-day cadence.
func WeekAxisFromFlight(flightStart time.Time, weeks int) []time.Time {
	axis := make([]time.Time, weeks)
	for i := range axis {
		axis[i] = flightStart.AddDate(0, 0, 7*i)
	}
	return axis
}

// Date builds a calendar date with no clock component.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
