package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock minute within a broadcast day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) Before(o TimeOfDay) bool { return t.Minutes() < o.Minutes() }

// TimeRange is a normalized daypart window. Start <= End always holds:
// past-midnight ends are capped at 23:59 rather than wrapped, and starts
// before the parse floor are raised to it.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (r TimeRange) String() string { return r.Start.String() + "-" + r.End.String() }

// DefaultStartFloor is the earliest bookable start of the broadcast day.
var DefaultStartFloor = TimeOfDay{Hour: 6}

// endCeiling is how the traffic system spells midnight.
var endCeiling = TimeOfDay{Hour: 23, Minute: 59}

// AmbiguousTimeError reports a time expression with no recognizable numeric
// pattern. Expressions the period-inference rules can resolve never produce it.
type AmbiguousTimeError struct {
	Raw string
}

func (e *AmbiguousTimeError) Error() string {
	return fmt.Sprintf("ambiguous time format %q", e.Raw)
}

// ParseTimeRange normalizes a shorthand daypart expression to a 24-hour
// TimeRange using the default 06:00 start floor.
//
// Recognized forms, most to least explicit:
//
//	"6:00a-7:00p"  both ends marked
//	"11:30-12:00p" marker only on the end; start inherits unless the
//	               noon-crossing rule overrides
//	"1130-12p"     compact concatenated minutes, same inheritance
//	"11:00p-12:00a" independently marked, end capped at 23:59
//	"6a-7a"        bare hours with markers
//	"19:00-19:30"  no markers at all, read as a 24-hour clock
//
// Noon-crossing rule: with the period marker only on the end, compare both
// hours on the 12-hour clock; if the start hour is greater, the start is AM
// ("11-2p" is 11:00-14:00, not 23:00-14:00).
//
// Semicolon-separated unions ("4p-5p; 6p-7p") collapse to the earliest start
// and latest end.
func ParseTimeRange(raw string) (TimeRange, error) {
	return ParseTimeRangeWithFloor(raw, DefaultStartFloor)
}

// ParseTimeRangeWithFloor is ParseTimeRange with an explicit start floor.
func ParseTimeRangeWithFloor(raw string, floor TimeOfDay) (TimeRange, error) {
	if strings.Contains(raw, ";") {
		return parseUnion(raw, floor)
	}

	s := strings.ToLower(strings.ReplaceAll(raw, " ", ""))
	s = strings.ReplaceAll(s, "am", "a")
	s = strings.ReplaceAll(s, "pm", "p")
	// Midnight and noon shorthands.
	s = strings.ReplaceAll(s, "12m", "12a")
	s = strings.ReplaceAll(s, "12n", "12p")

	dash := strings.IndexByte(s, '-')
	if dash <= 0 || dash == len(s)-1 {
		return TimeRange{}, &AmbiguousTimeError{Raw: raw}
	}
	startStr, endStr := s[:dash], s[dash+1:]

	endHour, endMin, endPeriod, ok := splitClock(endStr)
	if !ok {
		return TimeRange{}, &AmbiguousTimeError{Raw: raw}
	}
	startHour, startMin, startPeriod, ok := splitClock(startStr)
	if !ok {
		return TimeRange{}, &AmbiguousTimeError{Raw: raw}
	}

	// Infer a missing start period from the end marker. If the start hour is
	// greater than the end hour on the 12-hour clock the window crosses noon
	// and the start must be AM.
	if startPeriod == 0 && endPeriod != 0 {
		if endPeriod == 'p' && startHour != 12 && (endHour == 12 || startHour > endHour) {
			startPeriod = 'a'
		} else {
			startPeriod = endPeriod
		}
	}

	start := to24(startHour, startMin, startPeriod)
	if start.Before(floor) {
		start = floor
	}

	var end TimeOfDay
	switch {
	case endPeriod == 'a' && endHour == 12:
		// 12:00a means end-of-day.
		end = endCeiling
	case endPeriod == 'a' && endHour < floor.Hour:
		// 1a-2a style past-midnight ends cap at 23:59 rather than wrap.
		end = endCeiling
	default:
		end = to24(endHour, endMin, endPeriod)
		if endCeiling.Before(end) {
			end = endCeiling
		}
	}

	if end.Before(start) {
		end = endCeiling
	}
	return TimeRange{Start: start, End: end}, nil
}

func parseUnion(raw string, floor TimeOfDay) (TimeRange, error) {
	var (
		got    bool
		merged TimeRange
	)
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := ParseTimeRangeWithFloor(part, floor)
		if err != nil {
			continue
		}
		if !got {
			merged = r
			got = true
			continue
		}
		if r.Start.Before(merged.Start) {
			merged.Start = r.Start
		}
		if merged.End.Before(r.End) {
			merged.End = r.End
		}
	}
	if !got {
		return TimeRange{}, &AmbiguousTimeError{Raw: raw}
	}
	return merged, nil
}

var (
	clockRe        = regexp.MustCompile(`^(\d{1,2}):?(\d{2})?([ap])?$`)
	compactClockRe = regexp.MustCompile(`^(\d{3,4})([ap])?$`)
)

// splitClock breaks one side of a range into hour, minute and an optional
// period marker ('a'/'p', 0 when absent). Compact 3-4 digit values ("730",
// "1130") are minutes-concatenated, not 24-hour clocks.
func splitClock(s string) (hour, minute int, period byte, ok bool) {
	if m := compactClockRe.FindStringSubmatch(s); m != nil {
		digits := m[1]
		if len(digits) == 3 {
			hour, _ = strconv.Atoi(digits[:1])
			minute, _ = strconv.Atoi(digits[1:])
		} else {
			hour, _ = strconv.Atoi(digits[:2])
			minute, _ = strconv.Atoi(digits[2:])
		}
		if m[2] != "" {
			period = m[2][0]
		}
		return hour, minute, period, true
	}

	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		period = m[3][0]
	}
	return hour, minute, period, true
}

// to24 converts a 12-hour reading to a 24-hour TimeOfDay. A zero period
// leaves the hour as written (24-hour input).
func to24(hour, minute int, period byte) TimeOfDay {
	switch period {
	case 'a':
		if hour == 12 {
			hour = 0
		}
	case 'p':
		if hour != 12 {
			hour += 12
		}
	}
	if hour > 23 {
		hour = 23
		minute = 59
	}
	return TimeOfDay{Hour: hour, Minute: minute}
}

// ApplySundayRule drops Sunday from a day list booked exactly 6:00a-7:00a,
// where Sunday carries paid programming instead of the regular grid.
func ApplySundayRule(days []Day, tr TimeRange) []Day {
	if tr.Start != (TimeOfDay{Hour: 6}) || tr.End != (TimeOfDay{Hour: 7}) {
		return days
	}
	if !ContainsDay(days, Sunday) {
		return days
	}
	return DropSunday(days)
}
