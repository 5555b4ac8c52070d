package schedule

import (
	"fmt"
	"strings"
)

// Day is a broadcast weekday. Weeks start Monday, matching the week-start
// dates that agency schedules are aligned against.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayAbbrevs = [7]string{"M", "Tu", "W", "Th", "F", "Sa", "Su"}

func (d Day) Abbrev() string {
	if d < Monday || d > Sunday {
		return "?"
	}
	return dayAbbrevs[d]
}

func (d Day) String() string { return d.Abbrev() }

// UnknownDayPatternError reports a day shorthand outside the recognized grammar.
type UnknownDayPatternError struct {
	Pattern string
}

func (e *UnknownDayPatternError) Error() string {
	return fmt.Sprintf("unknown day pattern %q", e.Pattern)
}

// aliases maps spelled-out or alternate day tokens to the canonical
// two-letter abbreviations used everywhere else.
var dayAliases = map[string]string{
	"MON": "M", "Mon": "M",
	"TUE": "Tu", "Tue": "Tu", "T": "Tu",
	"WED": "W", "Wed": "W",
	"THU": "Th", "Thu": "Th", "R": "Th",
	"FRI": "F", "Fri": "F",
	"SAT": "Sa", "Sat": "Sa", "S": "Sa",
	"SUN": "Su", "Sun": "Su", "SU": "Su", "U": "Su",
}

func canonDayToken(tok string) (Day, bool) {
	tok = strings.TrimSpace(tok)
	if a, ok := dayAliases[tok]; ok {
		tok = a
	}
	for i, ab := range dayAbbrevs {
		if ab == tok {
			return Day(i), true
		}
	}
	return 0, false
}

// ExpandDayPattern expands a day shorthand ("M-F", "Sa-Su", "M-Su", "M,W,F",
// single days, and spelled-out variants like "Sat-Sun") into the ordered day
// list it denotes. Ranges are contiguous within a Monday-start week.
// Expansion is total over the recognized grammar; anything else fails with
// UnknownDayPatternError rather than defaulting.
func ExpandDayPattern(raw string) ([]Day, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, &UnknownDayPatternError{Pattern: raw}
	}

	// Range: "M-F", "Sa-Su", "Mon-Fri".
	if i := strings.IndexByte(s, '-'); i > 0 && !strings.Contains(s, ",") {
		start, ok1 := canonDayToken(s[:i])
		end, ok2 := canonDayToken(s[i+1:])
		if ok1 && ok2 && start <= end {
			days := make([]Day, 0, int(end-start)+1)
			for d := start; d <= end; d++ {
				days = append(days, d)
			}
			return days, nil
		}
		return nil, &UnknownDayPatternError{Pattern: raw}
	}

	// Comma list: "M,W,F" or "M-Tu,Th-Su".
	if strings.Contains(s, ",") {
		var days []Day
		seen := [7]bool{}
		for _, part := range strings.Split(s, ",") {
			sub, err := ExpandDayPattern(part)
			if err != nil {
				return nil, &UnknownDayPatternError{Pattern: raw}
			}
			for _, d := range sub {
				if !seen[d] {
					seen[d] = true
					days = append(days, d)
				}
			}
		}
		return days, nil
	}

	// Single day.
	if d, ok := canonDayToken(s); ok {
		return []Day{d}, nil
	}

	// Compact run like "MTuWThF" or "SaSu" (Strata exports).
	if days, ok := expandCompactRun(s); ok {
		return days, nil
	}

	return nil, &UnknownDayPatternError{Pattern: raw}
}

// expandCompactRun splits concatenated abbreviations ("MTuWThFSaSu") by
// longest-match scanning. The two-letter codes are unambiguous prefixes.
func expandCompactRun(s string) ([]Day, bool) {
	var days []Day
	for len(s) > 0 {
		matched := false
		// Two-letter codes first so "Tu" is not read as "T"+"u".
		for i := len(dayAbbrevs) - 1; i >= 0; i-- {
			ab := dayAbbrevs[i]
			if strings.HasPrefix(s, ab) {
				days = append(days, Day(i))
				s = s[len(ab):]
				matched = true
				break
			}
		}
		if !matched {
			return nil, false
		}
	}
	return days, len(days) > 0
}

// dayLetters is the single-letter alphabet some traffic sheets use in
// parenthesized day lists: R is Thursday, U is Sunday.
var dayLetters = map[byte]Day{
	'M': Monday, 'T': Tuesday, 'W': Wednesday, 'R': Thursday,
	'F': Friday, 'S': Saturday, 'U': Sunday,
}

// ExpandDayLetters expands a single-letter day string like "MTWRF", "SU" or
// "M-F". Distinct from ExpandDayPattern: here T is Tuesday and S Saturday.
func ExpandDayLetters(raw string) ([]Day, error) {
	s := strings.TrimSpace(raw)
	if len(s) == 3 && s[1] == '-' {
		from, ok1 := dayLetters[s[0]]
		to, ok2 := dayLetters[s[2]]
		if !ok1 || !ok2 || from > to {
			return nil, &UnknownDayPatternError{Pattern: raw}
		}
		var days []Day
		for d := from; d <= to; d++ {
			days = append(days, d)
		}
		return days, nil
	}
	var days []Day
	for i := 0; i < len(s); i++ {
		d, ok := dayLetters[s[i]]
		if !ok {
			return nil, &UnknownDayPatternError{Pattern: raw}
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, &UnknownDayPatternError{Pattern: raw}
	}
	return days, nil
}

// ExpandDayMarks reads a WorldLink-style mark grid ("X X X X X 0 0",
// Monday first) where X marks an active day and 0 or space an inactive one.
func ExpandDayMarks(marks string) ([]Day, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == 'X' || r == 'x' || r == '0' {
			return r
		}
		return -1
	}, marks)
	if cleaned == "" || len(cleaned) > 7 {
		return nil, &UnknownDayPatternError{Pattern: marks}
	}
	var days []Day
	for i, c := range cleaned {
		if c == 'X' || c == 'x' {
			days = append(days, Day(i))
		}
	}
	if len(days) == 0 {
		return nil, &UnknownDayPatternError{Pattern: marks}
	}
	return days, nil
}

// FormatDays renders a day list back to compact shorthand: contiguous runs
// become ranges ("M-F"), everything else a comma list ("M,W,F").
func FormatDays(days []Day) string {
	if len(days) == 0 {
		return ""
	}
	if len(days) == 7 {
		return "M-Su"
	}
	var parts []string
	start, end := days[0], days[0]
	flush := func() {
		switch {
		case start == end:
			parts = append(parts, start.Abbrev())
		case end == start+1:
			parts = append(parts, start.Abbrev()+","+end.Abbrev())
		default:
			parts = append(parts, start.Abbrev()+"-"+end.Abbrev())
		}
	}
	for _, d := range days[1:] {
		if d == end+1 {
			end = d
			continue
		}
		flush()
		start, end = d, d
	}
	flush()
	return strings.Join(parts, ",")
}

// ContainsDay reports whether the list includes the given day.
func ContainsDay(days []Day, d Day) bool {
	for _, x := range days {
		if x == d {
			return true
		}
	}
	return false
}

// DropSunday removes Sunday from a day list, used by the Sunday 6-7a paid
// programming rule. Returns nil if nothing remains.
func DropSunday(days []Day) []Day {
	var out []Day
	for _, d := range days {
		if d != Sunday {
			out = append(out, d)
		}
	}
	return out
}
