package schedule

import "strings"

// ROSWindow is the run-of-schedule rotation booked when an order asks for a
// language block without naming a daypart.
type ROSWindow struct {
	Days []Day
	Time TimeRange
}

// Lookups bundles the station-side tables parsers consult: ROS rotations per
// language, program-code prefixes per language, and back-to-back separation
// rules per agency. Build one with DefaultLookups and inject it; parsers
// never mutate it.
type Lookups struct {
	ros         map[string]ROSWindow
	prefixes    map[string][]string
	separations map[string]Separation
}

// DefaultLookups returns the standard station tables.
func DefaultLookups() *Lookups {
	return &Lookups{
		ros: map[string]ROSWindow{
			"chinese":     {Days: daySpan(Monday, Sunday), Time: mustRange(6, 0, 23, 59)},
			"filipino":    {Days: daySpan(Monday, Sunday), Time: mustRange(16, 0, 19, 0)},
			"korean":      {Days: daySpan(Monday, Sunday), Time: mustRange(8, 0, 10, 0)},
			"vietnamese":  {Days: daySpan(Monday, Sunday), Time: mustRange(11, 0, 13, 0)},
			"hmong":       {Days: daySpan(Saturday, Sunday), Time: mustRange(18, 0, 20, 0)},
			"south asian": {Days: daySpan(Monday, Sunday), Time: mustRange(13, 0, 16, 0)},
			"japanese":    {Days: daySpan(Monday, Friday), Time: mustRange(10, 0, 11, 0)},
		},
		prefixes: map[string][]string{
			"chinese":     {"C", "M"},
			"filipino":    {"T"},
			"korean":      {"K"},
			"vietnamese":  {"V"},
			"hmong":       {"Hm"},
			"south asian": {"SA", "P"},
			"hindi":       {"SA"},
			"punjabi":     {"P"},
			"japanese":    {"J"},
		},
		separations: defaultSeparations(),
	}
}

// ROSFor returns the run-of-schedule window for a language, if one exists.
func (lk *Lookups) ROSFor(language string) (ROSWindow, bool) {
	w, ok := lk.ros[NormalizeLanguage(language)]
	return w, ok
}

// PrefixesFor returns the program-code prefixes assigned to a language.
func (lk *Lookups) PrefixesFor(language string) []string {
	return lk.prefixes[NormalizeLanguage(language)]
}

// LanguageForCode maps a program code back to its language by prefix,
// longest prefix first so "Hm" beats nothing and "SA" beats "S".
func (lk *Lookups) LanguageForCode(code string) (string, bool) {
	best, bestLen := "", 0
	for lang, prefixes := range lk.prefixes {
		for _, p := range prefixes {
			if strings.HasPrefix(code, p) && len(p) > bestLen {
				best, bestLen = lang, len(p)
			}
		}
	}
	return best, bestLen > 0
}

// NormalizeLanguage folds the spellings orders actually use onto table keys.
func NormalizeLanguage(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "mandarin", "cantonese":
		return "chinese"
	case "tagalog":
		return "filipino"
	case "southasian", "south-asian", "s. asian":
		return "south asian"
	}
	return s
}

func daySpan(from, to Day) []Day {
	var days []Day
	for d := from; d <= to; d++ {
		days = append(days, d)
	}
	return days
}

func mustRange(sh, sm, eh, em int) TimeRange {
	return TimeRange{
		Start: TimeOfDay{Hour: sh, Minute: sm},
		End:   TimeOfDay{Hour: eh, Minute: em},
	}
}
