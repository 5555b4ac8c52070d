package agency

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/schedule"
)

// impactParser reads Impact Marketing quarterly buys. Each quarter page is a
// grid of free-text programming descriptions with "12-Jan" week columns; the
// description folds language, days and daypart into one messy string.
type impactParser struct {
	lookups *schedule.Lookups
}

func (p *impactParser) Type() ingest.OrderType { return ingest.Impact }

var (
	impactQuarterRe  = regexp.MustCompile(`Q(\d)\s*-?\s*(\d{4})`)
	impactDaysRe     = regexp.MustCompile(`(?i)(M-F|M-Su|M-Sun|Sa-Su|Sat\s*-?\s*Sun|SatSun|M-Sa|M-Sat)`)
	impactBareTimeRe = regexp.MustCompile(`(?i)(\d{1,2}[ap]-\d{1,2}[ap])`)
	impactClockRe    = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}[ap]-\d{1,2}:\d{2}[ap])`)
	impactRowRe      = regexp.MustCompile(`^(.+?)\s+\$\s*([\d,.]+|-)\s+((?:\d+\s*)+)$`)
)

func (p *impactParser) Parse(doc Document) ([]schedule.Estimate, error) {
	var estimates []schedule.Estimate
	for _, page := range doc.Pages {
		qm := impactQuarterRe.FindStringSubmatch(page)
		if qm == nil {
			continue
		}
		year, _ := strconv.Atoi(qm[2])

		est := schedule.Estimate{
			Agency: "Impact",
			Number: "Q" + qm[1] + "-" + qm[2],
			Client: fieldAfter(page, "Contact:"),
		}

		weekDates := impactWeekDates(page, year)
		for _, raw := range strings.Split(page, "\n") {
			sl, ok := p.row(strings.TrimSpace(raw), weekDates)
			if !ok {
				continue
			}
			est.Lines = append(est.Lines, sl)
		}
		if len(est.Lines) == 0 {
			continue
		}
		if len(weekDates) > 0 {
			est.FlightStart = weekDates[0]
			est.FlightEnd = weekDates[len(weekDates)-1].AddDate(0, 0, 6)
		}
		estimates = append(estimates, est)
	}
	if len(estimates) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.Impact}
	}
	return estimates, nil
}

func impactWeekDates(page string, year int) []time.Time {
	for _, line := range strings.Split(page, "\n") {
		if dates := misfitWeekDates(line, year); len(dates) >= 2 {
			return dates
		}
	}
	return nil
}

// row parses one programming row:
//
//	Korean News M-F 8a-9a $ 30.00 2 2 2 2 2 2
func (p *impactParser) row(line string, weekDates []time.Time) (schedule.ScheduleLine, bool) {
	if strings.Contains(line, "Total") || strings.Contains(line, "Monthly") {
		return schedule.ScheduleLine{}, false
	}
	m := impactRowRe.FindStringSubmatch(line)
	if m == nil {
		return schedule.ScheduleLine{}, false
	}
	program := strings.TrimSpace(m[1])
	rate := misfitCurrency(m[2])

	language, days, tr, isROS, ok := p.programSchedule(program)
	if !ok {
		return schedule.ScheduleLine{}, false
	}

	var weekly []int
	sum := 0
	for _, tok := range strings.Fields(m[3]) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			break
		}
		weekly = append(weekly, n)
		sum += n
	}
	if len(weekDates) > 0 && len(weekly) > len(weekDates) {
		weekly = weekly[:len(weekDates)]
	}
	if sum == 0 || len(weekly) == 0 {
		return schedule.ScheduleLine{}, false
	}

	return schedule.ScheduleLine{
		Days:        schedule.ApplySundayRule(days, tr),
		Time:        tr,
		WeeklySpots: weekly,
		WeekDates:   weekDates,
		Rate:        rate,
		GrossRate:   rate,
		DurationSec: 30,
		Program:     program,
		Language:    language,
		ROS:         isROS || rate.IsZero(),
	}, true
}

// programSchedule untangles language, days and daypart from a programming
// description. The irregular combined listings collapse to their agreed
// booking windows rather than being parsed literally.
func (p *impactParser) programSchedule(program string) (string, []schedule.Day, schedule.TimeRange, bool, bool) {
	clean := strings.NewReplacer("\n", "", "\r", "").Replace(program)
	upper := strings.ToUpper(clean)
	language := languageFromProgram(clean)

	resolve := func(daysPat, timePat string) ([]schedule.Day, schedule.TimeRange, bool) {
		days, err := schedule.ExpandDayPattern(daysPat)
		if err != nil {
			return nil, schedule.TimeRange{}, false
		}
		tr, err := schedule.ParseTimeRange(timePat)
		if err != nil {
			return nil, schedule.TimeRange{}, false
		}
		return days, tr, true
	}

	// Hmong airs weekend-only regardless of how the row spells it.
	if language == "Hmong" {
		if strings.Contains(upper, "ROS") {
			win, _ := p.lookups.ROSFor("hmong")
			return language, win.Days, win.Time, true, true
		}
		days, tr, ok := resolve("Sa-Su", "6p-8p")
		return language, days, tr, false, ok
	}

	if strings.Contains(upper, "ROS") {
		win, found := p.lookups.ROSFor(language)
		if !found {
			days, _ := schedule.ExpandDayPattern("M-Su")
			return language, days, schedule.TimeRange{
				Start: schedule.DefaultStartFloor,
				End:   schedule.TimeOfDay{Hour: 23, Minute: 59},
			}, true, true
		}
		return language, win.Days, win.Time, true, true
	}

	// Combined multi-daypart listings book as their envelope window.
	switch {
	case language == "Filipino" && (strings.Contains(upper, "4P-5P") || strings.Contains(upper, "6:30P-7P")):
		days, tr, ok := resolve("M-F", "4p-7p")
		return language, days, tr, false, ok
	case language == "Hindi" && (strings.Contains(upper, "1P-2P") || strings.Contains(upper, "SAT")):
		days, tr, ok := resolve("M-Su", "1p-4p")
		return language, days, tr, false, ok
	case language == "Chinese" && (strings.Contains(upper, "6A-7A") || strings.Contains(upper, "7P-9P")):
		days, tr, ok := resolve("M-Su", "6a-9p")
		return language, days, tr, false, ok
	}

	daysPat := "M-F"
	if dm := impactDaysRe.FindString(clean); dm != "" {
		daysPat = normalizeImpactDays(dm)
	}
	timePat := ""
	if tm := impactBareTimeRe.FindString(clean); tm != "" {
		timePat = tm
	} else if tm := impactClockRe.FindString(clean); tm != "" {
		timePat = tm
	}
	if timePat == "" {
		return language, nil, schedule.TimeRange{}, false, false
	}
	days, tr, ok := resolve(daysPat, strings.ToLower(timePat))
	return language, days, tr, false, ok
}

func normalizeImpactDays(raw string) string {
	s := strings.NewReplacer(" ", "", "Sun", "Su", "Sat", "Sa", "SatSun", "Sa-Su").Replace(raw)
	if s == "SaSu" {
		s = "Sa-Su"
	}
	return s
}
