package agency

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/schedule"
)

// daviselenParser reads Davis Elen brand time schedules. Page one is the
// order cover (Order#, Client, Product, Estimate); the schedule page carries
// a PERIOD FROM/TO window in "JAN26/26" form, week columns split across an
// "AD JAN FEB FEB" month line and the day numbers inside the column header,
// and numbered rows like "001 M-F 8-9P Mandarin News :30 RO 1 1 1 3 180.00".
type daviselenParser struct{}

func (p *daviselenParser) Type() ingest.OrderType { return ingest.Daviselen }

var (
	dvOrderRe     = regexp.MustCompile(`(?i)Order#?\s*(\d+)`)
	dvEstimateRe  = regexp.MustCompile(`ESTIMATE\s+(\d+)`)
	dvPeriodRe    = regexp.MustCompile(`PERIOD FROM\s+([A-Z]+\d+/\d+)\s+TO\s+([A-Z]+\d+/\d+)`)
	dvClientRe    = regexp.MustCompile(`CLIENT\s+[A-Z]+\s+(.+?)\s*Market`)
	dvProductRe   = regexp.MustCompile(`PRODUCT\s+[A-Z]+\s+(.+?)(?:\n|ESTIMATE)`)
	dvMonthLineRe = regexp.MustCompile(`AD\s+((?:[A-Z]{3}\s*)+)`)
	dvDayLineRe   = regexp.MustCompile(`LINE#\s+DAY\(S\)\s+TIME\s+PROGRAM\s+SIZE\s+DP\s+([\d\s]+)\s+TOT`)
	dvRowRe       = regexp.MustCompile(`^\d{3}\s+`)
	dvDurRe       = regexp.MustCompile(`^:\d+$`)
	dvDateRe      = regexp.MustCompile(`^([A-Z]+)(\d+)/(\d+)$`)
)

var dvMonths = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

func (p *daviselenParser) Parse(doc Document) ([]schedule.Estimate, error) {
	text := doc.FullText

	est := schedule.Estimate{
		Agency:  "Davis Elen",
		Station: "CROSSINGS TV",
	}
	if m := dvEstimateRe.FindStringSubmatch(text); m != nil {
		est.Number = m[1]
	} else if m := dvOrderRe.FindStringSubmatch(text); m != nil {
		est.Number = m[1]
	}
	if m := dvClientRe.FindStringSubmatch(text); m != nil {
		est.Client = strings.TrimSpace(m[1])
	} else {
		est.Client = ingest.ExtractClientName(doc.Page(0), doc.Page(1), ingest.Daviselen)
	}
	if m := dvProductRe.FindStringSubmatch(text); m != nil {
		est.Product = strings.TrimSpace(m[1])
	}

	m := dvPeriodRe.FindStringSubmatch(text)
	if m == nil {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.Daviselen}
	}
	start, ok1 := dvDate(m[1])
	end, ok2 := dvDate(m[2])
	if !ok1 || !ok2 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.Daviselen}
	}
	est.FlightStart, est.FlightEnd = start, end

	weekDates := dvWeekDates(text, start.Year())
	if len(weekDates) == 0 {
		weekDates = schedule.WeekAxisFromFlight(start, weeksBetween(start, end))
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if !dvRowRe.MatchString(line) {
			continue
		}
		sl, ok := dvRow(line, weekDates)
		if !ok {
			continue
		}
		sl.WeekDates = weekDates
		est.Lines = append(est.Lines, sl)
	}
	if len(est.Lines) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.Daviselen}
	}
	return []schedule.Estimate{est}, nil
}

func dvRow(line string, weekDates []time.Time) (schedule.ScheduleLine, bool) {
	parts := strings.Fields(line)
	if len(parts) < 6 {
		return schedule.ScheduleLine{}, false
	}

	days, err := schedule.ExpandDayPattern(dvNormDays(parts[1]))
	if err != nil {
		return schedule.ScheduleLine{}, false
	}
	tr, err := schedule.ParseTimeRange(strings.ToLower(parts[2]))
	if err != nil {
		return schedule.ScheduleLine{}, false
	}

	// Program runs until the ":30"-style size token; the DP code after it is
	// skipped.
	idx := 3
	var programParts []string
	for idx < len(parts) && !dvDurRe.MatchString(parts[idx]) {
		programParts = append(programParts, parts[idx])
		idx++
	}
	if idx >= len(parts) {
		return schedule.ScheduleLine{}, false
	}
	duration, _ := strconv.Atoi(strings.TrimPrefix(parts[idx], ":"))
	idx += 2

	tail := parts[idx:]
	if len(tail) < 2 {
		return schedule.ScheduleLine{}, false
	}
	rate, err := decimal.NewFromString(strings.ReplaceAll(tail[len(tail)-1], ",", ""))
	if err != nil {
		return schedule.ScheduleLine{}, false
	}
	var weekly []int
	for _, tok := range tail[:len(tail)-2] {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return schedule.ScheduleLine{}, false
		}
		weekly = append(weekly, n)
	}
	// Zero weeks drop out of the text layer, so a short row means the
	// leading weeks were dark.
	if len(weekly) < len(weekDates) {
		weekly = append(make([]int, len(weekDates)-len(weekly)), weekly...)
	} else if len(weekly) > len(weekDates) {
		weekly = weekly[:len(weekDates)]
	}

	program := strings.Join(programParts, " ")
	return schedule.ScheduleLine{
		Days:        days,
		Time:        tr,
		WeeklySpots: weekly,
		Rate:        rate,
		GrossRate:   rate,
		DurationSec: duration,
		Program:     program,
		Language:    languageFromProgram(program),
	}, true
}

// dvWeekDates pairs the "AD JAN FEB FEB" month row with the day numbers in
// the column header line.
func dvWeekDates(text string, year int) []time.Time {
	mm := dvMonthLineRe.FindStringSubmatch(text)
	dm := dvDayLineRe.FindStringSubmatch(text)
	if mm == nil || dm == nil {
		return nil
	}
	months := strings.Fields(mm[1])
	days := strings.Fields(dm[1])
	var dates []time.Time
	for i := 0; i < len(months) && i < len(days); i++ {
		mo, ok := dvMonths[months[i]]
		if !ok {
			continue
		}
		d, err := strconv.Atoi(days[i])
		if err != nil {
			continue
		}
		y := year
		if len(dates) > 0 && mo < dates[len(dates)-1].Month() {
			y++
		}
		dates = append(dates, time.Date(y, mo, d, 0, 0, 0, 0, time.UTC))
	}
	return dates
}

// dvDate reads the "JAN26/26" period form.
func dvDate(s string) (time.Time, bool) {
	m := dvDateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}
	mo, ok := dvMonths[m[1]]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[2])
	yy, _ := strconv.Atoi(m[3])
	return time.Date(2000+yy, mo, day, 0, 0, 0, 0, time.UTC), true
}

// dvNormDays folds the all-caps day shorthands ("SA-SU", "M-SU") onto the
// canonical mixed-case ones.
func dvNormDays(s string) string {
	parts := strings.Split(strings.ToUpper(s), "-")
	for i, p := range parts {
		switch p {
		case "SA":
			parts[i] = "Sa"
		case "SU":
			parts[i] = "Su"
		case "TU":
			parts[i] = "Tu"
		case "TH":
			parts[i] = "Th"
		}
	}
	return strings.Join(parts, "-")
}
