package agency

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/schedule"
)

// charmaineParser reads the in-house proposal template: one order per page,
// free-text header lines ("Advertiser ...", "Contact ...", an AIRTIME line
// carrying ":30 seconds" and the year), week columns labeled "27-Apr 4-May",
// and language rows with a daypart, a per-spot rate and weekly counts. ROS
// bonus rows book the language's rotation window at rate zero.
type charmaineParser struct {
	lookups *schedule.Lookups
}

func (p *charmaineParser) Type() ingest.OrderType { return ingest.Charmaine }

var (
	chTitleRe   = regexp.MustCompile(`Crossings TV:\s*(.+?)\s*"(.+)"`)
	chSecondsRe = regexp.MustCompile(`:(\d+)\s*seconds?`)
	chYearRe    = regexp.MustCompile(`20\d{2}`)
	chWeekOfRe  = regexp.MustCompile(`(?i)week\s+of\s+(.+?)\s+through\s+(.+?)\s*$`)
	chFlexRe    = regexp.MustCompile(`(?i)^(?:(\d{1,2})/(\d{1,2})|([A-Za-z]+)\s+(\d{1,2}))`)
	chLangRe    = regexp.MustCompile(`(?i)^(?:BONUS\s+)?(CHINESE|MANDARIN|CANTONESE|FILIPINO|TAGALOG|VIETNAMESE|HINDI|PUNJABI|SOUTH ASIAN|KOREAN|HMONG|JAPANESE)\b`)
)

var chMarkets = []struct{ keyword, code string }{
	{"central valley", "CVC"}, {"sacramento", "CVC"}, {"kbtv", "CVC"},
	{"san francisco", "SFO"}, {"ktsf", "SFO"},
	{"los angeles", "LAX"}, {"seattle", "SEA"}, {"houston", "HOU"},
	{"chicago", "CMP"}, {"minneapolis", "CMP"},
	{"washington", "WDC"}, {"new york", "NYC"}, {"dallas", "DAL"},
}

func (p *charmaineParser) Parse(doc Document) ([]schedule.Estimate, error) {
	var out []schedule.Estimate
	for i, page := range doc.Pages {
		est, ok := p.parsePage(page, i+1)
		if ok {
			out = append(out, est)
		}
	}
	if len(out) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.Charmaine}
	}
	return out, nil
}

func (p *charmaineParser) parsePage(page string, pageNum int) (schedule.Estimate, bool) {
	est := schedule.Estimate{
		Agency:  "Charmaine",
		Station: "Crossings TV",
		Number:  strconv.Itoa(pageNum),
	}

	year := time.Now().Year()
	if m := chYearRe.FindString(page); m != "" {
		year, _ = strconv.Atoi(m)
	}
	duration := 30
	if m := chSecondsRe.FindStringSubmatch(page); m != nil {
		duration, _ = strconv.Atoi(m[1])
	}
	if m := chTitleRe.FindStringSubmatch(page); m != nil {
		est.Client = strings.TrimSpace(m[1])
		est.Product = strings.TrimSpace(m[2])
	}

	var weekDates []time.Time
	for _, raw := range strings.Split(page, "\n") {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "Advertiser ") {
			est.Client = strings.TrimSpace(strings.TrimPrefix(line, "Advertiser "))
			continue
		}
		lower := strings.ToLower(line)
		for _, m := range chMarkets {
			if strings.Contains(lower, m.keyword) {
				est.Station = m.code
				break
			}
		}
		if strings.Contains(line, "AIRTIME") || strings.Contains(lower, "flight schedule") ||
			strings.Contains(lower, "week of") {
			if start, end, ok := chFlightDates(line, year); ok {
				est.FlightStart, est.FlightEnd = start, end
			}
			continue
		}
		if len(weekDates) == 0 {
			if dates := misfitWeekDates(line, year); len(dates) >= 2 {
				weekDates = dates
				continue
			}
		}
		if sl, ok := p.row(line, weekDates, duration); ok {
			sl.WeekDates = weekDates
			est.Lines = append(est.Lines, sl)
		}
	}
	if len(est.Lines) == 0 {
		return schedule.Estimate{}, false
	}

	if est.FlightStart.IsZero() && len(weekDates) > 0 {
		est.FlightStart = weekDates[0]
		est.FlightEnd = weekDates[len(weekDates)-1].AddDate(0, 0, 6)
	}
	return est, true
}

func (p *charmaineParser) row(line string, weekDates []time.Time, duration int) (schedule.ScheduleLine, bool) {
	m := chLangRe.FindStringSubmatch(line)
	if m == nil {
		return schedule.ScheduleLine{}, false
	}
	lang := titleCaser.String(strings.ToLower(m[1]))
	rest := strings.TrimSpace(line[len(m[0]):])
	lower := strings.ToLower(line)
	if strings.Contains(lower, "total paid") || strings.Contains(lower, "total bonus") ||
		strings.Contains(lower, "production") {
		return schedule.ScheduleLine{}, false
	}
	isBonus := strings.Contains(lower, "bonus")

	// The daypart runs until the rate column ("$ 35.00" or "$ -") or, on
	// bonus rows without one, the first bare count.
	dayparts := rest
	tail := ""
	if i := strings.Index(rest, "$"); i >= 0 {
		dayparts = strings.TrimSpace(rest[:i])
		tail = rest[i:]
	} else if fs := strings.Fields(rest); len(fs) > 0 {
		for j, f := range fs {
			if _, err := strconv.Atoi(f); err == nil {
				dayparts = strings.Join(fs[:j], " ")
				tail = strings.Join(fs[j:], " ")
				break
			}
		}
	}

	var (
		days []schedule.Day
		tr   schedule.TimeRange
		ros  bool
	)
	if strings.Contains(strings.ToUpper(dayparts), "ROS") || dayparts == "" {
		win, ok := p.lookups.ROSFor(lang)
		if !ok {
			return schedule.ScheduleLine{}, false
		}
		days, tr, ros = win.Days, win.Time, true
	} else {
		var ok bool
		days, tr, ok = chDaypart(dayparts)
		if !ok {
			return schedule.ScheduleLine{}, false
		}
	}

	normTail := strings.ReplaceAll(tail, "$ ", "$")
	rate, _ := parseMoney(normTail)
	var weekly []int
	for _, tok := range strings.Fields(moneyRe.ReplaceAllString(normTail, "")) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		weekly = append(weekly, n)
	}
	if len(weekDates) > 0 && len(weekly) > len(weekDates) {
		weekly = weekly[:len(weekDates)]
	}
	if len(weekly) == 0 {
		return schedule.ScheduleLine{}, false
	}

	sl := schedule.ScheduleLine{
		Days:        schedule.ApplySundayRule(days, tr),
		Time:        tr,
		WeeklySpots: weekly,
		DurationSec: duration,
		Program:     lang + " " + dayparts,
		Language:    lang,
		ROS:         ros,
	}
	if !isBonus {
		sl.Rate = rate
		sl.GrossRate = rate
	}
	return sl, true
}

// chDaypart reads a daypart like "M-F 7p-11p; Sat-Sun 7p-12a": the day union
// of every segment with the time envelope across them.
func chDaypart(s string) ([]schedule.Day, schedule.TimeRange, bool) {
	var (
		days  []schedule.Day
		seen  [7]bool
		times []string
	)
	for _, seg := range strings.Split(s, ";") {
		fields := strings.Fields(strings.TrimSpace(seg))
		if len(fields) < 2 {
			continue
		}
		segDays, err := schedule.ExpandDayPattern(fields[0])
		if err != nil {
			continue
		}
		for _, d := range segDays {
			if !seen[d] {
				seen[d] = true
				days = append(days, d)
			}
		}
		times = append(times, strings.Join(fields[1:], " "))
	}
	if len(days) == 0 || len(times) == 0 {
		return nil, schedule.TimeRange{}, false
	}
	tr, err := schedule.ParseTimeRange(strings.Join(times, "; "))
	if err != nil {
		return nil, schedule.TimeRange{}, false
	}
	return days, tr, true
}

// chFlightDates reads "3/23/2026 -5/24/2026" and "Week of 4/27 through May 7"
// headers.
func chFlightDates(line string, year int) (time.Time, time.Time, bool) {
	if start, end, ok := flightDates(line); ok {
		return start, end, true
	}
	m := chWeekOfRe.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}
	start, ok1 := chFlexDate(m[1], year)
	end, ok2 := chFlexDate(m[2], year)
	return start, end, ok1 && ok2
}

// chFlexDate reads "4/27", "May 7" or "October 31" with an assumed year.
func chFlexDate(s string, year int) (time.Time, bool) {
	m := chFlexRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}
	if m[1] != "" {
		mo, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if mo < 1 || mo > 12 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(mo), day, 0, 0, 0, 0, time.UTC), true
	}
	t, err := time.Parse("January 2 2006", m[3]+" "+m[4]+" "+strconv.Itoa(year))
	if err != nil {
		t, err = time.Parse("Jan 2 2006", m[3]+" "+m[4]+" "+strconv.Itoa(year))
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}
