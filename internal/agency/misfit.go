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

// misfitParser reads Misfit media plans. One document books several markets;
// each market block repeats the week-date header ("26-Jan 2-Feb ...") and
// lists language-block rows, with ROS rows resolving through the station's
// rotation table.
type misfitParser struct {
	lookups *schedule.Lookups
}

func (p *misfitParser) Type() ingest.OrderType { return ingest.Misfit }

var (
	misfitWeekRe = regexp.MustCompile(`\b(\d{1,2})-([A-Za-z]{3})\b`)
	misfitRowRe  = regexp.MustCompile(`^(.+?)\s+((?:M|Tu|W|Th|F|Sa|Su|Sat|Sun|Mon|Fri)[^$]*?|ROS)\s+\$\s*([\d,.]+|-)\s+(.*)$`)
)

var misfitMarkets = map[string]string{
	"LOS ANGELES": "LAX", "LAX": "LAX",
	"SAN FRANCISCO": "SFO", "SFO": "SFO",
	"SACRAMENTO": "CVC", "CVC": "CVC", "CENTRAL VALLEY": "CVC",
}

func (p *misfitParser) Parse(doc Document) ([]schedule.Estimate, error) {
	text := doc.FullText

	est := schedule.Estimate{
		Agency: "Misfit",
		Client: fieldAfter(text, "Contact:"),
	}

	year := time.Now().Year()
	if t, ok := parseUSDate(fieldAfter(text, "Date:")); ok {
		year = t.Year()
	}

	var (
		weekDates []time.Time
		market    = ""
	)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if code, ok := misfitMarket(line); ok {
			market = code
		}
		if dates := misfitWeekDates(line, year); len(dates) >= 2 {
			weekDates = dates
			continue
		}
		sl, ok := p.row(line, weekDates)
		if !ok {
			continue
		}
		sl.WeekDates = weekDates
		if market != "" {
			sl.Program = strings.TrimSpace(market + " " + sl.Program)
		}
		est.Lines = append(est.Lines, sl)
	}
	if len(est.Lines) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.Misfit}
	}

	if len(weekDates) > 0 {
		est.FlightStart = weekDates[0]
		est.FlightEnd = weekDates[len(weekDates)-1].AddDate(0, 0, 6)
	}
	return []schedule.Estimate{est}, nil
}

// row parses one language-block line:
//
//	Cantonese News M-F 7p-8p $ 117.65 3 3 3 3 12 $ 1,411.80 $ 1,305.92
//	Chinese ROS $ - 5 5 5 5 20 $ - $ -
func (p *misfitParser) row(line string, weekDates []time.Time) (schedule.ScheduleLine, bool) {
	m := misfitRowRe.FindStringSubmatch(line)
	if m == nil {
		return schedule.ScheduleLine{}, false
	}
	language := strings.TrimSpace(m[1])
	program := strings.TrimSpace(m[2])
	rate := misfitCurrency(m[3])

	var days []schedule.Day
	var tr schedule.TimeRange
	var isROS bool
	var err error

	if program == "ROS" {
		isROS = true
		win, ok := p.lookups.ROSFor(language)
		if !ok {
			win, ok = p.lookups.ROSFor(languageFromProgram(language))
		}
		if !ok {
			return schedule.ScheduleLine{}, false
		}
		days, tr = win.Days, win.Time
	} else {
		fields := strings.Fields(program)
		if len(fields) < 2 {
			return schedule.ScheduleLine{}, false
		}
		days, err = schedule.ExpandDayPattern(fields[0])
		if err != nil {
			return schedule.ScheduleLine{}, false
		}
		tr, err = schedule.ParseTimeRange(strings.Join(fields[1:], " "))
		if err != nil {
			return schedule.ScheduleLine{}, false
		}
	}

	var weekly []int
	for _, tok := range strings.Fields(m[4]) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			break
		}
		weekly = append(weekly, n)
	}
	if len(weekDates) > 0 && len(weekly) > len(weekDates) {
		// Tail past the week columns is the spot total.
		weekly = weekly[:len(weekDates)]
	}
	if len(weekly) == 0 {
		return schedule.ScheduleLine{}, false
	}

	return schedule.ScheduleLine{
		Days:        schedule.ApplySundayRule(days, tr),
		Time:        tr,
		WeeklySpots: weekly,
		Rate:        rate,
		GrossRate:   rate,
		DurationSec: 30,
		Program:     language,
		Language:    languageFromProgram(language),
		ROS:         isROS,
	}, true
}

func misfitMarket(line string) (string, bool) {
	upper := strings.ToUpper(line)
	for name, code := range misfitMarkets {
		if strings.Contains(upper, name) {
			return code, true
		}
	}
	return "", false
}

// misfitWeekDates reads "26-Jan 2-Feb ..." headers, rolling the year when
// the columns cross into January.
func misfitWeekDates(line string, year int) []time.Time {
	ms := misfitWeekRe.FindAllStringSubmatch(line, -1)
	if len(ms) < 2 {
		return nil
	}
	var dates []time.Time
	prevMonth := 0
	for _, m := range ms {
		t, err := time.Parse("2-Jan-2006", m[1]+"-"+m[2]+"-"+strconv.Itoa(year))
		if err != nil {
			continue
		}
		if prevMonth > int(t.Month()) {
			year++
			t = t.AddDate(1, 0, 0)
		}
		prevMonth = int(t.Month())
		dates = append(dates, t)
	}
	return dates
}

// misfitCurrency reads the plan's money format: "$ 117.65", "$ 6 ,000.15",
// or a bare dash for zero.
func misfitCurrency(s string) decimal.Decimal {
	cleaned := strings.NewReplacer("$", "", " ", "", ",", "").Replace(strings.TrimSpace(s))
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
