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

// admerasiaParser reads Admerasia broadcast orders (McDonald's buys). The
// layout is a calendar grid: header fields (Order Number, Order Date, DMA,
// Campaign Period), then a "Broadcast Order" table whose rows carry the
// program with a day-letter pattern like "(MTWRF)", a timezone-prefixed
// clock range, a net rate and per-day spot columns ending in a row total.
type admerasiaParser struct {
	lookups *schedule.Lookups
}

func (p *admerasiaParser) Type() ingest.OrderType { return ingest.Admerasia }

var (
	admOrderNumRe  = regexp.MustCompile(`(?i)Order Number:\s*(\S+)`)
	admDMARe       = regexp.MustCompile(`(?i)DMA:\s*(.+)`)
	admPeriodRe    = regexp.MustCompile(`(?i)Campaign Period:\s*(\d+/\d+/\d+)\s*-\s*(\d+/\d+/\d+)`)
	admTimeRe      = regexp.MustCompile(`(?:PST|CST|EST|MST|PDT|CDT|EDT|MDT|PT|CT|ET|MT)?\s*(\d+:\d+[ap]?-\d+:\d+[ap]?)`)
	admDayLetterRe = regexp.MustCompile(`\(([MTWRFSU-]+)\)`)
	admLengthRe    = regexp.MustCompile(`:(\d+)s`)
	admRowClockRe  = regexp.MustCompile(`\d+:\d+[ap]?-\d+:\d+[ap]?`)
	admRateTokRe   = regexp.MustCompile(`^[\d.]+$`)
)

var admMarkets = map[string]string{
	"SEATTLE": "SEA", "SAN FRANCISCO": "SFO", "LOS ANGELES": "LAX",
	"NEW YORK": "NYC", "HOUSTON": "HOU", "WASHINGTON DC": "WDC",
	"SACRAMENTO": "CVC", "DALLAS": "DAL",
}

func (p *admerasiaParser) Parse(doc Document) ([]schedule.Estimate, error) {
	text := doc.FullText

	est := schedule.Estimate{
		Agency: "Admerasia",
		Client: "McDonald's",
	}
	if m := admOrderNumRe.FindStringSubmatch(text); m != nil {
		est.Number = m[1]
	}
	est.Station = admMarket(text)

	var weekDates []time.Time
	if m := admPeriodRe.FindStringSubmatch(text); m != nil {
		start, ok1 := parseUSDate(m[1])
		end, ok2 := parseUSDate(m[2])
		if ok1 && ok2 {
			est.FlightStart, est.FlightEnd = start, end
			for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
				weekDates = append(weekDates, d)
			}
		}
	}
	if len(weekDates) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.Admerasia}
	}

	lang := admLanguage(text)
	length := 15
	if m := admLengthRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			length = n
		}
	}

	inTable := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if strings.Contains(line, "Broadcast Order") {
			inTable = true
			continue
		}
		if !inTable {
			continue
		}
		if strings.Contains(line, "Order Total") || strings.Contains(line, "Grand Total") ||
			strings.HasPrefix(line, "Note:") || strings.HasPrefix(line, "*") {
			break
		}
		sl, ok := p.row(line, weekDates, lang, length)
		if !ok {
			continue
		}
		est.Lines = append(est.Lines, sl)
	}
	if len(est.Lines) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.Admerasia}
	}
	return []schedule.Estimate{est}, nil
}

func (p *admerasiaParser) row(line string, weekDates []time.Time, lang string, length int) (schedule.ScheduleLine, bool) {
	if !admRowClockRe.MatchString(line) || !strings.Contains(line, "$") {
		return schedule.ScheduleLine{}, false
	}
	loc := admTimeRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return schedule.ScheduleLine{}, false
	}
	clock := line[loc[2]:loc[3]]
	tr, err := schedule.ParseTimeRange(clock)
	if err != nil {
		return schedule.ScheduleLine{}, false
	}

	program := strings.TrimSpace(line[:loc[0]])
	// A ":15s ACM ..." version prefix sometimes leads the program cell.
	if i := strings.Index(program, "s "); i > 0 && admLengthRe.MatchString(program[:i+1]) {
		program = strings.TrimSpace(program[i+2:])
	}

	days := []schedule.Day{
		schedule.Monday, schedule.Tuesday, schedule.Wednesday,
		schedule.Thursday, schedule.Friday, schedule.Saturday, schedule.Sunday,
	}
	if m := admDayLetterRe.FindStringSubmatch(program); m != nil {
		letters := m[1]
		if len(letters) > 3 {
			letters = strings.ReplaceAll(letters, "-", "")
		}
		if expanded, err := schedule.ExpandDayLetters(letters); err == nil {
			days = expanded
		}
		program = strings.TrimSpace(admDayLetterRe.ReplaceAllString(program, ""))
	}
	if program == "" || len(program) < 3 {
		return schedule.ScheduleLine{}, false
	}

	dollar := strings.Index(line, "$")
	if dollar < 0 {
		return schedule.ScheduleLine{}, false
	}
	after := line[dollar+1:]
	// Rates come apart in extraction ("$ 2 9.75"); glue digits back together
	// up to the first integer-only spot column.
	rate, rest := admRate(after)

	// Spot columns run to the second dollar sign, last number is the total.
	if i := strings.Index(rest, "$"); i >= 0 {
		rest = rest[:i]
	}
	var cols []int
	for _, tok := range strings.Fields(rest) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		cols = append(cols, n)
	}
	if len(cols) < 2 {
		return schedule.ScheduleLine{}, false
	}
	cols = cols[:len(cols)-1]

	return schedule.ScheduleLine{
		Days:        days,
		Time:        tr,
		WeeklySpots: admWeekly(cols, len(weekDates)),
		WeekDates:   weekDates,
		Rate:        rate,
		GrossRate:   schedule.GrossFromNet(rate),
		DurationSec: length,
		Program:     program,
		Language:    lang,
	}, true
}

// admRate reads a possibly space-split decimal rate and returns the slice of
// the line after it.
func admRate(after string) (decimal.Decimal, string) {
	fields := strings.Fields(after)
	var parts []string
	consumed := 0
	for i, f := range fields {
		if !admRateTokRe.MatchString(f) {
			break
		}
		parts = append(parts, f)
		consumed = i + 1
		if strings.Contains(f, ".") {
			break
		}
	}
	d, err := decimal.NewFromString(strings.Join(parts, ""))
	if err != nil {
		return decimal.Zero, after
	}
	return d, strings.Join(fields[consumed:], " ")
}

// admWeekly folds per-day calendar columns into the week axis. Columns that
// already match the axis pass through as weekly counts.
func admWeekly(cols []int, weeks int) []int {
	if weeks < 1 {
		weeks = 1
	}
	if len(cols) == weeks {
		return cols
	}
	out := make([]int, weeks)
	for i, n := range cols {
		w := i * weeks / len(cols)
		out[w] += n
	}
	return out
}

func admLanguage(text string) string {
	switch {
	case strings.Contains(text, "Vietnamese"):
		return "Vietnamese"
	case strings.Contains(text, "Taglish") || strings.Contains(text, "Filipino") || strings.Contains(text, "Tagalog"):
		return "Filipino"
	default:
		return "Chinese"
	}
}

func admMarket(text string) string {
	m := admDMARe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	dma := strings.TrimSpace(strings.SplitN(m[1], "No religious", 2)[0])
	first := strings.TrimSpace(strings.FieldsFunc(dma, func(r rune) bool { return r == ',' || r == '/' })[0])
	if code, ok := admMarkets[strings.ToUpper(first)]; ok {
		return code
	}
	return first
}
