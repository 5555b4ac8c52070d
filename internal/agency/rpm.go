package agency

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/schedule"
)

// rpmParser reads RPM buys. Rows start with compact day runs ("MTuWThF"),
// the language airs on the following line, and Chrome-printed copies split
// times around the column gap.
type rpmParser struct {
	lookups *schedule.Lookups
}

func (p *rpmParser) Type() ingest.OrderType { return ingest.RPM }

var (
	rpmRowStartRe  = regexp.MustCompile(`^(MTuWThFSaSu|MTuWThF|SaSu)\b`)
	rpmSplitTimeRe = regexp.MustCompile(`(\d{1,2}:\d{2}[ap])-\s+(RT|DT)`)
	rpmSpacedRe    = regexp.MustCompile(`(\d+)\s*:\s*(\d+)([ap])`)
	rpmSepRe       = regexp.MustCompile(`Separation between spots:\s*(\d+)`)
)

func (p *rpmParser) Parse(doc Document) ([]schedule.Estimate, error) {
	text := doc.FullText

	est := schedule.Estimate{
		Agency:  "RPM",
		Number:  fieldAfter(text, "Estimate:", "Description:"),
		Client:  fieldAfter(text, "Client:", "Estimate:"),
		Product: fieldAfter(text, "Product:", "Flight"),
		Station: rpmMarketCode(fieldAfter(text, "Market:", "Flight")),
	}
	if start, end, ok := flightDates(text); ok {
		est.FlightStart, est.FlightEnd = start, end
	}

	est.Lines = p.scheduleLines(text)
	if len(est.Lines) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.RPM}
	}
	for i := range est.Lines {
		est.Lines[i].WeekDates = schedule.WeekAxisFromFlight(est.FlightStart, len(est.Lines[i].WeeklySpots))
	}
	return []schedule.Estimate{est}, nil
}

// SeparationMinutes reads the order's own separation clause when present;
// otherwise the agency default applies.
func (p *rpmParser) SeparationMinutes(text string) int {
	if m := rpmSepRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}
	return p.lookups.SeparationFor("rpm").Product
}

func (p *rpmParser) scheduleLines(text string) []schedule.ScheduleLine {
	textLines := strings.Split(text, "\n")
	// Chrome print artifacts: "11 :00a" for "11:00a".
	for i, line := range textLines {
		textLines[i] = rpmSpacedRe.ReplaceAllString(line, "$1:$2$3")
	}

	var lines []schedule.ScheduleLine
	i := 0
	for i < len(textLines) {
		line := strings.TrimSpace(textLines[i])
		if !rpmRowStartRe.MatchString(line) {
			i++
			continue
		}

		// Split time: "6:00a- RT ..." with the end clock on the next line.
		if m := rpmSplitTimeRe.FindStringSubmatch(line); m != nil && i+1 < len(textLines) {
			end := strings.TrimSpace(textLines[i+1])
			line = strings.Replace(line, m[1]+"- "+m[2], m[1]+"-"+end+" "+m[2], 1)
			i++
		}

		parsed, consumed, ok := p.rowAt(textLines, i, line)
		if !ok {
			i++
			continue
		}
		lines = append(lines, parsed)
		i += consumed
	}
	return lines
}

// rowAt parses one daypart row plus its language line:
//
//	MTuWThF 6:00a-8:00p RT $36.00 30 5 5 5 5 5 5 30
//	CHINESE
func (p *rpmParser) rowAt(textLines []string, idx int, line string) (schedule.ScheduleLine, int, bool) {
	parts := strings.Fields(line)
	if len(parts) < 6 {
		return schedule.ScheduleLine{}, 1, false
	}

	days, err := schedule.ExpandDayPattern(parts[0])
	if err != nil {
		return schedule.ScheduleLine{}, 1, false
	}
	tr, err := schedule.ParseTimeRange(parts[1])
	if err != nil {
		return schedule.ScheduleLine{}, 1, false
	}
	rate, err := decimal.NewFromString(strings.NewReplacer("$", "", ",", "").Replace(parts[3]))
	if err != nil {
		return schedule.ScheduleLine{}, 1, false
	}
	duration, err := strconv.Atoi(parts[4])
	if err != nil {
		duration = 30
	}

	var tail []int
	for _, tok := range parts[5:] {
		n, err := strconv.Atoi(tok)
		if err != nil {
			break
		}
		tail = append(tail, n)
	}
	if len(tail) == 0 {
		return schedule.ScheduleLine{}, 1, false
	}
	// The last count is the spot total when it equals the sum of the rest.
	weekly := tail
	if len(tail) > 1 {
		sum := 0
		for _, n := range tail[:len(tail)-1] {
			sum += n
		}
		if tail[len(tail)-1] == sum {
			weekly = tail[:len(tail)-1]
		}
	}

	consumed := 1
	language := ""
	if idx+1 < len(textLines) {
		next := strings.TrimSpace(textLines[idx+1])
		if next != "" && !rpmRowStartRe.MatchString(next) && !strings.HasPrefix(next, "Total") {
			language = titleCaser.String(strings.ToLower(next))
			consumed = 2
		}
	}
	ros := strings.Contains(strings.ToLower(language), "rotation") ||
		strings.Contains(strings.ToLower(language), "asian")
	if ros {
		language = ""
	}

	return schedule.ScheduleLine{
		Days:        schedule.ApplySundayRule(days, tr),
		Time:        tr,
		WeeklySpots: weekly,
		Rate:        rate,
		GrossRate:   rate,
		DurationSec: duration,
		Program:     language,
		Language:    language,
		ROS:         ros,
	}, consumed, true
}

// rpmMarketCode folds market names onto station codes.
func rpmMarketCode(market string) string {
	m := strings.ToLower(market)
	switch {
	case strings.Contains(m, "seattle") || strings.Contains(m, "tacoma"):
		return "SEA"
	case strings.Contains(m, "san francisco") || strings.Contains(m, "oakland"):
		return "SFO"
	case strings.Contains(m, "sacramento") || strings.Contains(m, "stockton"):
		return "CVC"
	}
	return "SEA"
}
