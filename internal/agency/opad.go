package agency

import (
	"regexp"
	"strings"
	"time"

	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/schedule"
)

// opadParser reads opAD orders for the New York market. The schedule table
// interleaves language banner lines with day/time rows, and program names
// wrap when they outgrow the column.
type opadParser struct {
	lookups *schedule.Lookups
}

func (p *opadParser) Type() ingest.OrderType { return ingest.Opad }

var (
	opadTableHeader = "Station Day Time Program Dur"
	opadWeekRowRe   = regexp.MustCompile(`# of SPOTS PER WEEK\s*([\d/\s]+?)\s*Total STN`)
	opadRowStartRe  = regexp.MustCompile(`^(CROSSINGS TV|M-Su|M-F|M-Sa|Sa-Su|M-Th|Tu-F|M|Tu|W|Th|F|Sa|Su)\b`)
	opadDaysRe      = regexp.MustCompile(`\b(M-Su|M-F|M-Sa|Sa-Su|M-Th|Tu-F|Tu|Th|Su|Sa|M|W|F)\b`)
	opadTimeRe      = regexp.MustCompile(`(\d{1,2}:\d{2}[ap])-?\s*(\d{1,2}:\d{2}[ap])`)
	opadDurRe       = regexp.MustCompile(`\s(15|30|60)\s`)
)

// opadLanguageBanners are the standalone uppercase language rows that scope
// the lines beneath them.
var opadLanguageBanners = map[string]bool{
	"MANDARIN": true, "CANTONESE": true, "KOREAN": true, "VIETNAMESE": true,
	"FILIPINO": true, "SOUTH ASIAN": true, "PUNJABI": true, "HMONG": true,
}

func (p *opadParser) Parse(doc Document) ([]schedule.Estimate, error) {
	first := doc.Page(0)
	est := schedule.Estimate{
		Agency:  "OPAD",
		Station: "CROSSINGS TV",
		Number:  fieldAfter(first, "Estimate:", "Description:"),
		Client:  fieldAfter(first, "Client:", "Media:"),
		Product: fieldAfter(first, "Product:", "#"),
	}
	if start, end, ok := flightDates(first); ok {
		est.FlightStart, est.FlightEnd = start, end
	}

	weekDates := p.weekDates(first, est.FlightStart)
	for _, page := range doc.Pages {
		lines := p.pageLines(page, weekDates)
		est.Lines = append(est.Lines, lines...)
	}
	if len(est.Lines) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.Opad}
	}
	return []schedule.Estimate{est}, nil
}

// weekDates reads the month/day column headers sitting between the
// spots-per-week banner and the totals column.
func (p *opadParser) weekDates(page string, flightStart time.Time) []time.Time {
	m := opadWeekRowRe.FindStringSubmatch(strings.ReplaceAll(page, "\n", " "))
	if m == nil {
		return nil
	}
	year := flightStart.Year()
	if year == 1 {
		year = time.Now().Year()
	}
	return weekDatesWithYear(monthDayRe.FindAllString(m[1], -1), year)
}

func (p *opadParser) pageLines(page string, weekDates []time.Time) []schedule.ScheduleLine {
	textLines := strings.Split(page, "\n")
	start := -1
	for i, line := range textLines {
		if strings.Contains(line, opadTableHeader) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var lines []schedule.ScheduleLine
	language := ""
	i := start
	for i < len(textLines) {
		line := strings.TrimSpace(textLines[i])
		if strings.Contains(line, "Station Total:") || strings.Contains(line, "SCHEDULE TOTALS") ||
			strings.Contains(line, "Page:") {
			break
		}
		if opadLanguageBanners[line] {
			language = titleCaser.String(strings.ToLower(line))
			i++
			continue
		}
		if !opadRowStartRe.MatchString(line) {
			i++
			continue
		}
		parsed, next, ok := p.rowAt(textLines, i, len(weekDates), language)
		if !ok {
			i++
			continue
		}
		parsed.WeekDates = weekDates
		lines = append(lines, parsed)
		i = next
	}
	return lines
}

// rowAt parses one schedule row, absorbing a wrapped program name and an
// optional trailing language banner:
//
//	M-Su 7:00p-11:00p PRIME 30 5 0 0 0 5 $0.00
//	MANDARIN
func (p *opadParser) rowAt(textLines []string, idx, numWeeks int, language string) (schedule.ScheduleLine, int, bool) {
	line := strings.TrimSpace(strings.ReplaceAll(textLines[idx], "CROSSINGS TVTV", ""))

	daysMatch := opadDaysRe.FindString(line)
	if daysMatch == "" {
		return schedule.ScheduleLine{}, idx + 1, false
	}
	days, err := schedule.ExpandDayPattern(daysMatch)
	if err != nil {
		return schedule.ScheduleLine{}, idx + 1, false
	}

	timeLoc := opadTimeRe.FindStringIndex(line)
	if timeLoc == nil {
		return schedule.ScheduleLine{}, idx + 1, false
	}
	tr, err := schedule.ParseTimeRange(strings.ReplaceAll(line[timeLoc[0]:timeLoc[1]], " ", ""))
	if err != nil {
		return schedule.ScheduleLine{}, idx + 1, false
	}

	remaining := line[timeLoc[1]:]
	next := idx + 1

	durLoc := opadDurRe.FindStringSubmatchIndex(remaining)
	if durLoc == nil && next < len(textLines) {
		// Program name wrapped; the duration and numbers sit on the
		// continuation line.
		cont := strings.TrimSpace(textLines[next])
		if !opadRowStartRe.MatchString(cont) && !opadLanguageBanners[cont] {
			remaining += " " + cont
			durLoc = opadDurRe.FindStringSubmatchIndex(remaining)
			if durLoc != nil {
				next++
			}
		}
	}
	if durLoc == nil {
		return schedule.ScheduleLine{}, idx + 1, false
	}

	program := strings.TrimSpace(remaining[:durLoc[2]])
	duration := 30
	if d := strings.TrimSpace(remaining[durLoc[2]:durLoc[3]]); d != "" {
		duration = int(numbersIn(d)[0])
	}

	numbers := numbersIn(remaining[durLoc[3]:])
	weekly, _, rate, ok := rowTail(numbers, numWeeks)
	if !ok {
		return schedule.ScheduleLine{}, idx + 1, false
	}

	// A language banner directly below the row overrides the running one.
	if next < len(textLines) {
		if banner := strings.TrimSpace(textLines[next]); opadLanguageBanners[banner] {
			language = titleCaser.String(strings.ToLower(banner))
			next++
		}
	}
	if language == "" {
		language = languageFromProgram(program)
	}

	return schedule.ScheduleLine{
		Days:        schedule.ApplySundayRule(days, tr),
		Time:        tr,
		WeeklySpots: weekly,
		Rate:        rate,
		GrossRate:   rate,
		DurationSec: duration,
		Program:     program,
		Language:    language,
	}, next, true
}
