package agency

import (
	"regexp"
	"strings"
	"time"

	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/schedule"
)

// tcaaParser reads TCAA annual cable buys. One document carries many
// estimates, each its own contract: every page with an estimate header and a
// spots-per-week grid starts a new one, and rows accumulate until the next
// header page.
type tcaaParser struct {
	lookups *schedule.Lookups
}

func (p *tcaaParser) Type() ingest.OrderType { return ingest.TCAA }

const tcaaStation = "CRTV-Cable"

var (
	tcaaTableHeader = "Station Day DP Time Program"
	rowTimeRe       = regexp.MustCompile(`(\d{1,2}:\d{2}[ap])-?\s*(\d{1,2}:\d{2}[ap])`)
)

func (p *tcaaParser) Parse(doc Document) ([]schedule.Estimate, error) {
	var (
		estimates []schedule.Estimate
		current   *schedule.Estimate
		weekDates []time.Time
	)
	for _, page := range doc.Pages {
		if !strings.Contains(page, "Estimate:") || !strings.Contains(page, "# of SPOTS PER WEEK") {
			continue
		}
		est, ok := tcaaHeader(page)
		if !ok {
			continue
		}
		if current != nil && len(current.Lines) > 0 {
			estimates = append(estimates, *current)
		}
		current = &est
		weekDates = tcaaWeekDates(page, est.FlightStart)

		lines, err := p.tableLines(page, weekDates, est.FlightStart)
		if err != nil {
			return nil, &ingest.ParseError{OrderType: ingest.TCAA, Stage: "schedule table", Err: err}
		}
		current.Lines = append(current.Lines, lines...)
	}
	if current != nil && len(current.Lines) > 0 {
		estimates = append(estimates, *current)
	}
	if len(estimates) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.TCAA}
	}
	return estimates, nil
}

func tcaaHeader(page string) (schedule.Estimate, bool) {
	est := schedule.Estimate{
		Agency:  "TCAA",
		Station: tcaaStation,
		Number:  fieldAfter(page, "Estimate:", "Description:", "Flight Date:"),
		Product: fieldAfter(page, "Description:", "Product:"),
		Client:  fieldAfter(page, "Client:"),
	}
	if est.Number == "" {
		return schedule.Estimate{}, false
	}
	if m := fieldAfter(page, "Market:"); m != "" {
		est.Station = tcaaStation + " " + m
	}
	if start, end, ok := flightDates(page); ok {
		est.FlightStart, est.FlightEnd = start, end
	}
	return est, true
}

// tcaaWeekDates reads the week columns off the table header row. The
// columns carry month/day only; the year comes from the flight start.
func tcaaWeekDates(page string, flightStart time.Time) []time.Time {
	for _, line := range strings.Split(page, "\n") {
		if !strings.Contains(line, tcaaTableHeader) {
			continue
		}
		return weekDatesWithYear(monthDayRe.FindAllString(line, -1), flightStart.Year())
	}
	return nil
}

func (p *tcaaParser) tableLines(page string, weekDates []time.Time, flightStart time.Time) ([]schedule.ScheduleLine, error) {
	textLines := strings.Split(page, "\n")
	start := -1
	for i, line := range textLines {
		if strings.Contains(line, tcaaTableHeader) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, nil
	}

	var lines []schedule.ScheduleLine
	i := start
	for i < len(textLines) {
		line := textLines[i]
		if strings.Contains(line, "Station Total:") || strings.Contains(line, "SCHEDULE TOTALS") {
			break
		}
		if !strings.HasPrefix(line, tcaaStation) {
			i++
			continue
		}
		parsed, next, err := p.rowAt(textLines, i, weekDates)
		if err != nil {
			i++
			continue
		}
		if totalSpots(parsed.WeeklySpots) == 0 {
			i = next
			continue
		}
		lines = append(lines, parsed)
		i = next
	}
	return lines, nil
}

// rowAt parses one station row plus the program-name lines wrapped below it.
//
//	CRTV-Cable M-Su RT 6:00a- 7:00a 0.0 30 14 0 14 14 42 $25.00 $0.00
//	Mandarin News
func (p *tcaaParser) rowAt(textLines []string, idx int, weekDates []time.Time) (schedule.ScheduleLine, int, error) {
	line := textLines[idx]
	parts := strings.Fields(line)
	if len(parts) < 8 {
		return schedule.ScheduleLine{}, idx + 1, &ingest.UnrecognizedLayoutError{Hint: "short station row"}
	}

	days, err := schedule.ExpandDayPattern(parts[1])
	if err != nil {
		return schedule.ScheduleLine{}, idx + 1, err
	}

	timeMatch := rowTimeRe.FindString(line)
	if timeMatch == "" {
		return schedule.ScheduleLine{}, idx + 1, &schedule.AmbiguousTimeError{Raw: line}
	}
	tr, err := schedule.ParseTimeRange(strings.ReplaceAll(timeMatch, " ", ""))
	if err != nil {
		return schedule.ScheduleLine{}, idx + 1, err
	}

	// Numeric tail after the time: rating, duration, weekly spots, total,
	// rate, CPP. Rating and CPP are always zero in these exports.
	numbers := numbersIn(rowTimeRe.ReplaceAllString(line, " "))
	if len(numbers) < 2+len(weekDates) {
		return schedule.ScheduleLine{}, idx + 1, &ingest.UnrecognizedLayoutError{Hint: "short numeric tail"}
	}
	duration := int(numbers[1])
	weekly, _, rate, _ := rowTail(numbers[2:], len(weekDates))

	// Program name wraps onto the lines below the row.
	var programParts []string
	next := idx + 1
	for next < len(textLines) {
		cont := strings.TrimSpace(textLines[next])
		if cont == "" || strings.HasPrefix(cont, tcaaStation) || strings.HasPrefix(cont, "Station Total") {
			break
		}
		if strings.ContainsAny(cont, "$") || strings.Contains(cont, "Total") ||
			strings.Contains(cont, "Spots Per Week") {
			break
		}
		programParts = append(programParts, cont)
		next++
	}
	program := strings.Join(programParts, " ")

	sl := schedule.ScheduleLine{
		Days:        schedule.ApplySundayRule(days, tr),
		Time:        tr,
		WeeklySpots: weekly,
		WeekDates:   weekDates,
		Rate:        rate,
		DurationSec: duration,
		Program:     program,
		Language:    languageFromProgram(program),
	}
	// TCAA quotes gross rates directly.
	sl.GrossRate = rate
	return sl, next, nil
}
