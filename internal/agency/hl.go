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

// hlParser reads H&L Partners broadcast orders. The table rows are numbered
// and carry compact day runs; program names and sometimes the end time wrap
// onto the following text line.
type hlParser struct {
	lookups *schedule.Lookups
}

func (p *hlParser) Type() ingest.OrderType { return ingest.HL }

const hlStation = "CRTV-TV"

var (
	hlRowStartRe   = regexp.MustCompile(`^\d+\s+[A-Z]`)
	clockTokenRe   = regexp.MustCompile(`^\d{1,2}:\d{2}[ap]-?$`)
	clockStartRe   = regexp.MustCompile(`^(\d{1,2}:\d{2}[ap])`)
	trailingCostRe = regexp.MustCompile(`\$[\d,]+\.?\d*$`)
)

func (p *hlParser) Parse(doc Document) ([]schedule.Estimate, error) {
	var estimates []schedule.Estimate
	for _, page := range doc.Pages {
		if !strings.Contains(page, "Estimate:") {
			continue
		}
		est := schedule.Estimate{
			Agency:  "HL",
			Station: hlStation,
			Number:  fieldAfter(page, "Estimate:", "Vendor:", "Description:"),
			Product: fieldAfter(page, "Description:", "Flight Start Date:"),
			Client:  fieldAfter(page, "Client:", "Estimate:", "Vendor:"),
		}
		if est.Number == "" {
			continue
		}
		if t, ok := parseUSDate(fieldAfter(page, "Flight Start Date:")); ok {
			est.FlightStart = t
		}
		if t, ok := parseUSDate(fieldAfter(page, "Flight End Date:")); ok {
			est.FlightEnd = t
		}

		lines, err := p.tableLines(page, est.FlightStart)
		if err != nil {
			return nil, &ingest.ParseError{OrderType: ingest.HL, Stage: "schedule table", Err: err}
		}
		if len(lines) == 0 {
			continue
		}
		est.Lines = lines
		estimates = append(estimates, est)
	}
	if len(estimates) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.HL}
	}
	return estimates, nil
}

func (p *hlParser) tableLines(page string, flightStart time.Time) ([]schedule.ScheduleLine, error) {
	textLines := strings.Split(page, "\n")

	// The table begins after a standalone station marker line.
	start := -1
	for i, line := range textLines {
		if strings.TrimSpace(line) == hlStation {
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
		if strings.Contains(line, "Total Spots:") || strings.Contains(line, "Total GRP") ||
			strings.Contains(line, "Disclaimer:") || strings.Contains(line, "Signature:") {
			break
		}
		if !hlRowStartRe.MatchString(line) {
			i++
			continue
		}
		parsed, next, ok := p.rowAt(textLines, i, flightStart)
		if !ok {
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

// rowAt parses one numbered row:
//
//	1 MTuWThF 1:00p- 2:00p EF $50.00 30 0 0 3 3 6 0.0
//	HINDI NEWS/TALK $0.00
//
// The numeric tail ends with a rating; before it sits the spot total, and
// everything before that is the weekly distribution.
func (p *hlParser) rowAt(textLines []string, idx int, flightStart time.Time) (schedule.ScheduleLine, int, bool) {
	parts := strings.Fields(textLines[idx])
	if len(parts) < 5 {
		return schedule.ScheduleLine{}, idx + 1, false
	}

	days, err := schedule.ExpandDayPattern(parts[1])
	if err != nil {
		return schedule.ScheduleLine{}, idx + 1, false
	}

	// Collect tokens up to the two-letter daypart code; the time range may
	// be split across them ("1:00p-" "2:00p").
	var clockTokens []string
	pos := 2
	for pos < len(parts) && !isDaypartCode(parts[pos]) {
		if clockTokenRe.MatchString(parts[pos]) {
			clockTokens = append(clockTokens, parts[pos])
		}
		pos++
	}
	timeStr := strings.Join(clockTokens, "")
	next := idx + 1

	// End time can wrap onto the next text line entirely.
	if strings.HasSuffix(timeStr, "-") && next < len(textLines) {
		if m := clockStartRe.FindString(strings.TrimSpace(textLines[next])); m != "" {
			timeStr += m
		}
	}
	tr, err := schedule.ParseTimeRange(timeStr)
	if err != nil {
		return schedule.ScheduleLine{}, idx + 1, false
	}

	if pos >= len(parts) {
		return schedule.ScheduleLine{}, idx + 1, false
	}
	pos++ // daypart code

	if pos >= len(parts) {
		return schedule.ScheduleLine{}, idx + 1, false
	}
	rate, err := decimal.NewFromString(strings.NewReplacer("$", "", ",", "").Replace(parts[pos]))
	if err != nil {
		return schedule.ScheduleLine{}, idx + 1, false
	}
	pos++

	if pos >= len(parts) {
		return schedule.ScheduleLine{}, idx + 1, false
	}
	duration, err := strconv.Atoi(parts[pos])
	if err != nil {
		return schedule.ScheduleLine{}, idx + 1, false
	}
	pos++

	var tail []float64
	for pos < len(parts) {
		n, err := strconv.ParseFloat(strings.ReplaceAll(parts[pos], ",", ""), 64)
		if err != nil {
			break
		}
		tail = append(tail, n)
		pos++
	}
	// Tail layout: weekly spots, spot total, rating.
	if len(tail) < 2 {
		return schedule.ScheduleLine{}, idx + 1, false
	}
	weekly := make([]int, len(tail)-2)
	for i, n := range tail[:len(tail)-2] {
		weekly[i] = int(n)
	}

	// Program is the next line, skipping a bare wrapped end time.
	program := ""
	if next < len(textLines) && clockTokenRe.MatchString(strings.TrimSpace(textLines[next])) {
		next++
	}
	if next < len(textLines) {
		cand := strings.TrimSpace(trailingCostRe.ReplaceAllString(strings.TrimSpace(textLines[next]), ""))
		if cand != "" && !hlRowStartRe.MatchString(cand) {
			program = cand
			next++
		}
	}

	return schedule.ScheduleLine{
		Days:        schedule.ApplySundayRule(days, tr),
		Time:        tr,
		WeeklySpots: weekly,
		WeekDates:   schedule.WeekAxisFromFlight(flightStart, len(weekly)),
		Rate:        rate,
		GrossRate:   rate,
		DurationSec: duration,
		Program:     program,
		Language:    languageFromProgram(program),
	}, next, true
}

// isDaypartCode matches the two-letter daypart column (EF, EN, PA, PT).
func isDaypartCode(tok string) bool {
	if len(tok) != 2 {
		return false
	}
	for _, r := range tok {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
