package agency

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/schedule"
)

// worldLinkParser reads WorldLink and Tatari remnant orders. These are
// single-page documents with one regimented row per line: action, day-mark
// grid, flight window, clock times with AM/PM, then the counts and money.
type worldLinkParser struct{}

func (p *worldLinkParser) Type() ingest.OrderType { return ingest.WorldLink }

// RevisionKind says whether a WorldLink order opens a contract or amends
// one, read off the first row's action and line number.
type RevisionKind string

const (
	RevisionNew    RevisionKind = "new"
	RevisionAdd    RevisionKind = "revision_add"
	RevisionChange RevisionKind = "revision_change"
)

var (
	wlTrackingRe = regexp.MustCompile(`(?i)(?:WL|Unwired)\s+Tracking\s+No\.\s*(\d+)`)
	wlRowRe      = regexp.MustCompile(`^(\d+)\s+(ADD|CHANGE)\s+(\d{1,2}/\d{1,2}/\d{4})\s+(\S+)\s+([X0\s]+?)\s+` +
		`(\d{1,2}/\d{1,2}/\d{4})\s*-\s*(\d{1,2}/\d{1,2}/\d{4})\s+` +
		`(\d{1,2}:\d{2}\s*[AP]M\s*-\s*\d{1,2}:\d{2}\s*[AP]M)\s+` +
		`(\d+)\s+(\d+)\s+(\d+)\s+\$([\d,]+\.\d{2})\s+(\d+)\s+\$[\d,]+\.\d{2}`)
)

func (p *worldLinkParser) Parse(doc Document) ([]schedule.Estimate, error) {
	text := doc.Page(0)

	est := schedule.Estimate{
		Agency:  "WorldLink",
		Station: wlNetwork(text),
		Client:  fieldAfter(text, "Advertiser:", "Product Desc"),
		Product: fieldAfter(text, "Product:", "Buyer Phone"),
	}
	if m := wlTrackingRe.FindStringSubmatch(text); m != nil {
		est.Number = m[1]
	}

	for _, raw := range strings.Split(text, "\n") {
		line, ok := p.row(strings.TrimSpace(raw))
		if !ok {
			continue
		}
		est.Lines = append(est.Lines, line)
	}
	if len(est.Lines) == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.WorldLink}
	}

	// The order flight is the union of the line flights.
	for _, l := range est.Lines {
		if len(l.WeekDates) == 0 {
			continue
		}
		first := l.WeekDates[0]
		last := l.WeekDates[len(l.WeekDates)-1].AddDate(0, 0, 6)
		if est.FlightStart.IsZero() || first.Before(est.FlightStart) {
			est.FlightStart = first
		}
		if last.After(est.FlightEnd) {
			est.FlightEnd = last
		}
	}
	return []schedule.Estimate{est}, nil
}

// row parses one order line:
//
//	1 ADD 12/15/2025 ROS X X X X X 0 0 12/22/2025 - 12/28/2025 6:00 AM - 9:00 AM 30 1 5 $15.00 5 $75.00
func (p *worldLinkParser) row(line string) (schedule.ScheduleLine, bool) {
	m := wlRowRe.FindStringSubmatch(line)
	if m == nil {
		return schedule.ScheduleLine{}, false
	}
	program, marks := m[4], m[5]
	lineStart, ok1 := parseUSDate(m[6])
	lineEnd, ok2 := parseUSDate(m[7])
	if !ok1 || !ok2 {
		return schedule.ScheduleLine{}, false
	}

	days, err := schedule.ExpandDayMarks(marks)
	if err != nil {
		return schedule.ScheduleLine{}, false
	}
	tr, err := schedule.ParseTimeRange(m[8])
	if err != nil {
		return schedule.ScheduleLine{}, false
	}

	duration := int(numbersIn(m[9])[0])
	weeks := int(numbersIn(m[10])[0])
	perWeek := int(numbersIn(m[11])[0])
	rate, err := decimal.NewFromString(strings.ReplaceAll(m[12], ",", ""))
	if err != nil {
		return schedule.ScheduleLine{}, false
	}

	if weeks < 1 {
		weeks = weeksBetween(lineStart, lineEnd)
	}
	weekly := make([]int, weeks)
	for i := range weekly {
		weekly[i] = perWeek
	}

	return schedule.ScheduleLine{
		Days:        schedule.ApplySundayRule(days, tr),
		Time:        tr,
		WeeklySpots: weekly,
		WeekDates:   schedule.WeekAxisFromFlight(lineStart, weeks),
		Rate:        rate,
		GrossRate:   rate,
		DurationSec: duration,
		Program:     program,
	}, true
}

// Revision inspects parsed lines for the contract action. ADD on line 1
// opens a new contract; ADD on a later line or any CHANGE amends one.
func (p *worldLinkParser) Revision(text string) RevisionKind {
	for _, raw := range strings.Split(text, "\n") {
		m := wlRowRe.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		switch {
		case m[2] == "CHANGE":
			return RevisionChange
		case m[1] == "1":
			return RevisionNew
		default:
			return RevisionAdd
		}
	}
	return RevisionNew
}

// wlNetwork distinguishes the Asian Channel feed from the main network.
func wlNetwork(text string) string {
	if strings.Contains(strings.ToUpper(text), "ASIAN") {
		return "ASIAN"
	}
	return "CROSSINGS"
}

// weeksBetween counts week columns a flight window spans, minimum one.
func weeksBetween(start, end time.Time) int {
	if end.Before(start) {
		return 1
	}
	return int(end.Sub(start).Hours()/(24*7)) + 1
}
