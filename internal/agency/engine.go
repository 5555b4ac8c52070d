// Package agency holds one parser per agency order layout. Every parser
// consumes extracted page text and produces normalized estimates; none of
// them touch the PDF layer directly.
package agency

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/schedule"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// Document is the text handed to a parser: page texts in order plus the
// concatenation, since some layouts are parsed page-wise and some whole.
type Document struct {
	Pages    []string
	FullText string
}

// NewDocument builds a Document from page texts.
func NewDocument(pages ...string) Document {
	return Document{Pages: pages, FullText: strings.Join(pages, "\n")}
}

// Page returns the i-th page text, or "" past the end.
func (d Document) Page(i int) string {
	if i < 0 || i >= len(d.Pages) {
		return ""
	}
	return d.Pages[i]
}

// Parser turns one agency's document text into normalized estimates.
type Parser interface {
	Type() ingest.OrderType
	Parse(doc Document) ([]schedule.Estimate, error)
}

// registry maps order types to parser constructors. Parsers take the lookup
// tables so nothing reaches for package state.
var registry = map[ingest.OrderType]func(*schedule.Lookups) Parser{
	ingest.TCAA:      func(lk *schedule.Lookups) Parser { return &tcaaParser{lookups: lk} },
	ingest.HL:        func(lk *schedule.Lookups) Parser { return &hlParser{lookups: lk} },
	ingest.Opad:      func(lk *schedule.Lookups) Parser { return &opadParser{lookups: lk} },
	ingest.WorldLink: func(lk *schedule.Lookups) Parser { return &worldLinkParser{} },
	ingest.Misfit:    func(lk *schedule.Lookups) Parser { return &misfitParser{lookups: lk} },
	ingest.Impact:    func(lk *schedule.Lookups) Parser { return &impactParser{lookups: lk} },
	ingest.IGraphix:  func(lk *schedule.Lookups) Parser { return &igraphixParser{lookups: lk} },
	ingest.Admerasia: func(lk *schedule.Lookups) Parser { return &admerasiaParser{lookups: lk} },
	ingest.Daviselen: func(lk *schedule.Lookups) Parser { return &daviselenParser{} },
	ingest.RPM:       func(lk *schedule.Lookups) Parser { return &rpmParser{lookups: lk} },
	ingest.Charmaine: func(lk *schedule.Lookups) Parser { return &charmaineParser{lookups: lk} },
}

// ParserFor returns the parser for an order type, or an
// UnrecognizedLayoutError when no parser claims it.
func ParserFor(orderType ingest.OrderType, lookups *schedule.Lookups) (Parser, error) {
	ctor, ok := registry[orderType]
	if !ok {
		return nil, &ingest.UnrecognizedLayoutError{Hint: string(orderType)}
	}
	return ctor(lookups), nil
}

// Shared text-grammar helpers. The column layouts differ per agency but the
// field labels, date forms and numeric row tails repeat across most of them.

var (
	usDateRe   = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)
	flightRe   = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})\s*-\s*(\d{1,2}/\d{1,2}/\d{4})`)
	monthDayRe = regexp.MustCompile(`\b(\d{1,2}/\d{1,2})\b`)
	numberRe   = regexp.MustCompile(`[\d,]+\.?\d*`)
	moneyRe    = regexp.MustCompile(`\$([\d,]+\.?\d*)`)
)

// The label/stop sets are fixed at the call sites, so each compiles once.
var (
	fieldPatternMu sync.Mutex
	fieldPatterns  = map[string]*regexp.Regexp{}
)

// fieldAfter captures the value between a label and the next label or line
// end: "Client: Toyota Estimate: 12" with stop "Estimate:" gives "Toyota".
func fieldAfter(text, label string, stops ...string) string {
	key := label + "\x00" + strings.Join(stops, "\x00")
	fieldPatternMu.Lock()
	re, ok := fieldPatterns[key]
	if !ok {
		pattern := regexp.QuoteMeta(label) + `\s*(.+?)`
		if len(stops) > 0 {
			quoted := make([]string, len(stops))
			for i, s := range stops {
				quoted[i] = regexp.QuoteMeta(s)
			}
			pattern += `(?:\s+(?:` + strings.Join(quoted, "|") + `)|\n|$)`
		} else {
			pattern += `(?:\n|$)`
		}
		re = regexp.MustCompile(pattern)
		fieldPatterns[key] = re
	}
	fieldPatternMu.Unlock()
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// totalSpots sums a weekly distribution. Rows that total zero carry no
// buy and are dropped at extraction.
func totalSpots(weekly []int) int {
	total := 0
	for _, n := range weekly {
		total += n
	}
	return total
}

// parseUSDate reads M/D/YYYY.
func parseUSDate(s string) (time.Time, bool) {
	t, err := time.Parse("1/2/2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// flightDates pulls a "M/D/YYYY-M/D/YYYY" window out of text.
func flightDates(text string) (start, end time.Time, ok bool) {
	m := flightRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}
	start, ok1 := parseUSDate(m[1])
	end, ok2 := parseUSDate(m[2])
	return start, end, ok1 && ok2
}

// weekDatesWithYear expands month/day week-column headers ("1/5 1/12") to
// full dates using the flight year; weeks that lap into January of the next
// year roll the year forward.
func weekDatesWithYear(monthDays []string, year int) []time.Time {
	var dates []time.Time
	prevMonth := 0
	for _, md := range monthDays {
		t, err := time.Parse("1/2/2006", md+"/"+strconv.Itoa(year))
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

// numbersIn extracts every numeric token, commas stripped.
func numbersIn(s string) []float64 {
	var out []float64
	for _, tok := range numberRe.FindAllString(s, -1) {
		f, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
		if err == nil {
			out = append(out, f)
		}
	}
	return out
}

// parseMoney reads the first $-amount in s.
func parseMoney(s string) (decimal.Decimal, bool) {
	m := moneyRe.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// rowTail interprets a numeric row tail as weekly spots followed by a spot
// total and a unit rate. When the tail is short the total is derived and the
// rate is zero (bonus line).
func rowTail(numbers []float64, numWeeks int) (weekly []int, total int, rate decimal.Decimal, ok bool) {
	if len(numbers) < numWeeks {
		return nil, 0, decimal.Zero, false
	}
	weekly = make([]int, numWeeks)
	sum := 0
	for i := 0; i < numWeeks; i++ {
		weekly[i] = int(numbers[i])
		sum += weekly[i]
	}
	rest := numbers[numWeeks:]
	switch {
	case len(rest) >= 2:
		total = int(rest[0])
		rate = decimal.NewFromFloat(rest[1]).Round(2)
	case len(rest) == 1:
		total = int(rest[0])
	default:
		total = sum
	}
	return weekly, total, rate, true
}

// languageFromProgram maps a program description to the language it airs
// in, most specific name first. Falls back to the first word.
func languageFromProgram(program string) string {
	p := strings.ToLower(program)
	for _, lang := range []string{
		"mandarin", "cantonese", "korean", "japanese", "vietnamese",
		"south asian", "filipino", "tagalog", "punjabi", "hindi",
		"hmong", "chinese",
	} {
		if strings.Contains(p, lang) {
			return titleCaser.String(lang)
		}
	}
	fields := strings.Fields(program)
	if len(fields) == 0 {
		return ""
	}
	return titleCaser.String(strings.ToLower(fields[0]))
}
