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

// igraphixParser reads iGraphix purchase orders. The layout is a single page:
// a "Purchase #" header, an advertiser routed through "c/o", a channel
// description carrying language and market, a paid line ("1) M-Su: 4pm-6pm x
// 30 spots"), an optional bonus line ("2) Bonus- ROS ... x 18 spots"), and
// ad-code lines with per-flight spot counts. Paid spots fill ad codes top to
// bottom; whatever is left over airs as bonus.
type igraphixParser struct {
	lookups *schedule.Lookups
}

func (p *igraphixParser) Type() ingest.OrderType { return ingest.IGraphix }

var (
	igPurchaseRe = regexp.MustCompile(`(?i)Purchase\s*#:\s*(\d+)`)
	igClientRe   = regexp.MustCompile(`(?is)Advertiser:.*?c/o\s+([^\n]+)`)
	igNetRe      = regexp.MustCompile(`(?i)Net\s+Total:\s*\$?([\d,]+\.?\d*)`)
	igPaidRe     = regexp.MustCompile(`(?i)1\)\s*([^x]+?)\s+x\s+(\d+)\s+spots?`)
	igBonusRe    = regexp.MustCompile(`(?i)2\)\s*Bonus[^x]*x\s+(\d+)\s+spots?`)
	igDurRe      = regexp.MustCompile(`(?i)(\d+)\s+sec`)
	igChannelRe  = regexp.MustCompile(`(?i)(Crossing\s+TV.*?(?:channel|Ch\.)\s+\d+[^\n]*|Crossing\s+TV[^\n]*?(?:Spectrum|Comcast|XfinityTV)[^\n]*)`)
	igPackageRe  = regexp.MustCompile(`(?i)-\s*(\w+)\s+package`)
	igAdCodeRe   = regexp.MustCompile(`(?i)(\d{1,2}/\d{1,2}/\d{2})\s+thru\s+(\d{1,2}/\d{1,2}/\d{2}):\s*(.+?)\s+ad/#([\w-]+)\s*\((\d+)\s+spots?\)`)
)

// igAdCode is one dated creative line before paid/bonus allocation.
type igAdCode struct {
	start, end time.Time
	program    string
	spots      int
}

func (p *igraphixParser) Parse(doc Document) ([]schedule.Estimate, error) {
	text := doc.FullText

	est := schedule.Estimate{Agency: "iGraphix"}
	if m := igPurchaseRe.FindStringSubmatch(text); m != nil {
		est.Number = strings.TrimLeft(m[1], "0")
		if est.Number == "" {
			est.Number = "0"
		}
	}
	if m := igClientRe.FindStringSubmatch(text); m != nil {
		est.Client = strings.TrimSpace(m[1])
	}

	channel := igChannel(text)
	lang := igLanguage(channel)
	est.Station = igMarket(channel, est.Client)

	paidDays, paidTime, paidSpots := igPaidLine(text)
	bonusSpots := 0
	if m := igBonusRe.FindStringSubmatch(text); m != nil {
		bonusSpots, _ = strconv.Atoi(m[1])
	}
	duration := 30
	if m := igDurRe.FindStringSubmatch(text); m != nil {
		duration, _ = strconv.Atoi(m[1])
	}

	codes := igAdCodes(text)
	if len(codes) == 0 || paidSpots == 0 {
		return nil, &ingest.NoScheduleDataError{OrderType: ingest.IGraphix}
	}
	est.FlightStart = codes[0].start
	est.FlightEnd = codes[0].end
	for _, c := range codes[1:] {
		if c.start.Before(est.FlightStart) {
			est.FlightStart = c.start
		}
		if c.end.After(est.FlightEnd) {
			est.FlightEnd = c.end
		}
	}

	// Per-spot rate from the net total over the paid count; bonus spots
	// air free.
	var rate decimal.Decimal
	if m := igNetRe.FindStringSubmatch(text); m != nil {
		net, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err == nil && paidSpots > 0 {
			rate = net.Div(decimal.NewFromInt(int64(paidSpots))).Round(2)
		}
	}

	bonusDays, bonusTime := paidDays, paidTime
	if ros, ok := p.lookups.ROSFor(lang); ok {
		bonusDays, bonusTime = ros.Days, ros.Time
	}

	for _, ln := range igAllocate(codes, paidSpots, bonusSpots) {
		sl := schedule.ScheduleLine{
			Days:        paidDays,
			Time:        paidTime,
			DurationSec: duration,
			Program:     ln.code.program,
			Language:    lang,
		}
		if ln.bonus {
			sl.Days = bonusDays
			sl.Time = bonusTime
			sl.ROS = true
		} else {
			sl.Rate = rate
			sl.GrossRate = schedule.GrossFromNet(rate)
		}
		weeks := weeksBetween(ln.code.start, ln.code.end)
		sl.WeekDates = schedule.WeekAxisFromFlight(ln.code.start, weeks)
		sl.WeeklySpots = spreadSpots(ln.spots, weeks)
		est.Lines = append(est.Lines, sl)
	}
	return []schedule.Estimate{est}, nil
}

// igAllocation is an ad code with its paid-or-bonus share resolved.
type igAllocation struct {
	code  igAdCode
	spots int
	bonus bool
}

// igAllocate fills ad codes with paid spots top to bottom and marks the
// remainder bonus. A code that straddles the boundary is split in two.
func igAllocate(codes []igAdCode, paidSpots, bonusSpots int) []igAllocation {
	var out []igAllocation
	allocated := 0
	for _, c := range codes {
		switch {
		case allocated+c.spots <= paidSpots:
			out = append(out, igAllocation{code: c, spots: c.spots})
			allocated += c.spots
		case allocated < paidSpots:
			paidPart := paidSpots - allocated
			out = append(out, igAllocation{code: c, spots: paidPart})
			out = append(out, igAllocation{code: c, spots: c.spots - paidPart, bonus: true})
			allocated += c.spots
		default:
			out = append(out, igAllocation{code: c, spots: c.spots, bonus: true})
		}
	}
	return out
}

func igPaidLine(text string) ([]schedule.Day, schedule.TimeRange, int) {
	m := igPaidRe.FindStringSubmatch(text)
	if m == nil {
		return nil, schedule.TimeRange{}, 0
	}
	spots, _ := strconv.Atoi(m[2])

	raw := strings.TrimSpace(m[1])
	raw = strings.ReplaceAll(raw, "Sat-Sun", "Sa-Su")
	raw = strings.ReplaceAll(raw, "Sat", "Sa")
	raw = strings.ReplaceAll(raw, "Sun", "Su")

	dayPart, timePart := "M-Su", raw
	if i := strings.Index(raw, ":"); i >= 0 && !strings.ContainsAny(raw[:i], "0123456789") {
		dayPart = strings.TrimSpace(raw[:i])
		timePart = strings.TrimSpace(raw[i+1:])
	}
	days, err := schedule.ExpandDayPattern(dayPart)
	if err != nil {
		days, _ = schedule.ExpandDayPattern("M-Su")
	}

	// "11am-12pm/12pm-1pm" is a split avail; the envelope is what matters.
	timePart = strings.ReplaceAll(strings.ReplaceAll(timePart, " ", ""), "/", "; ")
	timePart = strings.ReplaceAll(strings.ReplaceAll(timePart, "am", "a"), "pm", "p")
	tr, err := schedule.ParseTimeRange(timePart)
	if err != nil {
		return days, schedule.TimeRange{}, spots
	}
	return days, tr, spots
}

func igChannel(text string) string {
	m := igChannelRe.FindStringSubmatchIndex(text)
	if m == nil {
		return ""
	}
	desc := strings.TrimSpace(text[m[2]:m[3]])
	// A "- Vietnamese package: ..." line under the channel carries the
	// language for Sky River orders.
	tail := text[m[3]:]
	if len(tail) > 100 {
		tail = tail[:100]
	}
	if pm := igPackageRe.FindString(tail); pm != "" {
		desc += " " + pm
	}
	return strings.Join(strings.Fields(desc), " ")
}

func igLanguage(channel string) string {
	up := strings.ToUpper(channel)
	for _, probe := range []struct{ marker, lang string }{
		{"FILIPINO", "Filipino"}, {"TAGALOG", "Filipino"},
		{"VIETNAMESE", "Vietnamese"}, {"HMONG", "Hmong"},
		{"KOREAN", "Korean"}, {"MANDARIN", "Chinese"},
		{"CHINESE", "Chinese"}, {"CANTONESE", "Chinese"},
		{"SOUTH ASIAN", "South Asian"}, {"PUNJABI", "South Asian"},
		{"JAPANESE", "Japanese"},
	} {
		if strings.Contains(up, probe.marker) {
			return probe.lang
		}
	}
	if m := igPackageRe.FindStringSubmatch(channel); m != nil {
		return titleCaser.String(strings.ToLower(m[1]))
	}
	return "Filipino"
}

func igMarket(channel, client string) string {
	if strings.Contains(client, "Pechanga") {
		return "LAX"
	}
	up := strings.ToUpper(channel)
	switch {
	case strings.Contains(up, "SAN FRANCISCO") || strings.Contains(up, "SF"):
		return "SFO"
	case strings.Contains(up, "CENTRAL VALLEY") || strings.Contains(up, " CV"):
		return "CVC"
	case strings.Contains(up, "SEATTLE"):
		return "SEA"
	default:
		return "LAX"
	}
}

func igAdCodes(text string) []igAdCode {
	var out []igAdCode
	for _, m := range igAdCodeRe.FindAllStringSubmatch(text, -1) {
		start, err1 := time.Parse("1/2/06", m[1])
		end, err2 := time.Parse("1/2/06", m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		spots, _ := strconv.Atoi(m[5])
		out = append(out, igAdCode{
			start:   start,
			end:     end,
			program: strings.TrimSpace(m[3]) + " #" + m[4],
			spots:   spots,
		})
	}
	return out
}

// spreadSpots splits a flight total across its weeks, front-loading the
// remainder.
func spreadSpots(total, weeks int) []int {
	if weeks < 1 {
		weeks = 1
	}
	out := make([]int, weeks)
	base, rem := total/weeks, total%weeks
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}
