package ingest

import (
	"regexp"
	"strings"
)

// OrderType identifies which agency layout a document uses, which selects
// the parser.
type OrderType string

const (
	Unknown   OrderType = "unknown"
	TCAA      OrderType = "tcaa"
	HL        OrderType = "hl"
	Opad      OrderType = "opad"
	WorldLink OrderType = "worldlink"
	Misfit    OrderType = "misfit"
	Impact    OrderType = "impact"
	IGraphix  OrderType = "igraphix"
	Admerasia OrderType = "admerasia"
	Daviselen OrderType = "daviselen"
	RPM       OrderType = "rpm"
	Charmaine OrderType = "charmaine"
)

func (t OrderType) String() string { return string(t) }

var (
	quarterRe   = regexp.MustCompile(`q[1-4][- ]?20\d{2}`)
	mdOrderRe   = regexp.MustCompile(`\d{2}-md\d{2}-\d+`)
	cidMarkerRe = regexp.MustCompile(`\(cid:`)
)

// rpmHeaderSpan bounds how deep into the page the bare "RPM" brand mark is
// trusted; deeper hits are usually body copy.
const rpmHeaderSpan = 300

// Classify identifies the agency layout from the first two pages of text.
// Rules run most-specific first; each later agency's markers overlap with
// an earlier one's, so the order is load-bearing. Returns Unknown when
// nothing matches; callers decide whether that is an error.
func Classify(firstPage, secondPage string) OrderType {
	p1 := strings.ToLower(firstPage)
	p2 := strings.ToLower(secondPage)
	both := p1 + "\n" + p2

	// Daviselen brands its pages unambiguously, sometimes only on page 2.
	if strings.Contains(both, "davis elen") || strings.Contains(both, "daviselen") ||
		strings.Contains(p2, "brand time schedule") {
		return Daviselen
	}

	if isWorldLink(p1) {
		return WorldLink
	}

	// TCAA and H&L share the CRTV station family: Cable is TCAA, TV is H&L.
	if strings.Contains(p1, "crtv-cable") && strings.Contains(p1, "estimate:") {
		return TCAA
	}
	if isHL(p1) {
		return HL
	}

	if strings.Contains(p1, "# of spots per week") {
		return Opad
	}

	if (strings.Contains(p1, "misfit") || strings.Contains(p1, "agencymisfit.com")) &&
		strings.Contains(p1, "language block") {
		return Misfit
	}

	if isImpact(p1) {
		return Impact
	}

	if strings.Contains(p1, "igraphix") && hasIGraphixClient(p1) {
		return IGraphix
	}

	if strings.Contains(p1, "admerasia") &&
		(strings.Contains(p1, "mcdonald") || mdOrderRe.MatchString(p1)) {
		return Admerasia
	}

	if isRPM(p1) {
		return RPM
	}

	if isCharmaineTemplate(p1) {
		return Charmaine
	}

	return Unknown
}

func isWorldLink(p1 string) bool {
	for _, marker := range []string{
		"wl tracking no",
		"unwired tracking no",
		"agency:tatari",
		"agency: tatari",
		"c/o worldlink",
		"worldlink ventures",
	} {
		if strings.Contains(p1, marker) {
			return true
		}
	}
	return false
}

func isHL(p1 string) bool {
	if strings.Contains(p1, "h/l agency") {
		return true
	}
	if !strings.Contains(p1, "crtv") || strings.Contains(p1, "crtv-cable") {
		return false
	}
	hasLocation := strings.Contains(p1, "sacramento") || strings.Contains(p1, "san francisco")
	return hasLocation && strings.Contains(p1, "estimate:") && strings.Contains(p1, "agency")
}

func isImpact(p1 string) bool {
	mentioned := strings.Contains(p1, "impact marketing") || strings.Contains(p1, "impactcalifornia.com")
	if mentioned && quarterRe.MatchString(p1) {
		return true
	}
	return strings.Contains(p1, "crossings tv") && strings.Contains(p1, "central valley")
}

func hasIGraphixClient(p1 string) bool {
	return strings.Contains(p1, "pechanga") ||
		strings.Contains(p1, "sky river") ||
		strings.Contains(p1, "c/o")
}

func isRPM(p1 string) bool {
	head := p1
	if len(head) > rpmHeaderSpan {
		head = head[:rpmHeaderSpan]
	}
	if strings.Contains(head, "rpm") {
		return true
	}
	hasMarket := strings.Contains(p1, "seattle-tacoma") || strings.Contains(p1, "sacramento-stockton")
	return hasMarket && strings.Contains(p1, "estimate:") && strings.Contains(p1, "crossings tv")
}

// isCharmaineTemplate scores the hand-built Excel proposal template. Three
// of the five markers is enough; none alone is distinctive.
func isCharmaineTemplate(p1 string) bool {
	markers := 0
	if strings.Contains(p1, "crossings tv:") || strings.Contains(p1, "crossings tv media proposal") {
		markers++
	}
	if strings.Contains(p1, "airtime") ||
		(strings.Contains(p1, "flight") && strings.Contains(p1, "schedule")) {
		markers++
	}
	if strings.Contains(p1, "advertiser") {
		markers++
	}
	if strings.Contains(p1, "bonus") {
		markers++
	}
	if strings.Contains(p1, "charmaine") {
		markers++
	}
	return markers >= 3
}

// encodingIssueThreshold is how many CID glyph references mark a PDF whose
// text layer is unreadable and needs a re-save.
const encodingIssueThreshold = 20

// HasEncodingIssues reports whether extracted text is dominated by raw CID
// glyph references instead of characters.
func HasEncodingIssues(text string) bool {
	return len(cidMarkerRe.FindAllStringIndex(text, encodingIssueThreshold+1)) > encodingIssueThreshold
}
