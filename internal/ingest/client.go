package ingest

import (
	"regexp"
	"strings"
)

// hlDefaultClient is the only advertiser H&L books with us; their orders
// never carry a client field the extractor can read.
const hlDefaultClient = "Northern California Dealers Association"

var daviselenClientRe = regexp.MustCompile(`CLIENT\s+\S+\s+(.+?)\s*Market:`)

// ExtractClientName pulls the advertiser name out of order text using the
// field each agency's layout actually carries. Returns "" when no field
// matches; callers fall back to customer lookup by estimate.
func ExtractClientName(firstPage, secondPage string, orderType OrderType) string {
	switch orderType {
	case WorldLink:
		return labeledValue(firstPage, "Advertiser:")
	case TCAA, HL:
		if v := labeledValue(firstPage, "Client:"); v != "" {
			return v
		}
		if orderType == HL {
			return hlDefaultClient
		}
		return ""
	case Daviselen:
		for _, page := range []string{secondPage, firstPage} {
			if m := daviselenClientRe.FindStringSubmatch(page); m != nil {
				return strings.TrimSpace(m[1])
			}
		}
		return ""
	case Misfit:
		return labeledValue(firstPage, "Contact:")
	case IGraphix:
		return igraphixClient(firstPage)
	case Charmaine:
		return charmaineAdvertiser(firstPage)
	default:
		if v := labeledValue(firstPage, "Client:"); v != "" {
			return v
		}
		return labeledValue(firstPage, "Advertiser:")
	}
}

// agencyKeywords mark names that belong to a media agency of record, not an
// advertiser. Orders carrying one of these in the client field are invoiced
// to the agency.
var agencyKeywords = []string{
	"worldlink",
	"opad",
	"igraphix",
	"admerasia",
	"davis elen",
	"iw group",
	"interplan",
	"rpm advertising",
	"h&l",
	"tcaa",
	"misfit",
	"media agency",
}

// BilledViaAgency reports whether name looks like a known media agency, in
// which case the invoice goes to the agency rather than the advertiser.
func BilledViaAgency(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range agencyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// labeledValue returns the rest of the first line starting with label.
func labeledValue(text, label string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, label) {
			return strings.TrimSpace(strings.TrimPrefix(line, label))
		}
	}
	return ""
}

// igraphixClient reads the advertiser block, where the client name is the
// first real line after a bare "c/o".
func igraphixClient(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "c/o" {
			continue
		}
		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if next == "" {
				continue
			}
			if strings.HasPrefix(next, "**") {
				return ""
			}
			return next
		}
	}
	return ""
}

// charmaineAdvertiser reads the "Advertiser <name>" header line of the
// proposal template, which has no colon.
func charmaineAdvertiser(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Advertiser ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Advertiser "))
		}
	}
	return ""
}
