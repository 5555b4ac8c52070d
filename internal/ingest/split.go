package ingest

import (
	"regexp"
	"sort"
	"strings"
)

// EstimateChunk is one estimate's slice of a multi-order document. When the
// section boundaries could not be recovered, every chunk carries the full
// document text and Degraded is set; downstream parsers then filter rows by
// estimate number instead of trusting the slice.
type EstimateChunk struct {
	Estimate string
	Text     string
	Degraded bool
}

// SplitterConfig tunes multi-estimate splitting. StationMarker is the
// station column value whose repetition marks a real schedule section;
// MarkerThreshold is how many repetitions count as real.
type SplitterConfig struct {
	StationMarker   string
	MarkerThreshold int
}

// DefaultSplitterConfig matches the annual TCAA exports the splitter was
// built against.
func DefaultSplitterConfig() SplitterConfig {
	return SplitterConfig{StationMarker: "CRTV-Cable", MarkerThreshold: 3}
}

var estimateRe = regexp.MustCompile(`Estimate:\s*(\d+)`)

// Split cuts a multi-estimate document into per-estimate chunks at
// "Estimate: NNNN" anchors. A chunk is kept only when it looks like a real
// schedule section (totals rows or enough station-column repetitions) and is
// not a market or station summary page. When anchors exist but no section
// survives the filter, Split falls back to one degraded chunk per unique
// estimate number, each carrying the full text.
//
// Documents with no estimate anchors at all fail with NoScheduleDataError.
func Split(fullText string, cfg SplitterConfig) ([]EstimateChunk, error) {
	all := estimateRe.FindAllStringSubmatch(fullText, -1)
	if len(all) == 0 {
		return nil, &NoScheduleDataError{OrderType: TCAA}
	}

	var chunks []EstimateChunk
	for _, part := range splitAtAnchors(fullText) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m := estimateRe.FindStringSubmatch(part)
		if m == nil {
			continue
		}

		hasSchedule := strings.Contains(part, "SCHEDULE TOTALS") ||
			strings.Contains(part, "Station Total:") ||
			strings.Count(part, cfg.StationMarker) > cfg.MarkerThreshold
		isSummary := strings.Contains(part, "Summary by Market") ||
			strings.Contains(part, "Summary by Station/System")

		if hasSchedule && !isSummary {
			chunks = append(chunks, EstimateChunk{Estimate: m[1], Text: part})
		}
	}
	if len(chunks) > 0 {
		return chunks, nil
	}

	// Section filter rejected everything. Hand each estimate the whole
	// document and let the parser sort its own rows out.
	seen := map[string]bool{}
	var numbers []string
	for _, m := range all {
		if !seen[m[1]] {
			seen[m[1]] = true
			numbers = append(numbers, m[1])
		}
	}
	sort.Strings(numbers)
	for _, n := range numbers {
		chunks = append(chunks, EstimateChunk{Estimate: n, Text: fullText, Degraded: true})
	}
	return chunks, nil
}

// splitAtAnchors splits the text so each part begins at an estimate anchor.
// Text before the first anchor becomes its own (anchorless) part.
func splitAtAnchors(text string) []string {
	locs := estimateRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}
	var parts []string
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			parts = append(parts, text[prev:loc[0]])
		}
		prev = loc[0]
	}
	parts = append(parts, text[prev:])
	return parts
}

// CountOrders reports how many distinct estimates a document carries.
func CountOrders(fullText string) int {
	seen := map[string]bool{}
	for _, m := range estimateRe.FindAllStringSubmatch(fullText, -1) {
		seen[m[1]] = true
	}
	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}
