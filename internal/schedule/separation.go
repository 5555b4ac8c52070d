package schedule

import "strings"

// Separation holds an agency's spot-separation rules in minutes. Product is
// the minimum gap between spots for the same product, Client between any two
// spots for the same client, Competitive between competing advertisers. Zero
// means no rule.
type Separation struct {
	Product     int
	Client      int
	Competitive int
}

func defaultSeparations() map[string]Separation {
	return map[string]Separation{
		"worldlink":  {Product: 5, Competitive: 15},
		"opad":       {Product: 15, Competitive: 15},
		"rpm":        {Product: 25, Competitive: 15},
		"hl":         {Product: 25},
		"misfit":     {Product: 15},
		"daviselen":  {Product: 15},
		"charmaine":  {Product: 15},
		"sagent":     {Product: 10},
		"galeforce":  {Product: 25},
		defaultSepKey: {Product: 15},
	}
}

const defaultSepKey = "default"

// SeparationFor returns the separation rule for an agency, falling back to
// the house default for agencies with no entry.
func (lk *Lookups) SeparationFor(agency string) Separation {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(agency)), " ", "")
	if s, ok := lk.separations[key]; ok {
		return s
	}
	return lk.separations[defaultSepKey]
}

// FitsSeparation reports whether spotsPerWeek spots fit inside the weekly
// minutes a day pattern and daypart provide under the agency's product
// separation. A spot every sep minutes needs (n-1)*sep minutes of window.
func FitsSeparation(sep Separation, days []Day, tr TimeRange, spotsPerWeek int) bool {
	if sep.Product == 0 || spotsPerWeek <= 1 {
		return true
	}
	window := tr.End.Minutes() - tr.Start.Minutes()
	if window <= 0 {
		return false
	}
	perDay := window/sep.Product + 1
	return perDay*len(days) >= spotsPerWeek
}
