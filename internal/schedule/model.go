package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleLine is one normalized row of an order schedule: a day pattern and
// daypart, a weekly spot distribution on a week-date axis, and a unit rate.
type ScheduleLine struct {
	Days        []Day
	Time        TimeRange
	WeeklySpots []int
	WeekDates   []time.Time
	Rate        decimal.Decimal
	GrossRate   decimal.Decimal
	DurationSec int
	Program     string
	Language    string
	ROS         bool
}

// Bonus reports a zero-rate (value-added) line.
func (l ScheduleLine) Bonus() bool { return l.Rate.IsZero() }

// TotalSpots sums the weekly distribution.
func (l ScheduleLine) TotalSpots() int {
	n := 0
	for _, s := range l.WeeklySpots {
		n += s
	}
	return n
}

// Ranges reduces the line's weekly distribution against its flight end.
func (l ScheduleLine) Ranges(flightEnd time.Time) ([]ContiguousRange, error) {
	return Reduce(l.WeeklySpots, l.WeekDates, flightEnd)
}

// Estimate is one bookable order unit: a single estimate number from an
// insertion order, its flight window, and its schedule lines. Multi-estimate
// documents split into one Estimate per number.
type Estimate struct {
	Number      string
	Client      string
	Product     string
	Agency      string
	Station     string
	FlightStart time.Time
	FlightEnd   time.Time
	Lines       []ScheduleLine
	Degraded    bool
}

// TotalSpots sums spot counts across all lines.
func (e Estimate) TotalSpots() int {
	n := 0
	for _, l := range e.Lines {
		n += l.TotalSpots()
	}
	return n
}

var grossUpDivisor = decimal.NewFromFloat(0.85)

// GrossFromNet converts a net rate to gross at the standard 15% agency
// commission, rounded half-up to cents.
func GrossFromNet(net decimal.Decimal) decimal.Decimal {
	return net.Div(grossUpDivisor).Round(2)
}
