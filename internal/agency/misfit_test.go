package agency

import (
	"testing"

	"github.com/example/order-ingest/internal/schedule"
)

const misfitPlan = `Date: 1/20/2026
Contact: Golden Harvest Foods
SACRAMENTO
26-Jan 2-Feb 9-Feb 16-Feb
Cantonese News M-F 7p-8p $ 117.65 3 3 3 3 12 $ 1,411.80
Chinese ROS $ - 5 5 5 5 20 $ -
`

func TestMisfitParse(t *testing.T) {
	p := &misfitParser{lookups: schedule.DefaultLookups()}
	ests, err := p.Parse(NewDocument(misfitPlan))
	if err != nil {
		t.Fatal(err)
	}
	est := ests[0]
	if est.Client != "Golden Harvest Foods" || est.Agency != "Misfit" {
		t.Errorf("header = %q %q", est.Client, est.Agency)
	}
	if est.FlightStart != schedule.Date(2026, 1, 26) || est.FlightEnd != schedule.Date(2026, 2, 22) {
		t.Errorf("flight = %s - %s", est.FlightStart, est.FlightEnd)
	}
	if len(est.Lines) != 2 {
		t.Fatalf("got %d lines", len(est.Lines))
	}

	news := est.Lines[0]
	if news.Language != "Cantonese" || news.Program != "CVC Cantonese News" {
		t.Errorf("line 1 = %q %q", news.Language, news.Program)
	}
	if got := schedule.FormatDays(news.Days); got != "M-F" {
		t.Errorf("line 1 days = %s", got)
	}
	if news.Time.String() != "19:00-20:00" {
		t.Errorf("line 1 time = %s", news.Time)
	}
	// Plan rates are already gross; trailing spot total drops off the week columns.
	if news.Rate.StringFixed(2) != "117.65" || news.GrossRate.StringFixed(2) != "117.65" {
		t.Errorf("line 1 rate = %s gross %s", news.Rate, news.GrossRate)
	}
	if w := news.WeeklySpots; len(w) != 4 || w[0] != 3 {
		t.Errorf("line 1 weekly = %v", w)
	}
	if news.WeekDates[3] != schedule.Date(2026, 2, 16) {
		t.Errorf("line 1 week dates = %v", news.WeekDates)
	}

	ros := est.Lines[1]
	if !ros.ROS || !ros.Bonus() {
		t.Errorf("line 2 ROS = %v bonus = %v", ros.ROS, ros.Bonus())
	}
	if got := schedule.FormatDays(ros.Days); got != "M-Su" {
		t.Errorf("line 2 days = %s", got)
	}
	if ros.Time.String() != "06:00-23:59" {
		t.Errorf("line 2 time = %s", ros.Time)
	}
	if w := ros.WeeklySpots; len(w) != 4 || w[0] != 5 {
		t.Errorf("line 2 weekly = %v", w)
	}
}

func TestMisfitWeekDatesRollYear(t *testing.T) {
	dates := misfitWeekDates("22-Dec 29-Dec 5-Jan 12-Jan", 2025)
	if len(dates) != 4 {
		t.Fatalf("got %d dates", len(dates))
	}
	if dates[1] != schedule.Date(2025, 12, 29) || dates[2] != schedule.Date(2026, 1, 5) {
		t.Errorf("dates = %v", dates)
	}
}

func TestMisfitCurrency(t *testing.T) {
	if got := misfitCurrency("6 ,000.15"); got.StringFixed(2) != "6000.15" {
		t.Errorf("spaced comma = %s", got)
	}
	if got := misfitCurrency("-"); !got.IsZero() {
		t.Errorf("dash = %s", got)
	}
}
