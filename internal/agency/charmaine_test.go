package agency

import (
	"testing"

	"github.com/example/order-ingest/internal/schedule"
)

const charmainePage = `Crossings TV: Bank Dog Financial "BDOG Checking"
AIRTIME :30 seconds Week of 4/27 through May 7 2026
Sacramento / Central Valley KBTV
27-Apr 4-May
CHINESE M-F 7p-11p; Sat-Sun 7p-12a $ 35.00 10 6 16 $ 560.00
BONUS HMONG ROS 5 5 10
Total Paid Spots 16
`

func TestCharmaineParse(t *testing.T) {
	p := &charmaineParser{lookups: schedule.DefaultLookups()}
	ests, err := p.Parse(NewDocument(charmainePage))
	if err != nil {
		t.Fatal(err)
	}
	est := ests[0]
	if est.Client != "Bank Dog Financial" || est.Product != "BDOG Checking" {
		t.Errorf("header = %q %q", est.Client, est.Product)
	}
	if est.Number != "1" || est.Station != "CVC" {
		t.Errorf("number = %q station = %q", est.Number, est.Station)
	}
	if est.FlightStart != schedule.Date(2026, 4, 27) || est.FlightEnd != schedule.Date(2026, 5, 7) {
		t.Errorf("flight = %s - %s", est.FlightStart, est.FlightEnd)
	}
	if len(est.Lines) != 2 {
		t.Fatalf("got %d lines", len(est.Lines))
	}

	// Multi-segment daypart: day union, time envelope.
	chinese := est.Lines[0]
	if got := schedule.FormatDays(chinese.Days); got != "M-Su" {
		t.Errorf("line 1 days = %s", got)
	}
	if chinese.Time.String() != "19:00-23:59" {
		t.Errorf("line 1 time = %s", chinese.Time)
	}
	if chinese.Rate.StringFixed(2) != "35.00" {
		t.Errorf("line 1 rate = %s", chinese.Rate)
	}
	if w := chinese.WeeklySpots; len(w) != 2 || w[0] != 10 || w[1] != 6 {
		t.Errorf("line 1 weekly = %v", w)
	}
	if chinese.WeekDates[0] != schedule.Date(2026, 4, 27) {
		t.Errorf("line 1 week dates = %v", chinese.WeekDates)
	}

	hmong := est.Lines[1]
	if !hmong.ROS || !hmong.Bonus() || hmong.Language != "Hmong" {
		t.Errorf("line 2 = ROS %v bonus %v %q", hmong.ROS, hmong.Bonus(), hmong.Language)
	}
	if got := schedule.FormatDays(hmong.Days); got != "Sa,Su" {
		t.Errorf("line 2 days = %s", got)
	}
	if hmong.Time.String() != "18:00-20:00" {
		t.Errorf("line 2 time = %s", hmong.Time)
	}
	if w := hmong.WeeklySpots; len(w) != 2 || w[0] != 5 {
		t.Errorf("line 2 weekly = %v", w)
	}
}

const charmaineProposal = `Advertiser Pho Garden Restaurant
San Francisco KTSF January 2026
5-Jan 12-Jan 19-Jan
VIETNAMESE M-F 11a-1p $ 20.00 3 3 3 9
`

func TestCharmaineAdvertiserLineAndWeekFallback(t *testing.T) {
	p := &charmaineParser{lookups: schedule.DefaultLookups()}
	ests, err := p.Parse(NewDocument(charmaineProposal))
	if err != nil {
		t.Fatal(err)
	}
	est := ests[0]
	if est.Client != "Pho Garden Restaurant" || est.Station != "SFO" {
		t.Errorf("header = %q %q", est.Client, est.Station)
	}
	// No flight header, so the week columns bound the flight.
	if est.FlightStart != schedule.Date(2026, 1, 5) || est.FlightEnd != schedule.Date(2026, 1, 25) {
		t.Errorf("flight = %s - %s", est.FlightStart, est.FlightEnd)
	}
	viet := est.Lines[0]
	if viet.Time.String() != "11:00-13:00" || viet.Rate.StringFixed(2) != "20.00" {
		t.Errorf("line = %s %s", viet.Time, viet.Rate)
	}
	if w := viet.WeeklySpots; len(w) != 3 || w[2] != 3 {
		t.Errorf("weekly = %v", w)
	}
}

func TestChFlexDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"4/27", "2026-04-27"},
		{"May 7", "2026-05-07"},
		{"October 31", "2026-10-31"},
	}
	for _, tc := range cases {
		got, ok := chFlexDate(tc.in, 2026)
		if !ok || got.Format("2006-01-02") != tc.want {
			t.Errorf("chFlexDate(%q) = %s %v, want %s", tc.in, got, ok, tc.want)
		}
	}
	if _, ok := chFlexDate("13/40", 2026); ok {
		t.Error("month 13 accepted")
	}
}
