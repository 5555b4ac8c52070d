package agency

import (
	"testing"

	"github.com/example/order-ingest/internal/schedule"
)

const admerasiaOrder = `Order Number: MCD-4402
DMA: Seattle, WA No religious programming
Campaign Period: 2/2/2026 - 3/1/2026
:15s ACM Taglish Version A
Broadcast Order
:15s TFC Kapamilya Blockbusters (MTWRF) PST 4:00p-4:30p $ 5 5.00 1 1 1 1 1 5 $ 275.00
Weekend Movie (S-U) PST 8:00a-9:00a $ 2 9.75 2 2 4 $ 119.00
Order Total $ 394.00
`

func TestAdmerasiaParse(t *testing.T) {
	p := &admerasiaParser{lookups: schedule.DefaultLookups()}
	ests, err := p.Parse(NewDocument(admerasiaOrder))
	if err != nil {
		t.Fatal(err)
	}
	est := ests[0]
	if est.Number != "MCD-4402" || est.Client != "McDonald's" || est.Station != "SEA" {
		t.Errorf("header = %q %q %q", est.Number, est.Client, est.Station)
	}
	if est.FlightStart != schedule.Date(2026, 2, 2) || est.FlightEnd != schedule.Date(2026, 3, 1) {
		t.Errorf("period = %s - %s", est.FlightStart, est.FlightEnd)
	}
	if len(est.Lines) != 2 {
		t.Fatalf("got %d lines", len(est.Lines))
	}

	tfc := est.Lines[0]
	if tfc.Program != "TFC Kapamilya Blockbusters" || tfc.Language != "Filipino" {
		t.Errorf("line 1 = %q %q", tfc.Program, tfc.Language)
	}
	if got := schedule.FormatDays(tfc.Days); got != "M-F" {
		t.Errorf("line 1 days = %s", got)
	}
	if tfc.Time.String() != "16:00-16:30" || tfc.DurationSec != 15 {
		t.Errorf("line 1 = %s :%d", tfc.Time, tfc.DurationSec)
	}
	// Extraction splits the rate digits; the glued net grosses up.
	if tfc.Rate.StringFixed(2) != "55.00" || tfc.GrossRate.StringFixed(2) != "64.71" {
		t.Errorf("line 1 rate = %s gross %s", tfc.Rate, tfc.GrossRate)
	}
	if w := tfc.WeeklySpots; len(w) != 5 || w[0] != 1 || w[4] != 1 {
		t.Errorf("line 1 weekly = %v", w)
	}
	if tfc.WeekDates[4] != schedule.Date(2026, 3, 1) {
		t.Errorf("line 1 week dates = %v", tfc.WeekDates)
	}

	movie := est.Lines[1]
	if got := schedule.FormatDays(movie.Days); got != "Sa,Su" {
		t.Errorf("line 2 days = %s", got)
	}
	if movie.Rate.StringFixed(2) != "29.75" {
		t.Errorf("line 2 rate = %s", movie.Rate)
	}
	// Two calendar columns fold onto the five-week axis.
	if w := movie.WeeklySpots; len(w) != 5 || w[0] != 2 || w[2] != 2 || w[1] != 0 {
		t.Errorf("line 2 weekly = %v", w)
	}
}

func TestAdmRate(t *testing.T) {
	rate, rest := admRate(" 2 9.75 2 2 4 $ 119.00")
	if rate.StringFixed(2) != "29.75" || rest != "2 2 4 $ 119.00" {
		t.Errorf("admRate = %s %q", rate, rest)
	}
	rate, rest = admRate(" 35.00 1 1")
	if rate.StringFixed(2) != "35.00" || rest != "1 1" {
		t.Errorf("admRate = %s %q", rate, rest)
	}
}

func TestAdmWeekly(t *testing.T) {
	if got := admWeekly([]int{1, 1, 1, 1, 1}, 5); len(got) != 5 || got[0] != 1 {
		t.Errorf("pass-through = %v", got)
	}
	got := admWeekly([]int{3, 3, 3, 3}, 2)
	if len(got) != 2 || got[0] != 6 || got[1] != 6 {
		t.Errorf("folded = %v", got)
	}
}
