package agency

import (
	"strings"
	"testing"

	"github.com/example/order-ingest/internal/schedule"
)

const worldLinkOrder = `WorldLink Ventures, Inc.
WL Tracking No. 123456
Advertiser: Acme Motors Product Desc: Sedan
Product: Sedan Buyer Phone: 555-0100
1 ADD 12/15/2025 ROS X X X X X 0 0 12/22/2025 - 12/28/2025 6:00 AM - 9:00 AM 30 1 5 $15.00 5 $75.00
2 ADD 12/15/2025 Prime X X X X X X X 12/22/2025 - 1/4/2026 7:00 PM - 11:00 PM 30 2 3 $25.00 6 $150.00
`

func TestWorldLinkParse(t *testing.T) {
	p := &worldLinkParser{}
	ests, err := p.Parse(NewDocument(worldLinkOrder))
	if err != nil {
		t.Fatal(err)
	}
	est := ests[0]
	if est.Number != "123456" || est.Client != "Acme Motors" || est.Product != "Sedan" {
		t.Errorf("header = %q %q %q", est.Number, est.Client, est.Product)
	}
	if est.Station != "CROSSINGS" {
		t.Errorf("station = %q", est.Station)
	}
	if est.FlightStart != schedule.Date(2025, 12, 22) || est.FlightEnd != schedule.Date(2026, 1, 4) {
		t.Errorf("flight = %s - %s", est.FlightStart, est.FlightEnd)
	}
	if len(est.Lines) != 2 {
		t.Fatalf("got %d lines", len(est.Lines))
	}

	ros := est.Lines[0]
	if got := schedule.FormatDays(ros.Days); got != "M-F" {
		t.Errorf("line 1 days = %s", got)
	}
	if ros.Time.String() != "06:00-09:00" {
		t.Errorf("line 1 time = %s", ros.Time)
	}
	if len(ros.WeeklySpots) != 1 || ros.WeeklySpots[0] != 5 {
		t.Errorf("line 1 weekly = %v", ros.WeeklySpots)
	}
	// WorldLink books the quoted rate at face value.
	if ros.Rate.StringFixed(2) != "15.00" || ros.GrossRate.StringFixed(2) != "15.00" {
		t.Errorf("line 1 rate = %s gross = %s", ros.Rate, ros.GrossRate)
	}

	prime := est.Lines[1]
	if got := schedule.FormatDays(prime.Days); got != "M-Su" {
		t.Errorf("line 2 days = %s", got)
	}
	if prime.Time.String() != "19:00-23:00" {
		t.Errorf("line 2 time = %s", prime.Time)
	}
	if len(prime.WeeklySpots) != 2 || prime.WeeklySpots[0] != 3 || prime.WeeklySpots[1] != 3 {
		t.Errorf("line 2 weekly = %v", prime.WeeklySpots)
	}
	if prime.GrossRate.StringFixed(2) != "25.00" {
		t.Errorf("line 2 gross = %s", prime.GrossRate)
	}
}

func TestWorldLinkRevision(t *testing.T) {
	p := &worldLinkParser{}
	if got := p.Revision(worldLinkOrder); got != RevisionNew {
		t.Errorf("Revision = %s, want %s", got, RevisionNew)
	}

	change := strings.Replace(worldLinkOrder, "1 ADD", "1 CHANGE", 1)
	if got := p.Revision(change); got != RevisionChange {
		t.Errorf("Revision = %s, want %s", got, RevisionChange)
	}

	laterAdd := "3 ADD 12/15/2025 Prime X X X X X X X 12/22/2025 - 1/4/2026 7:00 PM - 11:00 PM 30 2 3 $25.00 6 $150.00"
	if got := p.Revision(laterAdd); got != RevisionAdd {
		t.Errorf("Revision = %s, want %s", got, RevisionAdd)
	}
}

func TestWorldLinkAsianChannel(t *testing.T) {
	text := strings.Replace(worldLinkOrder, "WorldLink Ventures", "WorldLink Ventures ASIAN CHANNEL", 1)
	p := &worldLinkParser{}
	ests, err := p.Parse(NewDocument(text))
	if err != nil {
		t.Fatal(err)
	}
	if ests[0].Station != "ASIAN" {
		t.Errorf("station = %q", ests[0].Station)
	}
}
