package agency

import (
	"errors"
	"testing"

	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/schedule"
)

func tcaaPage(estimate string) string {
	return "Client: Toyota Dealers\n" +
		"Estimate: " + estimate + " Description: Annual 2026 Flight Date: 12/29/2025-3/29/2026\n" +
		"Market: Sacramento\n" +
		"# of SPOTS PER WEEK\n" +
		"Station Day DP Time Program 12/29 1/5 1/12\n" +
		"CRTV-Cable M-Su RT 6:00a- 7:00a 0.0 30 14 0 14 28 $25.00 $0.00\n" +
		"Mandarin News\n" +
		"Station Total: 28 $700.00\n"
}

func TestTCAAParse(t *testing.T) {
	p := &tcaaParser{lookups: schedule.DefaultLookups()}
	ests, err := p.Parse(NewDocument(tcaaPage("2204")))
	if err != nil {
		t.Fatal(err)
	}
	if len(ests) != 1 {
		t.Fatalf("got %d estimates", len(ests))
	}
	est := ests[0]
	if est.Number != "2204" || est.Client != "Toyota Dealers" || est.Product != "Annual 2026" {
		t.Errorf("header = %q %q %q", est.Number, est.Client, est.Product)
	}
	if est.Station != "CRTV-Cable Sacramento" {
		t.Errorf("station = %q", est.Station)
	}
	if est.FlightStart != schedule.Date(2025, 12, 29) || est.FlightEnd != schedule.Date(2026, 3, 29) {
		t.Errorf("flight = %s - %s", est.FlightStart, est.FlightEnd)
	}

	if len(est.Lines) != 1 {
		t.Fatalf("got %d lines", len(est.Lines))
	}
	l := est.Lines[0]
	if l.Time.String() != "06:00-07:00" {
		t.Errorf("time = %s", l.Time)
	}
	// Sunday 6-7a carries paid programming, so the M-Su booking drops Sunday.
	if len(l.Days) != 6 || schedule.ContainsDay(l.Days, schedule.Sunday) {
		t.Errorf("days = %v", l.Days)
	}
	if got := l.WeeklySpots; len(got) != 3 || got[0] != 14 || got[1] != 0 || got[2] != 14 {
		t.Errorf("weekly = %v", got)
	}
	if len(l.WeekDates) != 3 || l.WeekDates[1] != schedule.Date(2026, 1, 5) {
		t.Errorf("week dates = %v", l.WeekDates)
	}
	if l.Rate.StringFixed(2) != "25.00" || !l.GrossRate.Equal(l.Rate) {
		t.Errorf("rate = %s gross = %s", l.Rate, l.GrossRate)
	}
	if l.DurationSec != 30 || l.Program != "Mandarin News" || l.Language != "Mandarin" {
		t.Errorf("line = %d %q %q", l.DurationSec, l.Program, l.Language)
	}
}

func TestTCAAParseMultiplePages(t *testing.T) {
	p := &tcaaParser{lookups: schedule.DefaultLookups()}
	ests, err := p.Parse(NewDocument(tcaaPage("2204"), tcaaPage("2205")))
	if err != nil {
		t.Fatal(err)
	}
	if len(ests) != 2 {
		t.Fatalf("got %d estimates, want 2", len(ests))
	}
	if ests[0].Number != "2204" || ests[1].Number != "2205" {
		t.Errorf("numbers = %q %q", ests[0].Number, ests[1].Number)
	}
}

func TestTCAAParseNoSchedule(t *testing.T) {
	p := &tcaaParser{lookups: schedule.DefaultLookups()}
	_, err := p.Parse(NewDocument("Summary by Market\nSacramento $900.00\n"))
	var noData *ingest.NoScheduleDataError
	if !errors.As(err, &noData) {
		t.Fatalf("want NoScheduleDataError, got %v", err)
	}
}

func TestTCAAParseDropsZeroSpotRows(t *testing.T) {
	page := "Client: Toyota Dealers\n" +
		"Estimate: 2206 Description: Annual 2026 Flight Date: 12/29/2025-3/29/2026\n" +
		"# of SPOTS PER WEEK\n" +
		"Station Day DP Time Program 12/29 1/5 1/12\n" +
		"CRTV-Cable M-Su RT 6:00a- 7:00a 0.0 30 0 0 0 0 $25.00 $0.00\n" +
		"Mandarin News\n" +
		"CRTV-Cable M-F RT 7:00p- 8:00p 0.0 30 2 2 2 6 $40.00 $0.00\n" +
		"Cantonese Movies\n" +
		"Station Total: 6 $240.00\n"
	p := &tcaaParser{lookups: schedule.DefaultLookups()}
	ests, err := p.Parse(NewDocument(page))
	if err != nil {
		t.Fatal(err)
	}
	if len(ests) != 1 || len(ests[0].Lines) != 1 {
		t.Fatalf("got %d estimates, %d lines", len(ests), len(ests[0].Lines))
	}
	if ests[0].Lines[0].Program != "Cantonese Movies" {
		t.Errorf("kept line = %q", ests[0].Lines[0].Program)
	}
}

func TestTCAAParseAllZeroRowsIsNoSchedule(t *testing.T) {
	page := "Client: Toyota Dealers\n" +
		"Estimate: 2205 Description: Annual 2026 Flight Date: 12/29/2025-3/29/2026\n" +
		"# of SPOTS PER WEEK\n" +
		"Station Day DP Time Program 12/29 1/5 1/12\n" +
		"CRTV-Cable M-Su RT 6:00a- 7:00a 0.0 30 0 0 0 0 $25.00 $0.00\n" +
		"Mandarin News\n" +
		"Station Total: 0 $0.00\n"
	p := &tcaaParser{lookups: schedule.DefaultLookups()}
	_, err := p.Parse(NewDocument(page))
	var noData *ingest.NoScheduleDataError
	if !errors.As(err, &noData) {
		t.Fatalf("want NoScheduleDataError, got %v", err)
	}
}

func TestTCAAParseHeaderOnlyPageIsNoSchedule(t *testing.T) {
	page := "Client: Toyota Dealers\n" +
		"Estimate: 2205 Description: Annual 2026 Flight Date: 12/29/2025-3/29/2026\n" +
		"# of SPOTS PER WEEK\n"
	p := &tcaaParser{lookups: schedule.DefaultLookups()}
	_, err := p.Parse(NewDocument(page))
	var noData *ingest.NoScheduleDataError
	if !errors.As(err, &noData) {
		t.Fatalf("want NoScheduleDataError, got %v", err)
	}
}

func TestTCAAParseSkipsLineLessPageKeepsOthers(t *testing.T) {
	headerOnly := "Client: Toyota Dealers\n" +
		"Estimate: 2207 Description: Annual 2026 Flight Date: 12/29/2025-3/29/2026\n" +
		"# of SPOTS PER WEEK\n"
	p := &tcaaParser{lookups: schedule.DefaultLookups()}
	ests, err := p.Parse(NewDocument(headerOnly, tcaaPage("2204")))
	if err != nil {
		t.Fatal(err)
	}
	if len(ests) != 1 || ests[0].Number != "2204" {
		t.Fatalf("got %d estimates, first %q", len(ests), ests[0].Number)
	}
}
