package agency

import (
	"testing"

	"github.com/example/order-ingest/internal/schedule"
)

const daviselenOrder = `ORDER# 778899 BRAND TIME SCHEDULE
CLIENT TOY Toyota Dealers Market: Sacramento
PRODUCT WTR Winter Sales
ESTIMATE 2601
PERIOD FROM JAN26/26 TO FEB22/26
AD JAN FEB FEB FEB
LINE# DAY(S) TIME PROGRAM SIZE DP 26 2 9 16 TOT
001 M-F 8-9P Mandarin News :30 RO 1 1 1 3 180.00
002 SA-SU 6-8A Saturday Cinema :30 WE 2 2 4 425.00
`

func TestDaviselenParse(t *testing.T) {
	p := &daviselenParser{}
	ests, err := p.Parse(NewDocument(daviselenOrder))
	if err != nil {
		t.Fatal(err)
	}
	est := ests[0]
	if est.Number != "2601" || est.Client != "Toyota Dealers" || est.Product != "Winter Sales" {
		t.Errorf("header = %q %q %q", est.Number, est.Client, est.Product)
	}
	if est.FlightStart != schedule.Date(2026, 1, 26) || est.FlightEnd != schedule.Date(2026, 2, 22) {
		t.Errorf("period = %s - %s", est.FlightStart, est.FlightEnd)
	}
	if len(est.Lines) != 2 {
		t.Fatalf("got %d lines", len(est.Lines))
	}

	news := est.Lines[0]
	if got := schedule.FormatDays(news.Days); got != "M-F" {
		t.Errorf("line 001 days = %s", got)
	}
	if news.Time.String() != "20:00-21:00" {
		t.Errorf("line 001 time = %s", news.Time)
	}
	if news.Program != "Mandarin News" || news.Language != "Mandarin" {
		t.Errorf("line 001 = %q %q", news.Program, news.Language)
	}
	// Dark leading weeks drop out of the text, so short rows pad from the front.
	if w := news.WeeklySpots; len(w) != 4 || w[0] != 0 || w[1] != 1 {
		t.Errorf("line 001 weekly = %v", w)
	}
	if news.Rate.StringFixed(2) != "180.00" || !news.Rate.Equal(news.GrossRate) {
		t.Errorf("line 001 rate = %s gross %s", news.Rate, news.GrossRate)
	}
	if news.WeekDates[1] != schedule.Date(2026, 2, 2) {
		t.Errorf("line 001 week dates = %v", news.WeekDates)
	}

	cinema := est.Lines[1]
	if got := schedule.FormatDays(cinema.Days); got != "Sa,Su" {
		t.Errorf("line 002 days = %s", got)
	}
	if cinema.Time.String() != "06:00-08:00" {
		t.Errorf("line 002 time = %s", cinema.Time)
	}
	if w := cinema.WeeklySpots; len(w) != 4 || w[2] != 2 || w[3] != 2 {
		t.Errorf("line 002 weekly = %v", w)
	}
}

func TestDvDate(t *testing.T) {
	got, ok := dvDate("JAN26/26")
	if !ok || got != schedule.Date(2026, 1, 26) {
		t.Errorf("dvDate = %s %v", got, ok)
	}
	if _, ok := dvDate("26/01/26"); ok {
		t.Error("numeric month accepted")
	}
}

func TestDaviselenNoSchedule(t *testing.T) {
	if _, err := (&daviselenParser{}).Parse(NewDocument("cover page only")); err == nil {
		t.Fatal("expected error")
	}
}
