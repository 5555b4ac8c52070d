package schedule

import (
	"errors"
	"testing"
)

func daysEqual(a, b []Day) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExpandDayPattern(t *testing.T) {
	tests := []struct {
		in   string
		want []Day
	}{
		{"M-F", []Day{Monday, Tuesday, Wednesday, Thursday, Friday}},
		{"Sa-Su", []Day{Saturday, Sunday}},
		{"M-Su", []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}},
		{"M,W,F", []Day{Monday, Wednesday, Friday}},
		{"M-Tu,Th-Su", []Day{Monday, Tuesday, Thursday, Friday, Saturday, Sunday}},
		{"Sat-Sun", []Day{Saturday, Sunday}},
		{"Mon-Fri", []Day{Monday, Tuesday, Wednesday, Thursday, Friday}},
		{"W", []Day{Wednesday}},
		{"Su", []Day{Sunday}},
		{"MTuWThF", []Day{Monday, Tuesday, Wednesday, Thursday, Friday}},
		{"SaSu", []Day{Saturday, Sunday}},
		{" M-F ", []Day{Monday, Tuesday, Wednesday, Thursday, Friday}},
	}
	for _, tt := range tests {
		got, err := ExpandDayPattern(tt.in)
		if err != nil {
			t.Errorf("ExpandDayPattern(%q): %v", tt.in, err)
			continue
		}
		if !daysEqual(got, tt.want) {
			t.Errorf("ExpandDayPattern(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExpandDayPatternUnknown(t *testing.T) {
	for _, in := range []string{"", "F-M", "weekdays", "M-", "Q", "M--F"} {
		_, err := ExpandDayPattern(in)
		var perr *UnknownDayPatternError
		if !errors.As(err, &perr) {
			t.Errorf("ExpandDayPattern(%q) err = %v, want UnknownDayPatternError", in, err)
		}
	}
}

func TestExpandDayMarks(t *testing.T) {
	got, err := ExpandDayMarks("X X X X X 0 0")
	if err != nil {
		t.Fatal(err)
	}
	want := []Day{Monday, Tuesday, Wednesday, Thursday, Friday}
	if !daysEqual(got, want) {
		t.Errorf("ExpandDayMarks = %v, want %v", got, want)
	}

	if _, err := ExpandDayMarks("0 0 0 0 0 0 0"); err == nil {
		t.Error("all-zero mark grid should fail")
	}
}

func TestFormatDays(t *testing.T) {
	tests := []struct {
		in   []Day
		want string
	}{
		{[]Day{Monday, Tuesday, Wednesday, Thursday, Friday}, "M-F"},
		{[]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}, "M-Su"},
		{[]Day{Monday, Wednesday, Friday}, "M,W,F"},
		{[]Day{Saturday, Sunday}, "Sa,Su"},
		{[]Day{Wednesday}, "W"},
	}
	for _, tt := range tests {
		if got := FormatDays(tt.in); got != tt.want {
			t.Errorf("FormatDays(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDaysRoundTrip(t *testing.T) {
	for _, pattern := range []string{"M-F", "M-Su", "Sa,Su", "M,W,F", "Tu-Th"} {
		days, err := ExpandDayPattern(pattern)
		if err != nil {
			t.Fatalf("ExpandDayPattern(%q): %v", pattern, err)
		}
		if got := FormatDays(days); got != pattern {
			t.Errorf("round trip %q -> %q", pattern, got)
		}
	}
}
