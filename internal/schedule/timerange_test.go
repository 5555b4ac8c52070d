package schedule

import (
	"errors"
	"testing"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"6:00a-7:00p", "06:00-19:00"},
		{"6a-7a", "06:00-07:00"},
		{"7p-8p", "19:00-20:00"},
		{"11:30-12:00p", "11:30-12:00"},
		{"1130-12p", "11:30-12:00"},
		{"730p-8p", "19:30-20:00"},
		{"7-730p", "19:00-19:30"},
		{"11-2p", "11:00-14:00"},
		{"10a-2p", "10:00-14:00"},
		{"19:00-19:30", "19:00-19:30"},
		{"6:00 AM - 7:00 PM", "06:00-19:00"},
		{"11:00p-12:00a", "23:00-23:59"},
		{"11p-1a", "23:00-23:59"},
		{"5:00a-6:00a", "06:00-06:00"},
		{"12n-1p", "12:00-13:00"},
		{"11p-12m", "23:00-23:59"},
		{"4p-5p; 6p-7p", "16:00-19:00"},
	}
	for _, tt := range tests {
		got, err := ParseTimeRange(tt.in)
		if err != nil {
			t.Errorf("ParseTimeRange(%q): %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseTimeRange(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

// Equivalent spellings of the same window must normalize identically.
func TestParseTimeRangeEquivalence(t *testing.T) {
	pairs := [][2]string{
		{"1130-12p", "11:30-12:00p"},
		{"6a-7p", "6:00a-7:00p"},
		{"730p-8p", "7:30p-8:00p"},
	}
	for _, p := range pairs {
		a, err := ParseTimeRange(p[0])
		if err != nil {
			t.Fatalf("ParseTimeRange(%q): %v", p[0], err)
		}
		b, err := ParseTimeRange(p[1])
		if err != nil {
			t.Fatalf("ParseTimeRange(%q): %v", p[1], err)
		}
		if a != b {
			t.Errorf("%q = %s but %q = %s", p[0], a, p[1], b)
		}
	}
}

func TestParseTimeRangeAmbiguous(t *testing.T) {
	for _, in := range []string{"", "daytime", "6:00a", "-7p", "6a-", "6a-late"} {
		_, err := ParseTimeRange(in)
		var aerr *AmbiguousTimeError
		if !errors.As(err, &aerr) {
			t.Errorf("ParseTimeRange(%q) err = %v, want AmbiguousTimeError", in, err)
		}
	}
}

func TestParseTimeRangeWithFloor(t *testing.T) {
	got, err := ParseTimeRangeWithFloor("5:00a-7:00a", TimeOfDay{Hour: 5})
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "05:00-07:00" {
		t.Errorf("floor 05:00 got %s", got)
	}
}

func TestApplySundayRule(t *testing.T) {
	all := []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

	sixToSeven := TimeRange{Start: TimeOfDay{Hour: 6}, End: TimeOfDay{Hour: 7}}
	got := ApplySundayRule(all, sixToSeven)
	if ContainsDay(got, Sunday) || len(got) != 6 {
		t.Errorf("6-7a should drop Sunday, got %v", got)
	}

	wider := TimeRange{Start: TimeOfDay{Hour: 6}, End: TimeOfDay{Hour: 8}}
	if got := ApplySundayRule(all, wider); !ContainsDay(got, Sunday) {
		t.Errorf("6-8a should keep Sunday, got %v", got)
	}
}
