package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 4 || cfg.IncomingDir != "incoming" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.StartFloor.Hour != 6 || cfg.StartFloor.Minute != 0 {
		t.Errorf("floor = %s", cfg.StartFloor)
	}
	if cfg.Splitter.StationMarker != "CRTV-Cable" || cfg.Splitter.MarkerThreshold != 3 {
		t.Errorf("splitter = %+v", cfg.Splitter)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SCAN_WORKERS", "2")
	t.Setenv("START_FLOOR", "05:30")
	t.Setenv("SPLIT_MARKER_THRESHOLD", "5")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 2 || cfg.StartFloor.String() != "05:30" || cfg.Splitter.MarkerThreshold != 5 {
		t.Errorf("overrides = %+v", cfg)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("SCAN_WORKERS", "0")
	if _, err := FromEnv(); err == nil {
		t.Error("zero workers accepted")
	}
	t.Setenv("SCAN_WORKERS", "4")
	t.Setenv("START_FLOOR", "25:00")
	if _, err := FromEnv(); err == nil {
		t.Error("hour 25 accepted")
	}
}
