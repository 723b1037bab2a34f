package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultConfig(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("LoadDefaultConfig failed: %v", err)
	}

	// The embedded default must carry the same schedule as DefaultSchedule.
	if config.Schedule != DefaultSchedule() {
		t.Errorf("Embedded schedule differs from DefaultSchedule:\n%+v\n%+v",
			config.Schedule, DefaultSchedule())
	}

	samples := config.Report.GetSampleIncomes()
	expected := []float64{0, 10000, 50000, 100000, 150000}
	if len(samples) != len(expected) {
		t.Fatalf("Expected %d sample incomes, got %d", len(expected), len(samples))
	}
	for i, want := range expected {
		if samples[i] != want {
			t.Errorf("Sample income %d should be %.0f, got %.0f", i, want, samples[i])
		}
	}

	if config.Curve.GetMaxIncome() != 150000 {
		t.Errorf("Curve max income should be 150000, got %.0f", config.Curve.GetMaxIncome())
	}
	if config.Curve.GetPoints() != 1501 {
		t.Errorf("Curve points should be 1501, got %d", config.Curve.GetPoints())
	}
	if config.Curve.GetTitle(&config.Schedule) != "Dutch Income Tax 2023" {
		t.Errorf("Unexpected curve title: %q", config.Curve.GetTitle(&config.Schedule))
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("LoadDefaultConfig failed: %v", err)
	}

	filename := filepath.Join(t.TempDir(), "config.yaml")
	if err := SaveConfig(config, filename); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(filename)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Schedule != config.Schedule {
		t.Errorf("Schedule did not survive the round trip:\n%+v\n%+v",
			loaded.Schedule, config.Schedule)
	}
	if loaded.Curve.Title != config.Curve.Title {
		t.Errorf("Curve title did not survive the round trip: %q != %q",
			loaded.Curve.Title, config.Curve.Title)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}

func TestLoadConfig_RejectsInvalidSchedule(t *testing.T) {
	// Thresholds out of order must be rejected at load time, before any
	// evaluation happens against them.
	content := `schedule:
  year: 2023
  bracket:
    threshold: 73031
    low_rate: 0.3693
    high_rate: 0.4950
  general_credit:
    phase_out_start: 80000
    phase_out_end: 73031
    maximum: 3070
    phase_out_rate: 0.06095
  labour_credit:
    threshold_1: 10741
    threshold_2: 23201
    threshold_3: 37691
    threshold_4: 115295
    rate_1: 0.08231
    rate_2: 0.29861
    rate_3: 0.03085
    rate_4: 0.06510
    anchor_1: 884
    anchor_2: 4605
    anchor_3: 5052
`
	filename := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(filename)
	if err == nil || !strings.Contains(err.Error(), "invalid schedule") {
		t.Errorf("Expected an invalid schedule error, got %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	// Zero values fall back to the 2023 defaults.
	var config Config
	if got := config.Curve.GetMaxIncome(); got != 150000 {
		t.Errorf("Default max income should be 150000, got %.0f", got)
	}
	if got := config.Curve.GetPoints(); got != 1501 {
		t.Errorf("Default points should be 1501, got %d", got)
	}
	if got := len(config.Report.GetSampleIncomes()); got != 5 {
		t.Errorf("Default sample incomes should have 5 entries, got %d", got)
	}
	if got := config.Curve.GetTitle(&config.Schedule); got != "Dutch Income Tax" {
		t.Errorf("Default title without a year should be plain, got %q", got)
	}
}
