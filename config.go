package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// ReportConfig holds the sample incomes for the breakdown tables.
type ReportConfig struct {
	SampleIncomes []float64 `yaml:"sample_incomes" json:"sample_incomes"`
}

// GetSampleIncomes returns the configured sample incomes, using the
// defaults if not set.
func (r *ReportConfig) GetSampleIncomes() []float64 {
	if len(r.SampleIncomes) == 0 {
		return []float64{0, 10000, 50000, 100000, 150000}
	}
	return r.SampleIncomes
}

// CurveConfig holds the income grid settings for the HTML chart.
type CurveConfig struct {
	MaxIncome float64 `yaml:"max_income" json:"max_income"`
	Points    int     `yaml:"points" json:"points"`
	Title     string  `yaml:"title" json:"title"`
}

// GetMaxIncome returns the configured top of the income grid, using the
// default if not set.
func (c *CurveConfig) GetMaxIncome() float64 {
	if c.MaxIncome <= 0 {
		return 150000
	}
	return c.MaxIncome
}

// GetPoints returns the configured number of grid points, using the
// default if not set.
func (c *CurveConfig) GetPoints() int {
	if c.Points < 2 {
		return 1501
	}
	return c.Points
}

// GetTitle returns the chart title, derived from the schedule year if
// not set.
func (c *CurveConfig) GetTitle(schedule *Schedule) string {
	if c.Title != "" {
		return c.Title
	}
	if schedule.Year > 0 {
		return fmt.Sprintf("Dutch Income Tax %d", schedule.Year)
	}
	return "Dutch Income Tax"
}

// Config holds the complete configuration.
type Config struct {
	Schedule Schedule     `yaml:"schedule" json:"schedule"`
	Report   ReportConfig `yaml:"report" json:"report"`
	Curve    CurveConfig  `yaml:"curve" json:"curve"`
}

// LoadConfig loads configuration from a YAML file and validates the
// schedule it carries.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	if err := config.Schedule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule in %s: %w", filename, err)
	}

	return &config, nil
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	// Add a header comment with instructions
	header := []byte(`# Dutch Income Tax Calculator Configuration
#
# schedule: the bracket and credit schedules for one tax year.
#   Amounts in EUR, rates as decimals (0.3693 = 36.93%).
#   Mind the off-by-one conventions of the credit schedules; they are
#   part of the published tables (see default-config.yaml).
# report.sample_incomes: incomes for the console and PDF tables.
# curve: income grid for the HTML chart.

`)
	content := append(header, data...)
	return os.WriteFile(filename, content, 0644)
}

// LoadDefaultConfig loads the configuration from the embedded
// default-config.yaml (compiled into the binary).
func LoadDefaultConfig() (*Config, error) {
	var config Config
	err := yaml.Unmarshal([]byte(defaultConfigYAML), &config)
	if err != nil {
		return nil, err
	}

	if err := config.Schedule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid embedded default schedule: %w", err)
	}

	return &config, nil
}
