package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

func main() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Dutch Income Tax Calculator

Computes box 1 income tax and the general and labour tax credits for a
gross income under one tax year's schedule, prints breakdown tables for a
set of sample incomes, and renders the income/tax curves to a static HTML
chart (dual axis: EUR left, percentage right, hover for all values).

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                              Breakdown tables for the configured samples
  %s -incomes 0,36500,73031       Breakdown tables for specific incomes
  %s -html -open                  Render the curve chart and open it
  %s -pdf                         Write the breakdown tables to PDF
  %s -config 2024.yaml -html      Use another tax year's schedule

Configuration:
  Edit config.yaml to change the schedule, sample incomes and curve grid.
  Without a config file the embedded 2023 schedule is used; -save-config
  writes it out as a starting point for other years.
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	// Command line flags
	configFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	incomesFlag := flag.String("incomes", "", "Comma-separated gross incomes for the breakdown tables (overrides config)")
	generateHTML := flag.Bool("html", false, "Render the income/tax curves to a static HTML chart")
	htmlOut := flag.String("out", "index.html", "Output file for the HTML chart")
	generatePDF := flag.Bool("pdf", false, "Write the breakdown tables to a PDF report")
	pdfOut := flag.String("pdf-out", "report.pdf", "Output file for the PDF report")
	openReport := flag.Bool("open", false, "Open the generated HTML chart in the default browser")
	saveConfig := flag.Bool("save-config", false, "Write the active configuration to the config file and exit")
	flag.Parse()

	// Load configuration, falling back to the embedded default schedule
	config, err := LoadConfig(*configFile)
	if os.IsNotExist(err) {
		config, err = LoadDefaultConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *saveConfig {
		if err := SaveConfig(config, *configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration saved to %s\n", *configFile)
		return
	}

	schedule := &config.Schedule

	incomes := config.Report.GetSampleIncomes()
	if *incomesFlag != "" {
		incomes, err = parseIncomes(*incomesFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -incomes: %v\n", err)
			os.Exit(1)
		}
	}
	for _, income := range incomes {
		if err := ValidateIncome(income); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	PrintHeader(schedule)
	PrintAllBreakdowns(schedule, incomes)

	if *generateHTML {
		points, err := SampleCurve(schedule, config.Curve.GetMaxIncome(), config.Curve.GetPoints())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error sampling curves: %v\n", err)
			os.Exit(1)
		}
		title := config.Curve.GetTitle(schedule)
		if err := GenerateCurveReport(points, title, *htmlOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating HTML chart: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated chart: %s\n", *htmlOut)
		if *openReport {
			openBrowser(*htmlOut)
		}
	}

	if *generatePDF {
		title := config.Curve.GetTitle(schedule)
		if err := GeneratePDFReport(schedule, incomes, title, *pdfOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating PDF report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated report: %s\n", *pdfOut)
	}
}

// parseIncomes parses a comma-separated list of gross incomes.
func parseIncomes(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	incomes := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		val, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid income %q", part)
		}
		if err := ValidateIncome(val); err != nil {
			return nil, err
		}
		incomes = append(incomes, val)
	}
	if len(incomes) == 0 {
		return nil, fmt.Errorf("no incomes given")
	}
	return incomes, nil
}

// openBrowser opens a file in the default browser
func openBrowser(filename string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", filename)
	case "darwin":
		cmd = exec.Command("open", filename)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", filename)
	default:
		fmt.Fprintf(os.Stderr, "Cannot open browser on %s\n", runtime.GOOS)
		return
	}

	err := cmd.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
	}
}
