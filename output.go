package main

import (
	"fmt"
	"strings"
)

// addThousands inserts comma separators into the integer part of an
// already formatted number ("1234567.89" -> "1,234,567.89").
func addThousands(s string) string {
	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		fracPart = s[dot:]
	}

	if len(intPart) <= 3 {
		return intPart + fracPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + fracPart
}

// FormatEuro formats an amount as a currency string with two decimals.
func FormatEuro(amount float64) string {
	return "€ " + addThousands(fmt.Sprintf("%.2f", amount))
}

// FormatPercent formats a rate (0.3693) as a percentage string with two
// decimals (36.93%).
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// formatAxisEuro formats an amount for chart axis labels ("€ 50k").
func formatAxisEuro(amount float64) string {
	if amount >= 1000 {
		return fmt.Sprintf("€ %.0fk", amount/1000)
	}
	return fmt.Sprintf("€ %.0f", amount)
}

// breakdownRows returns the label/value rows of a breakdown table for one
// gross income.
func breakdownRows(schedule *Schedule, income float64) [][2]string {
	return [][2]string{
		{"Gross income", FormatEuro(income)},
		{"Bracket tax", FormatEuro(schedule.BracketTax(income))},
		{"General tax credit", FormatEuro(schedule.GeneralCredit.CreditFor(income))},
		{"Labour tax credit", FormatEuro(schedule.LabourCredit.CreditFor(income))},
		{"Total tax", FormatEuro(schedule.TotalTax(income))},
		{"Net income", FormatEuro(schedule.NetIncome(income))},
		{"Effective rate", FormatPercent(schedule.EffectiveRate(income))},
		{"Marginal rate", FormatPercent(schedule.MarginalRate(income))},
	}
}

// PrintHeader prints the schedule summary above the breakdown tables.
func PrintHeader(schedule *Schedule) {
	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Printf("║              DUTCH INCOME TAX %-4d                   ║\n", schedule.Year)
	fmt.Println("╚══════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("Schedule:")
	fmt.Println("─────────")
	fmt.Printf("  Bracket: %s up to %s, %s above\n",
		FormatPercent(schedule.Bracket.LowRate),
		FormatEuro(schedule.Bracket.Threshold),
		FormatPercent(schedule.Bracket.HighRate))
	fmt.Printf("  General credit: max %s, phased out %s at %s\n",
		FormatEuro(schedule.GeneralCredit.Maximum),
		FormatEuro(schedule.GeneralCredit.PhaseOutStart)+"–"+FormatEuro(schedule.GeneralCredit.PhaseOutEnd),
		FormatPercent(schedule.GeneralCredit.PhaseOutRate))
	fmt.Printf("  Labour credit: max %s, zero from %s\n",
		FormatEuro(schedule.LabourCredit.Anchor3),
		FormatEuro(schedule.LabourCredit.Threshold4))
	fmt.Println()
}

// PrintBreakdown prints the breakdown table for one gross income.
func PrintBreakdown(schedule *Schedule, income float64) {
	rows := breakdownRows(schedule, income)

	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row[0]) > labelWidth {
			labelWidth = len(row[0])
		}
		// The € sign is 3 bytes in UTF-8 but 1 column wide.
		width := len(row[1])
		if strings.HasPrefix(row[1], "€") {
			width -= 2
		}
		if width > valueWidth {
			valueWidth = width
		}
	}

	border := "├" + strings.Repeat("─", labelWidth+2) + "┼" + strings.Repeat("─", valueWidth+2) + "┤"
	fmt.Println("┌" + strings.Repeat("─", labelWidth+2) + "┬" + strings.Repeat("─", valueWidth+2) + "┐")
	for i, row := range rows {
		pad := valueWidth - len(row[1])
		if strings.HasPrefix(row[1], "€") {
			pad += 2
		}
		fmt.Printf("│ %-*s │ %s%s │\n", labelWidth, row[0], strings.Repeat(" ", pad), row[1])
		if i == 0 || i == len(rows)-3 {
			fmt.Println(border)
		}
	}
	fmt.Println("└" + strings.Repeat("─", labelWidth+2) + "┴" + strings.Repeat("─", valueWidth+2) + "┘")
	fmt.Println()
}

// PrintAllBreakdowns prints the breakdown tables for all sample incomes.
func PrintAllBreakdowns(schedule *Schedule, incomes []float64) {
	for _, income := range incomes {
		PrintBreakdown(schedule, income)
	}
}
