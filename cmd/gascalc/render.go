package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/jgoulah/gascalc/internal/calculator"
	"github.com/jgoulah/gascalc/internal/entries"
	"github.com/jgoulah/gascalc/pkg/models"
)

const rule = "----------------------------------------"

// formatLiters renders liters with thousands separators and one decimal at most
func formatLiters(v float64) string {
	return humanize.CommafWithDigits(v, 1)
}

func formatFlow(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// printEntries lists records numbered from 1
func printEntries(w io.Writer, records []models.FlowRecord, mode models.Mode) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No entries yet")
		return
	}
	for i, r := range records {
		line := fmt.Sprintf("%3d  %-9s %6s L/min", i+1, entries.FormatTimestamp(r.Timestamp), formatFlow(r.Flow))
		if mode.Fraction {
			line += fmt.Sprintf("  FiO2 %d%%", r.Fraction)
		}
		fmt.Fprintln(w, line)
	}
}

// printUsage renders the per-day table followed by the total
func printUsage(w io.Writer, usage models.Usage, mode models.Mode) {
	if len(usage) == 0 {
		fmt.Fprintln(w, "No usage")
		return
	}

	diluent := mode.TracksDiluent()

	fmt.Fprintln(w, rule)
	if diluent {
		fmt.Fprintf(w, "%-5s  %14s  %14s\n", "Day", "Oxygen (L)", "Diluent (L)")
	} else {
		fmt.Fprintf(w, "%-5s  %14s\n", "Day", "Oxygen (L)")
	}
	fmt.Fprintln(w, rule)

	for _, day := range usage.Days() {
		d := usage[day]
		if diluent {
			fmt.Fprintf(w, "%-5d  %14s  %14s\n", day, formatLiters(d.Oxygen), formatLiters(d.Diluent))
		} else {
			fmt.Fprintf(w, "%-5d  %14s\n", day, formatLiters(d.Oxygen))
		}
	}

	total := usage.Total()
	fmt.Fprintln(w, rule)
	if diluent {
		fmt.Fprintf(w, "Total: %s L oxygen, %s L diluent (%d days)\n", formatLiters(total.Oxygen), formatLiters(total.Diluent), len(usage))
	} else {
		fmt.Fprintf(w, "Total: %s L oxygen (%d days)\n", formatLiters(total.Oxygen), len(usage))
	}
}

// printBilling writes each day's billing text under a day header
func printBilling(w io.Writer, usage models.Usage, mode models.Mode) {
	for _, day := range usage.Days() {
		fmt.Fprintf(w, "\nDay %d:\n%s\n", day, calculator.BillingText(usage[day], mode))
	}
}
