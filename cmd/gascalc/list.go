package main

import (
	"fmt"

	"github.com/jgoulah/gascalc/pkg/models"
	"github.com/spf13/cobra"
)

var listReport string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived usage reports",
	Long:  `Displays the daily totals of every archived report, newest first.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listReport, "report", "", "Only show this report id")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var data []models.ArchivedDay
	if listReport != "" {
		data, err = db.GetReport(listReport)
	} else {
		data, err = db.ListUsage()
	}
	if err != nil {
		return fmt.Errorf("listing reports: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(data) == 0 {
		fmt.Fprintln(out, "No reports found")
		return nil
	}

	reports := 0
	for i, record := range data {
		if i == 0 || record.ReportID != data[i-1].ReportID {
			if i > 0 {
				fmt.Fprintln(out, rule)
			}
			fmt.Fprintf(out, "\nReport %s (%s, saved %s)\n", record.ReportID, record.Mode,
				record.CreatedAt.Local().Format("2006-01-02 15:04"))
			fmt.Fprintln(out, rule)
			fmt.Fprintf(out, "%-5s  %14s  %14s\n", "Day", "Oxygen (L)", "Diluent (L)")
			fmt.Fprintln(out, rule)
			reports++
		}
		fmt.Fprintf(out, "%-5d  %14s  %14s\n", record.Day, formatLiters(record.Oxygen), formatLiters(record.Diluent))
	}
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%d reports, %d days\n", reports, len(data))

	return nil
}
