package main

import (
	"fmt"
	"time"

	"github.com/jgoulah/gascalc/internal/publisher"
	"github.com/jgoulah/gascalc/pkg/models"
	"github.com/spf13/cobra"
)

var (
	publishAll   bool
	publishLimit int
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish archived daily totals to MQTT / Home Assistant",
	Long:  `Reads archived daily totals from the report archive and publishes them to the MQTT broker and/or Home Assistant configured in config.yaml.`,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishAll, "all", false, "Force republish all records (ignore published flag)")
	publishCmd.Flags().IntVar(&publishLimit, "limit", 0, "Limit number of records to publish (0 = no limit)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	// Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Create publisher
	pub, err := publisher.New(cfg.MQTT, cfg.HomeAssistant)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	// Open database
	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var data []models.ArchivedDay
	if publishAll {
		data, err = db.ListUsage()
	} else {
		data, err = db.ListUnpublishedUsage()
	}
	if err != nil {
		return fmt.Errorf("listing archived days: %w", err)
	}

	if len(data) == 0 {
		if publishAll {
			fmt.Fprintln(out, "No archived data found")
		} else {
			fmt.Fprintln(out, "No unpublished data found")
		}
		return nil
	}

	// Apply limit if specified
	if publishLimit > 0 && len(data) > publishLimit {
		data = data[:publishLimit]
		fmt.Fprintf(out, "Limiting to %d records (--limit flag)\n", publishLimit)
	}

	fmt.Fprintf(out, "Publishing %d records...\n", len(data))
	published := 0
	for i, record := range data {
		fmt.Fprintf(out, "[%d/%d] Publishing day %d (%s L oxygen)... ", i+1, len(data), record.Day, formatLiters(record.Oxygen))
		if err := pub.Publish(record); err != nil {
			fmt.Fprintf(out, "FAILED: %v\n", err)
			continue
		}

		// Mark record as published in database
		if err := db.MarkPublished(record.ID); err != nil {
			fmt.Fprintf(out, "✓ (warning: failed to mark as published: %v)\n", err)
		} else {
			fmt.Fprintf(out, "✓\n")
		}
		published++
	}

	fmt.Fprintf(out, "\nTotal records published: %d/%d\n", published, len(data))
	return nil
}
