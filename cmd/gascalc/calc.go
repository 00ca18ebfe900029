package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jgoulah/gascalc/internal/calculator"
	"github.com/spf13/cobra"
)

var (
	calcFraction  bool
	calcNoAmbient bool
	calcDay       int
	calcSave      bool
)

var calcCmd = &cobra.Command{
	Use:   "calc [file]",
	Short: "Calculate daily usage from an entry file",
	Long: `Reads one entry per line ("DDHHMM FLOW [FIO2]", or "HHMM FLOW [FIO2]" to reuse
the previous entry's day) from a file, or stdin when no file or "-" is given,
and prints the per-day totals with their billing text.

Blank lines and lines starting with # are ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalc,
}

func init() {
	addModeFlags(calcCmd, &calcFraction, &calcNoAmbient)
	calcCmd.Flags().IntVar(&calcDay, "day", 0, "Only print the billing text for this day of month")
	calcCmd.Flags().BoolVar(&calcSave, "save", false, "Archive the computed totals")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mode := resolveMode(cmd, cfg, calcFraction, calcNoAmbient)

	store, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("creating entry store: %w", err)
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening entry file: %w", err)
		}
		defer f.Close()
		in = f
	}

	if _, err := store.Load(in, mode.Fraction); err != nil {
		return fmt.Errorf("loading entries: %w", err)
	}

	usage := store.Usage(mode)
	out := cmd.OutOrStdout()

	if calcDay > 0 {
		d, ok := usage[calcDay]
		if !ok {
			return fmt.Errorf("no usage on day %d", calcDay)
		}
		fmt.Fprintln(out, calculator.BillingText(d, mode))
	} else {
		fmt.Fprintf(out, "Mode: %s\n\n", mode)
		printEntries(out, store.Snapshot(), mode)
		fmt.Fprintln(out)
		printUsage(out, usage, mode)
		printBilling(out, usage, mode)
	}

	if calcSave {
		db, err := openDB(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		id, err := db.SaveReport(usage, mode)
		if err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Saved report %s (%d days)\n", id, len(usage))
	}

	return nil
}
