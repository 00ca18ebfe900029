package main

import (
	"fmt"

	"github.com/jgoulah/gascalc/pkg/models"
	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:   "mode [plain|fraction|no-ambient]",
	Short: "Show or set the default calculation mode",
	Long: `Without arguments prints the mode stored in the config file. With an argument
stores it as the default for calc and session:

  plain       flow is pure oxygen
  fraction    flow is diluted by room air; only oxygen above 21% counts
  no-ambient  flow is an undiluted oxygen/diluent mix; both are tracked`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"plain", "fraction", "no-ambient"},
	RunE:      runMode,
}

func init() {
	rootCmd.AddCommand(modeCmd)
}

func runMode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintf(out, "Mode: %s\n", cfg.Mode())
		return nil
	}

	var mode models.Mode
	switch args[0] {
	case "plain":
	case "fraction":
		mode = models.Mode{Fraction: true}
	case "no-ambient":
		mode = models.Mode{Fraction: true, NoAmbient: true}
	default:
		return fmt.Errorf("unknown mode: %s (available: plain, fraction, no-ambient)", args[0])
	}

	cfg.FractionMode = mode.Fraction
	cfg.NoAmbientMode = mode.NoAmbient
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(out, "✓ Mode set to %s\n", mode)
	return nil
}
