package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jgoulah/gascalc/internal/config"
	"github.com/jgoulah/gascalc/internal/database"
	"github.com/jgoulah/gascalc/internal/entries"
	"github.com/jgoulah/gascalc/pkg/models"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:   "gascalc",
	Short: "Calculate daily oxygen usage from logged flow changes",
	Long: `gascalc turns a log of timestamped gas flow changes into liters of oxygen
(and diluent, in no-ambient mode) consumed per calendar day, and renders the
totals in the billing-code format used for charge entry.

Entries are typed as DDHHMM (or HHMM to reuse the previous day) followed by the
flow in L/min and, in fraction mode, the inspired oxygen percentage.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "report archive file (default is ./reports.db)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// getDBPath returns the archive path: flag, then config, then default
func getDBPath(cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.GetDatabasePath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// saveConfig saves the configuration file
func saveConfig(cfg *config.Config) error {
	return config.Save(getConfigPath(), cfg)
}

// openDB opens the report archive
func openDB(cfg *config.Config) (*database.DB, error) {
	path := getDBPath(cfg)

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}

// newStore creates an entry store placed in the configured timezone and month
func newStore(cfg *config.Config) (*entries.Store, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opts := []entries.Option{entries.WithLocation(loc)}
	if cfg.HasMonth() {
		opts = append(opts, entries.WithMonth(cfg.Year, time.Month(cfg.Month)))
	}
	return entries.NewStore(opts...), nil
}

// addModeFlags registers --fraction and --no-ambient on cmd
func addModeFlags(cmd *cobra.Command, fraction, noAmbient *bool) {
	cmd.Flags().BoolVar(fraction, "fraction", false, "Track inspired oxygen fraction (overrides config)")
	cmd.Flags().BoolVar(noAmbient, "no-ambient", false, "Source gas is not diluted by room air; also track diluent (overrides config)")
}

// resolveMode applies explicitly set mode flags on top of the config
func resolveMode(cmd *cobra.Command, cfg *config.Config, fraction, noAmbient bool) models.Mode {
	mode := models.Mode{Fraction: cfg.FractionMode, NoAmbient: cfg.NoAmbientMode}
	if cmd.Flags().Changed("fraction") {
		mode.Fraction = fraction
	}
	if cmd.Flags().Changed("no-ambient") {
		mode.NoAmbient = noAmbient
	}
	return mode.Normalize()
}
