package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jgoulah/gascalc/internal/config"
	"github.com/jgoulah/gascalc/pkg/models"
	"github.com/spf13/cobra"
)

func TestFormatLiters(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{600, "600"},
		{2164.6, "2,164.6"},
		{11160, "11,160"},
	}
	for _, tt := range tests {
		if got := formatLiters(tt.in); got != tt.want {
			t.Errorf("formatLiters(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintEntries(t *testing.T) {
	var buf bytes.Buffer
	printEntries(&buf, nil, models.Mode{})
	if buf.String() != "No entries yet\n" {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	records := []models.FlowRecord{
		{Timestamp: time.Date(2024, 1, 5, 9, 7, 0, 0, time.UTC), Flow: 1.5, Fraction: 40},
	}
	printEntries(&buf, records, models.Mode{Fraction: true})
	got := buf.String()
	for _, want := range []string{"1  5 09:07", "1.5 L/min", "FiO2 40%"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestPrintUsage_DiluentColumn(t *testing.T) {
	usage := models.Usage{4: {Oxygen: 5400, Diluent: 3600}}

	var buf bytes.Buffer
	printUsage(&buf, usage, models.Mode{Fraction: true, NoAmbient: true})
	if !strings.Contains(buf.String(), "Diluent (L)") {
		t.Errorf("no-ambient table lacks diluent column:\n%s", buf.String())
	}

	buf.Reset()
	printUsage(&buf, usage, models.Mode{Fraction: true})
	if strings.Contains(buf.String(), "Diluent") {
		t.Errorf("fraction table shows diluent:\n%s", buf.String())
	}
}

func TestResolveMode(t *testing.T) {
	cfg := &config.Config{FractionMode: true, NoAmbientMode: true}

	cmd := &cobra.Command{}
	var fraction, noAmbient bool
	addModeFlags(cmd, &fraction, &noAmbient)

	if got := resolveMode(cmd, cfg, fraction, noAmbient); got != (models.Mode{Fraction: true, NoAmbient: true}) {
		t.Errorf("config mode = %+v", got)
	}

	if err := cmd.ParseFlags([]string{"--fraction=false"}); err != nil {
		t.Fatal(err)
	}
	if got := resolveMode(cmd, cfg, fraction, noAmbient); got != (models.Mode{}) {
		t.Errorf("--fraction=false mode = %+v, want plain", got)
	}
}
