package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with a temp config and returns stdout
func runCLI(t *testing.T, configYAML string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(configYAML), 0600); err != nil {
		t.Fatal(err)
	}

	calcDay, calcSave = 0, false
	listReport = ""
	t.Cleanup(func() { cfgFile, dbPath = "", "" })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--db", filepath.Join(dir, "reports.db")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeEntries(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entries.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

const utcJanuary = "timezone: UTC\nyear: 2024\nmonth: 1\n"

func TestCalc_Plain(t *testing.T) {
	file := writeEntries(t, "# overnight\n012200 5\n020800 1\n")
	out, err := runCLI(t, utcJanuary, "calc", file)
	if err != nil {
		t.Fatalf("calc failed: %v", err)
	}
	for _, want := range []string{
		"Mode: plain",
		"Day 1:\n402400+552010/600*1",
		"Day 2:\n402400+552010/3360*1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCalc_DayNoAmbient(t *testing.T) {
	file := writeEntries(t, "041400 15 60\n")
	out, err := runCLI(t, utcJanuary+"fraction_mode: true\nno_ambient_mode: true\n", "calc", "--day", "4", file)
	if err != nil {
		t.Fatalf("calc failed: %v", err)
	}
	if out != "402400+552010/5400*1\n402400+552010/3600*1\n" {
		t.Errorf("output = %q", out)
	}
}

func TestCalc_MissingDay(t *testing.T) {
	file := writeEntries(t, "041400 15\n")
	if _, err := runCLI(t, utcJanuary, "calc", "--day", "9", file); err == nil {
		t.Error("expected error for day without usage")
	}
}

func TestCalc_BadEntry(t *testing.T) {
	file := writeEntries(t, "010900 2\n012500 2\n")
	_, err := runCLI(t, utcJanuary, "calc", file)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want line number", err)
	}
}

func TestCalc_SaveThenList(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	db := filepath.Join(dir, "reports.db")
	os.WriteFile(cfgPath, []byte(utcJanuary), 0600)
	file := writeEntries(t, "011000 2\n")

	calcDay, calcSave = 0, false
	listReport = ""
	t.Cleanup(func() { cfgFile, dbPath = "", "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})

	rootCmd.SetArgs([]string{"--config", cfgPath, "--db", db, "calc", "--save", file})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("calc failed: %v", err)
	}

	calcSave = false
	out.Reset()
	rootCmd.SetArgs([]string{"--config", cfgPath, "--db", db, "list"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1,680") || !strings.Contains(out.String(), "1 reports, 1 days") {
		t.Errorf("list output:\n%s", out.String())
	}
}

func TestMode_SetAndShow(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	t.Cleanup(func() { cfgFile, dbPath = "", "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", cfgPath, "mode", "no-ambient"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("mode failed: %v", err)
	}

	out.Reset()
	rootCmd.SetArgs([]string{"--config", cfgPath, "mode"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("mode failed: %v", err)
	}
	if out.String() != "Mode: fraction, no ambient\n" {
		t.Errorf("output = %q", out.String())
	}
}
