package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/sheetdiff/pkg/constants"
)

// TestLoadConfig verifies basic config loading and defaults.
func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.SheetA != constants.DefaultSheetA {
		t.Errorf("SheetA = %q, want %q", config.SheetA, constants.DefaultSheetA)
	}
	if config.SheetB != constants.DefaultSheetB {
		t.Errorf("SheetB = %q, want %q", config.SheetB, constants.DefaultSheetB)
	}
	if config.Output != constants.DefaultOutputPath {
		t.Errorf("Output = %q, want %q", config.Output, constants.DefaultOutputPath)
	}
	if config.LogFormat != "auto" {
		t.Errorf("LogFormat = %q, want auto", config.LogFormat)
	}
}

// TestConfig_EnvironmentVariables verifies SHEETDIFF_ variables are read.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHEETDIFF_INPUT", "input.xlsx")
	t.Setenv("SHEETDIFF_SHEET_A", "Left")
	t.Setenv("SHEETDIFF_NOW", "2025-06-15")
	t.Setenv("SHEETDIFF_VERBOSE", "true")
	t.Setenv("SHEETDIFF_FORMAT", "json")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Input != "input.xlsx" {
		t.Errorf("Input = %q, want input.xlsx", config.Input)
	}
	if config.SheetA != "Left" {
		t.Errorf("SheetA = %q, want Left", config.SheetA)
	}
	if config.Now != "2025-06-15" {
		t.Errorf("Now = %q, want 2025-06-15", config.Now)
	}
	if !config.Verbose {
		t.Error("SHEETDIFF_VERBOSE not loaded")
	}
	if config.Format != "json" {
		t.Errorf("Format = %q, want json", config.Format)
	}
}

// TestConfig_File verifies an explicit config file is read.
func TestConfig_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "sheetdiff.yaml")
	content := "input: book.xlsx\nsheet_b: Right\nignore:\n  - Pizza\n  - Right\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.Input != "book.xlsx" {
		t.Errorf("Input = %q, want book.xlsx", config.Input)
	}
	if config.SheetB != "Right" {
		t.Errorf("SheetB = %q, want Right", config.SheetB)
	}
	if len(config.IgnoredFields) != 2 || config.IgnoredFields[0] != "Pizza" {
		t.Errorf("IgnoredFields = %v, want [Pizza Right]", config.IgnoredFields)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
}

// TestConfig_MissingExplicitFile verifies a named config file must exist.
func TestConfig_MissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("LoadConfig() with a missing explicit file should fail")
	}
}

// TestConfig_UpdateFromFlags verifies flag values take precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	c := &Config{Format: "yaml", LogLevel: "info"}
	c.UpdateFromFlags(true, false, true, "", "debug")

	if !c.Verbose || c.Quiet || !c.NoColor {
		t.Errorf("flags not applied: %+v", c)
	}
	if c.Format != "yaml" {
		t.Errorf("Format = %q, empty flag should keep yaml", c.Format)
	}
	if c.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", c.LogLevel)
	}
}
