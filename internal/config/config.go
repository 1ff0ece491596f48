// =============================================================================
// WinBag2Hiopos - Configuration Module
// =============================================================================
//
// Loads the application configuration from a single YAML file. Every setting
// has a sensible default so a bare installation only needs to point input_dir
// at the folder the registers export into.
//
// The archive and import-output folders default to subfolders of the input
// folder ("Old Files", "Imported Files"), matching where operators have
// always looked for them.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zneed99/WinBag2Hiopos/internal/pos"
)

// Config holds the full application configuration.
type Config struct {
	// InputDir is the folder the registers export into and the watcher
	// observes. Required.
	InputDir string `yaml:"input_dir"`

	// OutputDir receives the generated WinBag interchange files.
	// Default: "<input_dir>/Exported Files".
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir receives consumed input files after a successful run.
	// Default: "<input_dir>/Old Files".
	ArchiveDir string `yaml:"archive_dir"`

	// ImportOutputDir receives the four files derived from an accounting
	// import. Default: "<input_dir>/Imported Files".
	ImportOutputDir string `yaml:"import_output_dir"`

	// ImportTrigger is the file name that starts the import pipeline when it
	// appears in the input folder. Default: "pcs.adm".
	ImportTrigger string `yaml:"import_trigger"`

	// Keywords identify the export files by a fragment of their name.
	Keywords Keywords `yaml:"keywords"`

	// LogLevel controls verbosity: "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`

	// Timezone for timestamps in file names. The registers run on Swedish
	// store clocks. Default: "Europe/Stockholm".
	Timezone string `yaml:"timezone"`

	// DebounceMillis is how long the watcher waits after the last filesystem
	// event before checking whether a batch is complete. Default: 2000.
	DebounceMillis int `yaml:"debounce_ms"`
}

// Keywords mirrors pos.Keywords in YAML form.
type Keywords struct {
	Sales        string `yaml:"sales"`
	Payment      string `yaml:"payment"`
	Delivery     string `yaml:"delivery"`
	VAT          string `yaml:"vat"`
	GiftCardUsed string `yaml:"gift_card_used"`
	GiftCardSold string `yaml:"gift_card_sold"`
}

// Load reads the configuration file and applies defaults. A missing file is
// not an error: the defaults alone describe a working local setup.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "Exported Files")
	}
	if c.ArchiveDir == "" {
		c.ArchiveDir = filepath.Join(c.InputDir, "Old Files")
	}
	if c.ImportOutputDir == "" {
		c.ImportOutputDir = filepath.Join(c.InputDir, "Imported Files")
	}
	if c.ImportTrigger == "" {
		c.ImportTrigger = "pcs.adm"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/Stockholm"
	}
	if c.DebounceMillis <= 0 {
		c.DebounceMillis = 2000
	}

	def := pos.DefaultKeywords()
	if c.Keywords.Sales == "" {
		c.Keywords.Sales = def.Sales
	}
	if c.Keywords.Payment == "" {
		c.Keywords.Payment = def.Payment
	}
	if c.Keywords.Delivery == "" {
		c.Keywords.Delivery = def.Delivery
	}
	if c.Keywords.VAT == "" {
		c.Keywords.VAT = def.VAT
	}
	if c.Keywords.GiftCardUsed == "" {
		c.Keywords.GiftCardUsed = def.GiftCardUsed
	}
	if c.Keywords.GiftCardSold == "" {
		c.Keywords.GiftCardSold = def.GiftCardSold
	}
}

// PosKeywords converts the YAML keyword block into the loader's form.
func (c *Config) PosKeywords() pos.Keywords {
	return pos.Keywords{
		Sales:        c.Keywords.Sales,
		Payment:      c.Keywords.Payment,
		Delivery:     c.Keywords.Delivery,
		VAT:          c.Keywords.VAT,
		GiftCardUsed: c.Keywords.GiftCardUsed,
		GiftCardSold: c.Keywords.GiftCardSold,
	}
}

// Location resolves the configured timezone, falling back to the local clock
// when the zone database does not know it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Debounce returns the watcher debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}
