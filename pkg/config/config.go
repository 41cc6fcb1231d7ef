// Package config loads and saves the TOML-backed defaults shared by
// both CLI binaries: default entry point, output column selection, and
// the simulator's execute/trace defaults. The max_instructions setting
// is stored and round-tripped, but neither binary reads it: the
// simulator loop is not capped and runs until an invalid decode.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the persisted defaults for both binaries. In rv32dis,
// any column flag on the command line replaces the configured column
// selection and --entry replaces default_entry in rv32vm; rv32vm's
// --execute and --trace are combined with the configured values, so
// either the flag or the setting enables the mode.
type Config struct {
	Disassembler struct {
		ShowPC    bool `toml:"show_pc"`
		ShowHex   bool `toml:"show_hex"`
		ShowAscii bool `toml:"show_ascii"`
		ShowAsm   bool `toml:"show_asm"`
	} `toml:"disassembler"`

	Simulator struct {
		DefaultEntry    string `toml:"default_entry"`
		Execute         bool   `toml:"execute"`
		MaxInstructions int    `toml:"max_instructions"`
		Trace           bool   `toml:"trace"`
	} `toml:"simulator"`
}

// DefaultConfig returns the built-in defaults: all four disassembly
// columns shown, fetch-decode-print only (no execution), entry point
// 0, and MaxInstructions set to 1,000,000 (a value no binary
// consults).
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Disassembler.ShowPC = true
	cfg.Disassembler.ShowHex = true
	cfg.Disassembler.ShowAscii = true
	cfg.Disassembler.ShowAsm = true
	cfg.Simulator.DefaultEntry = "0x0"
	cfg.Simulator.Execute = false
	cfg.Simulator.MaxInstructions = 1_000_000
	cfg.Simulator.Trace = false
	return cfg
}

// Path returns the platform-specific configuration file path, mirroring
// XDG conventions on Unix and %APPDATA% on Windows.
func Path() string {
	switch runtime.GOOS {
	case "windows":
		dir := os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(dir, "rv32", "config.toml")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		return filepath.Join(home, ".config", "rv32", "config.toml")
	}
}

// Load loads configuration from the default path, falling back to
// DefaultConfig when no file exists.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads configuration from path, falling back to
// DefaultConfig when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to the default configuration path, creating parent
// directories as needed.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes c to path in TOML form.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("config: creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}
	return nil
}
