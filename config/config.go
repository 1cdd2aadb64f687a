/*
File    : cgoc/config/config.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package config loads compiler-wide settings from an optional TOML file,
falling back to built-in defaults when no file is present. CLI flags
always take precedence over whatever this package loads; main wires that
precedence, this package only owns the defaults and the file format.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds every setting the driver can source from its TOML config
// file.
type Config struct {
	Codegen struct {
		EmitComments bool   `toml:"emit_comments"`
		Assembler    string `toml:"assembler"` // assembles emitted .s into a .o
		Linker       string `toml:"linker"`     // links the .o into the final executable
	} `toml:"codegen"`

	Diagnostics struct {
		ColorOutput bool `toml:"color_output"`
		MaxErrors   int  `toml:"max_errors"`
	} `toml:"diagnostics"`

	Output struct {
		KeepIntermediate bool   `toml:"keep_intermediate"`
		Directory        string `toml:"directory"`
	} `toml:"output"`
}

// DefaultConfig returns a Config populated with the compiler's built-in
// defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Codegen.EmitComments = false
	cfg.Codegen.Assembler = "as"
	cfg.Codegen.Linker = "cc"

	cfg.Diagnostics.ColorOutput = true
	cfg.Diagnostics.MaxErrors = 20

	cfg.Output.KeepIntermediate = false
	cfg.Output.Directory = "."

	return cfg
}

// GetConfigPath returns the platform-specific path to the user's config
// file, config.toml in a cgoc config directory, creating that directory if
// necessary. It falls back to .cgocrc.toml in the working directory when
// the directory cannot be determined or created.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "cgoc")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".cgocrc.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "cgoc")

	default:
		return ".cgocrc.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return ".cgocrc.toml"
	}
	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file location.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, returning defaults unmodified if
// the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to the default config file location.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes c to path in TOML form, creating the parent directory if
// necessary.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
