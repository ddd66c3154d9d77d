package vm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ---------------------------------------------------------------------------
// Config: dexvm.toml interpreter configuration
// ---------------------------------------------------------------------------

// Config carries the knobs a host sets before entering the interpreter.
type Config struct {
	// AccessChecks selects the access-checked variants of resolution,
	// field access, and invokes.
	AccessChecks bool `toml:"access-checks"`

	// MaxCallDepth bounds interpreter recursion; the invoke collaborator
	// converts overflow to StackOverflowError.
	MaxCallDepth int32 `toml:"max-call-depth"`

	// Trace logs every executed instruction at debug level.
	Trace bool `toml:"trace"`

	// LogVerbosity is the commonlog verbosity for the dexvm loggers.
	LogVerbosity int `toml:"log-verbosity"`
}

// DefaultConfig returns the configuration used when no dexvm.toml exists.
func DefaultConfig() Config {
	return Config{MaxCallDepth: 512}
}

// LoadConfig parses dexvm.toml from the given directory. A missing file
// yields the defaults.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, "dexvm.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return cfg, nil
}
