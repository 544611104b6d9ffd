// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the engine configuration, usually read from a sigma.toml
// file:
//
//	[machine]
//	max-depth = 65536
//	check-every = 256
//
//	[log]
//	verbosity = 1
//	path = "sigma.log"
type Config struct {
	Machine MachineConfig `toml:"machine"`
	Log     LogConfig     `toml:"log"`
}

// MachineConfig bounds a [Machine].
type MachineConfig struct {
	// MaxDepth is the largest number of frames on the machine stack.
	MaxDepth int `toml:"max-depth"`
	// CheckEvery is the number of steps between context checks in Run.
	CheckEvery int `toml:"check-every"`
	// LocalsHint is the initial capacity of a frame's local area.
	LocalsHint int `toml:"locals-hint"`
}

// LogConfig is passed to commonlog.Configure by [ConfigureLogging].
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	Path      string `toml:"path"`
}

const (
	DefaultMaxDepth   = 1 << 16
	DefaultCheckEvery = 256
	DefaultLocalsHint = 4
)

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Machine: MachineConfig{
			MaxDepth:   DefaultMaxDepth,
			CheckEvery: DefaultCheckEvery,
			LocalsHint: DefaultLocalsHint,
		},
	}
}

// withDefaults replaces zero or negative fields by their defaults.
func (c MachineConfig) withDefaults() MachineConfig {
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.CheckEvery <= 0 {
		c.CheckEvery = DefaultCheckEvery
	}
	if c.LocalsHint <= 0 {
		c.LocalsHint = DefaultLocalsHint
	}
	return c
}

// ParseConfig decodes a TOML document. Missing fields keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("sigma: parse config: %w", err)
	}
	c.Machine = c.Machine.withDefaults()
	return c, nil
}

// LoadConfig reads and decodes the TOML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sigma: cannot read %s: %w", path, err)
	}
	c, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
