// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Transport kinds.
const (
	KindInproc = "inproc"
	KindPipe   = "pipe"
)

// Transport selects and sizes the backend under test.
type Transport struct {
	Kind         string `toml:"kind"`
	Key          string `toml:"key"` // empty: a fresh random key per run
	PipeCapacity int    `toml:"pipe_capacity"`
}

// Bench describes the traffic to generate.
type Bench struct {
	Streams     int    `toml:"streams"`
	Messages    int    `toml:"messages"`
	MessageSize string `toml:"message_size"`

	// messageBytes is MessageSize parsed by normalize.
	messageBytes uint64
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all linkbench settings.
type Config struct {
	Transport Transport `toml:"transport"`
	Bench     Bench     `toml:"bench"`
	Logging   Logging   `toml:"logging"`
}

// MessageBytes returns the parsed message size in bytes.
func (b Bench) MessageBytes() int { return int(b.messageBytes) }

// Load reads path over the defaults, normalizes and validates the
// result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Finalize normalizes and validates c in place. Call it after changing
// fields of a loaded Config.
func (c *Config) Finalize() error {
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

// Encode renders c as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
