// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// maxMessageBytes bounds a single benchmark message.
const maxMessageBytes = 64 << 20

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTransport(); err != nil {
		return err
	}
	if err := c.validateBench(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTransport() error {
	switch c.Transport.Kind {
	case KindInproc:
	case KindPipe:
		if c.Transport.PipeCapacity < 0 {
			return errors.New("transport.pipe_capacity must be positive")
		}
	default:
		return fmt.Errorf("transport.kind must be %q or %q, got %q", KindInproc, KindPipe, c.Transport.Kind)
	}
	return nil
}

func (c *Config) validateBench() error {
	if c.Bench.Streams < 1 {
		return errors.New("bench.streams must be at least 1")
	}
	if c.Bench.Streams > 1 && c.Transport.Kind == KindPipe {
		return errors.New("bench.streams > 1 needs a forking transport; pipe supports a single stream")
	}
	if c.Bench.Messages < 1 {
		return errors.New("bench.messages must be at least 1")
	}
	if c.Bench.messageBytes > maxMessageBytes {
		return fmt.Errorf("bench.message_size must not exceed 64 MiB, got %s", c.Bench.MessageSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
