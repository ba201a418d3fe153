// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

func (c *Config) normalize() error {
	c.Transport.Kind = strings.ToLower(strings.TrimSpace(c.Transport.Kind))
	if c.Transport.Kind == "" {
		c.Transport.Kind = defaultKind
	}
	c.Transport.Key = strings.TrimSpace(c.Transport.Key)
	if c.Transport.PipeCapacity == 0 {
		c.Transport.PipeCapacity = defaultPipeCapacity
	}

	if strings.TrimSpace(c.Bench.MessageSize) == "" {
		c.Bench.MessageSize = defaultMessageSize
	}
	n, err := humanize.ParseBytes(c.Bench.MessageSize)
	if err != nil {
		return fmt.Errorf("bench.message_size: %w", err)
	}
	c.Bench.messageBytes = n

	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
