// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

const (
	defaultKind         = KindInproc
	defaultPipeCapacity = 64
	defaultStreams      = 4
	defaultMessages     = 10000
	defaultMessageSize  = "4 KiB"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with built-in defaults.
func Default() Config {
	return Config{
		Transport: Transport{
			Kind:         defaultKind,
			PipeCapacity: defaultPipeCapacity,
		},
		Bench: Bench{
			Streams:     defaultStreams,
			Messages:    defaultMessages,
			MessageSize: defaultMessageSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
