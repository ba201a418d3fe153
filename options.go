// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package link

import "github.com/rs/zerolog"

// DefaultKey is the key of a channel constructed without one.
const DefaultKey = "default"

// Option configures a Channel.
type Option func(*options)

type options struct {
	log zerolog.Logger
}

func defaultOptions() options {
	return options{log: zerolog.Nop()}
}

// WithLogger sets the logger used for per-message debug events and
// size warnings. Channels log nothing by default.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}
