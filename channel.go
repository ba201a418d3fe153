// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package link

import (
	"bytes"
	"fmt"
	"strconv"
	"unsafe"

	"code.hybscloud.com/atomix"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// Channel is the typed façade over one Transport.
//
// A Channel owns a logical key, a fork counter, and two monotonic byte
// counters. The transport is fixed for the channel's lifetime. Payloads
// handed to Send belong to the caller again once Send returns.
//
// Methods on Channel move raw bytes; the generic functions in this
// package (SendValue, RecvSlice, ...) reduce typed values to byte views
// and call through to them.
type Channel struct {
	t     Transport
	key   string
	log   zerolog.Logger
	forks atomix.Uint32
	sent  atomix.Uint64
	recvd atomix.Uint64
}

// New wraps t in a Channel keyed DefaultKey. It panics if t is nil.
func New(t Transport, opts ...Option) *Channel {
	if t == nil {
		panic("link: nil transport")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newChannel(t, DefaultKey, o.log)
}

// Open wraps t in a Channel keyed key. If t implements Rebinder it is
// rebound to key first, so a transport constructed generically can be
// keyed afterwards.
func Open(t Transport, key string, opts ...Option) (*Channel, error) {
	if t == nil {
		panic("link: nil transport")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if rb, ok := t.(Rebinder); ok {
		if err := rb.Rebind(key); err != nil {
			return nil, wrap("rebind", key, err)
		}
	}
	return newChannel(t, key, o.log), nil
}

func newChannel(t Transport, key string, log zerolog.Logger) *Channel {
	return &Channel{t: t, key: key, log: log}
}

// Key returns the channel's logical key.
func (c *Channel) Key() string { return c.key }

// Transport returns the underlying transport.
func (c *Channel) Transport() Transport { return c.t }

// TotalSent returns the number of payload bytes sent through c.
func (c *Channel) TotalSent() uint64 { return c.sent.Load() }

// TotalReceived returns the number of payload bytes received through c.
func (c *Channel) TotalReceived() uint64 { return c.recvd.Load() }

// Clone returns a duplicate of c sharing its transport, key and fork
// counter. The byte counters of the duplicate start at zero: duplication
// never carries traffic history forward.
func (c *Channel) Clone() *Channel {
	d := newChannel(c.t, c.key, c.log)
	d.forks.Store(c.forks.Load())
	return d
}

// Send transmits p as one message and returns once the transport has
// accepted it.
func (c *Channel) Send(p []byte) error {
	if err := c.t.Send(p); err != nil {
		return wrap("send", c.key, err)
	}
	c.sent.Add(uint64(len(p)))
	c.log.Debug().Str("key", c.key).Int("size", len(p)).Msg("link: send")
	return nil
}

// AsyncSend is synchronous despite its name: it calls straight through
// to the transport and returns when the transport's send returns. Use
// AsyncSendFuture for a deferred send.
func (c *Channel) AsyncSend(p []byte) error {
	return c.Send(p)
}

// AsyncSendFuture sends p on a new goroutine. p must not be modified
// until the returned Future completes.
func (c *Channel) AsyncSendFuture(p []byte) *Future {
	return goFuture(func() error { return c.Send(p) })
}

// AsyncSendCopy copies p before sending it, for callers whose buffer
// does not outlive the call. Otherwise it behaves as Send.
func (c *Channel) AsyncSendCopy(p []byte) error {
	return c.Send(bytes.Clone(p))
}

// SendString transmits the bytes of s without copying them.
func (c *Channel) SendString(s string) error {
	return c.Send(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Recv receives the next message into p. The message must be exactly
// len(p) bytes; otherwise Recv returns ErrMismatch and p is untouched.
func (c *Channel) Recv(p []byte) error {
	if err := c.t.RecvExact(p); err != nil {
		if CodeOf(err) == CodeMismatch {
			c.log.Error().Str("key", c.key).Int("expected", len(p)).Msg("link: length mismatch")
		}
		return wrap("recv", c.key, err)
	}
	c.recvd.Add(uint64(len(p)))
	c.log.Debug().Str("key", c.key).Int("size", len(p)).Msg("link: recv")
	return nil
}

// AsyncRecv receives the next message into p on a new goroutine. p must
// not be accessed until the returned Future completes. Exactly one
// message is consumed.
func (c *Channel) AsyncRecv(p []byte) *Future {
	return goFuture(func() error { return c.Recv(p) })
}

// RecvAny receives the next message at its natural length.
func (c *Channel) RecvAny() ([]byte, error) {
	msg, err := c.t.RecvAny()
	if err != nil {
		return nil, wrap("recv", c.key, err)
	}
	c.recvd.Add(uint64(len(msg)))
	c.log.Debug().Str("key", c.key).Int("size", len(msg)).Msg("link: recv")
	return msg, nil
}

// RecvString receives the next message into *s. The received buffer is
// bound to *s directly, without an intermediate copy.
func (c *Channel) RecvString(s *string) error {
	msg, err := c.RecvAny()
	if err != nil {
		return err
	}
	*s = unsafe.String(unsafe.SliceData(msg), len(msg))
	return nil
}

// Fork derives an independent child channel keyed "<key>_fork_<n>",
// where n is this channel's incremented fork count. The child owns the
// transport returned by the parent transport's Fork and has its own
// counters. Transports without fork support yield ErrNotImplemented and
// no child is created.
func (c *Channel) Fork() (*Channel, error) {
	f, ok := c.t.(Forker)
	if !ok {
		return nil, newError(CodeNotImplemented, "fork", c.key, nil)
	}
	n := c.forks.Add(1)
	key := c.key + "_fork_" + strconv.FormatUint(uint64(n), 10)
	t, err := f.Fork(key)
	if err != nil {
		return nil, wrap("fork", key, err)
	}
	return newChannel(t, key, c.log), nil
}

// Close signals that no more data will be sent or received.
func (c *Channel) Close() error {
	c.log.Debug().
		Str("key", c.key).
		Str("sent", humanize.Bytes(c.TotalSent())).
		Str("received", humanize.Bytes(c.TotalReceived())).
		Msg("link: close")
	return wrap("close", c.key, c.t.Close())
}

// Cancel aborts operations in flight on the channel.
func (c *Channel) Cancel() error {
	return wrap("cancel", c.key, c.t.Cancel())
}

// String implements fmt.Stringer.
func (c *Channel) String() string {
	return fmt.Sprintf("link.Channel(%s, sent %s, received %s)",
		c.key, humanize.Bytes(c.TotalSent()), humanize.Bytes(c.TotalReceived()))
}
