// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inproc

import (
	"bytes"
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/link"
	"code.hybscloud.com/link/queue"
)

// Role selects which queue of a pair a transport writes to and which it
// reads from.
type Role uint8

const (
	// Client writes client→server and reads server→client.
	Client Role = iota
	// Server writes server→client and reads client→server.
	Server
)

// String implements fmt.Stringer.
func (r Role) String() string {
	switch r {
	case Client:
		return "client"
	case Server:
		return "server"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// Peer returns the opposite role.
func (r Role) Peer() Role {
	if r == Server {
		return Client
	}
	return Server
}

// binding is the key and queues a transport is currently bound to.
type binding struct {
	key string
	w   *queue.Blocking[[]byte]
	r   *queue.Blocking[[]byte]
}

// Transport is one end of a registry key. It implements link.Transport,
// link.Forker and link.Rebinder.
//
// Each message is one pushed byte slice; the queue itself delimits
// messages, there is no header.
type Transport struct {
	reg    *Registry
	role   Role
	mu     sync.RWMutex
	b      binding
	closed atomix.Uint32
}

var (
	_ link.Transport = (*Transport)(nil)
	_ link.Forker    = (*Transport)(nil)
	_ link.Rebinder  = (*Transport)(nil)
)

func (t *Transport) bind(key string, p *pair) {
	w, r := p.queues(t.role)
	t.mu.Lock()
	t.b = binding{key: key, w: w, r: r}
	t.mu.Unlock()
}

func (t *Transport) current() binding {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.b
}

// Key returns the key the transport is bound to.
func (t *Transport) Key() string { return t.current().key }

// Role returns the transport's role.
func (t *Transport) Role() Role { return t.role }

func unavailable(op, key string) error {
	return &link.Error{Code: link.CodeUnavailable, Op: op, Key: key}
}

// Send pushes a copy of p onto the write queue. It never blocks. After
// Close or Cancel on either end it fails fast with ErrUnavailable.
func (t *Transport) Send(p []byte) error {
	b := t.current()
	if t.closed.Load() != 0 || b.w.IsShutdown() {
		return unavailable("send", b.key)
	}
	msg := bytes.Clone(p)
	if msg == nil {
		msg = []byte{}
	}
	b.w.Push(msg)
	t.reg.log.Debug().Str("key", b.key).Stringer("role", t.role).Int("size", len(p)).Msg("inproc: send")
	return nil
}

// pop takes the next message from the read queue. A queue shut down
// while waiting yields ErrUnavailable.
func (t *Transport) pop(op string) ([]byte, binding, error) {
	b := t.current()
	if t.closed.Load() != 0 {
		return nil, b, unavailable(op, b.key)
	}
	msg, ok := b.r.Pop()
	if !ok {
		return nil, b, unavailable(op, b.key)
	}
	return msg, b, nil
}

// RecvExact pops one message into p. A message whose length differs from
// len(p) is consumed and reported as ErrMismatch; p is left untouched.
func (t *Transport) RecvExact(p []byte) error {
	msg, b, err := t.pop("recv")
	if err != nil {
		return err
	}
	if len(msg) != len(p) {
		t.reg.log.Error().Str("key", b.key).Int("expected", len(p)).Int("actual", len(msg)).Msg("inproc: data length does not match")
		return &link.Error{
			Code: link.CodeMismatch,
			Op:   "recv",
			Key:  b.key,
			Err:  fmt.Errorf("expected %d bytes, got %d", len(p), len(msg)),
		}
	}
	copy(p, msg)
	t.reg.log.Debug().Str("key", b.key).Stringer("role", t.role).Int("size", len(msg)).Msg("inproc: recv")
	return nil
}

// RecvAny pops one message and returns it at its natural length.
func (t *Transport) RecvAny() ([]byte, error) {
	msg, b, err := t.pop("recv")
	if err != nil {
		return nil, err
	}
	t.reg.log.Debug().Str("key", b.key).Stringer("role", t.role).Int("size", len(msg)).Msg("inproc: recv")
	return msg, nil
}

// Fork returns a transport bound to key in the same role. The key's pair
// is created on first use by either peer.
func (t *Transport) Fork(key string) (link.Transport, error) {
	if t.closed.Load() != 0 {
		return nil, unavailable("fork", key)
	}
	return t.reg.Open(key, t.role), nil
}

// Rebind moves the transport to key. It is meant for construction time,
// before any traffic flows.
func (t *Transport) Rebind(key string) error {
	if t.closed.Load() != 0 {
		return unavailable("rebind", key)
	}
	t.bind(key, t.reg.lookup(key))
	return nil
}

// Close marks the transport closed and shuts down both queues of its
// pair, releasing blocked receivers on both ends. Messages still queued
// are discarded. The key stays registered and its queues stay shut down.
func (t *Transport) Close() error {
	b := t.current()
	t.closed.Store(1)
	b.w.Shutdown()
	b.r.Shutdown()
	return nil
}

// Cancel marks the transport closed and shuts down its read queue,
// releasing receivers blocked on this end.
func (t *Transport) Cancel() error {
	b := t.current()
	t.closed.Store(1)
	b.r.Shutdown()
	return nil
}
