// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pipe joins two link.Transport ends with bounded lock-free rings.
//
// Each direction is a single-producer single-consumer queue from
// [code.hybscloud.com/lfq]; concurrent callers on one end are serialized
// by a per-direction mutex. Full and empty rings are waited out with
// [code.hybscloud.com/iox.Backoff].
//
// A pipe is point-to-point: it implements neither link.Forker nor
// link.Rebinder, so Channel.Fork on a pipe end fails with
// link.ErrNotImplemented.
//
// Close is graceful: the peer drains messages already queued and then
// observes link.ErrUnavailable.
package pipe

import (
	"bytes"
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"code.hybscloud.com/link"
)

// DefaultCapacity is the ring capacity used when New is given a
// non-positive capacity.
const DefaultCapacity = 64

// End is one side of a pipe.
type End struct {
	sendQ    *lfq.SPSC[[]byte]
	recvQ    *lfq.SPSC[[]byte]
	closed   *atomix.Uint32
	canceled atomix.Uint32
	sendMu   sync.Mutex
	recvMu   sync.Mutex
	serial   Serial
}

var _ link.Transport = (*End)(nil)

// endPair holds both ends, both rings and the shared close counter in a
// single allocation.
type endPair struct {
	a      End
	b      End
	closed atomix.Uint32
	ab     lfq.SPSC[[]byte]
	ba     lfq.SPSC[[]byte]
}

// New creates a connected pair of ends whose rings hold capacity
// messages per direction.
func New(capacity int) (*End, *End) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := nextSerial()

	p := &endPair{}
	p.ab.Init(capacity)
	p.ba.Init(capacity)

	p.a.sendQ, p.a.recvQ = &p.ab, &p.ba
	p.b.sendQ, p.b.recvQ = &p.ba, &p.ab
	p.a.closed, p.b.closed = &p.closed, &p.closed
	p.a.serial, p.b.serial = s, s
	return &p.a, &p.b
}

// Serial returns the serial number shared by both ends of the pipe.
func (e *End) Serial() Serial { return e.serial }

func (e *End) isClosed() bool { return e.closed.Load() != 0 }

func (e *End) isCanceled() bool { return e.canceled.Load() != 0 }

func unavailable(op string) error {
	return &link.Error{Code: link.CodeUnavailable, Op: op}
}

func failure(op string, err error) error {
	return &link.Error{Code: link.CodeNetwork, Op: op, Err: err}
}

// Send copies p onto the ring, waiting while the ring is full.
func (e *End) Send(p []byte) error {
	msg := bytes.Clone(p)
	if msg == nil {
		msg = []byte{}
	}
	e.sendMu.Lock()
	defer e.sendMu.Unlock()
	var bo iox.Backoff
	for {
		if e.isClosed() || e.isCanceled() {
			return unavailable("send")
		}
		err := e.sendQ.Enqueue(&msg)
		if err == nil {
			return nil
		}
		if !iox.IsWouldBlock(err) {
			return failure("send", err)
		}
		bo.Wait()
	}
}

// RecvAny waits for the next message. Messages queued before a Close
// are still delivered.
func (e *End) RecvAny() ([]byte, error) {
	e.recvMu.Lock()
	defer e.recvMu.Unlock()
	var bo iox.Backoff
	for {
		if e.isCanceled() {
			return nil, unavailable("recv")
		}
		msg, err := e.recvQ.Dequeue()
		if err == nil {
			return msg, nil
		}
		if !iox.IsWouldBlock(err) {
			return nil, failure("recv", err)
		}
		if e.isClosed() {
			return nil, unavailable("recv")
		}
		bo.Wait()
	}
}

// RecvExact receives the next message into p. A message of a different
// length is consumed and reported as link.ErrMismatch; p is untouched.
func (e *End) RecvExact(p []byte) error {
	msg, err := e.RecvAny()
	if err != nil {
		return err
	}
	if len(msg) != len(p) {
		return &link.Error{
			Code: link.CodeMismatch,
			Op:   "recv",
			Err:  fmt.Errorf("expected %d bytes, got %d", len(p), len(msg)),
		}
	}
	copy(p, msg)
	return nil
}

// Close marks the pipe closed for both ends. It never blocks.
func (e *End) Close() error {
	e.closed.Add(1)
	return nil
}

// Cancel aborts operations waiting on this end.
func (e *End) Cancel() error {
	e.canceled.Store(1)
	return nil
}
