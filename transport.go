// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package link

// Transport is the byte-level contract every backend implements.
//
// Send transmits the whole of p as one message and blocks until the
// backend has accepted it. The backend must not retain p after Send
// returns.
//
// RecvExact blocks for the next message and copies it into p. If the
// message length differs from len(p) it returns ErrMismatch and leaves
// p untouched; the message is consumed either way.
//
// RecvAny blocks for the next message and returns it at its natural
// length. The caller owns the returned slice.
//
// Close signals that no more traffic will flow and releases blocked
// peers. Cancel aborts in-flight operations on this end. Both are
// idempotent and safe to call concurrently with Send and Recv.
type Transport interface {
	Send(p []byte) error
	RecvExact(p []byte) error
	RecvAny() ([]byte, error)
	Close() error
	Cancel() error
}

// Forker is implemented by transports that can derive an independent
// sub-transport bound to key. Transports that do not implement it make
// Channel.Fork fail with ErrNotImplemented.
type Forker interface {
	Fork(key string) (Transport, error)
}

// Rebinder is implemented by transports that defer their binding until
// a key is known. Open calls Rebind once before the channel is used.
type Rebinder interface {
	Rebind(key string) error
}
