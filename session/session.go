// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/link"
)

// sessionDispatcher is the structural interface for session operations.
// DispatchSession blocks on the channel until the operation completes
// or fails.
type sessionDispatcher interface {
	DispatchSession(ch *link.Channel) (kont.Resumed, error)
}

// sessionHandler implements kont.Handler for session effects. A failed
// dispatch aborts the protocol with Left(err).
type sessionHandler[R any] struct {
	ch *link.Channel
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h sessionHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(sessionDispatcher)
	if !ok {
		panic("session: unhandled effect in sessionHandler")
	}
	v, err := sop.DispatchSession(h.ch)
	if err != nil {
		return kont.Left[error, R](err), false
	}
	return v, true
}

// result unpacks an Either produced by a session handler.
func result[R any](e kont.Either[error, R]) (R, error) {
	if err, ok := e.GetLeft(); ok {
		var zero R
		return zero, err
	}
	r, _ := e.GetRight()
	return r, nil
}
