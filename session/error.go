// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/link"
)

// sessionErrorHandler handles both session and error effects. Channel
// failures abort with an outer Left; Throw aborts with an inner Left.
type sessionErrorHandler[E, A any] struct {
	ch     *link.Channel
	errCtx *kont.ErrorContext[E]
}

// Dispatch implements kont.Handler. Dispatch order: Session → Error.
func (h sessionErrorHandler[E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if sop, ok := op.(sessionDispatcher); ok {
		v, err := sop.DispatchSession(h.ch)
		if err != nil {
			return kont.Left[error, kont.Either[E, A]](err), false
		}
		return v, true
	}
	if eop, ok := op.(interface {
		DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
	}); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Right[error](kont.Left[E, A](h.errCtx.Err)), false
		}
		return v, true
	}
	panic("session: unhandled effect in sessionErrorHandler")
}

// ExecError runs a session protocol that may also perform error effects.
// A Throw yields Left in the returned Either with a nil error; a channel
// failure yields the error.
func ExecError[E, R any](ch *link.Channel, protocol kont.Eff[R]) (kont.Either[E, R], error) {
	inner := kont.Map[kont.Resumed, R, kont.Either[E, R]](protocol, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	outer := kont.Map[kont.Resumed, kont.Either[E, R], kont.Either[error, kont.Either[E, R]]](inner, func(e kont.Either[E, R]) kont.Either[error, kont.Either[E, R]] {
		return kont.Right[error, kont.Either[E, R]](e)
	})
	var errCtx kont.ErrorContext[E]
	h := sessionErrorHandler[E, R]{ch: ch, errCtx: &errCtx}
	return result(kont.Handle(outer, h))
}
