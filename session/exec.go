// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/link"
)

// Exec runs a Cont-world session protocol on ch. It blocks on the
// channel and returns the first channel error, which ends the protocol.
func Exec[R any](ch *link.Channel, protocol kont.Eff[R]) (R, error) {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	return result(kont.Handle(wrapped, sessionHandler[R]{ch: ch}))
}

// ExecExpr runs an Expr-world session protocol on ch.
func ExecExpr[R any](ch *link.Channel, protocol kont.Expr[R]) (R, error) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	return result(kont.HandleExpr(wrapped, sessionHandler[R]{ch: ch}))
}
