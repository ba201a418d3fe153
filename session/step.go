// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/link"
)

// Reify converts a Cont-world protocol to Expr-world, for ExecExpr or
// for stepping with Step and Advance.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world protocol back to Cont-world.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}

// Step evaluates a protocol until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended operation on ch, blocking until it
// completes.
//
// On success the suspension is consumed and the protocol advances to the
// next effect or completion. On error the suspension is returned
// unconsumed; the caller may retry it or Discard it.
func Advance[R any](ch *link.Channel, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	sop, ok := susp.Op().(sessionDispatcher)
	if !ok {
		panic("session: unhandled effect in Advance")
	}
	v, err := sop.DispatchSession(ch)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
