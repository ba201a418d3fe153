// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/link"
)

// SendThen sends a value and then continues with next.
func SendThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Send[T]{Value: v}), next)
}

// RecvBind receives a value and passes it to f.
func RecvBind[T, B any](f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Recv[T]{}), f)
}

// CloseDone closes the session and returns a.
func CloseDone[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Close{}), kont.Pure(a))
}

// SelectLThen selects the left branch and continues with next.
func SelectLThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(SelectL{}), next)
}

// SelectRThen selects the right branch and continues with next.
func SelectRThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(SelectR{}), next)
}

// OfferBranch waits for the peer's choice and calls onLeft or onRight.
func OfferBranch[A any](onLeft func() kont.Eff[A], onRight func() kont.Eff[A]) kont.Eff[A] {
	return kont.Bind(kont.Perform(Offer{}), func(e kont.Either[struct{}, struct{}]) kont.Eff[A] {
		if e.IsLeft() {
			return onLeft()
		}
		return onRight()
	})
}

// ForkBind forks a child channel and passes it to f.
func ForkBind[B any](f func(*link.Channel) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Fork{}), f)
}

// Loop runs a recursive protocol. step returns Left(next) to go round
// again with state next, or Right(result) to finish with result.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if next, ok := e.GetLeft(); ok {
			return Loop(next, step)
		}
		r, _ := e.GetRight()
		return kont.Pure(r)
	})
}
