// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session_test

import (
	"reflect"
	"testing"
	"testing/quick"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/link/session"
)

// TestPropertyFIFO checks that an arbitrary sequence of integers streamed
// through a session arrives without loss, duplication, or reordering.
func TestPropertyFIFO(t *testing.T) {
	propertyFIFO := func(payload []int) bool {
		sender := session.Loop(payload, func(s []int) kont.Eff[kont.Either[[]int, struct{}]] {
			if len(s) == 0 {
				return session.SelectRThen(session.CloseDone(kont.Right[[]int, struct{}](struct{}{})))
			}
			return session.SelectLThen(
				session.SendThen(s[0], kont.Pure(kont.Left[[]int, struct{}](s[1:]))),
			)
		})

		receiver := session.Loop(make([]int, 0, len(payload)), func(acc []int) kont.Eff[kont.Either[[]int, []int]] {
			return session.OfferBranch(
				func() kont.Eff[kont.Either[[]int, []int]] {
					return session.RecvBind(func(n int) kont.Eff[kont.Either[[]int, []int]] {
						return kont.Pure(kont.Left[[]int, []int](append(acc, n)))
					})
				},
				func() kont.Eff[kont.Either[[]int, []int]] {
					return session.CloseDone(kont.Right[[]int, []int](acc))
				},
			)
		})

		ca, cb := inprocPair(t, "fifo")
		_, received, err := session.Run(ca, cb, sender, receiver)
		if err != nil {
			return false
		}
		if len(payload) == 0 && len(received) == 0 {
			return true
		}
		return reflect.DeepEqual(payload, received)
	}

	if err := quick.Check(propertyFIFO, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyThrowShortCircuit checks that a Throw after any number of
// sends ends the protocol with exactly the thrown value.
func TestPropertyThrowShortCircuit(t *testing.T) {
	propertyThrow := func(throwAt uint8) bool {
		const msg = "forced_error"
		n := int(throwAt % 8)

		sender := session.Loop(0, func(i int) kont.Eff[kont.Either[int, string]] {
			if i == n {
				return kont.Map(kont.ThrowError[string, string](msg), func(s string) kont.Either[int, string] {
					return kont.Right[int, string](s)
				})
			}
			return session.SendThen(i, kont.Pure(kont.Left[int, string](i+1)))
		})

		ca, _ := inprocPair(t, "throw")
		result, err := session.ExecError[string](ca, sender)
		if err != nil {
			return false
		}
		errVal, isErr := result.GetLeft()
		return isErr && errVal == msg
	}

	if err := quick.Check(propertyThrow, nil); err != nil {
		t.Error(err)
	}
}
