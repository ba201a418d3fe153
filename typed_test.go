// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package link_test

import (
	"testing"
	"testing/quick"

	"code.hybscloud.com/link"
	"github.com/stretchr/testify/require"
)

type header struct {
	Kind  uint16
	Flags uint16
	Len   uint32
	Coord [2]float64
}

func TestValueRoundTrip(t *testing.T) {
	a, b := channelPair(t, "value")
	require.NoError(t, link.SendValue(a, [2]int64{1, 1}))

	var got [2]int64
	require.NoError(t, link.RecvValue(b, &got))
	require.Equal(t, [2]int64{1, 1}, got)
}

func TestStructRoundTrip(t *testing.T) {
	a, b := channelPair(t, "struct")
	want := header{Kind: 3, Flags: 0x8001, Len: 512, Coord: [2]float64{1.5, -2}}
	require.NoError(t, link.AsyncSendValueCopy(a, want))

	var got header
	require.NoError(t, link.RecvValue(b, &got))
	require.Equal(t, want, got)
}

func TestValueSizeMismatch(t *testing.T) {
	a, b := channelPair(t, "value-mismatch")
	require.NoError(t, link.SendValue(a, uint16(7)))

	got := uint64(42)
	require.ErrorIs(t, link.RecvValue(b, &got), link.ErrMismatch)
	require.Equal(t, uint64(42), got)
}

func TestSliceRoundTrip(t *testing.T) {
	a, b := channelPair(t, "slice")
	require.NoError(t, link.SendSlice(a, []int{1, 2, 3, 4}))

	var got []int
	require.NoError(t, link.RecvSliceResize(b, &got))
	require.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestRecvSliceFixed(t *testing.T) {
	a, b := channelPair(t, "fixed")
	require.NoError(t, link.AsyncSendSlice(a, []uint32{5, 6, 7}))
	require.NoError(t, link.AsyncSendSliceCopy(a, []uint32{8, 9}))

	dst := make([]uint32, 3)
	require.NoError(t, link.RecvSlice(b, dst))
	require.Equal(t, []uint32{5, 6, 7}, dst)

	// Fixed destinations never resize.
	require.ErrorIs(t, link.RecvSlice(b, dst), link.ErrMismatch)
	require.Equal(t, []uint32{5, 6, 7}, dst)
}

func TestRecvSliceResize(t *testing.T) {
	a, b := channelPair(t, "resize")

	// Grow past capacity.
	dst := make([]int32, 1, 2)
	require.NoError(t, link.SendSlice(a, []int32{1, 2, 3}))
	require.NoError(t, link.RecvSliceResize(b, &dst))
	require.Equal(t, []int32{1, 2, 3}, dst)

	// Shrink within capacity.
	require.NoError(t, link.SendSlice(a, []int32{9}))
	require.NoError(t, link.RecvSliceResize(b, &dst))
	require.Equal(t, []int32{9}, dst)
	require.GreaterOrEqual(t, cap(dst), 3)

	// Empty message.
	require.NoError(t, link.SendSlice(a, []int32{}))
	require.NoError(t, link.RecvSliceResize(b, &dst))
	require.Empty(t, dst)
}

func TestRecvSliceResizeNotWholeElements(t *testing.T) {
	a, b := channelPair(t, "partial")
	require.NoError(t, a.Send([]byte{1, 2, 3, 4, 5, 6}))

	dst := []uint32{77}
	require.ErrorIs(t, link.RecvSliceResize(b, &dst), link.ErrMismatch)
	require.Equal(t, []uint32{77}, dst)
}

func TestNonFlatTypeInvalid(t *testing.T) {
	a, b := channelPair(t, "invalid")

	type withPointer struct {
		N int
		P *int
	}
	require.ErrorIs(t, link.SendValue(a, withPointer{}), link.ErrInvalid)
	require.ErrorIs(t, link.SendSlice(a, []string{"no"}), link.ErrInvalid)
	require.ErrorIs(t, link.AsyncRecvValue(b, new(map[int]int)).Wait(), link.ErrInvalid)
	require.ErrorIs(t, link.AsyncSendSliceFuture(a, []any{1}).Wait(), link.ErrInvalid)

	// Nothing reached the transport.
	require.Zero(t, a.TotalSent())
}

func TestAsyncTypedFutures(t *testing.T) {
	a, b := channelPair(t, "typed-future")

	var v float64
	rv := link.AsyncRecvValue(b, &v)
	require.NoError(t, link.AsyncSendValue(a, 2.5))
	require.NoError(t, rv.Wait())
	require.Equal(t, 2.5, v)

	src := []int16{-1, 0, 1}
	sf := link.AsyncSendSliceFuture(a, src)
	require.NoError(t, sf.Wait())

	dst := make([]int16, 3)
	require.NoError(t, link.AsyncRecvSlice(b, dst).Wait())
	require.Equal(t, src, dst)

	require.NoError(t, link.SendSlice(a, []int16{4, 5}))
	var grown []int16
	require.NoError(t, link.AsyncRecvSliceResize(b, &grown).Wait())
	require.Equal(t, []int16{4, 5}, grown)
}

func TestPropertySliceRoundTrip(t *testing.T) {
	a, b := channelPair(t, "quick")
	f := func(xs []uint64) bool {
		if err := link.SendSlice(a, xs); err != nil {
			return false
		}
		var got []uint64
		if err := link.RecvSliceResize(b, &got); err != nil {
			return false
		}
		if len(got) != len(xs) {
			return false
		}
		for i := range xs {
			if got[i] != xs[i] {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
