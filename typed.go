// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package link

import (
	"bytes"
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// A type is flat when its in-memory image is a plain byte sequence that
// can be copied to another process: booleans, integers, floats, complex
// numbers, and arrays or structs built only from those. Pointers,
// strings, slices, maps, channels, funcs and interfaces are not flat.
//
// Flat values travel in native byte order, exactly as they sit in memory.

// flatTypes caches flatness per reflect.Type.
var flatTypes sync.Map

func isFlat(t reflect.Type) bool {
	if v, ok := flatTypes.Load(t); ok {
		return v.(bool)
	}
	ok := flatKind(t)
	flatTypes.Store(t, ok)
	return ok
}

func flatKind(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return flatKind(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !flatKind(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// checkFlat returns ErrInvalid annotated with op if T is not flat.
func checkFlat[T any](op string) error {
	t := reflect.TypeFor[T]()
	if isFlat(t) {
		return nil
	}
	return newError(CodeInvalid, op, "", fmt.Errorf("%v is not a flat type", t))
}

// valueBytes returns the memory of *v as a byte slice.
func valueBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// sliceBytes returns the backing memory of s as a byte slice.
func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), uintptr(len(s))*unsafe.Sizeof(s[0]))
}

// SendValue sends the memory image of a flat value v: a scalar, a fixed
// array, or a struct of flat fields.
func SendValue[T any](c *Channel, v T) error {
	if err := checkFlat[T]("send"); err != nil {
		return err
	}
	return c.Send(valueBytes(&v))
}

// AsyncSendValue is synchronous, like Channel.AsyncSend.
func AsyncSendValue[T any](c *Channel, v T) error {
	return SendValue(c, v)
}

// AsyncSendValueCopy sends an owned copy of v's memory image.
func AsyncSendValueCopy[T any](c *Channel, v T) error {
	if err := checkFlat[T]("send"); err != nil {
		return err
	}
	return c.AsyncSendCopy(valueBytes(&v))
}

// RecvValue receives a message of exactly the size of T into *dst.
func RecvValue[T any](c *Channel, dst *T) error {
	if err := checkFlat[T]("recv"); err != nil {
		return err
	}
	return c.Recv(valueBytes(dst))
}

// AsyncRecvValue receives into *dst on a new goroutine.
func AsyncRecvValue[T any](c *Channel, dst *T) *Future {
	if err := checkFlat[T]("recv"); err != nil {
		return doneFuture(err)
	}
	return c.AsyncRecv(valueBytes(dst))
}

// SendSlice sends the elements of s as one message.
func SendSlice[T any](c *Channel, s []T) error {
	if err := checkFlat[T]("send"); err != nil {
		return err
	}
	return c.Send(sliceBytes(s))
}

// AsyncSendSlice is synchronous, like Channel.AsyncSend.
func AsyncSendSlice[T any](c *Channel, s []T) error {
	return SendSlice(c, s)
}

// AsyncSendSliceCopy copies s before sending it.
func AsyncSendSliceCopy[T any](c *Channel, s []T) error {
	if err := checkFlat[T]("send"); err != nil {
		return err
	}
	return c.Send(bytes.Clone(sliceBytes(s)))
}

// AsyncSendSliceFuture sends s on a new goroutine. s must not be
// modified until the returned Future completes.
func AsyncSendSliceFuture[T any](c *Channel, s []T) *Future {
	if err := checkFlat[T]("send"); err != nil {
		return doneFuture(err)
	}
	return c.AsyncSendFuture(sliceBytes(s))
}

// RecvSlice receives into the fixed-capacity destination dst. The
// message must be exactly len(dst) elements; otherwise RecvSlice
// returns ErrMismatch and dst is untouched.
func RecvSlice[T any](c *Channel, dst []T) error {
	if err := checkFlat[T]("recv"); err != nil {
		return err
	}
	return c.Recv(sliceBytes(dst))
}

// AsyncRecvSlice receives into dst on a new goroutine.
func AsyncRecvSlice[T any](c *Channel, dst []T) *Future {
	if err := checkFlat[T]("recv"); err != nil {
		return doneFuture(err)
	}
	return c.AsyncRecv(sliceBytes(dst))
}

// RecvSliceResize receives the next message at its natural length into
// the resizable destination *dst, growing or shrinking it to fit. A
// message that is not a whole number of elements is ErrMismatch and
// leaves *dst untouched.
func RecvSliceResize[T any](c *Channel, dst *[]T) error {
	if err := checkFlat[T]("recv"); err != nil {
		return err
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	msg, err := c.RecvAny()
	if err != nil {
		return err
	}
	if size == 0 {
		if len(msg) != 0 {
			return newError(CodeMismatch, "recv", c.key, nil)
		}
		return nil
	}
	if len(msg)%size != 0 {
		c.log.Error().Str("key", c.key).Int("size", len(msg)).Int("elem", size).Msg("link: length is not a whole number of elements")
		return newError(CodeMismatch, "recv", c.key,
			fmt.Errorf("%d bytes is not a multiple of %d", len(msg), size))
	}
	n := len(msg) / size
	if len(*dst) != n {
		c.log.Warn().Str("key", c.key).Int("have", len(*dst)).Int("need", n).Msg("link: size does not match, resizing destination")
		if cap(*dst) >= n {
			*dst = (*dst)[:n]
		} else {
			*dst = make([]T, n)
		}
	}
	copy(sliceBytes(*dst), msg)
	return nil
}

// AsyncRecvSliceResize runs RecvSliceResize on a new goroutine.
func AsyncRecvSliceResize[T any](c *Channel, dst *[]T) *Future {
	if err := checkFlat[T]("recv"); err != nil {
		return doneFuture(err)
	}
	return goFuture(func() error { return RecvSliceResize(c, dst) })
}
