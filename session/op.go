// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"fmt"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/link"
)

// Choice and end markers. Each travels as a one-byte message.
const (
	markRight byte = 0
	markLeft  byte = 1
	markEnd   byte = 0xff
)

var (
	msgLeft  = []byte{markLeft}
	msgRight = []byte{markRight}
	msgEnd   = []byte{markEnd}
)

// offerLeft and offerRight are pre-boxed Resumed values for Offer dispatch.
var (
	offerLeft  kont.Resumed = kont.Left[struct{}, struct{}](struct{}{})
	offerRight kont.Resumed = kont.Right[struct{}](struct{}{})
)

// Send is the effect operation for sending a value of type T.
// Strings and byte slices travel at their natural length; any other T
// must be flat and travels as its memory image.
type Send[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// DispatchSession handles Send on ch.
func (s Send[T]) DispatchSession(ch *link.Channel) (kont.Resumed, error) {
	var err error
	switch v := any(s.Value).(type) {
	case string:
		err = ch.SendString(v)
	case []byte:
		err = ch.Send(v)
	default:
		err = link.SendValue(ch, s.Value)
	}
	if err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Recv is the effect operation for receiving a value of type T.
type Recv[T any] struct {
	kont.Phantom[T]
}

// DispatchSession handles Recv on ch.
func (Recv[T]) DispatchSession(ch *link.Channel) (kont.Resumed, error) {
	var v T
	var err error
	switch p := any(&v).(type) {
	case *string:
		err = ch.RecvString(p)
	case *[]byte:
		*p, err = ch.RecvAny()
	default:
		err = link.RecvValue(ch, &v)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Close is the effect operation ending the session. Both peers must
// perform it: each sends an end marker, waits for the peer's, then
// closes the channel.
type Close struct {
	kont.Phantom[struct{}]
}

// DispatchSession handles Close on ch.
func (Close) DispatchSession(ch *link.Channel) (kont.Resumed, error) {
	if err := ch.Send(msgEnd); err != nil {
		return nil, err
	}
	var mark [1]byte
	err := ch.Recv(mark[:])
	switch {
	case link.CodeOf(err) == link.CodeUnavailable:
		// The peer saw our marker and closed first.
	case err != nil:
		return nil, err
	case mark[0] != markEnd:
		return nil, protocolError("close", ch, mark[0])
	}
	if err := ch.Close(); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// SelectL is the effect operation for choosing the left branch.
type SelectL struct {
	kont.Phantom[struct{}]
}

// DispatchSession handles SelectL on ch.
func (SelectL) DispatchSession(ch *link.Channel) (kont.Resumed, error) {
	if err := ch.Send(msgLeft); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// SelectR is the effect operation for choosing the right branch.
type SelectR struct {
	kont.Phantom[struct{}]
}

// DispatchSession handles SelectR on ch.
func (SelectR) DispatchSession(ch *link.Channel) (kont.Resumed, error) {
	if err := ch.Send(msgRight); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Offer is the effect operation for receiving a branch choice from the
// peer. It resumes with Left if the peer selected left.
type Offer struct {
	kont.Phantom[kont.Either[struct{}, struct{}]]
}

// DispatchSession handles Offer on ch.
func (Offer) DispatchSession(ch *link.Channel) (kont.Resumed, error) {
	var mark [1]byte
	if err := ch.Recv(mark[:]); err != nil {
		return nil, err
	}
	switch mark[0] {
	case markLeft:
		return offerLeft, nil
	case markRight:
		return offerRight, nil
	}
	return nil, protocolError("offer", ch, mark[0])
}

// Fork is the effect operation deriving a child channel. Peers that fork
// in the same order obtain children bound to the same key.
type Fork struct {
	kont.Phantom[*link.Channel]
}

// DispatchSession handles Fork on ch.
func (Fork) DispatchSession(ch *link.Channel) (kont.Resumed, error) {
	child, err := ch.Fork()
	if err != nil {
		return nil, err
	}
	return child, nil
}

func protocolError(op string, ch *link.Channel, got byte) error {
	return &link.Error{
		Code: link.CodeMismatch,
		Op:   op,
		Key:  ch.Key(),
		Err:  fmt.Errorf("unexpected marker %#02x", got),
	}
}
