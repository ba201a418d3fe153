// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package link

import (
	"errors"
	"strings"
)

// Code classifies the outcome of a channel or transport operation.
// Codes beyond CodeOK are opaque categories for logging and branching;
// they carry no recoverable detail.
type Code uint8

const (
	CodeOK Code = iota
	CodeNetwork
	CodeMismatch
	CodeTimeout
	CodeDuplicate
	CodeNotFound
	CodeSyscall
	CodeInvalid
	CodeNotImplemented
	CodeUnavailable
)

var codeNames = [...]string{
	CodeOK:             "ok",
	CodeNetwork:        "network error",
	CodeMismatch:       "mismatch error",
	CodeTimeout:        "timeout error",
	CodeDuplicate:      "duplicate error",
	CodeNotFound:       "not found error",
	CodeSyscall:        "syscall error",
	CodeInvalid:        "invalid error",
	CodeNotImplemented: "not implemented error",
	CodeUnavailable:    "unavailable error",
}

// String returns the human readable name of c.
func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown error"
}

// Error is the error type returned by channel and transport operations.
// Op and Key are optional context; Err is the underlying cause, if any.
type Error struct {
	Code Code
	Op   string
	Key  string
	Err  error
}

// Sentinel errors, one per non-OK code. errors.Is matches any *Error with
// the same Code against these.
var (
	ErrNetwork        = &Error{Code: CodeNetwork}
	ErrMismatch       = &Error{Code: CodeMismatch}
	ErrTimeout        = &Error{Code: CodeTimeout}
	ErrDuplicate      = &Error{Code: CodeDuplicate}
	ErrNotFound       = &Error{Code: CodeNotFound}
	ErrSyscall        = &Error{Code: CodeSyscall}
	ErrInvalid        = &Error{Code: CodeInvalid}
	ErrNotImplemented = &Error{Code: CodeNotImplemented}
	ErrUnavailable    = &Error{Code: CodeUnavailable}
)

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("link: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Code.String())
	if e.Key != "" {
		b.WriteString(" (key ")
		b.WriteString(e.Key)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Copy returns a detached duplicate of e. Errors are shared by pointer,
// so call sites that intend to annotate a result must copy it first.
func (e *Error) Copy() *Error {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// newError annotates a sentinel, or wraps a foreign cause, with op and key.
func newError(code Code, op, key string, cause error) *Error {
	return &Error{Code: code, Op: op, Key: key, Err: cause}
}

// CodeOf classifies err. A nil error is CodeOK; an *Error anywhere in the
// chain yields its Code; errno values are classified by origin; anything
// else is treated as a transport-level CodeNetwork failure.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	if c, ok := errnoCode(err); ok {
		return c
	}
	return CodeNetwork
}

// IsOK reports whether err represents a successful outcome.
func IsOK(err error) bool { return CodeOf(err) == CodeOK }

// wrap annotates err with op and key, preserving its classification.
func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var le *Error
	if errors.As(err, &le) && le.Op != "" {
		return err
	}
	return newError(CodeOf(err), op, key, unwrapSentinel(err))
}

// unwrapSentinel drops a bare sentinel cause so annotated errors do not
// repeat their code in the message.
func unwrapSentinel(err error) error {
	if le, ok := err.(*Error); ok && le.Op == "" && le.Key == "" {
		return le.Err
	}
	return err
}
