// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package link

import (
	"errors"

	"golang.org/x/sys/unix"
)

// errnoCode classifies an errno surfaced by a socket-backed transport.
// Connection-level failures are network errors; everything else that
// originates in a system call is a syscall error.
func errnoCode(err error) (Code, bool) {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return CodeOK, false
	}
	switch errno {
	case unix.ETIMEDOUT:
		return CodeTimeout, true
	case unix.ECONNRESET, unix.ECONNREFUSED, unix.ECONNABORTED,
		unix.EPIPE, unix.ENETDOWN, unix.ENETUNREACH, unix.EHOSTUNREACH,
		unix.ENOTCONN:
		return CodeNetwork, true
	case unix.EAGAIN:
		return CodeUnavailable, true
	case unix.EEXIST:
		return CodeDuplicate, true
	case unix.ENOENT:
		return CodeNotFound, true
	case unix.EINVAL:
		return CodeInvalid, true
	case unix.ENOSYS, unix.EOPNOTSUPP:
		return CodeNotImplemented, true
	default:
		return CodeSyscall, true
	}
}
