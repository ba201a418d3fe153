// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !unix

package link

import (
	"errors"
	"syscall"
)

func errnoCode(err error) (Code, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return CodeSyscall, true
	}
	return CodeOK, false
}
