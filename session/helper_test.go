// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session_test

import (
	"testing"

	"code.hybscloud.com/link"
	"code.hybscloud.com/link/inproc"
	"code.hybscloud.com/link/pipe"
)

// inprocPair returns a connected client/server channel pair keyed key on
// a fresh registry.
func inprocPair(tb testing.TB, key string) (*link.Channel, *link.Channel) {
	tb.Helper()
	reg := inproc.NewRegistry()
	client, server := reg.Pair(key)
	a, err := link.Open(client, key)
	if err != nil {
		tb.Fatal(err)
	}
	b, err := link.Open(server, key)
	if err != nil {
		tb.Fatal(err)
	}
	return a, b
}

// pipePair returns a connected channel pair over a bounded pipe.
func pipePair() (*link.Channel, *link.Channel) {
	a, b := pipe.New(0)
	return link.New(a), link.New(b)
}
