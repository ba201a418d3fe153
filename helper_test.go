// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package link_test

import (
	"testing"

	"code.hybscloud.com/link"
	"code.hybscloud.com/link/inproc"
	"github.com/stretchr/testify/require"
)

// channelPair opens a client and a server channel on key in a fresh
// registry.
func channelPair(t *testing.T, key string) (*link.Channel, *link.Channel) {
	t.Helper()
	reg := inproc.NewRegistry()
	client, server := reg.Pair(key)
	a, err := link.Open(client, key)
	require.NoError(t, err)
	b, err := link.Open(server, key)
	require.NoError(t, err)
	return a, b
}

// stubTransport is a keyless transport that records rebinds and never
// delivers a message.
type stubTransport struct {
	rebound   []string
	rebindErr error
	sendErr   error
}

func (s *stubTransport) Send(p []byte) error      { return s.sendErr }
func (s *stubTransport) RecvExact(p []byte) error { return link.ErrUnavailable }
func (s *stubTransport) RecvAny() ([]byte, error) { return nil, link.ErrUnavailable }
func (s *stubTransport) Close() error             { return nil }
func (s *stubTransport) Cancel() error            { return nil }

func (s *stubTransport) Rebind(key string) error {
	if s.rebindErr != nil {
		return s.rebindErr
	}
	s.rebound = append(s.rebound, key)
	return nil
}
