// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session_test

import (
	"errors"
	"fmt"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/link"
	"code.hybscloud.com/link/session"
)

func TestSendThen(t *testing.T) {
	client := session.SendThen(42, session.CloseDone("sent"))

	server := session.RecvBind(func(n int) kont.Eff[string] {
		return session.CloseDone(fmt.Sprintf("got %d", n))
	})

	ca, cb := inprocPair(t, "send-then")
	clientResult, serverResult, err := session.Run(ca, cb, client, server)
	if err != nil {
		t.Fatal(err)
	}
	if clientResult != "sent" {
		t.Fatalf("client got %q, want %q", clientResult, "sent")
	}
	if serverResult != "got 42" {
		t.Fatalf("server got %q, want %q", serverResult, "got 42")
	}
}

func TestRecvBind(t *testing.T) {
	client := session.SendThen(99, session.CloseDone("done"))

	server := session.RecvBind(func(n int) kont.Eff[int] {
		return session.CloseDone(n * 2)
	})

	ca, cb := inprocPair(t, "recv-bind")
	_, serverResult, err := session.Run(ca, cb, client, server)
	if err != nil {
		t.Fatal(err)
	}
	if serverResult != 198 {
		t.Fatalf("server got %d, want 198", serverResult)
	}
}

func TestForkBind(t *testing.T) {
	// Each side forks once; the children share a key and run a
	// sub-session while the parents wait.
	client := session.ForkBind(func(child *link.Channel) kont.Eff[string] {
		r, err := session.Exec(child, session.SendThen("via child", session.CloseDone(child.Key())))
		if err != nil {
			t.Errorf("client child: %v", err)
		}
		return session.CloseDone(r)
	})
	server := session.ForkBind(func(child *link.Channel) kont.Eff[string] {
		r, err := session.Exec(child, session.RecvBind(func(s string) kont.Eff[string] {
			return session.CloseDone(s)
		}))
		if err != nil {
			t.Errorf("server child: %v", err)
		}
		return session.CloseDone(r)
	})

	ca, cb := inprocPair(t, "parent")
	clientResult, serverResult, err := session.Run(ca, cb, client, server)
	if err != nil {
		t.Fatal(err)
	}
	if clientResult != "parent_fork_1" {
		t.Fatalf("client got %q, want %q", clientResult, "parent_fork_1")
	}
	if serverResult != "via child" {
		t.Fatalf("server got %q, want %q", serverResult, "via child")
	}
}

func TestForkBindNotImplemented(t *testing.T) {
	skipRace(t)
	ca, _ := pipePair()
	protocol := session.ForkBind(func(child *link.Channel) kont.Eff[int] {
		return kont.Pure(1)
	})
	_, err := session.Exec(ca, protocol)
	if !errors.Is(err, link.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}
