// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package inproc implements link.Transport over in-process blocking
// queues.
//
// A [Registry] maps each key to a pair of unbounded queues, one per
// direction. A [Transport] opened in the [Client] role writes the
// client→server queue and reads the server→client queue; [Server] is the
// mirror image. Two transports of opposite roles on one key therefore see
// disjoint directional queues, while transports of the same role on one
// key share a FIFO with any-reader semantics.
//
// Forking derives a transport bound to a new key in the same role; the
// peer forks with the same derived key and both rendezvous in the
// registry regardless of order.
//
//	reg := inproc.NewRegistry()
//	client, server := reg.Pair("session")
//	ca, _ := link.Open(client, "session")
//	cb, _ := link.Open(server, "session")
//	fa, _ := ca.Fork() // key "session_fork_1"
//	fb, _ := cb.Fork() // same key, opposite role
package inproc
