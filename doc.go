// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package link provides a transport-agnostic typed communication channel.
//
// Application code sends and receives scalars, fixed arrays and flat
// buffers through a [Channel] without knowing whether the bytes travel
// over an in-process queue, a socket, or anything else that satisfies
// [Transport].
//
// # Architecture
//
//   - Transport: the byte contract. Optional capabilities are [Forker]
//     (sub-channel multiplexing) and [Rebinder] (late keying).
//   - Channel: typed façade. Methods move bytes; generic functions such as
//     [SendValue], [SendSlice], [RecvSlice] and [RecvSliceResize] reduce
//     typed values to byte views.
//   - Errors: every fallible operation returns an error classified by a
//     [Code]; [CodeOf] and [IsOK] are the only queries callers need.
//
// Backends live in sub-packages: [code.hybscloud.com/link/inproc] maps a
// key to a pair of directional blocking queues through an explicit
// registry, and [code.hybscloud.com/link/pipe] joins two ends with bounded
// lock-free rings. [code.hybscloud.com/link/session] composes typed
// protocols over a Channel.
//
// # Synchronicity
//
// [Channel.AsyncSend] and its typed variants are synchronous: they return
// once the transport has accepted the bytes. [Channel.AsyncSendFuture],
// [Channel.AsyncRecv] and their typed variants run on their own goroutine
// and return a [Future] the caller must wait on.
//
// # Example
//
//	reg := inproc.NewRegistry()
//	client, server := reg.Pair("job-7")
//	a, b := link.New(client), link.New(server)
//	_ = link.SendSlice(a, []int64{1, 2, 3})
//	var got []int64
//	_ = link.RecvSliceResize(b, &got)
package link
