// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package session runs session-typed protocols over a [link.Channel]
// via algebraic effects on [code.hybscloud.com/kont].
//
// Protocols are composed of typed operations dispatched on a channel.
//
// # Architecture
//
//   - Transport: any [link.Channel]. Each operation is one or more channel messages.
//   - Blocking: operations block on the channel; a channel error ends the protocol.
//   - Execution: Cont-world protocols run with [Exec]; Expr-world with [ExecExpr]. Bridge via [Reify] and [Reflect].
//   - Error Handling: [ExecError] separates protocol-level Throw (Left) from channel failures (error).
//
// # Wire Format
//
// [Send] of a string or []byte is one message at the value's natural
// length; any other value must be flat and travels as its memory image.
// [SelectL], [SelectR] and [Close] each send a one-byte marker. [Close]
// waits for the peer's end marker before closing the channel, so both
// peers must reach it.
//
// # API Topologies
//
//   - Operations: [Send], [Recv], [Close], [SelectL], [SelectR], [Offer], [Fork].
//   - Fused: [SendThen], [RecvBind], [CloseDone], [SelectLThen], [SelectRThen], [OfferBranch], [ForkBind].
//   - Recursive: [Loop].
//   - Stepping: [Step] and [Advance] evaluate a protocol one effect at a time.
//
// # Example
//
//	reg := inproc.NewRegistry()
//	client, server := reg.Pair("greeting")
//	ca, _ := link.Open(client, "greeting")
//	cb, _ := link.Open(server, "greeting")
//
//	hello := session.SendThen("hello", session.CloseDone(struct{}{}))
//	greet := session.RecvBind(func(s string) kont.Eff[string] {
//		return session.CloseDone(s)
//	})
//	_, got, err := session.Run(ca, cb, hello, greet)
package session
