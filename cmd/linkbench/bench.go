// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/link"
	"code.hybscloud.com/link/inproc"
	"code.hybscloud.com/link/internal/config"
	"code.hybscloud.com/link/pipe"
)

type report struct {
	kind     string
	key      string
	streams  int
	messages int
	bytes    uint64
	elapsed  time.Duration
}

func (r report) print(w io.Writer) {
	rate := uint64(0)
	if s := r.elapsed.Seconds(); s > 0 {
		rate = uint64(float64(r.bytes) / s)
	}
	fmt.Fprintf(w, "%s %s: %d streams x %d messages, %s in %s (%s/s)\n",
		r.kind, r.key, r.streams, r.messages,
		humanize.Bytes(r.bytes), r.elapsed.Round(time.Microsecond), humanize.Bytes(rate))
}

// openPair connects two channels over the configured transport.
func openPair(cfg *config.Config, log zerolog.Logger) (*link.Channel, *link.Channel, error) {
	switch cfg.Transport.Kind {
	case config.KindPipe:
		a, b := pipe.New(cfg.Transport.PipeCapacity)
		return link.New(a, link.WithLogger(log)), link.New(b, link.WithLogger(log)), nil
	default:
		reg := inproc.NewRegistry(inproc.WithLogger(log))
		key := cfg.Transport.Key
		var client, server *inproc.Transport
		if key == "" {
			client, server, key = reg.NewPair()
		} else {
			client, server = reg.Pair(key)
		}
		ca, err := link.Open(client, key, link.WithLogger(log))
		if err != nil {
			return nil, nil, err
		}
		cb, err := link.Open(server, key, link.WithLogger(log))
		if err != nil {
			return nil, nil, err
		}
		return ca, cb, nil
	}
}

// streams returns the per-stream channel pairs: the parents themselves
// for a single stream, otherwise one fork of each parent per stream.
func streams(ca, cb *link.Channel, n int) ([][2]*link.Channel, error) {
	if n == 1 {
		return [][2]*link.Channel{{ca, cb}}, nil
	}
	out := make([][2]*link.Channel, n)
	for i := range out {
		fa, err := ca.Fork()
		if err != nil {
			return nil, err
		}
		fb, err := cb.Fork()
		if err != nil {
			return nil, err
		}
		out[i] = [2]*link.Channel{fa, fb}
	}
	return out, nil
}

func runBench(ctx context.Context, cfg *config.Config, log zerolog.Logger) (report, error) {
	ca, cb, err := openPair(cfg, log)
	if err != nil {
		return report{}, err
	}
	defer ca.Close()

	pairs, err := streams(ca, cb, cfg.Bench.Streams)
	if err != nil {
		return report{}, err
	}

	size := cfg.Bench.MessageBytes()
	payload := make([]byte, size)
	for i := range payload {
		payload[i] = byte(i)
	}

	log.Info().
		Str("transport", cfg.Transport.Kind).
		Str("key", ca.Key()).
		Int("streams", len(pairs)).
		Int("messages", cfg.Bench.Messages).
		Str("size", humanize.IBytes(uint64(size))).
		Msg("linkbench: start")

	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, func() {
		for _, p := range pairs {
			_ = p[0].Cancel()
			_ = p[1].Cancel()
		}
	})
	defer stop()

	start := time.Now()
	for _, p := range pairs {
		tx, rx := p[0], p[1]
		g.Go(func() error {
			for range cfg.Bench.Messages {
				if err := tx.Send(payload); err != nil {
					return err
				}
			}
			return nil
		})
		g.Go(func() error {
			buf := make([]byte, size)
			for range cfg.Bench.Messages {
				if err := rx.Recv(buf); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return report{}, ctx.Err()
		}
		return report{}, err
	}
	elapsed := time.Since(start)

	var total uint64
	for _, p := range pairs {
		total += p[1].TotalReceived()
	}
	log.Debug().Str("received", humanize.Bytes(total)).Dur("elapsed", elapsed).Msg("linkbench: done")

	return report{
		kind:     cfg.Transport.Kind,
		key:      ca.Key(),
		streams:  len(pairs),
		messages: cfg.Bench.Messages,
		bytes:    total,
		elapsed:  elapsed,
	}, nil
}
