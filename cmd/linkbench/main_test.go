// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/link/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootInprocStreams(t *testing.T) {
	out, err := execute(t, "--streams", "3", "-n", "20", "--size", "256B", "--key", "bench", "--log-level", "warn")
	require.NoError(t, err)
	require.Contains(t, out, "inproc bench: 3 streams x 20 messages")
	// 3 * 20 * 256 bytes.
	require.Contains(t, out, "15 kB in")
}

func TestRootPipe(t *testing.T) {
	out, err := execute(t, "--transport", "pipe", "--streams", "1", "-n", "10", "--size", "1KiB", "--log-level", "error")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "pipe default: 1 streams x 10 messages"), out)
}

func TestRootRejectsPipeStreams(t *testing.T) {
	_, err := execute(t, "--transport", "pipe", "--streams", "2")
	require.ErrorContains(t, err, "forking transport")
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--messages", "7")
	require.NoError(t, err)
	require.Contains(t, out, "messages = 7")
	require.Contains(t, out, "[transport]")
}

func TestRunBenchCanceled(t *testing.T) {
	cfg := config.Default()
	cfg.Bench.Messages = 1 << 20
	require.NoError(t, cfg.Finalize())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runBench(ctx, &cfg, zerolog.Nop())
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}
