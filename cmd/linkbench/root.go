// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"code.hybscloud.com/link/internal/config"
)

// flags holds command-line overrides. Only flags the user set replace
// configuration values.
type flags struct {
	config       string
	kind         string
	key          string
	pipeCapacity int
	streams      int
	messages     int
	size         string
	logLevel     string
}

func newRootCommand() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:           "linkbench",
		Short:         "Loopback throughput benchmark for link transports",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.Logging)
			rep, err := runBench(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			rep.print(cmd.OutOrStdout())
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.config, "config", "c", "", "Configuration file path")
	pf.StringVar(&f.kind, "transport", "", "Transport kind: inproc or pipe")
	pf.StringVar(&f.key, "key", "", "Channel key (default: random)")
	pf.IntVar(&f.pipeCapacity, "pipe-capacity", 0, "Ring capacity per pipe direction")
	pf.IntVarP(&f.streams, "streams", "s", 0, "Number of forked streams")
	pf.IntVarP(&f.messages, "messages", "n", 0, "Messages per stream")
	pf.StringVar(&f.size, "size", "", "Message size, e.g. 4KiB")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level")

	rootCmd.AddCommand(newConfigCommand(&f))
	return rootCmd
}

func newConfigCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// loadConfig loads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}
	set := cmd.Flags().Changed
	if set("transport") {
		cfg.Transport.Kind = f.kind
	}
	if set("key") {
		cfg.Transport.Key = f.key
	}
	if set("pipe-capacity") {
		cfg.Transport.PipeCapacity = f.pipeCapacity
	}
	if set("streams") {
		cfg.Bench.Streams = f.streams
	}
	if set("messages") {
		cfg.Bench.Messages = f.messages
	}
	if set("size") {
		cfg.Bench.MessageSize = f.size
	}
	if set("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, lc config.Logging) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if lc.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
