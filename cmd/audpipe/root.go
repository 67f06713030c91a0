// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audpipe"
	"github.com/ik5/audpipe/internal/config"
	"github.com/ik5/audpipe/internal/logging"
	"github.com/ik5/audpipe/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app holds what the subcommands share once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	stderr     io.Writer

	settings *config.Settings
	logger   *zap.Logger
	closeLog func() error
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func (a *app) options() []audpipe.Option {
	return []audpipe.Option{
		audpipe.WithCacheMode(a.settings.CacheMode()),
		audpipe.WithCacheDir(a.settings.Cache.Dir),
		audpipe.WithLogger(a.logger),
		audpipe.WithMetrics(a.metrics),
	}
}

// initialize runs before every subcommand, after flags are parsed.
func (a *app) initialize() error {
	if err := config.Init(a.v, a.configFile); err != nil {
		return err
	}

	s, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.settings = s

	a.logger, a.closeLog = logging.New(logging.Options{
		Debug:      s.Debug,
		JSON:       s.Log.JSON,
		File:       s.Log.File,
		MaxSizeMB:  s.Log.MaxSize,
		MaxBackups: s.Log.MaxBackups,
		Compress:   s.Log.Compress,
		Console:    a.stderr,
	})

	a.registry = prometheus.NewRegistry()
	if a.metrics, err = metrics.New(a.registry); err != nil {
		return err
	}

	a.logger.Debug("settings loaded",
		zap.String("cache_mode", s.Cache.Mode),
		zap.String("cache_dir", s.Cache.Dir),
		zap.String("config", a.v.ConfigFileUsed()))

	return nil
}

// shutdown writes the metrics file and closes the log.
func (a *app) shutdown() error {
	if a.settings == nil {
		return nil
	}

	var err error
	if path := a.settings.Metrics.File; path != "" {
		if werr := prometheus.WriteToTextfile(path, a.registry); werr != nil {
			err = fmt.Errorf("writing metrics: %w", werr)
		}
	}

	return errors.Join(err, a.closeLog())
}

// rootCommand creates the root command and its subcommands.
func rootCommand(a *app) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "audpipe",
		Short:         "Inspect audio files and export normalized clips",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.initialize()
		},
	}

	if err := setupFlags(rootCmd, a); err != nil {
		return nil, err
	}

	rootCmd.AddCommand(infoCommand(a), exportCommand(a))

	return rootCmd, nil
}

// setupFlags defines the global flags and binds them to viper keys.
func setupFlags(rootCmd *cobra.Command, a *app) error {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (yaml, toml or json)")
	pf.BoolP("debug", "d", false, "Enable debug output")
	pf.String("cache", string(audpipe.CacheRAM), "Cache for compressed input: none, ram or disk")
	pf.String("cache-dir", os.TempDir(), "Directory for the disk cache")
	pf.Bool("log-json", false, "Log JSON to stderr")
	pf.String("log-file", "", "Also log JSON to this file, rotated by size")
	pf.String("metrics-file", "", "Write Prometheus metrics to this file on exit")

	bindings := map[string]string{
		"debug":        "debug",
		"cache.mode":   "cache",
		"cache.dir":    "cache-dir",
		"log.json":     "log-json",
		"log.file":     "log-file",
		"metrics.file": "metrics-file",
	}
	for key, flag := range bindings {
		if err := a.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}

	return nil
}

// run executes the command line in args.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{v: viper.New(), stderr: stderr}

	rootCmd, err := rootCommand(a)
	if err != nil {
		return err
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err = rootCmd.ExecuteContext(ctx)

	return errors.Join(err, a.shutdown())
}
