// SPDX-License-Identifier: EPL-2.0

// Package config loads command line settings from flags, AUDPIPE_*
// environment variables and an optional config file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ik5/audpipe"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. AUDPIPE_CACHE_MODE.
const EnvPrefix = "AUDPIPE"

type Settings struct {
	Debug bool // true to enable debug logging

	Cache struct {
		Mode string // none, ram or disk
		Dir  string // directory for the disk cache
	}

	Log struct {
		JSON       bool   // JSON console output
		File       string // rotated log file, empty to disable
		MaxSize    int    // megabytes before the log file is rotated
		MaxBackups int    // rotated files to keep
		Compress   bool   // gzip rotated files
	}

	Metrics struct {
		File string // write metrics in text exposition format on exit
	}
}

// SetDefaults registers every key so environment variables are seen by
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("cache.mode", string(audpipe.CacheRAM))
	v.SetDefault("cache.dir", os.TempDir())
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxsize", 10)
	v.SetDefault("log.maxbackups", 3)
	v.SetDefault("log.compress", false)
	v.SetDefault("metrics.file", "")
}

// Init prepares v for Load: defaults, environment and the config file named
// by configFile, if any.
func Init(v *viper.Viper, configFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		return nil
	}

	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Load decodes v into Settings and validates it.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if _, err := audpipe.ParseCacheMode(s.Cache.Mode); err != nil {
		return nil, err
	}

	return &s, nil
}

// CacheMode returns the validated cache mode.
func (s *Settings) CacheMode() audpipe.CacheMode {
	m, _ := audpipe.ParseCacheMode(s.Cache.Mode)
	return m
}
