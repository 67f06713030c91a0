// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audpipe"
	"github.com/ik5/audpipe/audio"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	v := viper.New()
	SetDefaults(v)

	s, err := Load(v)
	require.NoError(t, err)

	assert.False(t, s.Debug)
	assert.Equal(t, audpipe.CacheRAM, s.CacheMode())
	assert.Equal(t, os.TempDir(), s.Cache.Dir)
	assert.Equal(t, 10, s.Log.MaxSize)
	assert.Equal(t, 3, s.Log.MaxBackups)
	assert.Empty(t, s.Log.File)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("AUDPIPE_CACHE_MODE", "disk")
	t.Setenv("AUDPIPE_CACHE_DIR", "/var/tmp")
	t.Setenv("AUDPIPE_DEBUG", "true")
	t.Setenv("AUDPIPE_LOG_FILE", "/var/log/audpipe.log")

	v := viper.New()
	require.NoError(t, Init(v, ""))

	s, err := Load(v)
	require.NoError(t, err)

	assert.True(t, s.Debug)
	assert.Equal(t, audpipe.CacheDisk, s.CacheMode())
	assert.Equal(t, "/var/tmp", s.Cache.Dir)
	assert.Equal(t, "/var/log/audpipe.log", s.Log.File)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audpipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  mode: none\nlog:\n  json: true\n  maxsize: 50\n"), 0o600))

	v := viper.New()
	require.NoError(t, Init(v, path))

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, audpipe.CacheNone, s.CacheMode())
	assert.True(t, s.Log.JSON)
	assert.Equal(t, 50, s.Log.MaxSize)
}

func TestInit_BadConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audpipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache: [unterminated"), 0o600))

	assert.Error(t, Init(viper.New(), path))
}

func TestLoad_InvalidCacheMode(t *testing.T) {
	t.Parallel()

	v := viper.New()
	SetDefaults(v)
	v.Set("cache.mode", "tape")

	_, err := Load(v)
	assert.ErrorIs(t, err, audio.ErrInvalidArgument)
}
