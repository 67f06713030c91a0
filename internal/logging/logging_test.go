// SPDX-License-Identifier: EPL-2.0

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Console(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      Options
		wantDebug bool
		wantJSON  bool
	}{
		{"info text", Options{}, false, false},
		{"debug text", Options{Debug: true}, true, false},
		{"info json", Options{JSON: true}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			tt.opts.Console = &out
			logger, closeLog := New(tt.opts)

			logger.Debug("hidden unless debug")
			logger.Info("opened", zap.String("format", "wav"))
			require.NoError(t, closeLog())

			assert.Equal(t, tt.wantDebug, strings.Contains(out.String(), "hidden unless debug"))
			assert.Contains(t, out.String(), "opened")

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			last := lines[len(lines)-1]
			var entry map[string]any
			err := json.Unmarshal([]byte(last), &entry)
			if tt.wantJSON {
				require.NoError(t, err)
				assert.Equal(t, "wav", entry["format"])
			} else {
				assert.Error(t, err)
				assert.Contains(t, last, "INFO")
			}
		})
	}
}

func TestNew_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audpipe.log")
	var out bytes.Buffer
	logger, closeLog := New(Options{File: path, MaxSizeMB: 1, Console: &out})

	logger.Warn("audio read failed", zap.Int64("start", 10))
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "audio read failed", entry["msg"])
	assert.EqualValues(t, 10, entry["start"])

	assert.Contains(t, out.String(), "audio read failed")
}
