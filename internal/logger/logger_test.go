package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNopBeforeInit(t *testing.T) {
	// Must not panic on the package default.
	Info("unused", zap.Int("frame", 1))
	Sugar.Debugf("frame %d", 2)
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{`"error"`}, []string{`"warn"`, `"info"`, `"debug"`}},
		{"warn", []string{`"error"`, `"warn"`}, []string{`"info"`, `"debug"`}},
		{"info", []string{`"error"`, `"warn"`, `"info"`}, []string{`"debug"`}},
		{"debug", []string{`"error"`, `"warn"`, `"info"`, `"debug"`}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := filepath.Join(dir, tt.level+".log")
			cfg := FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}
			require.NoError(t, InitWithFileConfig(tt.level, cfg, false))

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			out := string(content)
			for _, exp := range tt.expected {
				assert.True(t, strings.Contains(out, exp), "expected %s", exp)
			}
			for _, exc := range tt.excluded {
				assert.False(t, strings.Contains(out, exc), "unexpected %s", exc)
			}
		})
	}
}

func TestFieldsInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.log")
	require.NoError(t, InitWithFileConfig("info", FileConfig{Path: path, MaxSizeMB: 1}, false))

	Info("generated", zap.String("file", "img/depth_input_0_0000.raw"))
	Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"file":"img/depth_input_0_0000.raw"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/fixturegen.log")
	assert.Equal(t, "/tmp/fixturegen.log", cfg.Path)
	assert.Equal(t, 20, cfg.MaxSizeMB)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.True(t, cfg.Compress)
}
