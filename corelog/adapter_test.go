// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package corelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLevel, lvl)

	lvl, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()

	cfg := Config{}.Default()
	cfg.DisableConsoleLog = true
	cfg.FileLoggingEnabled = true
	cfg.Directory = dir

	logger := New("TEST", zerolog.InfoLevel, cfg)
	logger.Info().Str("key", "value").Msg("hello")
	logger.Debug().Msg("filtered")

	data, err := os.ReadFile(filepath.Join(dir, DefaultLogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"unit":"TEST"`)
	assert.NotContains(t, string(data), "filtered")
}

func TestNewWithoutWriters(t *testing.T) {
	cfg := Config{DisableConsoleLog: true}
	logger := New("TEST", zerolog.InfoLevel, cfg)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
