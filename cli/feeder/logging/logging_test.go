package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/config"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger() {
	log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
	log.SetOutput(io.Discard)
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&log.TextFormatter{})
}

func TestLogFileCreationAndContent(t *testing.T) {
	defer resetLogger()

	cfg := config.Default()
	cfg.LogLevel = "DEBUG"
	cfg.LogMaxAgeDays = 3
	cfg.LogFilePath = filepath.Join(t.TempDir(), "nested", "feeder_test.log")

	logger, err := Configure(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	log.SetOutput(io.Discard) // keep stdout clean, the file hook still fires

	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.Equal(t, cfg.LogMaxAgeDays, logger.MaxAge)

	logMessage := "UNIQUE_TEST_MESSAGE_" + time.Now().Format(time.RFC3339Nano)
	log.Debug(logMessage)
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(cfg.LogFilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), logMessage)
	assert.Contains(t, string(content), "level=debug")
	assert.Contains(t, string(content), "time=")
	assert.NotContains(t, string(content), "\x1b[")
}

func TestConsoleOnly(t *testing.T) {
	defer resetLogger()

	cfg := config.Default()
	cfg.LogLevel = "WARN"

	logger, err := Configure(cfg)
	require.NoError(t, err)
	assert.Nil(t, logger)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	assert.Empty(t, log.StandardLogger().Hooks)
	assert.Equal(t, os.Stdout, log.StandardLogger().Out)

	formatter, ok := log.StandardLogger().Formatter.(*log.TextFormatter)
	require.True(t, ok)
	assert.True(t, formatter.ForceColors)
	assert.False(t, formatter.FullTimestamp)
	assert.False(t, formatter.DisableColors)
}
