package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Philanthropists/erroror/internal/logging"
)

func Test_LoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), config)
}

func Test_LoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wombats.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"producers": 5, "dedup_window": "1m"}`), 0o600))

	config, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, config.Producers)
	assert.Equal(t, "1m", config.DedupWindow)
	assert.Equal(t, defaultConfig().Consumers, config.Consumers)
}

func Test_LoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wombats.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func Test_FlagsOverrideOnlyWhenSet(t *testing.T) {
	fset := flag.NewFlagSet("test", flag.ContinueOnError)
	options, err := getOptions(fset, []string{"-consumers", "9", "-dedup", "30s"})
	require.NoError(t, err)

	config := defaultConfig()
	overrideFromFlags(fset, &config, options.Flags)

	assert.Equal(t, 9, config.Consumers)
	assert.Equal(t, "30s", config.DedupWindow)
	assert.Equal(t, defaultConfig().Producers, config.Producers)
	assert.NoError(t, config.validate())
}

func Test_ValidateRejectsBadValues(t *testing.T) {
	config := defaultConfig()
	config.BatchSize = 0
	assert.Error(t, config.validate())

	config = defaultConfig()
	config.DedupWindow = "soon"
	assert.Error(t, config.validate())
}

func Test_RunProcessesEveryBatch(t *testing.T) {
	config := Config{
		Producers:        3,
		Consumers:        2,
		WombatsPerSource: 40,
		BatchSize:        8,
		QueueSize:        2,
		FreelistCapacity: 4,
		DedupWindow:      "1m",
		Seed:             7,
	}

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logging.Wrap(zap.New(core)).GetContext(context.Background())
	stats, err := run(ctx, config)
	require.NoError(t, err)

	assert.Equal(t, 15, stats.Processed)
	assert.Empty(t, stats.Failures)
	assert.Equal(t, 15, logs.FilterMessage("processed batch").Len())
}
