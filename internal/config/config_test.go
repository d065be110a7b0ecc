package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/petrijr/featuretour/pkg/api"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	require.Equal(t, DriverSQLite, cfg.Store.Driver)
	require.Equal(t, "featuretour.db", cfg.Store.DSN)
	require.Equal(t, "featuretour:", cfg.Store.Prefix)
	require.Equal(t, "esc", cfg.Recorder.EscapeKey)
	require.Equal(t, 500*time.Millisecond, cfg.Recorder.PreviewRestoreDelay)
	require.Equal(t, "my-tour", cfg.Tour.DefaultID)
	require.Equal(t, "MyTour", cfg.Tour.DefaultName)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tourctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
store:
  driver: redis
  dsn: localhost:6379
recorder:
  preview_restore_delay: 2s
`), 0o600))

	t.Setenv("TOURCTL_STORE_PREFIX", "tours:")
	t.Setenv("TOURCTL_RECORDER_ESCAPE_KEY", "q")

	v := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("store-dsn", "", "")
	require.NoError(t, flags.Parse([]string{"--store-dsn", "cache:6380"}))
	require.NoError(t, BindFlags(v, flags))

	cfg, err := Load(v, path)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, DriverRedis, cfg.Store.Driver)
	require.Equal(t, "cache:6380", cfg.Store.DSN, "flags win over the file")
	require.Equal(t, "tours:", cfg.Store.Prefix)
	require.Equal(t, "q", cfg.Recorder.EscapeKey)
	require.Equal(t, 2*time.Second, cfg.Recorder.PreviewRestoreDelay)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_ReportsEverything(t *testing.T) {
	cfg := Config{
		Log:      LogConfig{Level: "loud", Format: "xml"},
		Store:    StoreConfig{Driver: "cassandra"},
		Recorder: RecorderConfig{PreviewRestoreDelay: -time.Second},
	}
	err := cfg.Validate()
	require.ErrorIs(t, err, api.ErrValidation)
	for _, key := range []string{KeyStoreDriver, KeyStoreDSN, KeyLogLevel, KeyLogFormat, KeyRecorderEscapeKey, KeyRecorderPreviewWait} {
		require.Contains(t, err.Error(), key)
	}

	memory := Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		Store:    StoreConfig{Driver: DriverMemory},
		Recorder: RecorderConfig{EscapeKey: "esc"},
	}
	require.NoError(t, memory.Validate())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Log: LogConfig{Level: "warn", Format: "json"}}
	logger := cfg.Logger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
}
