// Package config loads tourctl settings from defaults, an optional config
// file, environment variables (TOURCTL_*) and command line flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/petrijr/featuretour/pkg/api"
)

// StoreDriver selects the tour store backend.
type StoreDriver string

const (
	DriverMemory   StoreDriver = "memory"
	DriverSQLite   StoreDriver = "sqlite"
	DriverPostgres StoreDriver = "postgres"
	DriverRedis    StoreDriver = "redis"
	DriverMongo    StoreDriver = "mongo"
)

// EnvPrefix is prepended to every environment variable, e.g.
// TOURCTL_STORE_DRIVER for store.driver.
const EnvPrefix = "TOURCTL"

const (
	KeyLogLevel            = "log.level"
	KeyLogFormat           = "log.format"
	KeyStoreDriver         = "store.driver"
	KeyStoreDSN            = "store.dsn"
	KeyStorePrefix         = "store.prefix"
	KeyStoreDatabase       = "store.database"
	KeyStoreCollection     = "store.collection"
	KeyRecorderEscapeKey   = "recorder.escape_key"
	KeyRecorderPreviewWait = "recorder.preview_restore_delay"
	KeyTourDefaultID       = "tour.default_id"
	KeyTourDefaultName     = "tour.default_name"
)

type Config struct {
	Log      LogConfig
	Store    StoreConfig
	Recorder RecorderConfig
	Tour     TourConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type StoreConfig struct {
	Driver StoreDriver
	// DSN is a file path or URL for sqlite/postgres, host:port for redis and
	// a connection URI for mongo.
	DSN        string
	Prefix     string
	Database   string
	Collection string
}

type RecorderConfig struct {
	EscapeKey           string
	PreviewRestoreDelay time.Duration
}

type TourConfig struct {
	DefaultID   string
	DefaultName string
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyStoreDriver, string(DriverSQLite))
	v.SetDefault(KeyStoreDSN, "featuretour.db")
	v.SetDefault(KeyStorePrefix, "featuretour:")
	v.SetDefault(KeyStoreDatabase, "featuretour")
	v.SetDefault(KeyStoreCollection, "tours")
	v.SetDefault(KeyRecorderEscapeKey, "esc")
	v.SetDefault(KeyRecorderPreviewWait, 500*time.Millisecond)
	v.SetDefault(KeyTourDefaultID, "my-tour")
	v.SetDefault(KeyTourDefaultName, "MyTour")
}

// BindFlags binds flags to their keys. Flags named like the key with dots
// replaced by dashes (store.driver -> --store-driver) are bound
// automatically; missing flags are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range v.AllKeys() {
		name := strings.NewReplacer(".", "-", "_", "-").Replace(key)
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %q: %w", name, err)
			}
		}
	}
	return nil
}

// Load reads the optional config file and decodes the effective settings.
// An empty path skips the file; a missing explicit file is an error.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Store: StoreConfig{
			Driver:     StoreDriver(strings.ToLower(v.GetString(KeyStoreDriver))),
			DSN:        v.GetString(KeyStoreDSN),
			Prefix:     v.GetString(KeyStorePrefix),
			Database:   v.GetString(KeyStoreDatabase),
			Collection: v.GetString(KeyStoreCollection),
		},
		Recorder: RecorderConfig{
			EscapeKey:           v.GetString(KeyRecorderEscapeKey),
			PreviewRestoreDelay: v.GetDuration(KeyRecorderPreviewWait),
		},
		Tour: TourConfig{
			DefaultID:   v.GetString(KeyTourDefaultID),
			DefaultName: v.GetString(KeyTourDefaultName),
		},
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs error
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres, DriverRedis, DriverMongo:
	default:
		errs = multierr.Append(errs, api.NewValidationError(KeyStoreDriver, fmt.Sprintf("unknown driver %q", c.Store.Driver)))
	}
	if c.Store.Driver != DriverMemory && strings.TrimSpace(c.Store.DSN) == "" {
		errs = multierr.Append(errs, api.NewValidationError(KeyStoreDSN, "must not be empty"))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = multierr.Append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = multierr.Append(errs, api.NewValidationError(KeyLogFormat, fmt.Sprintf("must be text or json, got %q", c.Log.Format)))
	}
	if strings.TrimSpace(c.Recorder.EscapeKey) == "" {
		errs = multierr.Append(errs, api.NewValidationError(KeyRecorderEscapeKey, "must not be empty"))
	}
	if c.Recorder.PreviewRestoreDelay < 0 {
		errs = multierr.Append(errs, api.NewValidationError(KeyRecorderPreviewWait, "must not be negative"))
	}
	return errs
}

// Logger builds the process logger described by c.Log.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, api.NewValidationError(KeyLogLevel, fmt.Sprintf("unknown level %q", s))
	}
	return level, nil
}
