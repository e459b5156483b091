// Package config loads the storefront settings from defaults, an optional
// YAML file, .env, STOREFRONT_* environment variables and command line
// flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "STOREFRONT"
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	configFlag        = "config"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	CodecJSON = "json"
	CodecAvro = "avro"
)

var ErrInvalidConfig = errors.New("invalid config")

// flagKeys maps command line flag names onto config keys.
var flagKeys = map[string]string{
	"log-level": "log_level",
	"addr":      "http_server_addr",
	"catalog":   "catalog_file",
	"storage":   "storage.backend",
	"codec":     "storage.codec",
	"currency":  "currency_symbol",
}

type Storage struct {
	Backend        string `mapstructure:"backend"`
	Codec          string `mapstructure:"codec"`
	FileDir        string `mapstructure:"file_dir"`
	FileQuotaBytes int64  `mapstructure:"file_quota_bytes"`
	SQLitePath     string `mapstructure:"sqlite_path"`
	RedisAddr      string `mapstructure:"redis_addr"`
	RedisPassword  string `mapstructure:"redis_password"`
	RedisDB        int    `mapstructure:"redis_db"`
	PostgresDSN    string `mapstructure:"postgres_dsn"`
}

type Events struct {
	Enabled     bool     `mapstructure:"enabled"`
	SeedBrokers []string `mapstructure:"seed_brokers"`
	Topic       string   `mapstructure:"topic"`
}

type Config struct {
	LogLevel           slog.Level `mapstructure:"log_level"`
	CurrencySymbol     string     `mapstructure:"currency_symbol"`
	CatalogFile        string     `mapstructure:"catalog_file"`
	HTTPServerAddr     string     `mapstructure:"http_server_addr"`
	SchemaRegistryURLs []string   `mapstructure:"schema_registry_urls"`
	Storage            Storage    `mapstructure:"storage"`
	Events             Events     `mapstructure:"events"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("currency_symbol", "₹")
	v.SetDefault("catalog_file", "")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("schema_registry_urls", []string{})

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.codec", CodecJSON)
	v.SetDefault("storage.file_dir", ".storefront")
	v.SetDefault("storage.file_quota_bytes", 5<<20)
	v.SetDefault("storage.sqlite_path", "storefront.db")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.postgres_dsn", "")

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.seed_brokers", []string{"localhost:9092"})
	v.SetDefault("events.topic", "storefront-events")
}

// Load builds the Config. flags may be nil. Only flags that were set on
// the command line override other sources.
func Load(flags *pflag.FlagSet) (Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("%s: .env: %w", op, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := configFilepath(flags); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func configFilepath(flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup(configFlag); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	return os.Getenv(configFileEnvName)
}

func (c Config) Validate() error {
	var errs []error

	backends := []string{
		BackendMemory, BackendFile, BackendSQLite, BackendRedis, BackendPostgres,
	}
	if !slices.Contains(backends, c.Storage.Backend) {
		errs = append(errs, fmt.Errorf(
			"storage.backend %q: want one of %s",
			c.Storage.Backend, strings.Join(backends, ", "),
		))
	}

	if c.Storage.Codec != CodecJSON && c.Storage.Codec != CodecAvro {
		errs = append(errs, fmt.Errorf(
			"storage.codec %q: want json or avro", c.Storage.Codec,
		))
	}

	if c.Storage.Backend == BackendPostgres && c.Storage.PostgresDSN == "" {
		errs = append(errs, errors.New("storage.postgres_dsn: required for postgres backend"))
	}

	if c.Events.Enabled {
		if len(c.Events.SeedBrokers) == 0 {
			errs = append(errs, errors.New("events.seed_brokers: required when events are enabled"))
		}
		if c.Events.Topic == "" {
			errs = append(errs, errors.New("events.topic: required when events are enabled"))
		}
	}

	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Print writes the effective config with secrets masked.
func (c Config) Print(w io.Writer) {
	template := `
General:
	LogLevel=%q
	CurrencySymbol=%q
	CatalogFile=%q
	HTTPServerAddr=%q
	SchemaRegistryURLs=%q

Storage:
	Backend=%q
	Codec=%q
	FileDir=%q
	FileQuotaBytes=%d
	SQLitePath=%q
	RedisAddr=%q
	RedisPassword=%q
	RedisDB=%d
	PostgresDSN=%q

Events:
	Enabled=%t
	SeedBrokers=%q
	Topic=%q

`
	fmt.Fprintln(w, "Loaded config:")
	fmt.Fprintf(
		w,
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.CurrencySymbol,
		c.CatalogFile,
		c.HTTPServerAddr,
		c.SchemaRegistryURLs,
		c.Storage.Backend,
		c.Storage.Codec,
		c.Storage.FileDir,
		c.Storage.FileQuotaBytes,
		c.Storage.SQLitePath,
		c.Storage.RedisAddr,
		mask(c.Storage.RedisPassword),
		c.Storage.RedisDB,
		mask(c.Storage.PostgresDSN),
		c.Events.Enabled,
		c.Events.SeedBrokers,
		c.Events.Topic,
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
