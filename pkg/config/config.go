// Package config loads geomech settings from a TOML file.
//
// # Search Order
//
// [Load] uses the first of:
//
//   - the path given on the command line (--config)
//   - $GEOMECH_CONFIG
//   - ./geomech.toml
//   - $XDG_CONFIG_HOME/geomech/config.toml, or ~/.config/geomech/config.toml
//
// When none exists the defaults from [Default] are used. An explicitly named
// file that does not exist is an error.
//
// # File Format
//
//	[server]
//	addr = ":8080"
//	request_timeout = "30s"
//
//	[cache]
//	backend = "file"        # none, file or redis
//	ttl = "168h"
//
//	[archive]
//	backend = "sqlite"      # none, sqlite or mongo
//	sqlite_path = "/var/lib/geomech/runs.db"
//
//	[log]
//	level = "info"
//
// Durations are Go duration strings. Unknown keys are rejected.
package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/geomech/pkg/archive"
	"github.com/matzehuels/geomech/pkg/cache"
	"github.com/matzehuels/geomech/pkg/errors"
)

const (
	appName = "geomech"

	// EnvConfig names the environment variable holding a config path.
	EnvConfig = "GEOMECH_CONFIG"

	// LocalFile is the config file looked up in the working directory.
	LocalFile = "geomech.toml"
)

// Backend names.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config is the complete geomech configuration.
type Config struct {
	Server  Server  `toml:"server"`
	Cache   Cache   `toml:"cache"`
	Archive Archive `toml:"archive"`
	Log     Log     `toml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// Server configures the HTTP API.
type Server struct {
	Addr           string   `toml:"addr"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Cache configures result caching.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	RedisPrefix   string   `toml:"redis_prefix"`
}

// Archive configures the run archive.
type Archive struct {
	Backend         string `toml:"backend"`
	SQLitePath      string `toml:"sqlite_path"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:           ":8080",
			RequestTimeout: Duration{30 * time.Second},
		},
		Cache: Cache{
			Backend:     BackendFile,
			TTL:         Duration{cache.TTLResult},
			RedisAddr:   "localhost:6379",
			RedisPrefix: appName + ":",
		},
		Archive: Archive{
			Backend:         BackendNone,
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   archive.DefaultMongoDatabase,
			MongoCollection: archive.DefaultMongoCollection,
		},
		Log: Log{Level: "info"},
	}
}

// Load finds and reads the configuration. explicit is the --config value and
// may be empty.
func Load(explicit string) (Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Find returns the config path to use, or "" when no file exists.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "config file %s", explicit)
		}
		return explicit, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		if _, err := os.Stat(env); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "%s=%s", EnvConfig, env)
		}
		return env, nil
	}
	candidates := []string{LocalFile}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, p := range candidates {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", nil
}

// LoadFile reads path over the defaults and validates the result.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidInput,
			"%s: unknown key(s) %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks backend names, durations and the log level.
func (c Config) Validate() error {
	if err := errors.First(
		errors.OneOf("cache.backend", c.Cache.Backend, BackendNone, BackendFile, BackendRedis),
		errors.OneOf("archive.backend", c.Archive.Backend, BackendNone, BackendSQLite, BackendMongo),
	); err != nil {
		return err
	}
	if c.Server.RequestTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.request_timeout must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "log.level")
	}
	return nil
}

// LogLevel returns the configured level, or info when it cannot be parsed.
func (c Config) LogLevel() log.Level {
	l, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// =============================================================================
// Backends
// =============================================================================

// Open returns the configured cache. noCache forces the null cache.
func (c Cache) Open(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := c.Dir
	if dir == "" {
		dir = cache.DefaultDir()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// Open returns the configured run archive.
func (a Archive) Open(ctx context.Context) (archive.Store, error) {
	switch a.Backend {
	case BackendSQLite:
		path := a.SQLitePath
		if path == "" {
			dir, err := dataDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolve data directory")
			}
			path = filepath.Join(dir, "runs.db")
		}
		s, err := archive.NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMongo:
		s, err := archive.NewMongoStore(ctx, archive.MongoOptions{
			URI:        a.MongoURI,
			Database:   a.MongoDatabase,
			Collection: a.MongoCollection,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return archive.NewNullStore(), nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns $XDG_CONFIG_HOME/geomech or ~/.config/geomech.
func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// dataDir returns $XDG_DATA_HOME/geomech or ~/.local/share/geomech.
func dataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
