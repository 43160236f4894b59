package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geomech/pkg/archive"
	"github.com/matzehuels/geomech/pkg/cache"
	"github.com/matzehuels/geomech/pkg/errors"
)

// isolate points every search location at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.RequestTimeout.Duration != 30*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Cache.TTL.Duration != cache.TTLResult {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Archive.Backend != BackendNone {
		t.Errorf("archive backend = %q", cfg.Archive.Backend)
	}
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "geomech.toml"), `
[server]
addr = "127.0.0.1:9000"
request_timeout = "5s"

[cache]
backend = "redis"
ttl = "1h30m"
redis_addr = "redis:6379"
redis_db = 2

[archive]
backend = "sqlite"
sqlite_path = "/tmp/runs.db"

[log]
level = "debug"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.RequestTimeout.Duration != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL.Duration != 90*time.Minute ||
		cfg.Cache.RedisAddr != "redis:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	// Unset keys keep their defaults.
	if cfg.Cache.RedisPrefix != "geomech:" || cfg.Archive.MongoDatabase != archive.DefaultMongoDatabase {
		t.Errorf("defaults lost: %+v %+v", cfg.Cache, cfg.Archive)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[server\naddr = 1", "parse"},
		{"unknown key", "[server]\nport = 80\n", "server.port"},
		{"unknown section", "[metrics]\nenabled = true\n", "metrics"},
		{"bad duration", "[server]\nrequest_timeout = \"soon\"\n", "parse"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", "cache.backend"},
		{"bad archive", "[archive]\nbackend = \"postgres\"\n", "archive.backend"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", "cache.ttl"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), "c.toml"), tt.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestFindOrder(t *testing.T) {
	dir := isolate(t)

	if p, err := Find(""); err != nil || p != "" {
		t.Fatalf("Find with nothing = %q, %v", p, err)
	}
	cfg, err := Load("")
	if err != nil || cfg.Path != "" {
		t.Fatalf("Load with nothing = %+v, %v", cfg, err)
	}

	xdg := writeFile(t, filepath.Join(dir, "xdg", "geomech", "config.toml"), "")
	if p, _ := Find(""); p != xdg {
		t.Errorf("Find = %q, want XDG %q", p, xdg)
	}

	writeFile(t, filepath.Join(dir, LocalFile), "")
	if p, _ := Find(""); p != LocalFile {
		t.Errorf("Find = %q, want local %q", p, LocalFile)
	}

	env := writeFile(t, filepath.Join(dir, "env.toml"), "")
	t.Setenv(EnvConfig, env)
	if p, _ := Find(""); p != env {
		t.Errorf("Find = %q, want env %q", p, env)
	}

	explicit := writeFile(t, filepath.Join(dir, "explicit.toml"), "[log]\nlevel = \"warn\"\n")
	cfg, err = Load(explicit)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != explicit || cfg.LogLevel() != log.WarnLevel {
		t.Errorf("Load(explicit) = %+v", cfg)
	}
}

func TestFindMissing(t *testing.T) {
	dir := isolate(t)
	if _, err := Find(filepath.Join(dir, "nope.toml")); err == nil {
		t.Error("missing explicit file should fail")
	}
	t.Setenv(EnvConfig, filepath.Join(dir, "nope.toml"))
	if _, err := Find(""); err == nil {
		t.Error("missing env file should fail")
	}
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := Cache{Backend: BackendFile, Dir: filepath.Join(dir, "cache")}.Open(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := c.(*cache.FileCache); !ok || fc.Dir() != filepath.Join(dir, "cache") {
		t.Errorf("file backend = %T", c)
	}

	c, err = Cache{Backend: BackendFile}.Open(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("noCache = %T, want cache.NullCache", c)
	}

	s, err := Archive{Backend: BackendSQLite, SQLitePath: filepath.Join(dir, "runs.db")}.Open(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.(*archive.SQLiteStore); !ok {
		t.Errorf("sqlite backend = %T", s)
	}

	s, err = Archive{Backend: BackendNone}.Open(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(archive.NullStore); !ok {
		t.Errorf("none backend = %T", s)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("2m")); err != nil || d.Duration != 2*time.Minute {
		t.Errorf("UnmarshalText = %v, %v", d, err)
	}
	b, _ := d.MarshalText()
	if string(b) != "2m0s" {
		t.Errorf("MarshalText = %s", b)
	}
}
