package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadConfigFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() error = %v", err)
	}

	if cfg.Cache.Backend != backendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, backendFile)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want localhost:6379", cfg.Redis.Addr)
	}
}

func TestLoadConfigFile_RedisBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"

[redis]
addr = "redis.internal:6380"
password = "hunter2"
db = 3
`)

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() error = %v", err)
	}

	if cfg.Cache.Backend != backendRedis {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, backendRedis)
	}
	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Errorf("Redis.Addr = %q, want redis.internal:6380", cfg.Redis.Addr)
	}
	if cfg.Redis.Password != "hunter2" {
		t.Errorf("Redis.Password = %q, want hunter2", cfg.Redis.Password)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("Redis.DB = %d, want 3", cfg.Redis.DB)
	}
}

func TestLoadConfigFile_CacheDirOverride(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "file"
dir = "/tmp/flowtune-cache"
`)

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() error = %v", err)
	}

	if cfg.Cache.Dir != "/tmp/flowtune-cache" {
		t.Errorf("Cache.Dir = %q, want /tmp/flowtune-cache", cfg.Cache.Dir)
	}
}

func TestLoadConfigFile_UnknownBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memcached"
`)

	_, err := loadConfigFile(path)
	if err == nil {
		t.Fatal("loadConfigFile() should fail for unknown backend")
	}
	if !strings.Contains(err.Error(), "memcached") {
		t.Errorf("error %q should name the unknown backend", err)
	}
}

func TestLoadConfigFile_EmptyBackend(t *testing.T) {
	path := writeConfig(t, `
[redis]
addr = "localhost:6379"
`)

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() error = %v", err)
	}

	if cfg.Cache.Backend != backendFile {
		t.Errorf("Cache.Backend = %q, want %q when unset", cfg.Cache.Backend, backendFile)
	}
}

func TestLoadConfigFile_Malformed(t *testing.T) {
	path := writeConfig(t, `[cache`)

	_, err := loadConfigFile(path)
	if err == nil {
		t.Fatal("loadConfigFile() should fail for malformed TOML")
	}
}
