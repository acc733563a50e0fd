package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Defaults()
	if !reflect.DeepEqual(*cfg, want) {
		t.Errorf("Load() = %+v, want defaults %+v", *cfg, want)
	}
	if ttl, _ := cfg.TTL(); ttl != 7*24*time.Hour {
		t.Errorf("TTL() = %v", ttl)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `collapsed = true
format = "json"
outputs = ["svg", "dot"]
ignore = ["*.log"]

[server]
addr = ":9000"
redis_addr = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Collapsed || cfg.Format != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Outputs, []string{"svg", "dot"}) {
		t.Errorf("Outputs = %v", cfg.Outputs)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.RedisAddr != "localhost:6379" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.MongoDatabase != "treeview" {
		t.Errorf("unset keys should keep defaults, MongoDatabase = %q", cfg.Server.MongoDatabase)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TREEVIEW_COLLAPSED", "true")
	t.Setenv("TREEVIEW_SERVER_ADDR", ":7000")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Collapsed {
		t.Error("TREEVIEW_COLLAPSED should override the default")
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q, want :7000", cfg.Server.Addr)
	}
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	t.Setenv("TREEVIEW_COLLAPSED", "true")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collapsed {
		t.Error("LoadFile should not apply environment overrides")
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"syntax": "collapsed = = true",
		"format": `format = "xml"`,
		"output": `outputs = ["png"]`,
		"ttl":    `cache_ttl = "forever"`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Defaults()
	if err := cfg.Set("collapsed", "true"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set("outputs", "html, svg"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set("server.mongo_uri", "mongodb://localhost:27017"); err != nil {
		t.Fatal(err)
	}
	if err := Save(path, &cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(*got, cfg) {
		t.Errorf("round trip = %+v, want %+v", *got, cfg)
	}
}

func TestSetGet(t *testing.T) {
	cfg := Defaults()

	tests := []struct {
		key, value, want string
		wantErr          bool
	}{
		{"collapsed", "yes", "", true},
		{"collapsed", "1", "true", false},
		{"format", "ASCII", "ascii", false},
		{"format", "yaml", "", true},
		{"outputs", "svg,png", "", true},
		{"outputs", "dot,json", "dot,json", false},
		{"ignore", "*.log, build/", "*.log,build/", false},
		{"cache_ttl", "24h", "24h", false},
		{"cache_ttl", "soon", "", true},
		{"server.addr", ":1234", ":1234", false},
		{"nope", "x", "", true},
	}
	for _, tt := range tests {
		err := cfg.Set(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		got, err := cfg.Get(tt.key)
		if err != nil || got != tt.want {
			t.Errorf("Get(%q) = %q, %v; want %q", tt.key, got, err, tt.want)
		}
	}

	if _, err := cfg.Get("nope"); err == nil {
		t.Error("Get of unknown key should fail")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) != 10 {
		t.Errorf("Keys() = %d entries, want 10", len(keys))
	}
	if strings.Join(keys[:2], ",") != "cache_dir,cache_ttl" {
		t.Errorf("Keys() not sorted: %v", keys)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join("/tmp/xdg", "treeview", "config.toml") {
		t.Errorf("DefaultPath() = %q", path)
	}
}
