// Package config loads and saves treeview settings.
//
// Settings come from, in increasing priority: built-in defaults, the config
// file ($XDG_CONFIG_HOME/treeview/config.toml), and TREEVIEW_* environment
// variables. Nested keys use underscores in variable names, so server.addr
// is TREEVIEW_SERVER_ADDR.
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	opts.Collapsed = cfg.Collapsed
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/matzehuels/treeview/pkg/pipeline"
	"github.com/matzehuels/treeview/pkg/tree"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "TREEVIEW"

// Server holds settings for `treeview serve`.
type Server struct {
	Addr          string `mapstructure:"addr" toml:"addr"`
	RedisAddr     string `mapstructure:"redis_addr" toml:"redis_addr,omitempty"`
	MongoURI      string `mapstructure:"mongo_uri" toml:"mongo_uri,omitempty"`
	MongoDatabase string `mapstructure:"mongo_database" toml:"mongo_database,omitempty"`
}

// Config is the full set of settings.
type Config struct {
	// Collapsed is the default state of directories in new views.
	Collapsed bool     `mapstructure:"collapsed" toml:"collapsed"`
	Format    string   `mapstructure:"format" toml:"format"`
	Outputs   []string `mapstructure:"outputs" toml:"outputs"`
	Ignore    []string `mapstructure:"ignore" toml:"ignore"`
	CacheDir  string   `mapstructure:"cache_dir" toml:"cache_dir,omitempty"`
	CacheTTL  string   `mapstructure:"cache_ttl" toml:"cache_ttl"`
	Server    Server   `mapstructure:"server" toml:"server"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Collapsed: false,
		Format:    "auto",
		Outputs:   []string{pipeline.DefaultOutput},
		Ignore:    []string{},
		CacheTTL:  "168h",
		Server: Server{
			Addr:          ":8080",
			MongoDatabase: "treeview",
		},
	}
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("locate config dir: %w", err)
		}
	}
	return filepath.Join(dir, "treeview", "config.toml"), nil
}

// Load reads settings from path, or from DefaultPath when path is empty,
// and applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadFile reads settings from path without environment overrides, so the
// result can be modified and saved back.
func LoadFile(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, env bool) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	setDefaults(v)
	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Outputs) == 0 {
		cfg.Outputs = Defaults().Outputs
	}
	if cfg.Ignore == nil {
		cfg.Ignore = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("collapsed", d.Collapsed)
	v.SetDefault("format", d.Format)
	v.SetDefault("outputs", d.Outputs)
	v.SetDefault("ignore", d.Ignore)
	v.SetDefault("cache_dir", d.CacheDir)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.redis_addr", d.Server.RedisAddr)
	v.SetDefault("server.mongo_uri", d.Server.MongoURI)
	v.SetDefault("server.mongo_database", d.Server.MongoDatabase)
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if _, err := tree.ParseFormat(c.Format); err != nil {
		return err
	}
	if err := pipeline.ValidateOutputs(c.Outputs); err != nil {
		return err
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// TTL returns the parsed cache lifetime.
func (c *Config) TTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache_ttl %q: %w", c.CacheTTL, err)
	}
	return d, nil
}

// =============================================================================
// Key access for `treeview config show|set`
// =============================================================================

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

var fields = map[string]field{
	"collapsed": {
		get: func(c *Config) string { return strconv.FormatBool(c.Collapsed) },
		set: func(c *Config, s string) error {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("collapsed must be true or false")
			}
			c.Collapsed = b
			return nil
		},
	},
	"format": {
		get: func(c *Config) string { return c.Format },
		set: func(c *Config, s string) error {
			f, err := tree.ParseFormat(s)
			if err != nil {
				return err
			}
			c.Format = f.String()
			return nil
		},
	},
	"outputs": {
		get: func(c *Config) string { return strings.Join(c.Outputs, ",") },
		set: func(c *Config, s string) error {
			outs := pipeline.ParseOutputs(s)
			if err := pipeline.ValidateOutputs(outs); err != nil {
				return err
			}
			c.Outputs = outs
			return nil
		},
	},
	"ignore": {
		get: func(c *Config) string { return strings.Join(c.Ignore, ",") },
		set: func(c *Config, s string) error {
			c.Ignore = splitList(s)
			return nil
		},
	},
	"cache_dir": {
		get: func(c *Config) string { return c.CacheDir },
		set: func(c *Config, s string) error { c.CacheDir = s; return nil },
	},
	"cache_ttl": {
		get: func(c *Config) string { return c.CacheTTL },
		set: func(c *Config, s string) error {
			if _, err := time.ParseDuration(s); err != nil {
				return fmt.Errorf("invalid cache_ttl %q: %w", s, err)
			}
			c.CacheTTL = s
			return nil
		},
	},
	"server.addr": {
		get: func(c *Config) string { return c.Server.Addr },
		set: func(c *Config, s string) error { c.Server.Addr = s; return nil },
	},
	"server.redis_addr": {
		get: func(c *Config) string { return c.Server.RedisAddr },
		set: func(c *Config, s string) error { c.Server.RedisAddr = s; return nil },
	},
	"server.mongo_uri": {
		get: func(c *Config) string { return c.Server.MongoURI },
		set: func(c *Config, s string) error { c.Server.MongoURI = s; return nil },
	},
	"server.mongo_database": {
		get: func(c *Config) string { return c.Server.MongoDatabase },
		set: func(c *Config, s string) error { c.Server.MongoDatabase = s; return nil },
	},
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of key as a string.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return f.get(c), nil
}

// Set parses value and assigns it to key.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return f.set(c, strings.TrimSpace(value))
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
