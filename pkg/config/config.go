// Package config loads the seqalign configuration file.
//
// The file lives at $XDG_CONFIG_HOME/seqalign/config.toml (falling back to
// ~/.config/seqalign/config.toml) and has three tables:
//
//	[scoring]
//	match = 1
//	mismatch = 0
//	gap = -1
//	terminal_gap = 0
//	mode = "semi-global"
//
//	[cache]
//	backend = "file"      # file, redis or none
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	store = "memory"      # memory, file or mongo
//	mongo_uri = "mongodb://localhost:27017"
//
// Every key is optional. A missing file yields [Default].
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/seqalign/pkg/align"
	errs "github.com/matzehuels/seqalign/pkg/errors"
)

const appName = "seqalign"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Environment variables that override the file.
const (
	EnvRedisAddr = "SEQALIGN_REDIS_ADDR"
	EnvMongoURI  = "SEQALIGN_MONGO_URI"
)

// Config is the whole configuration file.
type Config struct {
	Scoring align.Scoring `toml:"scoring"`
	Cache   Cache         `toml:"cache"`
	Server  Server        `toml:"server"`
}

// Cache selects the result cache.
type Cache struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"` // File cache directory; empty uses the XDG cache dir
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// Server configures `seqalign serve`.
type Server struct {
	Addr          string `toml:"addr"`
	Store         string `toml:"store"`
	StoreDir      string `toml:"store_dir"` // File store directory; empty uses the default
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scoring: align.DefaultScoring(),
		Cache: Cache{
			Backend:   CacheFile,
			RedisAddr: "localhost:6379",
		},
		Server: Server{
			Addr:          ":8080",
			Store:         StoreMemory,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "seqalign",
		},
	}
}

// Path returns the default configuration file path.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error. Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.applyEnv()
		return cfg, nil
	}
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the file at [Path].
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Server.MongoURI = v
	}
}

// Validate checks the backend names and the scoring mode.
func (c Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "scoring")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	switch c.Server.Store {
	case StoreMemory, StoreFile, StoreMongo:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown store %q (want memory, file or mongo)", c.Server.Store)
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "server addr cannot be empty")
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
