package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dmitrijs2005/cyphergate/internal/cryptox"
	"github.com/dmitrijs2005/cyphergate/internal/gate/repositories/credentials"
	"github.com/dmitrijs2005/cyphergate/internal/gate/shell"
)

const EnvPrefix = "CYPHERGATE"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	DataDir string      `mapstructure:"data_dir"`
	Store   StoreConfig `mapstructure:"store"`
	Hash    HashConfig  `mapstructure:"hash"`
	Auth    AuthConfig  `mapstructure:"auth"`
	Shell   ShellConfig `mapstructure:"shell"`
	Log     LogConfig   `mapstructure:"log"`
}

type StoreConfig struct {
	Backend        string `mapstructure:"backend"`
	RedisURL       string `mapstructure:"redis_url"`
	RedisKeyPrefix string `mapstructure:"redis_key_prefix"`
}

type HashConfig struct {
	Algorithm       string `mapstructure:"algorithm"`
	BcryptCost      int    `mapstructure:"bcrypt_cost"`
	Argon2Time      uint32 `mapstructure:"argon2_time"`
	Argon2MemoryKiB uint32 `mapstructure:"argon2_memory_kib"`
	Argon2Threads   uint8  `mapstructure:"argon2_threads"`
	SHA512Rounds    int    `mapstructure:"sha512_rounds"`
}

type AuthConfig struct {
	MaxAttempts  int           `mapstructure:"max_attempts"`
	FailureDelay time.Duration `mapstructure:"failure_delay"`
}

type ShellConfig struct {
	Program string `mapstructure:"program"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "."
	c.Store = StoreConfig{
		Backend:        credentials.BackendSQLite,
		RedisKeyPrefix: credentials.DefaultRedisKeyPrefix,
	}
	c.Hash = HashConfig{
		Algorithm:       cryptox.AlgBcrypt,
		BcryptCost:      cryptox.DefaultBcryptCost,
		Argon2Time:      cryptox.DefaultArgon2Time,
		Argon2MemoryKiB: cryptox.DefaultArgon2MemoryKiB,
		Argon2Threads:   cryptox.DefaultArgon2Threads,
		SHA512Rounds:    cryptox.DefaultSHA512Rounds,
	}
	c.Auth = AuthConfig{
		MaxAttempts:  3,
		FailureDelay: time.Second,
	}
	c.Shell = ShellConfig{Program: shell.DefaultProgram()}
	c.Log = LogConfig{Level: "error", Format: "text"}
}

// flagKeys maps config keys to the flags RegisterFlags defines.
var flagKeys = map[string]string{
	"data_dir":      "data-dir",
	"store.backend": "store",
	"log.level":     "log-level",
}

// RegisterFlags defines the persistent flags that can override config keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to a config file (json, yaml or toml)")
	fs.StringP("data-dir", "d", ".", "directory holding the credential record")
	fs.String("store", credentials.BackendSQLite, "credential backend: sqlite, file or redis")
	fs.String("log-level", "error", "log level: debug, info, warn or error")
}

// Load layers defaults, the optional file at path, CYPHERGATE_* environment
// variables and explicitly set flags from fs (may be nil), then validates.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	var defaults Config
	defaults.LoadDefaults()
	setDefaults(v, &defaults)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, name := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.redis_url", d.Store.RedisURL)
	v.SetDefault("store.redis_key_prefix", d.Store.RedisKeyPrefix)
	v.SetDefault("hash.algorithm", d.Hash.Algorithm)
	v.SetDefault("hash.bcrypt_cost", d.Hash.BcryptCost)
	v.SetDefault("hash.argon2_time", d.Hash.Argon2Time)
	v.SetDefault("hash.argon2_memory_kib", d.Hash.Argon2MemoryKiB)
	v.SetDefault("hash.argon2_threads", d.Hash.Argon2Threads)
	v.SetDefault("hash.sha512_rounds", d.Hash.SHA512Rounds)
	v.SetDefault("auth.max_attempts", d.Auth.MaxAttempts)
	v.SetDefault("auth.failure_delay", d.Auth.FailureDelay)
	v.SetDefault("shell.program", d.Shell.Program)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

var (
	backends   = []string{credentials.BackendSQLite, credentials.BackendFile, credentials.BackendRedis}
	algorithms = []string{cryptox.AlgBcrypt, cryptox.AlgArgon2id, cryptox.AlgSHA512Crypt}
	logFormats = []string{"text", "json"}
)

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DataDir) == "":
		return invalid("data_dir must be set")
	case !slices.Contains(backends, c.Store.Backend):
		return invalid("store.backend %q must be one of %s", c.Store.Backend, strings.Join(backends, ", "))
	case c.Store.Backend == credentials.BackendRedis && c.Store.RedisURL == "":
		return invalid("store.redis_url must be set for the redis backend")
	case !slices.Contains(algorithms, c.Hash.Algorithm):
		return invalid("hash.algorithm %q must be one of %s", c.Hash.Algorithm, strings.Join(algorithms, ", "))
	case c.Hash.BcryptCost < 4 || c.Hash.BcryptCost > 31:
		return invalid("hash.bcrypt_cost must be between 4 and 31")
	case c.Hash.Argon2Time > cryptox.MaxArgon2Time:
		return invalid("hash.argon2_time must be at most %d", cryptox.MaxArgon2Time)
	case c.Hash.Argon2MemoryKiB > cryptox.MaxArgon2MemoryKiB:
		return invalid("hash.argon2_memory_kib must be at most %d", cryptox.MaxArgon2MemoryKiB)
	case c.Auth.MaxAttempts < 1:
		return invalid("auth.max_attempts must be at least 1")
	case c.Auth.FailureDelay < 0:
		return invalid("auth.failure_delay must not be negative")
	case strings.TrimSpace(c.Shell.Program) == "":
		return invalid("shell.program must be set")
	case !slices.Contains(logFormats, strings.ToLower(c.Log.Format)):
		return invalid("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
