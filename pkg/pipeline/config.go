package pipeline

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
)

// Config is the TOML configuration file.
//
//	passes = 3
//	cut_size = 4
//	cut_limit = 12
//	allow_zero_gain = false
//	use_dont_cares = true
//	strategy = "minimize_weight"
//	oracle = "chain"
//	verify = true
//
//	[cache]
//	dir = "~/.cache/cutrewrite"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
type Config struct {
	Passes        int         `toml:"passes"`
	CutSize       int         `toml:"cut_size"`
	CutLimit      int         `toml:"cut_limit"`
	AllowZeroGain bool        `toml:"allow_zero_gain"`
	UseDontCares  bool        `toml:"use_dont_cares"`
	Strategy      string      `toml:"strategy"`
	Oracle        string      `toml:"oracle"`
	Verify        bool        `toml:"verify"`
	Cache         CacheConfig `toml:"cache"`
}

// CacheConfig selects and tunes the result cache. RedisAddr takes
// precedence over Dir.
type CacheConfig struct {
	Disabled  bool     `toml:"disabled"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a string such as "36h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// LoadConfig reads a TOML configuration file. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, cerrors.New(cerrors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Options converts the configuration into job options. Cache settings are
// not part of the options.
func (c Config) Options() Options {
	return Options{
		Passes:        c.Passes,
		CutSize:       c.CutSize,
		CutLimit:      c.CutLimit,
		AllowZeroGain: c.AllowZeroGain,
		UseDontCares:  c.UseDontCares,
		Strategy:      c.Strategy,
		Oracle:        c.Oracle,
		Verify:        c.Verify,
		TTL:           time.Duration(c.Cache.TTL),
	}
}
