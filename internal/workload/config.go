package workload

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat = errors.New("unknown workload file format")
	ErrInvalidConfig = errors.New("invalid workload config")
)

// Config describes a generated workload.
type Config struct {
	Seed     uint64         `toml:"seed" yaml:"seed"`
	Ops      int            `toml:"ops" yaml:"ops"`
	Pool     int            `toml:"pool" yaml:"pool"`
	MaxValue int64          `toml:"max_value" yaml:"max_value"`
	Mix      map[string]int `toml:"mix" yaml:"mix"`
	Trace    string         `toml:"trace" yaml:"trace"`
	Compress bool           `toml:"compress_trace" yaml:"compress_trace"`
}

func DefaultConfig() Config {
	return Config{
		Seed:     1,
		Ops:      10000,
		Pool:     4,
		MaxValue: 1 << 20,
		Mix: map[string]int{
			"push":    30,
			"pop":     8,
			"insert":  12,
			"erase":   10,
			"set":     12,
			"clone":   10,
			"release": 3,
			"reserve": 3,
			"shrink":  3,
			"swap":    6,
			"clear":   3,
		},
	}
}

// Load reads a .toml or .yaml/.yml workload file over DefaultConfig.
func Load(path string) (Config, error) {
	var (
		cfg Config
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = loadToml(path)
	case ".yaml", ".yml":
		cfg, err = loadYaml(path)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return Config{}, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadToml(path string) (Config, error) {
	cfg := DefaultConfig()
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load workload config: %w", err)
	}
	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
	}
	if meta.IsDefined("ops") {
		cfg.Ops = raw.Ops
	}
	if meta.IsDefined("pool") {
		cfg.Pool = raw.Pool
	}
	if meta.IsDefined("max_value") {
		cfg.MaxValue = raw.MaxValue
	}
	if meta.IsDefined("mix") {
		cfg.Mix = raw.Mix
	}
	if meta.IsDefined("trace") {
		cfg.Trace = strings.TrimSpace(raw.Trace)
	}
	if meta.IsDefined("compress_trace") {
		cfg.Compress = raw.Compress
	}
	return cfg, nil
}

func loadYaml(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load workload config (%s): %w", path, err)
	}
	cfg := DefaultConfig()
	// a mix given in the file replaces the default one rather than merging into it
	var given struct {
		Mix map[string]int `yaml:"mix"`
	}
	if err := yaml.Unmarshal(data, &given); err != nil {
		return Config{}, fmt.Errorf("parse workload config (%s): %w", path, err)
	}
	if given.Mix != nil {
		cfg.Mix = nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse workload config (%s): %w", path, err)
	}
	cfg.Trace = strings.TrimSpace(cfg.Trace)
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if cfg.Ops < 0 {
		return fmt.Errorf("%w: ops must be >= 0, got %d", ErrInvalidConfig, cfg.Ops)
	}
	if cfg.Pool < 2 {
		return fmt.Errorf("%w: pool must hold at least 2 vectors, got %d", ErrInvalidConfig, cfg.Pool)
	}
	// values are drawn from [-max_value, max_value]
	if cfg.MaxValue <= 0 || cfg.MaxValue > math.MaxInt64/2 {
		return fmt.Errorf("%w: max_value must be in (0, %d], got %d", ErrInvalidConfig, int64(math.MaxInt64/2), cfg.MaxValue)
	}
	total := 0
	for name, w := range cfg.Mix {
		if _, err := ParseKind(name); err != nil {
			return fmt.Errorf("%w: mix: %w", ErrInvalidConfig, err)
		}
		if w < 0 {
			return fmt.Errorf("%w: mix weight for %s is negative", ErrInvalidConfig, name)
		}
		total += w
	}
	if total == 0 {
		return fmt.Errorf("%w: mix has no positive weight", ErrInvalidConfig)
	}
	return nil
}
