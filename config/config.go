// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package config

import (
	"os"

	"github.com/pkg/errors"
	uconfig "go.uber.org/config"

	"github.com/statekv/statekv/db"
	"github.com/statekv/statekv/pkg/compress"
	"github.com/statekv/statekv/pkg/log"
)

// IMPORTANT: to define a config, add a field or a new config type to the existing config types. In addition, provide
// the default value in Default var.

var (
	// Default is the default config
	Default = Config{
		System: System{
			CrashlogDir: os.TempDir(),
		},
		DB:      db.DefaultConfig,
		SubLogs: make(map[string]log.GlobalConfig),
	}

	// ErrInvalidCfg indicates the invalid config value
	ErrInvalidCfg = errors.New("invalid config value")

	// Validates is the collection of config validation functions
	Validates = []Validate{
		ValidateKVStore,
	}
)

type (
	// System is the process level config
	System struct {
		// CrashlogDir is the directory to write crash logs and heap dumps to
		CrashlogDir string `yaml:"crashlogDir"`
	}

	// Config is the root config struct, each package's config should be put as its sub struct
	Config struct {
		System  System                      `yaml:"system"`
		DB      db.Config                   `yaml:"db"`
		Log     log.GlobalConfig            `yaml:"log"`
		SubLogs map[string]log.GlobalConfig `yaml:"subLogs"`
	}

	// Validate is the interface of validating the config
	Validate func(Config) error
)

// New creates a config instance. It first loads the default configs. If the config paths are not empty, it will read
// from the files and override the default configs. By default, it will apply all validation functions. To bypass
// validation, use DoNotValidate instead.
func New(configPaths []string, validates ...Validate) (Config, error) {
	opts := make([]uconfig.YAMLOption, 0)
	opts = append(opts, uconfig.Static(Default))
	opts = append(opts, uconfig.Expand(os.LookupEnv))
	for _, path := range configPaths {
		if path != "" {
			opts = append(opts, uconfig.File(path))
		}
	}
	yaml, err := uconfig.NewYAML(opts...)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to init config")
	}

	var cfg Config
	if err := yaml.Get(uconfig.Root).Populate(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal YAML config to struct")
	}

	// By default, the config needs to pass all the validation
	if len(validates) == 0 {
		validates = Validates
	}
	for _, validate := range validates {
		if err := validate(cfg); err != nil {
			return Config{}, errors.Wrap(err, "failed to validate config")
		}
	}
	return cfg, nil
}

// ValidateKVStore validates the db configs
func ValidateKVStore(cfg Config) error {
	switch cfg.DB.DBType {
	case db.DBBolt, db.DBPebble, db.DBSQLite, db.DBMem:
	case db.DBRedis:
		if cfg.DB.RedisAddr == "" {
			return errors.Wrap(ErrInvalidCfg, "redis address cannot be empty")
		}
	default:
		return errors.Wrapf(ErrInvalidCfg, "unsupported db type %s", cfg.DB.DBType)
	}
	switch cfg.DB.Compressor {
	case "", compress.Gzip, compress.Snappy:
	default:
		return errors.Wrapf(ErrInvalidCfg, "unsupported compressor %s", cfg.DB.Compressor)
	}
	if cfg.DB.MaxCacheSize < 0 {
		return errors.Wrap(ErrInvalidCfg, "max cache size cannot be negative")
	}
	return nil
}

// DoNotValidate validates the given config
func DoNotValidate(_ Config) error { return nil }
