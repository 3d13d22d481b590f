// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package config

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/statekv/statekv/db"
	"github.com/statekv/statekv/testutil"
)

func TestNewDefaultConfig(t *testing.T) {
	require := require.New(t)
	cfg, err := New([]string{})
	require.NoError(err)
	require.Equal(Default.DB, cfg.DB)
	require.Equal(Default.System, cfg.System)
}

func TestNewConfigWithOverride(t *testing.T) {
	require := require.New(t)
	cfgStr := `
db:
    dbType: "pebbledb"
    maxCacheSize: 256
system:
    crashlogDir: "/var/log/statekv"
`
	path, err := testutil.PathOfTempFile("config")
	require.NoError(err)
	defer testutil.CleanupPath(path)
	require.NoError(os.WriteFile(path, []byte(cfgStr), 0666))

	cfg, err := New([]string{path})
	require.NoError(err)
	require.Equal(db.DBPebble, cfg.DB.DBType)
	require.Equal(256, cfg.DB.MaxCacheSize)
	require.Equal("/var/log/statekv", cfg.System.CrashlogDir)
	// fields not overridden keep their defaults
	require.Equal(Default.DB.NumRetries, cfg.DB.NumRetries)
}

func TestNewConfigWithWrongConfigPath(t *testing.T) {
	require := require.New(t)
	_, err := New([]string{"wrong_path"})
	require.Error(err)
}

func TestValidateKVStore(t *testing.T) {
	require := require.New(t)

	cfg := Default
	cfg.DB.DBType = "leveldb"
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateKVStore(cfg)))
	// invalid configs still pass when validation is bypassed
	require.NoError(DoNotValidate(cfg))

	cfg = Default
	cfg.DB.DBType = db.DBRedis
	cfg.DB.RedisAddr = ""
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateKVStore(cfg)))

	cfg = Default
	cfg.DB.Compressor = "lz77"
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateKVStore(cfg)))

	cfg = Default
	cfg.DB.MaxCacheSize = -1
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateKVStore(cfg)))

	require.NoError(ValidateKVStore(Default))
}

func TestNewConfigWithValidation(t *testing.T) {
	require := require.New(t)
	cfgStr := `
db:
    dbType: "rocksdb"
`
	path, err := testutil.PathOfTempFile("config")
	require.NoError(err)
	defer testutil.CleanupPath(path)
	require.NoError(os.WriteFile(path, []byte(cfgStr), 0666))

	_, err = New([]string{path})
	require.Equal(ErrInvalidCfg, errors.Cause(err))

	cfg, err := New([]string{path}, DoNotValidate)
	require.NoError(err)
	require.Equal("rocksdb", cfg.DB.DBType)
}
