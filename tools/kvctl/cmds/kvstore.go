// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"

	"github.com/statekv/statekv/config"
	"github.com/statekv/statekv/db"
	"github.com/statekv/statekv/pkg/util/fileutil"
	"github.com/statekv/statekv/store"
)

// loadConfig builds the effective config from the defaults, the optional
// config file and the command line flags
func loadConfig(configPath, dbFile, dbType string) (config.Config, error) {
	cfg, err := config.New([]string{configPath}, config.DoNotValidate)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to new config: %v", err)
	}
	if dbFile != "" {
		cfg.DB.DbPath = dbFile
	}
	if dbType != "" {
		cfg.DB.DBType = dbType
	}
	// validate after the flags are folded in
	if err := config.ValidateKVStore(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openKVStore creates and starts the KV store of the config. File backed
// engines refuse to open a missing file unless create is set, so a typo in
// the path does not leave an empty db behind.
func openKVStore(ctx context.Context, cfg db.Config, create bool) (db.KVStore, error) {
	switch cfg.DBType {
	case db.DBBolt, db.DBPebble, db.DBSQLite:
		if cfg.DbPath == "" {
			return nil, fmt.Errorf("--db-file is empty")
		}
		if !create && !fileutil.FileExists(cfg.DbPath) {
			return nil, fmt.Errorf("db file %s does not exist", cfg.DbPath)
		}
	}
	kv, err := db.CreateKVStore(cfg, cfg.DbPath)
	if err != nil {
		return nil, err
	}
	if err := kv.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start db: %v", err)
	}
	return kv, nil
}

// openDeque opens a deque on raw bytes, so the tool handles values exactly as
// the owning application stored them
func openDeque(kv db.KVStore, name, compressor string) (*store.Deque[[]byte], error) {
	opts := []store.Option[[]byte]{store.WithCodec[[]byte](store.BytesCodec{})}
	if compressor != "" {
		opts = append(opts, store.WithCompressor[[]byte](compressor))
	}
	return store.NewDeque[[]byte](kv, name, opts...)
}
