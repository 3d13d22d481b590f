// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

const (
	// DBBolt is the boltdb type
	DBBolt = "boltdb"
	// DBPebble is the pebbledb type
	DBPebble = "pebbledb"
	// DBRedis is the redis type
	DBRedis = "redisdb"
	// DBSQLite is the sqlite3 type
	DBSQLite = "sqlite3"
	// DBMem is the in-memory type
	DBMem = "memdb"
)

// Config is the config for database
type Config struct {
	DbPath string `yaml:"dbPath"`
	// DBType is the type of database underneath
	DBType string `yaml:"dbType"`
	// NumRetries is the number of retries
	NumRetries uint8 `yaml:"numRetries"`
	// MaxCacheSize is the max number of entries that will be put into an LRU cache. 0 means disabled
	MaxCacheSize int `yaml:"maxCacheSize"`
	// Compressor is the compression used on stored values, empty means no compression
	Compressor string `yaml:"compressor"`
	// ReadOnly is set db to be opened in read only mode
	ReadOnly bool `yaml:"readOnly"`
	// RedisAddr is the host:port of the redis server, used by redisdb
	RedisAddr string `yaml:"redisAddr"`
	// RedisPassword is the password of the redis server, used by redisdb
	RedisPassword string `yaml:"redisPassword"`
	// RedisDB is the redis database ordinal, used by redisdb
	RedisDB int `yaml:"redisDB"`
}

// DefaultConfig returns the default config
var DefaultConfig = Config{
	DBType:       DBBolt,
	NumRetries:   3,
	MaxCacheSize: 64,
	Compressor:   "",
	ReadOnly:     false,
	RedisAddr:    "127.0.0.1:6379",
}
