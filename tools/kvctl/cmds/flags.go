// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

// Multi-language support for the flags shared by several sub commands
var (
	_flagDbFileUse = map[string]string{
		"english": "The db file to operate on.",
		"chinese": "要操作的 db 文件。",
	}
	_flagDbTypeUse = map[string]string{
		"english": "The db engine type: boltdb, pebbledb, sqlite3, redisdb or memdb. Taken from the config when empty.",
		"chinese": "db 引擎类型：boltdb、pebbledb、sqlite3、redisdb 或 memdb。为空时取自配置。",
	}
	_flagConfigPathUse = map[string]string{
		"english": "The path of the config file.",
		"chinese": "配置文件的路径。",
	}
	_flagDequeNameUse = map[string]string{
		"english": "The name of the deque.",
		"chinese": "队列的名称。",
	}
	_flagCompressorUse = map[string]string{
		"english": "The compressor the values were stored with: Gzip or Snappy. Taken from the config when empty.",
		"chinese": "存储值时使用的压缩器：Gzip 或 Snappy。为空时取自配置。",
	}
)
