// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"

	"github.com/statekv/statekv/db"
	"github.com/statekv/statekv/tools/kvctl/common"
)

// Multi-language support
var (
	migrateCmdShorts = map[string]string{
		"english": "Sub-Command for migrating deques between db files.",
		"chinese": "在 db 文件之间迁移队列的子命令",
	}
	migrateCmdLongs = map[string]string{
		"english": "Sub-Command for copying the named deques from one db file into another, element by element in deque order. The target deques must not exist yet.",
		"chinese": "将指定队列从一个 db 文件逐个元素按序复制到另一个 db 文件的子命令。目标队列必须尚不存在。",
	}
	migrateFlagOldFileUse = map[string]string{
		"english": "The db file you want to migrate from.",
		"chinese": "您要迁移的源 db 文件。",
	}
	migrateFlagNewFileUse = map[string]string{
		"english": "The db file you want to migrate to.",
		"chinese": "您要迁移到的目标 db 文件。",
	}
	migrateFlagOldTypeUse = map[string]string{
		"english": "The engine type of the old db file. Taken from the config when empty.",
		"chinese": "源 db 文件的引擎类型。为空时取自配置。",
	}
	migrateFlagNewTypeUse = map[string]string{
		"english": "The engine type of the new db file. Taken from the config when empty.",
		"chinese": "目标 db 文件的引擎类型。为空时取自配置。",
	}
	migrateFlagDequeUse = map[string]string{
		"english": "The name of a deque to migrate, repeat for several.",
		"chinese": "要迁移的队列名称，可重复指定多个。",
	}
)

var (
	// Migrate used to Sub command.
	Migrate = &cobra.Command{
		Use:   "migrate",
		Short: common.TranslateInLang(migrateCmdShorts),
		Long:  common.TranslateInLang(migrateCmdLongs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrateDeques()
		},
	}
)

var (
	_migrateOldFile    = ""
	_migrateNewFile    = ""
	_migrateOldType    = ""
	_migrateNewType    = ""
	_migrateDeques     = []string{}
	_migrateConfigPath = ""
)

func init() {
	Migrate.PersistentFlags().StringVarP(&_migrateOldFile, "old-file", "o", "", common.TranslateInLang(migrateFlagOldFileUse))
	Migrate.PersistentFlags().StringVarP(&_migrateNewFile, "new-file", "n", "", common.TranslateInLang(migrateFlagNewFileUse))
	Migrate.PersistentFlags().StringVar(&_migrateOldType, "old-type", "", common.TranslateInLang(migrateFlagOldTypeUse))
	Migrate.PersistentFlags().StringVar(&_migrateNewType, "new-type", "", common.TranslateInLang(migrateFlagNewTypeUse))
	Migrate.PersistentFlags().StringArrayVarP(&_migrateDeques, "deque", "d", []string{}, common.TranslateInLang(migrateFlagDequeUse))
	Migrate.PersistentFlags().StringVarP(&_migrateConfigPath, "config-path", "c", "", common.TranslateInLang(_flagConfigPathUse))
}

func migrateDeques() error {
	// Check flags
	if _migrateOldFile == "" {
		return fmt.Errorf("--old-file is empty")
	}
	if _migrateNewFile == "" {
		return fmt.Errorf("--new-file is empty")
	}
	if _migrateOldFile == _migrateNewFile {
		return fmt.Errorf("the values of --old-file --new-file flags cannot be the same")
	}
	if len(_migrateDeques) == 0 {
		return fmt.Errorf("--deque is empty")
	}

	oldCfg, err := loadConfig(_migrateConfigPath, _migrateOldFile, _migrateOldType)
	if err != nil {
		return err
	}
	newCfg, err := loadConfig(_migrateConfigPath, _migrateNewFile, _migrateNewType)
	if err != nil {
		return err
	}

	ctx := context.Background()
	oldKV, err := openKVStore(ctx, oldCfg.DB, false)
	if err != nil {
		return fmt.Errorf("failed to open the old db file: %v", err)
	}
	newKV, err := openKVStore(ctx, newCfg.DB, true)
	if err != nil {
		_ = oldKV.Stop(ctx)
		return fmt.Errorf("failed to open the new db file: %v", err)
	}
	defer func() {
		_ = oldKV.Stop(ctx)
		_ = newKV.Stop(ctx)
	}()

	for _, name := range _migrateDeques {
		if err := migrateDeque(oldKV, newKV, name); err != nil {
			return err
		}
	}
	return nil
}

// migrateDeque copies one deque front to back. Values travel as raw bytes, so
// the copy works no matter which codec or compressor wrote them.
func migrateDeque(oldKV, newKV db.KVStore, name string) error {
	src, err := openDeque(oldKV, name, "")
	if err != nil {
		return err
	}
	dst, err := openDeque(newKV, name, "")
	if err != nil {
		return err
	}
	dstLen, err := dst.Len()
	if err != nil {
		return fmt.Errorf("failed to check deque %s in the new db file: %v", name, err)
	}
	if dstLen > 0 {
		return fmt.Errorf("deque %s already exists in the new db file", name)
	}
	length, err := src.Len()
	if err != nil {
		return fmt.Errorf("failed to read deque %s: %v", name, err)
	}

	fmt.Printf("Migrating deque %s (%d elements)\n", name, length)
	if length == 0 {
		return nil
	}
	// Show the progressbar
	bar := progressbar.New(int(length))
	it, err := src.Iter()
	if err != nil {
		return fmt.Errorf("failed to iterate deque %s: %v", name, err)
	}
	for {
		value, ok, err := it.Next()
		if err != nil {
			return fmt.Errorf("failed to read deque %s: %v", name, err)
		}
		if !ok {
			break
		}
		if err := dst.PushBack(value); err != nil {
			return fmt.Errorf("failed to write deque %s: %v", name, err)
		}
		bar.Add(1)
	}
	fmt.Println()
	return nil
}
