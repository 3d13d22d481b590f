// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/statekv/statekv/tools/kvctl/common"
)

// Multi-language support
var (
	infoCmdShorts = map[string]string{
		"english": "Sub-Command for showing the state of deques in a db file.",
		"chinese": "查看 db 文件中队列状态的子命令",
	}
	infoCmdLongs = map[string]string{
		"english": "Sub-Command for showing the head index, tail index and length of the named deques in a db file.",
		"chinese": "查看 db 文件中指定队列的头索引、尾索引和长度的子命令",
	}
	infoCmdUse = map[string]string{
		"english": "info [deque...]",
		"chinese": "info [队列...]",
	}
)

var (
	// Info used to Sub command.
	Info = &cobra.Command{
		Use:   common.TranslateInLang(infoCmdUse),
		Short: common.TranslateInLang(infoCmdShorts),
		Long:  common.TranslateInLang(infoCmdLongs),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dequeInfo(args)
		},
	}
)

var (
	_infoFile       = ""
	_infoType       = ""
	_infoConfigPath = ""
)

func init() {
	Info.PersistentFlags().StringVarP(&_infoFile, "db-file", "f", "", common.TranslateInLang(_flagDbFileUse))
	Info.PersistentFlags().StringVarP(&_infoType, "db-type", "t", "", common.TranslateInLang(_flagDbTypeUse))
	Info.PersistentFlags().StringVarP(&_infoConfigPath, "config-path", "c", "", common.TranslateInLang(_flagConfigPathUse))
}

func dequeInfo(names []string) error {
	cfg, err := loadConfig(_infoConfigPath, _infoFile, _infoType)
	if err != nil {
		return err
	}
	ctx := context.Background()
	kv, err := openKVStore(ctx, cfg.DB, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = kv.Stop(ctx)
	}()

	fmt.Printf("Engine: %s %s\n", cfg.DB.DBType, cfg.DB.DbPath)
	tb := table.New("Deque", "Head", "Tail", "Length")
	for _, name := range names {
		d, err := openDeque(kv, name, "")
		if err != nil {
			return err
		}
		stat, err := d.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat deque %s: %v", name, err)
		}
		tb.AddRow(name, stat.Head, stat.Tail, stat.Length)
	}
	tb.Print()
	return nil
}
