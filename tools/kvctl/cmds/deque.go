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
	"github.com/tidwall/gjson"

	"github.com/statekv/statekv/store"
	"github.com/statekv/statekv/tools/kvctl/common"
)

// Multi-language support
var (
	dequeCmdShorts = map[string]string{
		"english": "Sub-Command for operating on a deque in a db file.",
		"chinese": "操作 db 文件中队列的子命令",
	}
	dequeCmdLongs = map[string]string{
		"english": "Sub-Command for pushing, popping, peeking and listing the values of a deque in a db file. Values are JSON documents.",
		"chinese": "对 db 文件中的队列进行推入、弹出、查看和列出操作的子命令。值为 JSON 文档。",
	}
	pushCmdShorts = map[string]string{
		"english": "Push JSON values at the back (or front) of the deque.",
		"chinese": "将 JSON 值推入队列尾部（或头部）。",
	}
	popCmdShorts = map[string]string{
		"english": "Pop the value at the front (or back) of the deque.",
		"chinese": "弹出队列头部（或尾部）的值。",
	}
	peekCmdShorts = map[string]string{
		"english": "Print the value at the front (or back) of the deque without removing it.",
		"chinese": "查看队列头部（或尾部）的值而不移除它。",
	}
	listCmdShorts = map[string]string{
		"english": "List all values of the deque from front to back.",
		"chinese": "从头到尾列出队列中的所有值。",
	}
	dequeFlagFrontUse = map[string]string{
		"english": "Operate on the front of the deque instead of the default end.",
		"chinese": "操作队列的头部而不是默认端。",
	}
	dequeFlagBackUse = map[string]string{
		"english": "Operate on the back of the deque instead of the default end.",
		"chinese": "操作队列的尾部而不是默认端。",
	}
)

var (
	// Deque used to Sub command.
	Deque = &cobra.Command{
		Use:   "deque",
		Short: common.TranslateInLang(dequeCmdShorts),
		Long:  common.TranslateInLang(dequeCmdLongs),
	}

	_push = &cobra.Command{
		Use:   "push [value...]",
		Short: common.TranslateInLang(pushCmdShorts),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dequePush(args)
		},
	}

	_pop = &cobra.Command{
		Use:   "pop",
		Short: common.TranslateInLang(popCmdShorts),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dequePop()
		},
	}

	_peek = &cobra.Command{
		Use:   "peek",
		Short: common.TranslateInLang(peekCmdShorts),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dequePeek()
		},
	}

	_list = &cobra.Command{
		Use:   "list",
		Short: common.TranslateInLang(listCmdShorts),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dequeList()
		},
	}
)

var (
	_dequeFile       = ""
	_dequeType       = ""
	_dequeName       = ""
	_dequeConfigPath = ""
	_dequeCompressor = ""
	_dequeFront      = false
	_dequeBack       = false
)

func init() {
	Deque.PersistentFlags().StringVarP(&_dequeFile, "db-file", "f", "", common.TranslateInLang(_flagDbFileUse))
	Deque.PersistentFlags().StringVarP(&_dequeType, "db-type", "t", "", common.TranslateInLang(_flagDbTypeUse))
	Deque.PersistentFlags().StringVarP(&_dequeName, "name", "n", "", common.TranslateInLang(_flagDequeNameUse))
	Deque.PersistentFlags().StringVarP(&_dequeConfigPath, "config-path", "c", "", common.TranslateInLang(_flagConfigPathUse))
	Deque.PersistentFlags().StringVar(&_dequeCompressor, "compressor", "", common.TranslateInLang(_flagCompressorUse))
	for _, sub := range []*cobra.Command{_push, _pop, _peek, _list} {
		Deque.AddCommand(sub)
	}
	for _, sub := range []*cobra.Command{_push, _pop, _peek} {
		sub.Flags().BoolVar(&_dequeFront, "front", false, common.TranslateInLang(dequeFlagFrontUse))
		sub.Flags().BoolVar(&_dequeBack, "back", false, common.TranslateInLang(dequeFlagBackUse))
	}
}

// withDeque opens the named deque and hands it to fn, stopping the store when
// fn returns. Push is the only operation allowed to create a fresh db file.
func withDeque(create bool, fn func(*store.Deque[[]byte]) error) error {
	if _dequeName == "" {
		return fmt.Errorf("--name is empty")
	}
	if _dequeFront && _dequeBack {
		return fmt.Errorf("--front and --back cannot both be set")
	}
	cfg, err := loadConfig(_dequeConfigPath, _dequeFile, _dequeType)
	if err != nil {
		return err
	}
	compressor := _dequeCompressor
	if compressor == "" {
		compressor = cfg.DB.Compressor
	}
	ctx := context.Background()
	kv, err := openKVStore(ctx, cfg.DB, create)
	if err != nil {
		return err
	}
	defer func() {
		_ = kv.Stop(ctx)
	}()
	d, err := openDeque(kv, _dequeName, compressor)
	if err != nil {
		return err
	}
	return fn(d)
}

func dequePush(values []string) error {
	for _, value := range values {
		if !gjson.Valid(value) {
			return fmt.Errorf("invalid JSON value: %s", value)
		}
	}
	return withDeque(true, func(d *store.Deque[[]byte]) error {
		for _, value := range values {
			var err error
			if _dequeFront {
				err = d.PushFront([]byte(value))
			} else {
				err = d.PushBack([]byte(value))
			}
			if err != nil {
				return fmt.Errorf("failed to push to deque %s: %v", _dequeName, err)
			}
		}
		fmt.Printf("Pushed %d value(s) to deque %s.\n", len(values), _dequeName)
		return nil
	})
}

func dequePop() error {
	return withDeque(false, func(d *store.Deque[[]byte]) error {
		var (
			value []byte
			ok    bool
			err   error
		)
		if _dequeBack {
			value, ok, err = d.PopBack()
		} else {
			value, ok, err = d.PopFront()
		}
		if err != nil {
			return fmt.Errorf("failed to pop from deque %s: %v", _dequeName, err)
		}
		if !ok {
			fmt.Printf("Deque %s is empty.\n", _dequeName)
			return nil
		}
		fmt.Println(string(value))
		return nil
	})
}

func dequePeek() error {
	return withDeque(false, func(d *store.Deque[[]byte]) error {
		var (
			value []byte
			ok    bool
			err   error
		)
		if _dequeBack {
			value, ok, err = d.Back()
		} else {
			value, ok, err = d.Front()
		}
		if err != nil {
			return fmt.Errorf("failed to peek deque %s: %v", _dequeName, err)
		}
		if !ok {
			fmt.Printf("Deque %s is empty.\n", _dequeName)
			return nil
		}
		fmt.Println(string(value))
		return nil
	})
}

func dequeList() error {
	return withDeque(false, func(d *store.Deque[[]byte]) error {
		it, err := d.Iter()
		if err != nil {
			return fmt.Errorf("failed to iterate deque %s: %v", _dequeName, err)
		}
		tb := table.New("Index", "Value")
		var index uint32
		for {
			value, ok, err := it.Next()
			if err != nil {
				return fmt.Errorf("failed to read deque %s at offset %d: %v", _dequeName, index, err)
			}
			if !ok {
				break
			}
			tb.AddRow(index, string(value))
			index++
		}
		tb.Print()
		return nil
	})
}
