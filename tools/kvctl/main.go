// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Usage:
//   go build -o bin/kvctl ./tools/kvctl
//   ./bin/kvctl info -f statekv.db jobs
//   ./bin/kvctl deque push -f statekv.db -n jobs '{"id":1}'

package main

import (
	"os"

	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"github.com/statekv/statekv/config"
	"github.com/statekv/statekv/pkg/log"
	"github.com/statekv/statekv/pkg/recovery"
	cmd "github.com/statekv/statekv/tools/kvctl/cmds"
	"github.com/statekv/statekv/tools/kvctl/common"
)

// Multi-language support
var (
	rootCmdShorts = map[string]string{
		"english": "kvctl is a command-line interface for inspecting and operating statekv db files",
		"chinese": "kvctl 是检查和操作 statekv db 文件的命令行工具",
	}
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "kvctl",
	Short: common.TranslateInLang(rootCmdShorts),
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		// the sub commands re-read the config themselves, here it only
		// feeds the logger and the crashlog location
		path := ""
		if f := c.Flags().Lookup("config-path"); f != nil {
			path = f.Value.String()
		}
		cfg, err := config.New([]string{path}, config.DoNotValidate)
		if err != nil {
			return err
		}
		if err := log.InitLoggers(cfg.Log, cfg.SubLogs); err != nil {
			return err
		}
		return recovery.SetCrashlogDir(cfg.System.CrashlogDir)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(cmd.Info)
	RootCmd.AddCommand(cmd.Deque)
	RootCmd.AddCommand(cmd.Migrate)
	RootCmd.AddCommand(cmd.ShowConfig)
}

func main() {
	defer recovery.Recover()
	Execute()
}
