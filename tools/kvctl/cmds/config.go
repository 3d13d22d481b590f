// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/statekv/statekv/config"
	"github.com/statekv/statekv/tools/kvctl/common"
)

// Multi-language support
var (
	configCmdShorts = map[string]string{
		"english": "Sub-Command for printing the effective config.",
		"chinese": "打印生效配置的子命令",
	}
	configCmdLongs = map[string]string{
		"english": "Sub-Command for printing the effective config, the defaults merged with the config file, as YAML.",
		"chinese": "以 YAML 格式打印生效配置（默认值与配置文件合并后）的子命令",
	}
)

var (
	// ShowConfig used to Sub command.
	ShowConfig = &cobra.Command{
		Use:   "config",
		Short: common.TranslateInLang(configCmdShorts),
		Long:  common.TranslateInLang(configCmdLongs),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	}
)

var (
	_configConfigPath = ""
)

func init() {
	ShowConfig.PersistentFlags().StringVarP(&_configConfigPath, "config-path", "c", "", common.TranslateInLang(_flagConfigPathUse))
}

func showConfig() error {
	cfg, err := config.New([]string{_configConfigPath})
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}
	fmt.Println(string(out))
	return nil
}
