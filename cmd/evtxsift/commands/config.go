package commands

import (
	"fmt"

	"github.com/livp123/evtxsift/internal/config"
	"github.com/livp123/evtxsift/internal/utils/logger"
	"github.com/spf13/cobra"
)

// newInitCmd implements the 'init' command
// newInitCmd 实现 'init' 命令
func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration",
		// Short: 初始化配置
		Long: `Write a commented default configuration file to --config (default: ` + config.DefaultConfigPath + `).
An existing file is left untouched unless --force is given.
将带注释的默认配置文件写入 --config 指定的路径，已有文件仅在使用 --force 时覆盖。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetConfigPath()
			written, err := config.InitConfig(path, force)
			if err != nil {
				return err
			}
			if !written {
				logger.Get(cmd.Context()).Infof("Configuration already exists: %s", path)
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration already exists: %s (use --force to overwrite)\n", path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")
	return cmd
}

// newTestCmd implements the 'test' command
// newTestCmd 实现 'test' 命令
func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test configuration",
		// Short: 测试配置
		Long: `Load and validate the configuration file, printing every error and warning.
加载并验证配置文件，输出所有错误和警告。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetConfigPath()
			out := cmd.OutOrStdout()

			// Read without validation so every finding can be listed
			// 先读取再逐项验证，以便列出所有问题
			cfg, err := config.ReadConfig(path)
			if err != nil {
				return err
			}
			result := config.NewConfigValidator().Validate(cfg)
			for _, e := range result.Errors {
				fmt.Fprintf(out, "error: %s: %s (value: %v)\n", e.Field, e.Message, e.Value)
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "warning: %s: %s (value: %v)\n", w.Field, w.Message, w.Value)
			}
			if err := result.Err(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Configuration test passed: %s\n", path)
			return nil
		},
	}
}
