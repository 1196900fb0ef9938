package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/livp123/evtxsift/internal/config"
	"github.com/livp123/evtxsift/internal/runtime"
	"github.com/livp123/evtxsift/internal/utils/logger"
	"github.com/spf13/cobra"
)

// runFlags holds the flag values of one root command instance.
// runFlags 保存一个根命令实例的参数值。
type runFlags struct {
	input        string
	output       string
	users        string
	startDate    string
	endDate      string
	threads      int
	extension    string
	maxOpenFiles int
	queueSize    int
	metricsFile  string
	pushGateway  string
	logLevel     string
	logFile      string
}

var RootCmd = NewRootCmd()

// NewRootCmd builds the evtxsift command tree.
// NewRootCmd 构建 evtxsift 命令树。
func NewRootCmd() *cobra.Command {
	flags := &runFlags{}

	root := &cobra.Command{
		Use:   "evtxsift",
		Short: "Filter Windows authentication events into a single output file",
		// Short: 将 Windows 认证事件过滤到单个输出文件
		Long: `evtxsift reads exported Windows event records, keeps the authentication
and privilege events (4624, 4625, 4768, 4769, 4776, 4672) inside an optional
time window and for an optional set of accounts, and writes each match as one
line of the output file.
evtxsift 读取导出的 Windows 事件记录，保留指定时间窗口和账户范围内的认证与
特权事件，并将每条匹配记录作为一行写入输出文件。`,
		Example: `  evtxsift -i ./logs -o matches.txt
  evtxsift -i Security.xml -o out.txt -u owned.txt -s 2024-01-01 -e 2024-01-31 -t 8`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load configuration to get logging settings
			// 加载配置以获取日志设置
			logCfg := config.Default().Logging
			if cfg, _, err := config.Resolve(); err == nil {
				logCfg = cfg.Logging
			}
			applyLoggingFlags(cmd, flags, &logCfg)
			logger.Init(logCfg)

			runtime.RunID = uuid.NewString()

			// Inject logger into context
			// 将 Logger 注入 Context
			ctx := logger.WithContext(cmd.Context(), logger.Get(nil).With("run_id", runtime.RunID))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd, flags)
			if err != nil {
				return err
			}
			_, err = runFilter(cmd.Context(), cfg, cmd.OutOrStdout())
			return err
		},
	}

	pf := root.PersistentFlags()
	// Config file path
	// 配置文件路径
	pf.StringVarP(&runtime.ConfigPath, "config", "c", "", fmt.Sprintf("Path to configuration file (default: %s)", config.DefaultConfigPath))
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFile, "log-file", "", "Write diagnostics to this rotated file instead of stderr")

	f := root.Flags()
	f.StringVarP(&flags.input, "input", "i", "", "Input file or directory of exported records")
	f.StringVarP(&flags.output, "output", "o", "", "Output file for matched records")
	f.StringVarP(&flags.users, "users", "u", "", "Allow-list file of account names, one per line")
	f.StringVarP(&flags.startDate, "start-date", "s", "", "Start date (YYYY-MM-DD, inclusive, midnight UTC)")
	f.StringVarP(&flags.endDate, "end-date", "e", "", "End date (YYYY-MM-DD, inclusive, midnight UTC)")
	f.IntVarP(&flags.threads, "threads", "t", 0, "Worker pool size (default: number of CPUs)")
	f.StringVar(&flags.extension, "extension", "", fmt.Sprintf("Source file extension inside a directory (default: %s)", config.DefaultExtension))
	f.IntVar(&flags.maxOpenFiles, "max-open-files", 0, fmt.Sprintf("Files read concurrently (default: %d)", config.DefaultMaxOpenFiles))
	f.IntVar(&flags.queueSize, "queue-size", 0, fmt.Sprintf("Records buffered for the workers (default: %d)", config.DefaultQueueSize))
	f.StringVar(&flags.metricsFile, "metrics-file", "", "Write run metrics to this textfile-collector file")
	f.StringVar(&flags.pushGateway, "push-gateway", "", "Push run metrics to this Pushgateway URL")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newTestCmd())

	// Linux-focused tooling, keep completion output short
	// 保持补全输出简洁
	root.CompletionOptions.DisableDescriptions = true
	return root
}

// loadRunConfig resolves the config file and lets changed flags override it.
// loadRunConfig 解析配置文件，并由显式设置的参数覆盖。
func loadRunConfig(cmd *cobra.Command, flags *runFlags) (*config.Config, error) {
	cfg, path, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Get(cmd.Context()).Debugf("Loaded configuration from %s", path)
	}

	fs := cmd.Flags()
	if fs.Changed("input") {
		cfg.Input = flags.input
	}
	if fs.Changed("output") {
		cfg.Output = flags.output
	}
	if fs.Changed("users") {
		cfg.UsersFile = flags.users
	}
	if fs.Changed("start-date") {
		cfg.StartDate = flags.startDate
	}
	if fs.Changed("end-date") {
		cfg.EndDate = flags.endDate
	}
	if fs.Changed("threads") {
		cfg.Threads = flags.threads
	}
	if fs.Changed("extension") {
		cfg.Extension = flags.extension
	}
	if fs.Changed("max-open-files") {
		cfg.MaxOpenFiles = flags.maxOpenFiles
	}
	if fs.Changed("queue-size") {
		cfg.QueueSize = flags.queueSize
	}
	if fs.Changed("metrics-file") {
		cfg.Metrics.Textfile = flags.metricsFile
	}
	if fs.Changed("push-gateway") {
		cfg.Metrics.PushGateway = flags.pushGateway
	}
	applyLoggingFlags(cmd, flags, &cfg.Logging)

	if err := cfg.ValidateRun(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyLoggingFlags(cmd *cobra.Command, flags *runFlags, cfg *logger.LoggingConfig) {
	fs := cmd.Flags()
	if fs.Changed("log-level") {
		cfg.Level = flags.logLevel
	}
	if fs.Changed("log-file") {
		cfg.Enabled = flags.logFile != ""
		cfg.Path = flags.logFile
	}
}

func Execute() {
	defer func() { _ = logger.Sync() }()

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
