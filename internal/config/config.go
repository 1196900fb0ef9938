// Package config loads, validates and initializes the evtxsift configuration.
// Package config 负责加载、验证和初始化 evtxsift 配置。
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/livp123/evtxsift/internal/event"
	"github.com/livp123/evtxsift/internal/utils/fileutil"
	"github.com/livp123/evtxsift/internal/utils/logger"
	"github.com/livp123/evtxsift/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full run configuration. CLI flags override every field.
// Config 是完整的运行配置，命令行参数可覆盖所有字段。
type Config struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	UsersFile string `yaml:"users_file"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`

	Threads      int    `yaml:"threads" validate:"gte=0"`
	Extension    string `yaml:"extension" validate:"required"`
	MaxOpenFiles int    `yaml:"max_open_files" validate:"gte=0"`
	QueueSize    int    `yaml:"queue_size" validate:"gte=0"`

	Metrics MetricsConfig        `yaml:"metrics"`
	Logging logger.LoggingConfig `yaml:"logging"`
}

// MetricsConfig controls where run metrics are exported.
// MetricsConfig 控制运行指标的导出位置。
type MetricsConfig struct {
	Textfile    string `yaml:"textfile"`
	PushGateway string `yaml:"push_gateway" validate:"omitempty,url"`
}

// Default returns the built-in configuration.
// Default 返回内置默认配置。
func Default() *Config {
	return &Config{
		Extension:    DefaultExtension,
		MaxOpenFiles: DefaultMaxOpenFiles,
		QueueSize:    DefaultQueueSize,
		Logging: logger.LoggingConfig{
			Enabled:    false,
			Level:      "info",
			Path:       DefaultLogPath,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

// LoadConfig reads path, fills defaults first and validates the result.
// LoadConfig 读取配置文件，先填充默认值再验证结果。
func LoadConfig(path string) (*Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filepath.Clean(path), err)
	}
	return cfg, nil
}

// ReadConfig reads path over the defaults without validating it.
// ReadConfig 在默认值之上读取配置文件，不进行验证。
func ReadConfig(path string) (*Config, error) {
	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", safePath, err)
	}
	cfg, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", safePath, err)
	}
	return cfg, nil
}

// Parse decodes raw YAML over the defaults and validates it.
// Parse 在默认值之上解析 YAML 并进行验证。
func Parse(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrConfigInvalid, err)
	}
	return cfg, nil
}

// Validate checks field ranges and the date bounds. It does not require
// input or output, which may still come from flags.
// Validate 检查字段范围和日期边界，不要求 input/output（可能来自命令行参数）。
func (c *Config) Validate() error {
	return NewConfigValidator().Validate(c).Err()
}

// ValidateRun is Validate plus the fields a run cannot start without.
// ValidateRun 在 Validate 基础上检查运行必需字段。
func (c *Config) ValidateRun() error {
	result := NewConfigValidator().Validate(c)
	if c.Input == "" {
		result.AddError("input", "Input file or directory is required", c.Input, nil)
	}
	if c.Output == "" {
		result.AddError("output", "Output file is required", c.Output, nil)
	}
	return result.Err()
}

// Window builds the time window from the configured dates.
// Window 根据配置的日期构建时间窗口。
func (c *Config) Window() (event.TimeWindow, error) {
	return event.NewTimeWindow(c.StartDate, c.EndDate)
}

// DefaultConfigTemplate is written by `evtxsift init`.
// DefaultConfigTemplate 由 `evtxsift init` 写出。
const DefaultConfigTemplate = `# evtxsift configuration / evtxsift 配置文件
# Command-line flags override the values below.
# 命令行参数会覆盖以下配置。

# Input file or directory of exported records
# 输入文件或导出记录所在目录
input: ""

# Output file, truncated at the start of every run
# 输出文件，每次运行开始时清空
output: ""

# Allow-list of account names (TargetUserName), one per line, matched exactly
# 账户白名单文件（TargetUserName），每行一个，精确匹配
users_file: ""

# Inclusive time window, YYYY-MM-DD at midnight UTC. Empty means unbounded.
# Note: end_date also maps to midnight, so later records on that day fall outside.
# 包含边界的时间窗口，YYYY-MM-DD 表示 UTC 零点，留空表示不限制。
# 注意：end_date 同样取零点，因此当天零点之后的事件不在窗口内。
start_date: ""
end_date: ""

# Worker pool size, 0 = number of CPUs
# 工作协程数量，0 表示使用 CPU 核数
threads: 0

# Extension of source files inside an input directory
# 输入目录中源文件的扩展名
extension: ".xml"

# Files read at the same time / 同时读取的文件数
max_open_files: 4

# Records buffered between readers and workers / 读取与处理之间的缓冲记录数
queue_size: 1024

metrics:
  # node_exporter textfile collector output / node_exporter 文本文件采集器输出路径
  textfile: ""
  # Pushgateway URL, e.g. http://localhost:9091 / Pushgateway 地址
  push_gateway: ""

logging:
  # Write diagnostics to a rotated file instead of stderr
  # 将诊断日志写入轮转文件而不是 stderr
  enabled: false
  level: "info"
  path: "/var/log/evtxsift/evtxsift.log"
  max_size: 10
  max_backups: 5
  max_age: 30
  compress: true
`

// InitConfig writes the default template to path. An existing file is kept
// unless force is set.
// InitConfig 将默认模板写入指定路径，除非 force 为真，否则保留已有文件。
func InitConfig(path string, force bool) (bool, error) {
	if fileutil.Exists(path) && !force {
		return false, nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return false, fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := fileutil.AtomicWriteFile(path, []byte(DefaultConfigTemplate), 0600); err != nil {
		return false, fmt.Errorf("write config %s: %w", path, err)
	}
	return true, nil
}
