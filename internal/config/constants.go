package config

const (
	// DefaultConfigPath is the standard location for the evtxsift configuration file.
	// DefaultConfigPath 是 evtxsift 配置文件的标准位置。
	DefaultConfigPath = "/etc/evtxsift/config.yaml"

	// DefaultExtension selects exported record files inside an input directory.
	// DefaultExtension 用于在输入目录中筛选导出的记录文件。
	DefaultExtension = ".xml"

	DefaultMaxOpenFiles = 4
	DefaultQueueSize    = 1024

	// DefaultLogPath is used when file logging is enabled without a path.
	// DefaultLogPath 在启用文件日志但未指定路径时使用。
	DefaultLogPath = "/var/log/evtxsift/evtxsift.log"

	// maxThreadsPerCPU bounds the worker count before a warning is raised.
	maxThreadsPerCPU = 4
)
