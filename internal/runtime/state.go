package runtime

// ConfigPath stores the path to the configuration file provided via CLI flags.
// ConfigPath 存储通过 CLI 标志提供的配置文件路径。
var ConfigPath string

// RunID identifies the current run in logs and pushed metrics.
// RunID 在日志和推送的指标中标识当前运行。
var RunID string
