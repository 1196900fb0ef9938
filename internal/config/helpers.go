package config

import (
	"github.com/livp123/evtxsift/internal/runtime"
	"github.com/livp123/evtxsift/internal/utils/fileutil"
)

/**
 * GetConfigPath resolves the configuration file path.
 * It prioritizes the CLI flag (runtime.ConfigPath) over the default.
 * GetConfigPath 解析配置文件路径。
 * 优先使用 CLI 标志 (runtime.ConfigPath)，其次是默认值。
 */
func GetConfigPath() string {
	if runtime.ConfigPath != "" {
		return runtime.ConfigPath
	}
	return DefaultConfigPath
}

/**
 * Resolve loads the configuration a run should use.
 * An explicit --config must exist; the default path is optional and a
 * missing file there yields the built-in defaults.
 * Resolve 加载本次运行使用的配置。
 * 显式指定的 --config 必须存在；默认路径可选，不存在时使用内置默认值。
 */
func Resolve() (*Config, string, error) {
	path := GetConfigPath()
	if runtime.ConfigPath == "" && !fileutil.Exists(path) {
		return Default(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
