package config

import (
	goerrors "errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/livp123/evtxsift/internal/event"
	"github.com/livp123/evtxsift/pkg/errors"
)

// ValidationError represents a single validation error.
// ValidationError 表示单个验证错误。
type ValidationError struct {
	Field   string `yaml:"field"`   // Field path (e.g., "logging.level")
	Message string `yaml:"message"` // Error message
	Value   any    `yaml:"value"`   // The invalid value (optional)
	Err     error  `yaml:"-"`       // Underlying typed error, if any
}

// ValidationWarning represents a potential issue that's not critical.
// ValidationWarning 表示非关键的潜在问题。
type ValidationWarning struct {
	Field   string `yaml:"field"`
	Message string `yaml:"message"`
	Value   any    `yaml:"value"`
}

// ValidationResult contains all validation errors and warnings.
// ValidationResult 包含所有验证错误和警告。
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// AddError adds a validation error.
// AddError 添加验证错误。
func (r *ValidationResult) AddError(field, message string, value any, err error) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Err:     err,
	})
	r.Valid = false
}

// AddWarning adds a validation warning.
// AddWarning 添加验证警告。
func (r *ValidationResult) AddWarning(field, message string, value any) {
	r.Warnings = append(r.Warnings, ValidationWarning{
		Field:   field,
		Message: message,
		Value:   value,
	})
}

// Err converts the first error into a typed error, or nil when valid.
// Err 将第一个错误转换为带类型的错误，验证通过时返回 nil。
func (r *ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	first := r.Errors[0]
	if first.Err != nil {
		return fmt.Errorf("%s: %w", first.Field, first.Err)
	}
	return fmt.Errorf("%w: %s", errors.NewConfigError(first.Field, first.Value), first.Message)
}

var (
	structOnce sync.Once
	structV    *validator.Validate
)

// structValidator reports fields by their yaml names.
func structValidator() *validator.Validate {
	structOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("yaml")
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			if tag == "" || tag == "-" {
				return fld.Name
			}
			return tag
		})
		structV = v
	})
	return structV
}

// ConfigValidator provides configuration validation functionality.
// ConfigValidator 提供配置验证功能。
type ConfigValidator struct {
	// Limits above which a warning is raised / 超过后发出警告的上限
	MaxThreads      int
	MaxOpenFilesCap int
}

// NewConfigValidator creates a new ConfigValidator with default limits.
// NewConfigValidator 创建具有默认限制的新 ConfigValidator。
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{
		MaxThreads:      runtime.NumCPU() * maxThreadsPerCPU,
		MaxOpenFilesCap: 64,
	}
}

// Validate runs tag checks, then the date and cross-field checks.
// Validate 先执行标签检查，再执行日期和跨字段检查。
func (v *ConfigValidator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := structValidator().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if goerrors.As(err, &verrs) {
			for _, fe := range verrs {
				result.AddError(fieldPath(fe.Namespace()),
					fmt.Sprintf("failed '%s' check", fe.Tag()), fe.Value(), nil)
			}
		} else {
			result.AddError("", err.Error(), nil, nil)
		}
	}

	v.validateWindow(cfg, result)
	v.validateLogging(cfg, result)
	v.validateSizing(cfg, result)
	return result
}

// validateWindow checks both dates and their order.
// validateWindow 检查两个日期及其先后顺序。
func (v *ConfigValidator) validateWindow(cfg *Config, result *ValidationResult) {
	start, startErr := parseOptionalDate(cfg.StartDate)
	if startErr != nil {
		result.AddError("start_date", "Invalid date", cfg.StartDate, startErr)
	}
	end, endErr := parseOptionalDate(cfg.EndDate)
	if endErr != nil {
		result.AddError("end_date", "Invalid date", cfg.EndDate, endErr)
	}
	if startErr != nil || endErr != nil {
		return
	}
	if cfg.StartDate != "" && cfg.EndDate != "" && start.After(end) {
		result.AddError("start_date", "start_date is after end_date", cfg.StartDate, nil)
	}
	if cfg.EndDate != "" && cfg.StartDate == cfg.EndDate {
		result.AddWarning("end_date",
			"start_date equals end_date; only records stamped exactly at midnight UTC match", cfg.EndDate)
	}
}

func (v *ConfigValidator) validateLogging(cfg *Config, result *ValidationResult) {
	if cfg.Logging.Enabled && cfg.Logging.Path == "" {
		result.AddError("logging.path", "Log path is required when file logging is enabled", nil, nil)
	}
}

func (v *ConfigValidator) validateSizing(cfg *Config, result *ValidationResult) {
	if cfg.Threads > v.MaxThreads {
		result.AddWarning("threads",
			"Worker count far above CPU count adds contention without throughput", cfg.Threads)
	}
	if cfg.MaxOpenFiles > v.MaxOpenFilesCap {
		result.AddWarning("max_open_files",
			"Very high open file count may exhaust file descriptors", cfg.MaxOpenFiles)
	}
}

// fieldPath drops the root struct name, "Config.logging.level" -> "logging.level".
func fieldPath(ns string) string {
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return event.ParseDate(s)
}
