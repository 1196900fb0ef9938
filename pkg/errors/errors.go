package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidInput  = errors.New("invalid input path")
	ErrAllowList     = errors.New("allow-list unreadable")
	ErrSinkOpen      = errors.New("cannot open output")
	ErrSinkWrite     = errors.New("output write failed")
	ErrSinkClosed    = errors.New("output already closed")
	ErrConfigInvalid = errors.New("invalid configuration")
	ErrDecode        = errors.New("record decode failed")
	ErrSchema        = errors.New("record schema mismatch")
	ErrSourceRead    = errors.New("source read failed")
)

// NewDateError reports a boundary date that is not YYYY-MM-DD.
// NewDateError 报告不符合 YYYY-MM-DD 格式的边界日期。
func NewDateError(value string) error {
	return fmt.Errorf("%w: %q (use YYYY-MM-DD)", ErrInvalidDate, value)
}

func NewInputError(path string, reason error) error {
	if reason == nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, path)
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalidInput, path, reason)
}

func NewAllowListError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrAllowList, path, reason)
}

func NewSinkOpenError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrSinkOpen, path, reason)
}

func NewSinkWriteError(op string, reason error) error {
	return fmt.Errorf("%w: op=%s: %v", ErrSinkWrite, op, reason)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

// NewDecodeError wraps a per-record read failure with its position in the source file.
// NewDecodeError 使用源文件中的位置包装单条记录读取失败。
func NewDecodeError(source string, line int64, reason error) error {
	return fmt.Errorf("%w: %s:%d: %v", ErrDecode, source, line, reason)
}

// NewReadError reports a source file whose reading stopped before the end.
// NewReadError 报告读取中途失败的源文件。
func NewReadError(source string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrSourceRead, source, reason)
}

func NewSchemaError(reason string) error {
	return fmt.Errorf("%w: %s", ErrSchema, reason)
}
