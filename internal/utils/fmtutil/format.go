// Package fmtutil provides formatting utilities for human-readable output.
// Package fmtutil 提供用于人类可读输出的格式化工具。
package fmtutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatCount formats a count with thousand separators.
// FormatCount 格式化计数，添加千位分隔符。
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String()
}

// FormatDuration formats a duration to human readable format.
// FormatDuration 将持续时间格式化为可读格式。
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// FormatRatio formats part/whole as a percentage. An empty whole is 0.00%.
// FormatRatio 将 part/whole 格式化为百分比，whole 为 0 时返回 0.00%。
func FormatRatio(part, whole int64) string {
	if whole <= 0 {
		return "0.00%"
	}
	value := float64(part) / float64(whole) * 100
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", value)
}

// FormatRate formats count over d as a per-second rate with K/M suffixes.
// FormatRate 将 count/d 格式化为每秒速率，使用 K/M 后缀。
func FormatRate(count int64, d time.Duration, unit string) string {
	if d <= 0 {
		return "0 " + unit + "/s"
	}
	rate := float64(count) / d.Seconds()
	switch {
	case rate < 1000:
		return fmt.Sprintf("%.0f %s/s", rate, unit)
	case rate < 1000000:
		return fmt.Sprintf("%.2fK %s/s", rate/1000, unit)
	default:
		return fmt.Sprintf("%.2fM %s/s", rate/1000000, unit)
	}
}
