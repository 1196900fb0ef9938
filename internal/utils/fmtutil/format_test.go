package fmtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFormatCount tests FormatCount function
// TestFormatCount 测试 FormatCount 函数
func TestFormatCount(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0"},
		{100, "100"},
		{1000, "1,000"},
		{100000, "100,000"},
		{1234567890, "1,234,567,890"},
		{-4500, "-4,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCount(tt.input), "FormatCount(%d)", tt.input)
	}
}

// TestFormatDuration tests FormatDuration function
// TestFormatDuration 测试 FormatDuration 函数
func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{250 * time.Millisecond, "250ms"},
		{1234567 * time.Microsecond, "1s"},
		{90 * time.Second, "1m 30s"},
		{2 * time.Hour, "2h"},
		{26*time.Hour + 5*time.Second, "1d 2h 5s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.input), "FormatDuration(%v)", tt.input)
	}
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "0.00%", FormatRatio(5, 0))
	assert.Equal(t, "50.00%", FormatRatio(1, 2))
	assert.Equal(t, "33.33%", FormatRatio(2, 6))
	assert.Equal(t, "100.00%", FormatRatio(7, 7))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "0 records/s", FormatRate(10, 0, "records"))
	assert.Equal(t, "500 records/s", FormatRate(1000, 2*time.Second, "records"))
	assert.Equal(t, "1.50K records/s", FormatRate(3000, 2*time.Second, "records"))
	assert.Equal(t, "2.00M records/s", FormatRate(2000000, time.Second, "records"))
}
