package decode

import (
	"context"
	goerrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/livp123/evtxsift/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func drain(t *testing.T, s Stream) []Result {
	t.Helper()
	var out []Result
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r, ok := <-s.Records():
			if !ok {
				return out
			}
			out = append(out, r)
		case <-timeout:
			t.Fatal("stream did not finish")
		}
	}
}

// TestLineDecoder_ReadsAllRecords tests that every non-blank line becomes a record
// TestLineDecoder_ReadsAllRecords 测试每个非空行都成为一条记录
func TestLineDecoder_ReadsAllRecords(t *testing.T) {
	path := writeFile(t, "security.xml", "<Event>1</Event>\n\n<Event>2</Event>\r\n   \n<Event>3</Event>")

	s, err := NewLineDecoder(4).Open(context.Background(), path)
	require.NoError(t, err)
	results := drain(t, s)
	assert.NoError(t, s.Err())
	require.NoError(t, s.Close())

	require.Len(t, results, 3)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, path, r.Record.Source)
	}
	assert.Equal(t, "<Event>1</Event>", results[0].Record.Payload)
	assert.Equal(t, int64(1), results[0].Record.Line)
	assert.Equal(t, "<Event>2</Event>", results[1].Record.Payload)
	assert.Equal(t, int64(3), results[1].Record.Line)
	assert.Equal(t, "<Event>3</Event>", results[2].Record.Payload)
	assert.Equal(t, int64(5), results[2].Record.Line)
}

func TestLineDecoder_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.xml", "")

	s, err := NewLineDecoder(0).Open(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, drain(t, s))
	assert.NoError(t, s.Err())
	assert.NoError(t, s.Close())
}

// TestLineDecoder_ReadError tests that a read failure after open is reported by Err
// TestLineDecoder_ReadError 测试打开后的读取失败通过 Err 报告
func TestLineDecoder_ReadError(t *testing.T) {
	// A directory opens fine but every read fails with EISDIR.
	dir := t.TempDir()

	s, err := NewLineDecoder(0).Open(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, drain(t, s))

	err = s.Err()
	require.Error(t, err)
	assert.True(t, goerrors.Is(err, errors.ErrSourceRead), "got %v", err)
	assert.Contains(t, err.Error(), dir)
	_ = s.Close()
}

func TestLineDecoder_MissingFile(t *testing.T) {
	_, err := NewLineDecoder(0).Open(context.Background(), filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

// TestLineDecoder_CloseEarly tests that closing mid-stream releases the reader
// TestLineDecoder_CloseEarly 测试中途关闭可释放读取器
func TestLineDecoder_CloseEarly(t *testing.T) {
	lines := make([]string, 1000)
	for i := range lines {
		lines[i] = "<Event>x</Event>"
	}
	path := writeFile(t, "big.xml", strings.Join(lines, "\n"))

	s, err := NewLineDecoder(0).Open(context.Background(), path)
	require.NoError(t, err)
	<-s.Records()

	done := make(chan struct{})
	go func() {
		_ = s.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close blocked")
	}
}

func TestLineDecoder_ContextCancel(t *testing.T) {
	path := writeFile(t, "a.xml", "<Event>1</Event>\n<Event>2</Event>\n<Event>3</Event>\n")

	ctx, cancel := context.WithCancel(context.Background())
	s, err := NewLineDecoder(0).Open(ctx, path)
	require.NoError(t, err)
	cancel()

	// The channel must close without anyone reading everything.
	results := drain(t, s)
	assert.LessOrEqual(t, len(results), 3)
	_ = s.Close()
}
