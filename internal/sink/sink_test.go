package sink

import (
	"bytes"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/livp123/evtxsift/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, goerrors.New("disk full") }

type closeRecorder struct{ closed int }

func (c *closeRecorder) Close() error { c.closed++; return nil }

// TestSink_ConcurrentWrites tests that concurrent lines are never interleaved
// TestSink_ConcurrentWrites 测试并发写入的行不会交错
func TestSink_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)

	const writers, perWriter = 16, 500
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			payload := strings.Repeat(fmt.Sprintf("w%02d", w), 200)
			for i := 0; i < perWriter; i++ {
				assert.NoError(t, s.WriteLine(payload))
			}
		}(w)
	}
	wg.Wait()
	require.NoError(t, s.Close())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, writers*perWriter)
	counts := map[string]int{}
	for _, l := range lines {
		require.Len(t, l, 600)
		prefix := l[:3]
		assert.Equal(t, strings.Repeat(prefix, 200), l, "line mixes bytes of different writers")
		counts[prefix]++
	}
	keys := make([]string, 0, len(counts))
	for k, n := range counts {
		keys = append(keys, k)
		assert.Equal(t, perWriter, n)
	}
	sort.Strings(keys)
	assert.Len(t, keys, writers)
	assert.Equal(t, int64(writers*perWriter), s.Lines())
}

func TestSink_OpenTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")
	require.NoError(t, os.WriteFile(path, []byte("stale\nstale\n"), 0600))

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteLine("<Event>fresh</Event>"))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<Event>fresh</Event>\n", string(data))
}

func TestSink_OpenFails(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no", "such", "dir", "out.xml"))
	assert.True(t, goerrors.Is(err, errors.ErrSinkOpen))
}

// TestSink_WriteErrorIsLatched tests that the first I/O failure poisons the sink
// TestSink_WriteErrorIsLatched 测试首次 I/O 失败后输出保持失败状态
func TestSink_WriteErrorIsLatched(t *testing.T) {
	s := New(failingWriter{}, nil)
	big := strings.Repeat("x", defaultBufferSize+1)

	err := s.WriteLine(big)
	require.Error(t, err)
	assert.True(t, goerrors.Is(err, errors.ErrSinkWrite))

	err = s.WriteLine("small")
	assert.True(t, goerrors.Is(err, errors.ErrSinkWrite))
	assert.True(t, goerrors.Is(s.Close(), errors.ErrSinkWrite))
}

func TestSink_FlushErrorOnClose(t *testing.T) {
	s := New(failingWriter{}, nil)
	require.NoError(t, s.WriteLine("buffered"))
	assert.True(t, goerrors.Is(s.Close(), errors.ErrSinkWrite))
}

func TestSink_CloseOnce(t *testing.T) {
	var buf bytes.Buffer
	c := &closeRecorder{}
	s := New(&buf, c)
	require.NoError(t, s.WriteLine("a"))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, c.closed)
	assert.Equal(t, "a\n", buf.String())

	assert.True(t, goerrors.Is(s.WriteLine("b"), errors.ErrSinkClosed))
}
