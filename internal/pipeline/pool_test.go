package pipeline

import (
	"context"
	goerrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/livp123/evtxsift/internal/decode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPool_ProcessesEverything tests that every submitted record is handled once
// TestPool_ProcessesEverything 测试每条提交的记录只被处理一次
func TestPool_ProcessesEverything(t *testing.T) {
	var mu sync.Mutex
	seen := map[int64]int{}
	p := NewPool(context.Background(), 4, 2, func(rec decode.Record) error {
		mu.Lock()
		seen[rec.Line]++
		mu.Unlock()
		return nil
	})
	assert.Equal(t, 4, p.Size())

	for i := int64(0); i < 1000; i++ {
		require.NoError(t, p.Submit(decode.Record{Line: i}))
	}
	require.NoError(t, p.Wait())

	assert.Len(t, seen, 1000)
	for line, n := range seen {
		assert.Equal(t, 1, n, "line %d", line)
	}
}

// TestPool_BoundedConcurrency tests that no more than size handlers run at once
// TestPool_BoundedConcurrency 测试同时运行的处理函数不超过工作池大小
func TestPool_BoundedConcurrency(t *testing.T) {
	var active, peak atomic.Int64
	p := NewPool(context.Background(), 3, 0, func(decode.Record) error {
		n := active.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		active.Add(-1)
		return nil
	})

	for i := 0; i < 60; i++ {
		require.NoError(t, p.Submit(decode.Record{}))
	}
	require.NoError(t, p.Wait())
	assert.LessOrEqual(t, peak.Load(), int64(3))
	assert.GreaterOrEqual(t, peak.Load(), int64(1))
}

func TestPool_HandlerErrorStopsPool(t *testing.T) {
	boom := goerrors.New("boom")
	p := NewPool(context.Background(), 2, 0, func(rec decode.Record) error {
		if rec.Line == 5 {
			return boom
		}
		return nil
	})

	var submitErr error
	for i := int64(0); i < 10000; i++ {
		if submitErr = p.Submit(decode.Record{Line: i}); submitErr != nil {
			break
		}
	}
	assert.ErrorIs(t, submitErr, context.Canceled)
	assert.ErrorIs(t, p.Wait(), boom)
	assert.Error(t, p.Context().Err())
}

func TestPool_ZeroSizeFallsBackToOne(t *testing.T) {
	p := NewPool(context.Background(), 0, -1, func(decode.Record) error { return nil })
	assert.Equal(t, 1, p.Size())
	require.NoError(t, p.Submit(decode.Record{}))
	require.NoError(t, p.Wait())
	// A second Wait must not panic on the closed queue.
	require.NoError(t, p.Wait())
}
