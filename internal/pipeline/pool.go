package pipeline

import (
	"context"
	"sync"

	"github.com/livp123/evtxsift/internal/decode"
	"golang.org/x/sync/errgroup"
)

// HandlerFunc processes one record on a worker. A non-nil error is fatal to
// the whole pool.
type HandlerFunc func(rec decode.Record) error

// Pool is a fixed set of workers draining one shared job queue. It is built
// once per run and handed to every file consumer.
// Pool 是共享同一任务队列的固定数量工作协程，每次运行只创建一次。
type Pool struct {
	size    int
	jobs    chan decode.Record
	handle  HandlerFunc
	group   *errgroup.Group
	ctx     context.Context
	closeMu sync.Once
}

// NewPool starts size workers. The returned pool's context is cancelled as
// soon as a handler fails or parent is done.
func NewPool(parent context.Context, size, queue int, handle HandlerFunc) *Pool {
	if size <= 0 {
		size = 1
	}
	if queue < 0 {
		queue = 0
	}

	g, ctx := errgroup.WithContext(parent)
	p := &Pool{
		size:   size,
		jobs:   make(chan decode.Record, queue),
		handle: handle,
		group:  g,
		ctx:    ctx,
	}
	for i := 0; i < size; i++ {
		g.Go(p.worker)
	}
	return p
}

func (p *Pool) worker() error {
	for {
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		case rec, ok := <-p.jobs:
			if !ok {
				return nil
			}
			if err := p.handle(rec); err != nil {
				return err
			}
		}
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Context is done once the pool has failed or its parent is cancelled.
func (p *Pool) Context() context.Context { return p.ctx }

// Submit queues rec, blocking while the queue is full. It returns the pool's
// context error if the pool stopped first.
func (p *Pool) Submit(rec decode.Record) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	select {
	case p.jobs <- rec:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Wait closes the queue, lets workers drain it and returns the first handler
// error. No Submit may follow Wait.
func (p *Pool) Wait() error {
	p.closeMu.Do(func() { close(p.jobs) })
	return p.group.Wait()
}
