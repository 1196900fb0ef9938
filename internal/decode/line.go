package decode

import (
	"context"
	"strings"
	"sync"

	"github.com/livp123/evtxsift/pkg/errors"
	"github.com/nxadm/tail"
	"gopkg.in/tomb.v1"
)

// LineDecoder reads exported record files holding one serialized <Event>
// per line, as produced by dumping an evtx file in single-line XML mode.
// LineDecoder 读取每行一条 <Event> 的导出记录文件。
type LineDecoder struct {
	// Buffer is the per-stream channel capacity.
	Buffer int
}

// NewLineDecoder creates a LineDecoder.
func NewLineDecoder(buffer int) *LineDecoder {
	if buffer < 0 {
		buffer = 0
	}
	return &LineDecoder{Buffer: buffer}
}

// Open starts reading path from the beginning without following it.
func (d *LineDecoder) Open(ctx context.Context, path string) (Stream, error) {
	config := tail.Config{
		Location:  &tail.SeekInfo{Offset: 0, Whence: 0},
		Follow:    false,
		ReOpen:    false,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	}

	t, err := tail.TailFile(path, config)
	if err != nil {
		return nil, err
	}

	s := &lineStream{
		tail:   t,
		source: path,
		out:    make(chan Result, d.Buffer),
		done:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run(ctx)
	return s, nil
}

type lineStream struct {
	tail   *tail.Tail
	source string
	out    chan Result
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
	err    error
}

func (s *lineStream) Records() <-chan Result { return s.out }

func (s *lineStream) Err() error { return s.err }

func (s *lineStream) run(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.out)

	var num int64
	for line := range s.tail.Lines {
		num++
		var res Result
		if line.Err != nil {
			res.Err = errors.NewDecodeError(s.source, num, line.Err)
		} else {
			text := strings.TrimSuffix(line.Text, "\r")
			if strings.TrimSpace(text) == "" {
				continue
			}
			res.Record = Record{Payload: text, Source: s.source, Line: num}
		}

		select {
		case s.out <- res:
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}

	// tail closes Lines on a read error without sending it, the reason is
	// only kept in its tomb.
	// tail 在读取出错时直接关闭 Lines，错误原因只保存在 tomb 中。
	if err := s.tail.Wait(); err != nil && err != tomb.ErrDying {
		s.err = errors.NewReadError(s.source, err)
	}
}

// Close stops the underlying reader and waits for the stream goroutine.
func (s *lineStream) Close() error {
	s.once.Do(func() { close(s.done) })
	err := s.tail.Stop()
	s.wg.Wait()
	return err
}
