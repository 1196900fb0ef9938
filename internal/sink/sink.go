// Package sink serializes matched records into one output stream.
// Package sink 将匹配的记录串行写入单一输出流。
package sink

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/livp123/evtxsift/pkg/errors"
)

// Writer is the guarded handle producers write through.
type Writer interface {
	// WriteLine appends text and a line terminator as one unit.
	WriteLine(text string) error
	Close() error
}

// Sink wraps a buffered stream behind a mutex so exactly one worker at a time
// appends a complete line. The first I/O error is latched: every later call
// returns it, since the output can no longer be trusted.
type Sink struct {
	mu     sync.Mutex
	w      *bufio.Writer
	c      io.Closer
	lines  int64
	err    error
	closed bool
}

const defaultBufferSize = 64 * 1024

// Open creates or truncates path for writing.
func Open(path string) (*Sink, error) {
	safePath := filepath.Clean(path)
	f, err := os.OpenFile(safePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) // #nosec G304 // output path is chosen by the operator
	if err != nil {
		return nil, errors.NewSinkOpenError(path, err)
	}
	return New(f, f), nil
}

// New wraps w. c may be nil when the caller owns the underlying stream.
func New(w io.Writer, c io.Closer) *Sink {
	return &Sink{
		w: bufio.NewWriterSize(w, defaultBufferSize),
		c: c,
	}
}

func (s *Sink) WriteLine(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	if s.closed {
		return errors.ErrSinkClosed
	}
	if _, err := s.w.WriteString(text); err != nil {
		s.err = errors.NewSinkWriteError("write", err)
		return s.err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		s.err = errors.NewSinkWriteError("write", err)
		return s.err
	}
	s.lines++
	return nil
}

// Lines returns the number of lines written so far.
func (s *Sink) Lines() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// Close flushes buffered output and closes the underlying stream. It must be
// called once, after every producer is done.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.err
	}
	s.closed = true

	if err := s.w.Flush(); err != nil && s.err == nil {
		s.err = errors.NewSinkWriteError("flush", err)
	}
	if s.c != nil {
		if err := s.c.Close(); err != nil && s.err == nil {
			s.err = errors.NewSinkWriteError("close", err)
		}
	}
	return s.err
}
