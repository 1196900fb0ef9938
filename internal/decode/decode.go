// Package decode turns a source file into a stream of record payloads.
// Package decode 将源文件转换为记录载荷流。
package decode

import "context"

// Record is one decoded event payload and where it came from.
type Record struct {
	Payload string
	Source  string
	Line    int64
}

// Result is either a Record or a per-record decode error.
type Result struct {
	Record Record
	Err    error
}

// Stream yields the records of one open source file. The Records channel is
// closed when the file is exhausted or the stream is closed. Err is valid once
// Records is closed and reports a read failure that ended the file early.
type Stream interface {
	Records() <-chan Result
	Err() error
	Close() error
}

// Decoder opens source files. Implementations wrap the binary log decoder;
// the handle returned by Open is owned by exactly one consumer.
type Decoder interface {
	Open(ctx context.Context, path string) (Stream, error)
}
