// Package pipeline runs the concurrent filter-and-collect pass: file
// consumers feed decoded records into one shared worker pool, workers apply
// the predicate chain and matched records go to the sink.
// Package pipeline 实现并发过滤与收集流程。
package pipeline

import (
	"context"
	"runtime"

	"github.com/livp123/evtxsift/internal/decode"
	"github.com/livp123/evtxsift/internal/event"
	"github.com/livp123/evtxsift/internal/sink"
	"github.com/livp123/evtxsift/internal/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options size the dispatch layer.
type Options struct {
	Workers      int // worker pool size, default runtime.NumCPU()
	MaxOpenFiles int // files consumed at once, default 4
	QueueSize    int // pending records between consumers and workers
}

const (
	DefaultMaxOpenFiles = 4
	DefaultQueueSize    = 1024
)

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.MaxOpenFiles <= 0 {
		o.MaxOpenFiles = DefaultMaxOpenFiles
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	return o
}

// Recorder observes pipeline progress. *metrics.Collector implements it.
type Recorder interface {
	FileDone(failed bool)
	RecordDecoded()
	DecodeError()
	ObserveVerdict(v event.Verdict)
}

type nopRecorder struct{}

func (nopRecorder) FileDone(bool)                {}
func (nopRecorder) RecordDecoded()               {}
func (nopRecorder) DecodeError()                 {}
func (nopRecorder) ObserveVerdict(event.Verdict) {}

// Pipeline wires the decoder, predicate and sink together.
type Pipeline struct {
	decoder   decode.Decoder
	predicate *event.Predicate
	out       sink.Writer
	opts      Options
	recorder  Recorder
	stats     counters
	log       *zap.SugaredLogger
}

// New creates a Pipeline. rec may be nil.
func New(dec decode.Decoder, pred *event.Predicate, out sink.Writer, opts Options, rec Recorder) *Pipeline {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Pipeline{
		decoder:   dec,
		predicate: pred,
		out:       out,
		opts:      opts.withDefaults(),
		recorder:  rec,
	}
}

// Options returns the effective options after defaults.
func (p *Pipeline) Options() Options { return p.opts }

// Run processes files and blocks until every record has been filtered or a
// fatal sink error occurred. It does not close the sink. Stats cover this
// call only; Run must not be called concurrently on one Pipeline.
func (p *Pipeline) Run(ctx context.Context, files []string) (Stats, error) {
	p.log = logger.Get(ctx)
	p.stats.reset()

	pool := NewPool(ctx, p.opts.Workers, p.opts.QueueSize, p.handle)
	p.log.Infof("[RUN] Starting pipeline with %d workers over %d file(s)", pool.Size(), len(files))

	fg, fctx := errgroup.WithContext(pool.Context())
	fg.SetLimit(p.opts.MaxOpenFiles)
	for _, path := range files {
		if fctx.Err() != nil {
			break
		}
		fg.Go(func() error {
			return p.consume(fctx, pool, path)
		})
	}

	ferr := fg.Wait()
	perr := pool.Wait()

	stats := p.stats.snapshot()
	if perr != nil {
		return stats, perr
	}
	if ferr != nil {
		return stats, ferr
	}
	return stats, ctx.Err()
}

// consume drives one source file. Open, read and decode failures are
// diagnostics; only cancellation is returned.
func (p *Pipeline) consume(ctx context.Context, pool *Pool, path string) error {
	log := p.log.With("file", path)
	log.Infof("Processing file: %s", path)

	stream, err := p.decoder.Open(ctx, path)
	if err != nil {
		log.Warnf("[WARN]  Failed to open source file: %v", err)
		p.stats.filesFailed.Add(1)
		p.recorder.FileDone(true)
		return nil
	}
	defer func() {
		if err := stream.Close(); err != nil {
			log.Debugf("closing source: %v", err)
		}
	}()

	var n int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-stream.Records():
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := stream.Err(); err != nil {
					log.Warnf("[WARN]  Source file ended early after %d record(s): %v", n, err)
					p.stats.filesFailed.Add(1)
					p.recorder.FileDone(true)
					return nil
				}
				p.stats.files.Add(1)
				p.recorder.FileDone(false)
				log.Debugf("Finished file: %d record(s)", n)
				return nil
			}
			if res.Err != nil {
				p.stats.decodeErrors.Add(1)
				p.recorder.DecodeError()
				log.Warnf("Error processing record: %v", res.Err)
				continue
			}
			n++
			p.stats.records.Add(1)
			p.recorder.RecordDecoded()
			if err := pool.Submit(res.Record); err != nil {
				return err
			}
		}
	}
}

// handle runs on a pool worker: classify, window, actor, then write.
func (p *Pipeline) handle(rec decode.Record) error {
	v := p.predicate.Evaluate(rec.Payload)
	p.stats.observe(v)
	p.recorder.ObserveVerdict(v)

	switch v {
	case event.Match:
		return p.out.WriteLine(rec.Payload)
	case event.RejectSchema:
		p.log.Debugw("skipping record with unexpected schema", "file", rec.Source, "line", rec.Line)
	}
	return nil
}
