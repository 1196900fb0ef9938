package pipeline

import (
	"sync/atomic"

	"github.com/livp123/evtxsift/internal/event"
)

// Stats summarizes a run.
type Stats struct {
	Files            int64
	FilesFailed      int64
	Records          int64
	DecodeErrors     int64
	Matched          int64
	RejectedSchema   int64
	RejectedCategory int64
	RejectedTime     int64
	RejectedActor    int64
}

// Rejected is the number of decoded records that did not reach the sink.
func (s Stats) Rejected() int64 {
	return s.RejectedSchema + s.RejectedCategory + s.RejectedTime + s.RejectedActor
}

type counters struct {
	files        atomic.Int64
	filesFailed  atomic.Int64
	records      atomic.Int64
	decodeErrors atomic.Int64
	verdicts     [5]atomic.Int64
}

func (c *counters) observe(v event.Verdict) {
	if v >= 0 && int(v) < len(c.verdicts) {
		c.verdicts[v].Add(1)
	}
}

func (c *counters) reset() {
	c.files.Store(0)
	c.filesFailed.Store(0)
	c.records.Store(0)
	c.decodeErrors.Store(0)
	for i := range c.verdicts {
		c.verdicts[i].Store(0)
	}
}

func (c *counters) snapshot() Stats {
	return Stats{
		Files:            c.files.Load(),
		FilesFailed:      c.filesFailed.Load(),
		Records:          c.records.Load(),
		DecodeErrors:     c.decodeErrors.Load(),
		Matched:          c.verdicts[event.Match].Load(),
		RejectedSchema:   c.verdicts[event.RejectSchema].Load(),
		RejectedCategory: c.verdicts[event.RejectCategory].Load(),
		RejectedTime:     c.verdicts[event.RejectTime].Load(),
		RejectedActor:    c.verdicts[event.RejectActor].Load(),
	}
}
