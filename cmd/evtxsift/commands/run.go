package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/livp123/evtxsift/internal/config"
	"github.com/livp123/evtxsift/internal/decode"
	"github.com/livp123/evtxsift/internal/event"
	"github.com/livp123/evtxsift/internal/metrics"
	"github.com/livp123/evtxsift/internal/pipeline"
	"github.com/livp123/evtxsift/internal/runtime"
	"github.com/livp123/evtxsift/internal/sink"
	"github.com/livp123/evtxsift/internal/source"
	"github.com/livp123/evtxsift/internal/utils/fmtutil"
	"github.com/livp123/evtxsift/internal/utils/logger"
)

// pushTimeout bounds the Pushgateway request after the run.
const pushTimeout = 10 * time.Second

// runFilter performs one filtering run and prints a summary to w. Every
// startup failure is returned before the output file is touched.
// runFilter 执行一次过滤运行并向 w 输出摘要，所有启动错误都在创建输出文件之前返回。
func runFilter(ctx context.Context, cfg *config.Config, w io.Writer) (pipeline.Stats, error) {
	log := logger.Get(ctx)

	window, err := cfg.Window()
	if err != nil {
		return pipeline.Stats{}, err
	}

	var actors event.AllowList
	if cfg.UsersFile != "" {
		log.Infof("Loading owned users from: %s", cfg.UsersFile)
		if actors, err = event.LoadAllowList(cfg.UsersFile); err != nil {
			return pipeline.Stats{}, err
		}
		log.Infof("Loaded %d owned user(s)", actors.Len())
	} else {
		log.Info("No owned users file provided, processing all events.")
	}
	if window.Active() {
		log.Infof("Time window: %s", window)
	}

	files, skipped, err := source.Resolve(cfg.Input, cfg.Extension)
	if err != nil {
		return pipeline.Stats{}, err
	}
	for _, s := range skipped {
		log.Debugf("Ignoring %s: extension is not %s", s, source.NormalizeExt(cfg.Extension))
	}
	if len(files) == 0 {
		log.Warnf("[WARN]  No %s files found in %s", source.NormalizeExt(cfg.Extension), cfg.Input)
	}

	log.Infof("Writing matched events to output file: %s", cfg.Output)
	out, err := sink.Open(cfg.Output)
	if err != nil {
		return pipeline.Stats{}, err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.New()
	p := pipeline.New(
		decode.NewLineDecoder(0),
		event.NewPredicate(window, actors),
		out,
		pipeline.Options{
			Workers:      cfg.Threads,
			MaxOpenFiles: cfg.MaxOpenFiles,
			QueueSize:    cfg.QueueSize,
		},
		collector,
	)
	collector.SetWorkers(p.Options().Workers)

	started := time.Now()
	stats, runErr := p.Run(ctx, files)
	closeErr := out.Close()
	elapsed := time.Since(started)
	collector.SetDuration(elapsed.Seconds())

	log.Infow("Run summary",
		"files", stats.Files,
		"files_failed", stats.FilesFailed,
		"records", stats.Records,
		"decode_errors", stats.DecodeErrors,
		"matched", stats.Matched,
		"rejected_schema", stats.RejectedSchema,
		"rejected_category", stats.RejectedCategory,
		"rejected_time", stats.RejectedTime,
		"rejected_actor", stats.RejectedActor,
		"written", out.Lines(),
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)
	exportMetrics(ctx, cfg, collector)

	if runErr != nil {
		if ctx.Err() != nil {
			log.Warnf("[WARN]  Run interrupted, %s holds partial output", cfg.Output)
		}
		return stats, runErr
	}
	if closeErr != nil {
		return stats, closeErr
	}
	log.Info("Processing complete")
	fmt.Fprintf(w, "Processing complete: matched %s of %s records (%s) from %d file(s) in %s, %s\n",
		fmtutil.FormatCount(stats.Matched),
		fmtutil.FormatCount(stats.Records),
		fmtutil.FormatRatio(stats.Matched, stats.Records),
		stats.Files,
		fmtutil.FormatDuration(elapsed),
		fmtutil.FormatRate(stats.Records, elapsed, "records"),
	)
	return stats, nil
}

// exportMetrics writes and pushes run metrics. Failures are logged, the
// filtered output is already complete at this point.
// exportMetrics 导出运行指标，失败仅记录日志。
func exportMetrics(ctx context.Context, cfg *config.Config, c *metrics.Collector) {
	log := logger.Get(ctx)

	if cfg.Metrics.Textfile != "" {
		if err := c.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warnf("[WARN]  Failed to write metrics file %s: %v", cfg.Metrics.Textfile, err)
		} else {
			log.Debugf("Metrics written to %s", cfg.Metrics.Textfile)
		}
	}

	if cfg.Metrics.PushGateway != "" {
		// The run context may already be cancelled by a signal.
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
		defer cancel()
		if err := c.Push(pctx, cfg.Metrics.PushGateway, runtime.RunID); err != nil {
			log.Warnf("[WARN]  Failed to push metrics to %s: %v", cfg.Metrics.PushGateway, err)
		} else {
			log.Debugf("Metrics pushed to %s", cfg.Metrics.PushGateway)
		}
	}
}
