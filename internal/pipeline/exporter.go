package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
	"github.com/preston-bernstein/nba-roster-service/internal/recordstream"
)

// Exporter writes player records to a destination as line-delimited JSON.
type Exporter struct {
	create  Creator
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewExporter builds an Exporter. A nil create writes to the filesystem.
func NewExporter(create Creator, logger *slog.Logger, rec *metrics.Recorder) *Exporter {
	if create == nil {
		create = createFile
	}
	return &Exporter{create: create, logger: logger, metrics: rec}
}

// Export creates or truncates destination and writes every record in order,
// one per line. It returns nil only after the data has been flushed and the
// destination closed. Lines already flushed stay in place when a later write
// fails.
func (e *Exporter) Export(ctx context.Context, destination string, recs []records.Record) error {
	start := time.Now()
	logger := logging.FromContext(ctx, e.logger)

	written, err := e.write(ctx, destination, recs)
	e.metrics.RecordPipelineRun(metrics.PipelineExport, written, time.Since(start), err)
	if err != nil {
		logging.Error(logger, "player export failed", err,
			logging.FieldDestination, destination,
			logging.FieldCount, written,
		)
		return err
	}

	logging.Info(logger, "player export complete",
		logging.FieldDestination, destination,
		logging.FieldCount, written,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (e *Exporter) write(ctx context.Context, destination string, recs []records.Record) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dst, err := e.create(destination)
	if err != nil {
		return 0, recordstream.SourceUnavailable(destination, err)
	}

	w := recordstream.NewWriter(dst)
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			_ = w.Flush()
			_ = dst.Close()
			return w.Count(), err
		}
		if err := w.Write(rec); err != nil {
			_ = dst.Close()
			return w.Count(), err
		}
	}
	if err := w.Flush(); err != nil {
		_ = dst.Close()
		return w.Count(), err
	}
	if err := dst.Close(); err != nil {
		return w.Count(), recordstream.IOFailure(err)
	}
	return w.Count(), nil
}
