package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
	"github.com/preston-bernstein/nba-roster-service/internal/recordstream"
)

// Importer reads a JSON array of player records from a source and appends
// them to a caller-owned collection.
type Importer struct {
	open    Opener
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewImporter builds an Importer. A nil open reads from the filesystem.
func NewImporter(open Opener, logger *slog.Logger, rec *metrics.Recorder) *Importer {
	if open == nil {
		open = openFile
	}
	return &Importer{open: open, logger: logger, metrics: rec}
}

// Import streams source and returns acc with every parsed record appended in
// arrival order. The import is all-or-nothing: on failure acc is returned
// unchanged along with an error wrapping recordstream.ErrSourceUnavailable,
// ErrMalformedInput or ErrIOFailure, or the context error. The source is
// always closed before Import returns.
//
// Concurrent imports into the same acc must be serialized by the caller.
func (i *Importer) Import(ctx context.Context, source string, acc []records.Record) ([]records.Record, error) {
	start := time.Now()
	logger := logging.FromContext(ctx, i.logger)

	imported, err := i.read(ctx, source)
	i.metrics.RecordPipelineRun(metrics.PipelineImport, len(imported), time.Since(start), err)
	if err != nil {
		logging.Error(logger, "historic import failed", err,
			logging.FieldSource, source,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		return acc, err
	}

	logging.Info(logger, "historic import complete",
		logging.FieldSource, source,
		logging.FieldCount, len(imported),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)

	out := make([]records.Record, 0, len(acc)+len(imported))
	out = append(out, acc...)
	return append(out, imported...), nil
}

func (i *Importer) read(ctx context.Context, source string) (imported []records.Record, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := i.open(source)
	if err != nil {
		return nil, recordstream.SourceUnavailable(source, err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			logging.Warn(i.logger, "closing historic source failed", logging.FieldSource, source, "err", closeErr)
		}
	}()

	reader := recordstream.NewReader(src)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return imported, nil
		}
		if err != nil {
			return nil, err
		}
		imported = append(imported, rec)
	}
}
