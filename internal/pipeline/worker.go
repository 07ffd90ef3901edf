package pipeline

import (
	"context"
	"log/slog"
	"time"
)

// Worker processes queued uploads one at a time.
type Worker struct {
	indexer *Indexer
	log     *slog.Logger
}

func NewWorker(indexer *Indexer, log *slog.Logger) *Worker {
	return &Worker{indexer: indexer, log: log}
}

// Process converts, indexes and registers the job's upload.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	text, err := w.indexer.Convert(job.FileData(), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", err)
		return
	}

	// Phase 2: Index
	job.SetStatus(StatusIndexing, "indexing")
	b, err := w.indexer.Build(text)
	if err != nil {
		log.Error("index failed", "error", err)
		job.Fail("indexing", err)
		return
	}

	// Phase 3: Register, waiting for room if the registry is full.
	var lastErr error
	for attempt := range MaxRetries {
		res, err := w.indexer.Register(b, text, job.Filename)
		if err == nil {
			log.Info("job completed",
				"handle", res.Handle,
				"sentences", res.Info.Sentences,
				"duplicate", res.Duplicate,
			)
			job.Complete(res)
			return
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
		log.Warn("registry full, retrying", "attempt", attempt, "error", err)
		select {
		case <-time.After(Backoff(attempt)):
			w.indexer.Books().Cleanup()
			continue
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		break
	}
	b.Dispose()
	log.Error("register failed", "error", lastErr)
	job.Fail("registering", lastErr)
}
