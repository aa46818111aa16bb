package batch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-auditor/internal/common"
	"github.com/joseph-ayodele/invoice-auditor/internal/pipeline"
	"github.com/joseph-ayodele/invoice-auditor/internal/repository"
)

// Stats aggregates one batch run.
type Stats struct {
	Processed int
	Verified  int
	Skipped   int
	Failed    int
}

// Runner processes a set of document prefixes with a bounded worker pool.
// Documents are mutually independent (disjoint artifact paths per prefix),
// so no locking is needed beyond the shared stats. One document's failure is
// logged and recorded, never propagated to the rest of the batch.
type Runner struct {
	Logger    *slog.Logger
	Processor *pipeline.Processor
	Runs      repository.RunRepository // optional
	Workers   int
}

func NewRunner(logger *slog.Logger, processor *pipeline.Processor, runs repository.RunRepository, workers int) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Runner{Logger: logger, Processor: processor, Runs: runs, Workers: workers}
}

// Run processes every prefix and returns the run id and aggregate stats.
func (r *Runner) Run(ctx context.Context, prefixes []string) (uuid.UUID, Stats, error) {
	runID := uuid.New()
	if r.Runs != nil {
		id, err := r.Runs.StartRun(ctx)
		if err != nil {
			return uuid.Nil, Stats{}, err
		}
		runID = id
	}
	r.Logger.Info("batch.start", "run_id", runID, "documents", len(prefixes), "workers", r.Workers)

	var (
		mu    sync.Mutex
		stats Stats
		wg    sync.WaitGroup
	)
	jobs := make(chan string)

	for w := 0; w < r.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for prefix := range jobs {
				report, err := r.Processor.ProcessDocument(ctx, runID, prefix)
				mu.Lock()
				switch {
				case err == nil:
					stats.Processed++
					if report.Verified {
						stats.Verified++
					}
				case errors.Is(err, common.ErrMissingInput):
					stats.Skipped++
				default:
					stats.Failed++
				}
				mu.Unlock()
				switch {
				case err == nil:
				case errors.Is(err, common.ErrMissingInput):
					r.Logger.Warn("document.skipped", "prefix", prefix, "reason", err)
				default:
					r.Logger.Error("document.failed", "prefix", prefix, "err", err)
				}
			}
		}()
	}

	for _, prefix := range prefixes {
		jobs <- prefix
	}
	close(jobs)
	wg.Wait()

	if r.Runs != nil {
		if err := r.Runs.FinishRun(ctx, runID, repository.RunStats{
			Processed: stats.Processed,
			Skipped:   stats.Skipped,
			Failed:    stats.Failed,
		}); err != nil {
			r.Logger.Error("failed to finish batch run", "run_id", runID, "err", err)
		}
	}

	r.Logger.Info("batch.ok",
		"run_id", runID,
		"processed", stats.Processed,
		"verified", stats.Verified,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return runID, stats, nil
}
