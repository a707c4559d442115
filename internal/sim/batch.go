package sim

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pacce/ventilation/internal/lung"
	"github.com/pacce/ventilation/internal/modes"
)

// Job is one independent run of a batch. Every job owns its mode.
type Job struct {
	Name string
	Mode modes.Mode
	Lung lung.Lung
}

// Batch runs jobs concurrently with a shared configuration.
type Batch struct {
	// Metrics builds a fresh metric set per job; metrics keep state.
	Metrics func() []Metric
	// Workers bounds concurrency. Zero or less means one goroutine per job.
	Workers int
}

func NewBatch(metrics func() []Metric, workers int) *Batch {
	return &Batch{Metrics: metrics, Workers: workers}
}

// Run returns one result per job, in job order. The first failure cancels the
// remaining jobs.
func (b *Batch) Run(ctx context.Context, jobs []Job, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if b.Workers > 0 {
		g.SetLimit(b.Workers)
	}

	for i, job := range jobs {
		g.Go(func() error {
			s := New(job.Mode, job.Lung)
			if b.Metrics != nil {
				for _, m := range b.Metrics() {
					s.AddMetric(m)
				}
			}
			res, err := s.Run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("job %q: %w", job.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.WithField("jobs", len(jobs)).Debug("batch complete")
	return results, nil
}
