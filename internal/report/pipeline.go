package report

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zoobz-io/pipz"

	"driver-risk-service/internal/gravity"
	"driver-risk-service/internal/model"
)

// Run carries one batch through the pipeline. It is created per invocation
// and published whole or not at all.
type Run struct {
	ID       uuid.UUID
	Config   gravity.Config
	Events   []model.Event
	Drivers  []model.RankingRow
	Vehicles []model.RankingRow
	Summary  model.FleetSummary
}

// Pipeline scores, ranks and summarizes a normalized batch. Scoring fans out
// across a bounded worker pool; events have no data dependency on each other,
// so workers only need a final join.
type Pipeline struct {
	seq     *pipz.Sequence[*Run]
	workers int
	log     zerolog.Logger
}

func NewPipeline(log zerolog.Logger, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	p := &Pipeline{workers: workers, log: log}
	p.seq = pipz.NewSequence[*Run](pipz.NewIdentity("risk-report", ""),
		pipz.Apply(pipz.NewIdentity("score", ""), p.score),
		pipz.Transform(pipz.NewIdentity("rank", ""), p.rank),
		pipz.Transform(pipz.NewIdentity("summarize", ""), p.summarize),
	)
	return p
}

// Process runs the full pipeline on the given run.
func (p *Pipeline) Process(ctx context.Context, run *Run) (*Run, error) {
	return p.seq.Process(ctx, run)
}

func (p *Pipeline) score(_ context.Context, run *Run) (*Run, error) {
	if run.Config == nil {
		return run, errors.New("run has no gravity config")
	}

	events := run.Events
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < len(events); i += p.workers {
				result := gravity.Evaluate(events[i], run.Config)
				events[i].GravityFactor = result.Factor
				events[i].BaseWeight = result.BaseWeight
				events[i].Score = result.Score
			}
		}(w)
	}
	wg.Wait()
	return run, nil
}

func (p *Pipeline) rank(_ context.Context, run *Run) *Run {
	run.Drivers = RankDrivers(run.Events)
	run.Vehicles = RankVehicles(run.Events)
	return run
}

func (p *Pipeline) summarize(_ context.Context, run *Run) *Run {
	run.Summary = Summarize(run.Events)
	return run
}
