package render

import (
	"context"
	"fmt"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// Stage is one step of the render pipeline.
type Stage interface {
	// Name identifies the stage in errors and logs.
	Name() string

	// Process reads from and writes to job.
	Process(ctx context.Context, job *Job) error
}

// Pipeline chains multiple Stages and runs them in order.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a new render pipeline with the given stages.
// Stages are executed in the order provided.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{
		stages: stages,
	}
}

// Process runs the job through all stages in order.
// A stage error or panic stops the pipeline and is reported as
// ErrMalformedMarkup.
func (p *Pipeline) Process(ctx context.Context, job *Job) (err error) {
	if job == nil {
		return fmt.Errorf("job is nil")
	}

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runStage(ctx, stage, job); err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}

	return nil
}

func runStage(ctx context.Context, stage Stage, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", domain.ErrMalformedMarkup, r)
		}
	}()
	return stage.Process(ctx, job)
}

// Add appends a stage to the pipeline.
func (p *Pipeline) Add(stage Stage) {
	p.stages = append(p.stages, stage)
}

// Len returns the number of stages in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.stages)
}
