package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Stage is one step of the upload pipeline. Ready reports whether the
// context carries the inputs the stage depends on; a stage whose
// precondition fails is skipped, never run.
type Stage interface {
	Name() string
	Ready(pc *Context) error
	Run(ctx context.Context, pc *Context) error
}

// parallelGroup runs member stages concurrently. Members must read only
// fields populated before the group and write disjoint context fields; the
// transform and thumbnail stages qualify because both read only the original
// buffer.
type parallelGroup struct {
	name   string
	stages []Stage
}

// Parallel groups stages for concurrent execution under one pipeline slot.
func Parallel(name string, stages ...Stage) Stage {
	return &parallelGroup{name: name, stages: stages}
}

func (g *parallelGroup) Name() string { return g.name }

func (g *parallelGroup) Ready(pc *Context) error {
	for _, s := range g.stages {
		if err := s.Ready(pc); err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
	}

	return nil
}

func (g *parallelGroup) Run(ctx context.Context, pc *Context) error {
	eg, gctx := errgroup.WithContext(ctx)
	for _, s := range g.stages {
		s := s
		eg.Go(func() error {
			return s.Run(gctx, pc)
		})
	}

	return eg.Wait()
}
