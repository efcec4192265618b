package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/bonsai/internal/bonsai"
	"github.com/san-kum/bonsai/internal/metrics"
)

// Runner grows trees to completion and measures them.
type Runner struct {
	metrics   []metrics.Metric
	observers []Observer
}

func New(ms ...metrics.Metric) *Runner {
	return &Runner{
		metrics:   ms,
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps tree until it finishes, sending draw commands to sink (which
// may be nil). The partial result is returned alongside any error.
func (r *Runner) Run(ctx context.Context, tree *bonsai.Tree, sink bonsai.Sink, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{Seed: tree.Seed(), Tree: tree}
	var rec *bonsai.Recorder
	if cfg.Record {
		rec = &bonsai.Recorder{}
		sink = bonsai.Sinks{sink, rec}
	}

	var err error
	for !tree.Done() {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
		}
		if err != nil {
			break
		}
		if tree.Frames() >= cfg.MaxFrames {
			err = ErrFrameLimit
			break
		}

		tree.Step(sink)
		for _, obs := range r.observers {
			obs.OnStep(tree)
		}
	}

	result.Frames = tree.Frames()
	result.Done = tree.Done()
	result.Metrics = metrics.Collect(tree, r.metrics)
	if rec != nil {
		result.Commands = rec.Commands
	}
	if err != nil {
		return result, &RunError{Seed: tree.Seed(), Frames: tree.Frames(), Err: err}
	}
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.MaxFrames <= 0 {
		return fmt.Errorf("max frames must be positive, got %d", cfg.MaxFrames)
	}
	return nil
}
