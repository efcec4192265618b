package optim

import (
	"context"
	"math"

	"github.com/san-kum/bonsai/internal/bonsai"
	"github.com/san-kum/bonsai/internal/metrics"
	"github.com/san-kum/bonsai/internal/sim"
)

// GridSearch grows every combination of trunk width and seed and keeps
// the tree that scores best on one metric.
type GridSearch struct {
	widths []uint
	seeds  []uint64
}

func NewGridSearch(widths []uint, seeds []uint64) *GridSearch {
	return &GridSearch{widths: widths, seeds: seeds}
}

// Best is the winning combination. Tried counts the trees that finished.
type Best struct {
	Seed       uint64
	TrunkWidth uint
	Value      float64
	Tried      int
}

// Search plants each combination on base's screen. With maximize unset
// the lowest value wins. Trees that hit the frame limit are skipped.
func (g *GridSearch) Search(ctx context.Context, base bonsai.Options, cfg sim.Config, metric metrics.Metric, maximize bool) (*Best, error) {
	best := &Best{Value: math.Inf(1)}
	if maximize {
		best.Value = math.Inf(-1)
	}

	runner := sim.New(metric)
	for _, w := range g.widths {
		for _, s := range g.seeds {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			opts := base
			opts.Seed, opts.TrunkWidth = s, w
			tree, err := bonsai.Plant(opts)
			if err != nil {
				return nil, err
			}

			result, err := runner.Run(ctx, tree, nil, cfg)
			if err != nil {
				continue
			}
			best.Tried++

			val := result.Metrics[metric.Name()]
			if (maximize && val > best.Value) || (!maximize && val < best.Value) {
				best.Seed, best.TrunkWidth, best.Value = s, w, val
			}
		}
	}

	if best.Tried == 0 {
		return nil, sim.ErrFrameLimit
	}
	return best, nil
}
