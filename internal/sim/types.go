package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/bonsai/internal/bonsai"
)

// ErrFrameLimit is reported when a tree is still growing after the
// configured number of frames.
var ErrFrameLimit = errors.New("frame limit reached before tree finished")

type Observer interface {
	OnStep(t *bonsai.Tree)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(t *bonsai.Tree)

func (f ObserverFunc) OnStep(t *bonsai.Tree) { f(t) }

type Config struct {
	MaxFrames int
	// Record keeps every draw command in the result.
	Record bool
}

type Result struct {
	Seed     uint64
	Frames   int
	Done     bool
	Commands []bonsai.Command
	Metrics  map[string]float64
	Tree     *bonsai.Tree
}

type RunError struct {
	Seed   uint64
	Frames int
	Err    error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("seed %d after %d frames: %v", e.Seed, e.Frames, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
