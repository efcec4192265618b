package sim

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bonsai/internal/bonsai"
	"github.com/san-kum/bonsai/internal/metrics"
)

var screen = bonsai.Screen{Width: 80, Height: 30}

func plant(seed uint64) *bonsai.Tree {
	tree, err := bonsai.Plant(bonsai.Options{Seed: seed, TrunkWidth: 7, Screen: screen})
	Expect(err).NotTo(HaveOccurred())
	return tree
}

var _ = Describe("Runner", func() {
	var runner *Runner

	BeforeEach(func() {
		runner = New(metrics.Default()...)
	})

	It("grows a tree to completion", func() {
		tree := plant(42)
		result, err := runner.Run(context.Background(), tree, nil, Config{MaxFrames: 100000})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Done).To(BeTrue())
		Expect(result.Seed).To(Equal(uint64(42)))
		Expect(result.Frames).To(Equal(tree.Frames()))
		Expect(result.Metrics).To(HaveKeyWithValue("leaves", float64(len(tree.Leaves()))))
		Expect(result.Commands).To(BeEmpty())
	})

	It("records commands when asked", func() {
		var direct bonsai.Recorder
		result, err := runner.Run(context.Background(), plant(7), &direct, Config{MaxFrames: 100000, Record: true})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Commands).NotTo(BeEmpty())
		Expect(result.Commands).To(Equal(direct.Commands))
	})

	It("calls observers once per frame", func() {
		calls := 0
		runner.AddObserver(ObserverFunc(func(*bonsai.Tree) { calls++ }))
		result, err := runner.Run(context.Background(), plant(9), nil, Config{MaxFrames: 100000})

		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(result.Frames))
	})

	It("stops at the frame limit", func() {
		result, err := runner.Run(context.Background(), plant(5), nil, Config{MaxFrames: 3})

		Expect(err).To(MatchError(ErrFrameLimit))
		var runErr *RunError
		Expect(errors.As(err, &runErr)).To(BeTrue())
		Expect(runErr.Seed).To(Equal(uint64(5)))
		Expect(runErr.Frames).To(Equal(3))
		Expect(result.Done).To(BeFalse())
		Expect(result.Frames).To(Equal(3))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result, err := runner.Run(ctx, plant(5), nil, Config{MaxFrames: 100000})

		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(result.Frames).To(BeZero())
	})

	It("rejects a non-positive frame limit", func() {
		_, err := runner.Run(context.Background(), plant(5), nil, Config{})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Ensemble", func() {
	It("grows consecutive seeds in order", func() {
		opts := bonsai.Options{TrunkWidth: 6, Screen: screen}
		ens := NewEnsemble(New(metrics.Leaves), opts, 8, 100)
		results, err := ens.Run(context.Background(), Config{MaxFrames: 100000})

		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(8))
		for i, r := range results {
			Expect(r.Seed).To(Equal(uint64(100 + i)))
			Expect(r.Done).To(BeTrue())
		}
	})

	It("matches a sequential run for the same seed", func() {
		opts := bonsai.Options{TrunkWidth: 6, Screen: screen}
		results, err := NewEnsemble(New(metrics.Default()...), opts, 3, 20).Run(context.Background(), Config{MaxFrames: 100000})
		Expect(err).NotTo(HaveOccurred())

		opts.Seed = 21
		tree, err := bonsai.Plant(opts)
		Expect(err).NotTo(HaveOccurred())
		single, err := New(metrics.Default()...).Run(context.Background(), tree, nil, Config{MaxFrames: 100000})
		Expect(err).NotTo(HaveOccurred())

		Expect(results[1].Metrics).To(Equal(single.Metrics))
	})

	It("reports a failing run", func() {
		opts := bonsai.Options{Screen: screen}
		results, err := NewEnsemble(New(), opts, 4, 1).Run(context.Background(), Config{MaxFrames: 2})
		Expect(err).To(MatchError(ErrFrameLimit))
		Expect(results).To(BeEmpty())
	})

	It("keeps the trees that finished within the frame limit", func() {
		opts := bonsai.Options{TrunkWidth: 6, Screen: screen}
		frames := make(map[uint64]int)
		longest := 0
		for seed := uint64(1); seed <= 6; seed++ {
			o := opts
			o.Seed = seed
			tree, err := bonsai.Plant(o)
			Expect(err).NotTo(HaveOccurred())
			res, err := New().Run(context.Background(), tree, nil, Config{MaxFrames: 100000})
			Expect(err).NotTo(HaveOccurred())
			frames[seed] = res.Frames
			longest = max(longest, res.Frames)
		}

		limit := longest - 1
		want := 0
		for _, f := range frames {
			if f <= limit {
				want++
			}
		}

		results, err := NewEnsemble(New(metrics.Leaves), opts, 6, 1).Run(context.Background(), Config{MaxFrames: limit})
		Expect(err).To(MatchError(ErrFrameLimit))
		Expect(results).To(HaveLen(want))
		for _, r := range results {
			Expect(r.Done).To(BeTrue())
			Expect(r.Frames).To(BeNumerically("<=", limit))
		}
	})

	It("surfaces bad options", func() {
		opts := bonsai.Options{Screen: bonsai.Screen{Width: 2, Height: 2}}
		_, err := NewEnsemble(New(), opts, 2, 1).Run(context.Background(), Config{MaxFrames: 10})
		Expect(err).To(MatchError(bonsai.ErrScreenTooSmall))
	})
})
